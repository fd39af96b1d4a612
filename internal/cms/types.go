package cms

// Sponsor is one sponsor entry as recorded in the content store. Title may be
// absent; entries without titles are counted separately by the reconciler.
type Sponsor struct {
	Title string `json:"title"`
	Key   string `json:"_key"`
}

// SponsorSet holds the flattened sponsor collections of one fetch.
type SponsorSet struct {
	Sponsors           []Sponsor
	SupportingSponsors []Sponsor
	Combined           []Sponsor
}

// Titles returns the titles of the combined collection, including empty
// titles. Deduplication happens in the reconciler.
func (s *SponsorSet) Titles() []string {
	titles := make([]string, 0, len(s.Combined))
	for _, sponsor := range s.Combined {
		titles = append(titles, sponsor.Title)
	}
	return titles
}

// queryResponse is the envelope of the document-store query API.
type queryResponse struct {
	Result []pageDocument `json:"result"`
}

// pageDocument is one page with its nested section components.
type pageDocument struct {
	Title   string    `json:"title"`
	Content []section `json:"content"`
}

// section is one page component; sponsor arrays may be null or absent.
type section struct {
	Sponsors           []Sponsor `json:"sponsors"`
	SupportingSponsors []Sponsor `json:"supportingSponsors"`
}
