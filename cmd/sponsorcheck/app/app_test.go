package app

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/agentstation/sponsorcheck/internal/cmd/output"
)

// TestNew verifies app construction with defaults.
func TestNew(t *testing.T) {
	application, err := New("1.2.3", "abc1234", "2026-08-24")
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	if application.Version() != "1.2.3" {
		t.Errorf("Version() = %q, want 1.2.3", application.Version())
	}
	if application.Config() == nil {
		t.Error("Config() returned nil")
	}
	if application.Logger() == nil {
		t.Error("Logger() returned nil")
	}
}

// TestVersionCommand verifies the version output.
func TestVersionCommand(t *testing.T) {
	application, err := New("1.2.3", "abc1234", "2026-08-24")
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	cmd := application.NewVersionCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.Run(cmd, nil)

	got := out.String()
	if !strings.Contains(got, "sponsorcheck 1.2.3") || !strings.Contains(got, "abc1234") {
		t.Errorf("version output = %q", got)
	}
}

// TestValidateFailsFastWithoutCredentials verifies the fatal config path.
func TestValidateFailsFastWithoutCredentials(t *testing.T) {
	application, err := New("dev", "unknown", "unknown")
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	// Force empty credentials regardless of the test environment.
	application.config.ProjectID = ""
	application.config.Dataset = ""
	application.config.Token = ""

	err = application.Execute(context.Background(), []string{"validate"})
	if err == nil {
		t.Fatal("Execute(validate) = nil, want config error")
	}
	if !strings.Contains(err.Error(), "missing required keys") {
		t.Errorf("error = %q, want missing-keys diagnostic", err.Error())
	}
}

// TestResolveFormat verifies explicit formats win and empty input falls back
// to terminal detection.
func TestResolveFormat(t *testing.T) {
	format, err := resolveFormat("yaml")
	if err != nil || format != output.FormatYAML {
		t.Errorf("resolveFormat(yaml) = %v, %v", format, err)
	}

	if _, err := resolveFormat("xml"); err == nil {
		t.Error("resolveFormat(xml) = nil, want error")
	}

	// Empty input must defer to detection, not a hard-coded format.
	format, err = resolveFormat("")
	if err != nil {
		t.Fatalf("resolveFormat(\"\") failed: %v", err)
	}
	if want := output.DetectFormat(""); format != want {
		t.Errorf("resolveFormat(\"\") = %v, want detected %v", format, want)
	}
}

// TestUnknownFormatRejected verifies format flag validation.
func TestUnknownFormatRejected(t *testing.T) {
	application, err := New("dev", "unknown", "unknown")
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	application.config.ProjectID = "p"
	application.config.Dataset = "d"
	application.config.Token = "tk"

	err = application.Execute(context.Background(), []string{"validate", "--format", "xml"})
	if err == nil || !strings.Contains(err.Error(), "invalid format") {
		t.Errorf("Execute(--format xml) = %v, want invalid format error", err)
	}
}
