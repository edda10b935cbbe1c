package version

import (
	"testing"

	"github.com/fatih/color"
)

func TestVersion_DefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
	if Number != "0.3.0-dev" {
		t.Errorf("Number = %q", Number)
	}
}

func TestVersion_String(t *testing.T) {
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	defer func() {
		Version, GitCommit, BuildDate = origVersion, origCommit, origDate
	}()

	tests := []struct {
		commit, date, want string
	}{
		{"", "", "arttrace 1.2.3"},
		{"abc123", "", "arttrace 1.2.3 (abc123)"},
		{"1234567890abcdef1234", "2026-01-15", "arttrace 1.2.3 (1234567890ab) built 2026-01-15"},
	}
	Version = "1.2.3"
	for _, tt := range tests {
		GitCommit, BuildDate = tt.commit, tt.date
		if got := String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestVersion_NoColor(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	if got := versionMajorColor.Sprint("0"); got != "0" {
		t.Errorf("uncolored major = %q", got)
	}
}
