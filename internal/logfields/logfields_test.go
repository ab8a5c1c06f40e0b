package logfields

import (
	"errors"
	"testing"
)

// TestHelperKeyNames verifies string-based helper key/value stability.
func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attrVal string
		attr    interface{ String() string }
	}{
		{"Stage", KeyStage, "run_doxygen", Stage("run_doxygen")},
		{"RunID", KeyRunID, "r1", RunID("r1")},
		{"Path", KeyPath, "/tmp/x", Path("/tmp/x")},
		{"Version", KeyVersion, "1.2.3", Version("1.2.3")},
		{"Project", KeyProject, "libfoo", Project("libfoo")},
		{"Target", KeyTarget, "https://example.com/r.git", Target("https://example.com/r.git")},
		{"Branch", KeyBranch, "gh-pages", Branch("gh-pages")},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			want := c.attrKey + "=" + c.attrVal
			if got := c.attr.String(); got != want {
				t.Errorf("expected %q, got %q", want, got)
			}
		})
	}
}

func TestErrorHelper(t *testing.T) {
	if got := Error(nil).String(); got != KeyError+"=" {
		t.Errorf("nil error attr = %q", got)
	}
	if got := Error(errors.New("boom")).String(); got != KeyError+"=boom" {
		t.Errorf("error attr = %q", got)
	}
}
