package errors

import (
	"errors"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	e := New(CategoryConfig, SeverityFatal, "missing source")
	if got := e.Error(); got != "config (fatal): missing source" {
		t.Errorf("unexpected message: %q", got)
	}

	wrapped := Wrap(errors.New("exit status 1"), CategoryDoxygen, SeverityFatal, "doxygen failed")
	if got := wrapped.Error(); got != "doxygen (fatal): doxygen failed: exit status 1" {
		t.Errorf("unexpected wrapped message: %q", got)
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("permission denied")
	e := PublishFailed("https://example.com/pages.git", cause)
	if !errors.Is(e, cause) {
		t.Error("expected errors.Is to find the cause")
	}
}

func TestRetryableClassification(t *testing.T) {
	if IsRetryable(GitAuthError("url", errors.New("bad token"))) {
		t.Error("auth errors must not be retryable")
	}
	if !IsRetryable(GitNetworkError("url", errors.New("i/o timeout"))) {
		t.Error("network errors should be retryable")
	}
	if IsRetryable(errors.New("plain")) {
		t.Error("plain errors are not retryable")
	}
}

func TestCategoryHelpers(t *testing.T) {
	e := ConfigRequired("publish.url")
	if !IsCategory(e, CategoryConfig) {
		t.Error("expected config category")
	}
	if GetCategory(errors.New("plain")) != CategoryInternal {
		t.Error("plain errors default to internal category")
	}
}

func TestWithContext(t *testing.T) {
	e := ValidationFailed("project.version", "not semver")
	if e.Context["field"] != "project.version" {
		t.Errorf("context field missing: %v", e.Context)
	}
	e.WithContext("value", "abc")
	if e.Context["value"] != "abc" {
		t.Error("WithContext did not record value")
	}
}

func TestExitCodes(t *testing.T) {
	a := NewCLIErrorAdapter(false, nil)
	cases := []struct {
		err  error
		code int
	}{
		{nil, 0},
		{ConfigRequired("project.source"), 2},
		{ValidationFailed("version", "bad"), 2},
		{GenerationFailed("run_doxygen", errors.New("exit 1")), 3},
		{PublishFailed("url", errors.New("denied")), 4},
		{GitAuthError("url", errors.New("denied")), 4},
		{InternalError("boom", nil), 1},
		{errors.New("plain"), 1},
	}
	for _, c := range cases {
		if got := a.ExitCodeFor(c.err); got != c.code {
			t.Errorf("ExitCodeFor(%v) = %d, want %d", c.err, got, c.code)
		}
	}
}
