package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyStage      = "stage"
	KeyRunID      = "run_id"
	KeyPath       = "path"
	KeyVersion    = "version"
	KeyProject    = "project"
	KeyTarget     = "target"
	KeyBranch     = "branch"
	KeyDurationMS = "duration_ms"
	KeyPages      = "pages"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Stage(name string) slog.Attr      { return slog.String(KeyStage, name) }
func RunID(id string) slog.Attr        { return slog.String(KeyRunID, id) }
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func Version(v string) slog.Attr       { return slog.String(KeyVersion, v) }
func Project(name string) slog.Attr    { return slog.String(KeyProject, name) }
func Target(url string) slog.Attr      { return slog.String(KeyTarget, url) }
func Branch(b string) slog.Attr        { return slog.String(KeyBranch, b) }
func DurationMS(ms float64) slog.Attr  { return slog.Float64(KeyDurationMS, ms) }
func Pages(n int) slog.Attr            { return slog.Int(KeyPages, n) }

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
