package watch

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/docpub/internal/logfields"
	"git.home.luguber.info/inful/docpub/internal/version"
)

// healthPayload is the /healthz response body.
type healthPayload struct {
	Status      string `json:"status"` // ok | degraded | starting
	Version     string `json:"version"`
	Builds      int    `json:"builds"`
	LastBuildAt string `json:"last_build_at,omitempty"`
	LastError   string `json:"last_error,omitempty"`
}

// startServer serves the generated site plus /healthz and /metrics.
func (w *Watcher) startServer() *http.Server {
	siteDir := filepath.Join(w.cfg.Doxygen.Output, w.cfg.Doxygen.HTMLDir)

	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(siteDir)))
	mux.HandleFunc("/healthz", w.handleHealthz)
	if w.metrics != nil {
		mux.Handle("/metrics", w.metrics)
	}

	server := &http.Server{
		Addr:              w.cfg.Watch.Listen,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		slog.Info("Preview server listening", slog.String("addr", w.cfg.Watch.Listen), logfields.Path(siteDir))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Preview server failed", logfields.Error(err))
		}
	}()
	return server
}

func (w *Watcher) handleHealthz(rw http.ResponseWriter, _ *http.Request) {
	lastErr, at, count, good := w.status.snapshot()

	payload := healthPayload{
		Status:  "ok",
		Version: version.Version,
		Builds:  count,
	}
	switch {
	case !good && lastErr == nil:
		payload.Status = "starting"
	case lastErr != nil:
		payload.Status = "degraded"
		payload.LastError = lastErr.Error()
	}
	if !at.IsZero() {
		payload.LastBuildAt = at.UTC().Format(time.RFC3339)
	}

	rw.Header().Set("Content-Type", "application/json")
	if payload.Status == "degraded" {
		rw.WriteHeader(http.StatusServiceUnavailable)
	}
	_ = json.NewEncoder(rw).Encode(payload)
}
