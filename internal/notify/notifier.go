// Package notify publishes completion events to NATS so downstream tooling
// can react to new documentation releases.
package notify

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"git.home.luguber.info/inful/docpub/internal/config"
	"git.home.luguber.info/inful/docpub/internal/logfields"
)

// Event describes a finished publish run.
type Event struct {
	RunID      string    `json:"run_id"`
	Project    string    `json:"project"`
	Version    string    `json:"version,omitempty"`
	Target     string    `json:"target"`
	CommitHash string    `json:"commit_hash,omitempty"`
	Outcome    string    `json:"outcome"`
	Pages      int       `json:"pages,omitempty"`
	FinishedAt time.Time `json:"finished_at"`
}

// Notifier publishes events to a NATS subject.
type Notifier struct {
	conn    *nats.Conn
	subject string
}

// NewNotifier connects to the configured NATS server. Returns nil without
// error when notifications are disabled.
func NewNotifier(cfg config.NotifyConfig) (*Notifier, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	conn, err := nats.Connect(cfg.URL,
		nats.Name("docpub"),
		nats.Timeout(5*time.Second),
		nats.MaxReconnects(2),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	slog.Info("NATS notifier connected", logfields.Target(cfg.URL), slog.String("subject", cfg.Subject))
	return &Notifier{conn: conn, subject: cfg.Subject}, nil
}

// Publish sends the event. A nil notifier is a no-op, so callers do not need
// to guard on whether notifications are enabled.
func (n *Notifier) Publish(event Event) error {
	if n == nil {
		return nil
	}
	if event.FinishedAt.IsZero() {
		event.FinishedAt = time.Now().UTC()
	}
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if err := n.conn.Publish(n.subject, data); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	if err := n.conn.Flush(); err != nil {
		return fmt.Errorf("failed to flush connection: %w", err)
	}
	return nil
}

// Close drains the connection. Safe on a nil notifier.
func (n *Notifier) Close() {
	if n == nil || n.conn == nil {
		return
	}
	n.conn.Close()
}
