package ledger

import (
	"database/sql"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/danielpatrickdp/lattice-stage/internal/verifier"
)

// #region log-audit
// LogAudit writes an entry to the audit_log table.
func LogAudit(db *sql.DB, entry Entry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	locked := 0
	if entry.PhaseLocked {
		locked = 1
	}

	_, err := db.Exec(
		`INSERT INTO audit_log (session_id, step, motif, trust, angle, protocol, family, family_id,
		                        phase_locked, action, entropy, snapshot, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.SessionID,
		entry.Step,
		entry.Motif,
		entry.Trust,
		entry.Angle,
		entry.Protocol,
		nullIfEmpty(entry.Family),
		entry.FamilyID,
		locked,
		entry.Action,
		entry.Entropy,
		encodeSet(entry.Snapshot),
		entry.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("log audit: %w", err)
	}
	return nil
}

// EntryFromAudit converts a verifier audit into a ledger row.
func EntryFromAudit(a verifier.Audit) Entry {
	return Entry{
		SessionID:   a.SessionID,
		Step:        a.Step,
		Motif:       a.Motif,
		Trust:       a.Trust,
		Angle:       a.Angle,
		Protocol:    a.Protocol,
		Family:      a.Family,
		FamilyID:    a.FamilyID,
		PhaseLocked: a.PhaseLocked,
		Action:      string(a.Action),
		Entropy:     a.Entropy,
		Snapshot:    a.Snapshot,
		CreatedAt:   a.Time,
	}
}

// #endregion log-audit

// #region observer
// Observer records every verifier audit. Sessions are opened on first sight.
// Write failures are logged, never returned to the verifier.
type Observer struct {
	store  *Store
	label  string
	logger *slog.Logger

	mu     sync.Mutex
	opened map[string]bool
}

// NewObserver creates an audit observer writing to store.
func NewObserver(store *Store, label string, logger *slog.Logger) *Observer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Observer{store: store, label: label, logger: logger, opened: map[string]bool{}}
}

// ObserveAudit implements verifier.Observer.
func (o *Observer) ObserveAudit(a verifier.Audit) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.opened[a.SessionID] {
		if _, err := o.store.OpenSession(a.SessionID, o.label, a.Time); err != nil {
			o.logger.Error("ledger: open session", "session", a.SessionID, "err", err)
			return
		}
		o.opened[a.SessionID] = true
	}
	if err := LogAudit(o.store.DB(), EntryFromAudit(a)); err != nil {
		o.logger.Error("ledger: record audit", "session", a.SessionID, "step", a.Step, "err", err)
	}
}

// #endregion observer

// #region helpers
func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// #endregion helpers
