package ledger

import (
	"time"

	"github.com/danielpatrickdp/lattice-stage/internal/geometry"
)

// #region session
// Session is one verifier session as recorded in the sessions table.
type Session struct {
	SessionID  string
	Label      string // caller-chosen, e.g. "monitor" or a fixture name
	StartedAt  time.Time
	Audits     int
	FinalTrust float64
	Protocol   string // protocol of the latest audit
}

// #endregion session

// #region entry
// Entry is a single row in the audit_log table.
type Entry struct {
	SessionID   string
	Step        int
	Motif       string
	Trust       float64
	Angle       float64
	Protocol    string
	Family      string
	FamilyID    int
	PhaseLocked bool
	Action      string // "reward" | "penalize" | "override"
	Entropy     float64
	Snapshot    geometry.Set
	CreatedAt   time.Time
}

// #endregion entry
