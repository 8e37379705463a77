// Package ledger records verifier sessions and their audits in SQLite.
package ledger

import (
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/danielpatrickdp/lattice-stage/internal/geometry"
)

// MemoryDSN keeps the ledger for the lifetime of the process only.
const MemoryDSN = ":memory:"

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	session_id  TEXT PRIMARY KEY,
	label       TEXT,
	started_at  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS audit_log (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id    TEXT NOT NULL,
	step          INTEGER NOT NULL,
	motif         TEXT NOT NULL,
	trust         REAL NOT NULL,
	angle         REAL NOT NULL,
	protocol      TEXT NOT NULL,
	family        TEXT,
	family_id     INTEGER NOT NULL,
	phase_locked  INTEGER NOT NULL,
	action        TEXT NOT NULL,
	entropy       REAL NOT NULL,
	snapshot      BLOB NOT NULL,
	created_at    TEXT NOT NULL,
	FOREIGN KEY (session_id) REFERENCES sessions(session_id)
);

CREATE INDEX IF NOT EXISTS audit_log_session ON audit_log(session_id, step);
`

// #endregion schema

// #region store-struct
// Store manages the audit ledger in SQLite.
type Store struct {
	db *sql.DB
}

// #endregion store-struct

// #region constructor
// NewStore opens a SQLite database and runs migrations. MemoryDSN gives a
// process-lifetime ledger.
func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// Every pooled connection to :memory: would see its own empty database.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma fk: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// #endregion constructor

// #region close
// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB.
func (s *Store) DB() *sql.DB {
	return s.db
}

// #endregion close

// #region open-session
// OpenSession registers a session. An empty id generates one. Re-opening an existing
// session is a no-op.
func (s *Store) OpenSession(sessionID, label string, startedAt time.Time) (string, error) {
	if sessionID == "" {
		sessionID = uuid.New().String()
	}
	if startedAt.IsZero() {
		startedAt = time.Now().UTC()
	}
	_, err := s.db.Exec(
		`INSERT INTO sessions (session_id, label, started_at) VALUES (?, ?, ?)
		 ON CONFLICT(session_id) DO NOTHING`,
		sessionID, nullIfEmpty(label), startedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return "", fmt.Errorf("open session: %w", err)
	}
	return sessionID, nil
}

// #endregion open-session

// #region list-sessions
// ListSessions returns the most recently started sessions with their audit totals.
func (s *Store) ListSessions(limit int) ([]Session, error) {
	rows, err := s.db.Query(
		`SELECT s.session_id, s.label, s.started_at,
		        (SELECT COUNT(*) FROM audit_log a WHERE a.session_id = s.session_id),
		        COALESCE((SELECT trust FROM audit_log a WHERE a.session_id = s.session_id ORDER BY step DESC LIMIT 1), 0),
		        COALESCE((SELECT protocol FROM audit_log a WHERE a.session_id = s.session_id ORDER BY step DESC LIMIT 1), '')
		 FROM sessions s ORDER BY s.started_at DESC, s.rowid DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var sess Session
		var label sql.NullString
		var startedStr string
		if err := rows.Scan(&sess.SessionID, &label, &startedStr, &sess.Audits, &sess.FinalTrust, &sess.Protocol); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		if label.Valid {
			sess.Label = label.String
		}
		sess.StartedAt, _ = time.Parse(time.RFC3339Nano, startedStr)
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

// LatestSession returns the id of the most recently started session.
func (s *Store) LatestSession() (string, error) {
	sessions, err := s.ListSessions(1)
	if err != nil {
		return "", err
	}
	if len(sessions) == 0 {
		return "", fmt.Errorf("latest session: %w", sql.ErrNoRows)
	}
	return sessions[0].SessionID, nil
}

// #endregion list-sessions

// #region audits
// Audits returns a session's entries in step order.
func (s *Store) Audits(sessionID string) ([]Entry, error) {
	rows, err := s.db.Query(
		`SELECT session_id, step, motif, trust, angle, protocol, family, family_id,
		        phase_locked, action, entropy, snapshot, created_at
		 FROM audit_log WHERE session_id = ? ORDER BY step ASC, id ASC`, sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("list audits: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var family sql.NullString
		var locked int
		var blob []byte
		var createdStr string
		if err := rows.Scan(&e.SessionID, &e.Step, &e.Motif, &e.Trust, &e.Angle, &e.Protocol, &family,
			&e.FamilyID, &locked, &e.Action, &e.Entropy, &blob, &createdStr); err != nil {
			return nil, fmt.Errorf("scan audit: %w", err)
		}
		if family.Valid {
			e.Family = family.String
		}
		e.PhaseLocked = locked != 0
		e.Snapshot = decodeSet(blob)
		e.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// #endregion audits

// #region set-encoding
func encodeSet(s geometry.Set) []byte {
	buf := make([]byte, 16*8)
	for p, v := range s {
		for i, f := range v {
			binary.LittleEndian.PutUint64(buf[(p*4+i)*8:], math.Float64bits(f))
		}
	}
	return buf
}

func decodeSet(b []byte) geometry.Set {
	var s geometry.Set
	for p := range s {
		for i := range s[p] {
			off := (p*4 + i) * 8
			if off+8 <= len(b) {
				s[p][i] = math.Float64frombits(binary.LittleEndian.Uint64(b[off:]))
			}
		}
	}
	return s
}

// #endregion set-encoding
