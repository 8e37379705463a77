// Package verifier keeps one session's trust in a stream of vector snapshots. Each audit
// normalizes the raw snapshot, weighs its own evidence, and matches the whole session
// history against the known signatures.
package verifier

import (
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/danielpatrickdp/lattice-stage/internal/assembler"
	"github.com/danielpatrickdp/lattice-stage/internal/classifier"
	"github.com/danielpatrickdp/lattice-stage/internal/gate"
	"github.com/danielpatrickdp/lattice-stage/internal/geometry"
	"github.com/danielpatrickdp/lattice-stage/internal/signals"
)

// #region verifier

// Verifier is a single session. Its methods are safe for concurrent use; audits are
// applied one at a time.
type Verifier struct {
	config    Config
	producer  *signals.Producer
	gate      *gate.Gate
	assembler *assembler.Assembler
	logger    *slog.Logger
	observers []Observer
	now       func() time.Time

	mu        sync.Mutex
	sessionID string
	trust     float64
	history   []geometry.Set
	labels    []string // classifier label per history entry
}

// Option configures a Verifier.
type Option func(*options)

type options struct {
	classifier *classifier.Classifier
	logger     *slog.Logger
	observers  []Observer
	now        func() time.Time
}

// WithClassifier shares an existing classifier (and its audit trail).
func WithClassifier(c *classifier.Classifier) Option {
	return func(o *options) { o.classifier = c }
}

// WithLogger sets the logger for audit lines.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithObserver registers an audit observer.
func WithObserver(obs Observer) Option {
	return func(o *options) { o.observers = append(o.observers, obs) }
}

// WithClock overrides the audit clock.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// New starts a session.
func New(config Config, opts ...Option) *Verifier {
	o := options{logger: slog.Default(), now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if o.classifier == nil {
		o.classifier = classifier.New(classifier.Config{
			LengthTolerance: config.LengthTolerance,
			AngleTolerance:  config.AngleTolerance,
		}, classifier.WithLogger(o.logger), classifier.WithClock(o.now))
	}

	return &Verifier{
		config: config,
		producer: signals.NewProducer(o.classifier, signals.ProducerConfig{
			LengthTolerance: config.LengthTolerance,
			AngleTolerance:  config.AngleTolerance,
			PhaseLocks:      config.PhaseLocks,
		}),
		gate:      gate.NewGate(config.Gate),
		assembler: assembler.New(o.classifier, config.Signatures, assembler.WithClock(o.now)),
		logger:    o.logger,
		observers: o.observers,
		now:       o.now,
		sessionID: uuid.NewString(),
		trust:     config.InitialTrust,
	}
}

// #endregion verifier

// #region audit

// AuditSnapshot normalizes raw with ranges (one per component), appends it to the session
// history and updates trust. Malformed ranges are ErrShape and leave the session untouched.
func (v *Verifier) AuditSnapshot(raw geometry.Set, ranges []Range) (Audit, error) {
	snapshot, err := NormalizeSet(raw, ranges)
	if err != nil {
		return Audit{}, err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.history = append(v.history, snapshot)
	ev := v.producer.Produce(snapshot)
	v.labels = append(v.labels, ev.Family)
	report := v.assembler.VerifyLabels(v.labels)
	decision := v.gate.Evaluate(v.trust, ev, report.Matched())
	v.trust = decision.Trust

	audit := Audit{
		SessionID:   v.sessionID,
		Step:        len(v.history),
		Motif:       decision.Motif,
		Trust:       decision.Trust,
		Angle:       ev.Angle,
		Protocol:    report.Protocol,
		Family:      ev.Family,
		FamilyID:    ev.FamilyID,
		PhaseLocked: ev.PhaseLocked,
		Action:      decision.Action,
		Entropy:     report.Entropy,
		Snapshot:    snapshot,
		Time:        v.now().UTC(),
	}

	v.logger.Debug("audit",
		"session", audit.SessionID, "step", audit.Step, "motif", audit.Motif,
		"trust", audit.Trust, "angle", audit.Angle, "action", string(audit.Action))
	if decision.Action == gate.ActionOverride {
		v.logger.Info("signature matched", "session", audit.SessionID, "protocol", audit.Protocol, "step", audit.Step)
	}
	for _, obs := range v.observers {
		obs.ObserveAudit(audit)
	}
	return audit, nil
}

// #endregion audit

// #region accessors

// Trust returns the current trust.
func (v *Verifier) Trust() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.trust
}

// History returns a copy of the normalized snapshot history.
func (v *Verifier) History() []geometry.Set {
	v.mu.Lock()
	defer v.mu.Unlock()
	return slices.Clone(v.history)
}

// SessionID identifies the current session.
func (v *Verifier) SessionID() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.sessionID
}

// Signatures returns the signature set the session matches against.
func (v *Verifier) Signatures() []assembler.Signature { return v.assembler.Signatures() }

// Reset restores the initial trust, empties the history and starts a new session id.
func (v *Verifier) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.trust = v.config.InitialTrust
	v.history = nil
	v.labels = nil
	v.sessionID = uuid.NewString()
}

// #endregion accessors
