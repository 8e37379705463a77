package verifier

import (
	"sync"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielpatrickdp/lattice-stage/internal/assembler"
	"github.com/danielpatrickdp/lattice-stage/internal/gate"
	"github.com/danielpatrickdp/lattice-stage/internal/geometry"
)

var baseRanges = []Range{{0, 23}, {1, 10}, {1, 5}, {3, 8}}

// alignedSnapshot normalizes to a = (-1,-1,-1,-1), b = (1,1,1,-1): a 120° first pair.
var alignedSnapshot = geometry.Set{{0, 1, 1, 3}, {23, 10, 5, 3}, {23, 1, 1, 3}, {0, 10, 5, 8}}

// driftSnapshot is unclassified with a ~31° first pair, outside every lock window.
var driftSnapshot = geometry.Set{
	{1, 0.01, 0.01, 0.01},
	{0.8, 0.5, 0.01, 0.01},
	{0.3, -0.7, 0.2, 0.9},
	{-0.4, 0.1, 0.8, -0.6},
}

var unitRanges = []Range{{-1, 1}, {-1, 1}, {-1, 1}, {-1, 1}}

type recordingObserver struct {
	mu     sync.Mutex
	audits []Audit
}

func (r *recordingObserver) ObserveAudit(a Audit) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.audits = append(r.audits, a)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, -1.0, Normalize(0, 0, 23))
	assert.Equal(t, 1.0, Normalize(23, 0, 23))
	assert.Equal(t, -1.0, Normalize(-40, 0, 23), "below range clamps")
	assert.Equal(t, 1.0, Normalize(99, 0, 23), "above range clamps")
	assert.Equal(t, 0.01, Normalize(11.5, 0, 23), "exact zero snaps")
	assert.Equal(t, 0.01, Normalize(-0.005, -1, 1), "snap is always positive")
	assert.InDelta(t, 0.5, Normalize(17.25, 0, 23), 1e-12)
}

func TestNormalize_Range(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300
	properties := gopter.NewProperties(parameters)

	properties.Property("normalized values lie in [-1, 1] and away from zero", prop.ForAll(
		func(v, lo, width float64) bool {
			n := Normalize(v, lo, lo+width)
			return n >= -1 && n <= 1 && (n >= 0.01 || n <= -0.01)
		},
		gen.Float64Range(-1e3, 1e3),
		gen.Float64Range(-1e3, 1e3),
		gen.Float64Range(0.1, 1e3),
	))

	properties.TestingRun(t)
}

func TestAngle_ZeroVector(t *testing.T) {
	assert.Equal(t, 90.0, Angle(geometry.Vector4{}, geometry.Vector4{1, 2, 3, 4}))
	assert.InDelta(t, 180, Angle(geometry.Vector4{1, 0, 0, 0}, geometry.Vector4{-2, 0, 0, 0}), 1e-9)
}

func TestAuditSnapshot_SevenAlignedSnapshotsLockTrust(t *testing.T) {
	v := New(DefaultConfig())
	wantTrust := []float64{0.7, 0.9, 1, 1, 1, 1, 1}

	for day, want := range wantTrust {
		a, err := v.AuditSnapshot(alignedSnapshot, baseRanges)
		require.NoError(t, err)
		assert.InDelta(t, want, a.Trust, 1e-12, "day %d", day+1)
		assert.InDelta(t, 120, a.Angle, 1e-9)
		assert.True(t, a.PhaseLocked)
		assert.Equal(t, assembler.UnknownActor, a.Protocol)
		assert.Equal(t, day+1, a.Step)
	}
	assert.Equal(t, 1.0, v.Trust())
	assert.Len(t, v.History(), 7)
}

func TestAuditSnapshot_MotifTiers(t *testing.T) {
	v := New(DefaultConfig())

	first, err := v.AuditSnapshot(alignedSnapshot, baseRanges)
	require.NoError(t, err)
	assert.Equal(t, gate.MotifEmergent, first.Motif, "0.7 is not above the lock threshold")

	second, err := v.AuditSnapshot(alignedSnapshot, baseRanges)
	require.NoError(t, err)
	assert.Equal(t, "Unclassified configuration", second.Family)
	assert.Equal(t, gate.MotifDecagonal, second.Motif)
}

func TestAuditSnapshot_Penalty(t *testing.T) {
	v := New(DefaultConfig())
	a, err := v.AuditSnapshot(driftSnapshot, unitRanges)
	require.NoError(t, err)
	assert.False(t, a.PhaseLocked)
	assert.Equal(t, 0, a.FamilyID)
	assert.Equal(t, gate.ActionPenalize, a.Action)
	assert.InDelta(t, 0.32, a.Trust, 1e-12)
	assert.Equal(t, gate.MotifBaseline, a.Motif)
}

func TestAuditSnapshot_SignatureOverride(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Signatures = []assembler.Signature{{Actor: "Drifter", Sequence: []string{
		"Unclassified configuration", "Unclassified configuration",
	}}}
	v := New(cfg)

	first, err := v.AuditSnapshot(driftSnapshot, unitRanges)
	require.NoError(t, err)
	assert.Equal(t, assembler.UnknownActor, first.Protocol)

	second, err := v.AuditSnapshot(driftSnapshot, unitRanges)
	require.NoError(t, err)
	assert.Equal(t, "Drifter", second.Protocol)
	assert.Equal(t, gate.ActionOverride, second.Action)
	assert.Equal(t, 1.0, second.Trust)
	assert.Equal(t, gate.MotifBaseline, second.Motif, "stepped trust 0.14 labels the overriding step")
}

func TestAuditSnapshot_OverrideFromZeroTrust(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Signatures = []assembler.Signature{{Actor: "Twin", Sequence: []string{"Hypercubic", "Hypercubic"}}}
	v := New(cfg)
	identity := geometry.Set{{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 1, 0}, {0, 0, 0, 1}}

	for i := 0; i < 3; i++ {
		_, err := v.AuditSnapshot(driftSnapshot, unitRanges)
		require.NoError(t, err)
	}
	require.Equal(t, 0.0, v.Trust())

	first, err := v.AuditSnapshot(identity, unitRanges)
	require.NoError(t, err)
	assert.Equal(t, "Hypercubic", first.Family)
	assert.Equal(t, assembler.UnknownActor, first.Protocol)
	assert.InDelta(t, 0.2, first.Trust, 1e-12)

	second, err := v.AuditSnapshot(identity, unitRanges)
	require.NoError(t, err)
	assert.Equal(t, "Twin", second.Protocol)
	assert.Equal(t, gate.ActionOverride, second.Action)
	assert.Equal(t, 1.0, second.Trust)
	assert.Equal(t, gate.MotifBaseline, second.Motif)

	third, err := v.AuditSnapshot(identity, unitRanges)
	require.NoError(t, err)
	assert.Equal(t, "Hypercubic"+gate.VerifiedSuffix, third.Motif, "trust carried over from the override")
}

func TestAuditSnapshot_ShapeErrorsLeaveStateUntouched(t *testing.T) {
	v := New(DefaultConfig())

	_, err := v.AuditSnapshot(alignedSnapshot, baseRanges[:3])
	assert.ErrorIs(t, err, ErrShape)
	_, err = v.AuditSnapshot(alignedSnapshot, []Range{{0, 23}, {1, 1}, {1, 5}, {3, 8}})
	assert.ErrorIs(t, err, ErrShape)

	assert.Empty(t, v.History())
	assert.Equal(t, 0.5, v.Trust())
}

func TestReset(t *testing.T) {
	v := New(DefaultConfig())
	id := v.SessionID()
	_, err := v.AuditSnapshot(alignedSnapshot, baseRanges)
	require.NoError(t, err)

	v.Reset()
	assert.Equal(t, 0.5, v.Trust())
	assert.Empty(t, v.History())
	assert.NotEqual(t, id, v.SessionID())

	a, err := v.AuditSnapshot(alignedSnapshot, baseRanges)
	require.NoError(t, err)
	assert.Equal(t, 1, a.Step)
	assert.InDelta(t, 0.7, a.Trust, 1e-12)
}

func TestObserversSeeEveryAuditInOrder(t *testing.T) {
	at := time.Date(2026, 5, 4, 3, 2, 1, 0, time.UTC)
	obs := &recordingObserver{}
	v := New(DefaultConfig(), WithObserver(obs), WithClock(func() time.Time { return at }))

	for i := 0; i < 3; i++ {
		_, err := v.AuditSnapshot(alignedSnapshot, baseRanges)
		require.NoError(t, err)
	}
	require.Len(t, obs.audits, 3)
	for i, a := range obs.audits {
		assert.Equal(t, i+1, a.Step)
		assert.Equal(t, v.SessionID(), a.SessionID)
		assert.Equal(t, at, a.Time)
	}
}

func TestConcurrentAuditsAreSerialized(t *testing.T) {
	obs := &recordingObserver{}
	v := New(DefaultConfig(), WithObserver(obs))

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				snap := alignedSnapshot
				if (g+i)%2 == 0 {
					snap = driftSnapshot
				}
				ranges := baseRanges
				if snap == driftSnapshot {
					ranges = unitRanges
				}
				a, err := v.AuditSnapshot(snap, ranges)
				assert.NoError(t, err)
				assert.GreaterOrEqual(t, a.Trust, 0.0)
				assert.LessOrEqual(t, a.Trust, 1.0)
			}
		}(g)
	}
	wg.Wait()

	assert.Len(t, v.History(), 80)
	require.Len(t, obs.audits, 80)
	for i, a := range obs.audits {
		assert.Equal(t, i+1, a.Step)
	}
}

func TestIndependentSessions(t *testing.T) {
	a := New(DefaultConfig())
	b := New(DefaultConfig())
	_, err := a.AuditSnapshot(alignedSnapshot, baseRanges)
	require.NoError(t, err)
	assert.Equal(t, 0.5, b.Trust())
	assert.Empty(t, b.History())
	assert.NotEqual(t, a.SessionID(), b.SessionID())
}
