package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/danielpatrickdp/lattice-stage/internal/catalog"
	"github.com/danielpatrickdp/lattice-stage/internal/classifier"
	"github.com/danielpatrickdp/lattice-stage/internal/geometry"
	"github.com/danielpatrickdp/lattice-stage/internal/ledger"
	"github.com/danielpatrickdp/lattice-stage/internal/probe"
	"github.com/danielpatrickdp/lattice-stage/internal/replay"
	"github.com/danielpatrickdp/lattice-stage/internal/verifier"
)

// #region classifier

// Classification prints a result with its lengths and angles.
func Classification(w io.Writer, r classifier.Result) {
	fmt.Fprintln(w, Styles.Title.Render(fmt.Sprintf("%s (#%d)", r.Category, r.CategoryID)))
	def := catalog.Describe(r.CategoryID)
	fmt.Fprintln(w, Styles.Muted.Render(fmt.Sprintf("edges %s, angles %s", def.Edges, def.Angles)))
	fmt.Fprintln(w, Styles.Muted.Render(fmt.Sprintf("tolerance %v, angle tolerance %v°", r.Tolerances.Length, r.Tolerances.Angle)))

	l := r.Metrics.Lengths
	a := r.Metrics.Angles
	t := newTable("a", "b", "c", "d", "α", "β", "γ", "δ", "ε", "ζ").Row(
		num(l.A), num(l.B), num(l.C), num(l.D),
		deg(a.Alpha), deg(a.Beta), deg(a.Gamma), deg(a.Delta), deg(a.Epsilon), deg(a.Zeta),
	)
	fmt.Fprintln(w, t.String())
}

// #endregion classifier

// #region generator

// Matrix prints a generated basis, one row per vector.
func Matrix(w io.Writer, name string, id int, set geometry.Set) {
	fmt.Fprintln(w, Styles.Title.Render(fmt.Sprintf("%s (#%d)", name, id)))
	t := newTable("", "x", "y", "z", "w")
	for i, v := range set {
		t.Row(string(rune('a'+i)), num(v[0]), num(v[1]), num(v[2]), num(v[3]))
	}
	fmt.Fprintln(w, t.String())
}

// GenerationFailure prints a family the generator could not build.
func GenerationFailure(w io.Writer, id int, err error) {
	fmt.Fprintln(w, Styles.Bad.Render(fmt.Sprintf("#%d: %v", id, err)))
}

// #endregion generator

// #region probe

// Distribution prints ranked label counts.
func Distribution(w io.Writer, title string, d probe.Distribution) {
	fmt.Fprintln(w, Styles.Title.Render(fmt.Sprintf("%s (%d samples)", title, d.Total)))
	t := newTable("family", "count", "share")
	for _, r := range d.Ranked() {
		t.Row(r.Label, strconv.Itoa(r.Count), fmt.Sprintf("%.1f%%", r.Share*100))
	}
	fmt.Fprintln(w, t.String())
}

// Survey prints every phase of a survey and the families it never reached.
func Survey(w io.Writer, r probe.SurveyReport) {
	Distribution(w, "Random", r.Random)
	Distribution(w, "Structured", r.Structured)
	Distribution(w, "Targeted (strict)", r.Strict)
	Distribution(w, "Targeted (loose)", r.Loose)
	Distribution(w, "Overall", r.Overall)
	if len(r.Missing) == 0 {
		fmt.Fprintln(w, Styles.Good.Render("every family observed"))
		return
	}
	fmt.Fprintln(w, Styles.Warning.Render(fmt.Sprintf("never observed (%d): %s", len(r.Missing), strings.Join(r.Missing, ", "))))
}

// Chains prints the chain scenarios.
func Chains(w io.Writer, scenarios []probe.ChainScenario) {
	t := newTable("scenario", "chain", "observer", "protocol", "entropy", "result")
	for _, s := range scenarios {
		observer := "-"
		if s.Compare != nil {
			observer = strings.Join(s.Compare.Chain, " → ")
		}
		t.Row(s.Name, strings.Join(s.Report.Chain, " → "), observer, s.Report.Protocol,
			fmt.Sprintf("%.3f", s.Report.Entropy), mark(s.Pass))
	}
	fmt.Fprintln(w, t.String())
}

// #endregion probe

// #region verifier

// AuditLine renders one audit as a single status line.
func AuditLine(a verifier.Audit) string {
	motif := Styles.Muted.Render(a.Motif)
	switch {
	case a.Trust > 0.7:
		motif = Styles.Good.Render(a.Motif)
	case a.Trust > 0.5:
		motif = Styles.Warning.Render(a.Motif)
	}
	return fmt.Sprintf("#%-4d %s  trust %.2f  angle %6.2f°  %s  %s",
		a.Step, motif, a.Trust, a.Angle, a.Family, Styles.Muted.Render(a.Protocol))
}

// Replay prints a step-by-step replay comparison followed by the summary.
func Replay(w io.Writer, steps []replay.Step, s replay.Summary) {
	t := newTable("step", "motif", "trust", "protocol", "action", "check")
	for _, st := range steps {
		check := "-"
		if st.Expect != nil {
			check = mark(st.OK())
			if !st.OK() {
				check += " " + strings.Join(st.Mismatches, "; ")
			}
		}
		t.Row(st.Label, st.Audit.Motif, fmt.Sprintf("%.4f", st.Audit.Trust), st.Audit.Protocol, string(st.Audit.Action), check)
	}
	fmt.Fprintln(w, t.String())
	fmt.Fprintf(w, "Summary: %d total, %d checked, %d match, %d diverge; final trust %.4f (%s)\n",
		s.Total, s.Checked, s.Matched, s.Diverged, s.FinalTrust, s.Protocol)
}

// #endregion verifier

// #region ledger

// Sessions prints recorded sessions.
func Sessions(w io.Writer, sessions []ledger.Session) {
	t := newTable("session", "label", "started", "audits", "trust", "protocol")
	for _, s := range sessions {
		t.Row(s.SessionID, s.Label, s.StartedAt.Format("2006-01-02 15:04:05"), strconv.Itoa(s.Audits),
			fmt.Sprintf("%.2f", s.FinalTrust), s.Protocol)
	}
	fmt.Fprintln(w, t.String())
}

// Entries prints the audits of one session.
func Entries(w io.Writer, entries []ledger.Entry) {
	t := newTable("step", "motif", "trust", "angle", "family", "protocol", "action")
	for _, e := range entries {
		t.Row(strconv.Itoa(e.Step), e.Motif, fmt.Sprintf("%.2f", e.Trust), deg(e.Angle), e.Family, e.Protocol, e.Action)
	}
	fmt.Fprintln(w, t.String())
}

// #endregion ledger

func num(v float64) string { return strconv.FormatFloat(v, 'f', 4, 64) }

func deg(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) + "°" }
