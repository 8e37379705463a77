package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/danielpatrickdp/lattice-stage/internal/ledger"
	"github.com/danielpatrickdp/lattice-stage/internal/replay"
	"github.com/danielpatrickdp/lattice-stage/internal/report"
	"github.com/danielpatrickdp/lattice-stage/internal/verifier"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to a ledger database (DB mode)")
	session := flag.String("session", "", "session to replay in DB mode (default: latest)")
	fixturePath := flag.String("fixture", "", "path to a YAML or JSON fixture (fixture mode)")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if (*dbPath == "" && *fixturePath == "") || (*dbPath != "" && *fixturePath != "") {
		fmt.Fprintln(os.Stderr, "usage: replay --db path/to/ledger.db [--session id]")
		fmt.Fprintln(os.Stderr, "       replay --fixture path/to/fixture.yaml")
		os.Exit(2)
	}

	var (
		f   *replay.Fixture
		err error
	)
	if *fixturePath != "" {
		f, err = replay.LoadFixture(*fixturePath)
	} else {
		f, err = fixtureFromDB(*dbPath, *session)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "load: %v\n", err)
		os.Exit(2)
	}
	os.Exit(run(f, logger))
}

// #endregion main

// #region db-extract

// fixtureFromDB turns a recorded session into a fixture. Recorded sessions are replayed
// with the default verifier configuration.
func fixtureFromDB(path, sessionID string) (*replay.Fixture, error) {
	store, err := ledger.NewStore(path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	defer store.Close()

	if sessionID == "" {
		if sessionID, err = store.LatestSession(); err != nil {
			return nil, err
		}
	}
	entries, err := store.Audits(sessionID)
	if err != nil {
		return nil, err
	}
	return replay.FromLedger(sessionID, entries, verifier.DefaultConfig())
}

// #endregion db-extract

// #region output

// run replays f, prints the comparison and returns the exit code.
func run(f *replay.Fixture, logger *slog.Logger) int {
	steps, err := replay.Replay(f, verifier.WithLogger(logger))
	if err != nil {
		fmt.Fprintf(os.Stderr, "replay: %v\n", err)
		return 2
	}
	summary := replay.Summarize(steps)
	if f.Description != "" {
		fmt.Println(f.Description)
	}
	report.Replay(os.Stdout, steps, summary)
	if summary.Diverged > 0 {
		return 1
	}
	return 0
}

// #endregion output
