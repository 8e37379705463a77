package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/danielpatrickdp/lattice-stage/internal/ledger"
	"github.com/danielpatrickdp/lattice-stage/internal/replay"
	"github.com/danielpatrickdp/lattice-stage/internal/verifier"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to a ledger database")
	session := flag.String("session", "", "session to export (default: latest)")
	last := flag.Int("last", 0, "only keep expectations for the last N audits (0 = all)")
	outPath := flag.String("out", "", "output fixture path (.yaml or .json)")
	flag.Parse()

	if *dbPath == "" || *outPath == "" {
		fmt.Fprintln(os.Stderr, "usage: fixture-export --db path/to/ledger.db --out path/to/fixture.yaml [--session id] [--last N]")
		os.Exit(2)
	}

	if err := run(*dbPath, *session, *last, *outPath); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region extract

func run(dbPath, sessionID string, last int, outPath string) error {
	store, err := ledger.NewStore(dbPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer store.Close()

	if sessionID == "" {
		if sessionID, err = store.LatestSession(); err != nil {
			return fmt.Errorf("find session: %w", err)
		}
	}
	entries, err := store.Audits(sessionID)
	if err != nil {
		return err
	}
	fmt.Printf("Found %d audits in session %s\n", len(entries), sessionID)

	f, err := replay.FromLedger(sessionID, entries, verifier.DefaultConfig())
	if err != nil {
		return err
	}
	if last > 0 {
		f.KeepLastExpectations(last)
	}
	return replay.WriteFixture(f, outPath)
}

// #endregion extract
