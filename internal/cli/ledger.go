package cli

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danielpatrickdp/lattice-stage/internal/ledger"
	"github.com/danielpatrickdp/lattice-stage/internal/report"
)

func newLedgerCmd(a *app) *cobra.Command {
	var (
		sessions bool
		limit    int
	)
	cmd := &cobra.Command{
		Use:   "ledger [session-id]",
		Short: "Show recorded audits",
		Long: `Show the audits of a recorded session, the latest one by default. With --sessions
list the recorded sessions instead. The default in-memory ledger is empty in a new
process; point --ledger-dsn (or ledger.dsn) at a file to keep sessions.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ledger.NewStore(a.cfg.Ledger.DSN)
			if err != nil {
				return err
			}
			defer store.Close()
			out := cmd.OutOrStdout()

			if sessions {
				list, err := store.ListSessions(limit)
				if err != nil {
					return err
				}
				report.Sessions(out, list)
				return nil
			}

			id := ""
			if len(args) == 1 {
				id = args[0]
			} else if id, err = store.LatestSession(); err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					fmt.Fprintln(out, "no sessions recorded")
					return nil
				}
				return err
			}
			entries, err := store.Audits(id)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "session %s: %d audits\n", id, len(entries))
			report.Entries(out, entries)
			return nil
		},
	}
	cmd.Flags().BoolVar(&sessions, "sessions", false, "list sessions instead of audits")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum sessions to list")
	cmd.Flags().String("ledger-dsn", "", "sqlite DSN for the audit ledger")
	return cmd
}
