package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/miniada/miniada/cmd/internal/cliutil"
	"github.com/miniada/miniada/internal/store"
)

func (c *cli) runsCommand() *cobra.Command {
	var (
		storePath string
		limit     int
		pruneAge  time.Duration
	)
	cmd := &cobra.Command{
		Use:   "runs [run-id]",
		Short: "List recorded check runs, or the frames of one run",
		Args:  cobra.MaximumNArgs(1),
		Example: `  miniada runs --store runs.db
  miniada runs --store runs.db 1b4e28ba-2fa1-11d2-883f-0016d3cca427
  miniada runs --store runs.db --prune 720h`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if storePath == "" {
				storePath = c.cfg.Store.Path
			}
			if storePath == "" {
				return cliutil.Exit(exitError, errors.New("no store configured: use --store or store.path"))
			}
			st, err := store.Open(storePath)
			if err != nil {
				return cliutil.Exit(exitConfig, err)
			}
			defer st.Close()

			ctx := cmd.Context()
			w := cmd.OutOrStdout()

			if pruneAge > 0 {
				n, err := st.Prune(ctx, time.Now().UTC().Add(-pruneAge))
				if err != nil {
					return cliutil.Exit(exitConfig, err)
				}
				fmt.Fprintf(w, "pruned %d runs\n", n)
				return nil
			}

			if len(args) == 1 {
				frames, err := st.Frames(ctx, args[0])
				if errors.Is(err, store.ErrRunNotFound) {
					return cliutil.Exit(exitError, err)
				}
				if err != nil {
					return cliutil.Exit(exitConfig, err)
				}
				if ok, err := encode(w, c.cfg.Output.Format, frames); ok {
					return err
				}
				s := newStyles(c.color)
				for _, f := range frames {
					if c.cfg.Output.Format == "table" {
						writeFrameTable(w, s, f)
					} else {
						writeFrameText(w, s, f)
					}
				}
				return nil
			}

			runs, err := st.Runs(ctx, limit)
			if err != nil {
				return cliutil.Exit(exitConfig, err)
			}
			return c.writeRuns(w, runs)
		},
	}
	cmd.Flags().StringVar(&storePath, "store", "", "SQLite run database (overrides store.path)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum runs to list (0 for all)")
	cmd.Flags().DurationVar(&pruneAge, "prune", 0, "delete runs older than this age instead of listing")
	return cmd
}

func (c *cli) writeRuns(w io.Writer, runs []store.Run) error {
	if ok, err := encode(w, c.cfg.Output.Format, runs); ok {
		return err
	}

	s := newStyles(c.color)
	if c.cfg.Output.Format == "table" {
		t := s.table("ID", "Created", "Program", "Status", "Tokens", "Error")
		for _, r := range runs {
			status := s.ok.Render("ok")
			if !r.Successful {
				status = s.fail.Render("FAIL")
			}
			t.Row(r.ID, r.CreatedAt.Format(time.RFC3339), r.Program, status, strconv.Itoa(r.Tokens), r.ErrorCode)
		}
		_, err := fmt.Fprintln(w, t.String())
		return err
	}

	for _, r := range runs {
		status := s.ok.Render("ok")
		if !r.Successful {
			status = s.fail.Render("FAIL")
		}
		line := fmt.Sprintf("%s  %s  %-4s %s", r.ID, r.CreatedAt.Format(time.RFC3339), status, r.Program)
		if r.ErrorCode != "" {
			line += "  " + r.ErrorCode
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
