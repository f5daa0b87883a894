package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/miniada/miniada"
	"github.com/miniada/miniada/cmd/internal/cliutil"
	"github.com/miniada/miniada/internal/store"
)

func (c *cli) checkCommand() *cobra.Command {
	var storePath string
	cmd := &cobra.Command{
		Use:   "check [file|dir ...]",
		Short: "Analyze programs and report the first error in each",
		Example: `  miniada check prog.ada
  miniada check -f table testdata/programs
  miniada check --store runs.db src/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := c.source(cmd, args)
			if err != nil {
				return cliutil.Exit(exitError, err)
			}
			results, err := miniada.AnalyzeAll(cmd.Context(), src, c.analyzeOptions()...)
			if err != nil {
				return cliutil.Exit(exitError, err)
			}

			if storePath == "" {
				storePath = c.cfg.Store.Path
			}
			if storePath != "" {
				if err := saveRuns(cmd.Context(), storePath, results); err != nil {
					return cliutil.Exit(exitConfig, err)
				}
			}

			if err := c.writeCheck(cmd.OutOrStdout(), results); err != nil {
				return cliutil.Exit(exitError, err)
			}
			for _, r := range results {
				if !r.Successful() {
					return cliutil.Exit(exitError, nil)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&storePath, "store", "", "record runs in this SQLite database (overrides store.path)")
	return cmd
}

func (c *cli) writeCheck(w io.Writer, results []*miniada.Result) error {
	out := make([]ProgramJSON, 0, len(results))
	for _, r := range results {
		out = append(out, programJSON(r, false))
	}
	if ok, err := encode(w, c.cfg.Output.Format, out); ok {
		return err
	}

	s := newStyles(c.color)
	if c.cfg.Output.Format == "table" {
		t := s.table("Program", "File", "Status", "Procedures", "Error")
		for _, r := range results {
			status := s.ok.Render("ok")
			msg := ""
			if !r.Successful() {
				status = s.fail.Render("FAIL")
				msg = r.Err.Error()
			}
			t.Row(r.Name, r.File, status, strconv.Itoa(len(r.Frames)), msg)
		}
		_, err := fmt.Fprintln(w, t.String())
		return err
	}

	failed := 0
	for _, r := range results {
		if r.Successful() {
			fmt.Fprintf(w, "%s   %s (%d procedures)\n", s.ok.Render("ok"), r.Name, len(r.Frames))
			continue
		}
		failed++
		fmt.Fprintf(w, "%s %s\n", s.fail.Render("FAIL"), r.Name)
		writeDiagnostics(w, s, r)
	}
	_, err := fmt.Fprintf(w, "%d programs, %d failed\n", len(results), failed)
	return err
}

func saveRuns(ctx context.Context, path string, results []*miniada.Result) error {
	st, err := store.Open(path)
	if err != nil {
		return err
	}
	defer st.Close()

	for _, r := range results {
		run := &store.Run{
			Program:    r.Name,
			File:       r.File,
			Successful: r.Successful(),
			Tokens:     r.Tokens,
			Frames:     r.Frames,
		}
		if r.Err != nil {
			run.Error = r.Err.Error()
			var aerr *miniada.Error
			if errors.As(r.Err, &aerr) {
				run.ErrorCode = aerr.Code
			}
		}
		if err := st.SaveRun(ctx, run); err != nil {
			return err
		}
	}
	return nil
}
