package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/miniada/miniada"
	"github.com/miniada/miniada/cmd/internal/cliutil"
)

func (c *cli) dumpCommand() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "dump [file|dir ...]",
		Short: "Print the activation-record layout of every procedure",
		Long: `dump analyzes each program and prints one frame per procedure, innermost
first: parameter offsets counted up from the frame header, local offsets
counted from the local base, and any nested procedures.`,
		Example: `  miniada dump prog.ada
  miniada dump -f json -o frames.json prog.ada
  miniada dump -f table src/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := c.source(cmd, args)
			if err != nil {
				return cliutil.Exit(exitError, err)
			}
			results, err := miniada.AnalyzeAll(cmd.Context(), src, c.analyzeOptions()...)
			if err != nil {
				return cliutil.Exit(exitError, err)
			}

			w, done, err := cliutil.GetOutput(output, cmd.OutOrStdout())
			if err != nil {
				return cliutil.Exit(exitError, err)
			}
			defer done()

			if err := c.writeDump(w, cmd.ErrOrStderr(), results); err != nil {
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
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	return cmd
}

func (c *cli) writeDump(w, errw io.Writer, results []*miniada.Result) error {
	out := make([]ProgramJSON, 0, len(results))
	for _, r := range results {
		out = append(out, programJSON(r, true))
	}
	if ok, err := encode(w, c.cfg.Output.Format, out); ok {
		return err
	}

	s := newStyles(c.color)
	for i, r := range results {
		if !r.Successful() {
			writeDiagnostics(errw, s, r)
			continue
		}
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s %s\n", s.dim.Render("#"), r.File)
		for _, f := range r.Frames {
			if c.cfg.Output.Format == "table" {
				writeFrameTable(w, s, f)
			} else {
				writeFrameText(w, s, f)
			}
		}
	}
	return nil
}
