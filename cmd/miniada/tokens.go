package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/miniada/miniada/cmd/internal/cliutil"
	"github.com/miniada/miniada/internal/lexer"
	"github.com/miniada/miniada/internal/types"
)

// TokenJSON is the serializable form of a token.
type TokenJSON struct {
	Kind   string `json:"kind" yaml:"kind"`
	Lexeme string `json:"lexeme" yaml:"lexeme"`
	Line   int    `json:"line" yaml:"line"`
}

func (c *cli) tokensCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <file>",
		Short: "Print the token stream of a program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := os.ReadFile(args[0])
			if err != nil {
				return cliutil.Exit(exitError, err)
			}
			lx := lexer.New(content, types.ComponentLogger(c.logger, "lexer"))
			tokens, diags := lx.Tokenize()

			if err := c.writeTokens(cmd.OutOrStdout(), tokens); err != nil {
				return cliutil.Exit(exitError, err)
			}
			for _, d := range diags {
				d.File = args[0]
				fmt.Fprintln(cmd.ErrOrStderr(), d.String())
			}
			if len(diags) > 0 {
				return cliutil.Exit(exitError, nil)
			}
			return nil
		},
	}
}

func (c *cli) writeTokens(w io.Writer, tokens []lexer.Token) error {
	out := make([]TokenJSON, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, TokenJSON{Kind: tok.Kind.String(), Lexeme: tok.Lexeme, Line: tok.Line})
	}
	if ok, err := encode(w, c.cfg.Output.Format, out); ok {
		return err
	}

	if c.cfg.Output.Format == "table" {
		s := newStyles(c.color)
		t := s.table("Line", "Kind", "Lexeme")
		for _, tok := range out {
			t.Row(strconv.Itoa(tok.Line), tok.Kind, tok.Lexeme)
		}
		_, err := fmt.Fprintln(w, t.String())
		return err
	}

	for _, tok := range out {
		if _, err := fmt.Fprintf(w, "%4d  %-10s %s\n", tok.Line, tok.Kind, tok.Lexeme); err != nil {
			return err
		}
	}
	return nil
}
