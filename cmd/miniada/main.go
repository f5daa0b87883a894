// Command miniada checks Mini-Ada programs and prints the activation-record
// layout of their procedures.
package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"

	"github.com/miniada/miniada/cmd/internal/cliutil"
)

// Exit codes.
const (
	exitOK     = 0 // success
	exitError  = 1 // user error or analysis failure
	exitConfig = 2 // configuration or storage failure
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	c := &cli{}
	root := c.rootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return exitOK
	}

	var ee *cliutil.ExitError
	if errors.As(err, &ee) {
		if ee.Err != nil {
			cliutil.PrintError(stderr, "%v", ee.Err)
		}
		return ee.Code
	}
	cliutil.PrintError(stderr, "%v", err)
	return exitError
}
