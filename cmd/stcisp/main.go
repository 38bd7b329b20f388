// Command stcisp programs STC 8051-family microcontrollers over their BSL
// UART bootloader protocol. See `stcisp --help` for the flag surface.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/grigorig/stcgal/internal/cli"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	holder := &cli.ExitHolder{}
	root := cli.NewRootCommand(ctx, holder)

	if err := root.Execute(); err != nil && holder.Code == cli.ExitSuccess {
		// A flag-parsing or usage error: Run never got a chance to set
		// holder.Code, so map it to the generic error exit status.
		holder.Code = cli.ExitError
	}
	if ctx.Err() != nil && holder.Code == cli.ExitSuccess {
		holder.Code = cli.ExitInterrupted
	}

	os.Exit(int(holder.Code))
}
