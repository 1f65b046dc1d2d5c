package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/arthur-debert/tldr/cmd/tldr"
	"github.com/arthur-debert/tldr/pkg/ui"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := tldr.NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !tldr.IsReported(err) {
			fmt.Fprintln(os.Stderr, tldr.FormatError(err, ui.ShouldStyle(ui.ColorAuto, os.Stderr)))
		}
		stop()
		os.Exit(1)
	}
}
