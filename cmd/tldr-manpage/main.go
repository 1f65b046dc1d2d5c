package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/tldr/cmd/tldr"
	"github.com/arthur-debert/tldr/internal/version"
)

func main() {
	rootCmd := tldr.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "TLDR",
		Section: "1",
		Source:  "tldr " + version.Version,
		Manual:  "tldr manual",
	}

	err := doc.GenMan(rootCmd, header, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
