package main

import (
	"github.com/ribgsilva/meditate/app/cmd/schema"
	"github.com/spf13/cobra"
	"os"
)

func main() {
	root := &cobra.Command{
		Use:          "notes-admin",
		Short:        "Administration commands for the notes database",
		SilenceUsage: true,
	}
	root.AddCommand(schema.Command())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
