package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/kdimtricp/videogrid/internal/catalog"
	"github.com/kdimtricp/videogrid/internal/seed"
	"github.com/spf13/cobra"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.toml>",
		Short: "Add every [[videos]] entry of a TOML file, in file order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			drafts, err := seed.DecodeFile(args[0])
			if err != nil {
				return err
			}
			return ctx.withCatalog(cmd.Context(), func(client *catalog.Client) error {
				n, err := seed.Import(cmd.Context(), client, drafts)
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %s of %s videos\n", humanize.Comma(int64(n)), humanize.Comma(int64(len(drafts))))
				return err
			})
		},
	}
}
