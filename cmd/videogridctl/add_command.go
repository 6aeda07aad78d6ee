package main

import (
	"fmt"

	"github.com/kdimtricp/videogrid/internal/catalog"
	"github.com/kdimtricp/videogrid/internal/models"
	"github.com/spf13/cobra"
)

func newAddCommand(ctx *commandContext) *cobra.Command {
	var draft models.Draft

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a video dated now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := draft.Validate(); err != nil {
				return err
			}
			return ctx.withCatalog(cmd.Context(), func(client *catalog.Client) error {
				video, err := client.Add(cmd.Context(), draft)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %q as %s\n", video.Name, video.ID)
				return nil
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&draft.Name, "name", "", "Display title")
	flags.StringVar(&draft.URL, "url", "", "Video link")
	flags.StringVar(&draft.Category, "category", "", "Category label")
	flags.StringVar(&draft.RecommendedBy, "recommended-by", "", "Who recommended it")
	flags.StringVar(&draft.Comment, "comment", "", "Optional note")
	flags.StringVar(&draft.Thumbnail, "thumbnail", "", "Optional image URL")

	return cmd
}

func newRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a video by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withCatalog(cmd.Context(), func(client *catalog.Client) error {
				if err := client.Remove(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
				return nil
			})
		},
	}
}
