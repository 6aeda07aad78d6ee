package main

import (
	"fmt"

	"github.com/kdimtricp/videogrid/internal/catalog"
	"github.com/kdimtricp/videogrid/internal/grouping"
	"github.com/kdimtricp/videogrid/internal/thumbnail"
	"github.com/spf13/cobra"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the catalog grouped by day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withCatalog(cmd.Context(), func(client *catalog.Client) error {
				videos, err := client.FetchAll(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(videos) == 0 {
					fmt.Fprintln(out, "Catalog is empty")
					return nil
				}

				for _, group := range grouping.GroupByDay(videos, ctx.location) {
					rows := make([][]string, 0, len(group.Videos))
					for _, v := range group.Videos {
						rows = append(rows, []string{
							v.ID,
							v.Name,
							v.Category,
							v.RecommendedBy,
							yesNo(thumbnail.Resolve(v).Available),
						})
					}
					fmt.Fprintln(out, renderTable(group.Key,
						[]string{"ID", "Name", "Category", "Recommended by", "Thumbnail"}, rows))
				}
				return nil
			})
		},
	}
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
