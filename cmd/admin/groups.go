package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/yatube/backend/post"
)

func newGroupCmd(app *adminApp) *cobra.Command {
	groupCmd := &cobra.Command{
		Use:   "group",
		Short: "Manage post groups",
	}

	var params post.CreateGroupParams
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a group",
		RunE: func(cmd *cobra.Command, args []string) error {
			srvc, err := app.postSrvc(cmd.Context())
			if err != nil {
				return err
			}
			g, err := srvc.CreateGroup(cmd.Context(), params)
			if err != nil {
				return fmt.Errorf("failed to create group: %w", err)
			}
			log.Info().Int64("id", g.ID).Str("slug", g.Slug).Msg("group created")
			fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", g.ID, g.Slug)
			return nil
		},
	}
	createCmd.Flags().StringVarP(&params.Title, "title", "t", "", "Group title (required)")
	createCmd.Flags().StringVarP(&params.Slug, "slug", "s", "", "Group address (required)")
	createCmd.Flags().StringVarP(&params.Description, "description", "d", "", "Group description")
	createCmd.MarkFlagRequired("title")
	createCmd.MarkFlagRequired("slug")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List groups",
		RunE: func(cmd *cobra.Command, args []string) error {
			srvc, err := app.postSrvc(cmd.Context())
			if err != nil {
				return err
			}
			groups, err := srvc.ListGroups(cmd.Context())
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tSLUG\tTITLE")
			for _, g := range groups {
				fmt.Fprintf(tw, "%d\t%s\t%s\n", g.ID, g.Slug, g.Title)
			}
			return tw.Flush()
		},
	}

	groupCmd.AddCommand(createCmd, listCmd)
	return groupCmd
}
