package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/yatube/backend/post"
)

func newPostCmd(app *adminApp) *cobra.Command {
	postCmd := &cobra.Command{
		Use:   "post",
		Short: "Post tools",
	}

	validateCmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Check a post text against the length limits",
		Long:  "Reads the text from the given file, or from stdin when no file is given.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var text []byte
			var err error
			if len(args) == 1 {
				text, err = os.ReadFile(args[0])
			} else {
				text, err = io.ReadAll(cmd.InOrStdin())
			}
			if err != nil {
				return fmt.Errorf("failed to read text: %w", err)
			}

			if _, err := post.ValidateText(string(text), app.limits()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}

	postCmd.AddCommand(validateCmd)
	return postCmd
}
