package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/yatube/backend/user"
)

func newUserCmd(app *adminApp) *cobra.Command {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users",
	}

	var params user.CreateUserParams
	var firstname, lastname string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("firstname") {
				params.Firstname = &firstname
			}
			if cmd.Flags().Changed("lastname") {
				params.Lastname = &lastname
			}
			srvc, err := app.userSrvc(cmd.Context())
			if err != nil {
				return err
			}
			u, err := srvc.CreateUser(cmd.Context(), params)
			if err != nil {
				return fmt.Errorf("failed to create user: %w", err)
			}
			log.Info().Str("uuid", u.UUID.String()).Str("username", u.Username).Msg("user created")
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", u.UUID, u.Username)
			return nil
		},
	}
	createCmd.Flags().StringVarP(&params.Username, "username", "u", "", "Username (required)")
	createCmd.Flags().StringVarP(&params.Email, "email", "e", "", "Email (required)")
	createCmd.Flags().StringVarP(&params.Password, "password", "p", "", "Password (required)")
	createCmd.Flags().StringVar(&firstname, "firstname", "", "First name")
	createCmd.Flags().StringVar(&lastname, "lastname", "", "Last name")
	createCmd.MarkFlagRequired("username")
	createCmd.MarkFlagRequired("email")
	createCmd.MarkFlagRequired("password")

	userCmd.AddCommand(createCmd)
	return userCmd
}
