package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"procure.GO/model/entity"
)

var (
	userName     string
	userUsername string
	userPassword string
	userRole     string
	userRoleOnly string
)

var usersCreateCmd = &cobra.Command{
	Use:   "users:create",
	Short: "Register a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		role, err := entity.ParseRole(userRole)
		if err != nil {
			return err
		}
		return withApp(func(a *app) error {
			u, err := a.accounts.Register(userName, userUsername, userPassword, role)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created user %s (%s)\n", u.ID, u.Role)
			return nil
		})
	},
}

var usersListCmd = &cobra.Command{
	Use:   "users:list",
	Short: "List users",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			var (
				list []entity.User
				err  error
			)
			if userRoleOnly != "" {
				role, perr := entity.ParseRole(userRoleOnly)
				if perr != nil {
					return perr
				}
				list, err = a.users.ByRole(role)
			} else {
				list, err = a.users.List()
			}
			if err != nil {
				return err
			}
			tw := table(cmd.OutOrStdout(), "ID", "USERNAME", "NAME", "ROLE")
			for _, u := range list {
				row(tw, u.ID, u.Username, u.Name, u.Role)
			}
			return tw.Flush()
		})
	},
}

var usersLoginCmd = &cobra.Command{
	Use:   "users:login",
	Short: "Check a username and password",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			u, err := a.accounts.Authenticate(userUsername, userPassword)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Welcome %s (%s, %s)\n", u.Name, u.ID, u.Role)
			return nil
		})
	},
}

func init() {
	usersCreateCmd.Flags().StringVar(&userName, "name", "", "full name")
	usersCreateCmd.Flags().StringVar(&userUsername, "username", "", "login name")
	usersCreateCmd.Flags().StringVar(&userPassword, "password", "", "password")
	usersCreateCmd.Flags().StringVar(&userRole, "role", "", "role, e.g. purchase_manager")
	for _, f := range []string{"username", "password", "role"} {
		usersCreateCmd.MarkFlagRequired(f)
	}

	usersListCmd.Flags().StringVar(&userRoleOnly, "role", "", "only users with this role")

	usersLoginCmd.Flags().StringVar(&userUsername, "username", "", "login name")
	usersLoginCmd.Flags().StringVar(&userPassword, "password", "", "password")
	usersLoginCmd.MarkFlagRequired("username")

	rootCmd.AddCommand(usersCreateCmd, usersListCmd, usersLoginCmd)
}
