package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skf-fest/refresko/internal/session"
)

var loginAdminMode bool

var loginCmd = &cobra.Command{
	Use:   "login <email> <password>",
	Short: "Log in as a participant or admin and print the resulting route",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Already-authenticated sessions skip the form, like the login
		// page does on mount.
		route, err := current.sessions.Route(loginAdminMode)
		if err != nil {
			return err
		}
		if route != session.RouteLogin {
			fmt.Printf("already authenticated: %s\n", route)
			return nil
		}

		route, err = current.sessions.Login(cmd.Context(), args[0], args[1])
		if errors.Is(err, session.ErrInvalidCredentials) {
			return errors.New("Invalid credentials. Please try again.")
		}
		if err != nil {
			return err
		}
		fmt.Printf("logged in: %s\n", route)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the current session flags",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := current.sessions.Logout(); err != nil {
			return err
		}
		fmt.Println("logged out")
		return nil
	},
}

func init() {
	loginCmd.Flags().BoolVar(&loginAdminMode, "admin", false,
		"admin login mode: stay on the form even with a participant session")
}
