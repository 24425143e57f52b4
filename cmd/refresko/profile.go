package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skf-fest/refresko/internal/models"
	"github.com/skf-fest/refresko/internal/storage"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or complete the student profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the saved student profile",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, ok, err := current.repo.Profile()
		if err != nil {
			return err
		}
		if !ok {
			return errors.New("no profile saved; run profile set first")
		}
		fmt.Printf("%s  %s  %s  %s  year %s\n",
			profile.StudentID, profile.Name, profile.Email,
			profile.Department, profile.Year)
		return nil
	},
}

var profileSet struct {
	id, name, email, department, year string
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Save the student profile and mark profile setup complete",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		authed, err := current.repo.Flag(storage.KeyIsAuthenticated)
		if err != nil {
			return err
		}
		if !authed {
			return errors.New("login required before profile setup")
		}

		err = current.repo.SaveProfile(models.StudentProfile{
			StudentID:  profileSet.id,
			Name:       profileSet.name,
			Email:      profileSet.email,
			Department: profileSet.department,
			Year:       profileSet.year,
		})
		if err != nil {
			return err
		}
		fmt.Println("profile saved")
		return nil
	},
}

func init() {
	flags := profileSetCmd.Flags()
	flags.StringVar(&profileSet.id, "id", "", "student code, e.g. STU001")
	flags.StringVar(&profileSet.name, "name", "", "full name")
	flags.StringVar(&profileSet.email, "email", "", "email address")
	flags.StringVar(&profileSet.department, "department", "", "department")
	flags.StringVar(&profileSet.year, "year", "", "year of study")
	profileSetCmd.MarkFlagRequired("id")
	profileSetCmd.MarkFlagRequired("name")

	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileSetCmd)
}
