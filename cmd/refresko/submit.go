package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/skf-fest/refresko/internal/payments"
)

var submitFlags struct {
	utr        string
	screenshot string
}

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit a payment proof (UTR + screenshot) for the registration fee",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags, err := current.sessions.Flags()
		if err != nil {
			return err
		}
		// The payment page is only reachable with a complete profile.
		if !flags.IsAuthenticated || !flags.ProfileCompleted {
			return errors.New("login and complete your profile before paying")
		}
		profile, _, err := current.repo.Profile()
		if err != nil {
			return err
		}

		payload, err := os.ReadFile(submitFlags.screenshot)
		if err != nil {
			return fmt.Errorf("read screenshot: %w", err)
		}

		receipt, err := current.workflow.Submit(cmd.Context(), payments.SubmissionInput{
			Profile:        profile,
			UTR:            submitFlags.utr,
			Screenshot:     payload,
			ScreenshotName: filepath.Base(submitFlags.screenshot),
		})
		if err != nil {
			return errors.New(payments.UserMessage(err))
		}

		fmt.Println("processing payment...")
		if err := receipt.Settle(cmd.Context()); err != nil {
			return err
		}
		fmt.Printf("payment submitted: %s (status %s)\n",
			receipt.TransactionID, receipt.Record.Status)
		return nil
	},
}

func init() {
	submitCmd.Flags().StringVar(&submitFlags.utr, "utr", "", "UTR number from the UPI payment")
	submitCmd.Flags().StringVar(&submitFlags.screenshot, "screenshot", "", "path to the payment screenshot")
	submitCmd.MarkFlagRequired("utr")
	submitCmd.MarkFlagRequired("screenshot")
}
