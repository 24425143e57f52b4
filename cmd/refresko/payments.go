package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/skf-fest/refresko/internal/admin"
	"github.com/skf-fest/refresko/internal/models"
	"github.com/skf-fest/refresko/internal/storage"
)

var paymentsFlags struct {
	status string
	search string
}

var paymentsCmd = &cobra.Command{
	Use:   "payments",
	Short: "Render the admin payment table with filters and revenue summary",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		isAdmin, err := current.repo.Flag(storage.KeyAdminAuthenticated)
		if err != nil {
			return err
		}
		if !isAdmin {
			return errors.New("admin login required")
		}

		records, err := current.admin.Payments()
		if err != nil {
			return err
		}
		filtered := admin.Filter{
			Search: paymentsFlags.search,
			Status: paymentsFlags.status,
		}.Apply(records)

		printPayments(filtered)

		summary := admin.Summarize(records)
		fmt.Printf("\nrevenue ₹%.0f completed (%d)  ₹%.0f pending (%d)\n",
			summary.TotalRevenue, summary.CompletedCount,
			summary.PendingAmount, summary.PendingCount)
		return nil
	},
}

func printPayments(records []models.PaymentRecord) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "UTR\tSTUDENT\tCODE\tAMOUNT\tSTATUS\tDATE")
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.0f\t%s\t%s\n",
			r.UTRNo, r.StudentName, r.StudentCode, r.Amount, r.Status, r.Date)
	}
	w.Flush()
}

func init() {
	paymentsCmd.Flags().StringVar(&paymentsFlags.status, "status", "all",
		"filter by status: all, pending, completed")
	paymentsCmd.Flags().StringVar(&paymentsFlags.search, "search", "",
		"match student name, code or UTR")
}
