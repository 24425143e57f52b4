package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/skf-fest/refresko/internal/models"
	"github.com/skf-fest/refresko/internal/notify"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow submission changes from this and other processes",
	Long: "Subscribes to the in-process broadcast and to file-change events " +
		"from the shared store, re-rendering the payment list on either.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		watcher, err := notify.NewWatcher(current.cfg.DBPath, current.bus)
		if err != nil {
			return err
		}
		if err := watcher.Start(cmd.Context()); err != nil {
			return err
		}
		defer watcher.Stop()

		stop := current.admin.Watch(current.bus, func(records []models.PaymentRecord) {
			fmt.Printf("-- %d submissions --\n", len(records))
			printPayments(records)
		})
		defer stop()

		fmt.Println("watching for submission changes, ctrl-c to quit")
		interrupt := make(chan os.Signal, 1)
		signal.Notify(interrupt, os.Interrupt)
		select {
		case <-interrupt:
		case <-cmd.Context().Done():
		}
		return nil
	},
}
