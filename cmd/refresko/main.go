// Command refresko is the Refresko festival registration state CLI.
// Each subcommand mounts against the shared store the way a page of the
// site would: login resolves the session route, submit runs the payment
// workflow, payments renders the admin table, watch follows live changes.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
