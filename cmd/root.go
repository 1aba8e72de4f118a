package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "backoffice",
	Short: "Back-office service for the live-sale store",
	Long: `Back-office service for the live-sale store.

Manages supplier boxes, the products inside them, customers, orders and
their payments, and exposes the REST API the front office consumes.`,
}

// Execute executes the root command
func Execute() error {
	return rootCmd.Execute()
}
