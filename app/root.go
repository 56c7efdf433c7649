// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "chatter-bot-groups",
	Short: "chatter-bot-groups mirrors Salesforce collaboration groups and posts bot emails to Chatter",
	Long: `chatter-bot-groups is a companion service for a Salesforce org.
It keeps a local mirror of the org's collaboration groups, driven by trigger
webhooks, and turns inbound bot emails into Chatter feed posts.`,
	Args: cobra.OnlyValidArgs,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
