package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath string
	provider   string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "daochat",
	Short: "Terminal client for the DAO crowdfunding assistant",
	Long: `daochat runs the crowdfunding assistant in-process and talks to it from the terminal.

Each run connects a fresh mock wallet against its own copy of the campaign ledger.
Nothing is persisted between runs.`,
	SilenceUsage: true,
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Long: `Starts a chat session. Type requests in plain English, for example:
  show all projects
  contribute 0.5 eth to Project Alpha
  vote yes on P1 for Project Alpha

When a reply offers actions, type the action number to select it.
Type 'quit' or press Ctrl-D to leave.`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

var seedCmd = &cobra.Command{
	Use:   "seed-check [file]",
	Short: "Validate a campaign seed file",
	Args:  cobra.ExactArgs(1),
	RunE:  runSeedCheck,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: search for config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	chatCmd.Flags().StringVar(&provider, "provider", "", "Override classifier.provider (rules, gemini)")

	rootCmd.AddCommand(chatCmd, seedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
