package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/incordes/incordes/internal/config"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the saved identity without starting the TUI",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("error loading config: %w", err)
		}

		if cfg.GetIdentity() == nil {
			fmt.Println("Not logged in.")
			return nil
		}

		cfg.ClearIdentity()
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("error saving config: %w", err)
		}

		fmt.Println("Logged out.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
