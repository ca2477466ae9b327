package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pders01/roost/internal/config"
	"github.com/pders01/roost/internal/validation"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configGenCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write the default configuration to ~/.config/roost/config.toml",
	Run: func(cmd *cobra.Command, args []string) {
		configFile, err := validation.NewSecurePathHandler().GetSecureConfigPath("")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to resolve config path: %v\n", err)
			os.Exit(1)
		}

		if err := config.GenerateDefaultConfig(configFile); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to generate config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Generated default configuration at: %s\n", configFile)
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(path)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return config.Encode(cfg, cmd.OutOrStdout())
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("roost %s\n", Version)
		fmt.Println("Property search")
		fmt.Println("github.com/pders01/roost")
	},
}

func init() {
	configCmd.AddCommand(configGenCmd, configShowCmd)
}
