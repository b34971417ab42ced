// Package main is the supportctl command line tool.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/supportbrain/backend/internal/infrastructure/config"
	applog "github.com/supportbrain/backend/internal/infrastructure/log"
	"github.com/supportbrain/backend/internal/wire"
)

// version is set at build time via ldflags
var version = "dev"

var (
	okColor   = color.New(color.FgGreen, color.Bold)
	warnColor = color.New(color.FgYellow)
	errColor  = color.New(color.FgRed, color.Bold)
)

var rootCmd = &cobra.Command{
	Use:     "supportctl",
	Short:   "Operate the support brain from the command line",
	Version: version,
	Long: `supportctl runs ingestion and draft generation against the same stores
as the server, without going through HTTP.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// the wire injectors read SB_CONFIG_FILE through config.Load
		if path := viper.GetString("config"); path != "" {
			return os.Setenv(config.EnvConfigFile, path)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default: $SB_CONFIG_FILE or ./supportbrain.yaml)")
	rootCmd.PersistentFlags().String("org", "", "organization id")
	rootCmd.PersistentFlags().Bool("json", false, "print results as JSON")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("org", rootCmd.PersistentFlags().Lookup("org"))
	_ = viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

// withServices builds the service graph for one command and releases it afterwards
func withServices(fn func(*wire.Services) error) error {
	services, cleanup, err := wire.InitializeServices()
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	defer cleanup()
	return fn(services)
}

// requireOrg reads --org
func requireOrg() (string, error) {
	org := viper.GetString("org")
	if org == "" {
		return "", fmt.Errorf("--org is required")
	}
	return org, nil
}

// printJSON writes v indented to stdout
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	applog.Init(nil)
	if err := rootCmd.Execute(); err != nil {
		_, _ = errColor.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
