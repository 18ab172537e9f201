package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile    string
	apiBaseURL string
	logLevel   string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "recovery-console",
	Short: "Terminal console for the invoice recovery case tracker",
	Long: `Recovery Console is a terminal client for the invoice recovery
case tracker backend. It manages debtor clients and the recovery cases
opened against their unpaid invoices.

Features:
- Case list with status filtering and due-date/invoice-date sorting
- Case detail view with in-place status and follow-up note editing
- Client and case creation forms with local validation
- Bulk import of clients and cases from JSON drop files
- Plain-text listing for terminals without TUI support`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.recovery-console.yaml)")
	rootCmd.PersistentFlags().StringVar(&apiBaseURL, "api", "http://localhost:8000", "Base URL of the case tracker API")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	// Bind flags to viper
	viper.BindPFlag("api.base_url", rootCmd.PersistentFlags().Lookup("api"))
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".recovery-console" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".recovery-console")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	// Set defaults
	viper.SetDefault("api.base_url", "http://localhost:8000")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("import.dir", "./data/incoming")
}

// GetConfig returns the current configuration values
func GetConfig() Config {
	return Config{
		API: APIConfig{
			BaseURL: viper.GetString("api.base_url"),
		},
		Log: LogConfig{
			Level: viper.GetString("log.level"),
		},
		Import: ImportConfig{
			Dir: viper.GetString("import.dir"),
		},
	}
}

// Config represents the application configuration
type Config struct {
	API    APIConfig    `mapstructure:"api"`
	Log    LogConfig    `mapstructure:"log"`
	Import ImportConfig `mapstructure:"import"`
}

type APIConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type ImportConfig struct {
	Dir string `mapstructure:"dir"`
}
