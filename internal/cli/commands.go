package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	jsoniter "github.com/json-iterator/go"
	"github.com/pht-ctoi/ctoistatus/internal/common/logtrace"
	"github.com/pht-ctoi/ctoistatus/internal/config"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Version of ctoistatus
const Version = "0.1.0"

// ConfigEnvVar selects the configuration file when --config is not given.
const ConfigEnvVar = "CTOISTATUS_CONFIG"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	// Global flags
	jsonOutput bool
	configFile string
	logLevel   string
)

// NewRootCmd creates the ctoistatus command tree
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ctoistatus",
		Short: "ctoistatus builds the status table of the Planet Hunters TESS CTOIs",
		Long: `ctoistatus aggregates the ExoFOP TOI and CTOI catalogs, the sectors each
target was observed in and the published PHT paper table into a single
status table for the CTOIs submitted by Planet Hunters TESS.`,
		PersistentPreRunE: preRunHandlePersistents,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	cmd.PersistentFlags().StringVarP(&configFile, "config", "", "", "Path to configuration file (default $"+ConfigEnvVar+" or ./"+config.DefaultConfigFile+")")
	cmd.PersistentFlags().BoolVarP(&jsonOutput, "json", "j", false, "Output in JSON format")
	cmd.PersistentFlags().StringVarP(&logLevel, "log-level", "", "", "Log level (trace, debug, info, warn, error)")

	cmd.AddCommand(
		newBuildCmd(),
		newSectorsCmd(),
		newShowCmd(),
		newServeCmd(),
		newPublishCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)
	return cmd
}

// Execute runs the CLI and exits with a non-zero status on failure.
// This is called by main.main().
func Execute() {
	cmd := NewRootCmd()
	err := cmd.ExecuteContext(context.Background())
	if err != nil {
		if jsonOutput {
			printJSON(os.Stdout, map[string]any{
				"result": 0,
				"error":  err.Error(),
			})
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

var cfg *config.ConfigParam

// GetConfig returns the configuration loaded for the running command
func GetConfig() *config.ConfigParam {
	return cfg
}

func preRunHandlePersistents(cmd *cobra.Command, args []string) error {
	// a missing .env is fine
	_ = godotenv.Load()

	path := resolveConfigPath()
	c, err := config.LoadConfig(path)
	if err != nil {
		return fmt.Errorf("unable to load config file %s: %w", path, err)
	}
	if logLevel != "" {
		c.Log.Level = logLevel
	}
	cfg = c
	logtrace.InitLogger(cfg.Log.Level, cfg.Log.Console)
	log.Debug().Str("config_file", path).Msg("configuration loaded")
	return nil
}

// resolveConfigPath picks the --config flag, then the environment, then the
// default file in the working directory. An empty result means built-in defaults.
func resolveConfigPath() string {
	if configFile != "" {
		return configFile
	}
	if env := os.Getenv(ConfigEnvVar); env != "" {
		return env
	}
	if _, err := os.Stat(config.DefaultConfigFile); err == nil {
		return config.DefaultConfigFile
	}
	return ""
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of ctoistatus",
		Run: func(cmd *cobra.Command, args []string) {
			if jsonOutput {
				printJSON(cmd.OutOrStdout(), map[string]string{
					"version": Version,
				})
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "ctoistatus v%s\n", Version)
			}
		},
	}
}

// printJSON prints data as indented JSON
func printJSON(w io.Writer, data any) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintln(w, string(jsonData))
}

// printResult prints a successful command result in the {result, value} envelope.
func printResult(w io.Writer, value any) {
	printJSON(w, map[string]any{
		"result": 1,
		"value":  value,
	})
}
