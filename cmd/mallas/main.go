// Mallas is a terminal client for the mesh-circuit simulator.
//
// It loads the simulator's form page, validates resistances and voltages
// as they are typed, submits the form and shows the mesh currents. The
// currents can be exported as CSV or copied to the clipboard.
//
// Usage:
//
//	mallas [command] [flags]
//
// Running without arguments launches the interactive UI.
// See 'mallas --help' for available commands.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/muurk/mallas/internal/backend"
	"github.com/muurk/mallas/internal/config"
	"github.com/muurk/mallas/internal/logging"
	"github.com/muurk/mallas/internal/version"
)

func main() {
	defer logging.Sync()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Global flags
var (
	backendURL string
	logLevel   string
	logFile    string
	configPath string
	timeoutSec int
)

// settings is loaded once per invocation, before any command runs.
var settings *config.Settings

var rootCmd = &cobra.Command{
	Use:   "mallas",
	Short: "Mesh-circuit simulator client",
	Long: `A terminal client for the mesh-circuit simulator.

Fill in the resistances and voltages of the circuit, submit them to the
simulator backend and inspect, export or copy the resulting mesh currents.

If no command is specified, the interactive UI will launch automatically.`,
	Version:           version.Version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE:              runUI,
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&backendURL, "backend", "", "Simulator base URL (overrides backend.base_url)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (default: $"+logging.LogLevelEnvVar+")")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Log file used by the interactive UI")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: <config dir>/mallas/config.yaml)")
	rootCmd.PersistentFlags().IntVar(&timeoutSec, "timeout", 0, "Backend request timeout in seconds (overrides backend.timeout)")

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("mallas %s\n", version.Full())
	},
}

// setup loads the configuration and applies flag overrides. Logging goes
// to stdout here; the interactive UI re-initializes it to a file.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	if configPath == "" {
		configPath, err = config.GetConfigPath()
		if err != nil {
			return fmt.Errorf("failed to locate config file: %w", err)
		}
	}

	settings, err = config.LoadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if backendURL != "" {
		settings.Backend.BaseURL = backendURL
	}
	if timeoutSec > 0 {
		settings.Backend.Timeout = timeoutSec
	}
	if logLevel == "" {
		logLevel = settings.Log.Level
	}
	if logFile == "" {
		logFile = settings.Log.File
	}

	if err := logging.Initialize(logLevel); err != nil {
		return err
	}
	return nil
}

// newClient builds a backend client from the effective settings.
func newClient() *backend.Client {
	c := backend.NewClient(settings.Backend.BaseURL)
	c.ExamplePath = settings.Backend.ExamplePath
	c.SetTimeout(settings.BackendTimeout())
	c.SetRetry(settings.Backend.MaxRetries, backend.DefaultRetryDelay)
	return c
}

// requestTimeout bounds a whole command, retries included.
func requestTimeout() time.Duration {
	return settings.BackendTimeout() * time.Duration(settings.Backend.MaxRetries+2)
}

func secondsDuration(n int) time.Duration {
	return time.Duration(n) * time.Second
}
