// ABOUTME: Root command for evse-calc CLI
// ABOUTME: Handles global flags, output format and engine selection

package cmd

import (
	"fmt"
	"os"

	"github.com/markalston/evse-calc/backend/logger"
	"github.com/markalston/evse-calc/backend/reference"
	"github.com/markalston/evse-calc/cli/internal/client"
	"github.com/spf13/cobra"
)

var (
	apiURL        string
	jsonOutput    bool
	outputFlag    string
	offline       bool
	referenceFile string
)

const defaultAPIURL = "http://localhost:8080"

// Exit codes shared by every command
const (
	exitOK     = 0
	exitFailed = 1
	exitError  = 2
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "evse-calc",
	Short: "CLI for the EVSE installation calculator",
	Long: `evse-calc sizes EV charge point circuits and checks them for compliance.

It talks to the calculator backend, or runs the same engine in-process with
--offline. CI pipelines can gate on "evse-calc check".

Environment Variables:
  EVSE_CALC_API_URL  Backend API URL (default: http://localhost:8080)
  LOG_LEVEL          Diagnostic log level on stderr (default: info)`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.InitWriter(os.Stderr)
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides EVSE_CALC_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
	rootCmd.PersistentFlags().StringVarP(&outputFlag, "output", "o", "text", "Output format: text, json or yaml")
	rootCmd.PersistentFlags().BoolVar(&offline, "offline", false, "Run calculations in-process instead of calling the backend")
	rootCmd.PersistentFlags().StringVar(&referenceFile, "reference", "", "Reference tables YAML for offline runs (implies --offline)")
}

// GetAPIURL returns the API URL from flag, env, or default (in priority order)
func GetAPIURL() string {
	if apiURL != "" {
		return apiURL
	}
	if envURL := os.Getenv("EVSE_CALC_API_URL"); envURL != "" {
		return envURL
	}
	return defaultAPIURL
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return OutputFormat() == "json"
}

// OutputFormat resolves --json and --output into one of text, json or yaml.
func OutputFormat() string {
	if jsonOutput {
		return "json"
	}
	return outputFlag
}

func validateOutputFormat() error {
	switch OutputFormat() {
	case "text", "json", "yaml":
		return nil
	default:
		return fmt.Errorf("--output must be text, json or yaml, got %q", outputFlag)
	}
}

// IsOffline reports whether calculations run in-process.
func IsOffline() bool {
	return offline || referenceFile != ""
}

// newEngine returns the backend client, or the in-process engine when
// running offline.
func newEngine() (client.Engine, error) {
	if !IsOffline() {
		return client.New(GetAPIURL()), nil
	}

	ref, err := reference.LoadOrDefault(referenceFile)
	if err != nil {
		return nil, err
	}
	if err := ref.Validate(); err != nil {
		return nil, err
	}
	return client.NewLocal(ref), nil
}
