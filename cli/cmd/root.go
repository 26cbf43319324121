// ABOUTME: Root command for the shift-analyzer CLI
// ABOUTME: Handles global flags and configuration

package cmd

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
)

var (
	apiURL     string
	jsonOutput bool
)

const defaultAPIURL = "http://localhost:8080"

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "shift-analyzer",
	Short: "CLI for the Warehouse Shift Analyzer",
	Long: `shift-analyzer is a command-line interface for the Warehouse Shift Analyzer.

It shows dock, worker, and wave status for a shift, analyzes schedule files
locally, and lets CI/CD pipelines fail when a plan overbooks docks.

Environment Variables:
  SHIFT_ANALYZER_API_URL  Backend API URL (default: http://localhost:8080)`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides SHIFT_ANALYZER_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// GetAPIURL returns the API URL from flag, env, or default (in priority order)
func GetAPIURL() string {
	if apiURL != "" {
		return apiURL
	}
	if envURL := os.Getenv("SHIFT_ANALYZER_API_URL"); envURL != "" {
		return envURL
	}
	return defaultAPIURL
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

func toJSON(v any) string {
	data, _ := json.MarshalIndent(v, "", "  ")
	return string(data)
}
