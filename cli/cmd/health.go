// ABOUTME: Health command for the shift-analyzer CLI
// ABOUTME: Checks backend connectivity and service status

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/markalston/warehouse-shift-analyzer/cli/internal/client"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check backend connectivity",
	Long:  `Check connectivity to the Warehouse Shift Analyzer backend and verify service status.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runHealth(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

// runHealth executes the health check and returns exit code
func runHealth(ctx context.Context, w io.Writer) int {
	url := GetAPIURL()
	c := client.New(url)

	resp, err := c.Health(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatHealthJSON(url, resp))
	} else {
		fmt.Fprintln(w, formatHealthHuman(url, resp))
	}

	return 0
}

// formatHealthHuman formats health response for human readability
func formatHealthHuman(url string, resp *client.HealthResponse) string {
	return fmt.Sprintf(`Backend:          %s
Status:           %s
Optimization API: %s
Archive:          %s
Cached schedules: %d
Timezone:         %s
Scenarios:        %d`, url, resp.Status, resp.SchedulerAPI, resp.Archive, resp.CacheStatus.SchedulesCached, resp.Timezone, resp.Scenarios)
}

// formatHealthJSON formats health response as JSON
func formatHealthJSON(url string, resp *client.HealthResponse) string {
	return toJSON(map[string]any{
		"backend":       url,
		"status":        resp.Status,
		"scheduler_api": resp.SchedulerAPI,
		"archive":       resp.Archive,
		"cache_status":  resp.CacheStatus,
		"timezone":      resp.Timezone,
		"scenarios":     resp.Scenarios,
	})
}
