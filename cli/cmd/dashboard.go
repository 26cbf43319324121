// ABOUTME: Dashboard command for the shift-analyzer CLI
// ABOUTME: Shows a scenario's dock, worker, wave, and workload view from the backend

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
	"github.com/markalston/warehouse-shift-analyzer/cli/internal/render"
)

var dashboardQuery client.DashboardQuery

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show a scenario dashboard",
	Long: `Fetch and display the analyzed schedule for a predefined scenario.

The backend's default scenario is used when --scenario is omitted.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runDashboard(ctx, os.Stdout, dashboardQuery)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
	addQueryFlags(dashboardCmd, &dashboardQuery)
	dashboardCmd.Flags().StringVar(&dashboardQuery.Scenario, "scenario", "", "Scenario id (default: backend default)")
	dashboardCmd.Flags().BoolVar(&dashboardQuery.Refresh, "refresh", false, "Bypass the backend schedule cache")
}

func addQueryFlags(c *cobra.Command, q *client.DashboardQuery) {
	c.Flags().StringVar(&q.Now, "now", "", "Evaluation instant, ISO-8601 (default: backend clock)")
	c.Flags().IntVar(&q.BucketWidth, "bucket-width", 0, "Workload bucket width in minutes (default: backend setting)")
}

// runDashboard fetches and prints a dashboard, returning the exit code
func runDashboard(ctx context.Context, w io.Writer, q client.DashboardQuery) int {
	dash, err := client.New(GetAPIURL()).Dashboard(ctx, q)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, toJSON(dash))
	} else {
		fmt.Fprintln(w, render.Dashboard(dash))
	}
	return 0
}
