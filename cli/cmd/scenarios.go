// ABOUTME: Scenarios command for the shift-analyzer CLI
// ABOUTME: Lists predefined scenarios and compares them side by side

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

var compareQuery client.DashboardQuery

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "List predefined scenarios",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runScenarios(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var compareCmd = &cobra.Command{
	Use:     "compare ID [ID...]",
	Short:   "Compare scenarios side by side",
	Example: `  shift-analyzer scenarios compare 1a 2c 3a`,
	Args:    cobra.RangeArgs(1, 6),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runCompare(ctx, os.Stdout, args, compareQuery)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(scenariosCmd)
	scenariosCmd.AddCommand(compareCmd)
	addQueryFlags(compareCmd, &compareQuery)
}

// runScenarios lists scenarios and returns exit code
func runScenarios(ctx context.Context, w io.Writer) int {
	list, err := client.New(GetAPIURL()).Scenarios(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, toJSON(list))
	} else {
		fmt.Fprintln(w, render.Scenarios(list))
	}
	return 0
}

// runCompare compares scenarios and returns exit code
func runCompare(ctx context.Context, w io.Writer, ids []string, q client.DashboardQuery) int {
	resp, err := client.New(GetAPIURL()).Compare(ctx, ids, q)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, toJSON(resp))
	} else {
		fmt.Fprintln(w, render.Comparison(resp))
	}
	return 0
}
