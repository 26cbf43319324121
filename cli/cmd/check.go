// ABOUTME: Check command for the shift-analyzer CLI
// ABOUTME: Validates dock and worker utilization thresholds for CI/CD pipelines

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/markalston/warehouse-shift-analyzer/backend/models"
	"github.com/markalston/warehouse-shift-analyzer/cli/internal/client"
)

// checkOptions selects the schedule to check and the thresholds.
type checkOptions struct {
	file                 string
	scenario             string
	maxDockUtilization   int
	maxWorkerUtilization int
	allowOverbooked      bool
	analysis             analysisOptions
}

var checkOpts checkOptions

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check utilization thresholds",
	Long: `Check a shift plan and exit non-zero if any threshold is exceeded.

The plan is a backend scenario (--scenario, default scenario when omitted)
or a local schedule file (--file).

Exit codes:
  0 - All checks passed
  1 - One or more thresholds exceeded
  2 - Error (connectivity, unreadable schedule, invalid input)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runCheck(ctx, os.Stdout, checkOpts)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringVar(&checkOpts.file, "file", "", "Check a local schedule file instead of a backend scenario")
	checkCmd.Flags().StringVar(&checkOpts.scenario, "scenario", "", "Scenario id (default: backend default)")
	checkCmd.Flags().IntVar(&checkOpts.maxDockUtilization, "max-dock-utilization", 90, "Highest allowed dock utilization percentage")
	checkCmd.Flags().IntVar(&checkOpts.maxWorkerUtilization, "max-worker-utilization", 100, "Highest allowed worker utilization percentage")
	checkCmd.Flags().BoolVar(&checkOpts.allowOverbooked, "allow-overbooked", false, "Do not fail on overbooked docks")
	addAnalysisFlags(checkCmd, &checkOpts.analysis)
}

// checkResult represents the result of a single threshold check
type checkResult struct {
	name      string
	value     float64
	threshold float64
	unit      string
	detail    string
	passed    bool
}

// runCheck executes the threshold checks and returns exit code
func runCheck(ctx context.Context, w io.Writer, o checkOptions) int {
	if err := validateThresholds(o.maxDockUtilization, o.maxWorkerUtilization); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	dash, err := loadCheckDashboard(ctx, o)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if dash.ShiftWindow == nil {
		fmt.Fprintln(w, "Error: schedule has no shift window; pass --shift and --date")
		return 2
	}

	results := performChecks(dash, o)

	if IsJSONOutput() {
		fmt.Fprintln(w, formatCheckJSON(results))
	} else {
		fmt.Fprintln(w, formatCheckHuman(results))
	}

	_, failed := countResults(results)
	if failed > 0 {
		return 1
	}
	return 0
}

func loadCheckDashboard(ctx context.Context, o checkOptions) (*models.DashboardResponse, error) {
	if o.file != "" {
		document, err := readDocument(o.file, os.Stdin)
		if err != nil {
			return nil, err
		}
		return analyzeDocument(ctx, document, o.analysis)
	}
	return client.New(GetAPIURL()).Dashboard(ctx, client.DashboardQuery{
		Scenario: o.scenario,
		Now:      o.analysis.now,
	})
}

// validateThresholds ensures threshold values are valid
func validateThresholds(dock, worker int) error {
	if dock < 0 || dock > 1000 {
		return fmt.Errorf("--max-dock-utilization must be between 0 and 1000")
	}
	if worker < 0 || worker > 1000 {
		return fmt.Errorf("--max-worker-utilization must be between 0 and 1000")
	}
	return nil
}

// performChecks runs all threshold checks against the dashboard
func performChecks(dash *models.DashboardResponse, o checkOptions) []checkResult {
	var results []checkResult

	dockPeak, dockID := peakPercent(len(dash.Docks), func(i int) (*int, string) {
		return dash.Docks[i].Utilization.UtilizationPercent, dash.Docks[i].DockID
	})
	results = append(results, checkResult{
		name:      "Dock utilization",
		value:     float64(dockPeak),
		threshold: float64(o.maxDockUtilization),
		unit:      "%",
		detail:    dockID,
		passed:    dockPeak <= o.maxDockUtilization,
	})

	workerPeak, workerID := peakPercent(len(dash.Workers), func(i int) (*int, string) {
		return dash.Workers[i].Utilization.UtilizationPercent, dash.Workers[i].WorkerID
	})
	results = append(results, checkResult{
		name:      "Worker utilization",
		value:     float64(workerPeak),
		threshold: float64(o.maxWorkerUtilization),
		unit:      "%",
		detail:    workerID,
		passed:    workerPeak <= o.maxWorkerUtilization,
	})

	if !o.allowOverbooked {
		var overbooked []string
		for _, d := range dash.Docks {
			if d.Overbooked {
				overbooked = append(overbooked, d.DockID)
			}
		}
		results = append(results, checkResult{
			name:   "Overbooked docks",
			value:  float64(len(overbooked)),
			detail: strings.Join(overbooked, ", "),
			passed: len(overbooked) == 0,
		})
	}

	return results
}

// peakPercent returns the highest known percentage among n resources and
// the resource holding it.
func peakPercent(n int, at func(i int) (*int, string)) (int, string) {
	peak, id := 0, ""
	for i := 0; i < n; i++ {
		p, rid := at(i)
		if p != nil && (id == "" || *p > peak) {
			peak, id = *p, rid
		}
	}
	return peak, id
}

// countResults returns the count of passed and failed checks
func countResults(results []checkResult) (passed, failed int) {
	for _, r := range results {
		if r.passed {
			passed++
		} else {
			failed++
		}
	}
	return
}

// formatCheckHuman formats check results for human readability
func formatCheckHuman(results []checkResult) string {
	var output string

	for _, r := range results {
		symbol := "✓"
		if !r.passed {
			symbol = "✗"
		}
		line := fmt.Sprintf("%s %s: %.0f%s", symbol, r.name, r.value, r.unit)
		if r.unit != "" {
			line += fmt.Sprintf(" (threshold: %.0f%s)", r.threshold, r.unit)
		}
		if r.detail != "" {
			line += " [" + r.detail + "]"
		}
		output += line + "\n"
	}

	passed, failed := countResults(results)
	if failed > 0 {
		output += fmt.Sprintf("\nFAILED: %d check(s) exceeded threshold", failed)
	} else {
		output += fmt.Sprintf("\nPASSED: All %d check(s) within thresholds", passed)
	}

	return output
}

// formatCheckJSON formats check results as JSON
func formatCheckJSON(results []checkResult) string {
	_, failed := countResults(results)

	checks := make([]map[string]any, len(results))
	for i, r := range results {
		checks[i] = map[string]any{
			"name":      r.name,
			"value":     r.value,
			"threshold": r.threshold,
			"unit":      r.unit,
			"detail":    r.detail,
			"passed":    r.passed,
		}
	}

	status := "passed"
	if failed > 0 {
		status = "failed"
	}

	return toJSON(map[string]any{
		"status": status,
		"checks": checks,
	})
}
