// ABOUTME: Analyze command for the shift-analyzer CLI
// ABOUTME: Runs the analytics engine on a schedule file locally or through the backend

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/markalston/warehouse-shift-analyzer/backend/models"
	"github.com/markalston/warehouse-shift-analyzer/backend/services"
	"github.com/markalston/warehouse-shift-analyzer/cli/internal/client"
	"github.com/markalston/warehouse-shift-analyzer/cli/internal/render"
)

// analysisOptions controls a local or remote analysis of a schedule file.
type analysisOptions struct {
	shift       string
	date        string
	now         string
	timezone    string
	shiftsFile  string
	bucketWidth int
	remote      bool
}

var analyzeOpts analysisOptions

var analyzeCmd = &cobra.Command{
	Use:   "analyze FILE",
	Short: "Analyze a schedule file",
	Long: `Analyze a schedule document produced by the optimization service.

FILE may be "-" to read standard input. The analysis runs locally unless
--remote is given, in which case the document is posted to the backend.

Examples:
  shift-analyzer analyze schedule.json --now 2024-08-26T09:15:00
  shift-analyzer analyze schedule.json --shift C --date 2024-08-27 --bucket-width 30`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runAnalyze(ctx, os.Stdout, os.Stdin, args[0], analyzeOpts)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	addAnalysisFlags(analyzeCmd, &analyzeOpts)
	analyzeCmd.Flags().BoolVar(&analyzeOpts.remote, "remote", false, "Analyze through the backend instead of locally")
}

func addAnalysisFlags(c *cobra.Command, o *analysisOptions) {
	c.Flags().StringVar(&o.shift, "shift", "", "Shift code overriding the document's window (requires --date)")
	c.Flags().StringVar(&o.date, "date", "", "Shift date YYYY-MM-DD (requires --shift)")
	c.Flags().StringVar(&o.now, "now", "", "Evaluation instant, ISO-8601 (default: current time)")
	c.Flags().StringVar(&o.timezone, "tz", "", "Timezone for zone-less timestamps (default: SHIFT_TIMEZONE or UTC)")
	c.Flags().StringVar(&o.shiftsFile, "shifts-file", "", "YAML shift table (default: built-in)")
	c.Flags().IntVar(&o.bucketWidth, "bucket-width", 60, "Workload bucket width in minutes")
}

// runAnalyze executes the analysis and returns exit code
func runAnalyze(ctx context.Context, w io.Writer, stdin io.Reader, path string, o analysisOptions) int {
	document, err := readDocument(path, stdin)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	dash, err := analyzeDocument(ctx, document, o)
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

// analyzeDocument runs the engine on document, locally or via the backend.
func analyzeDocument(ctx context.Context, document []byte, o analysisOptions) (*models.DashboardResponse, error) {
	if err := validateAnalysisOptions(o); err != nil {
		return nil, err
	}
	if o.remote {
		return client.New(GetAPIURL()).Analyze(ctx, document, client.DashboardQuery{
			Now:         o.now,
			BucketWidth: o.bucketWidth,
			Shift:       o.shift,
			Date:        o.date,
		})
	}
	return analyzeLocal(document, o)
}

func validateAnalysisOptions(o analysisOptions) error {
	if (o.shift == "") != (o.date == "") {
		return fmt.Errorf("--shift and --date must be given together")
	}
	if o.bucketWidth < 1 || o.bucketWidth > 1440 {
		return fmt.Errorf("--bucket-width must be between 1 and 1440")
	}
	return nil
}

func analyzeLocal(document []byte, o analysisOptions) (*models.DashboardResponse, error) {
	loc, err := resolveLocation(o.timezone)
	if err != nil {
		return nil, err
	}

	var snap models.ScheduleSnapshot
	if err := json.Unmarshal(document, &snap); err != nil {
		return nil, fmt.Errorf("invalid schedule document: %w", err)
	}
	if err := services.CheckShiftWindow(snap, loc); err != nil {
		return nil, fmt.Errorf("invalid schedule document: %w", err)
	}

	opts := services.DashboardOptions{
		Location:           loc,
		BucketWidthMinutes: o.bucketWidth,
		Source:             models.SourceUpload,
	}

	if o.now != "" {
		opts.Now = models.ParseTimestampIn(o.now, loc)
		if opts.Now.IsZero() {
			return nil, fmt.Errorf("invalid --now %q: expected an ISO-8601 timestamp", o.now)
		}
	}

	if o.shift != "" {
		presets, err := services.LoadPresets(o.shiftsFile)
		if err != nil {
			return nil, err
		}
		window, err := presets.Window(o.shift, o.date, loc)
		if err != nil {
			return nil, err
		}
		opts.ShiftWindow = window
	}

	dash := services.NewDashboardBuilder().Build(snap, opts)
	return &dash, nil
}

func resolveLocation(name string) (*time.Location, error) {
	if name == "" {
		name = os.Getenv("SHIFT_TIMEZONE")
	}
	if name == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", name, err)
	}
	return loc, nil
}

func readDocument(path string, stdin io.Reader) ([]byte, error) {
	if strings.TrimSpace(path) == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read standard input: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}
