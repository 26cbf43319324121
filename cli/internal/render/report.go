// ABOUTME: Human-readable reports for dashboards, comparisons, and scenario lists
// ABOUTME: Lays out lipgloss tables with status colors and utilization bars

package render

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/markalston/warehouse-shift-analyzer/backend/models"
	"github.com/markalston/warehouse-shift-analyzer/cli/internal/client"
)

const barWidth = 20

// Dashboard renders an analyzed schedule.
func Dashboard(d *models.DashboardResponse) string {
	var b strings.Builder

	heading := "Shift dashboard"
	if d.Metadata.Scenario != "" {
		heading += " - scenario " + d.Metadata.Scenario
	}
	b.WriteString(Title.Render(heading) + "\n")
	b.WriteString(Subtitle.Render(dashboardSubtitle(d)) + "\n")
	if d.Metadata.SkippedRecords > 0 {
		b.WriteString(StatusWarning.Render(fmt.Sprintf("%d record(s) with unreadable times were ignored", d.Metadata.SkippedRecords)) + "\n")
	}

	b.WriteString(Section.Render("Docks") + "\n")
	b.WriteString(docksTable(d.Docks) + "\n")
	b.WriteString(fmt.Sprintf("Docks used: %d inbound, %d outbound   Avg utilization: %s\n",
		d.DocksUsed.Inbound, d.DocksUsed.Outbound, percentText(d.Summary.AvgDockUtilizationPercent)))

	if len(d.Workers) > 0 {
		b.WriteString(Section.Render("Workers") + "\n")
		b.WriteString(workersTable(d.Workers) + "\n")
	}

	b.WriteString(Section.Render("Workload") + "\n")
	b.WriteString(workloadTable(d.Workload) + "\n")
	b.WriteString(fmt.Sprintf("Total labor: %s worker-minutes\n", minutes(d.Summary.TotalLaborWorkerMinutes)))

	if len(d.HourlyBuckets) > 0 {
		b.WriteString(Section.Render(fmt.Sprintf("Workload per %d minutes", d.BucketWidthMinutes)) + "\n")
		b.WriteString(bucketsLine(d.HourlyBuckets) + "\n")
	}

	if len(d.Waves) > 0 {
		b.WriteString(Section.Render("Waves") + "\n")
		b.WriteString(wavesTable(d.Waves) + "\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

// Comparison renders several scenarios side by side.
func Comparison(c *models.ComparisonResponse) string {
	rows := make([][]string, 0, len(c.Scenarios))
	for _, sc := range c.Scenarios {
		peak := "-"
		if sc.PeakBucket != nil {
			peak = fmt.Sprintf("%s (%s)", clock(sc.PeakBucket.BucketStart), minutes(sc.PeakBucket.WorkerMinutes))
		}
		overbooked := "-"
		if len(sc.OverbookedDocks) > 0 {
			overbooked = StatusCritical.Render(strings.Join(sc.OverbookedDocks, ","))
		}
		rows = append(rows, []string{
			sc.ScenarioID,
			sc.Shift,
			sc.Date,
			sc.Source,
			percentText(sc.AvgDockUtilizationPercent),
			overbooked,
			minutes(sc.TotalLaborWorkerMinutes),
			peak,
			strconv.Itoa(sc.Waves),
		})
	}

	return Title.Render("Scenario comparison") + "\n" +
		newTable([]string{"Scenario", "Shift", "Date", "Source", "Avg dock", "Overbooked", "Labor min", "Peak", "Waves"}, rows)
}

// Scenarios renders the preset list, marking the default.
func Scenarios(list *client.ScenarioList) string {
	rows := make([][]string, 0, len(list.Scenarios))
	for _, sc := range list.Scenarios {
		id := sc.ID
		if strings.EqualFold(sc.ID, list.DefaultScenario) {
			id += " *"
		}
		window := "-"
		if sc.ShiftWindow != nil {
			window = clock(sc.ShiftWindow.Start) + "-" + clock(sc.ShiftWindow.End)
		}
		rows = append(rows, []string{id, sc.Label, sc.Shift, window, sc.Notes})
	}

	return Title.Render("Scenarios") + "\n" +
		newTable([]string{"ID", "Label", "Shift", "Window", "Notes"}, rows) + "\n" +
		Subtitle.Render("* default scenario")
}

func dashboardSubtitle(d *models.DashboardResponse) string {
	parts := []string{"Window: unknown"}
	if w := d.ShiftWindow; w != nil {
		parts[0] = fmt.Sprintf("Window: %s %s-%s", w.Start.Format(time.DateOnly), clock(w.Start), clock(w.End))
	}
	parts = append(parts, "Evaluated: "+d.Metadata.EvaluatedAt.Format(time.RFC3339))

	source := "Source: " + d.Metadata.Source
	if d.Metadata.Cached {
		source += " (cached)"
	}
	return strings.Join(append(parts, source), "   ")
}

func docksTable(docks []models.DockSummary) string {
	rows := make([][]string, 0, len(docks))
	for _, dock := range docks {
		util := UtilizationBar(dock.Utilization.UtilizationPercent, barWidth)
		if dock.Overbooked {
			util += " " + StatusCritical.Render("OVERBOOKED")
		}
		rows = append(rows, []string{
			dock.DockID,
			dock.Direction,
			StateStyle(dock.Status.State).Render(string(dock.Status.State)),
			util,
			strconv.Itoa(dock.AssignmentCount),
			nextText(dock.Status),
		})
	}
	return newTable([]string{"Dock", "Direction", "State", "Utilization", "Assignments", "Next"}, rows)
}

func workersTable(workers []models.WorkerSummary) string {
	rows := make([][]string, 0, len(workers))
	for _, w := range workers {
		rows = append(rows, []string{
			w.WorkerID,
			StateStyle(w.Status.State).Render(string(w.Status.State)),
			UtilizationBar(w.Utilization.UtilizationPercent, barWidth),
			strconv.Itoa(w.TaskCount),
		})
	}
	return newTable([]string{"Worker", "State", "Utilization", "Tasks"}, rows)
}

func workloadTable(workload []models.TaskTypeWorkload) string {
	rows := make([][]string, 0, len(workload))
	for _, wl := range workload {
		rows = append(rows, []string{string(wl.Category), strconv.Itoa(wl.TaskCount), minutes(wl.TotalWorkerMinutes)})
	}
	return newTable([]string{"Task type", "Tasks", "Worker-minutes"}, rows)
}

func wavesTable(waves []models.WaveSummary) string {
	rows := make([][]string, 0, len(waves))
	for _, w := range waves {
		span := "-"
		if w.Start != nil && w.End != nil {
			span = clock(*w.Start) + "-" + clock(*w.End)
		}
		rows = append(rows, []string{
			w.WaveID,
			span,
			strconv.Itoa(w.Tasks),
			strconv.Itoa(w.AssignedWorkers),
			WaveStyle(w.Status).Render(w.Status),
		})
	}
	return newTable([]string{"Wave", "Time", "Tasks", "Workers", "Status"}, rows)
}

func bucketsLine(buckets []models.HourlyBucket) string {
	values := make([]float64, len(buckets))
	peak := 0
	for i, bk := range buckets {
		values[i] = bk.WorkerMinutes
		if bk.WorkerMinutes > buckets[peak].WorkerMinutes {
			peak = i
		}
	}
	line := fmt.Sprintf("%s %s %s", clock(buckets[0].BucketStart), Sparkline(values), clock(buckets[len(buckets)-1].BucketEnd))
	if buckets[peak].WorkerMinutes > 0 {
		line += fmt.Sprintf("   peak %s at %s (%d active)",
			minutes(buckets[peak].WorkerMinutes), clock(buckets[peak].BucketStart), buckets[peak].ActiveTaskCount)
	}
	return line
}

func nextText(status models.ResourceStatus) string {
	if status.NextStart == nil {
		return "-"
	}
	return clock(*status.NextStart)
}

func newTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(Muted)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return HeaderCell
			}
			return Cell
		}).
		String()
}

func percentText(p *int) string {
	if p == nil {
		return "n/a"
	}
	return fmt.Sprintf("%d%%", *p)
}

func minutes(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func clock(t time.Time) string {
	return t.Format("15:04")
}
