// ABOUTME: Workload aggregation by task category
// ABOUTME: Totals worker-minutes and task counts for every category

package models

// TaskTypeWorkload is the labor demand for one category.
type TaskTypeWorkload struct {
	Category           Category `json:"category"`
	TotalWorkerMinutes float64  `json:"total_worker_minutes"`
	TaskCount          int      `json:"task_count"`
}

// AggregateByCategory totals worker-minutes (duration x required workers) and
// task counts per category. Every category is present, zero-valued if unused.
func AggregateByCategory(assignments []Assignment) map[Category]TaskTypeWorkload {
	totals := make(map[Category]TaskTypeWorkload, len(Categories()))
	for _, c := range Categories() {
		totals[c] = TaskTypeWorkload{Category: c}
	}

	for _, a := range assignments {
		if !a.Interval.Valid() {
			continue
		}
		category := a.Category
		if _, known := totals[category]; !known {
			category = CategoryOther
		}

		w := totals[category]
		w.TotalWorkerMinutes += DurationMinutes(a.Interval) * a.workers()
		w.TaskCount++
		totals[category] = w
	}

	return totals
}

// WorkloadList flattens an aggregate into category order.
func WorkloadList(totals map[Category]TaskTypeWorkload) []TaskTypeWorkload {
	list := make([]TaskTypeWorkload, 0, len(totals))
	for _, c := range Categories() {
		if w, ok := totals[c]; ok {
			list = append(list, w)
		}
	}
	return list
}
