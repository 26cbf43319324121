// ABOUTME: Time-bucketed workload across the shift
// ABOUTME: Distributes worker-minutes and distinct active tasks into fixed-width buckets

package models

import (
	"strconv"
	"time"
)

// DefaultBucketWidthMinutes is the bucket width used when none is given.
const DefaultBucketWidthMinutes = 60

// HourlyBucket is one contiguous slice of the shift window.
type HourlyBucket struct {
	BucketStart     time.Time `json:"bucket_start"`
	BucketEnd       time.Time `json:"bucket_end"`
	WorkerMinutes   float64   `json:"worker_minutes"`
	ActiveTaskCount int       `json:"active_task_count"`
}

// Bucketize partitions window into buckets of widthMinutes (the last one
// truncated) and spreads each assignment's worker-minutes over the buckets
// it overlaps. ActiveTaskCount counts a task once per bucket: assignments
// sharing a RelatedEntityID are one task. Returns an empty slice when the
// window is unknown or non-positive.
func Bucketize(assignments []Assignment, window *ShiftWindow, widthMinutes int) []HourlyBucket {
	buckets := []HourlyBucket{}
	if window == nil || window.DurationMinutes() <= 0 {
		return buckets
	}
	if widthMinutes <= 0 {
		widthMinutes = DefaultBucketWidthMinutes
	}
	width := time.Duration(widthMinutes) * time.Minute

	for start := window.Start; start.Before(window.End); start = start.Add(width) {
		end := start.Add(width)
		if end.After(window.End) {
			end = window.End
		}
		span := TimeInterval{Start: start, End: end}

		bucket := HourlyBucket{BucketStart: start, BucketEnd: end}
		active := make(map[string]struct{})
		for i, a := range assignments {
			overlap := OverlapMinutes(a.Interval, span)
			if overlap <= 0 {
				continue
			}
			bucket.WorkerMinutes += overlap * a.workers()
			active[taskKey(i, a)] = struct{}{}
		}
		bucket.ActiveTaskCount = len(active)
		buckets = append(buckets, bucket)
	}

	return buckets
}

// taskKey identifies the task an assignment belongs to within one call.
func taskKey(index int, a Assignment) string {
	if a.RelatedEntityID != "" {
		return "entity:" + a.RelatedEntityID
	}
	return "index:" + strconv.Itoa(index)
}
