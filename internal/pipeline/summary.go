package pipeline

import (
	"fmt"
	"sort"

	"rtpipe/internal/core"
	applog "rtpipe/internal/log"
)

type (
	// Summary describes a combined dataset for reporting.
	Summary struct {
		Rows       int
		FirstDate  string
		LastDate   string
		TotalHours float64
		Buckets    []BucketHours
	}

	// BucketHours is the time spent in one group/subgroup bucket.
	BucketHours struct {
		Group    string
		Subgroup string
		Hours    float64
	}
)

// Summarize computes the reporting summary of a dataset: row count, date
// span, total hours, and an hours breakdown per group/subgroup bucket
// sorted by descending time.
func Summarize(ds core.Dataset) Summary {
	sum := Summary{Rows: len(ds)}
	sum.FirstDate, sum.LastDate, _ = ds.DateSpan()
	sum.TotalHours = float64(ds.TotalSeconds()) / 3600

	type key struct{ group, subgroup string }
	seconds := make(map[key]int64)
	for _, rec := range ds {
		seconds[key{rec.Group, rec.Subgroup}] += rec.TimeSpentSeconds
	}
	for k, secs := range seconds {
		sum.Buckets = append(sum.Buckets, BucketHours{
			Group:    k.group,
			Subgroup: k.subgroup,
			Hours:    float64(secs) / 3600,
		})
	}
	sort.Slice(sum.Buckets, func(i, j int) bool {
		if sum.Buckets[i].Hours != sum.Buckets[j].Hours {
			return sum.Buckets[i].Hours > sum.Buckets[j].Hours
		}
		if sum.Buckets[i].Group != sum.Buckets[j].Group {
			return sum.Buckets[i].Group < sum.Buckets[j].Group
		}
		return sum.Buckets[i].Subgroup < sum.Buckets[j].Subgroup
	})
	return sum
}

func (p *Pipeline) logSummary(log *applog.Logger, ds core.Dataset) {
	sum := Summarize(ds)
	log.Info("data summary",
		applog.FieldRows, sum.Rows,
		"first_date", sum.FirstDate,
		"last_date", sum.LastDate,
		"total_hours", fmt.Sprintf("%.2f", sum.TotalHours))
	for _, b := range sum.Buckets {
		log.Info("time by category",
			applog.FieldGroup, b.Group,
			applog.FieldSubgroup, b.Subgroup,
			"hours", fmt.Sprintf("%.2f", b.Hours))
	}
}
