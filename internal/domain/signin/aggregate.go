package signin

import (
	"sort"
	"time"
)

// Aggregate groups records by (normalized employee, week) and returns one
// summary per group, ordered by week then normalized employee.
//
// Records sharing an employee and an exact timestamp are all counted. The
// displayed employee name is the spelling used by the group's latest
// sign-in.
func Aggregate(records []Record, scheme WeekScheme) ([]Summary, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}

	groups := make(map[Key][]Record)
	for _, rec := range records {
		key := Key{Employee: NormalizeName(rec.Employee), Week: scheme.WeekOf(rec.Timestamp)}
		groups[key] = append(groups[key], rec)
	}

	summaries := make([]Summary, 0, len(groups))
	for key, recs := range groups {
		sort.SliceStable(recs, func(i, j int) bool {
			return recs[i].Timestamp.Before(recs[j].Timestamp)
		})
		first, last := recs[0], recs[len(recs)-1]
		summaries = append(summaries, Summary{
			Employee:    last.Employee,
			Week:        key.Week,
			Count:       len(recs),
			FirstSignin: first.Timestamp,
			LastSignin:  last.Timestamp,
			key:         key.Employee,
			records:     recs,
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		if c := summaries[i].Week.Compare(summaries[j].Week); c != 0 {
			return c < 0
		}
		return summaries[i].key < summaries[j].key
	})
	return summaries, nil
}

// Merge combines summaries from separate uploads by re-aggregating the
// records behind them, so an (employee, week) pair present in several
// batches yields a single row with the combined count.
func Merge(scheme WeekScheme, batches ...[]Summary) ([]Summary, error) {
	var records []Record
	for _, batch := range batches {
		for _, s := range batch {
			records = append(records, s.records...)
		}
	}
	return Aggregate(records, scheme)
}

// Chart reshapes summaries into chart triples, keeping their order.
func Chart(summaries []Summary) []ChartPoint {
	points := make([]ChartPoint, 0, len(summaries))
	for _, s := range summaries {
		points = append(points, ChartPoint{Week: s.Week, Employee: s.Employee, Count: s.Count})
	}
	return points
}

// Span describes the time range covered by a set of records.
type Span struct {
	First time.Time `json:"first"`
	Last  time.Time `json:"last"`
	Weeks []Week    `json:"weeks"`
}

// SpanOf returns the earliest and latest timestamps and the distinct weeks,
// in ascending order.
func SpanOf(records []Record, scheme WeekScheme) (Span, error) {
	if len(records) == 0 {
		return Span{}, ErrNoRecords
	}
	span := Span{First: records[0].Timestamp, Last: records[0].Timestamp}
	seen := make(map[Week]bool)
	for _, rec := range records {
		if rec.Timestamp.Before(span.First) {
			span.First = rec.Timestamp
		}
		if rec.Timestamp.After(span.Last) {
			span.Last = rec.Timestamp
		}
		week := scheme.WeekOf(rec.Timestamp)
		if !seen[week] {
			seen[week] = true
			span.Weeks = append(span.Weeks, week)
		}
	}
	sort.Slice(span.Weeks, func(i, j int) bool {
		return span.Weeks[i].Compare(span.Weeks[j]) < 0
	})
	return span, nil
}
