package players

import (
	"fmt"
	"sort"
	"time"
)

const hoursPerDay = 24

// ComputeStats aggregates records. Dates are UTC calendar dates, hours are counted in loc.
// Records without a parsable Timestamp still count towards the totals.
func ComputeStats(records []PlayerRecord, loc *time.Location) *DashboardStats {
	stats := &DashboardStats{
		TotalPlayers:  len(records),
		PlayersByDate: []DateCount{},
	}

	var winners, attempts int
	byDate := make(map[string]int)
	byHour := make([]int, hoursPerDay)
	for _, r := range records {
		if r.Result == ResultWin {
			winners++
		}
		attempts += r.Attempts

		t, ok := ParseTimestamp(r.Timestamp, loc)
		if !ok {
			continue
		}
		byDate[dateKey(t)]++
		byHour[t.In(location(loc)).Hour()]++
	}

	if len(records) > 0 {
		stats.WinRate = float64(winners) / float64(len(records)) * 100
		stats.AverageAttempts = float64(attempts) / float64(len(records))
	}
	for _, date := range sortedKeys(byDate) {
		stats.PlayersByDate = append(stats.PlayersByDate, DateCount{Date: date, Count: byDate[date]})
	}
	stats.PlayersByHour = hourBuckets(byHour)
	return stats
}

// GroupHourlyByDate builds the hour-of-day histogram of every date that has a session.
// Dates are UTC calendar dates like in ComputeStats, hours are counted in loc.
func GroupHourlyByDate(records []PlayerRecord, loc *time.Location) *HourlyByDate {
	loc = location(loc)
	counts := make(map[string][]int)
	for _, r := range records {
		t, ok := ParseTimestamp(r.Timestamp, loc)
		if !ok {
			continue
		}
		date := dateKey(t)
		if counts[date] == nil {
			counts[date] = make([]int, hoursPerDay)
		}
		counts[date][t.In(loc).Hour()]++
	}

	out := &HourlyByDate{Dates: sortedKeys(counts), HourlyData: []DateHours{}}
	for _, date := range out.Dates {
		out.HourlyData = append(out.HourlyData, DateHours{Date: date, Hours: hourBuckets(counts[date])})
	}
	return out
}

// PaginateRecords returns the 1-based page of records. Pages past the end are empty.
func PaginateRecords(records []PlayerRecord, page, pageSize int) *Page {
	total := len(records)
	p := &Page{
		Data:       []PlayerRecord{},
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
	}
	if pageSize <= 0 || page <= 0 {
		return p
	}
	p.TotalPages = total / pageSize
	if total%pageSize != 0 {
		p.TotalPages++
	}

	// Checked before multiplying so huge page numbers cannot overflow.
	if page > p.TotalPages {
		return p
	}
	start := (page - 1) * pageSize
	end := start + min(pageSize, total-start)
	p.Data = append(p.Data, records[start:end]...)
	return p
}

func dateKey(t time.Time) string {
	return t.UTC().Format(time.DateOnly)
}

func hourBuckets(counts []int) []HourCount {
	out := make([]HourCount, hoursPerDay)
	for h := range out {
		out[h] = HourCount{Hour: fmt.Sprintf("%02d", h), Count: counts[h]}
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func location(loc *time.Location) *time.Location {
	if loc == nil {
		return time.Local
	}
	return loc
}
