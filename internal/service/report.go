package service

import (
	"sort"

	"github.com/iSadist/chronos/internal"
)

// Mode selects the report shape. Exactly one arm of Report is populated
// per mode; callers switch on Mode instead of probing the shape.
type Mode string

const (
	ModeRaw     Mode = "raw"
	ModeDaily   Mode = "daily"
	ModeWeekly  Mode = "weekly"
	ModeMonthly Mode = "monthly"
)

// ParseMode rejects anything outside the four known modes. An empty mode
// defaults to raw.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeRaw, "":
		return ModeRaw, nil
	case ModeDaily, ModeWeekly, ModeMonthly:
		return Mode(s), nil
	}
	return "", internal.NewAppError(400, "Unknown report mode: "+s)
}

// ClientTotal is the hours one client accumulated within a bucket.
type ClientTotal struct {
	ClientID   string  `json:"client_id"`
	TotalHours float64 `json:"total_hours"`
}

type DailyBucket struct {
	Date    string        `json:"date"`
	Clients []ClientTotal `json:"clients"`
}

type WeeklyBucket struct {
	Year    int           `json:"year"`
	Week    int           `json:"week"`
	Clients []ClientTotal `json:"clients"`
}

type MonthlyBucket struct {
	Year    int           `json:"year"`
	Month   int           `json:"month"`
	Clients []ClientTotal `json:"clients"`
}

// Report is the tagged result of BuildReport. Mode names the populated arm.
type Report struct {
	Mode    Mode                 `json:"mode"`
	Raw     []internal.TimeEntry `json:"entries,omitempty"`
	Daily   []DailyBucket        `json:"days,omitempty"`
	Weekly  []WeeklyBucket       `json:"weeks,omitempty"`
	Monthly []MonthlyBucket      `json:"months,omitempty"`
}

// FilterEntries narrows a user's entries to an optional client and an
// optional inclusive [from, to] date range, returning them sorted by date
// ascending. When either bound is given both must parse; a bad bound is a
// 400, never a silent pass-through.
func FilterEntries(entries []internal.TimeEntry, clientID, from, to string) ([]internal.TimeEntry, error) {
	filtered := make([]internal.TimeEntry, 0, len(entries))
	for _, e := range entries {
		if clientID != "" && e.ClientID != clientID {
			continue
		}
		filtered = append(filtered, e)
	}

	if from != "" || to != "" {
		fromDate, err := ParseDate(from)
		if err != nil {
			return nil, err
		}
		toDate, err := ParseDate(to)
		if err != nil {
			return nil, err
		}

		ranged := filtered[:0]
		for _, e := range filtered {
			d, err := ParseDate(e.Date)
			if err != nil {
				continue
			}
			if d.Before(fromDate) || d.After(toDate) {
				continue
			}
			ranged = append(ranged, e)
		}
		filtered = ranged
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Date < filtered[j].Date
	})
	return filtered, nil
}

// BuildReport aggregates entries into the requested shape. Pure and
// deterministic: same entries and mode, same report. Empty input yields
// an empty report in every mode.
func BuildReport(entries []internal.TimeEntry, mode Mode) Report {
	switch mode {
	case ModeDaily:
		return Report{Mode: mode, Daily: buildDaily(entries)}
	case ModeWeekly:
		return Report{Mode: mode, Weekly: buildWeekly(entries)}
	case ModeMonthly:
		return Report{Mode: mode, Monthly: buildMonthly(entries)}
	default:
		return Report{Mode: ModeRaw, Raw: buildRaw(entries)}
	}
}

func buildRaw(entries []internal.TimeEntry) []internal.TimeEntry {
	out := make([]internal.TimeEntry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date < out[j].Date
	})
	return out
}

// clientTotals reshapes a bucket's per-client sums into rows. Accumulation
// order is irrelevant; output order is fixed by client id so reports are
// stable.
func clientTotals(sums map[string]float64) []ClientTotal {
	totals := make([]ClientTotal, 0, len(sums))
	for clientID, hours := range sums {
		totals = append(totals, ClientTotal{ClientID: clientID, TotalHours: hours})
	}
	sort.Slice(totals, func(i, j int) bool {
		return totals[i].ClientID < totals[j].ClientID
	})
	return totals
}

func buildDaily(entries []internal.TimeEntry) []DailyBucket {
	sums := make(map[string]map[string]float64) // date -> clientID -> hours
	for _, e := range entries {
		d, err := ParseDate(e.Date)
		if err != nil {
			continue
		}
		key := d.Format(dateLayout)
		if sums[key] == nil {
			sums[key] = make(map[string]float64)
		}
		sums[key][e.ClientID] += e.Duration
	}

	buckets := make([]DailyBucket, 0, len(sums))
	for date, clients := range sums {
		buckets = append(buckets, DailyBucket{Date: date, Clients: clientTotals(clients)})
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Date < buckets[j].Date
	})
	return buckets
}

type weekKey struct {
	year int
	week int
}

func buildWeekly(entries []internal.TimeEntry) []WeeklyBucket {
	sums := make(map[weekKey]map[string]float64)
	for _, e := range entries {
		d, err := ParseDate(e.Date)
		if err != nil {
			continue
		}
		key := weekKey{year: d.Year(), week: WeekNumber(d)}
		if sums[key] == nil {
			sums[key] = make(map[string]float64)
		}
		sums[key][e.ClientID] += e.Duration
	}

	buckets := make([]WeeklyBucket, 0, len(sums))
	for key, clients := range sums {
		buckets = append(buckets, WeeklyBucket{Year: key.year, Week: key.week, Clients: clientTotals(clients)})
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Year != buckets[j].Year {
			return buckets[i].Year < buckets[j].Year
		}
		return buckets[i].Week < buckets[j].Week
	})
	return buckets
}

type monthKey struct {
	year  int
	month int
}

func buildMonthly(entries []internal.TimeEntry) []MonthlyBucket {
	sums := make(map[monthKey]map[string]float64)
	for _, e := range entries {
		d, err := ParseDate(e.Date)
		if err != nil {
			continue
		}
		key := monthKey{year: d.Year(), month: int(d.Month())}
		if sums[key] == nil {
			sums[key] = make(map[string]float64)
		}
		sums[key][e.ClientID] += e.Duration
	}

	buckets := make([]MonthlyBucket, 0, len(sums))
	for key, clients := range sums {
		buckets = append(buckets, MonthlyBucket{Year: key.year, Month: key.month, Clients: clientTotals(clients)})
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Year != buckets[j].Year {
			return buckets[i].Year < buckets[j].Year
		}
		return buckets[i].Month < buckets[j].Month
	})
	return buckets
}
