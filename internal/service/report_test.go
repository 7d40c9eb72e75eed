package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iSadist/chronos/internal"
)

func fixtureEntries() []internal.TimeEntry {
	return []internal.TimeEntry{
		{ID: "A-1", ClientID: "A", UserID: "u1", Date: "2024-01-01", Duration: 2},
		{ID: "A-2", ClientID: "A", UserID: "u1", Date: "2024-01-01", Duration: 3},
		{ID: "B-1", ClientID: "B", UserID: "u1", Date: "2024-01-02", Duration: 1},
	}
}

func totalHours(r Report) float64 {
	var sum float64
	for _, e := range r.Raw {
		sum += e.Duration
	}
	for _, b := range r.Daily {
		for _, c := range b.Clients {
			sum += c.TotalHours
		}
	}
	for _, b := range r.Weekly {
		for _, c := range b.Clients {
			sum += c.TotalHours
		}
	}
	for _, b := range r.Monthly {
		for _, c := range b.Clients {
			sum += c.TotalHours
		}
	}
	return sum
}

func TestBuildReportRawIsSortedPermutation(t *testing.T) {
	entries := []internal.TimeEntry{
		{ID: "B-1", ClientID: "B", Date: "2024-03-05", Duration: 1},
		{ID: "A-1", ClientID: "A", Date: "2024-01-10", Duration: 2},
		{ID: "C-1", ClientID: "C", Date: "2024-02-20", Duration: 3},
	}

	report := BuildReport(entries, ModeRaw)

	assert.Equal(t, ModeRaw, report.Mode)
	assert.Len(t, report.Raw, 3)
	assert.Equal(t, "A-1", report.Raw[0].ID)
	assert.Equal(t, "C-1", report.Raw[1].ID)
	assert.Equal(t, "B-1", report.Raw[2].ID)

	// No entry added, dropped, or duplicated
	seen := map[string]bool{}
	for _, e := range report.Raw {
		seen[e.ID] = true
	}
	assert.Len(t, seen, 3)
}

func TestBuildReportConservesHours(t *testing.T) {
	entries := fixtureEntries()
	want := 6.0

	for _, mode := range []Mode{ModeRaw, ModeDaily, ModeWeekly, ModeMonthly} {
		report := BuildReport(entries, mode)
		assert.InDelta(t, want, totalHours(report), 0.0001, "mode %s", mode)
	}
}

func TestBuildReportEmptyInput(t *testing.T) {
	for _, mode := range []Mode{ModeRaw, ModeDaily, ModeWeekly, ModeMonthly} {
		report := BuildReport([]internal.TimeEntry{}, mode)
		assert.Empty(t, report.Raw)
		assert.Empty(t, report.Daily)
		assert.Empty(t, report.Weekly)
		assert.Empty(t, report.Monthly)
	}
}

func TestBuildReportIsIdempotent(t *testing.T) {
	entries := fixtureEntries()
	first := BuildReport(entries, ModeDaily)
	second := BuildReport(entries, ModeDaily)
	assert.Equal(t, first, second)
}

func TestDailyReportScenario(t *testing.T) {
	report := BuildReport(fixtureEntries(), ModeDaily)

	assert.Len(t, report.Daily, 2)
	assert.Equal(t, "2024-01-01", report.Daily[0].Date)
	assert.Equal(t, []ClientTotal{{ClientID: "A", TotalHours: 5}}, report.Daily[0].Clients)
	assert.Equal(t, "2024-01-02", report.Daily[1].Date)
	assert.Equal(t, []ClientTotal{{ClientID: "B", TotalHours: 1}}, report.Daily[1].Clients)
}

func TestMonthlyReportScenario(t *testing.T) {
	report := BuildReport(fixtureEntries(), ModeMonthly)

	assert.Len(t, report.Monthly, 1)
	bucket := report.Monthly[0]
	assert.Equal(t, 2024, bucket.Year)
	assert.Equal(t, 1, bucket.Month)
	assert.Equal(t, []ClientTotal{
		{ClientID: "A", TotalHours: 5},
		{ClientID: "B", TotalHours: 1},
	}, bucket.Clients)
}

func TestMonthlyReportSortedChronologically(t *testing.T) {
	entries := []internal.TimeEntry{
		{ID: "A-1", ClientID: "A", Date: "2024-02-15", Duration: 1},
		{ID: "A-2", ClientID: "A", Date: "2023-12-31", Duration: 1},
		{ID: "A-3", ClientID: "A", Date: "2024-01-01", Duration: 1},
	}

	report := BuildReport(entries, ModeMonthly)

	assert.Len(t, report.Monthly, 3)
	assert.Equal(t, 2023, report.Monthly[0].Year)
	assert.Equal(t, 12, report.Monthly[0].Month)
	assert.Equal(t, 2024, report.Monthly[1].Year)
	assert.Equal(t, 1, report.Monthly[1].Month)
	assert.Equal(t, 2, report.Monthly[2].Month)
}

func TestWeeklyReportGroupsByWeek(t *testing.T) {
	// 2024-01-01 is a Monday; Jan 8 starts the next bucket.
	entries := []internal.TimeEntry{
		{ID: "A-1", ClientID: "A", Date: "2024-01-01", Duration: 2},
		{ID: "A-2", ClientID: "A", Date: "2024-01-03", Duration: 3},
		{ID: "A-3", ClientID: "A", Date: "2024-01-08", Duration: 1},
	}

	report := BuildReport(entries, ModeWeekly)

	assert.Len(t, report.Weekly, 2)
	assert.Equal(t, report.Weekly[0].Week+1, report.Weekly[1].Week)
	assert.InDelta(t, 5.0, report.Weekly[0].Clients[0].TotalHours, 0.0001)
	assert.InDelta(t, 1.0, report.Weekly[1].Clients[0].TotalHours, 0.0001)
}

func TestParseMode(t *testing.T) {
	for _, s := range []string{"raw", "daily", "weekly", "monthly", ""} {
		_, err := ParseMode(s)
		assert.NoError(t, err, "mode %q", s)
	}

	_, err := ParseMode("hourly")
	assert.Error(t, err)
	appErr, ok := err.(*internal.AppError)
	assert.True(t, ok)
	assert.Equal(t, 400, appErr.Code)
}

func TestFilterEntriesInclusiveBounds(t *testing.T) {
	entries := []internal.TimeEntry{
		{ID: "A-1", ClientID: "A", Date: "2024-01-01", Duration: 1},
		{ID: "A-2", ClientID: "A", Date: "2024-01-15", Duration: 1},
		{ID: "A-3", ClientID: "A", Date: "2024-01-31", Duration: 1},
		{ID: "A-4", ClientID: "A", Date: "2024-02-01", Duration: 1},
	}

	filtered, err := FilterEntries(entries, "", "2024-01-01", "2024-01-31")
	assert.NoError(t, err)
	assert.Len(t, filtered, 3)
	assert.Equal(t, "A-1", filtered[0].ID)
	assert.Equal(t, "A-3", filtered[2].ID)
}

func TestFilterEntriesInvalidDate(t *testing.T) {
	entries := fixtureEntries()

	_, err := FilterEntries(entries, "", "not-a-date", "2024-01-31")
	assert.Error(t, err)
	appErr, ok := err.(*internal.AppError)
	assert.True(t, ok)
	assert.Equal(t, 400, appErr.Code)

	// A bad bound fails the call; it never silently passes all entries.
	_, err = FilterEntries(entries, "", "2024-01-01", "31/01/2024")
	assert.Error(t, err)
}

func TestFilterEntriesByClient(t *testing.T) {
	filtered, err := FilterEntries(fixtureEntries(), "A", "", "")
	assert.NoError(t, err)
	assert.Len(t, filtered, 2)
	for _, e := range filtered {
		assert.Equal(t, "A", e.ClientID)
	}
}

func TestFilterEntriesNoClientMeansAll(t *testing.T) {
	filtered, err := FilterEntries(fixtureEntries(), "", "", "")
	assert.NoError(t, err)
	assert.Len(t, filtered, 3)
}

func TestFilterEntriesSortsAscending(t *testing.T) {
	entries := []internal.TimeEntry{
		{ID: "A-2", ClientID: "A", Date: "2024-05-01", Duration: 1},
		{ID: "A-1", ClientID: "A", Date: "2024-04-01", Duration: 1},
	}
	filtered, err := FilterEntries(entries, "", "", "")
	assert.NoError(t, err)
	assert.Equal(t, "A-1", filtered[0].ID)
	assert.Equal(t, "A-2", filtered[1].ID)
}
