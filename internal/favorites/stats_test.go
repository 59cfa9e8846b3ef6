package favorites

import (
	"testing"

	"github.com/thirdlf03/world-holidays/internal/holiday"
)

func TestStatisticsEmpty(t *testing.T) {
	stats := Statistics(nil)
	if !stats.Empty() || stats.TotalCountries != 0 || stats.MostMonth != 0 {
		t.Fatalf("expected empty stats, got %+v", stats)
	}
}

func TestStatisticsJapaneseHolidays(t *testing.T) {
	list := []holiday.Holiday{
		{Date: "2025-01-01", Name: "New Year's Day", CountryCode: "JP"},
		{Date: "2025-01-13", Name: "Coming of Age Day", CountryCode: "JP"},
		{Date: "2025-02-11", Name: "Foundation Day", CountryCode: "JP"},
	}

	stats := Statistics(list)
	if stats.TotalHolidays != 3 || stats.TotalCountries != 1 || stats.MostMonth != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if stats.MonthCounts[1] != 2 || stats.MonthCounts[2] != 1 {
		t.Fatalf("unexpected month counts: %+v", stats.MonthCounts)
	}
	if stats.YearCounts[2025] != 3 || stats.CountryCounts["JP"] != 3 {
		t.Fatalf("unexpected counts: years=%+v countries=%+v", stats.YearCounts, stats.CountryCounts)
	}
}

func TestStatisticsTiesAndBadDates(t *testing.T) {
	list := []holiday.Holiday{
		{Date: "2024-12-25", CountryCode: "US"},
		{Date: "2025-03-20", CountryCode: "JP"},
		{Date: "not-a-date", CountryCode: "DE"},
	}

	stats := Statistics(list)
	if stats.TotalHolidays != 3 || stats.TotalCountries != 3 {
		t.Fatalf("bad dates must still count towards totals: %+v", stats)
	}
	if stats.MostMonth != 3 {
		t.Fatalf("expected tie to resolve to the lowest month, got %d", stats.MostMonth)
	}
	if len(stats.YearCounts) != 2 {
		t.Fatalf("unexpected year counts: %+v", stats.YearCounts)
	}
}

func TestGroupByCountry(t *testing.T) {
	list := []holiday.Holiday{
		{Date: "2025-07-04", CountryCode: "US"},
		{Date: "2025-02-11", CountryCode: "JP"},
		{Date: "2025-01-01", CountryCode: "US"},
		{Date: "2025-01-01", CountryCode: "JP"},
	}

	groups := GroupByCountry(list)
	if len(groups) != 2 || groups[0].CountryCode != "JP" || groups[1].CountryCode != "US" {
		t.Fatalf("unexpected groups: %+v", groups)
	}
	for _, group := range groups {
		if len(group.Holidays) != 2 || group.Holidays[0].Date != "2025-01-01" {
			t.Fatalf("group %s not sorted by date: %+v", group.CountryCode, group.Holidays)
		}
	}
	if got := GroupByCountry(nil); len(got) != 0 {
		t.Fatalf("expected no groups, got %+v", got)
	}
}
