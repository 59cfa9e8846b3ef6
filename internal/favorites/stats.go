package favorites

import (
	"sort"

	"github.com/thirdlf03/world-holidays/internal/holiday"
)

type Stats struct {
	TotalHolidays  int            `json:"total_holidays"`
	TotalCountries int            `json:"total_countries"`
	CountryCounts  map[string]int `json:"country_counts"`
	MonthCounts    map[int]int    `json:"month_counts"`
	YearCounts     map[int]int    `json:"year_counts"`
	MostMonth      int            `json:"most_month,omitempty"`
}

func (s Stats) Empty() bool {
	return s.TotalHolidays == 0
}

// Statistics aggregates the favorites by country, month and year. Entries
// with an unparseable date still count towards the totals.
func Statistics(list []holiday.Holiday) Stats {
	if len(list) == 0 {
		return Stats{}
	}

	stats := Stats{
		TotalHolidays: len(list),
		CountryCounts: make(map[string]int),
		MonthCounts:   make(map[int]int),
		YearCounts:    make(map[int]int),
	}
	for _, item := range list {
		stats.CountryCounts[item.CountryCode]++

		date, err := item.Time()
		if err != nil {
			continue
		}
		stats.MonthCounts[int(date.Month())]++
		stats.YearCounts[date.Year()]++
	}
	stats.TotalCountries = len(stats.CountryCounts)

	best := 0
	for month := 1; month <= 12; month++ {
		if count := stats.MonthCounts[month]; count > best {
			best = count
			stats.MostMonth = month
		}
	}
	return stats
}

type CountryGroup struct {
	CountryCode string            `json:"country_code"`
	Holidays    []holiday.Holiday `json:"holidays"`
}

// GroupByCountry returns one group per country code, ordered by code, with
// each group's holidays ordered by date.
func GroupByCountry(list []holiday.Holiday) []CountryGroup {
	byCountry := make(map[string][]holiday.Holiday)
	for _, item := range list {
		byCountry[item.CountryCode] = append(byCountry[item.CountryCode], item)
	}

	groups := make([]CountryGroup, 0, len(byCountry))
	for code, items := range byCountry {
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Date < items[j].Date
		})
		groups = append(groups, CountryGroup{CountryCode: code, Holidays: items})
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].CountryCode < groups[j].CountryCode
	})
	return groups
}
