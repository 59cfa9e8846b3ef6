package catalog

import "github.com/thirdlf03/world-holidays/internal/holiday"

type CountryOption struct {
	Label       string `json:"label"`
	CountryCode string `json:"country_code"`
}

// SearchRow is one line of a search result table.
type SearchRow struct {
	holiday.Holiday
	Favorite bool `json:"favorite"`
}

// OptionsFor builds selector labels like "Japan (JP)".
func OptionsFor(countries []holiday.Country) []CountryOption {
	options := make([]CountryOption, 0, len(countries))
	for _, country := range countries {
		options = append(options, CountryOption{
			Label:       country.Name + " (" + country.CountryCode + ")",
			CountryCode: country.CountryCode,
		})
	}
	return options
}

func SearchRows(holidays, favorites []holiday.Holiday) []SearchRow {
	rows := make([]SearchRow, 0, len(holidays))
	for _, item := range holidays {
		rows = append(rows, SearchRow{
			Holiday:  item,
			Favorite: holiday.Contains(favorites, item),
		})
	}
	return rows
}
