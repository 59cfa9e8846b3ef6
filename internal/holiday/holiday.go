package holiday

import (
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// Holiday mirrors the Nager.Date public holiday payload.
type Holiday struct {
	Date        string `json:"date"`
	Name        string `json:"name"`
	LocalName   string `json:"localName"`
	CountryCode string `json:"countryCode"`
}

// Key identifies a holiday occurrence. Two holidays on the same date in the
// same country share a key even when their names differ.
type Key struct {
	Date        string
	CountryCode string
}

type Country struct {
	CountryCode string `json:"countryCode"`
	Name        string `json:"name"`
}

func (h Holiday) Key() Key {
	return Key{Date: h.Date, CountryCode: h.CountryCode}
}

func (h Holiday) Equal(other Holiday) bool {
	return h.Key() == other.Key()
}

// EqualAny reports equality against an arbitrary value; anything that is not
// a Holiday is never equal.
func (h Holiday) EqualAny(v any) bool {
	switch other := v.(type) {
	case Holiday:
		return h.Equal(other)
	case *Holiday:
		return other != nil && h.Equal(*other)
	default:
		return false
	}
}

// SameEntry compares the (date, name, country code) triple used for favorite
// deduplication.
func (h Holiday) SameEntry(other Holiday) bool {
	return h.Date == other.Date && h.Name == other.Name && h.CountryCode == other.CountryCode
}

func (h Holiday) Time() (time.Time, error) {
	return ParseDate(h.Date)
}

func Contains(list []Holiday, target Holiday) bool {
	for _, item := range list {
		if item.Equal(target) {
			return true
		}
	}
	return false
}

// DateSet returns the set of date strings present in list.
func DateSet(list []Holiday) map[string]struct{} {
	dates := make(map[string]struct{}, len(list))
	for _, item := range list {
		dates[item.Date] = struct{}{}
	}
	return dates
}

func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(value))
}

// FormatDate formats a calendar day as YYYY-MM-DD. Noon avoids zone drift.
func FormatDate(year int, month time.Month, day int) string {
	return time.Date(year, month, day, 12, 0, 0, 0, time.UTC).Format(DateLayout)
}

func DaysInYear(year int) int {
	return time.Date(year, time.December, 31, 12, 0, 0, 0, time.UTC).YearDay()
}

func NormalizeCountryCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
