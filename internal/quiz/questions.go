package quiz

const (
	TrueFalseYearMin = 2020
	TrueFalseYearMax = 2025

	GuessYearMin = 2023
	GuessYearMax = 2025

	GuessOptionCount = 4
)

// TrueFalseQuestion asks whether Date is a public holiday in the country.
// HolidayName and LocalName are set only when IsHoliday is true.
type TrueFalseQuestion struct {
	CountryName string  `json:"country_name"`
	CountryCode string  `json:"country_code"`
	Date        string  `json:"date"`
	IsHoliday   bool    `json:"is_holiday"`
	HolidayName *string `json:"holiday_name"`
	LocalName   *string `json:"local_name"`
}

type GuessOption struct {
	Date        string `json:"date"`
	CountryCode string `json:"country_code"`
	CountryName string `json:"country_name"`
	IsCorrect   bool   `json:"is_correct"`
}

// GuessQuestion asks which (date, country) pair belongs to the named holiday.
type GuessQuestion struct {
	HolidayName  string        `json:"holiday_name"`
	LocalName    string        `json:"local_name"`
	Options      []GuessOption `json:"options"`
	CorrectIndex int           `json:"correct_index"`
}

func (q TrueFalseQuestion) Consistent() bool {
	if q.IsHoliday {
		return q.HolidayName != nil && q.LocalName != nil
	}
	return q.HolidayName == nil && q.LocalName == nil
}

func (q GuessQuestion) CorrectOption() (GuessOption, bool) {
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return GuessOption{}, false
	}
	return q.Options[q.CorrectIndex], true
}

func stringPtr(v string) *string {
	return &v
}
