package quiz

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/thirdlf03/world-holidays/internal/holiday"
)

const (
	// Bounds for rejection sampling before falling back to a linear scan.
	maxDateDraws   = 64
	maxFillerDraws = 64
)

// CountrySource is the subset of the catalog the generator reads from.
type CountrySource interface {
	AvailableCountries(ctx context.Context) ([]holiday.Country, error)
	PublicHolidays(ctx context.Context, year int, countryCode string) ([]holiday.Holiday, error)
}

// Generator builds randomized questions. A nil question with a nil error
// means no question could be produced from the available data.
type Generator struct {
	source CountrySource

	mu  sync.Mutex
	rng *rand.Rand
}

func NewGenerator(source CountrySource, rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{
		source: source,
		rng:    rng,
	}
}

func (g *Generator) TrueFalse(ctx context.Context) (*TrueFalseQuestion, error) {
	countries, err := g.source.AvailableCountries(ctx)
	if err != nil {
		return nil, err
	}
	if len(countries) == 0 {
		return nil, nil
	}

	country := countries[g.intn(len(countries))]
	year := TrueFalseYearMin + g.intn(TrueFalseYearMax-TrueFalseYearMin+1)
	wantHoliday := g.intn(2) == 0

	var holidays []holiday.Holiday
	fetched := false
	if wantHoliday {
		holidays, err = g.source.PublicHolidays(ctx, year, country.CountryCode)
		if err != nil {
			return nil, err
		}
		fetched = true

		// An empty list silently turns this into a non-holiday question.
		if len(holidays) > 0 {
			picked := holidays[g.intn(len(holidays))]
			return &TrueFalseQuestion{
				CountryName: country.Name,
				CountryCode: country.CountryCode,
				Date:        picked.Date,
				IsHoliday:   true,
				HolidayName: stringPtr(picked.Name),
				LocalName:   stringPtr(picked.LocalName),
			}, nil
		}
	}

	if !fetched {
		holidays, err = g.source.PublicHolidays(ctx, year, country.CountryCode)
		if err != nil {
			return nil, err
		}
	}

	date, ok := g.nonHolidayDate(year, holiday.DateSet(holidays))
	if !ok {
		return nil, nil
	}

	return &TrueFalseQuestion{
		CountryName: country.Name,
		CountryCode: country.CountryCode,
		Date:        date,
		IsHoliday:   false,
	}, nil
}

func (g *Generator) Guess(ctx context.Context) (*GuessQuestion, error) {
	countries, err := g.source.AvailableCountries(ctx)
	if err != nil {
		return nil, err
	}
	if len(countries) < GuessOptionCount {
		return nil, nil
	}

	selected := g.sample(countries, GuessOptionCount)
	correctCountry := selected[g.intn(len(selected))]
	year := GuessYearMin + g.intn(GuessYearMax-GuessYearMin+1)

	holidays, err := g.source.PublicHolidays(ctx, year, correctCountry.CountryCode)
	if err != nil {
		return nil, err
	}
	if len(holidays) == 0 {
		return nil, nil
	}

	answer := holidays[g.intn(len(holidays))]
	options := make([]GuessOption, 0, GuessOptionCount)
	options = append(options, GuessOption{
		Date:        answer.Date,
		CountryCode: correctCountry.CountryCode,
		CountryName: correctCountry.Name,
		IsCorrect:   true,
	})

	for _, country := range selected {
		if country.CountryCode == correctCountry.CountryCode {
			continue
		}
		others, err := g.source.PublicHolidays(ctx, year, country.CountryCode)
		if err != nil {
			return nil, err
		}
		if len(others) == 0 {
			continue
		}
		picked := others[g.intn(len(others))]
		options = append(options, GuessOption{
			Date:        picked.Date,
			CountryCode: country.CountryCode,
			CountryName: country.Name,
		})
	}

	options = g.fillOptions(options, selected, year)

	g.mu.Lock()
	g.rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	g.mu.Unlock()

	correctIndex := -1
	for idx, option := range options {
		if option.IsCorrect {
			correctIndex = idx
			break
		}
	}

	return &GuessQuestion{
		HolidayName:  answer.Name,
		LocalName:    answer.LocalName,
		Options:      options,
		CorrectIndex: correctIndex,
	}, nil
}

// fillOptions pads options up to GuessOptionCount with synthesized dates.
// Days stop at 28 so every month is valid. Duplicates are detected on the
// literal date string.
func (g *Generator) fillOptions(options []GuessOption, countries []holiday.Country, year int) []GuessOption {
	for draws := 0; len(options) < GuessOptionCount && draws < maxFillerDraws; draws++ {
		month := 1 + g.intn(12)
		day := 1 + g.intn(28)
		date := holiday.FormatDate(year, time.Month(month), day)
		if dateUsed(options, date) {
			continue
		}
		country := countries[g.intn(len(countries))]
		options = append(options, GuessOption{
			Date:        date,
			CountryCode: country.CountryCode,
			CountryName: country.Name,
		})
	}

	for month := 1; month <= 12 && len(options) < GuessOptionCount; month++ {
		for day := 1; day <= 28 && len(options) < GuessOptionCount; day++ {
			date := holiday.FormatDate(year, time.Month(month), day)
			if dateUsed(options, date) {
				continue
			}
			country := countries[len(options)%len(countries)]
			options = append(options, GuessOption{
				Date:        date,
				CountryCode: country.CountryCode,
				CountryName: country.Name,
			})
		}
	}

	return options
}

func (g *Generator) nonHolidayDate(year int, holidayDates map[string]struct{}) (string, bool) {
	days := holiday.DaysInYear(year)
	start := time.Date(year, time.January, 1, 12, 0, 0, 0, time.UTC)

	for draw := 0; draw < maxDateDraws; draw++ {
		date := start.AddDate(0, 0, g.intn(days)).Format(holiday.DateLayout)
		if _, taken := holidayDates[date]; !taken {
			return date, true
		}
	}

	for offset := 0; offset < days; offset++ {
		date := start.AddDate(0, 0, offset).Format(holiday.DateLayout)
		if _, taken := holidayDates[date]; !taken {
			return date, true
		}
	}
	return "", false
}

func (g *Generator) sample(countries []holiday.Country, n int) []holiday.Country {
	g.mu.Lock()
	defer g.mu.Unlock()

	indexes := g.rng.Perm(len(countries))[:n]
	selected := make([]holiday.Country, 0, n)
	for _, idx := range indexes {
		selected = append(selected, countries[idx])
	}
	return selected
}

func (g *Generator) intn(n int) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rng.Intn(n)
}

func dateUsed(options []GuessOption, date string) bool {
	for _, option := range options {
		if option.Date == date {
			return true
		}
	}
	return false
}
