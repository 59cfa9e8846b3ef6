package catalog

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/thirdlf03/world-holidays/internal/holiday"
)

const (
	DefaultTTL = time.Hour

	YearMin = 1900
	YearMax = 2100
)

var ErrYearOutOfRange = fmt.Errorf("year must be between %d and %d", YearMin, YearMax)

// Source is the upstream holiday data provider.
type Source interface {
	AvailableCountries(ctx context.Context) ([]holiday.Country, error)
	PublicHolidays(ctx context.Context, year int, countryCode string) ([]holiday.Holiday, error)
	NextPublicHolidays(ctx context.Context, countryCode string) ([]holiday.Holiday, error)
}

type entry struct {
	value     any
	expiresAt time.Time
}

// Catalog memoizes Source calls for a fixed window. Entries are only dropped
// when they are read after expiry; failed calls are never stored.
type Catalog struct {
	source Source
	ttl    time.Duration
	now    func() time.Time

	mu      sync.Mutex
	entries map[string]entry
}

type Option func(*Catalog)

func WithTTL(ttl time.Duration) Option {
	return func(c *Catalog) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *Catalog) {
		if now != nil {
			c.now = now
		}
	}
}

func New(source Source, opts ...Option) *Catalog {
	c := &Catalog{
		source:  source,
		ttl:     DefaultTTL,
		now:     time.Now,
		entries: make(map[string]entry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Catalog) AvailableCountries(ctx context.Context) ([]holiday.Country, error) {
	return cached(c, "countries", func() ([]holiday.Country, error) {
		return c.source.AvailableCountries(ctx)
	})
}

func (c *Catalog) PublicHolidays(ctx context.Context, year int, countryCode string) ([]holiday.Holiday, error) {
	countryCode = holiday.NormalizeCountryCode(countryCode)
	key := "holidays/" + strconv.Itoa(year) + "/" + countryCode
	return cached(c, key, func() ([]holiday.Holiday, error) {
		return c.source.PublicHolidays(ctx, year, countryCode)
	})
}

func (c *Catalog) NextPublicHolidays(ctx context.Context, countryCode string) ([]holiday.Holiday, error) {
	countryCode = holiday.NormalizeCountryCode(countryCode)
	return cached(c, "next/"+countryCode, func() ([]holiday.Holiday, error) {
		return c.source.NextPublicHolidays(ctx, countryCode)
	})
}

// Len reports how many entries are held, expired ones included.
func (c *Catalog) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func cached[T any](c *Catalog, key string, load func() (T, error)) (T, error) {
	if value, ok := c.lookup(key); ok {
		if typed, ok := value.(T); ok {
			return typed, nil
		}
	}

	// The lock is not held across the upstream call; concurrent misses on the
	// same key both fetch and the later result wins.
	value, err := load()
	if err != nil {
		var zero T
		return zero, err
	}

	c.store(key, value)
	return value, nil
}

func (c *Catalog) lookup(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if !c.now().Before(item.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	return item.value, true
}

func (c *Catalog) store(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{value: value, expiresAt: c.now().Add(c.ttl)}
}

func ValidateYear(year int) error {
	if year < YearMin || year > YearMax {
		return ErrYearOutOfRange
	}
	return nil
}

// IsYearError reports whether err came from ValidateYear.
func IsYearError(err error) bool {
	return errors.Is(err, ErrYearOutOfRange)
}
