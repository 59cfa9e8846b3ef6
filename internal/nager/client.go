package nager

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/thirdlf03/world-holidays/internal/holiday"
)

const DefaultBaseURL = "https://date.nager.at/api/v3"

const maxErrorBody = 512

// StatusError is returned for any non-2xx upstream response.
type StatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	if strings.TrimSpace(e.Body) == "" {
		return fmt.Sprintf("nager.date returned %s", e.Status)
	}
	return fmt.Sprintf("nager.date returned %s: %s", e.Status, e.Body)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(httpClient *http.Client, baseURL string) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

func (c *Client) AvailableCountries(ctx context.Context) ([]holiday.Country, error) {
	var countries []holiday.Country
	if err := c.getJSON(ctx, "/AvailableCountries", &countries); err != nil {
		return nil, err
	}
	return countries, nil
}

func (c *Client) PublicHolidays(ctx context.Context, year int, countryCode string) ([]holiday.Holiday, error) {
	path := "/PublicHolidays/" + strconv.Itoa(year) + "/" + url.PathEscape(holiday.NormalizeCountryCode(countryCode))

	var holidays []holiday.Holiday
	if err := c.getJSON(ctx, path, &holidays); err != nil {
		return nil, err
	}
	return holidays, nil
}

func (c *Client) NextPublicHolidays(ctx context.Context, countryCode string) ([]holiday.Holiday, error) {
	path := "/NextPublicHolidays/" + url.PathEscape(holiday.NormalizeCountryCode(countryCode))

	var holidays []holiday.Holiday
	if err := c.getJSON(ctx, path, &holidays); err != nil {
		return nil, err
	}
	return holidays, nil
}

func (c *Client) getJSON(ctx context.Context, path string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	// Nager answers 204 with no body when it has no data for a country/year.
	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	return nil
}
