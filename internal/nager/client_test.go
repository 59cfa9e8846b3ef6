package nager

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func newTestClient(rt http.RoundTripper) *Client {
	return NewClient(&http.Client{Transport: rt}, "http://nager.test/api/v3/")
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Status:     http.StatusText(status),
		Body:       io.NopCloser(bytes.NewReader([]byte(body))),
		Header:     make(http.Header),
	}
}

func TestAvailableCountriesDecodes(t *testing.T) {
	var seenPath string
	client := newTestClient(roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		seenPath = r.URL.Path
		return jsonResponse(http.StatusOK, `[{"countryCode":"JP","name":"Japan"},{"countryCode":"US","name":"United States"}]`), nil
	}))

	countries, err := client.AvailableCountries(context.Background())
	if err != nil {
		t.Fatalf("AvailableCountries returned error: %v", err)
	}
	if seenPath != "/api/v3/AvailableCountries" {
		t.Fatalf("unexpected path %q", seenPath)
	}
	if len(countries) != 2 || countries[0].CountryCode != "JP" || countries[1].Name != "United States" {
		t.Fatalf("unexpected countries: %+v", countries)
	}
}

func TestPublicHolidaysBuildsPathAndDecodes(t *testing.T) {
	var seenPath string
	client := newTestClient(roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		seenPath = r.URL.Path
		return jsonResponse(http.StatusOK, `[{"date":"2025-01-01","name":"New Year's Day","localName":"元日","countryCode":"JP","fixed":true}]`), nil
	}))

	holidays, err := client.PublicHolidays(context.Background(), 2025, " jp ")
	if err != nil {
		t.Fatalf("PublicHolidays returned error: %v", err)
	}
	if seenPath != "/api/v3/PublicHolidays/2025/JP" {
		t.Fatalf("unexpected path %q", seenPath)
	}
	if len(holidays) != 1 {
		t.Fatalf("expected 1 holiday, got %d", len(holidays))
	}
	got := holidays[0]
	if got.Date != "2025-01-01" || got.LocalName != "元日" || got.CountryCode != "JP" {
		t.Fatalf("unexpected holiday: %+v", got)
	}
}

func TestNextPublicHolidaysPath(t *testing.T) {
	var seenPath string
	client := newTestClient(roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		seenPath = r.URL.Path
		return jsonResponse(http.StatusOK, `[]`), nil
	}))

	holidays, err := client.NextPublicHolidays(context.Background(), "de")
	if err != nil {
		t.Fatalf("NextPublicHolidays returned error: %v", err)
	}
	if len(holidays) != 0 {
		t.Fatalf("expected no holidays, got %d", len(holidays))
	}
	if seenPath != "/api/v3/NextPublicHolidays/DE" {
		t.Fatalf("unexpected path %q", seenPath)
	}
}

func TestPublicHolidaysNoContentIsEmpty(t *testing.T) {
	client := newTestClient(roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusNoContent, ""), nil
	}))

	holidays, err := client.PublicHolidays(context.Background(), 2025, "AQ")
	if err != nil {
		t.Fatalf("expected no error for 204, got %v", err)
	}
	if len(holidays) != 0 {
		t.Fatalf("expected empty list, got %+v", holidays)
	}
}

func TestNonOKStatusReturnsStatusError(t *testing.T) {
	client := newTestClient(roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusNotFound, "unknown country"), nil
	}))

	_, err := client.PublicHolidays(context.Background(), 2025, "XX")
	if err == nil {
		t.Fatalf("expected error for non-2xx status")
	}

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected *StatusError, got %T", err)
	}
	if statusErr.StatusCode != http.StatusNotFound {
		t.Fatalf("status code = %d, want %d", statusErr.StatusCode, http.StatusNotFound)
	}
	if !strings.Contains(err.Error(), "unknown country") {
		t.Fatalf("error text should carry upstream body, got %q", err.Error())
	}
}

func TestJSONDecodeError(t *testing.T) {
	client := newTestClient(roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, "not-json"), nil
	}))

	if _, err := client.AvailableCountries(context.Background()); err == nil {
		t.Fatalf("expected JSON decode error")
	}
}

func TestTransportErrorPropagates(t *testing.T) {
	dialErr := errors.New("dial error")
	client := newTestClient(roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		return nil, dialErr
	}))

	_, err := client.AvailableCountries(context.Background())
	if !errors.Is(err, dialErr) {
		t.Fatalf("expected transport error to propagate, got %v", err)
	}
}

func TestNewClientDefaults(t *testing.T) {
	client := NewClient(nil, "")
	if client.baseURL != DefaultBaseURL {
		t.Fatalf("baseURL = %q, want %q", client.baseURL, DefaultBaseURL)
	}
	if client.httpClient != http.DefaultClient {
		t.Fatalf("expected default http client")
	}
}
