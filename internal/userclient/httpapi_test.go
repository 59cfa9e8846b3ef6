package userclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/thirdlf03/world-holidays/internal/catalog"
	"github.com/thirdlf03/world-holidays/internal/holiday"
	"github.com/thirdlf03/world-holidays/internal/quiz"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func TestDoJSONReturnsServiceUnavailable(t *testing.T) {
	client := NewHTTPClient("http://example.test", &http.Client{
		Transport: roundTripperFunc(func(*http.Request) (*http.Response, error) {
			return nil, errors.New("dial error")
		}),
	})

	err := client.doJSON(context.Background(), http.MethodGet, "/healthz", nil, nil)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !errors.Is(err, ErrServiceUnavailable) {
		t.Fatalf("expected ErrServiceUnavailable wrapper, got %v", err)
	}
}

func TestDoJSONReturnsAPIErrorMessageFromBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(errorResponse{Error: "invalid year"})
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, server.Client())
	err := client.doJSON(context.Background(), http.MethodGet, "/anything", nil, nil)

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T (%v)", err, err)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Fatalf("status code = %d, want %d", apiErr.StatusCode, http.StatusBadRequest)
	}
	if apiErr.Message != "invalid year" {
		t.Fatalf("message = %q, want %q", apiErr.Message, "invalid year")
	}
}

func TestDoJSONFallsBackToStatusText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, server.Client())
	err := client.doJSON(context.Background(), http.MethodGet, "/countries", nil, nil)

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T (%v)", err, err)
	}
	if apiErr.Message != "502 Bad Gateway" {
		t.Fatalf("message = %q", apiErr.Message)
	}
}

func TestSearchBuildsPathAndParsesRows(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Fatalf("method = %s, want GET", r.Method)
		}
		if r.URL.Path != "/holidays/2024/JP" {
			t.Fatalf("path = %q, want /holidays/2024/JP", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(searchResponse{
			Year:        2024,
			CountryCode: "JP",
			Holidays: []catalog.SearchRow{
				{Holiday: holiday.Holiday{Date: "2024-01-01", Name: "New Year's Day", LocalName: "元日", CountryCode: "JP"}, Favorite: true},
			},
		})
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL+"/", server.Client())
	payload, err := client.Search(context.Background(), 2024, "JP")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(payload.Holidays) != 1 || !payload.Holidays[0].Favorite || payload.Holidays[0].LocalName != "元日" {
		t.Fatalf("unexpected rows: %+v", payload.Holidays)
	}
}

func TestSearchRequiresCountryCode(t *testing.T) {
	client := NewHTTPClient("http://example.test", &http.Client{
		Transport: roundTripperFunc(func(*http.Request) (*http.Response, error) {
			t.Fatalf("no request expected")
			return nil, nil
		}),
	})
	if _, err := client.Search(context.Background(), 2024, "  "); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestStartSessionUsesModePath(t *testing.T) {
	tests := []struct {
		mode quiz.Mode
		path string
	}{
		{mode: quiz.ModeTrueFalse, path: "/quiz/true-false/sessions"},
		{mode: quiz.ModeGuess, path: "/quiz/guess/sessions"},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			var gotPath, gotMethod string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath, gotMethod = r.URL.Path, r.Method
				w.WriteHeader(http.StatusCreated)
				_ = json.NewEncoder(w).Encode(sessionItem{ID: "session-1", Mode: tt.mode, State: quiz.StateAwaitingAnswer})
			}))
			defer server.Close()

			client := NewHTTPClient(server.URL, server.Client())
			item, err := client.StartSession(context.Background(), tt.mode)
			if err != nil {
				t.Fatalf("StartSession returned error: %v", err)
			}
			if gotPath != tt.path || gotMethod != http.MethodPost {
				t.Fatalf("request = %s %s, want POST %s", gotMethod, gotPath, tt.path)
			}
			if item.ID != "session-1" {
				t.Fatalf("session id = %q", item.ID)
			}
		})
	}
}

func TestAnswerRequestsSendOneField(t *testing.T) {
	var bodies []map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/quiz/sessions/abc/answer" {
			t.Fatalf("path = %q", r.URL.Path)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		bodies = append(bodies, body)
		_ = json.NewEncoder(w).Encode(answerResponse{Correct: true})
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, server.Client())
	if _, err := client.AnswerTrueFalse(context.Background(), "abc", false); err != nil {
		t.Fatalf("AnswerTrueFalse returned error: %v", err)
	}
	if _, err := client.AnswerGuess(context.Background(), "abc", 2); err != nil {
		t.Fatalf("AnswerGuess returned error: %v", err)
	}

	if len(bodies) != 2 {
		t.Fatalf("requests = %d, want 2", len(bodies))
	}
	if answer, ok := bodies[0]["answer"]; !ok || answer != false || len(bodies[0]) != 1 {
		t.Fatalf("true/false body = %v", bodies[0])
	}
	if index, ok := bodies[1]["index"]; !ok || index != float64(2) || len(bodies[1]) != 1 {
		t.Fatalf("guess body = %v", bodies[1])
	}
}

func TestClearFavoritesSendsCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if r.Method != http.MethodDelete || r.URL.Path != "/favorites" {
			t.Fatalf("request = %s %s", r.Method, r.URL.Path)
		}
		if !ok || user != "admin" || pass != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(errorResponse{Error: "unauthorized"})
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, server.Client())
	err := client.ClearFavorites(context.Background())
	if !isUnauthorized(err) {
		t.Fatalf("expected unauthorized error, got %v", err)
	}

	client.SetCredentials("admin", "secret")
	if !client.HasCredentials() {
		t.Fatalf("expected credentials to be set")
	}
	if err := client.ClearFavorites(context.Background()); err != nil {
		t.Fatalf("ClearFavorites returned error: %v", err)
	}
}
