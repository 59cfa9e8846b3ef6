package userclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/thirdlf03/world-holidays/internal/catalog"
	"github.com/thirdlf03/world-holidays/internal/favorites"
	"github.com/thirdlf03/world-holidays/internal/holiday"
	"github.com/thirdlf03/world-holidays/internal/quiz"
)

var ErrServiceUnavailable = errors.New("holiday service unavailable")

type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if strings.TrimSpace(e.Message) == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return e.Message
}

func isUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client

	mu       sync.Mutex
	username string
	password string
}

type countriesResponse struct {
	Countries []catalog.CountryOption `json:"countries"`
}

type searchResponse struct {
	Year        int                 `json:"year"`
	CountryCode string              `json:"country_code"`
	Holidays    []catalog.SearchRow `json:"holidays"`
}

type nextHolidaysResponse struct {
	CountryCode string            `json:"country_code"`
	Holidays    []holiday.Holiday `json:"holidays"`
}

type favoritesResponse struct {
	Favorites  []holiday.Holiday `json:"favorites"`
	Statistics statisticsItem    `json:"statistics"`
}

type statisticsItem struct {
	Empty bool `json:"empty"`
	favorites.Stats
}

type groupedFavoritesResponse struct {
	Groups []favorites.CountryGroup `json:"groups"`
}

type addFavoritesRequest struct {
	Holidays []holiday.Holiday `json:"holidays"`
}

type addFavoritesResponse struct {
	Added int `json:"added"`
	Total int `json:"total"`
}

type removeFavoritesRequest struct {
	Remove []holiday.Holiday `json:"remove"`
}

type removeFavoritesResponse struct {
	Removed int `json:"removed"`
	Total   int `json:"total"`
}

type answerRequest struct {
	Answer *bool `json:"answer,omitempty"`
	Index  *int  `json:"index,omitempty"`
}

type answerResponse struct {
	Correct bool        `json:"correct"`
	Session sessionItem `json:"session"`
}

type sessionItem struct {
	ID       string     `json:"id"`
	Mode     quiz.Mode  `json:"mode"`
	State    quiz.State `json:"state"`
	Score    quiz.Score `json:"score"`
	Accuracy string     `json:"accuracy"`

	TrueFalse *trueFalseItem `json:"true_false,omitempty"`
	Guess     *guessItem     `json:"guess,omitempty"`

	SelectedAnswer *bool `json:"selected_answer,omitempty"`
	SelectedIndex  *int  `json:"selected_index,omitempty"`
	LastCorrect    *bool `json:"last_correct,omitempty"`
}

type trueFalseItem struct {
	CountryName string  `json:"country_name"`
	CountryCode string  `json:"country_code"`
	Date        string  `json:"date"`
	IsHoliday   *bool   `json:"is_holiday,omitempty"`
	HolidayName *string `json:"holiday_name,omitempty"`
	LocalName   *string `json:"local_name,omitempty"`
}

type guessItem struct {
	HolidayName  string            `json:"holiday_name"`
	LocalName    string            `json:"local_name"`
	Options      []guessOptionItem `json:"options"`
	CorrectIndex *int              `json:"correct_index,omitempty"`
}

type guessOptionItem struct {
	Date        string `json:"date"`
	CountryCode string `json:"country_code"`
	CountryName string `json:"country_name"`
	IsCorrect   *bool  `json:"is_correct,omitempty"`
}

type modeStatsItem struct {
	Correct  int    `json:"correct"`
	Total    int    `json:"total"`
	Accuracy string `json:"accuracy"`
}

type quizStatsResponse struct {
	Modes map[quiz.Mode]modeStatsItem `json:"modes"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func NewHTTPClient(baseURL string, httpClient *http.Client) *HTTPClient {
	baseURL = strings.TrimSpace(baseURL)
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		baseURL = defaultServer
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &HTTPClient{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

// SetCredentials sets the Basic Auth pair sent with destructive favorites
// requests.
func (c *HTTPClient) SetCredentials(username, password string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.username = username
	c.password = password
}

func (c *HTTPClient) HasCredentials() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.username != ""
}

func (c *HTTPClient) Countries(ctx context.Context) ([]catalog.CountryOption, error) {
	var payload countriesResponse
	if err := c.doJSON(ctx, http.MethodGet, "/countries", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Countries, nil
}

func (c *HTTPClient) Search(ctx context.Context, year int, countryCode string) (searchResponse, error) {
	countryCode = strings.TrimSpace(countryCode)
	if countryCode == "" {
		return searchResponse{}, errors.New("country code is required")
	}

	path := "/holidays/" + strconv.Itoa(year) + "/" + url.PathEscape(countryCode)
	var payload searchResponse
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &payload); err != nil {
		return searchResponse{}, err
	}
	return payload, nil
}

func (c *HTTPClient) NextHolidays(ctx context.Context, countryCode string) ([]holiday.Holiday, error) {
	countryCode = strings.TrimSpace(countryCode)
	if countryCode == "" {
		return nil, errors.New("country code is required")
	}

	var payload nextHolidaysResponse
	if err := c.doJSON(ctx, http.MethodGet, "/holidays/next/"+url.PathEscape(countryCode), nil, &payload); err != nil {
		return nil, err
	}
	return payload.Holidays, nil
}

func (c *HTTPClient) Favorites(ctx context.Context) (favoritesResponse, error) {
	var payload favoritesResponse
	if err := c.doJSON(ctx, http.MethodGet, "/favorites", nil, &payload); err != nil {
		return favoritesResponse{}, err
	}
	return payload, nil
}

func (c *HTTPClient) GroupedFavorites(ctx context.Context) ([]favorites.CountryGroup, error) {
	var payload groupedFavoritesResponse
	if err := c.doJSON(ctx, http.MethodGet, "/favorites/grouped", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Groups, nil
}

func (c *HTTPClient) AddFavorites(ctx context.Context, holidays []holiday.Holiday) (addFavoritesResponse, error) {
	var payload addFavoritesResponse
	request := addFavoritesRequest{Holidays: holidays}
	if err := c.doJSON(ctx, http.MethodPost, "/favorites", request, &payload); err != nil {
		return addFavoritesResponse{}, err
	}
	return payload, nil
}

// RemoveFavorites drops the given entries, matched on date, name and country
// code.
func (c *HTTPClient) RemoveFavorites(ctx context.Context, selected []holiday.Holiday) (removeFavoritesResponse, error) {
	var payload removeFavoritesResponse
	request := removeFavoritesRequest{Remove: selected}
	if err := c.doJSON(ctx, http.MethodPost, "/favorites/remove", request, &payload); err != nil {
		return removeFavoritesResponse{}, err
	}
	return payload, nil
}

func (c *HTTPClient) ClearFavorites(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodDelete, "/favorites", nil, nil)
}

// StartSession begins a new session; the mode constant is mapped to its URL path.
func (c *HTTPClient) StartSession(ctx context.Context, mode quiz.Mode) (sessionItem, error) {
	var payload sessionItem
	if err := c.doJSON(ctx, http.MethodPost, "/quiz/"+modePath(mode)+"/sessions", nil, &payload); err != nil {
		return sessionItem{}, err
	}
	return payload, nil
}

func (c *HTTPClient) GetSession(ctx context.Context, sessionID string) (sessionItem, error) {
	var payload sessionItem
	if err := c.doJSON(ctx, http.MethodGet, sessionPath(sessionID, ""), nil, &payload); err != nil {
		return sessionItem{}, err
	}
	return payload, nil
}

func (c *HTTPClient) AnswerTrueFalse(ctx context.Context, sessionID string, answer bool) (answerResponse, error) {
	var payload answerResponse
	if err := c.doJSON(ctx, http.MethodPost, sessionPath(sessionID, "answer"), answerRequest{Answer: &answer}, &payload); err != nil {
		return answerResponse{}, err
	}
	return payload, nil
}

func (c *HTTPClient) AnswerGuess(ctx context.Context, sessionID string, index int) (answerResponse, error) {
	var payload answerResponse
	if err := c.doJSON(ctx, http.MethodPost, sessionPath(sessionID, "answer"), answerRequest{Index: &index}, &payload); err != nil {
		return answerResponse{}, err
	}
	return payload, nil
}

func (c *HTTPClient) NextQuestion(ctx context.Context, sessionID string) (sessionItem, error) {
	var payload sessionItem
	if err := c.doJSON(ctx, http.MethodPost, sessionPath(sessionID, "next"), nil, &payload); err != nil {
		return sessionItem{}, err
	}
	return payload, nil
}

func (c *HTTPClient) ResetScore(ctx context.Context, sessionID string) (sessionItem, error) {
	var payload sessionItem
	if err := c.doJSON(ctx, http.MethodPost, sessionPath(sessionID, "reset"), nil, &payload); err != nil {
		return sessionItem{}, err
	}
	return payload, nil
}

func (c *HTTPClient) QuizStats(ctx context.Context) (quizStatsResponse, error) {
	var payload quizStatsResponse
	if err := c.doJSON(ctx, http.MethodGet, "/quiz/stats", nil, &payload); err != nil {
		return quizStatsResponse{}, err
	}
	return payload, nil
}

func modePath(mode quiz.Mode) string {
	if mode == quiz.ModeTrueFalse {
		return "true-false"
	}
	return string(mode)
}

func sessionPath(sessionID, action string) string {
	path := "/quiz/sessions/" + url.PathEscape(strings.TrimSpace(sessionID))
	if action != "" {
		path += "/" + action
	}
	return path
}

func (c *HTTPClient) doJSON(ctx context.Context, method, path string, requestBody any, responseBody any) error {
	fullURL := c.baseURL + path

	var body io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return err
		}
		body = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return err
	}
	if requestBody != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	c.mu.Lock()
	if c.username != "" {
		request.SetBasicAuth(c.username, c.password)
	}
	c.mu.Unlock()

	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer response.Body.Close()

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		apiErr := APIError{StatusCode: response.StatusCode}
		var payload errorResponse
		if err := json.NewDecoder(response.Body).Decode(&payload); err == nil && strings.TrimSpace(payload.Error) != "" {
			apiErr.Message = payload.Error
		}
		if apiErr.Message == "" {
			apiErr.Message = response.Status
		}
		return &apiErr
	}

	if responseBody == nil || response.StatusCode == http.StatusNoContent {
		return nil
	}
	return json.NewDecoder(response.Body).Decode(responseBody)
}
