// Package cwa talks to the Central Weather Administration open-data API
// (the F-C0032-001 36-hour forecast datastore).
package cwa

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/alexanderchen5966/weathermix/internal/domain/weather"
	apperrors "github.com/alexanderchen5966/weathermix/pkg/errors"
)

const defaultBaseURL = "https://opendata.cwa.gov.tw/api/v1/rest/datastore/F-C0032-001"

const timeLayout = "2006-01-02 15:04:05"

// Error codes attached to client failures so callers can tell transport
// problems from malformed payloads.
const (
	CodeUnavailable = "cwa_unavailable"
	CodeBadPayload  = "cwa_bad_payload"
)

// Client fetches region names and forecasts from the CWA datastore.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	location   *time.Location
}

// NewClient builds an API client. An empty baseURL falls back to the
// production datastore endpoint.
func NewClient(baseURL, apiKey string) *Client {
	u := strings.TrimSpace(baseURL)
	if u == "" {
		u = defaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(u, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		location: time.FixedZone("Asia/Taipei", 8*60*60),
	}
}

// LocationNames returns every region name the datastore covers.
func (c *Client) LocationNames(ctx context.Context) ([]string, error) {
	raw, err := c.fetch(ctx, "")
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(raw.Records.Location))
	for _, loc := range raw.Records.Location {
		if loc.LocationName != "" {
			names = append(names, loc.LocationName)
		}
	}
	if len(names) == 0 {
		return nil, apperrors.Wrap(CodeBadPayload, "cwa location list empty", nil)
	}
	return names, nil
}

// Forecast returns the 36-hour forecast slots for one region, joining the
// weather description element with rain probability by time window.
func (c *Client) Forecast(ctx context.Context, locationName string) (weather.Forecast, error) {
	raw, err := c.fetch(ctx, locationName)
	if err != nil {
		return weather.Forecast{}, err
	}
	if len(raw.Records.Location) == 0 {
		return weather.Forecast{}, apperrors.Wrap(CodeBadPayload, fmt.Sprintf("cwa forecast missing location %q", locationName), nil)
	}
	return c.normalize(raw.Records.Location[0])
}

func (c *Client) fetch(ctx context.Context, locationName string) (*apiResponse, error) {
	endpoint := fmt.Sprintf("%s?Authorization=%s", c.baseURL, url.QueryEscape(c.apiKey))
	if locationName != "" {
		endpoint += "&locationName=" + url.QueryEscape(locationName)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build cwa request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(CodeUnavailable, "cwa request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, apperrors.Wrap(CodeUnavailable, fmt.Sprintf("cwa request error: status=%d body=%s", resp.StatusCode, string(payload)), nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.Wrap(CodeUnavailable, "read cwa response", err)
	}

	var raw apiResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, apperrors.Wrap(CodeBadPayload, "decode cwa response", err)
	}
	return &raw, nil
}

type apiResponse struct {
	Success string     `json:"success"`
	Records apiRecords `json:"records"`
}

type apiRecords struct {
	Location []apiLocation `json:"location"`
}

type apiLocation struct {
	LocationName   string       `json:"locationName"`
	WeatherElement []apiElement `json:"weatherElement"`
}

type apiElement struct {
	ElementName string    `json:"elementName"`
	Time        []apiSlot `json:"time"`
}

type apiSlot struct {
	StartTime string       `json:"startTime"`
	EndTime   string       `json:"endTime"`
	Parameter apiParameter `json:"parameter"`
}

type apiParameter struct {
	ParameterName string `json:"parameterName"`
	ParameterUnit string `json:"parameterUnit"`
}

func (c *Client) normalize(loc apiLocation) (weather.Forecast, error) {
	var wx, pop *apiElement
	for i := range loc.WeatherElement {
		switch loc.WeatherElement[i].ElementName {
		case "Wx":
			wx = &loc.WeatherElement[i]
		case "PoP":
			pop = &loc.WeatherElement[i]
		}
	}
	if wx == nil {
		return weather.Forecast{}, apperrors.Wrap(CodeBadPayload, "cwa forecast missing Wx element", nil)
	}

	// Rain probabilities keyed by their time window.
	rain := make(map[string]string)
	if pop != nil {
		for _, slot := range pop.Time {
			rain[slot.StartTime+"/"+slot.EndTime] = slot.Parameter.ParameterName
		}
	}

	slots := make([]weather.ForecastSlot, 0, len(wx.Time))
	for _, slot := range wx.Time {
		start, err := time.ParseInLocation(timeLayout, slot.StartTime, c.location)
		if err != nil {
			continue
		}
		end, err := time.ParseInLocation(timeLayout, slot.EndTime, c.location)
		if err != nil {
			continue
		}
		slots = append(slots, weather.ForecastSlot{
			StartTime:   start,
			EndTime:     end,
			Description: slot.Parameter.ParameterName,
			RainChance:  rain[slot.StartTime+"/"+slot.EndTime],
		})
	}
	if len(slots) == 0 {
		return weather.Forecast{}, apperrors.Wrap(CodeBadPayload, "cwa forecast had no parsable time slots", nil)
	}
	return weather.Forecast{Slots: slots}, nil
}

var _ weather.Provider = (*Client)(nil)
