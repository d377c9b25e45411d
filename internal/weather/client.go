// Package weather fetches current conditions and forecasts from OpenWeather.
package weather

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
	"time"
)

const (
	DefaultBaseURL = "https://api.openweathermap.org/data/2.5"
	DefaultGeoURL  = "https://api.openweathermap.org/geo/1.0"
)

var (
	ErrNotConfigured    = errors.New("weather api key is not configured")
	ErrLocationNotFound = errors.New("location not found")
)

// Current is the present conditions at a location.
type Current struct {
	Temperature   int       `json:"temperature"`
	FeelsLike     int       `json:"feelsLike"`
	Humidity      int       `json:"humidity"`
	Pressure      int       `json:"pressure"`
	WindSpeed     int       `json:"windSpeed"` // km/h
	WindDirection int       `json:"windDirection"`
	Precipitation float64   `json:"precipitation"` // mm in the last hour
	Visibility    int       `json:"visibility"`    // km
	CloudCover    int       `json:"cloudCover"`
	DewPoint      int       `json:"dewPoint"`
	Description   string    `json:"description"`
	Icon          string    `json:"icon"`
	Location      string    `json:"location"`
	LastUpdated   time.Time `json:"lastUpdated"`
}

// Day is one day of forecast.
type Day struct {
	Date                     string  `json:"date"`
	TempMin                  int     `json:"tempMin"`
	TempMax                  int     `json:"tempMax"`
	Humidity                 int     `json:"humidity"`
	Precipitation            float64 `json:"precipitation"`
	PrecipitationProbability int     `json:"precipitationProbability"`
	WindSpeed                int     `json:"windSpeed"`
	WindDirection            int     `json:"windDirection"`
	Description              string  `json:"description"`
	Icon                     string  `json:"icon"`
	Sunrise                  string  `json:"sunrise"`
	Sunset                   string  `json:"sunset"`
}

// Client talks to the OpenWeather REST API.
type Client struct {
	APIKey  string
	BaseURL string
	GeoURL  string
	Zone    *time.Location

	httpClient *http.Client
}

// NewClient creates a client for the public OpenWeather endpoints.
func NewClient(apiKey string, zone *time.Location) *Client {
	if zone == nil {
		zone = time.UTC
	}
	return &Client{
		APIKey:     apiKey,
		BaseURL:    DefaultBaseURL,
		GeoURL:     DefaultGeoURL,
		Zone:       zone,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Configured reports whether an API key is set.
func (c *Client) Configured() bool {
	return c.APIKey != ""
}

type coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Current returns the present conditions at location.
func (c *Client) Current(ctx context.Context, location string) (*Current, error) {
	coords, err := c.geocode(ctx, location)
	if err != nil {
		return nil, err
	}

	var resp currentResponse
	if err := c.get(ctx, c.BaseURL+"/weather", c.weatherParams(coords, nil), &resp); err != nil {
		return nil, err
	}

	return resp.transform(location, time.Now()), nil
}

// Forecast returns up to seven days of daily forecast at location.
func (c *Client) Forecast(ctx context.Context, location string) ([]Day, error) {
	coords, err := c.geocode(ctx, location)
	if err != nil {
		return nil, err
	}

	var resp forecastResponse
	extra := url.Values{"cnt": {"40"}} // 5 days of 3-hour slots
	if err := c.get(ctx, c.BaseURL+"/forecast", c.weatherParams(coords, extra), &resp); err != nil {
		return nil, err
	}

	return resp.daily(c.Zone), nil
}

func (c *Client) geocode(ctx context.Context, location string) (coordinates, error) {
	if !c.Configured() {
		return coordinates{}, ErrNotConfigured
	}

	params := url.Values{
		"q":     {location},
		"limit": {"1"},
		"appid": {c.APIKey},
	}

	var results []coordinates
	if err := c.get(ctx, c.GeoURL+"/direct", params, &results); err != nil {
		return coordinates{}, err
	}
	if len(results) == 0 {
		return coordinates{}, fmt.Errorf("%w: %s", ErrLocationNotFound, location)
	}

	return results[0], nil
}

func (c *Client) weatherParams(coords coordinates, extra url.Values) url.Values {
	params := url.Values{
		"lat":   {strconv.FormatFloat(coords.Lat, 'f', -1, 64)},
		"lon":   {strconv.FormatFloat(coords.Lon, 'f', -1, 64)},
		"appid": {c.APIKey},
		"units": {"metric"},
		"lang":  {"es"},
	}
	for k, v := range extra {
		params[k] = v
	}
	return params
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values, dst any) error {
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("openweather %s: %d %s", endpointName(endpoint), resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return json.NewDecoder(resp.Body).Decode(dst)
}

func endpointName(endpoint string) string {
	if i := strings.LastIndex(endpoint, "/"); i >= 0 {
		return endpoint[i+1:]
	}
	return endpoint
}
