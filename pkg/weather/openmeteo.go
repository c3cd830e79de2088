package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"kisan/entities"
	"kisan/pkg/climate"
)

// OpenMeteo resolves a district through the geocoding API and reads the
// current conditions from the forecast API. Neither needs a key.
type OpenMeteo struct {
	geocodeURL  string
	forecastURL string
	country     string
	httpc       *http.Client
	now         func() time.Time
}

func NewOpenMeteo(geocodeURL, forecastURL string) *OpenMeteo {
	return &OpenMeteo{
		geocodeURL:  geocodeURL,
		forecastURL: forecastURL,
		country:     "IN",
		httpc:       &http.Client{Timeout: 10 * time.Second},
		now:         time.Now,
	}
}

func (o *OpenMeteo) Lookup(ctx context.Context, district string) (*entities.WeatherSnapshot, error) {
	district = strings.TrimSpace(district)
	if district == "" {
		return nil, ErrUnknownDistrict
	}
	lat, lon, err := o.geocode(ctx, district)
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("latitude", fmt.Sprintf("%.4f", lat))
	q.Set("longitude", fmt.Sprintf("%.4f", lon))
	q.Set("current", "temperature_2m,relative_humidity_2m,precipitation,weather_code")
	q.Set("daily", "temperature_2m_max,temperature_2m_min")
	q.Set("forecast_days", "1")
	q.Set("timezone", "auto")

	var out struct {
		Current struct {
			Temperature float64 `json:"temperature_2m"`
			Humidity    float64 `json:"relative_humidity_2m"`
			Rain        float64 `json:"precipitation"`
			Code        int     `json:"weather_code"`
		} `json:"current"`
		Daily struct {
			Max []float64 `json:"temperature_2m_max"`
			Min []float64 `json:"temperature_2m_min"`
		} `json:"daily"`
	}
	if err := o.getJSON(ctx, o.forecastURL+"?"+q.Encode(), &out); err != nil {
		return nil, fmt.Errorf("forecast: %w", err)
	}

	snap := &entities.WeatherSnapshot{
		District: district,
		Temperature: entities.Temperature{
			Current: out.Current.Temperature,
			Min:     out.Current.Temperature,
			Max:     out.Current.Temperature,
		},
		Humidity:   out.Current.Humidity,
		Rainfall:   out.Current.Rain,
		Condition:  climate.ConditionFromWMO(out.Current.Code),
		ObservedAt: o.now().UTC(),
	}
	if len(out.Daily.Max) > 0 && len(out.Daily.Min) > 0 {
		snap.Temperature.Max = out.Daily.Max[0]
		snap.Temperature.Min = out.Daily.Min[0]
	}
	return snap, nil
}

func (o *OpenMeteo) geocode(ctx context.Context, district string) (float64, float64, error) {
	q := url.Values{}
	q.Set("name", district)
	q.Set("count", "1")
	q.Set("countryCode", o.country)
	var out struct {
		Results []struct {
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"results"`
	}
	if err := o.getJSON(ctx, o.geocodeURL+"?"+q.Encode(), &out); err != nil {
		return 0, 0, fmt.Errorf("geocode: %w", err)
	}
	if len(out.Results) == 0 {
		return 0, 0, ErrUnknownDistrict
	}
	return out.Results[0].Latitude, out.Results[0].Longitude, nil
}

func (o *OpenMeteo) getJSON(ctx context.Context, u string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	resp, err := o.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(dst)
}
