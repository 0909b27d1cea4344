package noaa

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/lox/tidelaunch/internal/httputil"
	"github.com/lox/tidelaunch/internal/metrics"
	"github.com/lox/tidelaunch/internal/models"
)

const (
	// DefaultBaseURL is the NOAA CO-OPS data retrieval endpoint.
	DefaultBaseURL = "https://api.tidesandcurrents.noaa.gov/api/prod/datagetter"

	// RangeHours is the prediction window requested from begin_date.
	RangeHours = 48

	dateFormat = "20060102"
	timeFormat = "2006-01-02 15:04"
)

var (
	// ErrUnavailable covers transport failures, non-200 responses and
	// API-level error payloads.
	ErrUnavailable = errors.New("tide data unavailable")
	// ErrMalformed means a response arrived but could not be decoded.
	ErrMalformed = errors.New("malformed tide data")
)

// TideClient fetches high/low tide predictions from NOAA CO-OPS.
type TideClient struct {
	baseURL    string
	httpClient *http.Client
	loc        *time.Location
}

// NewTideClient creates a client for baseURL. Prediction timestamps are
// interpreted in loc, which should match the station's local time.
func NewTideClient(baseURL string, loc *time.Location) *TideClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if loc == nil {
		loc = time.Local
	}
	return &TideClient{
		baseURL:    baseURL,
		httpClient: httputil.NewClient(),
		loc:        loc,
	}
}

// BeginDate returns the begin_date used for a run at now: the calendar day
// before now.
func BeginDate(now time.Time) time.Time {
	return now.AddDate(0, 0, -1)
}

// Predictions retrieves high/low predictions for stationID covering
// RangeHours from the start of begin's calendar day. Records with an
// unparseable time or unknown type are skipped.
func (c *TideClient) Predictions(ctx context.Context, stationID string, begin time.Time) ([]models.Prediction, error) {
	params := url.Values{}
	params.Add("product", "predictions")
	params.Add("datum", "stnd")
	params.Add("interval", "hilo")
	params.Add("format", "json")
	params.Add("units", "metric")
	params.Add("time_zone", "lst_ldt") // station local standard/daylight time
	params.Add("station", stationID)
	params.Add("begin_date", begin.Format(dateFormat))
	params.Add("range", fmt.Sprint(RangeHours))

	requestURL := fmt.Sprintf("%s?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	start := time.Now()
	body, err := c.fetch(req)
	metrics.TideAPILatency.WithLabelValues(stationID).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.TideAPICallsTotal.WithLabelValues(stationID, metrics.StatusUnavailable).Inc()
		return nil, err
	}

	preds, err := c.parse(body)
	if err != nil {
		status := metrics.StatusMalformed
		if errors.Is(err, ErrUnavailable) {
			status = metrics.StatusUnavailable
		}
		metrics.TideAPICallsTotal.WithLabelValues(stationID, status).Inc()
		return nil, err
	}

	metrics.TideAPICallsTotal.WithLabelValues(stationID, metrics.StatusOK).Inc()
	return preds, nil
}

func (c *TideClient) fetch(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch predictions: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: API returned status %d", ErrUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}
	return body, nil
}

func (c *TideClient) parse(body []byte) ([]models.Prediction, error) {
	var tideResp predictionsResponse
	if err := json.Unmarshal(body, &tideResp); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrMalformed, err)
	}

	// CO-OPS reports bad stations and date ranges with a 200 and an error object.
	if tideResp.Error != nil {
		return nil, fmt.Errorf("%w: API error: %s", ErrUnavailable, tideResp.Error.Message)
	}

	preds := make([]models.Prediction, 0, len(tideResp.Predictions))
	for _, p := range tideResp.Predictions {
		t, err := time.ParseInLocation(timeFormat, p.Time, c.loc)
		if err != nil {
			continue
		}
		typ, ok := models.ParseTideType(p.Type)
		if !ok {
			continue
		}
		preds = append(preds, models.Prediction{Time: t, Type: typ})
	}

	return preds, nil
}

type predictionsResponse struct {
	Predictions []struct {
		Time string `json:"t"`
		Type string `json:"type"` // "H" or "L"
	} `json:"predictions"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}
