package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/depotwatch/depotwatch/pkg/railcar"
)

type timetableResponse struct {
	PageProps struct {
		Train *railcar.ServiceTimetable `json:"train"`
	} `json:"pageProps"`
}

// Timetable fetches and normalises the ordered stop sequence for a service
// number. Responses are served from the timetable cache when one is attached.
func (c *Client) Timetable(ctx context.Context, serviceNumber string) (*railcar.ServiceTimetable, error) {
	if c.TimetableCache != nil {
		if cached, found := c.TimetableCache.Get(ctx, serviceNumber); found {
			return cached, nil
		}
	}

	requestURL := fmt.Sprintf("%s/%s.json?no=%s", c.TimetableEndpoint, serviceNumber, serviceNumber)

	req, err := http.NewRequestWithContext(ctx, "GET", requestURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("user-agent", userAgent)
	req.Header.Set("accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	jsonBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUpstream, err)
	}

	var response timetableResponse
	if err := json.Unmarshal(jsonBytes, &response); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedData, err)
	}

	timetable := response.PageProps.Train

	if timetable == nil || len(timetable.StopTimes) == 0 {
		return nil, fmt.Errorf("%w: missing stop times for service %s", ErrMalformedData, serviceNumber)
	}

	if c.TimetableCache != nil {
		c.TimetableCache.Set(ctx, serviceNumber, timetable)
	}

	return timetable, nil
}
