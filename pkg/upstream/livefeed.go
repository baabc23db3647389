package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/depotwatch/depotwatch/pkg/railcar"
)

// Live fetches the live delay and position feed for a service number.
// Never cached; staleness here directly produces wrong statuses.
func (c *Client) Live(ctx context.Context, serviceNumber string) (*railcar.ServiceLiveData, error) {
	requestURL := fmt.Sprintf("%s?no=%s", c.LiveEndpoint, serviceNumber)

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

	var liveData railcar.ServiceLiveData
	if err := json.Unmarshal(jsonBytes, &liveData); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedData, err)
	}

	if liveData.TrainLiveMap == nil {
		liveData.TrainLiveMap = map[string]int{}
	}
	if liveData.StationLiveMap == nil {
		liveData.StationLiveMap = map[string]interface{}{}
	}

	return &liveData, nil
}
