package upstream

import (
	"net/http"
	"time"

	"github.com/depotwatch/depotwatch/pkg/util"
)

const defaultTimetableEndpoint = "https://taiwanhelper.com/_next/data/i5Qo2rmb7fABQ7fB01Ipa/railway/train"
const defaultLiveEndpoint = "https://taiwanhelper.com/api/get-train-live"

// The provider sits behind Cloudflare and it gets angry when no browser user agent is set
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

type Client struct {
	TimetableEndpoint string
	LiveEndpoint      string

	HTTPClient *http.Client

	// Optional; lookups go straight upstream when nil
	TimetableCache TimetableCache
}

func NewClient() *Client {
	timetableEndpoint := defaultTimetableEndpoint
	liveEndpoint := defaultLiveEndpoint

	env := util.GetEnvironmentVariables()

	if env["DEPOTWATCH_TIMETABLE_ENDPOINT"] != "" {
		timetableEndpoint = env["DEPOTWATCH_TIMETABLE_ENDPOINT"]
	}

	if env["DEPOTWATCH_LIVE_ENDPOINT"] != "" {
		liveEndpoint = env["DEPOTWATCH_LIVE_ENDPOINT"]
	}

	return &Client{
		TimetableEndpoint: timetableEndpoint,
		LiveEndpoint:      liveEndpoint,

		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}
