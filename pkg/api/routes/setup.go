package routes

import (
	"github.com/adjust/rmq/v5"

	"github.com/depotwatch/depotwatch/pkg/upstream"
)

var upstreamClient *upstream.Client
var eventsQueue rmq.Queue

// Setup wires the upstream provider client used by the proxy routes and the
// queue status override events are published to.
func Setup(client *upstream.Client, queue rmq.Queue) {
	upstreamClient = client
	eventsQueue = queue
}
