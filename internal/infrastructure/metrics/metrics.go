// Package metrics defines and registers the custom Prometheus metrics for the
// Flockr backend. It is the single source of truth for metric names, labels,
// and help strings; metrics register with the default registry at init via
// promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "flockr"

// MessagesSentTotal counts messages appended to channel logs.
// Label:
//   - kind: "send", "send_later", or "standup_flush"
var MessagesSentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_sent_total",
		Help:      "Total number of messages appended to channel logs, by origin.",
	},
	[]string{"kind"},
)

// ChannelsCreatedTotal counts channel creations.
var ChannelsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "channels_created_total",
		Help:      "Total number of channels created.",
	},
)

// StandupsStartedTotal counts standup sessions opened.
var StandupsStartedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "standups_started_total",
		Help:      "Total number of standup sessions started.",
	},
)

// DeferredTasksTotal counts deferred-task outcomes (scheduled sends and
// standup flushes).
// Label:
//   - result: "delivered" (mutation applied) or "dropped" (target channel
//     gone or nothing to flush by fire time)
var DeferredTasksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "deferred_tasks_total",
		Help:      "Total number of deferred tasks fired, by outcome.",
	},
	[]string{"result"},
)
