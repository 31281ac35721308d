// Package observability provides Prometheus collectors and tracing setup.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "babel_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// AuthFailures counts rejected requests at the auth gate by internal reason.
	// The reason label is for operators only; clients always see a uniform 401.
	AuthFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "babel_auth_failures_total",
		Help: "Total number of authentication failures by reason",
	}, []string{"reason"})

	// SignupsTotal counts successful account registrations.
	SignupsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "babel_signups_total",
		Help: "Total number of successful signups",
	})

	// FriendRequests counts friend-request operations by outcome.
	FriendRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "babel_friend_requests_total",
		Help: "Total number of friend request operations by outcome",
	}, []string{"outcome"})

	// ChatSyncFailures counts swallowed identity-sync failures to the
	// external messaging provider.
	ChatSyncFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "babel_chat_sync_failures_total",
		Help: "Total number of failed chat identity sync attempts",
	})
)
