// Package metrics holds the Prometheus collectors for the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "familytree"

var (
	// HTTPRequests counts requests by method, route pattern and status code.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests",
	}, []string{"method", "route", "status"})

	// HTTPDuration measures request latency by route pattern.
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	// AuthAttempts counts sign-in and sign-up attempts.
	// Labels: action (signin, signup), outcome (ok, invalid_key, provider_error)
	AuthAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "auth",
		Name:      "attempts_total",
		Help:      "Total sign-in and sign-up attempts",
	}, []string{"action", "outcome"})

	// ProfileRegistrationFailures counts sign-ups whose profile write was
	// skipped or failed.
	ProfileRegistrationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "auth",
		Name:      "profile_registration_failures_total",
		Help:      "Sign-ups completed without a profile record",
	})

	// RateLimited counts requests rejected by the rate limiter.
	RateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "rate_limited_total",
		Help:      "Requests rejected by the rate limiter",
	})

	// WebsocketClients tracks connected websocket clients by endpoint.
	WebsocketClients = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "websocket",
		Name:      "clients",
		Help:      "Connected websocket clients",
	}, []string{"endpoint"})

	// PhotoUploads counts gallery uploads by outcome.
	PhotoUploads = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "gallery",
		Name:      "uploads_total",
		Help:      "Gallery photo uploads",
	}, []string{"outcome"})
)
