package main

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

var (
	registerOnce sync.Once

	entryCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "reflectd",
			Subsystem: "host",
			Name:      "calls_total",
			Help:      "Total unit entry-point calls.",
		},
		[]string{"method", "code"},
	)
	entryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "reflectd",
			Subsystem: "host",
			Name:      "call_duration_seconds",
			Help:      "Entry-point call duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "code"},
	)
)

func registerMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(entryCalls, entryDuration)
	})
}

// metricsInterceptor records a counter and duration per entry-point call.
func metricsInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	start := time.Now()
	resp, err := handler(ctx, req)

	method := info.FullMethod
	if i := strings.LastIndexByte(method, '/'); i >= 0 {
		method = method[i+1:]
	}
	code := status.Code(err).String()
	entryCalls.WithLabelValues(method, code).Inc()
	entryDuration.WithLabelValues(method, code).Observe(time.Since(start).Seconds())
	return resp, err
}
