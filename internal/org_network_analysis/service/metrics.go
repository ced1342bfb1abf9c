package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	analysesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nakhoda_analyses_total",
		Help: "Organisation graphs analysed, by source of the data.",
	}, []string{"source"})

	simulationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nakhoda_simulations_total",
		Help: "What-if simulations, by outcome.",
	}, []string{"outcome"})

	analysisDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "nakhoda_analysis_duration_seconds",
		Help:    "Time spent building and analysing organisation graphs.",
		Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14),
	}, []string{"operation"})

	dataQualityWarnings = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nakhoda_data_quality_warnings_total",
		Help: "Tolerated data-quality conditions found in submitted or stored data.",
	}, []string{"kind"})
)

const (
	outcomeOK       = "ok"
	outcomeNoop     = "noop"
	outcomeRejected = "rejected"
	outcomeFailed   = "failed"
)
