package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var ScoreSubmissionCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "judging_score_submissions_total",
	Help: "Number of evaluation submissions by outcome",
}, []string{"outcome"})

var TotalRecalculationCounter = promauto.NewCounter(prometheus.CounterOpts{
	Name: "judging_total_recalculations_total",
	Help: "Number of evaluation totals recomputed by weight-change cascades",
})

var RankingDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Name: "judging_ranking_duration_seconds",
	Help: "Duration of ranking aggregation queries",
})

var WebsocketClientsGauge = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Name: "judging_websocket_clients",
	Help: "Currently connected websocket clients by channel",
}, []string{"channel"})

var NotificationFailureCounter = promauto.NewCounter(prometheus.CounterOpts{
	Name: "judging_notification_failures_total",
	Help: "Number of live-update broadcasts that failed to deliver",
})
