//nolint:gochecknoglobals
package main

import (
	"runtime/pprof"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mvoronin/govtt/internal/model"
)

var (
	messagesMetric = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "govtt",
		Name:      "messages_total",
		Help:      "The total number of chat messages stored",
	}, []string{"channel"})

	rollsMetric = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "govtt",
		Name:      "rolls_total",
		Help:      "The total number of dice rolls",
	})

	wsConnectionsMetric = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "govtt",
		Name:      "ws_connections",
		Help:      "The number of connected chat viewers",
	})
)

// countMessage is subscribed to the message feed.
func countMessage(msg *model.Message) bool {
	if msg == nil {
		return true
	}

	messagesMetric.With(prometheus.Labels{"channel": msg.Channel}).Inc()

	if msg.Roll {
		rollsMetric.Inc()
	}

	return true
}

func getMetricsHandler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}

func getStackHandler() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		return pprof.Lookup("goroutine").WriteTo(ctx.Response().BodyWriter(), 1)
	}
}
