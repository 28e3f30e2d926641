package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	CheckInsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "attendance_check_ins_total",
		Help: "Check-ins recorded, by classification status.",
	}, []string{"status"})

	CheckOutsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "attendance_check_outs_total",
		Help: "Check-outs recorded by employees.",
	})

	AutoCheckoutsClosed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "attendance_auto_checkouts_closed_total",
		Help: "Open records closed by the auto-checkout sweep.",
	})

	AutoCheckoutsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "attendance_auto_checkouts_failed_total",
		Help: "Per-record failures during the auto-checkout sweep.",
	})
)

// Handler exposes the default registry for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
