package providers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/do/v2"

	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/metrics"
)

// ProvideMetrics provides the Prometheus collectors, registered with the
// default registry so the Go runtime collectors are exported alongside.
func ProvideMetrics(i do.Injector) (*metrics.Metrics, error) {
	return metrics.New(prometheus.DefaultRegisterer), nil
}
