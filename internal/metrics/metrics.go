package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ChatRequests counts assistant round-trips by outcome
	// (ok | fallback | rejected).
	ChatRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vailure_chat_requests_total",
		Help: "Assistant chat requests by outcome",
	}, []string{"outcome"})

	// CartOps counts ledger mutations by operation (add | set_quantity | remove).
	CartOps = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vailure_cart_operations_total",
		Help: "Cart ledger operations by type",
	}, []string{"op"})
)
