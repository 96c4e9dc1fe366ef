// Package metrics registers the Prometheus instruments exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// BidsPlaced counts bids that were accepted and committed.
var BidsPlaced = promauto.NewCounter(prometheus.CounterOpts{
	Name: "auction_bids_placed_total",
	Help: "Number of bids accepted and committed.",
})

// BidsRejected counts rejected bids by rejection reason
// (not_found, ended, too_low, conflict, invalid_amount).
var BidsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "auction_bids_rejected_total",
	Help: "Number of bids rejected, labelled by reason.",
}, []string{"reason"})

// ItemsCreated counts listings created through the admin API.
var ItemsCreated = promauto.NewCounter(prometheus.CounterOpts{
	Name: "auction_items_created_total",
	Help: "Number of auction items created.",
})
