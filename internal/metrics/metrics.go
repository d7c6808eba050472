package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AuthzDecisionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "omahub_authz_decisions_total",
		Help: "Authorization verdicts by outcome and denial reason.",
	}, []string{"outcome", "reason"})

	AuthzLookupErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "omahub_authz_lookup_errors_total",
		Help: "Profile lookups that failed with an infrastructure error.",
	})

	InquiriesReceivedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "omahub_inquiries_received_total",
		Help: "Customer inquiries submitted, by inquiry type.",
	}, []string{"type"})

	SubscribersTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "omahub_subscribers_total",
		Help: "Active newsletter subscribers.",
	})

	BrandsTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "omahub_brands_total",
		Help: "Total number of brands on the platform.",
	})
)
