package seating

import "expvar"

var (
	metricArrivalsTotal   = expvar.NewInt("seating_arrivals_total")
	metricSeatedTotal     = expvar.NewInt("seating_seated_total")
	metricWaitlistedTotal = expvar.NewInt("seating_waitlisted_total")
	metricPromotedTotal   = expvar.NewInt("seating_promoted_total")
	metricDeparturesTotal = expvar.NewInt("seating_departures_total")
	metricAbandonedTotal  = expvar.NewInt("seating_abandoned_total")
	metricInvariantErrors = expvar.NewInt("seating_invariant_errors_total")
	metricQueueLen        = expvar.NewInt("seating_queue_len")
)
