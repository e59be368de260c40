package httptransport

import "expvar"

var (
	metricArriveRequestsTotal = expvar.NewInt("http_arrive_requests_total")
	metricArriveErrorsTotal   = expvar.NewInt("http_arrive_errors_total")
	metricLeaveRequestsTotal  = expvar.NewInt("http_leave_requests_total")

	metricSSEConnectionsTotal  = expvar.NewInt("sse_connections_total")
	metricSSEConnectionsActive = expvar.NewInt("sse_connections_active")

	metricJournalQueryTotal  = expvar.NewInt("journal_query_total")
	metricJournalQueryErrors = expvar.NewInt("journal_query_errors_total")
)
