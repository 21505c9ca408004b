package bus

const (
	SubjectBatchRequest = "btag.batch.request"
	SubjectBatchFailed  = "btag.batch.failed"
	SubjectStats        = "btag.stats"

	// QueueWorkers is the queue group batch-request subscribers join.
	// Every batch is weighed by exactly one instance.
	QueueWorkers = "btag-workers"

	StreamName   = "BTAG_EVENTS"
	StreamMaxAge = "720h" // 30 days
)

// SubjectBatchCompleted scopes completion events to one batch so
// consumers can wait on a single request without filtering the stream.
func SubjectBatchCompleted(batchID string) string { return "btag.batch." + batchID + ".completed" }
