package biz

// Status is the overall verdict for one aggregation
type Status string

const (
	StatusSuccess   Status = "success"    // items returned and no provider failed
	StatusPartial   Status = "partial"    // items returned but at least one provider failed
	StatusNoResults Status = "no_results" // nothing returned, whatever the reason
)

// Classify derives the status from an aggregation result. It reads only the
// result, so classifying the same result twice gives the same answer.
func Classify(res *AggregationResult) Status {
	if res == nil || len(res.Results) == 0 {
		return StatusNoResults
	}
	if len(res.Failures) > 0 {
		return StatusPartial
	}
	return StatusSuccess
}

// HasResults reports whether the status should be answered with the result list
func (s Status) HasResults() bool {
	return s == StatusSuccess || s == StatusPartial
}
