package report

import "errors"

// ErrAggregationFailed is returned for unexpected storage faults during
// report aggregation. The underlying cause is logged, never surfaced.
var ErrAggregationFailed = errors.New("failed to aggregate attendance data")
