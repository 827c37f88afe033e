package observability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetricsCounters(t *testing.T) {
	metrics := NewMetrics()

	metrics.RecordRequest("/getOpenid", "POST", 200, 5*time.Millisecond)
	metrics.RecordError("/createOrder", "POST", "CONFLICT")
	metrics.RecordError("/createOrder", "POST", "CONFLICT")

	assert.EqualValues(t, 2, metrics.ErrorCount("/createOrder", "POST", "CONFLICT"))
	assert.Zero(t, metrics.ErrorCount("/createOrder", "POST", "INVALID_ARGUMENT"))
}

func TestMetricsNilReceiverIsSafe(t *testing.T) {
	var metrics *Metrics
	metrics.RecordRequest("/getOpenid", "POST", 200, time.Millisecond)
	metrics.RecordError("/getOpenid", "POST", "STORAGE_ERROR")
	assert.Zero(t, metrics.ErrorCount("/getOpenid", "POST", "STORAGE_ERROR"))
}
