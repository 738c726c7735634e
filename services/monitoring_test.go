package services

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordRequestLabelsContactRejections(t *testing.T) {
	svc := &MonitoringService{}

	// fiber reports group-root routes with a trailing slash
	before := testutil.ToFloat64(rateLimitRejectionsTotal.WithLabelValues("contact"))
	svc.RecordRequest("POST", "/api/contact/", "429", time.Millisecond, 64)
	after := testutil.ToFloat64(rateLimitRejectionsTotal.WithLabelValues("contact"))

	if after-before != 1 {
		t.Errorf("contact rejections delta = %v, want 1", after-before)
	}
}

func TestRecordRequestLabelsGeneralRejections(t *testing.T) {
	svc := &MonitoringService{}

	before := testutil.ToFloat64(rateLimitRejectionsTotal.WithLabelValues("general"))
	svc.RecordRequest("GET", "/api/analytics/summary", "429", time.Millisecond, 64)
	after := testutil.ToFloat64(rateLimitRejectionsTotal.WithLabelValues("general"))

	if after-before != 1 {
		t.Errorf("general rejections delta = %v, want 1", after-before)
	}
}

func TestRecordRequestSuccessCounters(t *testing.T) {
	svc := &MonitoringService{}

	beforeOK := testutil.ToFloat64(httpRequestsSuccessfulTotal.WithLabelValues("/api/health", "GET"))
	beforeFail := testutil.ToFloat64(httpRequestsFailedTotal.WithLabelValues("/api/health", "GET"))

	svc.RecordRequest("GET", "/api/health", "200", time.Millisecond, 128)
	svc.RecordRequest("GET", "/api/health", "500", time.Millisecond, 128)

	if d := testutil.ToFloat64(httpRequestsSuccessfulTotal.WithLabelValues("/api/health", "GET")) - beforeOK; d != 1 {
		t.Errorf("successful delta = %v, want 1", d)
	}
	if d := testutil.ToFloat64(httpRequestsFailedTotal.WithLabelValues("/api/health", "GET")) - beforeFail; d != 1 {
		t.Errorf("failed delta = %v, want 1", d)
	}
}
