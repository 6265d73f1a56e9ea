package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func find(t *testing.T, reg *prometheus.Registry, name string) *dto.MetricFamily {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() == name {
			return mf
		}
	}
	t.Fatalf("metric %s not found", name)
	return nil
}

func labelValue(m *dto.Metric, name string) string {
	for _, lp := range m.GetLabel() {
		if lp.GetName() == name {
			return lp.GetValue()
		}
	}
	return ""
}

func TestRecordRegistrationByOutcome(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordRegistration(OutcomeOK)
	c.RecordRegistration(OutcomeOK)
	c.RecordRegistration(OutcomeDuplicate)

	mf := find(t, reg, "campus_events_registrations_total")
	got := map[string]float64{}
	for _, m := range mf.GetMetric() {
		got[labelValue(m, "outcome")] = m.GetCounter().GetValue()
	}
	assert.Equal(t, map[string]float64{OutcomeOK: 2, OutcomeDuplicate: 1}, got)
}

func TestRecordDanglingAndCascade(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordDanglingSkipped("event")
	c.RecordCascadeDeleted("user", 3)

	dangling := find(t, reg, "campus_events_dangling_registrations_skipped_total")
	require.Len(t, dangling.GetMetric(), 1)
	assert.Equal(t, "event", labelValue(dangling.GetMetric()[0], "kind"))

	cascaded := find(t, reg, "campus_events_cascade_deleted_registrations_total")
	assert.Equal(t, float64(3), cascaded.GetMetric()[0].GetCounter().GetValue())
}

func TestRecordHTTP(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordHTTPStatus(http.StatusCreated)
	c.RecordRequestLatency("/api/events/:eventId/register", 20*time.Millisecond)

	status := find(t, reg, "campus_events_http_status_total")
	assert.Equal(t, "201", labelValue(status.GetMetric()[0], "status_code"))

	latency := find(t, reg, "campus_events_http_request_duration_seconds")
	assert.Equal(t, uint64(1), latency.GetMetric()[0].GetHistogram().GetSampleCount())
}

func TestHandlerServesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordDeregistration(OutcomeNotRegistered)

	w := httptest.NewRecorder()
	Handler(reg).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body, _ := io.ReadAll(w.Body)
	assert.Contains(t, string(body), `campus_events_deregistrations_total{outcome="not_registered"} 1`)
}

func TestNopSatisfiesRecorder(t *testing.T) {
	var r Recorder = Nop{}
	assert.NotPanics(t, func() {
		r.RecordRegistration(OutcomeOK)
		r.RecordHTTPStatus(500)
	})
}
