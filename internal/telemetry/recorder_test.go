package telemetry

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecorderCounters(t *testing.T) {
	r := NewRecorder(nil)

	r.VoiceLookup(nil)
	r.VoiceLookup(errors.New("boom"))
	r.Synthesis("m1", 200*time.Millisecond, 640, nil)
	r.Synthesis("m1", time.Second, 0, errors.New("boom"))
	r.ParseFailed()

	if got := testutil.ToFloat64(r.lookups.WithLabelValues(StatusSuccess)); got != 1 {
		t.Errorf("lookups success = %v, want 1", got)
	}
	if got := testutil.ToFloat64(r.lookups.WithLabelValues(StatusError)); got != 1 {
		t.Errorf("lookups error = %v, want 1", got)
	}
	if got := testutil.ToFloat64(r.syntheses.WithLabelValues("m1", StatusError)); got != 1 {
		t.Errorf("syntheses error = %v, want 1", got)
	}
	if got := testutil.ToFloat64(r.audioBytes); got != 640 {
		t.Errorf("audio bytes = %v, want 640", got)
	}
	if got := testutil.ToFloat64(r.parseFailures); got != 1 {
		t.Errorf("parse failures = %v, want 1", got)
	}
}

func TestRecorderHandler(t *testing.T) {
	r := NewRecorder(nil)
	r.Synthesis("eleven_multilingual_v2", time.Second, 10, nil)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "podcast_tts_syntheses_total") {
		t.Errorf("metrics output missing syntheses counter:\n%s", body)
	}
}

func TestRecordersAreIndependent(t *testing.T) {
	a, b := NewRecorder(nil), NewRecorder(nil)
	a.ParseFailed()
	if got := testutil.ToFloat64(b.parseFailures); got != 0 {
		t.Errorf("second recorder saw %v parse failures, want 0", got)
	}
	if a.Logger() == nil {
		t.Error("Logger() returned nil")
	}
}
