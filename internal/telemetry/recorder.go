package telemetry

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "podcast_tts"

// Outcome labels.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Recorder centralises telemetry (logs, metrics) for the adapter. Each
// Recorder owns its Prometheus registry, so several can coexist in tests.
type Recorder struct {
	logger   *slog.Logger
	registry *prometheus.Registry

	lookups       *prometheus.CounterVec
	syntheses     *prometheus.CounterVec
	synthesisTime *prometheus.HistogramVec
	audioBytes    prometheus.Counter
	parseFailures prometheus.Counter
}

// NewRecorder constructs a telemetry recorder using the provided slog.Logger.
func NewRecorder(logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Recorder{
		logger:   logger,
		registry: prometheus.NewRegistry(),
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "voice_lookups_total",
			Help:      "Voice default lookups issued to the provider",
		}, []string{"status"}),
		syntheses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "syntheses_total",
			Help:      "Synthesis calls issued to the provider",
		}, []string{"model", "status"}),
		synthesisTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "synthesis_duration_seconds",
			Help:      "Wall time of GenerateAudio calls that reached the provider",
			Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"model"}),
		audioBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "audio_bytes_total",
			Help:      "Bytes of synthesized audio returned to callers",
		}),
		parseFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "voice_spec_parse_errors_total",
			Help:      "Voice specs rejected before any provider call",
		}),
	}
	r.registry.MustRegister(
		r.lookups,
		r.syntheses,
		r.synthesisTime,
		r.audioBytes,
		r.parseFailures,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// Logger returns the underlying slog.Logger for direct use.
func (r *Recorder) Logger() *slog.Logger {
	return r.logger
}

// Registry exposes the Prometheus registry backing this recorder.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the recorder's metrics in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

// ParseFailed counts a rejected voice spec.
func (r *Recorder) ParseFailed() {
	r.parseFailures.Inc()
}

// VoiceLookup counts a provider voice lookup.
func (r *Recorder) VoiceLookup(err error) {
	r.lookups.WithLabelValues(status(err)).Inc()
}

// Synthesis records a synthesis call, its duration and the audio size.
func (r *Recorder) Synthesis(model string, d time.Duration, size int, err error) {
	r.syntheses.WithLabelValues(model, status(err)).Inc()
	r.synthesisTime.WithLabelValues(model).Observe(d.Seconds())
	if err == nil {
		r.audioBytes.Add(float64(size))
	}
}

func status(err error) string {
	if err != nil {
		return StatusError
	}
	return StatusSuccess
}
