package metrics

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Counters
var (
	AudioCallbacksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gosynth_audio_callbacks_total",
		Help: "Total output buffers filled by the audio callback",
	})
	AudioFramesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gosynth_audio_frames_total",
		Help: "Total frames rendered",
	})
	AudioUnderflowsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gosynth_audio_underflows_total",
		Help: "Output buffers reported late by the audio device",
	})
	NoteEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gosynth_note_events_total",
		Help: "Note events applied to the voice by kind",
	}, []string{"kind"})
)

// Gauges
var (
	VoiceFrequency = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "gosynth_voice_frequency_hz",
		Help: "Frequency of the voice oscillator, 0 when the note is off",
	})
)

// AudioObserver records stream activity. It is safe to call from the audio thread.
type AudioObserver struct{}

func (o *AudioObserver) Buffer(frames int) {
	AudioCallbacksTotal.Inc()
	AudioFramesTotal.Add(float64(frames))
}

func (o *AudioObserver) Underflow() {
	AudioUnderflowsTotal.Inc()
}

func NoteOn(freq float64) {
	NoteEventsTotal.WithLabelValues("on").Inc()
	VoiceFrequency.Set(freq)
}

func NoteOff() {
	NoteEventsTotal.WithLabelValues("off").Inc()
	VoiceFrequency.Set(0)
}

func Handler() http.Handler {
	r := chi.NewRouter()
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok\n"))
	})
	return r
}
