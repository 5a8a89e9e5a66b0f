package logger

import (
	"context"
	"fmt"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/quantumstack/site/internal/metrics"
	"github.com/quantumstack/site/pkg/loki"
	log "github.com/sirupsen/logrus"
	"path/filepath"
)

const (
	errorTypeUntyped = "unknown"

	sourceField = "source"
	lokiSource  = "loki"
)

// levelsFrom returns every level at least as severe as min.
func levelsFrom(min log.Level) []log.Level {
	if int(min) >= len(log.AllLevels) {
		return log.AllLevels
	}
	return log.AllLevels[:min+1]
}

func errorTypeOf(entry *log.Entry) string {
	if errorType, ok := entry.Data[ErrorTypeField].(string); ok && errorType != "" {
		return errorType
	}
	return errorTypeUntyped
}

// errorsHook counts error-level entries by their error_type field.
type errorsHook struct {
	counter *prometheus.CounterVec
}

func newErrorsHook(counter *prometheus.CounterVec) *errorsHook {
	return &errorsHook{counter: counter}
}

func (h *errorsHook) Fire(entry *log.Entry) error {
	h.counter.WithLabelValues(errorTypeOf(entry)).Inc()
	return nil
}

func (h *errorsHook) Levels() []log.Level {
	return levelsFrom(log.ErrorLevel)
}

type pusherLogger struct{}

func (pusherLogger) Error(msg string, args ...any) {
	log.WithFields(log.Fields{"args": args, sourceField: lokiSource}).Error(msg)
}

// shippingHook forwards entries to Loki. Entries reported by the pusher
// itself are skipped so a failing Loki cannot feed itself.
type shippingHook struct {
	pusher *loki.Pusher
	levels []log.Level
}

func (h *shippingHook) Fire(entry *log.Entry) error {
	if entry.Data[sourceField] == lokiSource {
		return nil
	}
	return h.pusher.Push(toLokiEntry(entry))
}

func (h *shippingHook) Levels() []log.Level {
	return h.levels
}

func toLokiEntry(entry *log.Entry) loki.LogEntry {
	out := loki.LogEntry{
		Level:   entry.Level.String(),
		Message: entry.Message,
	}
	if entry.Caller != nil {
		out.Caller = fmt.Sprintf("%s:%d", filepath.Base(entry.Caller.Function), entry.Caller.Line)
	}
	if len(entry.Data) > 0 {
		out.Fields = make(map[string]string, len(entry.Data))
		for key, value := range entry.Data {
			out.Fields[key] = fmt.Sprint(value)
		}
	}
	return out
}

func enableLoki(ctx context.Context, cfg loki.Config, minLevel log.Level) (*loki.Pusher, error) {
	pusher, err := loki.New(ctx, cfg, pusherLogger{})
	if err != nil {
		return nil, err
	}
	log.AddHook(&shippingHook{pusher: pusher, levels: levelsFrom(minLevel)})
	log.WithField("url", cfg.Url).Info("Loki logging enabled")
	return pusher, nil
}

func enableErrorMetrics() {
	log.AddHook(newErrorsHook(metrics.ErrorsCounter))
}
