package services

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.InfoLevel)
}

// SetLogLevel aligns the package logger with the application log level
func SetLogLevel(level logrus.Level) {
	log.SetLevel(level)
}

var (
	// relationOperations counts favorite, shopping cart and subscription changes.
	// Labels: relation (favorite, shopping_cart, subscription), op (add, remove), result
	relationOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "foodgram",
		Subsystem: "relations",
		Name:      "operations_total",
		Help:      "Relationship add/remove operations by outcome",
	}, []string{"relation", "op", "result"})

	// shortLinksIssued counts tokens created; reused tokens are not counted
	shortLinksIssued = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "foodgram",
		Subsystem: "shortlinks",
		Name:      "issued_total",
		Help:      "Short link tokens issued",
	})

	// shortLinkResolutions counts token lookups by result (hit, miss)
	shortLinkResolutions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "foodgram",
		Subsystem: "shortlinks",
		Name:      "resolutions_total",
		Help:      "Short link resolutions by result",
	}, []string{"result"})
)

// observeRelation records the outcome of a relationship operation
func observeRelation(relation, op string, err error) {
	result := "ok"
	switch {
	case err == nil:
	case IsValidationError(err):
		result = "invalid"
	default:
		var e *Error
		if errors.As(err, &e) {
			result = kindLabel(e.Kind)
		} else {
			result = "error"
		}
	}
	relationOperations.WithLabelValues(relation, op, result).Inc()
}

func kindLabel(kind error) string {
	switch kind {
	case ErrNotFound:
		return "not_found"
	case ErrAlreadyExists:
		return "already_exists"
	case ErrNotPresent:
		return "not_present"
	case ErrForbidden:
		return "forbidden"
	default:
		return "error"
	}
}
