package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/erraggy/oasguard/logger"
	"github.com/erraggy/oasguard/oaserrors"
	"github.com/erraggy/oasguard/requestvalidator"
	"github.com/erraggy/oasguard/validation"
)

// internalErrorMessage is returned to clients when validation itself fails.
const internalErrorMessage = "Request could not be validated"

// Middleware validates requests before handing them on.
type Middleware struct {
	validator       validation.Validator[requestvalidator.Request]
	logger          logger.Logger
	metrics         *metrics
	maxBodySize     int64
	requestIDHeader string
}

// New creates a Middleware around v.
func New(v validation.Validator[requestvalidator.Request], opts ...Option) (*Middleware, error) {
	if v == nil {
		return nil, &oaserrors.ConfigError{Option: "validator", Message: "validator cannot be nil"}
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	return &Middleware{
		validator:       v,
		logger:          cfg.logger,
		metrics:         newMetrics(cfg.registerer),
		maxBodySize:     cfg.maxBodySize,
		requestIDHeader: cfg.requestIDHeader,
	}, nil
}

// Handler wraps next. Only requests validating successfully reach it.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(m.requestIDHeader)
		if id == "" {
			id = uuid.New().String()
			r.Header.Set(m.requestIDHeader, id)
		}
		w.Header().Set(m.requestIDHeader, id)
		log := m.logger.With("request_id", id, "method", r.Method, "path", r.URL.Path)

		req := requestvalidator.NewHTTPRequest(r, m.maxBodySize)
		start := time.Now()
		result, err := m.validator.Validate(req)
		m.metrics.validationDuration.Observe(time.Since(start).Seconds())

		if err != nil {
			m.metrics.requestsTotal.WithLabelValues(outcomeError).Inc()
			log.Error("request validation failed", "error", err)
			writeResult(w, http.StatusInternalServerError, validation.InvalidValue{Message: internalErrorMessage}, log)
			return
		}

		kind := validation.Kind(result)
		m.metrics.requestsTotal.WithLabelValues(kind).Inc()
		if validation.IsSuccess(result) {
			next.ServeHTTP(w, r)
			return
		}

		status := statusFor(result, req)
		log.Info("request rejected", "outcome", kind, "status", status)
		writeResult(w, status, result, log)
	})
}

// statusFor maps a failed result to the response status code.
func statusFor(result validation.Result, req *requestvalidator.HTTPRequest) int {
	switch result.(type) {
	case validation.InvalidRequestPath:
		return http.StatusNotFound
	case validation.InvalidRequestMethod:
		return http.StatusMethodNotAllowed
	case validation.InvalidRequestBody:
		// JSON returns the cached outcome of the read done during validation.
		if _, err := req.JSON(); errors.Is(err, oaserrors.ErrResourceLimit) {
			return http.StatusRequestEntityTooLarge
		}
		return http.StatusBadRequest
	default:
		return http.StatusBadRequest
	}
}

func writeResult(w http.ResponseWriter, status int, result validation.Result, log logger.Logger) {
	body, err := validation.Marshal(result)
	if err != nil {
		log.Error("encoding validation result", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		log.Debug("writing response", "error", err)
	}
}
