// Package patientdir es el cliente HTTP del directorio de pacientes remoto,
// protegido con un circuit breaker.
package patientdir

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"medicine-schedule-service/internal/platform/httpclient"
	"medicine-schedule-service/internal/platform/metrics"
	"medicine-schedule-service/internal/ports/lookup"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

var ErrUnavailable = errors.New("patient directory unavailable")

const breakerName = "patient-directory"

type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration

	// Fallas consecutivas antes de abrir el circuito.
	FailureThreshold uint32
	// Tiempo en estado abierto antes de probar half-open.
	OpenTimeout time.Duration
}

type Client struct {
	http    *httpclient.Client
	apiKey  string
	cb      *gobreaker.CircuitBreaker
	log     *zap.Logger
	metrics *metrics.Metrics
}

func New(cfg Config, log *zap.Logger, m *metrics.Metrics) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, errors.New("patientdir: base url is required")
	}
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = 5
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = 30 * time.Second
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 3 * time.Second
	}

	hc, err := httpclient.NewWithBaseURL(cfg.BaseURL, cfg.Timeout)
	if err != nil {
		return nil, err
	}

	c := &Client{
		http:    hc,
		apiKey:  strings.TrimSpace(cfg.APIKey),
		log:     log,
		metrics: m,
	}

	c.cb = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		// Un 404 es una respuesta válida del directorio, no una falla del servicio.
		IsSuccessful: func(err error) bool {
			return err == nil || httpclient.StatusCode(err) == http.StatusNotFound
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.log.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
			c.metrics.BreakerState(name, stateValue(to))
		},
	})
	m.BreakerState(breakerName, stateValue(gobreaker.StateClosed))

	return c, nil
}

type patientDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (c *Client) Search(ctx context.Context, term string, limit int) ([]lookup.Patient, error) {
	q := url.Values{}
	q.Set("q", strings.TrimSpace(term))
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var out []patientDTO
	if err := c.call(ctx, "/v1/patients?"+q.Encode(), &out); err != nil {
		return nil, err
	}

	list := make([]lookup.Patient, 0, len(out))
	for _, p := range out {
		list = append(list, lookup.Patient(p))
	}
	return list, nil
}

func (c *Client) Get(ctx context.Context, id string) (lookup.Patient, error) {
	var out patientDTO
	err := c.call(ctx, "/v1/patients/"+url.PathEscape(id), &out)
	if httpclient.StatusCode(err) == http.StatusNotFound {
		return lookup.Patient{}, lookup.ErrPatientNotFound
	}
	if err != nil {
		return lookup.Patient{}, err
	}
	return lookup.Patient(out), nil
}

func (c *Client) call(ctx context.Context, path string, out any) error {
	headers := map[string]string{}
	if c.apiKey != "" {
		headers["X-Api-Key"] = c.apiKey
	}

	_, err := c.cb.Execute(func() (interface{}, error) {
		return nil, c.http.DoJSON(ctx, http.MethodGet, path, headers, nil, out)
	})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	case httpclient.StatusCode(err) == http.StatusNotFound:
		return err
	default:
		c.log.Warn("patient directory call failed", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
}

func stateValue(s gobreaker.State) int {
	switch s {
	case gobreaker.StateOpen:
		return 1
	case gobreaker.StateHalfOpen:
		return 2
	default:
		return 0
	}
}
