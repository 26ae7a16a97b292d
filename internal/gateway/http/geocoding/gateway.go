package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"dispatch/internal/entities"
	routeservice "dispatch/internal/service/route"
	retrierconfig "dispatch/pkg/retrier"
	"dispatch/pkg/retrier/backoff_adapter"
)

const (
	serviceName = "geocoder"
)

const (
	initialInterval = 100 * time.Millisecond
	maxInterval     = 2 * time.Second
	maxElapsedTime  = 1 * time.Second
	randomization   = 0.5
	multiplier      = 2.0
)

// Gateway клиент внешнего геокодера. SLA у геокодера нет,
// поэтому короткие ретраи только на временных ошибках.
type Gateway struct {
	client  httpClient
	baseURL string
	retrier retrier
}

func New(client httpClient, baseURL string) *Gateway {
	retryConfig := retrierconfig.Config{
		InitialInterval: initialInterval,
		MaxInterval:     maxInterval,
		MaxElapsedTime:  maxElapsedTime,
		Randomization:   randomization,
		Multiplier:      multiplier,
		ShouldRetry:     isRetryable,
	}

	return &Gateway{
		client:  client,
		baseURL: baseURL,
		retrier: backoff_adapter.New(retryConfig),
	}
}

type geocodeResponse struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("geocoder responded with status %d", e.code)
}

func (g *Gateway) Resolve(ctx context.Context, address string) (entities.Coordinates, error) {
	requestURL := fmt.Sprintf("%s/geocode?%s", g.baseURL, url.Values{"address": {address}}.Encode())

	var coordinates entities.Coordinates

	err := g.executeWithMetrics(ctx, "Geocode", func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
		if err != nil {
			return fmt.Errorf("build request: %w", err)
		}

		resp, err := g.client.Do(req)
		if err != nil {
			return fmt.Errorf("geocoder request: %w", err)
		}
		defer resp.Body.Close() //nolint:errcheck

		switch {
		case resp.StatusCode == http.StatusOK:
		case resp.StatusCode == http.StatusNotFound:
			return routeservice.ErrAddressNotResolved
		default:
			return &statusError{code: resp.StatusCode}
		}

		var decoded geocodeResponse
		if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
			return fmt.Errorf("decode geocoder response: %w", err)
		}

		coordinates = entities.Coordinates{Lat: decoded.Lat, Lng: decoded.Lng}
		return nil
	})
	if err != nil {
		return entities.Coordinates{}, fmt.Errorf("gateway geocoder, resolve address: %w", err)
	}

	return coordinates, nil
}

func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, routeservice.ErrAddressNotResolved) {
		return false
	}

	var status *statusError
	if errors.As(err, &status) {
		return status.code == http.StatusTooManyRequests || status.code >= http.StatusInternalServerError
	}

	// сетевые ошибки и таймауты ретраим
	return true
}

func (g *Gateway) executeWithMetrics(ctx context.Context, method string, fn func(context.Context) error) error {
	var attempt uint64
	start := time.Now()

	err := g.retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		attempt++
		return fn(ctx)
	})

	httpCode := getHTTPCode(err)
	// Метрики Prometheus
	GatewayRequestDuration.WithLabelValues(serviceName, method, httpCode).Observe(time.Since(start).Seconds())

	if attempt > 1 {
		// Метрики Prometheus
		GatewayRetriesTotal.WithLabelValues(serviceName, method, httpCode).Inc()
	}

	return err
}

func getHTTPCode(err error) string {
	if err == nil {
		return "200"
	}
	if errors.Is(err, routeservice.ErrAddressNotResolved) {
		return "404"
	}

	var status *statusError
	if errors.As(err, &status) {
		return strconv.Itoa(status.code)
	}
	return "unknown"
}
