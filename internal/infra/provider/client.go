// Package provider provides shared HTTP client utilities for the upstream
// metadata providers: resty transport construction, circuit breaking,
// failure classification and the pagination walker.
package provider

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker/v2"

	"media-catalog-service/internal/domain"
)

// ClientConfig holds configuration for a provider client.
type ClientConfig struct {
	BaseURL string
	Timeout time.Duration
	Retry   RetryConfig
	CB      CBConfig
}

// RetryConfig holds retry configuration.
type RetryConfig struct {
	MaxAttempts int
	WaitTime    time.Duration
	MaxWaitTime time.Duration
}

// CBConfig holds circuit breaker configuration.
type CBConfig struct {
	MaxRequests  uint32
	Interval     time.Duration
	Timeout      time.Duration
	FailureRatio float64
}

// NewRestyClient creates a new Resty HTTP client with retry configuration.
// Retries cover network errors and 5xx only; 429s are never retried here
// because the walker and the services handle rate limiting explicitly.
func NewRestyClient(cfg ClientConfig) *resty.Client {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.Retry.MaxAttempts).
		SetRetryWaitTime(cfg.Retry.WaitTime).
		SetRetryMaxWaitTime(cfg.Retry.MaxWaitTime).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil {
				return true
			}

			return r.StatusCode() >= 500
		})

	return client
}

// NewCircuitBreaker creates a new circuit breaker for a provider.
func NewCircuitBreaker[T any](name string, cfg CBConfig) *gobreaker.CircuitBreaker[T] {
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)

			return counts.Requests >= 3 && failureRatio >= cfg.FailureRatio
		},
	}

	return gobreaker.NewCircuitBreaker[T](settings)
}

// Classify maps a resty outcome to a classified provider error. It returns
// nil for a usable success response. The HTTP status code is always kept on
// the returned error so callers can inspect what the provider sent back.
//
// Mapping:
//   - network/timeout/deadline errors, open breaker -> Transport
//   - 429                                           -> RateLimited
//   - 404                                           -> NotFound
//   - other 4xx (request the provider rejected)     -> Malformed
//   - 5xx                                           -> ServerError
func Classify(name string, resp *resty.Response, err error) error {
	if err != nil {
		var pe *domain.ProviderError
		if errors.As(err, &pe) {
			return err
		}

		return domain.NewProviderError(name, domain.ClassTransport, 0, err)
	}

	if resp == nil {
		return domain.NewProviderError(name, domain.ClassTransport, 0, errors.New("no response"))
	}

	code := resp.StatusCode()
	switch {
	case code == 429:
		return domain.NewProviderError(name, domain.ClassRateLimited, code,
			fmt.Errorf("%s rate limited", name))
	case code == 404:
		return domain.NewProviderError(name, domain.ClassNotFound, code,
			fmt.Errorf("%s resource not found", name))
	case code >= 500:
		return domain.NewProviderError(name, domain.ClassServerError, code,
			fmt.Errorf("%s returned status %d", name, code))
	case code >= 400:
		return domain.NewProviderError(name, domain.ClassMalformed, code,
			fmt.Errorf("%s rejected request with status %d", name, code))
	}

	return nil
}

// Malformed builds a Malformed classification for an unparseable or
// envelope-less response body.
func Malformed(name string, err error) error {
	return domain.NewProviderError(name, domain.ClassMalformed, 0, err)
}

// EmptyBody builds a NotFound classification for a success response whose
// body carries no item.
func EmptyBody(name string) error {
	return domain.NewProviderError(name, domain.ClassNotFound, 0,
		fmt.Errorf("%s returned an empty body", name))
}
