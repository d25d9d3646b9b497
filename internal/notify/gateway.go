package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/SistemasVox/clima-udi/internal/config"
	"github.com/SistemasVox/clima-udi/internal/types"
)

const (
	retryMinWait = 500 * time.Millisecond
	retryMaxWait = 5 * time.Second

	// breakerFailureLimit is the consecutive-failure count that opens the
	// circuit for the rest of the run.
	breakerFailureLimit = 5

	// maxDetailRead bounds how much of a gateway response body is kept for
	// failure details.
	maxDetailRead = 4096
)

// sendPayload is the gateway request body.
type sendPayload struct {
	Number   string `json:"number"`
	Text     string `json:"text"`
	Password string `json:"password"`
}

// Gateway sends messages to the WhatsApp HTTP gateway. It owns retries and
// the circuit breaker; callers treat a Send as a single attempt.
type Gateway struct {
	cfg     config.WhatsAppConfig
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[*http.Response]
	logger  *slog.Logger
	sleepFn func(time.Duration)
}

// Option is a functional option for configuring a Gateway.
type Option func(*Gateway)

// WithHTTPClient overrides the HTTP client, for tests.
func WithHTTPClient(c *http.Client) Option {
	return func(g *Gateway) { g.client = c }
}

// WithSleepFunc overrides the sleep between retries, for tests.
func WithSleepFunc(fn func(time.Duration)) Option {
	return func(g *Gateway) { g.sleepFn = fn }
}

// NewGateway creates a Gateway for the configured endpoint and recipients.
func NewGateway(cfg config.WhatsAppConfig, logger *slog.Logger, opts ...Option) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}

	g := &Gateway{
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
		sleepFn: time.Sleep,
	}

	g.breaker = gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name:        "whatsapp",
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > breakerFailureLimit
		},
		IsSuccessful: func(err error) bool {
			return err == nil
		},
	})

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Send delivers the text to every configured recipient. It returns nil only
// when all recipients accepted the message; the engine records dispatch
// state solely on that outcome.
func (g *Gateway) Send(ctx context.Context, text string) error {
	var failed, permanent int
	for _, number := range g.cfg.Numbers {
		res := g.SendTo(ctx, number, text)
		if res.Delivered() {
			g.logger.InfoContext(ctx, "whatsapp message delivered",
				"recipient", res.Recipient,
				"http_status", res.HTTPStatus,
			)
			continue
		}

		failed++
		if res.Status == StatusPermanent {
			permanent++
		}
		g.logger.ErrorContext(ctx, "whatsapp delivery failed",
			"recipient", res.Recipient,
			"status", string(res.Status),
			"http_status", res.HTTPStatus,
			"detail", res.Detail,
		)
	}

	if failed == 0 {
		return nil
	}

	code := types.ErrCodeDispatchFailed
	if permanent > 0 {
		code = types.ErrCodeDispatchRejected
	}
	return types.NewAppError(code,
		fmt.Sprintf("delivery failed for %d of %d recipients", failed, len(g.cfg.Numbers)),
		nil,
	)
}

// SendTo delivers the text to a single recipient, retrying transient
// failures with exponential backoff. A permanent rejection or an open
// circuit returns immediately.
func (g *Gateway) SendTo(ctx context.Context, number, text string) DeliveryResult {
	var res DeliveryResult
	attempts := 1 + g.cfg.MaxRetries
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			g.sleepFn(g.backoff(attempt))
		}

		var raw error
		res, raw = g.attempt(ctx, number, text)
		if res.Status != StatusTransient {
			return res
		}
		if errors.Is(raw, gobreaker.ErrOpenState) || errors.Is(raw, gobreaker.ErrTooManyRequests) {
			return res
		}

		if attempt < attempts-1 {
			g.logger.WarnContext(ctx, "whatsapp send retrying",
				"recipient", number,
				"attempt", attempt+1,
				"http_status", res.HTTPStatus,
				"detail", res.Detail,
			)
		}
	}
	return res
}

// attempt performs one POST through the circuit breaker. The raw error is
// returned alongside the classified result so the caller can distinguish an
// open breaker from an ordinary transient failure.
func (g *Gateway) attempt(ctx context.Context, number, text string) (DeliveryResult, error) {
	res := DeliveryResult{Recipient: number}

	body, err := json.Marshal(sendPayload{
		Number:   strings.TrimSpace(number),
		Text:     text,
		Password: g.cfg.Password.Unmask(),
	})
	if err != nil {
		res.Status = StatusPermanent
		res.Detail = "encode payload: " + err.Error()
		return res, err
	}

	resp, err := g.breaker.Execute(func() (*http.Response, error) {
		req, reqErr := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.APIURL, bytes.NewReader(body))
		if reqErr != nil {
			return nil, reqErr
		}
		req.Header.Set("Content-Type", "application/json")

		r, doErr := g.client.Do(req)
		if doErr != nil {
			return nil, doErr
		}
		// 5xx counts against the breaker; a 4xx is a live upstream.
		if r.StatusCode >= 500 {
			return r, fmt.Errorf("gateway returned %d", r.StatusCode)
		}
		return r, nil
	})

	if err != nil {
		if resp != nil {
			res.HTTPStatus = resp.StatusCode
			res.Status = ClassifyStatus(resp.StatusCode)
			res.Detail = readDetail(resp.Body)
			resp.Body.Close()
			return res, err
		}
		res.Status = StatusTransient
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			res.Detail = "circuit breaker open"
		} else {
			res.Detail = err.Error()
		}
		return res, err
	}
	defer resp.Body.Close()

	res.HTTPStatus = resp.StatusCode
	res.Status = ClassifyStatus(resp.StatusCode)
	if !res.Delivered() {
		res.Detail = readDetail(resp.Body)
	}
	return res, nil
}

func (g *Gateway) backoff(attempt int) time.Duration {
	wait := retryMinWait << (attempt - 1)
	if wait > retryMaxWait {
		wait = retryMaxWait
	}
	return wait
}

func readDetail(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, maxDetailRead))
	return strings.TrimSpace(string(b))
}
