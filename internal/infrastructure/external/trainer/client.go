package trainer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/johnquangdev/voice-dataset/pkg/config"
)

// ErrRejected is returned when the training service refuses the job
var ErrRejected = errors.New("training request rejected")

// TrainRequest is the payload of POST /train
type TrainRequest struct {
	Owner string `json:"owner"`
}

// TrainResponse carries the job's log lines
type TrainResponse struct {
	Logs []string `json:"logs"`
}

// Client is a minimal client of the external training service
type Client struct {
	http       *resty.Client
	maxRetries uint64
	backoff    func() backoff.BackOff
	logger     *zap.Logger
}

// NewClient creates a training service client
func NewClient(cfg *config.TrainerConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	httpClient := resty.New().
		SetBaseURL(cfg.URL).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json")

	return &Client{
		http:       httpClient,
		maxRetries: cfg.MaxRetries,
		backoff: func() backoff.BackOff {
			bo := backoff.NewExponentialBackOff()
			bo.InitialInterval = 500 * time.Millisecond
			bo.MaxInterval = 5 * time.Second
			return bo
		},
		logger: logger,
	}
}

// Train submits a training job for owner and returns its log lines.
// Transport errors and 5xx responses are retried; 4xx responses are not.
func (c *Client) Train(ctx context.Context, owner string) ([]string, error) {
	var out TrainResponse

	op := func() error {
		resp, err := c.http.R().
			SetContext(ctx).
			SetBody(TrainRequest{Owner: owner}).
			SetResult(&out).
			Post("/train")
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			return fmt.Errorf("failed to call training service: %w", err)
		}

		switch {
		case resp.StatusCode() >= http.StatusInternalServerError:
			return fmt.Errorf("training service returned %d", resp.StatusCode())
		case resp.IsError():
			return backoff.Permanent(fmt.Errorf("%w: status %d: %s", ErrRejected, resp.StatusCode(), resp.String()))
		}
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(c.backoff(), c.maxRetries), ctx)
	err := backoff.RetryNotify(op, policy, func(err error, wait time.Duration) {
		c.logger.Warn("trainer.request.retry",
			zap.String("owner", owner),
			zap.Duration("wait", wait),
			zap.Error(err),
		)
	})
	if err != nil {
		return nil, err
	}

	return out.Logs, nil
}
