package share

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Shortener turns long view links into short ones through a TinyURL compatible endpoint:
// GET <endpoint>?url=<link> answers with the short link as plain text.
type Shortener struct {
	log      *zap.SugaredLogger
	endpoint string
	timeout  time.Duration
}

// NewShortener constructs a Shortener. An empty endpoint disables shortening.
func NewShortener(log *zap.SugaredLogger, endpoint string, timeout time.Duration) *Shortener {
	return &Shortener{
		log:      log.Named("share.shortener"),
		endpoint: endpoint,
		timeout:  timeout,
	}
}

// Shorten returns the short form of link. Any failure yields link unchanged.
func (s *Shortener) Shorten(ctx context.Context, link string) string {
	if s.endpoint == "" {
		return link
	}
	short, err := s.request(ctx, link)
	if err != nil {
		s.log.Warnw("url shortening failed, using long url", "error", err)
		return link
	}
	return short
}

func (s *Shortener) request(ctx context.Context, link string) (string, error) {
	timeout := s.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); timeout <= 0 || left < timeout {
			timeout = left
		}
	}
	if timeout <= 0 {
		return "", context.DeadlineExceeded
	}

	target := s.endpoint + "?" + url.Values{"url": {link}}.Encode()
	code, body, errs := fiber.Get(target).Timeout(timeout).String()
	if len(errs) > 0 {
		return "", fmt.Errorf("shortener request: %w", errs[0])
	}
	if code != fiber.StatusOK {
		return "", fmt.Errorf("shortener status %d", code)
	}

	short := strings.TrimSpace(body)
	if !strings.HasPrefix(short, "http://") && !strings.HasPrefix(short, "https://") {
		return "", fmt.Errorf("shortener returned %q", short)
	}
	return short, nil
}
