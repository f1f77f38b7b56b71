package report

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync/atomic"

	"github.com/vk/springgrid/internal/config"
	"github.com/vk/springgrid/internal/ctxlog"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// Publisher sends a finished run's payload somewhere.
type Publisher interface {
	Publish(ctx context.Context, payload Payload) error
}

// SocketIO publishes the payload as one socket.io event and waits for the
// server's acknowledgement event.
type SocketIO struct {
	cfg config.Report
}

// NewSocketIO creates a publisher for the given report configuration.
func NewSocketIO(cfg config.Report) *SocketIO {
	return &SocketIO{cfg: cfg}
}

// Publish connects, emits the payload once connected, and returns when the
// acknowledgement arrives, the connection fails, or the timeout expires.
func (s *SocketIO) Publish(ctx context.Context, payload Payload) error {
	logger := ctxlog.FromContext(ctx).With("url", s.cfg.URL, "event", s.cfg.Event, "ackEvent", s.cfg.AckEvent)
	logger.Debug("Publishing report.")

	parsedURL, err := url.Parse(s.cfg.URL)
	if err != nil {
		return fmt.Errorf("failed to parse report URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return fmt.Errorf("report URL %q must include a scheme and host", s.cfg.URL)
	}

	opCtx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	var isConnected atomic.Bool
	done := make(chan error, 1)
	finish := func(err error) {
		select {
		case done <- err:
		default:
		}
	}

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	opts := socket.DefaultOptions()
	opts.SetPath(parsedURL.Path)
	opts.SetTransports(types.NewSet(transports.WebSocket))

	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(s.cfg.Namespace, opts)
	defer func() {
		logger.Debug("Disconnecting report client.")
		io.Disconnect()
	}()

	io.On(types.EventName("connect"), func(...any) {
		isConnected.Store(true)
		logger.Debug("Report client connected.", "sid", io.Id())
		io.Emit(s.cfg.Event, payload.asMap())
	})

	io.On(types.EventName("connect_error"), func(errs ...any) {
		if len(errs) > 0 {
			if err, ok := errs[0].(error); ok {
				finish(fmt.Errorf("report connection failed: %w", err))
				return
			}
		}
		finish(errors.New("report connection failed"))
	})

	io.On(types.EventName(s.cfg.AckEvent), func(...any) {
		finish(nil)
	})

	io.Connect()

	select {
	case <-opCtx.Done():
		if isConnected.Load() {
			return fmt.Errorf("timed out waiting for %q acknowledgement", s.cfg.AckEvent)
		}
		return errors.New("timed out while waiting for report connection")
	case err := <-done:
		if err == nil {
			logger.Info("Report published.", "puzzles", len(payload.Puzzles))
		}
		return err
	}
}
