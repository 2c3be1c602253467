package report

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/vk/sweepdeck/internal/ctxlog"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// RunReportEvent is the event name reports are emitted under.
const RunReportEvent = "run_report"

const (
	defaultConnectTimeout = 15 * time.Second
	defaultFlushDelay     = 250 * time.Millisecond
)

// SocketIOSink emits each report as a single event to a socket.io server.
// The URL path selects the socket.io endpoint and the fragment, if any,
// selects the namespace.
type SocketIOSink struct {
	URL            string
	ConnectTimeout time.Duration
	FlushDelay     time.Duration
}

func (s *SocketIOSink) Name() string { return "socketio" }

func (s *SocketIOSink) Publish(ctx context.Context, r Report) error {
	logger := ctxlog.FromContext(ctx).With("sink", s.Name(), "url", s.URL)

	parsed, err := url.Parse(s.URL)
	if err != nil {
		return fmt.Errorf("failed to parse publish URL: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("publish URL %q needs a scheme and host", s.URL)
	}

	opts := socket.DefaultOptions()
	if parsed.Path != "" {
		opts.SetPath(parsed.Path)
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	namespace := "/"
	if parsed.Fragment != "" {
		namespace = "/" + parsed.Fragment
	}

	manager := socket.NewManager(fmt.Sprintf("%s://%s", parsed.Scheme, parsed.Host), opts)
	io := manager.Socket(namespace, opts)
	defer io.Disconnect()

	connected := make(chan error, 1)
	io.Once(types.EventName("connect"), func(...any) {
		logger.Debug("Connected.", "sid", io.Id())
		connected <- nil
	})
	io.Once(types.EventName("connect_error"), func(args ...any) {
		connected <- connectError(args...)
	})

	io.Connect()

	timeout := s.ConnectTimeout
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}
	select {
	case err := <-connected:
		if err != nil {
			return fmt.Errorf("socket.io connection failed: %w", err)
		}
	case <-ctx.Done():
		return fmt.Errorf("context cancelled while waiting for socket.io connection: %w", ctx.Err())
	case <-time.After(timeout):
		return fmt.Errorf("timed out after %s waiting for socket.io connection", timeout)
	}

	io.Emit(RunReportEvent, payload(r))

	// Emit only queues the packet; give the transport a moment to write it.
	delay := s.FlushDelay
	if delay <= 0 {
		delay = defaultFlushDelay
	}
	select {
	case <-time.After(delay):
	case <-ctx.Done():
	}
	logger.Info("Report published.", "report_id", r.ID)
	return nil
}

// connectError turns the arguments of a connect_error event into an error.
func connectError(args ...any) error {
	if len(args) == 0 || args[0] == nil {
		return errors.New("connect_error event without a reason")
	}
	if err, ok := args[0].(error); ok {
		return err
	}
	return fmt.Errorf("%v", args[0])
}

// payload flattens a report into the JSON object sent over the wire.
func payload(r Report) map[string]any {
	fm := r.Figures
	return map[string]any{
		"id":         r.ID,
		"created_at": r.CreatedAt.Format(time.RFC3339),
		"globals":    r.Globals(),
		"figures": map[string]any{
			"unknowns":         fm.UnknownCount,
			"iterations":       fm.Iterations,
			"solve_time":       fm.SolveTime,
			"subdomain_time":   fm.SubdomainTime,
			"iteration_time":   fm.IterationTime,
			"grind_time":       fm.GrindTime,
			"throughput":       fm.Throughput,
			"sweep_efficiency": fm.SweepEfficiency,
		},
	}
}
