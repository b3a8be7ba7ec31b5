// Package publish pushes variable trees to an external editor over
// socket.io.
package publish

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/nucleron/yaplc/internal/ctxlog"
	"github.com/nucleron/yaplc/internal/locations"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

const (
	// DefaultEvent is the event trees are emitted under.
	DefaultEvent = "variables"
	// DefaultTimeout bounds the initial connection.
	DefaultTimeout = 15 * time.Second
)

// Options configures the connection.
type Options struct {
	URL                string
	Namespace          string
	Timeout            time.Duration
	InsecureSkipVerify bool
}

// Publisher is a connected socket.io client.
type Publisher struct {
	io     *socket.Socket
	logger *slog.Logger
}

// Dial connects to the socket.io server at opts.URL and waits for the
// connection to be established, the server to refuse it, ctx to end or the
// timeout to pass.
func Dial(ctx context.Context, opts Options) (*Publisher, error) {
	logger := ctxlog.FromContext(ctx).With("component", "publisher", "url", opts.URL)

	parsedURL, err := url.Parse(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, fmt.Errorf("URL %q must be absolute, e.g. http://localhost:3000", opts.URL)
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	namespace := opts.Namespace
	if namespace == "" {
		namespace = "/"
	}

	sopts := socket.DefaultOptions()
	if parsedURL.Path != "" && parsedURL.Path != "/" {
		sopts.SetPath(parsedURL.Path)
	}
	if opts.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		sopts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	sopts.SetTransports(types.NewSet(transports.WebSocket))

	connectChan := make(chan error, 1)

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	manager := socket.NewManager(baseURL, sopts)
	io := manager.Socket(namespace, sopts)

	io.Once(types.EventName("connect"), func(...any) {
		logger.Info("Connected.", "sid", io.Id())
		select {
		case connectChan <- nil:
		default:
		}
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		err := fmt.Errorf("connect error")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = e
			}
		}
		select {
		case connectChan <- err:
		default:
		}
	})

	logger.Debug("Connecting.", "namespace", namespace, "timeout", timeout)
	io.Connect()

	select {
	case err := <-connectChan:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("socket.io connection failed: %w", err)
		}
		return &Publisher{io: io, logger: logger}, nil
	case <-ctx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("context cancelled while waiting for socket.io connection: %w", ctx.Err())
	case <-time.After(timeout):
		io.Disconnect()
		return nil, fmt.Errorf("timed out after %s waiting for socket.io connection", timeout)
	}
}

// Publish emits tree under event.
func (p *Publisher) Publish(ctx context.Context, event string, tree *locations.Node) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !p.io.Connected() {
		return fmt.Errorf("socket.io client %s is not connected", p.io.Id())
	}
	if event == "" {
		event = DefaultEvent
	}

	payload, err := Payload(tree)
	if err != nil {
		return err
	}
	p.logger.Debug("Emitting tree.", "event", event, "variables", len(tree.Variables()))
	p.io.Emit(event, payload)
	return nil
}

// Close disconnects the client.
func (p *Publisher) Close() error {
	p.logger.Debug("Disconnecting.", "sid", p.io.Id())
	p.io.Disconnect()
	return nil
}

// Payload converts tree into the JSON-shaped value that is emitted.
func Payload(tree *locations.Node) (map[string]any, error) {
	data, err := json.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tree: %w", err)
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to encode tree: %w", err)
	}
	return out, nil
}
