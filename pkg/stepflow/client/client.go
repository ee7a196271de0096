package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/randalmurphal/stepflow/pkg/stepflow"
	"github.com/randalmurphal/stepflow/pkg/stepflow/message"
)

// ResultFunc observes every non-nil processing result. It runs on the
// Run goroutine; long work should be handed off.
type ResultFunc func(res *stepflow.Result)

// Client pumps frames from a transport through a session and answers
// control requests.
type Client struct {
	conn     Conn
	session  *stepflow.Session
	onResult ResultFunc

	// autoCommand, when non-empty, answers every control request with
	// the same command without caller involvement.
	autoCommand string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// OnResult installs a result observer.
func OnResult(fn ResultFunc) ClientOption {
	return func(c *Client) {
		c.onResult = fn
	}
}

// WithAutoCommand answers every control request with the given
// command, e.g. message.CommandContinue for unattended runs.
func WithAutoCommand(command string) ClientOption {
	return func(c *Client) {
		c.autoCommand = command
	}
}

// NewClient wraps a transport and a session.
func NewClient(conn Conn, session *stepflow.Session, opts ...ClientOption) *Client {
	c := &Client{conn: conn, session: session}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Session returns the underlying session.
func (c *Client) Session() *stepflow.Session {
	return c.session
}

// Run reads frames until the context is canceled, the transport
// fails, or the workflow ends. Frames that are not JSON objects are
// skipped; messages outside the step-by-step channel fall through
// silently.
func (c *Client) Run(ctx context.Context) error {
	for {
		data, err := c.conn.Read(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("read frame: %w", err)
		}

		var raw any
		if err := json.Unmarshal(data, &raw); err != nil {
			continue
		}

		res := c.session.ProcessContext(ctx, raw)
		if res == nil {
			continue
		}
		if c.onResult != nil {
			c.onResult(res)
		}

		if a := res.Action; a != nil && a.Type == stepflow.ActionInputRequestReceived && c.autoCommand != "" {
			if err := c.Respond(ctx, a.RequestID, c.autoCommand); err != nil {
				return err
			}
		}

		if res.WorkflowEnd {
			return nil
		}
	}
}

// Respond answers a control request with a command.
func (c *Client) Respond(ctx context.Context, requestID, command string) error {
	if requestID == "" {
		return errors.New("respond: empty request id")
	}
	data, err := json.Marshal(message.NewControlResponse(requestID, command))
	if err != nil {
		return fmt.Errorf("marshal control response: %w", err)
	}
	if err := c.conn.Write(ctx, data); err != nil {
		return fmt.Errorf("write control response: %w", err)
	}
	return nil
}

// Close shuts the transport down.
func (c *Client) Close() error {
	return c.conn.Close()
}
