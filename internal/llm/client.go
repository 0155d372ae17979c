// Package llm provides thin clients for remote text-completion services.
// The classifier uses them as its last resort before falling back to the
// default category; every call is a single attempt bounded by the client's
// timeout, and callers are expected to treat any error as "no result".
package llm

import (
	"context"
	"time"
)

// Client is a remote completion provider. Implementations must be safe for
// concurrent use; they hold only immutable configuration and an
// *http.Client.
type Client interface {
	Complete(ctx context.Context, prompt string) (Response, error)
}

// Response carries the raw text of a completion. Interpreting it (matching
// it against the category set) is the caller's job.
type Response struct {
	Text string
}

// Config describes how to construct a client.
type Config struct {
	Provider  string
	APIKey    string
	Model     string
	Timeout   time.Duration
	MaxTokens int
}

const defaultTimeout = 10 * time.Second
