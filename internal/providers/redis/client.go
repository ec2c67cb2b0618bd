package redis

import "context"

// Command is one wire command for pipelined execution.
type Command struct {
	Name string
	Args []string
}

// Conn is the narrow key-value wire client the provider depends on.
// Replies are normalized to strings: nil bulk replies come back as ""
// and array replies are newline-joined. The sampler only ever issues
// RANDOMKEY, TYPE, PING and INFO, so nothing richer is needed.
//
// A Conn is owned by exactly one provider and is not safe for
// concurrent use.
type Conn interface {
	// Do executes a single command and returns its reply.
	Do(ctx context.Context, cmd string, args ...string) (string, error)

	// Pipeline executes commands as one batched round-trip and returns
	// one reply per command, in issuance order.
	Pipeline(ctx context.Context, cmds []Command) ([]string, error)

	// Close shuts the connection down.
	Close() error
}
