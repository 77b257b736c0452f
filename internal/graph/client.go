package graph

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
)

// Client is the Database Gateway: it hands out isolated units of work against
// the graph database without exposing session lifecycle to callers.
//
// Both transaction methods open a session, run work inside a transaction,
// commit on success, roll back when work fails, and close the session before
// returning. Errors returned by work propagate unchanged.
type Client interface {
	ReadTransaction(ctx context.Context, work Work) (any, error)
	WriteTransaction(ctx context.Context, work Work) (any, error)
	VerifyConnectivity(ctx context.Context) error
	Close(ctx context.Context) error
}

// Tx is the transaction handle passed to a unit of work.
type Tx interface {
	// Run executes a query template with a separately bound parameter map.
	Run(ctx context.Context, cypher string, params map[string]any) (Result, error)
}

// Work is a unit of work executed inside a single transaction.
type Work func(ctx context.Context, tx Tx) (any, error)

// Result is a simplified representation of a query response.
type Result struct {
	Records []Record
}

// Record groups key-value pairs returned from the graph engine.
type Record map[string]any

// Options configures a graph client implementation.
type Options struct {
	URI            string
	Database       string
	Username       string
	Password       string
	MaxConnections int
	// TxTimeout bounds every transaction when positive.
	TxTimeout time.Duration
}

var (
	// ErrMissingURI indicates the graph URI is not provided.
	ErrMissingURI = errors.New("graph URI is required")
	// ErrDatabaseUnavailable reports a failure to reach the database or open a session.
	ErrDatabaseUnavailable = errors.New("graph database unavailable")
	// ErrQueryExecution reports that the database rejected or failed a query.
	ErrQueryExecution = errors.New("graph query failed")
)

// Error attaches a gateway failure kind to the underlying driver error so both
// can be matched with errors.Is / errors.As.
type Error struct {
	Kind error
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// Read runs fn in a read transaction and returns its typed result.
func Read[T any](ctx context.Context, c Client, fn func(ctx context.Context, tx Tx) (T, error)) (T, error) {
	return run(ctx, c.ReadTransaction, fn)
}

// Write runs fn in a write transaction and returns its typed result.
func Write[T any](ctx context.Context, c Client, fn func(ctx context.Context, tx Tx) (T, error)) (T, error) {
	return run(ctx, c.WriteTransaction, fn)
}

func run[T any](ctx context.Context, open func(context.Context, Work) (any, error), fn func(ctx context.Context, tx Tx) (T, error)) (T, error) {
	var zero T
	out, err := open(ctx, func(ctx context.Context, tx Tx) (any, error) {
		return fn(ctx, tx)
	})
	if err != nil {
		return zero, err
	}
	if out == nil {
		return zero, nil
	}
	v, ok := out.(T)
	if !ok {
		return zero, errors.Errorf("unexpected transaction result %T", out)
	}
	return v, nil
}
