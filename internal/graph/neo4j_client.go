package graph

import (
	"context"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/pkg/errors"
)

// NewNeo4jClient establishes a Bolt connection using the official Neo4j driver
// and verifies it before returning.
func NewNeo4jClient(ctx context.Context, opts Options) (Client, error) {
	if opts.URI == "" {
		return nil, ErrMissingURI
	}

	auth := neo4j.NoAuth()
	if opts.Username != "" {
		auth = neo4j.BasicAuth(opts.Username, opts.Password, "")
	}

	driver, err := neo4j.NewDriverWithContext(opts.URI, auth, func(c *neo4j.Config) {
		if opts.MaxConnections > 0 {
			c.MaxConnectionPoolSize = opts.MaxConnections
		}
	})
	if err != nil {
		return nil, errors.Wrap(err, "create neo4j driver")
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, &Error{Kind: ErrDatabaseUnavailable, Err: errors.WithMessage(err, "verify graph connectivity")}
	}

	return &neo4jClient{
		driver:    driver,
		database:  opts.Database,
		txTimeout: opts.TxTimeout,
	}, nil
}

type neo4jClient struct {
	driver    neo4j.DriverWithContext
	database  string
	txTimeout time.Duration
}

func (c *neo4jClient) ReadTransaction(ctx context.Context, work Work) (any, error) {
	return c.execute(ctx, neo4j.AccessModeRead, work)
}

func (c *neo4jClient) WriteTransaction(ctx context.Context, work Work) (any, error) {
	return c.execute(ctx, neo4j.AccessModeWrite, work)
}

func (c *neo4jClient) execute(ctx context.Context, mode neo4j.AccessMode, work Work) (any, error) {
	var configurers []func(*neo4j.TransactionConfig)
	if c.txTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.txTimeout)
		defer cancel()
		configurers = append(configurers, neo4j.WithTxTimeout(c.txTimeout))
	}

	session := c.driver.NewSession(ctx, neo4j.SessionConfig{
		DatabaseName: c.database,
		AccessMode:   mode,
	})
	defer session.Close(ctx)

	// The driver may retry work on transient failures; only the last attempt counts.
	var workErr error
	txWork := func(tx neo4j.ManagedTransaction) (any, error) {
		workErr = nil
		out, err := work(ctx, &neo4jTx{tx: tx})
		workErr = err
		return out, err
	}

	var (
		out any
		err error
	)
	if mode == neo4j.AccessModeRead {
		out, err = session.ExecuteRead(ctx, txWork, configurers...)
	} else {
		out, err = session.ExecuteWrite(ctx, txWork, configurers...)
	}
	if err != nil {
		return nil, txError(err, workErr)
	}
	return out, nil
}

// txError picks the error a transaction reports. The work's own error passes
// through only when the driver actually returned it; a later failure outside
// the work, such as losing the connection on retry, is classified instead.
func txError(err, workErr error) error {
	if workErr != nil && errors.Is(err, workErr) {
		return workErr
	}
	return classify(err)
}

func (c *neo4jClient) VerifyConnectivity(ctx context.Context) error {
	if err := c.driver.VerifyConnectivity(ctx); err != nil {
		return &Error{Kind: ErrDatabaseUnavailable, Err: err}
	}
	return nil
}

func (c *neo4jClient) Close(ctx context.Context) error {
	return c.driver.Close(ctx)
}

type neo4jTx struct {
	tx neo4j.ManagedTransaction
}

func (t *neo4jTx) Run(ctx context.Context, cypher string, params map[string]any) (Result, error) {
	res, err := t.tx.Run(ctx, cypher, params)
	if err != nil {
		return Result{}, classify(err)
	}
	out, err := consumeResult(ctx, res)
	if err != nil {
		return Result{}, classify(err)
	}
	return out, nil
}

// classify maps a driver error onto the gateway taxonomy. Errors that are
// already classified are returned untouched.
func classify(err error) error {
	var gerr *Error
	if errors.As(err, &gerr) {
		return err
	}
	var connErr *neo4j.ConnectivityError
	if errors.As(err, &connErr) || errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: ErrDatabaseUnavailable, Err: err}
	}
	return &Error{Kind: ErrQueryExecution, Err: err}
}

func consumeResult(ctx context.Context, res neo4j.ResultWithContext) (Result, error) {
	var records []Record
	for res.Next(ctx) {
		rec := res.Record()
		record := make(Record, len(rec.Keys))
		for _, key := range rec.Keys {
			value, _ := rec.Get(key)
			record[key] = value
		}
		records = append(records, record)
	}
	if err := res.Err(); err != nil {
		return Result{}, err
	}
	return Result{Records: records}, nil
}
