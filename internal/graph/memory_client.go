package graph

import (
	"context"
	"sync"
)

// MemoryClient is a simple in-memory implementation of the Client interface used
// for unit testing repository and handler logic without a running graph database.
// Every Run call records the executed query and pops the next canned result
// queued for the transaction mode it runs in.
type MemoryClient struct {
	mu           sync.Mutex
	writeCalls   []ExecutedQuery
	readCalls    []ExecutedQuery
	readResults  []Result
	writeResults []Result
	err          error
	connectivity error
	commits      int
	rollbacks    int
}

// ExecutedQuery captures a cypher statement and parameters executed against the graph.
type ExecutedQuery struct {
	Query  string
	Params map[string]any
}

// NewMemoryClient instantiates the in-memory client.
func NewMemoryClient() *MemoryClient {
	return &MemoryClient{}
}

// WithError configures the client to fail every subsequent Run with err.
func (m *MemoryClient) WithError(err error) *MemoryClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
	return m
}

// WithConnectivityError forces VerifyConnectivity to return the supplied error.
func (m *MemoryClient) WithConnectivityError(err error) *MemoryClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connectivity = err
	return m
}

// PushReadResult appends a result returned by the next Run inside a read transaction.
func (m *MemoryClient) PushReadResult(res Result) *MemoryClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readResults = append(m.readResults, res)
	return m
}

// PushWriteResult appends a result returned by the next Run inside a write transaction.
func (m *MemoryClient) PushWriteResult(res Result) *MemoryClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeResults = append(m.writeResults, res)
	return m
}

func (m *MemoryClient) ReadTransaction(ctx context.Context, work Work) (any, error) {
	return m.execute(ctx, &memoryTx{client: m, write: false}, work)
}

func (m *MemoryClient) WriteTransaction(ctx context.Context, work Work) (any, error) {
	return m.execute(ctx, &memoryTx{client: m, write: true}, work)
}

func (m *MemoryClient) execute(ctx context.Context, tx *memoryTx, work Work) (any, error) {
	out, err := work(ctx, tx)

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		m.rollbacks++
		return nil, err
	}
	m.commits++
	return out, nil
}

func (m *MemoryClient) VerifyConnectivity(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connectivity
}

func (m *MemoryClient) Close(context.Context) error {
	return nil
}

// WriteCalls returns a snapshot of queries executed in write transactions.
func (m *MemoryClient) WriteCalls() []ExecutedQuery {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ExecutedQuery(nil), m.writeCalls...)
}

// ReadCalls returns a snapshot of queries executed in read transactions.
func (m *MemoryClient) ReadCalls() []ExecutedQuery {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ExecutedQuery(nil), m.readCalls...)
}

// Commits reports how many transactions completed successfully.
func (m *MemoryClient) Commits() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.commits
}

// Rollbacks reports how many transactions were rolled back.
func (m *MemoryClient) Rollbacks() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rollbacks
}

type memoryTx struct {
	client *MemoryClient
	write  bool
}

func (t *memoryTx) Run(_ context.Context, cypher string, params map[string]any) (Result, error) {
	m := t.client
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return Result{}, m.err
	}

	call := ExecutedQuery{Query: cypher, Params: cloneMap(params)}
	queue := &m.readResults
	if t.write {
		m.writeCalls = append(m.writeCalls, call)
		queue = &m.writeResults
	} else {
		m.readCalls = append(m.readCalls, call)
	}

	if len(*queue) == 0 {
		return Result{}, nil
	}
	res := (*queue)[0]
	*queue = (*queue)[1:]
	return res, nil
}

func cloneMap(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
