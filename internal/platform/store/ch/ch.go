// Package ch provides a clickhouse client over the native protocol
package ch

import (
	"context"
	"errors"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// ErrNotOpen is returned when a nil or unopened client is used
var ErrNotOpen = errors.New("ch: client not open")

// Config configures clickhouse client
type Config struct {
	URL string
	// Role is stamped into client info so server side logs can tell the
	// binaries apart, e.g. "api" or "sweeper"
	Role string
}

// Rows is the minimal result set iteration for ch
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
	Columns() []string
}

// CH wraps a native protocol connection pool
type CH struct {
	conn driver.Conn
}

// Open parses the DSN and builds the connection pool. Connections are
// established lazily; call Ping to verify reachability
func Open(_ context.Context, cfg Config) (*CH, error) {
	opts, err := clickhouse.ParseDSN(cfg.URL)
	if err != nil {
		return nil, err
	}
	opts.ClientInfo = BuildClientInfo(cfg.Role)

	conn, err := clickhouse.Open(opts)
	if err != nil {
		return nil, err
	}
	return &CH{conn: conn}, nil
}

// Insert appends rows to table in a single batch. Every row must carry the
// full column set in table order
func (c *CH) Insert(ctx context.Context, table string, rows [][]any) error {
	if len(rows) == 0 {
		return nil
	}
	batch, err := c.conn.PrepareBatch(ctx, "INSERT INTO "+table)
	if err != nil {
		return err
	}
	for _, r := range rows {
		if err := batch.Append(r...); err != nil {
			return err
		}
	}
	return batch.Send()
}

// Query runs a query and returns ch.Rows
func (c *CH) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	r, err := c.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return chRows{r: r}, nil
}

// Ping verifies server reachability
func (c *CH) Ping(ctx context.Context) error {
	if c == nil || c.conn == nil {
		return ErrNotOpen
	}
	return c.conn.Ping(ctx)
}

// Close closes the pool
func (c *CH) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// chRows adapts driver.Rows to the seam
type chRows struct{ r driver.Rows }

func (w chRows) Next() bool             { return w.r.Next() }
func (w chRows) Scan(dest ...any) error { return w.r.Scan(dest...) }
func (w chRows) Err() error             { return w.r.Err() }
func (w chRows) Close() error           { return w.r.Close() }
func (w chRows) Columns() []string      { return w.r.Columns() }
