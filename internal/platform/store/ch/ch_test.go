package ch

import (
	"context"
	"testing"
)

// TestOpen builds a lazy pool without dialing
func TestOpen(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cfg := Config{URL: "clickhouse://localhost:9000/default", Role: "api"}
	cl, err := Open(ctx, cfg)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if cl == nil {
		t.Fatalf("Open returned nil client")
	}
	if err := cl.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
}

func TestOpen_BadDSN(t *testing.T) {
	t.Parallel()

	_, err := Open(context.Background(), Config{URL: "://not-a-dsn"})
	if err == nil {
		t.Fatalf("Open expected DSN parse error, got nil")
	}
}

// TestInsert_EmptyBatch is a no-op and must not touch the connection
func TestInsert_EmptyBatch(t *testing.T) {
	t.Parallel()

	cl := &CH{}
	if err := cl.Insert(context.Background(), "faqrelay.decisions", nil); err != nil {
		t.Fatalf("Insert of zero rows returned error: %v", err)
	}
}

func TestPing_NotOpen(t *testing.T) {
	t.Parallel()

	var cl *CH
	if err := cl.Ping(context.Background()); err != ErrNotOpen {
		t.Fatalf("Ping on nil client = %v, want ErrNotOpen", err)
	}
	if err := (&CH{}).Ping(context.Background()); err != ErrNotOpen {
		t.Fatalf("Ping on unopened client = %v, want ErrNotOpen", err)
	}
}

// TestClose_NoOp on an unopened client
func TestClose_NoOp(t *testing.T) {
	t.Parallel()

	cl := &CH{}
	if err := cl.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
}

func TestBuildClientInfo(t *testing.T) {
	t.Parallel()

	info := BuildClientInfo("sweeper")

	if len(info.Products) == 0 {
		t.Fatalf("no products stamped")
	}
	if info.Products[0].Name != "faqrelay" {
		t.Fatalf("Products[0].Name = %q, want faqrelay", info.Products[0].Name)
	}
	var sawRole bool
	for _, p := range info.Products {
		if p.Name == "role" && p.Version == "sweeper" {
			sawRole = true
		}
	}
	if !sawRole {
		t.Fatalf("role product missing: %+v", info.Products)
	}
}
