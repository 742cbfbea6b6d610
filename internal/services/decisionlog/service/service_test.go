package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"faqrelay/internal/adapters/chat"
	"faqrelay/internal/modkit"
	"faqrelay/internal/platform/store"

	"faqrelay/internal/services/decisionlog/domain"
)

type fakeCH struct {
	mu     sync.Mutex
	tables []string
	rows   [][]any
	err    error
}

func (f *fakeCH) Insert(_ context.Context, table string, data any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.tables = append(f.tables, table)
	f.rows = append(f.rows, data.([][]any)...)
	return nil
}

func (f *fakeCH) Query(context.Context, string, ...any) (store.Rows, error) { return nil, nil }
func (f *fakeCH) Close() error                                             { return nil }

func (f *fakeCH) rowCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows)
}

type fakeGateway struct {
	mu      sync.Mutex
	posts   []string
	lookups int
	chanErr error
}

func (f *fakeGateway) CreatePost(_ context.Context, channelID, message, _ string) (chat.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.posts = append(f.posts, channelID+": "+message)
	return chat.Post{ID: "p1"}, nil
}

func (f *fakeGateway) ChannelByName(_ context.Context, teamID, name string) (chat.Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookups++
	if f.chanErr != nil {
		return chat.Channel{}, f.chanErr
	}
	return chat.Channel{ID: "resolved-" + teamID + "-" + name}, nil
}

func TestNew_FullyDisabledIsNoop(t *testing.T) {
	t.Parallel()

	s := New(modkit.Deps{}, Config{}, nil)
	if s.queue != nil {
		t.Fatalf("queue allocated with both sinks off")
	}
	// must not panic or spawn anything
	s.Record(context.Background(), domain.Decision{Kind: domain.KindDirect})
}

func TestResolveChannel_TeamlessUsesRawID(t *testing.T) {
	t.Parallel()

	gw := &fakeGateway{}
	s := New(modkit.Deps{}, Config{Channel: "C123"}, gw)

	id, ok := s.resolveChannel(context.Background())
	if !ok || id != "C123" {
		t.Fatalf("resolve = %q/%v, want C123/true", id, ok)
	}
	if gw.lookups != 0 {
		t.Fatalf("teamless resolve hit the gateway")
	}
}

func TestResolveChannel_LookupCachedAfterFirstHit(t *testing.T) {
	t.Parallel()

	gw := &fakeGateway{}
	s := New(modkit.Deps{}, Config{Channel: "faq-log", Team: "t1"}, gw)

	for i := 0; i < 3; i++ {
		id, ok := s.resolveChannel(context.Background())
		if !ok || id != "resolved-t1-faq-log" {
			t.Fatalf("resolve #%d = %q/%v", i, id, ok)
		}
	}
	if gw.lookups != 1 {
		t.Fatalf("lookups = %d, want 1", gw.lookups)
	}
}

func TestResolveChannel_LookupFailureNotCached(t *testing.T) {
	t.Parallel()

	gw := &fakeGateway{chanErr: errors.New("no such channel")}
	s := New(modkit.Deps{}, Config{Channel: "faq-log", Team: "t1"}, gw)

	if _, ok := s.resolveChannel(context.Background()); ok {
		t.Fatalf("failed lookup reported ok")
	}

	gw.mu.Lock()
	gw.chanErr = nil
	gw.mu.Unlock()
	if _, ok := s.resolveChannel(context.Background()); !ok {
		t.Fatalf("lookup not retried after failure")
	}
}

func TestPostLine_FormatsByKind(t *testing.T) {
	t.Parallel()

	gw := &fakeGateway{}
	s := New(modkit.Deps{}, Config{Channel: "C1"}, gw)

	s.postLine(domain.Decision{
		Kind: domain.KindDirect, Score: 0.993, RoomID: "r1",
		MatchedQuestion: "How do I create a channel?",
	})
	s.postLine(domain.Decision{
		Kind: domain.KindProbable, Score: 0.41, RoomID: "r1",
		ReviewID: "rv-1", ReviewerID: "alice",
	})
	s.postLine(domain.Decision{Kind: domain.KindProbable, Score: 0.2, RoomID: "r2"})

	if len(gw.posts) != 3 {
		t.Fatalf("posts = %v", gw.posts)
	}
	if !strings.Contains(gw.posts[0], "direct match score=0.993") ||
		!strings.Contains(gw.posts[0], `"How do I create a channel?"`) {
		t.Fatalf("direct line = %q", gw.posts[0])
	}
	if !strings.Contains(gw.posts[1], "review=rv-1 reviewer=alice") {
		t.Fatalf("probable line = %q", gw.posts[1])
	}
	if strings.Contains(gw.posts[2], "review=") {
		t.Fatalf("unescalated probable line mentions a review: %q", gw.posts[2])
	}
}

func TestFlush_WritesBatchRows(t *testing.T) {
	t.Parallel()

	ch := &fakeCH{}
	s := New(modkit.Deps{CH: ch}, Config{Table: "faqrelay.decisions"}, nil)

	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.flush([]domain.Decision{
		{Kind: domain.KindDirect, Score: 0.99, MatchedQuestion: "q", ProposedAnswer: "a", RoomID: "r1", At: at},
		{Kind: domain.KindProbable, Score: 0.4, ReviewID: "rv-1", ReviewerID: "alice", RoomID: "r2", At: at},
	})

	if len(ch.tables) != 1 || ch.tables[0] != "faqrelay.decisions" {
		t.Fatalf("tables = %v", ch.tables)
	}
	if ch.rowCount() != 2 {
		t.Fatalf("rows = %d, want 2", ch.rowCount())
	}
	if ch.rows[0][0] != "direct" || ch.rows[1][4] != "rv-1" {
		t.Fatalf("row contents = %v", ch.rows)
	}
}

func TestRecord_FlushesAsync(t *testing.T) {
	t.Parallel()

	ch := &fakeCH{}
	s := New(modkit.Deps{CH: ch}, Config{Table: "faqrelay.decisions", Batch: 1, FlushEvery: 10 * time.Millisecond}, nil)

	s.Record(context.Background(), domain.Decision{Kind: domain.KindDirect, Score: 1, RoomID: "r1"})

	deadline := time.Now().Add(2 * time.Second)
	for ch.rowCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("decision never flushed")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
