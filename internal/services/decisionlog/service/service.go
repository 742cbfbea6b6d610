// Package service implements the decision log sinks
package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"faqrelay/internal/adapters/chat"
	"faqrelay/internal/modkit"
	"faqrelay/internal/platform/logger"
	"faqrelay/internal/platform/store"

	"faqrelay/internal/services/decisionlog/domain"
)

// Gateway is the slice of the chat client the log needs
type Gateway interface {
	CreatePost(ctx context.Context, channelID, message, rootID string) (chat.Post, error)
	ChannelByName(ctx context.Context, teamID, name string) (chat.Channel, error)
}

// Config controls the decision sinks
type Config struct {
	// Channel is the chat channel for the human readable line, empty
	// disables the chat leg. With Team empty it is taken as a channel id,
	// otherwise it is resolved as a channel name within that team
	Channel string
	Team    string

	// Table is the ClickHouse target, flushed in batches
	Table      string
	Batch      int
	FlushEvery time.Duration
}

const (
	queueCap     = 1024
	flushTimeout = 5 * time.Second
)

// Svc fans decisions out to the chat line and the ClickHouse table.
// Record is a non blocking enqueue; a process lifetime flusher drains
// the queue so a slow sink can never stall intake
type Svc struct {
	ch   store.Clickhouse
	chat Gateway
	cfg  Config
	log  logger.Logger

	once    sync.Once
	queue   chan domain.Decision
	dropped atomic.Int64

	mu        sync.Mutex
	channelID string
}

// New constructs the service. With no channel and no ClickHouse the
// recorder degrades to a no-op
func New(deps modkit.Deps, cfg Config, gw Gateway) *Svc {
	if cfg.Batch <= 0 {
		cfg.Batch = 64
	}
	if cfg.FlushEvery <= 0 {
		cfg.FlushEvery = 2 * time.Second
	}
	s := &Svc{
		ch:   deps.CH,
		chat: gw,
		cfg:  cfg,
		log:  *logger.Named("decisions"),
	}
	if cfg.Channel != "" || deps.CH != nil {
		s.queue = make(chan domain.Decision, queueCap)
	}
	return s
}

// Record enqueues one decision. A full queue drops the entry and counts it
func (s *Svc) Record(_ context.Context, d domain.Decision) {
	if s.queue == nil {
		return
	}
	if d.At.IsZero() {
		d.At = time.Now().UTC()
	}
	s.once.Do(func() { go s.run() })

	select {
	case s.queue <- d:
	default:
		if n := s.dropped.Add(1); n == 1 || n%100 == 0 {
			s.log.Warn().Int64("dropped", n).Msg("decision queue full")
		}
	}
}

func (s *Svc) run() {
	tick := time.NewTicker(s.cfg.FlushEvery)
	defer tick.Stop()

	batch := make([]domain.Decision, 0, s.cfg.Batch)
	for {
		select {
		case d := <-s.queue:
			s.postLine(d)
			batch = append(batch, d)
			if len(batch) >= s.cfg.Batch {
				s.flush(batch)
				batch = batch[:0]
			}
		case <-tick.C:
			if len(batch) > 0 {
				s.flush(batch)
				batch = batch[:0]
			}
		}
	}
}

// postLine sends the compact human readable line to the log channel
func (s *Svc) postLine(d domain.Decision) {
	if s.cfg.Channel == "" || s.chat == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()

	id, ok := s.resolveChannel(ctx)
	if !ok {
		return
	}
	if _, err := s.chat.CreatePost(ctx, id, formatLine(d), ""); err != nil {
		s.log.Warn().Err(err).Str("channel", s.cfg.Channel).Msg("decision line post failed")
	}
}

// resolveChannel caches the channel id after the first successful lookup
func (s *Svc) resolveChannel(ctx context.Context) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.channelID != "" {
		return s.channelID, true
	}
	if s.cfg.Team == "" {
		s.channelID = s.cfg.Channel
		return s.channelID, true
	}
	ch, err := s.chat.ChannelByName(ctx, s.cfg.Team, s.cfg.Channel)
	if err != nil {
		s.log.Warn().Err(err).Str("channel", s.cfg.Channel).Msg("decision channel lookup failed")
		return "", false
	}
	s.channelID = ch.ID
	return s.channelID, true
}

func (s *Svc) flush(batch []domain.Decision) {
	if s.ch == nil || len(batch) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()

	rows := make([][]any, len(batch))
	for i, d := range batch {
		rows[i] = []any{
			string(d.Kind), d.Score, d.MatchedQuestion, d.ProposedAnswer,
			d.ReviewID, d.ReviewerID, d.RoomID, d.At,
		}
	}
	if err := s.ch.Insert(ctx, s.cfg.Table, rows); err != nil {
		s.log.Warn().Err(err).Int("rows", len(rows)).Msg("decision batch insert failed")
	}
}

func formatLine(d domain.Decision) string {
	switch d.Kind {
	case domain.KindDirect:
		return fmt.Sprintf("direct match score=%.3f room=%s q=%q", d.Score, d.RoomID, d.MatchedQuestion)
	default:
		line := fmt.Sprintf("probable score=%.3f room=%s", d.Score, d.RoomID)
		if d.ReviewID != "" {
			line += fmt.Sprintf(" review=%s reviewer=%s", d.ReviewID, d.ReviewerID)
		}
		return line
	}
}
