package service

import (
	"context"
	"fmt"
	"strings"

	"faqrelay/internal/core/classify"
	perr "faqrelay/internal/platform/errors"

	decdom "faqrelay/internal/services/decisionlog/domain"
	dom "faqrelay/internal/services/intake/domain"
	revdom "faqrelay/internal/services/review/domain"
)

// dedupPrefix namespaces message ids in the shared KV
const dedupPrefix = "faqrelay:msg:"

// HandleMessage classifies one inbound message and runs the matching
// flow: answer directly, escalate through review, or drop
func (s *Svc) HandleMessage(ctx context.Context, ev dom.MessageEvent) (dom.Result, error) {
	if ev.SenderIsBot {
		return dom.Result{Outcome: dom.OutcomeIgnored}, nil
	}
	if strings.TrimSpace(ev.MessageID) == "" || strings.TrimSpace(ev.RoomID) == "" {
		return dom.Result{}, perr.InvalidArgf("message event requires message_id and room_id")
	}

	unlock := s.locks.Lock(ev.RoomID)
	defer unlock()

	if s.suppressed(ctx, ev.MessageID) {
		return dom.Result{Outcome: dom.OutcomeDuplicate}, nil
	}

	cls := s.p.Corpus.Snapshot()
	res := cls.Classify(ev.Text)

	switch res.Kind {
	case classify.KindDirect:
		return s.answerDirect(ctx, ev, res), nil
	case classify.KindProbable:
		return s.escalate(ctx, ev, res, cls.Entries())
	default:
		return dom.Result{Outcome: dom.OutcomeDropped, Score: res.Score}, nil
	}
}

// suppressed claims the message id in the dedup window. Best effort: a
// KV failure lets the message through rather than stalling intake
func (s *Svc) suppressed(ctx context.Context, messageID string) bool {
	if !s.cfg.Dedup || s.kv == nil {
		return false
	}
	stored, err := s.kv.SetNX(ctx, dedupPrefix+messageID, "1", s.cfg.DedupTTL)
	if err != nil {
		s.log.Warn().Err(err).Str("message_id", messageID).Msg("dedup check failed, letting message through")
		return false
	}
	return !stored
}

func (s *Svc) answerDirect(ctx context.Context, ev dom.MessageEvent, res classify.Result) dom.Result {
	if err := s.p.Notifier.Deliver(ctx, ev.RoomID, res.Entry.Answer); err != nil {
		s.log.Error().Err(err).
			Str("room_id", ev.RoomID).
			Str("message_id", ev.MessageID).
			Msg("direct answer delivery failed")
	}
	s.p.Decisions.Record(ctx, decdom.Decision{
		Kind:            decdom.KindDirect,
		Score:           res.Score,
		MatchedQuestion: res.Entry.Question,
		ProposedAnswer:  res.Entry.Answer,
		RoomID:          ev.RoomID,
	})
	return dom.Result{Outcome: dom.OutcomeAnswered, Score: res.Score, Answer: res.Entry.Answer}
}

func (s *Svc) escalate(ctx context.Context, ev dom.MessageEvent, res classify.Result, corpus []classify.Entry) (dom.Result, error) {
	gen := s.p.Generator.Check(ctx, ev.Text, corpus)
	if !gen.Matched {
		if gen.Err != "" {
			s.log.Warn().
				Str("err", gen.Err).
				Str("message_id", ev.MessageID).
				Msg("generation failed, message dropped")
		}
		s.p.Decisions.Record(ctx, decdom.Decision{
			Kind: decdom.KindProbable, Score: res.Score, RoomID: ev.RoomID,
		})
		return dom.Result{Outcome: dom.OutcomeDropped, Score: res.Score}, nil
	}

	if !s.cfg.ReviewMode {
		if err := s.p.Notifier.Deliver(ctx, ev.RoomID, gen.Answer); err != nil {
			s.log.Error().Err(err).Str("room_id", ev.RoomID).Msg("generated answer delivery failed")
		}
		s.p.Decisions.Record(ctx, decdom.Decision{
			Kind:            decdom.KindProbable,
			Score:           res.Score,
			MatchedQuestion: gen.DetectedQuestion,
			ProposedAnswer:  gen.Answer,
			RoomID:          ev.RoomID,
		})
		return dom.Result{Outcome: dom.OutcomeAnswered, Score: res.Score, Answer: gen.Answer}, nil
	}

	reviewers := s.resolveReviewers(ctx)
	if len(reviewers) == 0 {
		return dom.Result{}, perr.NotFoundf("no reviewer could be resolved")
	}

	names := make([]string, len(reviewers))
	for i, r := range reviewers {
		names[i] = r.username
	}
	chosen, err := s.p.Selector.SelectNext(ctx, names)
	if err != nil {
		return dom.Result{}, err
	}

	rv, err := s.p.Reviews.Create(ctx, revdom.NewReview{
		SourceMessageID:  ev.MessageID,
		RoomID:           ev.RoomID,
		RoomName:         ev.RoomName,
		SenderID:         ev.SenderID,
		SenderUsername:   ev.SenderUsername,
		OriginalMessage:  ev.Text,
		DetectedQuestion: gen.DetectedQuestion,
		ProposedAnswer:   gen.Answer,
		AssignedTo:       chosen,
	})
	if err != nil {
		return dom.Result{}, err
	}

	s.notifyReviewer(ctx, rv, reviewers, chosen)
	s.p.Decisions.Record(ctx, decdom.Decision{
		Kind:            decdom.KindProbable,
		Score:           res.Score,
		MatchedQuestion: gen.DetectedQuestion,
		ProposedAnswer:  gen.Answer,
		ReviewID:        rv.ID,
		ReviewerID:      chosen,
		RoomID:          ev.RoomID,
	})
	return dom.Result{
		Outcome:  dom.OutcomeEscalated,
		Score:    res.Score,
		ReviewID: rv.ID,
		Reviewer: chosen,
	}, nil
}

type resolvedReviewer struct {
	username string
	id       string
}

// resolveReviewers maps configured usernames to chat identities, keeping
// the configured order and skipping names the gateway does not know
func (s *Svc) resolveReviewers(ctx context.Context) []resolvedReviewer {
	out := make([]resolvedReviewer, 0, len(s.cfg.Reviewers))
	for _, name := range s.cfg.Reviewers {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		id, err := s.p.Directory.Resolve(ctx, name)
		if err != nil {
			s.log.Warn().Err(err).Str("reviewer", name).Msg("reviewer did not resolve, skipping")
			continue
		}
		out = append(out, resolvedReviewer{username: name, id: id})
	}
	return out
}

func (s *Svc) notifyReviewer(ctx context.Context, rv revdom.Review, reviewers []resolvedReviewer, chosen string) {
	var id string
	for _, r := range reviewers {
		if r.username == chosen {
			id = r.id
			break
		}
	}
	if id == "" {
		return
	}
	if err := s.p.Notifier.NotifyUser(ctx, id, reviewCard(rv)); err != nil {
		s.log.Warn().Err(err).
			Str("review_id", rv.ID).
			Str("reviewer", chosen).
			Msg("reviewer notification failed")
	}
}

func reviewCard(rv revdom.Review) string {
	room := rv.RoomName
	if room == "" {
		room = rv.RoomID
	}
	return fmt.Sprintf(
		"Review %s needs a verdict.\nFrom @%s in %s:\n> %s\nDetected question: %s\nProposed answer:\n%s",
		rv.ID, rv.SenderUsername, room, rv.OriginalMessage, rv.DetectedQuestion, rv.ProposedAnswer,
	)
}
