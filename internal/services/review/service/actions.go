package service

import (
	"context"
	"fmt"
	"strings"

	perr "faqrelay/internal/platform/errors"

	dom "faqrelay/internal/services/review/domain"
)

// Apply runs one reviewer action through the transition table.
// The write is guarded on the status and version read here, so two
// racing approvals resolve to exactly one winner and one delivery
func (s *Svc) Apply(ctx context.Context, req dom.ActionRequest) (dom.Outcome, error) {
	if !dom.ValidAction(req.Action) {
		return dom.Outcome{}, perr.InvalidArgf("unknown action %q", req.Action)
	}
	text := strings.TrimSpace(req.Text)
	if req.Action == dom.ActionSubmitEdit && text == "" {
		return dom.Outcome{}, perr.InvalidArgf("submit requires replacement text")
	}

	rv, err := s.Get(ctx, req.ReviewID)
	if err != nil {
		return dom.Outcome{}, err
	}

	to, ok := dom.Next(rv.Status, req.Action)
	if !ok {
		return dom.Outcome{}, perr.Conflictf("action %s not allowed in state %s", req.Action, rv.Status)
	}

	var newAnswer *string
	if req.Action == dom.ActionSubmitEdit {
		newAnswer = &text
	}

	updated, won, err := s.repo.UpdateGuarded(ctx, rv.ID, rv.Status, rv.Version, to, newAnswer)
	if err != nil {
		return dom.Outcome{}, perr.Wrap(err, perr.ErrorCodeDB, "review transition")
	}
	if !won {
		return dom.Outcome{}, perr.Conflictf("review %s changed underfoot", rv.ID)
	}

	s.log.Info().
		Str("review_id", updated.ID).
		Str("action", string(req.Action)).
		Str("from", string(rv.Status)).
		Str("to", string(updated.Status)).
		Str("reviewer_id", req.ReviewerID).
		Msg("review transition applied")

	out := dom.Outcome{Review: updated}
	if dom.Delivers(req.Action) {
		out.Delivered, out.DeliveryErr = s.deliver(ctx, updated, req.ReviewerID)
	}
	return out, nil
}

// deliver posts the approved answer to the source room and confirms the
// outcome to the acting reviewer. Failures never roll the transition back
func (s *Svc) deliver(ctx context.Context, rv dom.Review, reviewerID string) (bool, string) {
	if s.notify == nil {
		return false, "notifier not configured"
	}

	if err := s.notify.Deliver(ctx, rv.RoomID, rv.ProposedAnswer); err != nil {
		s.log.Error().Err(err).
			Str("review_id", rv.ID).
			Str("room_id", rv.RoomID).
			Msg("answer delivery failed")
		s.confirm(ctx, reviewerID,
			fmt.Sprintf("Review %s approved but posting to %s failed: %v", rv.ID, roomLabel(rv), err))
		return false, err.Error()
	}

	s.confirm(ctx, reviewerID,
		fmt.Sprintf("Review %s approved, answer posted to %s.", rv.ID, roomLabel(rv)))
	return true, ""
}

func (s *Svc) confirm(ctx context.Context, reviewerID, text string) {
	if reviewerID == "" {
		return
	}
	if err := s.notify.NotifyUser(ctx, reviewerID, text); err != nil {
		s.log.Warn().Err(err).Str("reviewer_id", reviewerID).Msg("reviewer confirmation failed")
	}
}

func roomLabel(rv dom.Review) string {
	if rv.RoomName != "" {
		return rv.RoomName
	}
	return rv.RoomID
}
