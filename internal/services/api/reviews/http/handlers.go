// Package http provides http transport for review reads and verdicts
package http

import (
	stdhttp "net/http"

	"faqrelay/internal/modkit/httpkit"
	"faqrelay/internal/services/api/reviews/domain"
	revdom "faqrelay/internal/services/review/domain"
)

// Register mounts the review endpoints on the given router
func Register(r httpkit.Router, reader revdom.Reader, actions revdom.Actions) {
	h := &handlers{reader: reader, actions: actions}

	httpkit.PostJSON[domain.GetInput](r, "/get", h.get)
	httpkit.PostJSON[domain.ListInput](r, "/list", h.list)

	httpkit.PostJSON[domain.ActionInput](r, "/approve", h.action(revdom.ActionApprove))
	httpkit.PostJSON[domain.ActionInput](r, "/reject", h.action(revdom.ActionReject))
	httpkit.PostJSON[domain.ActionInput](r, "/edit", h.action(revdom.ActionEdit))
	httpkit.PostJSON[domain.ActionInput](r, "/cancel", h.action(revdom.ActionCancelEdit))
	httpkit.PostJSON[domain.SubmitInput](r, "/submit", h.submit)
}

type handlers struct {
	reader  revdom.Reader
	actions revdom.Actions
}

// swagger:route POST /reviews/get Reviews reviewsGet
// @Summary Fetch one review by id
// @Tags Reviews
// @Accept json
// @Produce json
// @Param payload body domain.GetInput true "Review id"
// @Success 200 {object} domain.ReviewRow "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /reviews/get [post]
func (h *handlers) get(r *stdhttp.Request, in domain.GetInput) (any, error) {
	rv, err := h.reader.Get(r.Context(), in.ReviewID)
	if err != nil {
		return nil, err
	}
	return domain.Row(rv), nil
}

// swagger:route POST /reviews/list Reviews reviewsList
// @Summary List reviews newest first, keyset paged
// @Tags Reviews
// @Accept json
// @Produce json
// @Param payload body domain.ListInput true "Filter"
// @Success 200 {array} domain.ReviewRow "ok"
// @Router /reviews/list [post]
func (h *handlers) list(r *stdhttp.Request, in domain.ListInput) (any, error) {
	rows, err := h.reader.List(r.Context(), revdom.ListQuery{
		Status: revdom.Status(in.Status),
		Limit:  in.Limit,
		After:  in.After,
	})
	if err != nil {
		return nil, err
	}
	out := make([]domain.ReviewRow, len(rows))
	for i, rv := range rows {
		out[i] = domain.Row(rv)
	}
	return out, nil
}

// action builds the handler for the payload-free verdicts
//
// swagger:route POST /reviews/approve Reviews reviewsApprove
// @Summary Apply a reviewer verdict (approve, reject, edit, cancel)
// @Tags Reviews
// @Accept json
// @Produce json
// @Param payload body domain.ActionInput true "Verdict"
// @Success 200 {object} domain.ActionOutput "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Failure 409 {object} httpkit.Envelope "invalid state"
// @Router /reviews/approve [post]
func (h *handlers) action(a revdom.Action) func(*stdhttp.Request, domain.ActionInput) (any, error) {
	return func(r *stdhttp.Request, in domain.ActionInput) (any, error) {
		out, err := h.actions.Apply(r.Context(), revdom.ActionRequest{
			ReviewID:   in.ReviewID,
			Action:     a,
			ReviewerID: in.ReviewerID,
		})
		if err != nil {
			return nil, err
		}
		return outcome(out), nil
	}
}

// swagger:route POST /reviews/submit Reviews reviewsSubmit
// @Summary Submit the edited answer and approve
// @Tags Reviews
// @Accept json
// @Produce json
// @Param payload body domain.SubmitInput true "Replacement text"
// @Success 200 {object} domain.ActionOutput "ok"
// @Failure 409 {object} httpkit.Envelope "invalid state"
// @Router /reviews/submit [post]
func (h *handlers) submit(r *stdhttp.Request, in domain.SubmitInput) (any, error) {
	out, err := h.actions.Apply(r.Context(), revdom.ActionRequest{
		ReviewID:   in.ReviewID,
		Action:     revdom.ActionSubmitEdit,
		ReviewerID: in.ReviewerID,
		Text:       in.Text,
	})
	if err != nil {
		return nil, err
	}
	return outcome(out), nil
}

func outcome(o revdom.Outcome) domain.ActionOutput {
	return domain.ActionOutput{
		Review:        domain.Row(o.Review),
		Delivered:     o.Delivered,
		DeliveryError: o.DeliveryErr,
	}
}
