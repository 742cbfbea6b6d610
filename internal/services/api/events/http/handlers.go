// Package http provides http transport for inbound gateway events
package http

import (
	stdhttp "net/http"

	"faqrelay/internal/modkit/httpkit"
	"faqrelay/internal/services/api/events/domain"
	intakedom "faqrelay/internal/services/intake/domain"
)

// Register mounts the event webhook on the given router
func Register(r httpkit.Router, intake intakedom.Handler) {
	h := &handlers{intake: intake}
	httpkit.PostJSON[domain.MessageEventInput](r, "/message", h.message)
}

type handlers struct{ intake intakedom.Handler }

// swagger:route POST /events/message Events eventsMessage
// @Summary Run the intake pipeline for one inbound room message
// @Tags Events
// @Accept json
// @Produce json
// @Param payload body domain.MessageEventInput true "Message event"
// @Success 200 {object} domain.MessageEventOutput "ok"
// @Failure 404 {object} httpkit.Envelope "no reviewer resolvable"
// @Router /events/message [post]
func (h *handlers) message(r *stdhttp.Request, in domain.MessageEventInput) (any, error) {
	res, err := h.intake.HandleMessage(r.Context(), intakedom.MessageEvent{
		MessageID:      in.MessageID,
		RoomID:         in.RoomID,
		RoomName:       in.RoomName,
		SenderID:       in.SenderID,
		SenderUsername: in.SenderUsername,
		SenderIsBot:    in.SenderIsBot,
		Text:           in.Text,
	})
	if err != nil {
		return nil, err
	}
	return domain.MessageEventOutput{
		Outcome:  string(res.Outcome),
		Score:    res.Score,
		ReviewID: res.ReviewID,
		Reviewer: res.Reviewer,
		Answer:   res.Answer,
	}, nil
}
