package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shiftbook-dev/shiftbook/backend/internal/domain"
)

func (h *Handler) PublishWeek(w http.ResponseWriter, r *http.Request) {
	var req struct {
		WeekStart string `json:"weekStart" validate:"required,datetime=2006-01-02"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	summary, err := h.scheduler.PublishWeek(r.Context(), req.WeekStart)
	if err != nil {
		h.schedulerError(w, r, err)
		return
	}

	h.notifyWeekPublished(r.Context(), summary)

	h.successResponse(w, r, "week published", summary)
}

// notifyWeekPublished fans a mail message out to every active user. Delivery
// is best effort: the week is already locked, so a queue hiccup must not fail
// the request.
func (h *Handler) notifyWeekPublished(ctx context.Context, summary *domain.WeekSummary) {
	users, err := h.repository.GetAllActiveUsers(ctx)
	if err != nil {
		slog.Error("unable to load users for publish notification", "error", err)
		return
	}

	for _, user := range users {
		mailMessage := domain.MailMessage{
			Type: "week_published",
			To:   user.Email,
			Data: domain.WeekPublishedMailData{
				FullName:  user.FullName,
				StartDate: summary.StartDate,
				EndDate:   summary.EndDate,
			},
		}

		mailData, err := json.Marshal(mailMessage)
		if err != nil {
			slog.Error("unable to serialize publish notification", "error", err)
			continue
		}

		publishCtx, cancel := context.WithTimeout(ctx, time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
		err = h.mailChannel.PublishWithContext(
			publishCtx,
			"",
			"notification_queue",
			true,
			false,
			amqp.Publishing{
				ContentType: "application/json",
				Body:        mailData,
			},
		)
		cancel()
		if err != nil {
			slog.Error("unable to queue publish notification", "to", user.Email, "error", err)
		}
	}
}
