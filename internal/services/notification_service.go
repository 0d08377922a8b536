package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/leadboxhq/leadbox-backend/internal/mailer"
	"github.com/leadboxhq/leadbox-backend/internal/metrics"
	"github.com/leadboxhq/leadbox-backend/internal/models"
)

// NotificationService mails the business owner about each new lead.
// Delivery is best-effort: a transport failure is logged and counted
// but never reaches the submitter.
type NotificationService struct {
	mail mailer.Mailer
}

func NewNotificationService(mail mailer.Mailer) *NotificationService {
	return &NotificationService{mail: mail}
}

// NotifyNewLead resolves the recipient (notification override, then
// account email) and sends the fixed-template message. Missing
// recipient means skip, not error.
func (s *NotificationService) NotifyNewLead(profile *models.BusinessProfile, lead *models.Lead) {
	to := profile.NotificationEmail
	if to == "" {
		to = profile.User.Email
	}
	if to == "" {
		metrics.NotificationsTotal.WithLabelValues("skipped").Inc()
		return
	}

	subject := "New lead for " + profile.BusinessName
	body := "A new lead was captured.\n" +
		"Name: " + lead.Name + "\n" +
		"Email: " + lead.Email + "\n" +
		"Phone: " + lead.Phone + "\n" +
		"Message: " + lead.Message + "\n"

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.mail.Send(ctx, to, subject, body); err != nil {
		metrics.NotificationsTotal.WithLabelValues("failed").Inc()
		slog.Error("lead notification failed", "error", err, "action", "notify_new_lead", "lead_id", lead.ID.String())
		return
	}
	metrics.NotificationsTotal.WithLabelValues("sent").Inc()
}
