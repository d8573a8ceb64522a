package notifier

import (
	"fmt"
	"time"

	"github.com/Monika-msk/vtu-internyet/internal/model"
	"github.com/Monika-msk/vtu-internyet/internal/render"
)

// SendTestMessage sends a dummy listing notification to verify delivery works.
func SendTestMessage(m model.Mailer, r *render.Renderer, recipient string) error {
	testListing := model.Listing{
		ID:          "test-001",
		Title:       "Test Notification — Delivery Verified",
		Company:     "Internyet Test",
		Location:    "Everywhere",
		Description: "If you are reading this, the watcher can reach your inbox.",
		WorkMode:    "remote",
		Type:        "internship",
		Duration:    "3 months",
		Stipend:     "Paid",
		Link:        "https://vtuinternyet.in",
		ObservedAt:  time.Now(),
	}
	msg, err := r.Render([]model.Listing{testListing})
	if err != nil {
		return fmt.Errorf("rendering test message: %w", err)
	}
	return m.Send(recipient, msg.Subject, msg.HTMLBody)
}
