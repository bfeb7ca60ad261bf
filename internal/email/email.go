package email

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/Domenick1991/travelpro/internal/kafka"
	"github.com/Domenick1991/travelpro/internal/outbound"
)

// Sender prepares the client notification for a booking event. Delivery is
// left to the agent's own mail or chat client, so the sender only writes the
// link it would open.
type Sender struct {
	out io.Writer
}

func NewSender() *Sender {
	return &Sender{out: os.Stdout}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	body := Body(event)
	subject := fmt.Sprintf("Booking %s: %s", event.PNR, event.Status)

	if link, err := outbound.MailtoURL(event.Email, subject, body); err == nil {
		fmt.Fprintf(s.out, "notify %s about %s for %s: %s\n", event.Email, event.Type, event.PNR, link)
		return nil
	}
	if link, err := outbound.WhatsAppURL(event.Phone, body); err == nil {
		fmt.Fprintf(s.out, "notify %s about %s for %s: %s\n", event.Phone, event.Type, event.PNR, link)
		return nil
	}
	fmt.Fprintf(s.out, "no contact for %s about %s, skipped\n", event.PNR, event.Type)
	return nil
}

func Body(event kafka.BookingEvent) string {
	switch event.Type {
	case "booking_created":
		return fmt.Sprintf("Dear %s, your booking %s is registered with status %s. Ticketing deadline: %s.",
			event.ClientName, event.PNR, event.Status, event.TicketingDeadline.Format("02/01/2006 15:04"))
	case "booking_status_changed":
		return fmt.Sprintf("Dear %s, your booking %s is now %s.", event.ClientName, event.PNR, event.Status)
	case "booking_deleted":
		return fmt.Sprintf("Dear %s, your booking %s has been removed.", event.ClientName, event.PNR)
	default:
		return fmt.Sprintf("Dear %s, there is an update on booking %s.", event.ClientName, event.PNR)
	}
}
