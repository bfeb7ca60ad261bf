// Package outbound builds the links handed to the OS to open a chat or a
// mail client. Nothing is sent from here.
package outbound

import (
	"errors"
	"net/url"
	"strings"

	"github.com/Domenick1991/travelpro/internal/domain"
)

var (
	ErrNoPhone = errors.New("no phone number found in passenger details")
	ErrNoEmail = errors.New("no email address found in passenger details")
)

// WhatsAppURL keeps only the digits of phone.
func WhatsAppURL(phone, message string) (string, error) {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
	if digits == "" {
		return "", ErrNoPhone
	}
	return "https://wa.me/" + digits + "?text=" + escape(message), nil
}

func MailtoURL(email, subject, body string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", ErrNoEmail
	}
	q := url.Values{}
	if subject != "" {
		q.Set("subject", subject)
	}
	if body != "" {
		q.Set("body", body)
	}
	u := url.URL{Scheme: "mailto", Opaque: email}
	u.RawQuery = strings.ReplaceAll(q.Encode(), "+", "%20")
	return u.String(), nil
}

// BroadcastURL addresses every non-blank email as a blind copy so that
// recipients do not see each other.
func BroadcastURL(emails []string, subject string) (string, error) {
	var bcc []string
	for _, e := range emails {
		if e = strings.TrimSpace(e); e != "" {
			bcc = append(bcc, escapeAddress(e))
		}
	}
	if len(bcc) == 0 {
		return "", ErrNoEmail
	}
	link := "mailto:?bcc=" + strings.Join(bcc, ",")
	if subject != "" {
		link += "&subject=" + escape(subject)
	}
	return link, nil
}

// escapeAddress percent-encodes an address for a header field, keeping the
// @ readable.
func escapeAddress(addr string) string {
	return strings.ReplaceAll(escape(addr), "%40", "@")
}

// escape percent-encodes s with %20 for spaces; chat and mail clients do
// not read + as a space.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func FirstPassengerPhone(b domain.Booking) string {
	for _, p := range b.Passengers {
		if strings.TrimSpace(p.Phone) != "" {
			return p.Phone
		}
	}
	return ""
}

func FirstPassengerEmail(b domain.Booking) string {
	for _, p := range b.Passengers {
		if strings.TrimSpace(p.Email) != "" {
			return p.Email
		}
	}
	return ""
}
