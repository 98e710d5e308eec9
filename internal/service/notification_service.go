package service

import (
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/saiindkan/sweets-n-snacks-production/internal/domain"
)

// NotificationService renders and dispatches transactional email. It is the
// single dispatch point for order confirmations: nothing else in the system
// sends them.
type NotificationService struct {
	mailer   Mailer
	siteName string
	siteURL  string
}

func NewNotificationService(mailer Mailer, siteName, siteURL string) *NotificationService {
	return &NotificationService{
		mailer:   mailer,
		siteName: siteName,
		siteURL:  siteURL,
	}
}

func (s *NotificationService) SendOrderConfirmation(order *domain.Order) error {
	subject := fmt.Sprintf("Order Confirmation #%s - %s", order.ID, s.siteName)

	html, err := renderOrderConfirmation(order, s.siteName)
	if err != nil {
		return fmt.Errorf("confirmation template error: %v", err)
	}

	messageID, err := s.mailer.Send(order.CustomerEmail, subject, html, HTMLToText(html))
	if err != nil {
		return err
	}

	log.Printf("Order confirmation sent: OrderID=%s, MessageID=%s", order.ID, messageID)
	return nil
}

func (s *NotificationService) SendWelcome(email, name string) error {
	subject := fmt.Sprintf("Welcome to %s!", s.siteName)

	html, err := renderWelcome(name, s.siteName, s.siteURL)
	if err != nil {
		return fmt.Errorf("welcome template error: %v", err)
	}

	messageID, err := s.mailer.Send(email, subject, html, HTMLToText(html))
	if err != nil {
		return err
	}

	log.Printf("Welcome email sent: To=%s, MessageID=%s", email, messageID)
	return nil
}

// Send relays a fully rendered message, filling in the text part from the
// HTML when the caller did not provide one.
func (s *NotificationService) Send(to, subject, html, text string) (string, error) {
	if text == "" {
		text = HTMLToText(html)
	}
	return s.mailer.Send(to, subject, html, text)
}

var (
	tagPattern = regexp.MustCompile(`<[^>]*>`)
	entities   = strings.NewReplacer(
		"&nbsp;", " ",
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&#34;", `"`,
		"&#39;", "'",
	)
)

// HTMLToText strips markup for the plain-text alternative part.
func HTMLToText(html string) string {
	return strings.TrimSpace(entities.Replace(tagPattern.ReplaceAllString(html, "")))
}
