package services

import (
	"fmt"
	"net/smtp"
	"strings"

	"boqportal/models"

	"golang.org/x/net/html"
)

// convertHTMLToText converts HTML content to plain text for email sending
func convertHTMLToText(htmlContent string) string {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return htmlContent
	}

	var text strings.Builder
	var extractText func(*html.Node)
	extractText = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			text.WriteString(n.Data)
		case html.ElementNode:
			switch n.Data {
			case "p", "div", "br", "h1", "h2", "h3", "table", "tr":
				text.WriteString("\n")
			case "li":
				text.WriteString("- ")
			case "td", "th":
				text.WriteString(" | ")
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			extractText(child)
		}
	}
	extractText(doc)

	result := text.String()
	for strings.Contains(result, "\n\n\n") {
		result = strings.ReplaceAll(result, "\n\n\n", "\n\n")
	}
	return strings.TrimSpace(result)
}

// SMTPConfig holds outgoing mail settings.
type SMTPConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	From     string

	// PortalURL prefixes links in notifications; empty leaves them out.
	PortalURL string
}

// Notifier tells vendors about review outcomes.
type Notifier interface {
	NotifyPerformaStatus(p models.PerformaGorm, projectName string) error
}

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// EmailService sends performa status notifications over SMTP
type EmailService struct {
	cfg      SMTPConfig
	sendMail sendMailFunc
}

// NewEmailService creates a new email service instance
func NewEmailService(cfg SMTPConfig) *EmailService {
	return &EmailService{cfg: cfg, sendMail: smtp.SendMail}
}

const performaStatusSubject = "Performa {{reference}} {{status}}"

const performaStatusBody = `<div>
<p>Dear {{vendor_name}},</p>
<p>Your performa <b>{{reference}}</b> for project <b>{{project_name}}</b> ({{category}}) has been <b>{{status}}</b>.</p>
<table>
<tr><th>Declared total</th><td>{{total_amount}} {{currency}}</td></tr>
<tr><th>Reviewed by</th><td>{{reviewed_by}}</td></tr>
<tr><th>Remarks</th><td>{{remarks}}</td></tr>
</table>
<p>{{details}}</p>
<p>Regards,<br>Procurement team</p>
</div>`

// NotifyPerformaStatus e-mails the vendor contact of p. Performas without an e-mail are skipped.
func (es *EmailService) NotifyPerformaStatus(p models.PerformaGorm, projectName string) error {
	if p.VendorEmail == "" {
		return nil
	}
	reviewer := ""
	if p.ReviewedBy != nil {
		reviewer = *p.ReviewedBy
	}
	variables := map[string]string{
		"vendor_name":  p.VendorName,
		"reference":    p.Reference,
		"project_name": projectName,
		"category":     p.EffectiveCategory(),
		"status":       strings.ToLower(strings.ReplaceAll(p.Status, "_", " ")),
		"total_amount": p.TotalAmount,
		"currency":     p.Currency,
		"reviewed_by":  reviewer,
		"remarks":      p.Remarks,
		"details":      "",
	}
	if es.cfg.PortalURL != "" {
		variables["details"] = fmt.Sprintf("Details: %s/api/performas/%d", strings.TrimRight(es.cfg.PortalURL, "/"), p.ID)
	}

	subject := processTemplate(performaStatusSubject, variables)
	body := convertHTMLToText(processTemplate(performaStatusBody, variables))
	return es.send(p.VendorEmail, subject, body)
}

// processTemplate replaces {{key}} placeholders in a single pass; values are
// HTML-escaped and never expanded themselves.
func processTemplate(templateStr string, variables map[string]string) string {
	pairs := make([]string, 0, 2*len(variables))
	for key, value := range variables {
		pairs = append(pairs, fmt.Sprintf("{{%s}}", key), html.EscapeString(value))
	}
	return strings.NewReplacer(pairs...).Replace(templateStr)
}

func (es *EmailService) send(to, subject, body string) error {
	var auth smtp.Auth
	if es.cfg.User != "" {
		auth = smtp.PlainAuth("", es.cfg.User, es.cfg.Password, es.cfg.Host)
	}

	headers := []string{
		"From: " + es.cfg.From,
		"To: " + to,
		"Subject: " + subject,
		"Content-Type: text/plain; charset=UTF-8",
		"",
		body,
	}
	msg := []byte(strings.Join(headers, "\r\n") + "\r\n")

	if err := es.sendMail(es.cfg.Host+":"+es.cfg.Port, auth, es.cfg.From, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	return nil
}
