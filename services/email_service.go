package services

import (
	"errors"
	"fmt"
	"mime"
	"net/smtp"
	"strings"

	"ledquote/config"
	"ledquote/models"

	"golang.org/x/net/html"
)

// ErrMailDisabled is returned when no SMTP server is configured.
var ErrMailDisabled = errors.New("SMTP is not configured")

const quoteEmailSubject = "Votre devis écran LED {{reference}}"

const quoteEmailTemplate = `<html><body>
<p>Bonjour {{client_name}},</p>
<p>Veuillez trouver ci-dessous l'estimation de votre projet d'écran LED.</p>
<p>{{summary}}</p>
<h3>Configuration</h3>
<table>
<tr><td>Type d'écran</td><td>{{screen_type}}</td></tr>
<tr><td>Dimensions réelles</td><td>{{actual_width}} m × {{actual_height}} m</td></tr>
<tr><td>Dalles</td><td>{{panel_layout}} ({{total_panels}} au total)</td></tr>
<tr><td>Résolution par écran</td><td>{{resolution}} pixels</td></tr>
</table>
<p>{{special_info}}</p>
<h3>Détail du prix</h3>
<table>
{{items}}
</table>
<p>Total estimé: {{total_price}} HT</p>
<p>{{quote_link}}</p>
<p>Cette estimation est indicative et ne constitue pas une offre ferme.</p>
</body></html>`

// SendMailFunc matches smtp.SendMail.
type SendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// QuoteMailer sends quote summaries by email.
type QuoteMailer struct {
	smtp      config.SMTP
	publicURL string
	send      SendMailFunc
}

func NewQuoteMailer(cfg config.SMTP, publicURL string) *QuoteMailer {
	return &QuoteMailer{smtp: cfg, publicURL: publicURL, send: smtp.SendMail}
}

// QuoteEmail is a rendered quote message.
type QuoteEmail struct {
	Subject string
	Body    string
}

// RenderQuoteEmail fills the quote template and converts it to plain text.
func (m *QuoteMailer) RenderQuoteEmail(cfg models.Configuration, quote models.QuoteResult) QuoteEmail {
	var rows strings.Builder
	for _, item := range quote.Pricing.Items {
		fmt.Fprintf(&rows, "<tr><td>%s</td><td>%s × %s</td><td>%s</td></tr>\n",
			html.EscapeString(item.Description),
			FormatCount(int64(item.Quantity)),
			FormatPrice(item.UnitPrice),
			FormatPrice(item.Total))
	}

	link := ""
	if m.publicURL != "" && quote.Reference != "" {
		link = "Référence du devis: " + m.publicURL + "/quotes/" + quote.Reference
	}
	clientName := cfg.ClientName
	if clientName == "" {
		clientName = "Madame, Monsieur"
	}

	variables := map[string]string{
		"reference":     quote.Reference,
		"client_name":   html.EscapeString(clientName),
		"summary":       html.EscapeString(Summary(cfg)),
		"screen_type":   ScreenTypeLabel(cfg.ScreenType),
		"actual_width":  quote.Dimensions.ActualWidth,
		"actual_height": quote.Dimensions.ActualHeight,
		"panel_layout":  quote.Panels.Configuration,
		"total_panels":  FormatCount(int64(quote.Panels.Total)),
		"resolution":    FormatCount(quote.Resolution.PerScreen),
		"special_info":  html.EscapeString(quote.SpecialScreenInfo),
		"items":         rows.String(),
		"total_price":   FormatPrice(quote.Pricing.TotalPrice),
		"quote_link":    html.EscapeString(link),
	}
	return QuoteEmail{
		Subject: strings.TrimSpace(processTemplate(quoteEmailSubject, variables)),
		Body:    convertHTMLToText(processTemplate(quoteEmailTemplate, variables)),
	}
}

// SendQuote renders and sends the quote to the recipients.
func (m *QuoteMailer) SendQuote(to string, cc []string, cfg models.Configuration, quote models.QuoteResult) error {
	if !m.smtp.Enabled() {
		return ErrMailDisabled
	}
	email := m.RenderQuoteEmail(cfg, quote)
	return m.sendEmail(to, email.Subject, email.Body, cc)
}

// processTemplate replaces {{name}} placeholders in a single pass, so
// substituted values are never expanded again.
func processTemplate(templateStr string, variables map[string]string) string {
	pairs := make([]string, 0, 2*len(variables))
	for key, value := range variables {
		pairs = append(pairs, "{{"+key+"}}", value)
	}
	return strings.NewReplacer(pairs...).Replace(templateStr)
}

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
			text.WriteString(strings.Trim(n.Data, "\n"))
		case html.ElementNode:
			switch n.Data {
			case "p", "div", "br", "h1", "h2", "h3", "table", "tr":
				text.WriteString("\n")
			case "li":
				text.WriteString("• ")
			case "td", "th":
				if n.PrevSibling != nil {
					text.WriteString(" | ")
				}
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			extractText(child)
		}
	}
	extractText(doc)

	lines := strings.Split(text.String(), "\n")
	out := lines[:0]
	blank := false
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			if !blank && len(out) > 0 {
				out = append(out, "")
			}
			blank = true
			continue
		}
		blank = false
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}

// sendEmail sends an email using SMTP with optional CC
func (m *QuoteMailer) sendEmail(to, subject, body string, cc []string) error {
	var auth smtp.Auth
	if m.smtp.Username != "" {
		auth = smtp.PlainAuth("", m.smtp.Username, m.smtp.Password, m.smtp.Host)
	}

	toList := append([]string{to}, cc...)
	for _, addr := range toList {
		if strings.ContainsAny(addr, "\r\n") {
			return invalidInput("recipient %q contains a line break", addr)
		}
	}

	headers := []string{
		"From: " + m.smtp.From,
		"To: " + to,
	}
	if len(cc) > 0 {
		headers = append(headers, "Cc: "+strings.Join(cc, ", "))
	}
	headers = append(headers,
		"Subject: "+mime.QEncoding.Encode("utf-8", subject),
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=UTF-8",
		"",
		body,
	)
	msg := []byte(strings.Join(headers, "\r\n") + "\r\n")

	if err := m.send(m.smtp.Addr(), auth, m.smtp.From, toList, msg); err != nil {
		return fmt.Errorf("send quote email to %s: %w", to, err)
	}
	return nil
}
