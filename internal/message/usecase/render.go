package usecase

import (
	"strings"

	messagedomain "mailflow-backend/internal/message/domain"
	"mailflow-backend/pkg/mailer"
)

// splitRecipients parses a delimited address list: entries are split on
// commas and semicolons, trimmed, and empty entries dropped.
func splitRecipients(list string) []string {
	var out []string
	for _, part := range strings.FieldsFunc(list, func(r rune) bool {
		return r == ',' || r == ';'
	}) {
		if addr := strings.TrimSpace(part); addr != "" {
			out = append(out, addr)
		}
	}
	return out
}

// composeBody folds the optional header and footer around the body. HTML
// parts are concatenated as-is; plain-text parts get blank-line separators.
func composeBody(m *messagedomain.Message) string {
	parts := make([]string, 0, 3)
	if m.Header != "" {
		parts = append(parts, m.Header)
	}
	parts = append(parts, m.Body)
	if m.Footer != "" {
		parts = append(parts, m.Footer)
	}

	if m.IsBodyHTML {
		return strings.Join(parts, "")
	}
	return strings.Join(parts, "\n\n")
}

// transportPriority maps importance to the conventional X-Priority scale
func transportPriority(i messagedomain.Importance) int {
	switch i {
	case messagedomain.ImportanceHigh:
		return 1
	case messagedomain.ImportanceLow:
		return 5
	default:
		return 3
	}
}

// render prepares a message for the transport
func render(m *messagedomain.Message) *mailer.RenderedMessage {
	return &mailer.RenderedMessage{
		From:     m.FromAddress,
		To:       splitRecipients(m.ToAddresses),
		CC:       splitRecipients(m.CCAddresses),
		BCC:      splitRecipients(m.BCCAddresses),
		Subject:  m.Subject,
		Body:     composeBody(m),
		HTML:     m.IsBodyHTML,
		Priority: transportPriority(m.Importance),
	}
}
