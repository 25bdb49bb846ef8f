// Package notify carries transient user notices ("toasts") from handlers to
// the rendered page, including across a redirect.
package notify

import "strings"

// Kind classifies notice presentation.
type Kind string

const (
	KindSuccess Kind = "success"
	KindInfo    Kind = "info"
	KindWarning Kind = "warning"
	KindDanger  Kind = "danger"
)

// Notice is one message shown to the user.
type Notice struct {
	Kind    Kind   `json:"kind"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

func Success(title, message string) Notice { return Notice{Kind: KindSuccess, Title: title, Message: message} }
func Info(title, message string) Notice    { return Notice{Kind: KindInfo, Title: title, Message: message} }
func Warning(title, message string) Notice { return Notice{Kind: KindWarning, Title: title, Message: message} }
func Danger(title, message string) Notice  { return Notice{Kind: KindDanger, Title: title, Message: message} }

// Class returns the toast colour class. Unknown kinds fall back to info.
func (n Notice) Class() string {
	switch n.Kind {
	case KindSuccess:
		return "text-bg-success"
	case KindDanger:
		return "text-bg-danger"
	case KindWarning:
		return "text-bg-warning"
	default:
		return "text-bg-info"
	}
}

// IsZero reports whether n carries nothing to show.
func (n Notice) IsZero() bool {
	return strings.TrimSpace(n.Title) == "" && strings.TrimSpace(n.Message) == ""
}

// MessageOr returns message, or fallback when message is blank.
func MessageOr(message, fallback string) string {
	if strings.TrimSpace(message) == "" {
		return fallback
	}
	return message
}
