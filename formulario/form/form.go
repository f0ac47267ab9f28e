package form

import "time"

const (
	LayoutSingleColumn Layout = "single-column"
	LayoutTwoColumn    Layout = "two-column"
)

// Layout selects the column arrangement of the rendered form.
type Layout string

const (
	ThemeDefault Theme = "default"
	ThemeModern  Theme = "modern"
	ThemeMinimal Theme = "minimal"
)

// Theme selects the visual style of the rendered form.
type Theme string

// EmailNotification configures the notification sent when a form
// receives a submission.
type EmailNotification struct {
	Enabled    bool     `json:"enabled"`
	Recipients []string `json:"recipients"`
	Subject    string   `json:"subject"`
}

// Settings holds the submission behaviour of a form.
type Settings struct {
	SubmitButtonText         string             `json:"submitButtonText"`
	SuccessMessage           string             `json:"successMessage"`
	RedirectURL              string             `json:"redirectUrl,omitempty"`
	EmailNotification        *EmailNotification `json:"emailNotification,omitempty"`
	AllowMultipleSubmissions bool               `json:"allowMultipleSubmissions"`
	CaptchaEnabled           bool               `json:"captchaEnabled"`
	// SubmitLimit caps the number of accepted submissions.  Zero means
	// unlimited.
	SubmitLimit    int        `json:"submitLimit,omitempty"`
	AvailableFrom  *time.Time `json:"availableFrom,omitempty"`
	AvailableUntil *time.Time `json:"availableUntil,omitempty"`
}

// Design holds the presentation parameters of a form.
type Design struct {
	Layout          Layout `json:"layout"`
	Theme           Theme  `json:"theme"`
	BackgroundColor string `json:"backgroundColor"`
	TextColor       string `json:"textColor"`
	PrimaryColor    string `json:"primaryColor"`
}

// DefaultSettings returns the settings applied to a newly created form.
func DefaultSettings() Settings {
	return Settings{
		SubmitButtonText:         "Enviar",
		SuccessMessage:           "Formulário enviado com sucesso!",
		AllowMultipleSubmissions: true,
	}
}

// DefaultDesign returns the design applied to a newly created form.
func DefaultDesign() Design {
	return Design{
		Layout:          LayoutSingleColumn,
		Theme:           ThemeDefault,
		BackgroundColor: "#ffffff",
		TextColor:       "#1f2937",
		PrimaryColor:    "#2563eb",
	}
}

// Available reports whether the form accepts submissions at the given
// time with respect to the configured availability window.
func (s Settings) Available(now time.Time) bool {
	if s.AvailableFrom != nil && now.Before(*s.AvailableFrom) {
		return false
	}
	if s.AvailableUntil != nil && now.After(*s.AvailableUntil) {
		return false
	}
	return true
}
