package handler

import (
	"embed"
	"html/template"
	"strings"
	"sync"

	"github.com/givers/contactform/internal/model"
	"github.com/microcosm-cc/bluemonday"
)

//go:embed templates/page.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/page.html"))

// honeypotField is the form field name of the hidden spam trap.
const honeypotField = "website"

// formState is what the current request contributes to the page.
type formState struct {
	Input       model.SubmissionInput
	Errors      []string
	SubmitError string
	Submitted   bool
}

// pageData is the view model rendered by templates/page.html.
type pageData struct {
	Name    string
	Email   string
	Message string

	HoneypotField    string
	MaxMessageLength int

	Errors      []string
	SubmitError string
	Notice      string
	ReadError   string

	Rows  []rowView
	Total int
}

type rowView struct {
	Timestamp string
	Name      string
	Email     string
	Message   template.HTML
}

// buildPage derives the page from the stored submissions and the current
// form state. It holds no state of its own.
func buildPage(subs []*model.Submission, readErr error, form formState, maxMessageLength int) pageData {
	data := pageData{
		Name:             form.Input.Name,
		Email:            form.Input.Email,
		Message:          form.Input.Message,
		HoneypotField:    honeypotField,
		MaxMessageLength: maxMessageLength,
		Errors:           form.Errors,
		SubmitError:      form.SubmitError,
		Total:            len(subs),
	}
	if form.Submitted {
		data.Notice = "Thanks! Your message has been received."
	}
	if readErr != nil {
		data.ReadError = "Could not load submissions: " + readErr.Error()
	}

	data.Rows = make([]rowView, 0, len(subs))
	for _, s := range subs {
		data.Rows = append(data.Rows, rowView{
			Timestamp: s.Timestamp,
			Name:      s.Name,
			Email:     s.Email,
			Message:   renderMessage(s.Message),
		})
	}
	return data
}

var (
	messagePolicyOnce sync.Once
	messagePolicy     *bluemonday.Policy
)

// renderMessage escapes a stored message and keeps its line breaks as <br>.
func renderMessage(raw string) template.HTML {
	escaped := template.HTMLEscapeString(raw)
	escaped = strings.ReplaceAll(escaped, "\r\n", "\n")
	escaped = strings.ReplaceAll(escaped, "\n", "<br>")
	return template.HTML(messageSanitizer().Sanitize(escaped))
}

func messageSanitizer() *bluemonday.Policy {
	messagePolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("br")
		messagePolicy = policy
	})
	return messagePolicy
}
