package service

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/givers/contactform/internal/model"
)

// Validation messages shown to the user.
const (
	MsgNameRequired    = "Please enter your name"
	MsgInvalidEmail    = "Please enter a valid email"
	MsgMessageRequired = "Please enter a message"
	MsgGeneric         = "Something went wrong. Please try again."
)

// Validate checks a raw form submission and returns every failure message,
// in form order. An empty result means the input may be submitted.
// A filled honeypot yields the generic message, indistinguishable from any
// other validation failure.
func Validate(in model.SubmissionInput, maxMessageLength int) []string {
	in.Normalize()

	var errs []string
	if in.Name == "" {
		errs = append(errs, MsgNameRequired)
	}
	if !validEmail(in.Email) {
		errs = append(errs, MsgInvalidEmail)
	}
	switch n := utf8.RuneCountInString(in.Message); {
	case n == 0:
		errs = append(errs, MsgMessageRequired)
	case maxMessageLength > 0 && n > maxMessageLength:
		errs = append(errs, fmt.Sprintf("Message must be at most %d characters", maxMessageLength))
	}
	if in.Honeypot != "" {
		errs = append(errs, MsgGeneric)
	}
	return errs
}

// validEmail requires an "@" with a "." somewhere after the last "@".
func validEmail(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return false
	}
	return strings.Contains(email[at+1:], ".")
}
