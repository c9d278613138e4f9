package model

import "strings"

// TimestampLayout is the on-disk format of Submission.Timestamp (local clock, second precision).
const TimestampLayout = "2006-01-02 15:04:05"

// Store column names, in their fixed order.
const (
	ColumnTimestamp = "Timestamp"
	ColumnName      = "Name"
	ColumnEmail     = "Email"
	ColumnMessage   = "Message"
)

// Columns is the header row of the submission store.
var Columns = []string{ColumnTimestamp, ColumnName, ColumnEmail, ColumnMessage}

// Submission is one stored contact form entry. A field whose column is
// missing from the store reads back as the empty string.
type Submission struct {
	Timestamp string `json:"timestamp"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Message   string `json:"message"`
}

// Fields returns the submission's values in column order.
func (s *Submission) Fields() []string {
	return []string{s.Timestamp, s.Name, s.Email, s.Message}
}

// SubmissionInput carries the raw form values before validation.
// Honeypot is the hidden field that humans never fill in.
type SubmissionInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Message  string `json:"message"`
	Honeypot string `json:"website"`
}

// Normalize converts line breaks to "\n", trims whitespace from every field
// and lower-cases the email. Browsers post textarea line breaks as CRLF, which
// the CSV reader would not give back unchanged.
func (in *SubmissionInput) Normalize() {
	in.Name = strings.TrimSpace(NormalizeNewlines(in.Name))
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Message = strings.TrimSpace(NormalizeNewlines(in.Message))
	in.Honeypot = strings.TrimSpace(in.Honeypot)
}

var newlineReplacer = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// NormalizeNewlines rewrites CRLF and lone CR line breaks as LF.
func NormalizeNewlines(s string) string {
	if !strings.Contains(s, "\r") {
		return s
	}
	return newlineReplacer.Replace(s)
}
