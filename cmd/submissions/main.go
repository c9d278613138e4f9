package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/givers/contactform/internal/config"
	"github.com/givers/contactform/internal/logging"
	"github.com/givers/contactform/internal/model"
	"github.com/givers/contactform/internal/repository"
	"github.com/givers/contactform/internal/service"
	"github.com/givers/contactform/pkg/auth"
)

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: submissions <command>

Commands:
  list      print every stored submission and the total count
  add       fill in the contact form interactively
  export    write the store as CSV to stdout
  token     print a bearer token for the admin CSV export (needs ADMIN_SECRET)`)
	os.Exit(2)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	cfg, err := config.Load()
	if err != nil {
		logging.Setup("INFO")
		logging.Fatal("invalid configuration", "error", err)
	}
	logging.Setup(cfg.LogLevel)

	if os.Args[1] == "token" {
		if err := runToken(os.Stdout, cfg.AdminSecret); err != nil {
			logging.Fatal("token", "error", err)
		}
		return
	}

	ctx := context.Background()
	store, err := repository.Open(ctx, repository.Options{
		Backend:     cfg.StoreBackend,
		CSVPath:     cfg.StorePath,
		SQLitePath:  cfg.SQLitePath,
		DatabaseURL: cfg.DatabaseURL,
	})
	if err != nil {
		logging.Fatal("failed to open submission store", "backend", cfg.StoreBackend, "error", err)
	}
	defer store.Close()

	svc := service.NewSubmissionService(store, 0)

	switch os.Args[1] {
	case "list":
		err = runList(ctx, os.Stdout, svc)
	case "export":
		err = runExport(ctx, os.Stdout, svc)
	case "add":
		err = runAdd(ctx, os.Stdout, svc, cfg.MessageMaxLength)
	default:
		usage()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		store.Close()
		os.Exit(1)
	}
}

func runList(ctx context.Context, w io.Writer, svc service.SubmissionService) error {
	subs, err := svc.List(ctx)
	if err != nil {
		fmt.Fprintf(w, "Could not load submissions: %v\n", err)
	}
	_, werr := fmt.Fprintln(w, renderTable(subs))
	return werr
}

func runExport(ctx context.Context, w io.Writer, svc service.SubmissionService) error {
	subs, err := svc.List(ctx)
	if err != nil {
		return err
	}
	return repository.WriteCSV(w, subs)
}

func runToken(w io.Writer, secret string) error {
	if secret == "" {
		return errors.New("ADMIN_SECRET is not set")
	}
	_, err := fmt.Fprintln(w, auth.CreateToken(auth.AdminSubject, auth.SecretBytes(secret)))
	return err
}

func runAdd(ctx context.Context, w io.Writer, svc service.SubmissionService, maxLen int) error {
	var answers struct {
		Name    string `survey:"name"`
		Email   string `survey:"email"`
		Message string `survey:"message"`
	}
	questions := []*survey.Question{
		{Name: "name", Prompt: &survey.Input{Message: "Name"}, Validate: survey.Required},
		{Name: "email", Prompt: &survey.Input{Message: "Email"}, Validate: survey.Required},
		{
			Name:     "message",
			Prompt:   &survey.Multiline{Message: "Message", Help: fmt.Sprintf("At most %d characters", maxLen)},
			Validate: survey.ComposeValidators(survey.Required, survey.MaxLength(maxLen)),
		},
	}
	if err := survey.Ask(questions, &answers); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return errors.New("cancelled")
		}
		return err
	}

	in := model.SubmissionInput{Name: answers.Name, Email: answers.Email, Message: answers.Message}
	if errs := service.Validate(in, maxLen); len(errs) > 0 {
		return errors.New(strings.Join(errs, "\n"))
	}

	sub, err := svc.Submit(ctx, in)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "Saved submission from %s at %s\n", sub.Email, sub.Timestamp)
	return err
}

const messagePreviewLen = 60

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	totalStyle  = lipgloss.NewStyle().Bold(true)
)

// renderTable draws subs as a bordered table followed by the total count.
func renderTable(subs []*model.Submission) string {
	rows := make([][]string, 0, len(subs))
	for _, s := range subs {
		rows = append(rows, []string{s.Timestamp, s.Name, s.Email, preview(s.Message)})
	}

	headers := make([]string, len(model.Columns))
	for i, c := range model.Columns {
		headers[i] = headerStyle.Render(c)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#444444"))).
		StyleFunc(func(row, col int) lipgloss.Style { return cellStyle }).
		Headers(headers...).
		Rows(rows...)

	return lipgloss.JoinVertical(lipgloss.Left,
		t.Render(),
		totalStyle.Render(fmt.Sprintf("Total submissions: %d", len(subs))),
	)
}

// preview flattens a message onto one line and shortens it for the table.
func preview(msg string) string {
	msg = strings.Join(strings.Fields(msg), " ")
	if utf8.RuneCountInString(msg) <= messagePreviewLen {
		return msg
	}
	r := []rune(msg)
	return string(r[:messagePreviewLen-1]) + "…"
}
