package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/mhartig/TrainerDeskBack/internal/models"
)

var (
	ErrFormInactive = errors.New("registration form is not active")
	ErrNoRecipient  = errors.New("no notification recipient configured")
)

type registrationStore interface {
	GetForm(ctx context.Context, formID int64) (*models.RegistrationForm, error)
	CreateRegistration(ctx context.Context, formID int64, answers []byte) (*models.Registration, error)
	GetRegistration(ctx context.Context, registrationID int64) (*models.Registration, error)
	MarkNotified(ctx context.Context, registrationID int64) error
}

type ownerReader interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

type RegistrationService struct {
	repo        registrationStore
	userRepo    ownerReader
	sender      EmailSender
	notifyEmail string
}

// NewRegistrationService wires the public signup flow. notifyEmail, when set,
// overrides the form owner's account email as notification recipient.
func NewRegistrationService(repo registrationStore, userRepo ownerReader, sender EmailSender, notifyEmail string) *RegistrationService {
	return &RegistrationService{
		repo:        repo,
		userRepo:    userRepo,
		sender:      sender,
		notifyEmail: notifyEmail,
	}
}

// Submit stores a submission against an active form. Notification is a
// separate step so a failed mail never loses the registration itself.
func (s *RegistrationService) Submit(ctx context.Context, formID int64, answers json.RawMessage) (*models.Registration, error) {
	form, err := s.repo.GetForm(ctx, formID)
	if err != nil {
		return nil, err
	}
	if !form.Active {
		return nil, ErrFormInactive
	}
	if !json.Valid(answers) || len(answers) == 0 {
		return nil, fmt.Errorf("%w: answers must be a JSON object", ErrInvalidInput)
	}
	return s.repo.CreateRegistration(ctx, form.ID, answers)
}

// Notify renders and sends the notification mail for a registration, then
// marks it notified. The flag is only set after the send succeeded, so a
// failed delivery keeps the registration eligible for a retry; invoking
// Notify again for an already-notified registration re-sends on purpose.
// Registrations belonging to another trainer's form look like they don't
// exist.
func (s *RegistrationService) Notify(ctx context.Context, ownerID, registrationID int64) (*models.Registration, error) {
	registration, err := s.repo.GetRegistration(ctx, registrationID)
	if err != nil {
		return nil, err
	}
	form, err := s.repo.GetForm(ctx, registration.FormID)
	if err != nil {
		return nil, err
	}
	if form.OwnerID != ownerID {
		return nil, pgx.ErrNoRows
	}

	recipient := s.notifyEmail
	if recipient == "" {
		owner, err := s.userRepo.GetByID(ctx, form.OwnerID)
		if err != nil {
			return nil, err
		}
		recipient = owner.Email
	}
	if recipient == "" {
		return nil, ErrNoRecipient
	}

	subject := fmt.Sprintf("New registration: %s", form.Title)
	body := renderRegistrationHTML(form, registration)
	if err := s.sender.Send(ctx, recipient, subject, body); err != nil {
		return nil, err
	}

	if err := s.repo.MarkNotified(ctx, registration.ID); err != nil {
		return nil, err
	}
	registration.Notified = true
	return registration, nil
}

func renderRegistrationHTML(form *models.RegistrationForm, registration *models.Registration) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<h2>New registration for %s</h2>", html.EscapeString(form.Title))
	fmt.Fprintf(&b, "<p>Submitted at %s</p>", registration.CreatedAt.Format("02.01.2006 15:04"))

	var answers map[string]any
	if err := json.Unmarshal(registration.Answers, &answers); err != nil || len(answers) == 0 {
		b.WriteString("<p>(no readable answers)</p>")
		return b.String()
	}

	keys := make([]string, 0, len(answers))
	for key := range answers {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	b.WriteString("<table>")
	for _, key := range keys {
		fmt.Fprintf(&b, "<tr><td><strong>%s</strong></td><td>%s</td></tr>",
			html.EscapeString(key),
			html.EscapeString(fmt.Sprintf("%v", answers[key])),
		)
	}
	b.WriteString("</table>")
	return b.String()
}
