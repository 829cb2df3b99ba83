package services

import (
	"context"
	"errors"
	"time"

	"github.com/mhartig/TrainerDeskBack/internal/billing"
	"github.com/mhartig/TrainerDeskBack/internal/models"
	"github.com/mhartig/TrainerDeskBack/pkg/utils"
)

var ErrNothingToInvoice = errors.New("no billable sessions or adjustments for this client and month")

// defaultInvoiceTemplate is used until the trainer stores a custom template
// on their profile.
const defaultInvoiceTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Invoice {{invoice_number}}</title></head>
<body>
<h1>Invoice {{invoice_number}}</h1>
<p>{{trainer_name}}<br>{{trainer_address}}</p>
<p>Billed to: {{client_name}}<br>Period: {{month}}<br>Date: {{invoice_date}}</p>
{{line_items}}
{{totals}}
<p>{{disclaimer}}</p>
<p>Please transfer to: {{iban}} &middot; Tax ID: {{tax_id}}</p>
</body>
</html>`

type monthSessionLister interface {
	ListByMonth(ctx context.Context, ownerID int64, month string) ([]models.TrainingSession, error)
}

type planMapReader interface {
	MapByOwner(ctx context.Context, ownerID int64) (map[int64]models.RatePlan, error)
}

type clientLister interface {
	ListByOwner(ctx context.Context, ownerID int64, includeArchived bool) ([]models.Client, error)
}

type adjustmentLister interface {
	ListByMonth(ctx context.Context, ownerID int64, month string) ([]models.MonthlyAdjustment, error)
}

type paymentLister interface {
	ListByMonth(ctx context.Context, ownerID int64, month string) ([]models.Payment, error)
}

type profileReader interface {
	GetByOwnerID(ctx context.Context, ownerID int64) (*models.TrainerProfile, error)
}

type InvoiceService struct {
	profileRepo    profileReader
	sessionRepo    monthSessionLister
	ratePlanRepo   planMapReader
	clientRepo     clientLister
	adjustmentRepo adjustmentLister
	paymentRepo    paymentLister
}

func NewInvoiceService(
	profileRepo profileReader,
	sessionRepo monthSessionLister,
	ratePlanRepo planMapReader,
	clientRepo clientLister,
	adjustmentRepo adjustmentLister,
	paymentRepo paymentLister,
) *InvoiceService {
	return &InvoiceService{
		profileRepo:    profileRepo,
		sessionRepo:    sessionRepo,
		ratePlanRepo:   ratePlanRepo,
		clientRepo:     clientRepo,
		adjustmentRepo: adjustmentRepo,
		paymentRepo:    paymentRepo,
	}
}

// MonthlyOverview is the month's accounting picture: per-client statements,
// sessions that could not be billed, and which clients have settled.
type MonthlyOverview struct {
	billing.MonthlyStatement
	PaidClients map[int64]bool `json:"paid_clients"`
}

func (s *InvoiceService) MonthlyOverview(ctx context.Context, ownerID int64, month string) (*MonthlyOverview, error) {
	input, err := s.loadMonth(ctx, ownerID, month)
	if err != nil {
		return nil, err
	}

	payments, err := s.paymentRepo.ListByMonth(ctx, ownerID, month)
	if err != nil {
		return nil, err
	}
	paid := make(map[int64]bool, len(payments))
	for _, payment := range payments {
		paid[payment.ClientID] = payment.Paid
	}

	return &MonthlyOverview{
		MonthlyStatement: billing.BuildMonthlyStatement(*input),
		PaidClients:      paid,
	}, nil
}

type RenderedInvoice struct {
	Number    string                    `json:"number"`
	Month     string                    `json:"month"`
	HTML      string                    `json:"html"`
	Statement billing.ClientStatement   `json:"statement"`
	Unpriced  []billing.UnpricedSession `json:"unpriced"`
}

// RenderInvoice builds one client's invoice for a month and substitutes it
// into the trainer's stored HTML template (or the built-in default). The
// invoice number is derived from now; numbers within the same second repeat.
func (s *InvoiceService) RenderInvoice(ctx context.Context, ownerID int64, month string, clientID int64, now time.Time) (*RenderedInvoice, error) {
	input, err := s.loadMonth(ctx, ownerID, month)
	if err != nil {
		return nil, err
	}
	statement := billing.BuildMonthlyStatement(*input)

	var clientStatement *billing.ClientStatement
	for i := range statement.Statements {
		if statement.Statements[i].ClientID == clientID {
			clientStatement = &statement.Statements[i]
			break
		}
	}
	if clientStatement == nil {
		return nil, ErrNothingToInvoice
	}

	tpl := defaultInvoiceTemplate
	if input.Profile.InvoiceHTML != nil && *input.Profile.InvoiceHTML != "" {
		tpl = *input.Profile.InvoiceHTML
	}

	number := utils.InvoiceNumber(now)
	html, err := billing.RenderTemplate(tpl, map[string]string{
		billing.TokenLineItems:     billing.LineItemsHTML(clientStatement.Lines),
		billing.TokenTotals:        billing.TotalsHTML(clientStatement.Totals),
		billing.TokenClientName:    clientStatement.ClientName,
		billing.TokenInvoiceNumber: number,
		billing.TokenInvoiceDate:   now.Format("02.01.2006"),
		billing.TokenMonth:         month,
		billing.TokenTrainerName:   deref(input.Profile.FullName),
		billing.TokenAddress:       deref(input.Profile.Address),
		billing.TokenIBAN:          deref(input.Profile.IBAN),
		billing.TokenTaxID:         deref(input.Profile.TaxID),
		billing.TokenDisclaimer:    clientStatement.Totals.Disclaimer,
	})
	if err != nil {
		return nil, err
	}

	return &RenderedInvoice{
		Number:    number,
		Month:     month,
		HTML:      html,
		Statement: *clientStatement,
		Unpriced:  statement.Unpriced,
	}, nil
}

func (s *InvoiceService) loadMonth(ctx context.Context, ownerID int64, month string) (*billing.BuildInput, error) {
	profile, err := s.profileRepo.GetByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	sessions, err := s.sessionRepo.ListByMonth(ctx, ownerID, month)
	if err != nil {
		return nil, err
	}
	plans, err := s.ratePlanRepo.MapByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	clients, err := s.clientRepo.ListByOwner(ctx, ownerID, true)
	if err != nil {
		return nil, err
	}
	clientsByID := make(map[int64]models.Client, len(clients))
	for _, client := range clients {
		clientsByID[client.ID] = client
	}
	adjustments, err := s.adjustmentRepo.ListByMonth(ctx, ownerID, month)
	if err != nil {
		return nil, err
	}

	return &billing.BuildInput{
		Profile:     *profile,
		Month:       month,
		Sessions:    sessions,
		Plans:       plans,
		Clients:     clientsByID,
		Adjustments: adjustments,
	}, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
