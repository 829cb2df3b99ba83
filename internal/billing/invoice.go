package billing

import (
	"fmt"
	"sort"
	"time"

	"github.com/mhartig/TrainerDeskBack/internal/models"
	"github.com/mhartig/TrainerDeskBack/pkg/utils"
)

// GroupClientID is the synthetic statement a per_session mode session with
// several participants bills against: the group pays once, no single client
// owns the line.
const GroupClientID int64 = 0

// SmallBusinessDisclaimer is printed instead of a VAT line when the trainer
// uses the small-business exemption.
const SmallBusinessDisclaimer = "Gemäß § 19 UStG wird keine Umsatzsteuer berechnet."

type LineItem struct {
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	Hours       float64   `json:"hours"`
	UnitPrice   float64   `json:"unit_price"`
	Amount      float64   `json:"amount"`
}

type Totals struct {
	Net        float64 `json:"net"`
	VATRate    float64 `json:"vat_rate"`
	VAT        float64 `json:"vat"`
	Gross      float64 `json:"gross"`
	Disclaimer string  `json:"disclaimer,omitempty"`
}

// ClientStatement is one client's share of a month: session lines, signed
// adjustments, and tax-aware totals.
type ClientStatement struct {
	ClientID    int64      `json:"client_id"`
	ClientName  string     `json:"client_name"`
	Lines       []LineItem `json:"lines"`
	Adjustments float64    `json:"adjustments"`
	Totals      Totals     `json:"totals"`
}

// UnpricedSession flags a session that could not be billed. It is excluded
// from all totals but must surface so the trainer can resolve it; silently
// pricing it at zero would hide revenue.
type UnpricedSession struct {
	SessionID int64     `json:"session_id"`
	Date      time.Time `json:"date"`
	Reason    string    `json:"reason"`
}

type MonthlyStatement struct {
	Month      string            `json:"month"`
	Statements []ClientStatement `json:"statements"`
	Unpriced   []UnpricedSession `json:"unpriced"`
}

// BuildInput carries everything the aggregation needs; the aggregator itself
// performs no I/O.
type BuildInput struct {
	Profile     models.TrainerProfile
	Month       string
	Sessions    []models.TrainingSession
	Plans       map[int64]models.RatePlan
	Clients     map[int64]models.Client
	Adjustments []models.MonthlyAdjustment
}

// BuildMonthlyStatement aggregates a month of sessions into per-client
// statements. Only completed, non-cash sessions dated in the target month
// count. Per-client sessions split their price across participants; multi
// participant per-session mode bills once against the synthetic group
// statement; monthly-flat plans contribute exactly once per client per month.
func BuildMonthlyStatement(input BuildInput) MonthlyStatement {
	result := MonthlyStatement{
		Month:      input.Month,
		Statements: []ClientStatement{},
		Unpriced:   []UnpricedSession{},
	}

	lines := make(map[int64][]LineItem)
	flatBilled := make(map[string]bool)

	for i := range input.Sessions {
		session := &input.Sessions[i]
		if session.Status != models.SessionCompleted || session.CashPaid {
			continue
		}
		if utils.MonthKey(session.Date) != input.Month {
			continue
		}

		hours, err := utils.DurationHours(session.StartTime, session.EndTime)
		if err != nil {
			result.Unpriced = append(result.Unpriced, UnpricedSession{
				SessionID: session.ID,
				Date:      session.Date,
				Reason:    fmt.Sprintf("invalid duration: %v", err),
			})
			continue
		}

		var plan *models.RatePlan
		if session.RatePlanID != nil {
			if p, ok := input.Plans[*session.RatePlanID]; ok {
				plan = &p
			}
		}
		eff, err := ResolveBilling(session, plan)
		if err != nil {
			result.Unpriced = append(result.Unpriced, UnpricedSession{
				SessionID: session.ID,
				Date:      session.Date,
				Reason:    "no rate plan and no price override",
			})
			continue
		}

		switch eff.Mode {
		case models.BillingPerClient:
			amount := perClientAmount(eff.Price, hours, len(session.ClientIDs))
			for _, clientID := range session.ClientIDs {
				lines[clientID] = append(lines[clientID], LineItem{
					Date:        session.Date,
					Description: sessionDescription(session, input.Clients),
					Hours:       hours,
					UnitPrice:   eff.Price,
					Amount:      amount,
				})
			}
		case models.BillingMonthlyFlat:
			for _, clientID := range session.ClientIDs {
				key := flatKey(clientID, session, plan)
				if flatBilled[key] {
					continue
				}
				flatBilled[key] = true
				lines[clientID] = append(lines[clientID], LineItem{
					Date:        session.Date,
					Description: flatDescription(input.Month, plan),
					Hours:       0,
					UnitPrice:   eff.Price,
					Amount:      monthlyFlatAmount(eff.Price),
				})
			}
		default: // per_session
			target := GroupClientID
			if len(session.ClientIDs) == 1 {
				target = session.ClientIDs[0]
			}
			lines[target] = append(lines[target], LineItem{
				Date:        session.Date,
				Description: sessionDescription(session, input.Clients),
				Hours:       hours,
				UnitPrice:   eff.Price,
				Amount:      perSessionAmount(eff.Price, hours),
			})
		}
	}

	adjustments := make(map[int64]float64)
	for _, adj := range input.Adjustments {
		if adj.Month != input.Month {
			continue
		}
		adjustments[adj.ClientID] += adj.Amount
	}

	clientIDs := make([]int64, 0, len(lines))
	for clientID := range lines {
		clientIDs = append(clientIDs, clientID)
	}
	for clientID := range adjustments {
		if _, ok := lines[clientID]; !ok {
			clientIDs = append(clientIDs, clientID)
		}
	}
	sort.Slice(clientIDs, func(i, j int) bool { return clientIDs[i] < clientIDs[j] })

	for _, clientID := range clientIDs {
		clientLines := lines[clientID]
		sort.SliceStable(clientLines, func(i, j int) bool {
			return clientLines[i].Date.Before(clientLines[j].Date)
		})

		subtotal := 0.0
		for _, line := range clientLines {
			subtotal += line.Amount
		}
		net := round2(subtotal + adjustments[clientID])

		result.Statements = append(result.Statements, ClientStatement{
			ClientID:    clientID,
			ClientName:  clientName(clientID, input.Clients),
			Lines:       clientLines,
			Adjustments: round2(adjustments[clientID]),
			Totals:      computeTotals(net, input.Profile),
		})
	}

	return result
}

func computeTotals(net float64, profile models.TrainerProfile) Totals {
	if profile.SmallBusiness {
		return Totals{
			Net:        net,
			VATRate:    0,
			VAT:        0,
			Gross:      net,
			Disclaimer: SmallBusinessDisclaimer,
		}
	}
	vat := round2(net * profile.VATRate / 100)
	return Totals{
		Net:     net,
		VATRate: profile.VATRate,
		VAT:     vat,
		Gross:   round2(net + vat),
	}
}

func clientName(clientID int64, clients map[int64]models.Client) string {
	if clientID == GroupClientID {
		return "Group training"
	}
	if client, ok := clients[clientID]; ok {
		return client.Name
	}
	return fmt.Sprintf("Client %d", clientID)
}

func sessionDescription(session *models.TrainingSession, clients map[int64]models.Client) string {
	if session.Notes != nil && *session.Notes != "" {
		return *session.Notes
	}
	if len(session.ClientIDs) > 1 {
		return fmt.Sprintf("Training session (%d participants), %s-%s", len(session.ClientIDs), session.StartTime, session.EndTime)
	}
	return fmt.Sprintf("Training session, %s-%s", session.StartTime, session.EndTime)
}

func flatDescription(month string, plan *models.RatePlan) string {
	if plan != nil {
		return fmt.Sprintf("%s (monthly flat rate, %s)", plan.Name, month)
	}
	return fmt.Sprintf("Monthly flat rate, %s", month)
}

func flatKey(clientID int64, session *models.TrainingSession, plan *models.RatePlan) string {
	planID := int64(0)
	if plan != nil {
		planID = plan.ID
	}
	return fmt.Sprintf("%d/%d", clientID, planID)
}
