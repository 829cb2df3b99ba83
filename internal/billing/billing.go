package billing

import (
	"errors"
	"math"

	"github.com/mhartig/TrainerDeskBack/internal/models"
)

var ErrUnpriced = errors.New("session has neither a rate plan nor a price override")

// EffectiveBilling is the one concrete price/mode pair a session bills under,
// resolved before any aggregation. Price is per hour for per_session and
// per_client, and the flat monthly amount for monthly_flat.
type EffectiveBilling struct {
	Price float64
	Mode  string
}

// ResolveBilling collapses the session's optional overrides and its referenced
// plan into a single EffectiveBilling. Override fields, when present, replace
// the plan's values entirely; a session with neither is unpriced.
func ResolveBilling(session *models.TrainingSession, plan *models.RatePlan) (EffectiveBilling, error) {
	mode := ""
	if plan != nil {
		mode = plan.BillingMode
	}
	if session.ModeOverride != nil {
		mode = *session.ModeOverride
	}

	switch {
	case session.PriceOverride != nil:
		if mode == "" {
			mode = models.BillingPerSession
		}
		return EffectiveBilling{Price: *session.PriceOverride, Mode: mode}, nil
	case plan != nil:
		return EffectiveBilling{Price: plan.PricePerHour, Mode: mode}, nil
	default:
		return EffectiveBilling{}, ErrUnpriced
	}
}

// One amount function per billing mode, so each rule stays independently
// testable.

// perSessionAmount bills the whole session once at full price.
func perSessionAmount(pricePerHour, hours float64) float64 {
	return round2(pricePerHour * hours)
}

// perClientAmount splits the session price evenly across its participants.
func perClientAmount(pricePerHour, hours float64, participants int) float64 {
	if participants < 1 {
		participants = 1
	}
	return round2(pricePerHour * hours / float64(participants))
}

// monthlyFlatAmount is the plan's rate, drawn once per client per month
// regardless of session count. Deduplication happens in the aggregator.
func monthlyFlatAmount(flatRate float64) float64 {
	return round2(flatRate)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
