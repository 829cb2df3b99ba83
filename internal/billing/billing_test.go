package billing

import (
	"errors"
	"testing"

	"github.com/mhartig/TrainerDeskBack/internal/models"
)

func floatPtr(v float64) *float64 { return &v }

func strPtr(v string) *string { return &v }

func TestResolveBillingUsesPlanWhenNoOverride(t *testing.T) {
	session := &models.TrainingSession{}
	plan := &models.RatePlan{PricePerHour: 45, BillingMode: models.BillingPerClient}

	eff, err := ResolveBilling(session, plan)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if eff.Price != 45 || eff.Mode != models.BillingPerClient {
		t.Errorf("got %+v, want price 45 mode per_client", eff)
	}
}

func TestResolveBillingOverrideReplacesPlan(t *testing.T) {
	session := &models.TrainingSession{
		PriceOverride: floatPtr(60),
		ModeOverride:  strPtr(models.BillingPerSession),
	}
	plan := &models.RatePlan{PricePerHour: 45, BillingMode: models.BillingPerClient}

	eff, err := ResolveBilling(session, plan)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if eff.Price != 60 || eff.Mode != models.BillingPerSession {
		t.Errorf("override not applied, got %+v", eff)
	}
}

func TestResolveBillingPriceOverrideKeepsPlanMode(t *testing.T) {
	session := &models.TrainingSession{PriceOverride: floatPtr(50)}
	plan := &models.RatePlan{PricePerHour: 45, BillingMode: models.BillingMonthlyFlat}

	eff, err := ResolveBilling(session, plan)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if eff.Price != 50 || eff.Mode != models.BillingMonthlyFlat {
		t.Errorf("got %+v, want price 50 mode monthly_flat", eff)
	}
}

func TestResolveBillingOverrideWithoutPlanDefaultsToPerSession(t *testing.T) {
	session := &models.TrainingSession{PriceOverride: floatPtr(35)}

	eff, err := ResolveBilling(session, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if eff.Price != 35 || eff.Mode != models.BillingPerSession {
		t.Errorf("got %+v, want price 35 mode per_session", eff)
	}
}

func TestResolveBillingUnpriced(t *testing.T) {
	session := &models.TrainingSession{}

	_, err := ResolveBilling(session, nil)
	if !errors.Is(err, ErrUnpriced) {
		t.Errorf("expected ErrUnpriced, got %v", err)
	}
}

func TestModeAmountFunctions(t *testing.T) {
	if got := perSessionAmount(40, 1.5); got != 60 {
		t.Errorf("perSessionAmount = %v, want 60", got)
	}
	if got := perClientAmount(40, 1.5, 3); got != 20 {
		t.Errorf("perClientAmount = %v, want 20", got)
	}
	if got := perClientAmount(40, 1, 0); got != 40 {
		t.Errorf("perClientAmount with zero participants = %v, want 40", got)
	}
	if got := monthlyFlatAmount(120); got != 120 {
		t.Errorf("monthlyFlatAmount = %v, want 120", got)
	}
}
