package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/mhartig/TrainerDeskBack/internal/models"
	"github.com/mhartig/TrainerDeskBack/internal/repository"
)

func timeMustParse(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("parse %q: %v", value, err)
	}
	return parsed
}

type stubPlanReader struct {
	plan *models.RatePlan
	err  error
}

func (r *stubPlanReader) GetByID(_ context.Context, _, _ int64) (*models.RatePlan, error) {
	return r.plan, r.err
}

type stubTemplateReader struct {
	template *models.ScheduleTemplate
	err      error
}

func (r *stubTemplateReader) GetByID(_ context.Context, _, _ int64) (*models.ScheduleTemplate, error) {
	return r.template, r.err
}

func newValidationOnlyService(plans planReader, templates scheduleTemplateReader) *SessionService {
	return NewSessionService(nil, nil, plans, templates)
}

func validInput() repository.SessionInput {
	return repository.SessionInput{
		StartTime: "09:00",
		EndTime:   "10:00",
		ClientIDs: []int64{1},
	}
}

func TestValidateSessionInputDefaultsStatusToPlanned(t *testing.T) {
	service := newValidationOnlyService(&stubPlanReader{}, &stubTemplateReader{})
	input := validInput()

	if err := service.validateSessionInput(context.Background(), 42, &input); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if input.Status != models.SessionPlanned {
		t.Errorf("status = %q, want planned", input.Status)
	}
}

func TestValidateSessionInputRejectsBadDuration(t *testing.T) {
	service := newValidationOnlyService(&stubPlanReader{}, &stubTemplateReader{})

	input := validInput()
	input.EndTime = "08:00"
	err := service.validateSessionInput(context.Background(), 42, &input)
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for end before start, got %v", err)
	}
}

func TestValidateSessionInputRejectsEmptyParticipants(t *testing.T) {
	service := newValidationOnlyService(&stubPlanReader{}, &stubTemplateReader{})

	input := validInput()
	input.ClientIDs = nil
	err := service.validateSessionInput(context.Background(), 42, &input)
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for empty participants, got %v", err)
	}
}

func TestValidateSessionInputRejectsUnknownMode(t *testing.T) {
	service := newValidationOnlyService(&stubPlanReader{}, &stubTemplateReader{})

	input := validInput()
	mode := "hourly"
	input.ModeOverride = &mode
	err := service.validateSessionInput(context.Background(), 42, &input)
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for unknown billing mode, got %v", err)
	}
}

func TestValidateSessionInputMissingPlan(t *testing.T) {
	service := newValidationOnlyService(&stubPlanReader{err: pgx.ErrNoRows}, &stubTemplateReader{})

	input := validInput()
	input.RatePlanID = int64Ptr(99)
	err := service.validateSessionInput(context.Background(), 42, &input)
	if !errors.Is(err, ErrPlanNotFound) {
		t.Errorf("expected ErrPlanNotFound, got %v", err)
	}
}

func TestApplyTemplateRejectsInactive(t *testing.T) {
	service := newValidationOnlyService(&stubPlanReader{}, &stubTemplateReader{
		template: &models.ScheduleTemplate{ID: 3, Active: false},
	})

	_, err := service.ApplyTemplate(context.Background(), 42, 3, timeMustParse(t, "2026-03-18"))
	if !errors.Is(err, ErrTemplateInactive) {
		t.Errorf("expected ErrTemplateInactive, got %v", err)
	}
}

func TestNormalizeSessionStatus(t *testing.T) {
	cases := map[string]string{
		"planned":   models.SessionPlanned,
		"Complete":  models.SessionCompleted,
		"done":      models.SessionCompleted,
		"canceled":  models.SessionCancelled,
		"CANCELLED": models.SessionCancelled,
	}
	for in, want := range cases {
		got, err := normalizeSessionStatus(in)
		if err != nil || got != want {
			t.Errorf("normalizeSessionStatus(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := normalizeSessionStatus("archived"); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestSlotEndTime(t *testing.T) {
	end, err := slotEndTime("17:30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if end != "18:30" {
		t.Errorf("slotEndTime = %s, want 18:30", end)
	}
	if _, err := slotEndTime("bad"); err == nil {
		t.Error("expected error for malformed slot")
	}
}
