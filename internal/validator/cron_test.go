package validator

import (
	"testing"
	"time"
)

func TestNextSweep_EveryFiveMinutes(t *testing.T) {
	from := time.Date(2025, 3, 10, 12, 2, 30, 0, time.UTC)

	next, err := NextSweep("*/5 * * * *", from)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := time.Date(2025, 3, 10, 12, 5, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Errorf("expected %v, got %v", want, next)
	}
}

func TestNextSweep_Hourly(t *testing.T) {
	from := time.Date(2025, 3, 10, 12, 30, 0, 0, time.UTC)

	next, err := NextSweep("0 * * * *", from)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := time.Date(2025, 3, 10, 13, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Errorf("expected %v, got %v", want, next)
	}
}

func TestNextSweep_InvalidExpr(t *testing.T) {
	_, err := NextSweep("not a cron", time.Now())
	if err == nil {
		t.Error("expected error for invalid expression")
	}
}

func TestValidateSchedule(t *testing.T) {
	tests := []struct {
		expr    string
		wantErr bool
	}{
		{"*/5 * * * *", false},
		{"0 0 * * 1", false},
		{DefaultSchedule, false},
		{"", true},
		{"* * * *", true},
		{"61 * * * *", true},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			err := ValidateSchedule(tt.expr)
			if tt.wantErr && err == nil {
				t.Errorf("expected error for %q", tt.expr)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error for %q: %v", tt.expr, err)
			}
		})
	}
}
