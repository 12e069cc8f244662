package scoring

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	want := time.Date(2021, 3, 15, 0, 0, 0, 0, time.UTC)
	formats := []string{
		"15/03/2021",
		"15-03-2021",
		"2021-03-15",
		"15.03.2021",
		"15 03 2021",
	}
	for _, s := range formats {
		d, ok := ParseDate(s)
		if !ok {
			t.Errorf("ParseDate(%q) not ok", s)
			continue
		}
		if !d.Equal(want) {
			t.Errorf("ParseDate(%q) = %v, want %v", s, d, want)
		}
	}
}

func TestParseDateRejects(t *testing.T) {
	bad := []string{"", "monto", "32/13/2020", "15/03/21", "not 1 a 2 date"}
	for _, s := range bad {
		if _, ok := ParseDate(s); ok {
			t.Errorf("ParseDate(%q) ok, want failure", s)
		}
	}
}

func TestScoreDateUnparsableIsZero(t *testing.T) {
	if got := ScoreDate("no date here", "FECHA_EMISION"); got != 0 {
		t.Errorf("ScoreDate = %.2f, want 0", got)
	}
}

func TestScoreDateBirth(t *testing.T) {
	// An adult birth date gets both the range and the age bonus.
	adult := ScoreDate("15/03/1980", "FECHA_NACIMIENTO")
	if adult < 1.2 {
		t.Errorf("adult birth date scored %.2f, want >= 1.2", adult)
	}
	// A future birth date only gets the base parse score.
	future := ScoreDate("15/03/2095", "FECHA_NACIMIENTO")
	if future != 0.5 {
		t.Errorf("future birth date scored %.2f, want 0.5", future)
	}
	if adult <= future {
		t.Error("adult birth date must outscore future birth date")
	}
}

func TestScoreDateIssueRejectsFuture(t *testing.T) {
	past := ScoreDate("10/01/2020", "FECHA_EMISION")
	future := ScoreDate("10/01/2095", "FECHA_EMISION")
	if past <= future {
		t.Errorf("past issue date %.2f must outscore future %.2f", past, future)
	}
}

func TestScoreDateExpiryRewardsFuture(t *testing.T) {
	future := ScoreDate("10/01/2095", "FECHA_VENCIMIENTO")
	past := ScoreDate("10/01/2020", "FECHA_VENCIMIENTO")
	if future <= past {
		t.Errorf("future expiry %.2f must outscore past expiry %.2f", future, past)
	}
}

func TestYearsBetween(t *testing.T) {
	from := time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		to   time.Time
		want int
	}{
		{time.Date(2020, 6, 15, 0, 0, 0, 0, time.UTC), 30},
		{time.Date(2020, 6, 14, 0, 0, 0, 0, time.UTC), 29},
		{time.Date(2020, 12, 1, 0, 0, 0, 0, time.UTC), 30},
	}
	for _, tt := range tests {
		if got := yearsBetween(from, tt.to); got != tt.want {
			t.Errorf("yearsBetween(..., %v) = %d, want %d", tt.to, got, tt.want)
		}
	}
}
