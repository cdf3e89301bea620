package mode

import "testing"

func TestRegistryHasSevenModes(t *testing.T) {
	all := All()
	if len(all) != 7 {
		t.Fatalf("expected 7 modes, got %d", len(all))
	}

	codes := map[Code]bool{}
	for _, m := range all {
		codes[m.Code] = true
	}
	for _, c := range []Code{NewMemorization, DailyReps, WeeklyReps, FortnightlyReps, MonthlyReps, FullCycle, SRS} {
		if !codes[c] {
			t.Errorf("registry missing mode %s", c)
		}
	}
}

func TestRepChain(t *testing.T) {
	tests := []struct {
		mode      Code
		interval  int
		threshold int
		next      Code
	}{
		{DailyReps, 1, 7, WeeklyReps},
		{WeeklyReps, 7, 7, FortnightlyReps},
		{FortnightlyReps, 14, 7, MonthlyReps},
		{MonthlyReps, 30, 7, FullCycle},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			cfg, ok := RepConfigFor(tt.mode)
			if !ok {
				t.Fatalf("expected %s to be a rep mode", tt.mode)
			}
			if cfg.BaseInterval != tt.interval {
				t.Errorf("base interval = %d, want %d", cfg.BaseInterval, tt.interval)
			}
			if cfg.DefaultThreshold != tt.threshold {
				t.Errorf("threshold = %d, want %d", cfg.DefaultThreshold, tt.threshold)
			}
			if cfg.Next != tt.next {
				t.Errorf("next = %s, want %s", cfg.Next, tt.next)
			}
		})
	}

	for _, c := range []Code{NewMemorization, FullCycle, SRS} {
		if IsRepMode(c) {
			t.Errorf("%s should not be a rep mode", c)
		}
	}
}

func TestValidate(t *testing.T) {
	if err := Validate(DailyReps); err != nil {
		t.Errorf("unexpected error for DR: %v", err)
	}
	if err := Validate(Code("XX")); err == nil {
		t.Error("expected error for unknown code XX")
	}
}

func TestValidateRating(t *testing.T) {
	for _, r := range []Rating{Bad, Ok, Good} {
		if err := ValidateRating(r); err != nil {
			t.Errorf("unexpected error for %v: %v", r, err)
		}
	}
	if err := ValidateRating(Rating(2)); err == nil {
		t.Error("expected error for rating 2")
	}
	if err := ValidateRating(Rating(-2)); err == nil {
		t.Error("expected error for rating -2")
	}
}

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		name      string
		memorized bool
		mode      Code
		want      Status
	}{
		{"fresh row pending memorization", false, FullCycle, StatusNotMemorized},
		{"under new memorization", false, NewMemorization, StatusLearning},
		{"daily reps", true, DailyReps, StatusReps},
		{"monthly reps", true, MonthlyReps, StatusReps},
		{"full cycle", true, FullCycle, StatusSolid},
		{"srs", true, SRS, StatusStruggling},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveStatus(tt.memorized, tt.mode); got != tt.want {
				t.Errorf("DeriveStatus(%v, %s) = %s, want %s", tt.memorized, tt.mode, got, tt.want)
			}
		})
	}
}
