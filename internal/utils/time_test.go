package utils

import (
	"testing"
	"time"
)

func TestLoadLocation(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{
			name:     "empty string returns local",
			timezone: "",
			wantErr:  false,
		},
		{
			name:     "Local returns local",
			timezone: "Local",
			wantErr:  false,
		},
		{
			name:     "valid timezone UTC",
			timezone: "UTC",
			wantErr:  false,
		},
		{
			name:     "invalid timezone",
			timezone: "Invalid/Timezone",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := LoadLocation(tt.timezone)
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadLocation() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && loc == nil {
				t.Errorf("LoadLocation() returned nil location without error")
			}
			if got := ValidateTimezone(tt.timezone); got == tt.wantErr {
				t.Errorf("ValidateTimezone(%q) = %v", tt.timezone, got)
			}
		})
	}
}

func TestValidateTimeFormat(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"07:30", true},
		{"00:00", true},
		{"23:59", true},
		{"24:00", false},
		{"7:30pm", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := ValidateTimeFormat(tt.in); got != tt.want {
			t.Errorf("ValidateTimeFormat(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseWeekday(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Weekday
		wantErr bool
	}{
		{"sunday", time.Sunday, false},
		{"Monday", time.Monday, false},
		{" sat ", time.Saturday, false},
		{"someday", time.Sunday, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseWeekday(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseWeekday() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseWeekday() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStartOfWeek(t *testing.T) {
	// Wednesday
	now := time.Date(2025, time.December, 31, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		weekStart time.Weekday
		want      time.Time
	}{
		{"sunday start", time.Sunday, time.Date(2025, time.December, 28, 0, 0, 0, 0, time.UTC)},
		{"monday start", time.Monday, time.Date(2025, time.December, 29, 0, 0, 0, 0, time.UTC)},
		{"same day", time.Wednesday, time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StartOfWeek(now, tt.weekStart); !got.Equal(tt.want) {
				t.Errorf("StartOfWeek() = %v, want %v", got, tt.want)
			}
		})
	}

	if got := StartOfMonth(now); !got.Equal(time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("StartOfMonth() = %v", got)
	}
}

func TestDaysBetween(t *testing.T) {
	east := time.FixedZone("UTC+9", 9*60*60)
	tests := []struct {
		name string
		a, b time.Time
		want int
	}{
		{
			name: "same day",
			a:    time.Date(2025, time.June, 1, 0, 5, 0, 0, time.UTC),
			b:    time.Date(2025, time.June, 1, 23, 55, 0, 0, time.UTC),
			want: 0,
		},
		{
			name: "one minute across midnight",
			a:    time.Date(2025, time.June, 1, 23, 59, 0, 0, time.UTC),
			b:    time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC),
			want: 1,
		},
		{
			name: "across a month",
			a:    time.Date(2025, time.January, 30, 12, 0, 0, 0, time.UTC),
			b:    time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC),
			want: 30,
		},
		{
			name: "counted in b's location",
			a:    time.Date(2025, time.June, 1, 16, 0, 0, 0, time.UTC), // June 2 01:00 in UTC+9
			b:    time.Date(2025, time.June, 2, 8, 0, 0, 0, east),
			want: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysBetween(tt.a, tt.b); got != tt.want {
				t.Errorf("DaysBetween() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSameDayAndDayKey(t *testing.T) {
	west := time.FixedZone("UTC-5", -5*60*60)
	completion := time.Date(2025, time.June, 2, 3, 0, 0, 0, time.UTC) // June 1 22:00 in UTC-5
	now := time.Date(2025, time.June, 1, 23, 0, 0, 0, west)

	if !SameDay(completion, now) {
		t.Error("Expected completion to fall on the same local day")
	}
	if SameDay(completion, now.In(time.UTC).Add(-12*time.Hour)) {
		t.Error("Expected different UTC days")
	}
	if got := DayKey(completion, west); got != "2025-06-01" {
		t.Errorf("DayKey() = %q, want 2025-06-01", got)
	}
}
