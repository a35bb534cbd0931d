package schedule

import "testing"

func TestToMinutes(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"00:00", 0},
		{"00:15", 15},
		{"09:00", 540},
		{"13:45", 825},
		{"23:59", 1439},
		{"24:00", MinutesInDay},
	}
	for _, tc := range cases {
		if got := ToMinutes(tc.in); got != tc.want {
			t.Errorf("ToMinutes(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestToTime(t *testing.T) {
	cases := []struct {
		in   int
		want string
	}{
		{0, "00:00"},
		{15, "00:15"},
		{540, "09:00"},
		{1439, "23:59"},
		{1440, "24:00"},
		{1500, "24:00"}, // clamped above end of day
		{-30, "00:00"},  // clamped below midnight
	}
	for _, tc := range cases {
		if got := ToTime(tc.in); got != tc.want {
			t.Errorf("ToTime(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestToMinutesToTimeRoundTrip(t *testing.T) {
	for minute := 0; minute <= MinutesInDay; minute += StepMinutes {
		if got := ToMinutes(ToTime(minute)); got != minute {
			t.Fatalf("round trip of %d produced %d", minute, got)
		}
	}
}

func TestNormalizeTime(t *testing.T) {
	cases := []struct {
		name     string
		value    string
		fallback string
		want     string
	}{
		{"valid", "09:30", "00:00", "09:30"},
		{"end of day", "24:00", "00:00", "24:00"},
		{"trailing seconds truncated", "09:30:00", "00:00", "09:30"},
		{"surrounding whitespace", "  08:15 ", "00:00", "08:15"},
		{"too short", "9:30", "00:00", "00:00"},
		{"hour out of range", "25:00", "00:00", "00:00"},
		{"minute out of range", "10:61", "00:00", "00:00"},
		{"empty", "", "24:00", "24:00"},
		{"garbage", "noon!", "12:00", "12:00"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeTime(tc.value, tc.fallback); got != tc.want {
				t.Errorf("NormalizeTime(%q, %q) = %q, want %q", tc.value, tc.fallback, got, tc.want)
			}
		})
	}
}

func TestNormalizeAvailability(t *testing.T) {
	cases := []struct {
		name     string
		from, to string
		wantFrom string
		wantTo   string
	}{
		{"valid window kept", "08:00", "20:00", "08:00", "20:00"},
		{"full day", "00:00", "24:00", "00:00", "24:00"},
		{"inverted resets", "20:00", "08:00", "00:00", "24:00"},
		{"zero length resets", "10:00", "10:00", "00:00", "24:00"},
		{"invalid from falls back", "junk", "18:00", "00:00", "18:00"},
		{"both invalid", "", "", "00:00", "24:00"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			from, to := NormalizeAvailability(tc.from, tc.to)
			if from != tc.wantFrom || to != tc.wantTo {
				t.Errorf("NormalizeAvailability(%q, %q) = (%q, %q), want (%q, %q)",
					tc.from, tc.to, from, to, tc.wantFrom, tc.wantTo)
			}
		})
	}
}

func TestCombineDateTime(t *testing.T) {
	got, err := CombineDateTime("2025-01-10", "10:30")
	if err != nil {
		t.Fatalf("CombineDateTime returned error: %v", err)
	}
	if got.Format("2006-01-02T15:04") != "2025-01-10T10:30" {
		t.Fatalf("unexpected instant %s", got)
	}

	// "24:00" rolls into midnight of the next day.
	eod, err := CombineDateTime("2025-01-10", "24:00")
	if err != nil {
		t.Fatalf("CombineDateTime end of day returned error: %v", err)
	}
	if eod.Format("2006-01-02T15:04") != "2025-01-11T00:00" {
		t.Fatalf("end of day mapped to %s", eod)
	}

	if _, err := CombineDateTime("not-a-date", "10:00"); err == nil {
		t.Fatal("expected error for malformed date")
	}
}
