package naming

import (
	"strings"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"golang.org/x/text/unicode/norm"
)

func TestRenderBagName(t *testing.T) {
	tests := []struct {
		name      string
		owner     string
		item      string
		dateLabel string
		want      string
	}{
		{
			name:      "all fields resolved",
			owner:     "Jane Doe",
			item:      "Ethiopia Sidamo",
			dateLabel: "04/02/25",
			want:      "Jane Doe's Ethiopia Sidamo 04/02/25",
		},
		{
			name:      "empty date falls back",
			owner:     "Jane Doe",
			item:      "Ethiopia Sidamo",
			dateLabel: "",
			want:      "Jane Doe's Ethiopia Sidamo Unknown Roast",
		},
		{
			name:      "everything missing",
			owner:     "",
			item:      "",
			dateLabel: "",
			want:      "Anonymous's Unknown Item Unknown Roast",
		},
		{
			name:      "whitespace-only treated as empty",
			owner:     "   ",
			item:      "\t",
			dateLabel: "04/02/25",
			want:      "Anonymous's Unknown Item 04/02/25",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := renderBagName(tt.owner, tt.item, tt.dateLabel)
			if got != tt.want {
				t.Errorf("renderBagName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderBrewName(t *testing.T) {
	tests := []struct {
		name    string
		owner   string
		ordinal int
		phase   DayPhase
		item    string
		date    string
		want    string
	}{
		{
			name:    "first of bucket omits ordinal",
			owner:   "Jane Doe",
			ordinal: 1,
			phase:   PhaseMorning,
			item:    "Ethiopia Sidamo",
			date:    "04/02/25",
			want:    "Jane Doe's morning Ethiopia Sidamo 04/02/25",
		},
		{
			name:    "second of bucket",
			owner:   "Jane Doe",
			ordinal: 2,
			phase:   PhaseMorning,
			item:    "Ethiopia Sidamo",
			date:    "04/02/25",
			want:    "Jane Doe's 2nd morning Ethiopia Sidamo 04/02/25",
		},
		{
			name:    "third evening brew",
			owner:   "Sam",
			ordinal: 3,
			phase:   PhaseEvening,
			item:    "Kenya AA",
			date:    "12/31/25",
			want:    "Sam's 3rd evening Kenya AA 12/31/25",
		},
		{
			name:    "all fallbacks",
			owner:   "",
			ordinal: 1,
			phase:   "",
			item:    "",
			date:    "",
			want:    "Anonymous's anytime Unknown Item Unknown Date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := renderBrewName(tt.owner, tt.ordinal, tt.phase, tt.item, tt.date)
			if got != tt.want {
				t.Errorf("renderBrewName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalizeField_UnicodeNFC(t *testing.T) {
	// "é" composed (U+00E9) vs "e" + combining acute (U+0065 U+0301).
	composed := "Café"
	decomposed := "Café"

	gotComposed := normalizeField(composed, "x")
	gotDecomposed := normalizeField(decomposed, "x")
	if gotComposed != gotDecomposed {
		t.Errorf("NFC forms differ: %q vs %q", gotComposed, gotDecomposed)
	}
	if gotComposed != composed {
		t.Errorf("normalizeField(%q) = %q, want unchanged", composed, gotComposed)
	}
}

func TestFormatOrdinal(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{1, "1st"}, {2, "2nd"}, {3, "3rd"}, {4, "4th"},
		{11, "11th"}, {12, "12th"}, {13, "13th"},
		{21, "21st"}, {22, "22nd"}, {23, "23rd"},
		{101, "101st"}, {111, "111th"},
	}
	for _, tt := range tests {
		if got := formatOrdinal(tt.n); got != tt.want {
			t.Errorf("formatOrdinal(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestEmergencyNames(t *testing.T) {
	at := time.Date(2025, 4, 2, 9, 30, 0, 0, time.UTC)

	if got, want := emergencyBagName(at), "New Coffee Bag 2025-04-02"; got != want {
		t.Errorf("emergencyBagName() = %q, want %q", got, want)
	}
	if got, want := emergencyBrewName(at), "Espresso Brew 2025-04-02 09:30"; got != want {
		t.Errorf("emergencyBrewName() = %q, want %q", got, want)
	}
}

func TestEmergencyBrewName_ConvertsToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	at := time.Date(2025, 4, 2, 1, 0, 0, 0, loc)

	if got, want := emergencyBrewName(at), "Espresso Brew 2025-04-01 23:00"; got != want {
		t.Errorf("emergencyBrewName() = %q, want %q", got, want)
	}
}

func TestFormatOrdinal_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("suffix follows last-digit rule outside 11-13", prop.ForAll(
		func(n int) bool {
			s := formatOrdinal(n)
			if n%100 >= 11 && n%100 <= 13 {
				return strings.HasSuffix(s, "th")
			}
			switch n % 10 {
			case 1:
				return strings.HasSuffix(s, "st")
			case 2:
				return strings.HasSuffix(s, "nd")
			case 3:
				return strings.HasSuffix(s, "rd")
			default:
				return strings.HasSuffix(s, "th")
			}
		},
		gen.IntRange(1, 100000),
	))

	properties.TestingRun(t)
}

func TestNormalizeField_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("normalization is idempotent", prop.ForAll(
		func(s string) bool {
			once := normalizeField(s, "fallback")
			return normalizeField(once, "fallback") == once
		},
		gen.AnyString(),
	))

	properties.Property("result is always NFC", prop.ForAll(
		func(s string) bool {
			return norm.NFC.IsNormalString(normalizeField(s, "fallback"))
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}
