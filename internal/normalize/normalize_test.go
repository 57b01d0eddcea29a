package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperation(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
		ok    bool
	}{
		{"plain number", "66539", 66539, true},
		{"thousands dot", "66.539", 66539, true},
		{"inner space", "66 539", 66539, true},
		{"surrounding whitespace", "  66539  ", 66539, true},
		{"dot and space mixed", " 66. 539 ", 66539, true},
		{"empty", "", 0, false},
		{"whitespace only", "   ", 0, false},
		{"non numeric", "N/A", 0, false},
		{"trailing letters", "66539A", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Operation(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestOperationEquivalence(t *testing.T) {
	// The same order number exported by both systems must normalize to the
	// same key regardless of formatting.
	base, ok := Operation("66539")
	require.True(t, ok)
	for _, variant := range []string{"66.539", " 66539", "66 539", "66.539 "} {
		got, ok := Operation(variant)
		require.True(t, ok, variant)
		assert.Equal(t, base, got, variant)
	}
}

func TestNumber(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
		ok    bool
	}{
		{"integer", "1500", 1500, true},
		{"thousands dots", "1.234.567", 1234567, true},
		{"decimal comma", "1.234,56", 1234.56, true},
		{"comma only", "0,5", 0.5, true},
		{"zero", "0", 0, true},
		{"empty", "", 0, false},
		{"text", "pendiente", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Number(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

func TestNumberString(t *testing.T) {
	assert.Equal(t, "1234.56", NumberString("1.234,56"))
	assert.Equal(t, "", NumberString("no aplica"))
	assert.Equal(t, "0", NumberString("0"))
}

func TestParseDateSerial(t *testing.T) {
	// 45000 days after 1899-12-30 is 2023-03-15.
	got, ok := ParseDate("45000")
	require.True(t, ok)
	assert.Equal(t, time.Date(2023, time.March, 15, 0, 0, 0, 0, time.UTC), got)

	_, ok = ParseDate("123456789")
	assert.False(t, ok, "serials outside the plausible range are not dates")
}

func TestParseDateLayouts(t *testing.T) {
	want := time.Date(2024, time.July, 9, 0, 0, 0, 0, time.UTC)
	for _, input := range []string{"09/07/2024", "9/7/2024", "09-07-2024", "2024-07-09"} {
		got, ok := ParseDate(input)
		require.True(t, ok, input)
		assert.Equal(t, want, got, input)
	}

	_, ok := ParseDate("31/13/2024")
	assert.False(t, ok)
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "09/07/2024", FormatDate("2024-07-09"))
	assert.Equal(t, "15/03/2023", FormatDate("45000"))
	assert.Equal(t, "", FormatDate("   "))
	assert.Equal(t, "sin fecha", FormatDate("sin fecha"), "unparseable values pass through")
}

func TestDefaultDispatchDate(t *testing.T) {
	now := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "31/12/2026", DefaultDispatchDate(now))
}

func TestAddMonthsOverflow(t *testing.T) {
	jan31 := time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC), AddMonths(jan31, 1))

	leap := time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC), AddMonths(leap, 1))
}

func TestDeliveryEstimate(t *testing.T) {
	assert.Equal(t, "15/08/2025", DeliveryEstimate("15/07/2025"))
	assert.Equal(t, "", DeliveryEstimate("por confirmar"))
}
