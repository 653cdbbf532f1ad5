package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"faktura-ocr/pkg/models"
)

func workItem(total, machineHours string) models.WorkItem {
	return models.WorkItem{
		Employee:     "Ola Nordmann",
		FromDate:     "02.06.2025",
		ToDate:       "02.06.2025",
		FromPeriod:   "07:00",
		ToPeriod:     "15:30",
		Total:        total,
		MachineHours: machineHours,
		PageNumber:   1,
		ID:           1,
	}
}

func TestReconcileHoursPlausibleValueWins(t *testing.T) {
	tests := []struct {
		name  string
		total string
		want  float64
	}{
		{"period separator", "7.5", 7.5},
		{"comma separator", "7,5", 7.5},
		{"integer", "8", 8},
		{"just below ceiling", "99.99", 99.99},
		{"disagrees with time span", "2", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReconcileHours(workItem(tt.total, ""))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReconcileHoursFallsBackToTimeSpan(t *testing.T) {
	// The item's span is 07:00 to 15:30 on the same day, 8.5 hours.
	tests := []struct {
		name  string
		total string
	}{
		{"empty", ""},
		{"zero", "0"},
		{"negative", "-3"},
		{"at ceiling", "100"},
		{"absurd column misread", "1530"},
		{"unparseable", "7,5t"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReconcileHours(workItem(tt.total, ""))
			require.NoError(t, err)
			assert.Equal(t, 8.5, got)
		})
	}
}

func TestReconcileHoursMachineHoursFallback(t *testing.T) {
	got, err := ReconcileHours(workItem("", "3,25"))
	require.NoError(t, err)
	assert.Equal(t, 3.25, got)
}

func TestReconcileHoursSpanOverMidnight(t *testing.T) {
	item := workItem("", "")
	item.FromDate = "02.06.2025"
	item.FromPeriod = "22:00"
	item.ToDate = "03.06.2025"
	item.ToPeriod = "06:00"

	got, err := ReconcileHours(item)
	require.NoError(t, err)
	assert.Equal(t, 8.0, got)
}

func TestReconcileHoursRoundsToTwoDecimals(t *testing.T) {
	item := workItem("", "")
	item.FromPeriod = "07:00"
	item.ToPeriod = "07:25"

	got, err := ReconcileHours(item)
	require.NoError(t, err)
	assert.Equal(t, 0.42, got)
}

func TestReconcileHoursUnparseableDatesPropagate(t *testing.T) {
	item := workItem("", "")
	item.FromDate = "not a date"

	_, err := ReconcileHours(item)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot parse start")
}
