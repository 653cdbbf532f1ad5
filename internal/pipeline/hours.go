package pipeline

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"faktura-ocr/pkg/models"
)

// Hour values at or above this are treated as OCR misreads and recomputed
// from the item's time span instead.
const maxPlausibleHours = 100

const dateTimeLayout = "02.01.2006 15:04"

// ReconcileHours resolves the total hours for one work item. The extracted
// hour field wins when it parses to a plausible value; otherwise the hours
// are recomputed from the item's date and time span. Items carry either a
// total or machine hours, never both, so the first non-empty field is used.
func ReconcileHours(item models.WorkItem) (float64, error) {
	raw := item.Total
	if raw == "" {
		raw = item.MachineHours
	}

	if raw != "" {
		value, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
		if err == nil && value > 0 && value < maxPlausibleHours {
			return value, nil
		}
		// Unparseable or implausible extraction, fall through to the
		// time span.
	}

	return hoursFromSpan(item)
}

// hoursFromSpan computes hours as the difference between the item's start
// and end timestamps, rounded to two decimals.
func hoursFromSpan(item models.WorkItem) (float64, error) {
	from, err := time.Parse(dateTimeLayout, item.FromDate+" "+item.FromPeriod)
	if err != nil {
		return 0, fmt.Errorf("work item %d: cannot parse start %q %q: %w",
			item.ID, item.FromDate, item.FromPeriod, err)
	}
	to, err := time.Parse(dateTimeLayout, item.ToDate+" "+item.ToPeriod)
	if err != nil {
		return 0, fmt.Errorf("work item %d: cannot parse end %q %q: %w",
			item.ID, item.ToDate, item.ToPeriod, err)
	}

	hours := to.Sub(from).Hours()
	return math.Round(hours*100) / 100, nil
}
