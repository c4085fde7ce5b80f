package catalog_test

import (
	"testing"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"local-library/internal/catalog"
)

var today = civil.Date{Year: 2024, Month: 3, Day: 15}

func TestValidateDueDate_TodayIsValid(t *testing.T) {
	got, err := catalog.ValidateDueDate(today, today)
	require.NoError(t, err)
	assert.Equal(t, today, got)
}

func TestValidateDueDate_UpperBoundInclusive(t *testing.T) {
	limit := today.AddDays(28)
	got, err := catalog.ValidateDueDate(limit, today)
	require.NoError(t, err)
	assert.Equal(t, limit, got)

	_, err = catalog.ValidateDueDate(today.AddDays(29), today)
	var tooFar *catalog.TooFarAheadError
	require.ErrorAs(t, err, &tooFar)
	assert.Equal(t, "Invalid date - renewal more than 4 weeks ahead", err.Error())
}

func TestValidateDueDate_PastDates(t *testing.T) {
	for _, days := range []int{1, 7, 365} {
		_, err := catalog.ValidateDueDate(today.AddDays(-days), today)
		var past *catalog.PastDateError
		require.ErrorAs(t, err, &past, "days back: %d", days)
		assert.Equal(t, "Invalid date - renewal in past", err.Error())
	}
}

func TestValidateDueDate_AcrossMonthAndYearBoundaries(t *testing.T) {
	dec := civil.Date{Year: 2023, Month: 12, Day: 20}

	got, err := catalog.ValidateDueDate(civil.Date{Year: 2024, Month: 1, Day: 17}, dec)
	require.NoError(t, err)
	assert.Equal(t, civil.Date{Year: 2024, Month: 1, Day: 17}, got)

	_, err = catalog.ValidateDueDate(civil.Date{Year: 2024, Month: 1, Day: 18}, dec)
	assert.ErrorAs(t, err, new(*catalog.TooFarAheadError))
}

func TestValidateDueDate_EveryDayInWindow(t *testing.T) {
	for d := 0; d <= catalog.MaxRenewalDays; d++ {
		proposed := today.AddDays(d)
		got, err := catalog.ValidateDueDate(proposed, today)
		require.NoError(t, err, "day %d", d)
		assert.Equal(t, proposed, got)
	}
}
