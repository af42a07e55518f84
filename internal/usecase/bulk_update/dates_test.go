package bulk_update

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestExpandDates_Inclusive(t *testing.T) {
	dates := expandDates(date(2025, 10, 1), date(2025, 10, 3), nil)

	require.Len(t, dates, 3)
	assert.Equal(t, date(2025, 10, 1), dates[0])
	assert.Equal(t, date(2025, 10, 3), dates[2])
}

// 2025-10-01 - среда; фильтр нумеруется 0=Пн .. 6=Вс
func TestExpandDates_WeekdayFilter(t *testing.T) {
	// Только субботы (5) и воскресенья (6) октября
	dates := expandDates(date(2025, 10, 1), date(2025, 10, 31), []int{5, 6})

	require.Len(t, dates, 8)
	assert.Equal(t, date(2025, 10, 4), dates[0])  // суббота
	assert.Equal(t, date(2025, 10, 5), dates[1])  // воскресенье
	assert.Equal(t, date(2025, 10, 26), dates[7]) // воскресенье

	for _, d := range dates {
		wd := d.Weekday()
		assert.True(t, wd == time.Saturday || wd == time.Sunday)
	}
}

func TestExpandDates_MondayIsZero(t *testing.T) {
	// 2025-10-06 - понедельник
	dates := expandDates(date(2025, 10, 6), date(2025, 10, 12), []int{0})

	require.Len(t, dates, 1)
	assert.Equal(t, date(2025, 10, 6), dates[0])
	assert.Equal(t, time.Monday, dates[0].Weekday())
}

func TestExpandDates_NoMatches(t *testing.T) {
	// Три будних дня, фильтр только по воскресеньям
	dates := expandDates(date(2025, 10, 6), date(2025, 10, 8), []int{6})

	assert.Empty(t, dates)
}
