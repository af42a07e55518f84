package bulk_update

import "time"

// weekdayIndex возвращает номер дня недели в нумерации фильтра: 0=Пн .. 6=Вс
func weekdayIndex(date time.Time) int {
	return (int(date.Weekday()) + 6) % 7
}

// expandDates раскрывает период (границы включительно) в список дат,
// применяя фильтр дней недели; пустой фильтр пропускает все дни
func expandDates(from, to time.Time, weekdays []int) []time.Time {
	allowed := make(map[int]bool, len(weekdays))
	for _, wd := range weekdays {
		allowed[wd] = true
	}

	dates := make([]time.Time, 0)
	for date := from; !date.After(to); date = date.AddDate(0, 0, 1) {
		if len(allowed) > 0 && !allowed[weekdayIndex(date)] {
			continue
		}
		dates = append(dates, date)
	}

	return dates
}
