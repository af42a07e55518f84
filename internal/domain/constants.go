package domain

// EffectiveStatus производный статус дня для календаря хоста
// Комбинирует статус на уровне листинга и состояние инвентаря комнат
type EffectiveStatus string

const (
	EffectiveStatusOpen     EffectiveStatus = "OPEN"
	EffectiveStatusClosed   EffectiveStatus = "CLOSED"
	EffectiveStatusBlocked  EffectiveStatus = "BLOCKED"
	EffectiveStatusStopSell EffectiveStatus = "STOP_SELL"
	EffectiveStatusFull     EffectiveStatus = "FULL"
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Business validation constants
const (
	MinStayFloor  = 1
	MaxNoteLength = 500
)

// Weekday numbering for bulk-update filters: 0=Monday .. 6=Sunday
const (
	WeekdayMonday = iota
	WeekdayTuesday
	WeekdayWednesday
	WeekdayThursday
	WeekdayFriday
	WeekdaySaturday
	WeekdaySunday
)
