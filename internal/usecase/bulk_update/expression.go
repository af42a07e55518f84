package bulk_update

import (
	"fmt"
	"strconv"
	"strings"
)

// Значения-выражения пакетного обновления. Вместо разбора строк в момент
// применения каждое значение разбирается один раз в типизированный вариант
// (литерал / процент от вместимости / относительная корректировка) и затем
// резолвится независимо для каждой пары (дата, тип комнаты).

type exprKind int

const (
	exprLiteral exprKind = iota
	exprPercent
	exprRelative
)

// UnitsExpr значение units_open: литерал либо процент от total_units
type UnitsExpr struct {
	kind    exprKind
	literal int
	percent float64
}

// UnitsLiteral создает литеральное значение units_open
func UnitsLiteral(n int) UnitsExpr {
	return UnitsExpr{kind: exprLiteral, literal: n}
}

// ParseUnitsExpr разбирает строковое выражение units_open вида "80%"
func ParseUnitsExpr(raw string) (UnitsExpr, error) {
	raw = strings.TrimSpace(raw)

	if strings.HasSuffix(raw, "%") {
		percent, err := strconv.ParseFloat(strings.TrimSuffix(raw, "%"), 64)
		if err != nil {
			return UnitsExpr{}, fmt.Errorf("%w: units_open %q", ErrInvalidExpression, raw)
		}
		if percent < 0 || percent > 100 {
			return UnitsExpr{}, fmt.Errorf("%w: units_open percentage must be between 0%% and 100%%", ErrInvalidExpression)
		}
		return UnitsExpr{kind: exprPercent, percent: percent}, nil
	}

	literal, err := strconv.Atoi(raw)
	if err != nil {
		return UnitsExpr{}, fmt.Errorf("%w: units_open %q", ErrInvalidExpression, raw)
	}
	return UnitsLiteral(literal), nil
}

// Resolve вычисляет units_open против вместимости конкретного типа комнаты
// Процент усекается вниз: "50%" от 5 юнитов дает 2
func (e UnitsExpr) Resolve(totalUnits int) int {
	if e.kind == exprPercent {
		return int(float64(totalUnits) * e.percent / 100)
	}
	return e.literal
}

// PriceExpr значение override_price: литерал либо относительная
// процентная корректировка текущей цены ("+10" / "-10")
type PriceExpr struct {
	kind    exprKind
	literal float64
	adjust  float64 // знаковый процент
}

// PriceLiteral создает литеральное значение override_price
func PriceLiteral(v float64) PriceExpr {
	return PriceExpr{kind: exprLiteral, literal: v}
}

// ParsePriceExpr разбирает строковое выражение override_price вида "+10" или "-10"
func ParsePriceExpr(raw string) (PriceExpr, error) {
	raw = strings.TrimSpace(raw)

	if strings.HasPrefix(raw, "+") || strings.HasPrefix(raw, "-") {
		adjust, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return PriceExpr{}, fmt.Errorf("%w: override_price %q", ErrInvalidExpression, raw)
		}
		return PriceExpr{kind: exprRelative, adjust: adjust}, nil
	}

	literal, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return PriceExpr{}, fmt.Errorf("%w: override_price %q", ErrInvalidExpression, raw)
	}
	return PriceLiteral(literal), nil
}

// Resolve вычисляет цену против текущей цены (override или базовой):
// "+10" от 100.00 дает 110.00, "-10" от 100.00 дает 90.00
// Два типа комнат с разными текущими ценами сдвигаются каждый от своей
func (e PriceExpr) Resolve(current float64) float64 {
	if e.kind == exprRelative {
		return current * (1 + e.adjust/100)
	}
	return e.literal
}

// IsNegativeLiteral возвращает true для отрицательного литерала цены
func (e PriceExpr) IsNegativeLiteral() bool {
	return e.kind == exprLiteral && e.literal < 0
}
