package bulk_update

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUnitsExpr(t *testing.T) {
	tests := []struct {
		raw        string
		totalUnits int
		want       int
		wantErr    bool
	}{
		{raw: "3", totalUnits: 5, want: 3},
		{raw: "0", totalUnits: 5, want: 0},
		{raw: "50%", totalUnits: 10, want: 5},
		{raw: "50%", totalUnits: 5, want: 2}, // усечение вниз
		{raw: "100%", totalUnits: 7, want: 7},
		{raw: "0%", totalUnits: 7, want: 0},
		{raw: " 80% ", totalUnits: 10, want: 8},
		{raw: "101%", wantErr: true},
		{raw: "-5%", wantErr: true},
		{raw: "abc", wantErr: true},
		{raw: "%", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			expr, err := ParseUnitsExpr(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidExpression)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, expr.Resolve(tt.totalUnits))
		})
	}
}

func TestParsePriceExpr(t *testing.T) {
	tests := []struct {
		raw     string
		current float64
		want    float64
		wantErr bool
	}{
		{raw: "120", current: 100, want: 120},
		{raw: "120.50", current: 100, want: 120.50},
		{raw: "+10", current: 100, want: 110},
		{raw: "-10", current: 100, want: 90},
		{raw: "+25", current: 80, want: 100},
		{raw: "-100", current: 80, want: 0},
		{raw: "abc", wantErr: true},
		{raw: "+", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			expr, err := ParsePriceExpr(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidExpression)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, expr.Resolve(tt.current), 0.001)
		})
	}
}

// Относительная корректировка сдвигает каждую цену от её текущего значения
func TestPriceExpr_RelativePerRoom(t *testing.T) {
	expr, err := ParsePriceExpr("+10")
	require.NoError(t, err)

	assert.InDelta(t, 88.0, expr.Resolve(80), 0.001)
	assert.InDelta(t, 132.0, expr.Resolve(120), 0.001)
}

func TestPriceExpr_IsNegativeLiteral(t *testing.T) {
	assert.True(t, PriceLiteral(-5).IsNegativeLiteral())
	assert.False(t, PriceLiteral(5).IsNegativeLiteral())

	expr, err := ParsePriceExpr("-50")
	require.NoError(t, err)
	assert.False(t, expr.IsNegativeLiteral()) // относительная, не литерал
}
