package bulk_update

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/bedbees/BB-CalendarService/internal/domain"
	bulkUpdate "github.com/bedbees/BB-CalendarService/internal/usecase/bulk_update"
)

// BulkUpdatesRequest поля, применяемые к каждой дате периода
// unitsOpen принимает число либо строку-процент ("80%"),
// overridePrice - число либо строку относительной корректировки ("+10", "-10")
type BulkUpdatesRequest struct {
	Status  *string  `json:"status,omitempty"`
	Price   *float64 `json:"price,omitempty"`
	MinStay *int     `json:"minStay,omitempty"`
	Notes   *string  `json:"notes,omitempty"`

	UnitsOpen     json.RawMessage `json:"unitsOpen,omitempty"`
	StopSell      *bool           `json:"stopSell,omitempty"`
	CTA           *bool           `json:"cta,omitempty"`
	CTD           *bool           `json:"ctd,omitempty"`
	OverridePrice json.RawMessage `json:"overridePrice,omitempty"`
	Note          *string         `json:"note,omitempty"`
}

// BulkUpdateRequest HTTP request model
type BulkUpdateRequest struct {
	From       string             `json:"from"` // "2025-10-01"
	To         string             `json:"to"`   // "2025-10-31"
	Weekdays   []int              `json:"weekdays,omitempty"`
	Updates    BulkUpdatesRequest `json:"updates"`
	UpdateType string             `json:"updateType,omitempty"`
	Notes      string             `json:"notes,omitempty"`
}

// parseUnitsOpen разбирает значение unitsOpen: JSON-число или строка "NN%"
func parseUnitsOpen(raw json.RawMessage) (*bulkUpdate.UnitsExpr, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var literal int
	if err := json.Unmarshal(raw, &literal); err == nil {
		expr := bulkUpdate.UnitsLiteral(literal)
		return &expr, nil
	}

	var str string
	if err := json.Unmarshal(raw, &str); err != nil {
		return nil, fmt.Errorf("unitsOpen must be a number or a percentage string")
	}

	expr, err := bulkUpdate.ParseUnitsExpr(str)
	if err != nil {
		return nil, err
	}
	return &expr, nil
}

// parseOverridePrice разбирает значение overridePrice: JSON-число
// или строка "+NN" / "-NN"
func parseOverridePrice(raw json.RawMessage) (*bulkUpdate.PriceExpr, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var literal float64
	if err := json.Unmarshal(raw, &literal); err == nil {
		expr := bulkUpdate.PriceLiteral(literal)
		return &expr, nil
	}

	var str string
	if err := json.Unmarshal(raw, &str); err != nil {
		return nil, fmt.Errorf("overridePrice must be a number or an adjustment string")
	}

	expr, err := bulkUpdate.ParsePriceExpr(str)
	if err != nil {
		return nil, err
	}
	return &expr, nil
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *BulkUpdateRequest) ToUseCaseRequest(listingID, userID int64) (*bulkUpdate.Request, error) {
	from, err := time.Parse(domain.DateFormat, r.From)
	if err != nil {
		return nil, err
	}

	to, err := time.Parse(domain.DateFormat, r.To)
	if err != nil {
		return nil, err
	}

	unitsOpen, err := parseUnitsOpen(r.Updates.UnitsOpen)
	if err != nil {
		return nil, err
	}

	overridePrice, err := parseOverridePrice(r.Updates.OverridePrice)
	if err != nil {
		return nil, err
	}

	var status *domain.DayStatus
	if r.Updates.Status != nil {
		s := domain.DayStatus(*r.Updates.Status)
		status = &s
	}

	return &bulkUpdate.Request{
		ListingID: listingID,
		UserID:    userID,
		From:      from,
		To:        to,
		Weekdays:  r.Weekdays,
		Updates: bulkUpdate.Updates{
			Status:        status,
			Price:         r.Updates.Price,
			MinStay:       r.Updates.MinStay,
			Notes:         r.Updates.Notes,
			UnitsOpen:     unitsOpen,
			StopSell:      r.Updates.StopSell,
			CTA:           r.Updates.CTA,
			CTD:           r.Updates.CTD,
			OverridePrice: overridePrice,
			Note:          r.Updates.Note,
		},
		UpdateType: r.UpdateType,
		Notes:      r.Notes,
	}, nil
}
