package bulk_update

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unitsOpen и overridePrice принимают и число, и строку-выражение
func TestToUseCaseRequest_ExpressionValues(t *testing.T) {
	body := `{
		"from": "2025-10-01",
		"to": "2025-10-31",
		"weekdays": [5, 6],
		"updates": {
			"unitsOpen": "80%",
			"overridePrice": "+10"
		}
	}`

	var req BulkUpdateRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	useCaseReq, err := req.ToUseCaseRequest(1, 10)
	require.NoError(t, err)

	require.NotNil(t, useCaseReq.Updates.UnitsOpen)
	assert.Equal(t, 8, useCaseReq.Updates.UnitsOpen.Resolve(10))

	require.NotNil(t, useCaseReq.Updates.OverridePrice)
	assert.InDelta(t, 110.0, useCaseReq.Updates.OverridePrice.Resolve(100), 0.001)

	assert.Equal(t, []int{5, 6}, useCaseReq.Weekdays)
}

func TestToUseCaseRequest_NumericValues(t *testing.T) {
	body := `{
		"from": "2025-10-01",
		"to": "2025-10-31",
		"updates": {
			"unitsOpen": 3,
			"overridePrice": 95.5
		}
	}`

	var req BulkUpdateRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	useCaseReq, err := req.ToUseCaseRequest(1, 10)
	require.NoError(t, err)

	require.NotNil(t, useCaseReq.Updates.UnitsOpen)
	assert.Equal(t, 3, useCaseReq.Updates.UnitsOpen.Resolve(10))

	require.NotNil(t, useCaseReq.Updates.OverridePrice)
	assert.InDelta(t, 95.5, useCaseReq.Updates.OverridePrice.Resolve(100), 0.001)
}

func TestToUseCaseRequest_InvalidExpression(t *testing.T) {
	body := `{
		"from": "2025-10-01",
		"to": "2025-10-31",
		"updates": {
			"unitsOpen": "150%"
		}
	}`

	var req BulkUpdateRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	_, err := req.ToUseCaseRequest(1, 10)
	assert.Error(t, err)
}

func TestToUseCaseRequest_InvalidDate(t *testing.T) {
	req := BulkUpdateRequest{From: "01.10.2025", To: "2025-10-31"}

	_, err := req.ToUseCaseRequest(1, 10)
	assert.Error(t, err)
}
