package create_reservation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateReservationRequest_DecodesSlotsKey(t *testing.T) {
	body := `{
		"notes": "member outing",
		"reservation_owner_golfpay_identifier": "gp-17",
		"slots": [
			{
				"golfer_attributes": {"golfpay_identifier": "gp-17", "first_name": "Carl"},
				"holes": "18_holes",
				"transportation": "cart",
				"slot_fees_attributes": [
					{"kind": "green_fee", "amount": 50, "tax": 5, "description": "Green fee"}
				]
			},
			{
				"guest_attributes": {"name": "Danny"},
				"holes": "9_holes",
				"transportation": "walking"
			}
		]
	}`

	var req CreateReservationRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	require.Len(t, req.Slots, 2)

	ucReq := req.ToUseCaseRequest("3-1781776800")
	assert.Equal(t, "3-1781776800", ucReq.TeeTimeIdentifier)
	assert.Equal(t, "member outing", *ucReq.Notes)
	assert.Equal(t, "gp-17", *ucReq.OwnerGolfpayIdentifier)

	require.Len(t, ucReq.Slots, 2)
	require.NotNil(t, ucReq.Slots[0].Golfer)
	assert.Equal(t, "Carl", *ucReq.Slots[0].Golfer.FirstName)
	require.Len(t, ucReq.Slots[0].Fees, 1)
	assert.Equal(t, "green_fee", ucReq.Slots[0].Fees[0].Kind)
	require.NotNil(t, ucReq.Slots[1].Guest)
	assert.Equal(t, "Danny", ucReq.Slots[1].Guest.Name)
}
