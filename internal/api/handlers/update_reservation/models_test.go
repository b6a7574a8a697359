package update_reservation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateReservationRequest_DecodesTopLevelNotes(t *testing.T) {
	body := `{"notes": "rain check requested"}`

	var req UpdateReservationRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	ucReq, err := req.ToUseCaseRequest(42)
	require.NoError(t, err)
	require.NotNil(t, ucReq.Notes)
	assert.Equal(t, "rain check requested", *ucReq.Notes)
	assert.Nil(t, ucReq.Attributes)
}

func TestUpdateReservationRequest_DecodesPayBody(t *testing.T) {
	body := `{
		"attributes": {"connect_reservation_identifier": "conn-1"},
		"paying_slot_id": 7,
		"slots": [{"id": 7, "paid": true}],
		"payment_details": {"amount": 60.0, "fop": "visa", "fop_last_4_digits": "4242",
			"payment_datetime": "2026-06-15T09:30:00Z"}
	}`

	var req UpdateReservationRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	ucReq, err := req.ToUseCaseRequest(42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), ucReq.ReservationID)
	require.NotNil(t, ucReq.PayingSlotID)
	assert.Equal(t, int64(7), *ucReq.PayingSlotID)
	require.Len(t, ucReq.Slots, 1)
	assert.True(t, ucReq.Slots[0].Paid)
	require.NotNil(t, ucReq.Attributes)
	assert.Equal(t, "conn-1", *ucReq.Attributes.ConnectReservationIdentifier)
	assert.InDelta(t, 60.0, *ucReq.PaymentDetails.Amount, 0.001)
	require.NotNil(t, ucReq.PaymentDetails.PaymentDatetime)
	assert.Equal(t, "2026-06-15T09:30:00Z", ucReq.PaymentDetails.PaymentDatetime.Format("2006-01-02T15:04:05Z07:00"))
}
