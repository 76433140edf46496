package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeatIDRoundTrip(t *testing.T) {
	id := NewSeatID(Seat{ID: 42, Row: 3, SeatNumber: 17})
	assert.Equal(t, SeatID("S42-3-17"), id)

	ref, err := id.Ref()
	require.NoError(t, err)
	assert.Equal(t, SeatRef{RowNumber: 3, SeatNumber: 17}, ref)
}

func TestSeatIDRefMalformed(t *testing.T) {
	for _, raw := range []string{"", "S1", "S1-1", "S1-x-2", "S1-2-y", "S1-1-2-3"} {
		_, err := SeatID(raw).Ref()
		assert.Error(t, err, raw)
	}
}

func TestSeatIDLabel(t *testing.T) {
	assert.Equal(t, "R1S5", SeatID("S1-1-5").Label())
	assert.Equal(t, "garbage", SeatID("garbage").Label())
}

func TestTicketTypeWireID(t *testing.T) {
	assert.Equal(t, 1, TicketStandard.WireID())
	assert.Equal(t, 2, TicketReduced.WireID())
	assert.Equal(t, 0, TicketType("vip").WireID())
}

func TestPaymentMethodValid(t *testing.T) {
	assert.True(t, PaymentBlik.Valid())
	assert.True(t, PaymentCard.Valid())
	assert.True(t, PaymentBankTransfer.Valid())
	assert.False(t, PaymentMethod("cash").Valid())
	assert.False(t, PaymentMethod("").Valid())
}

func TestCustomerComplete(t *testing.T) {
	c := Customer{FirstName: "Jan", LastName: "Kowalski", Email: "jan@example.com", PhoneNumber: "+48 600 000 000"}
	assert.True(t, c.Complete())

	c.Email = ""
	assert.False(t, c.Complete())
}

func TestCustomerMerge(t *testing.T) {
	c := Customer{FirstName: "Jan", Email: "jan@example.com"}
	last := "Kowalski"
	empty := ""
	merged := c.Merge(CustomerUpdate{LastName: &last, Email: &empty})

	assert.Equal(t, "Jan", merged.FirstName, "absent fields stay untouched")
	assert.Equal(t, "Kowalski", merged.LastName)
	assert.Empty(t, merged.Email, "present empty fields clear the value")
}
