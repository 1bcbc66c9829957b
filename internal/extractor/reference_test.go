package extractor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invocr/internal/domain"
	"invocr/internal/extractor"
)

func TestReferenceNumberExtractor_LabelledReferences(t *testing.T) {
	e := extractor.ReferenceNumberExtractor{}

	cases := []struct {
		name        string
		text        string
		wantValue   string
		wantType    domain.ReferenceType
		wantPattern string
	}{
		{"order_english", "Order No: ORD-12345", "ORD-12345", domain.ReferenceTypeOrderID, "OrderId"},
		{"order_hebrew", "הזמנה מספר: 45721", "45721", domain.ReferenceTypeOrderID, "OrderId"},
		{"booking", "Booking ID: BK-2024-001", "BK-2024-001", domain.ReferenceTypeBookingID, "BookingId"},
		{"confirmation_label", "Confirmation: QX7841", "QX7841", domain.ReferenceTypeBookingID, "BookingId"},
		{"reference", "Ref: 784512", "784512", domain.ReferenceTypeConfirmation, "Reference"},
		{"transaction", "Transaction ID: TXN-55821", "TXN-55821", domain.ReferenceTypeTransaction, "TransactionId"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := e.Extract(tc.text)
			require.NotNil(t, r.Value)
			assert.Equal(t, tc.wantValue, r.Value.Value)
			assert.Equal(t, tc.wantType, r.Value.Type)
			assert.Equal(t, tc.wantPattern, r.PatternUsed)
			assert.True(t, r.IsSuccess())
		})
	}
}

func TestReferenceNumberExtractor_OrderBeatsReference(t *testing.T) {
	e := extractor.ReferenceNumberExtractor{}
	r := e.Extract("Reference: REF-99\nOrder No: ORD-11223")
	require.NotNil(t, r.Value)
	assert.Equal(t, "ORD-11223", r.Value.Value)
	assert.Equal(t, domain.ReferenceTypeOrderID, r.Value.Type)
}

func TestReferenceNumberExtractor_NoMatch(t *testing.T) {
	e := extractor.ReferenceNumberExtractor{}

	t.Run("value_too_short", func(t *testing.T) {
		assert.Nil(t, e.Extract("Ref: 123").Value)
	})

	t.Run("no_reference", func(t *testing.T) {
		assert.Nil(t, e.Extract("חשבונית מס 1234").Value)
		assert.Nil(t, e.Extract("").Value)
	})
}
