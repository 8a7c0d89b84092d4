package enum

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentMethodUnmarshalJSON(t *testing.T) {
	var m PaymentMethod
	require.NoError(t, json.Unmarshal([]byte(`"Card"`), &m))
	assert.Equal(t, PaymentMethodCard, m)

	// An unknown name must surface as an error, not fall back to Cash
	assert.Error(t, json.Unmarshal([]byte(`"Cheque"`), &m))
}

func TestPaymentStatusUnmarshalJSON(t *testing.T) {
	var s PaymentStatus
	require.NoError(t, json.Unmarshal([]byte(`"Unpaid"`), &s))
	assert.Equal(t, PaymentStatusUnpaid, s)

	assert.Error(t, json.Unmarshal([]byte(`"Settled"`), &s))
}

func TestRefundTypeUnmarshalJSON(t *testing.T) {
	var r RefundType
	require.NoError(t, json.Unmarshal([]byte(`"Mixed"`), &r))
	assert.Equal(t, RefundTypeMixed, r)

	assert.Error(t, json.Unmarshal([]byte(`"StoreCredit"`), &r))
}
