package money_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/DWRSH/point-of-sale/pkg/money"
)

func TestToCents_ExactConversion(t *testing.T) {
	// Classic float trap: 19.99 * 100 truncates to 1998 with a raw cast.
	assert.Equal(t, int64(1999), money.ToCents(19.99))
	assert.Equal(t, int64(10), money.ToCents(0.1))
	assert.Equal(t, int64(0), money.ToCents(0))
	assert.Equal(t, int64(18000), money.ToCents(180))
}

func TestToFloat_RoundTrip(t *testing.T) {
	assert.Equal(t, 19.99, money.ToFloat(1999))
	assert.Equal(t, 0.05, money.ToFloat(5))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "50.00", money.Format(5000))
	assert.Equal(t, "0.40", money.Format(40))
	assert.Equal(t, "0.00", money.Format(0))
}
