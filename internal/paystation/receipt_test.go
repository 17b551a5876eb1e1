package paystation

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/temoto/paystation/currency"
)

func TestReceipt(t *testing.T) {
	t.Parallel()
	issued := time.Date(2021, 5, 6, 10, 0, 0, 0, time.UTC)
	coins, err := CoinGroup(map[currency.Nominal]uint{Dime: 1, Quarter: 1})
	require.NoError(t, err)
	r := NewReceipt(14, 35, coins, issued)
	r2 := NewReceipt(14, 35, nil, issued)

	assert.Equal(t, 14, r.Value())
	assert.NotEqual(t, r.ID(), r2.ID())
	assert.Equal(t, 14*time.Minute, r.Duration())
	assert.Equal(t, issued.Add(14*time.Minute), r.ValidUntil())
	m := r.Coins()
	assert.Equal(t, map[currency.Nominal]uint{10: 1, 25: 1}, m)
	m[Dime] = 7
	assert.Equal(t, uint(1), r.Coins()[Dime], "receipt must not change")
	ng := r.CoinGroup()
	require.NoError(t, ng.Add(Nickel, 1))
	assert.Equal(t, currency.Amount(35), r.CoinGroup().Total(), "receipt must not change")
	assert.NotNil(t, r2.Coins())
	assert.Equal(t, currency.Amount(0), r2.CoinGroup().Total())
	assert.Contains(t, r.String(), "minutes=14 paid=0.35 issued=2021-05-06T10:00:00Z")
}

func TestReceiptQR(t *testing.T) {
	t.Parallel()
	r := NewReceipt(10, 25, nil, time.Now())

	bitmap, err := r.QR()
	require.NoError(t, err)
	require.NotEmpty(t, bitmap)
	for _, row := range bitmap {
		assert.Len(t, row, len(bitmap), "QR must be square")
	}

	text, err := r.QRText()
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	assert.Len(t, lines, (len(bitmap)+1)/2)
	assert.Contains(t, text, "█")
}
