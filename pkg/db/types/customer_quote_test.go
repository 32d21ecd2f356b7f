package dbtypes

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCustomerQuoteRoundTrip(t *testing.T) {
	perUnit := 2.58
	total := 12900.00
	sentAt := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

	original := CustomerQuote{
		PerUnit: &perUnit,
		Total:   &total,
		Sent:    true,
		SentAt:  &sentAt,
	}

	val, err := original.Value()
	require.NoError(t, err)

	var decoded CustomerQuote
	require.NoError(t, decoded.Scan(val))
	require.NotNil(t, decoded.PerUnit)
	require.NotNil(t, decoded.Total)
	require.Equal(t, perUnit, *decoded.PerUnit)
	require.Equal(t, total, *decoded.Total)
	require.True(t, decoded.Sent)
	require.NotNil(t, decoded.SentAt)
	require.True(t, sentAt.Equal(*decoded.SentAt))
	require.True(t, decoded.HasPrice())
}

func TestCustomerQuoteEmptyStoredAsNull(t *testing.T) {
	val, err := CustomerQuote{}.Value()
	require.NoError(t, err)
	require.Nil(t, val)
}

func TestCustomerQuoteScanNil(t *testing.T) {
	var q CustomerQuote
	require.NoError(t, q.Scan(nil))
	require.Nil(t, q.PerUnit)
	require.Nil(t, q.Total)
	require.False(t, q.Sent)
	require.False(t, q.HasPrice())
}

func TestCustomerQuoteScanBytes(t *testing.T) {
	var q CustomerQuote
	require.NoError(t, q.Scan([]byte(`{"per_unit":115,"total":1150,"sent":false}`)))
	require.True(t, q.HasPrice())
	require.Equal(t, 115.0, *q.PerUnit)
	require.False(t, q.Sent)
}

func TestCustomerQuoteScanUnsupported(t *testing.T) {
	var q CustomerQuote
	require.Error(t, q.Scan(42))
}
