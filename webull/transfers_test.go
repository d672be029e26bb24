package webull

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"tradegains"
	"tradegains/date"
)

func TestParseTransfers(t *testing.T) {
	// Two completed deposits on the same day merge, a withdrawal flips
	// sign, pending and canceled rows drop out.
	csv := `Date,Type,Amount,Status
2025-01-02,ACH Deposit,"1,000.00",Completed
2025-01-02,ACH Deposit,$500.00,Completed
2025-02-10,ACH Withdrawal,-250.00,Completed
2025-03-01,ACH Deposit,900.00,Pending
2025-03-02,Wire Withdrawal,100.00,Canceled
`
	flows, err := ParseTransfers(strings.NewReader(csv))
	require.NoError(t, err)

	want := []tradegains.CashFlow{
		{Date: date.MustParse("2025-01-02"), Amount: decimal.NewFromInt(-1500)},
		{Date: date.MustParse("2025-02-10"), Amount: decimal.NewFromInt(250)},
	}
	if diff := cmp.Diff(want, flows, cmpOpts); diff != "" {
		t.Errorf("ParseTransfers mismatch (-want +got):\n%s", diff)
	}
}

func TestParseTransfers_transferDateColumn(t *testing.T) {
	csv := `Transfer Date,Type,Amount,Status
01/15/2025,Deposit,2000,Completed
`
	flows, err := ParseTransfers(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, flows, 1)
	require.Equal(t, date.MustParse("2025-01-15"), flows[0].Date)
	require.True(t, flows[0].Amount.Equal(decimal.NewFromInt(-2000)), "Amount = %s", flows[0].Amount)
}

func TestParseTransfers_missingStatusKept(t *testing.T) {
	csv := `Date,Type,Amount
2025-01-02,Deposit,100
`
	flows, err := ParseTransfers(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, flows, 1)
}

func TestParseTransfers_dropsUnusableRows(t *testing.T) {
	csv := `Date,Type,Amount,Status
not a date,Deposit,100,Completed
2025-01-02,Deposit,not a number,Completed
2025-01-03,Deposit,0,Completed
`
	flows, err := ParseTransfers(strings.NewReader(csv))
	require.NoError(t, err)
	require.Empty(t, flows)
}
