package webull

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"

	"tradegains"
	"tradegains/date"
)

// transferRow mirrors the columns of a Webull transfers export. Older
// exports label the date column "Transfer Date".
type transferRow struct {
	Date         string `csv:"Date"`
	TransferDate string `csv:"Transfer Date"`
	Type         string `csv:"Type"`
	Amount       string `csv:"Amount"`
	Status       string `csv:"Status"`
}

// ParseTransfers reads one Webull transfers CSV and returns the completed
// deposits and withdrawals as a merged external cash-flow series. Deposits
// are negative (money put in), withdrawals positive. Rows with an
// unparsable date or amount, or a status other than completed, are dropped.
func ParseTransfers(r io.Reader) ([]tradegains.CashFlow, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading transfers csv: %w", err)
	}
	flows, err := decodeTransfers(data)
	if err != nil {
		return nil, err
	}
	return tradegains.MergeFlows(flows), nil
}

func decodeTransfers(data []byte) ([]tradegains.CashFlow, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var rows []transferRow
	if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
		return nil, fmt.Errorf("decoding transfers csv: %w", err)
	}
	var flows []tradegains.CashFlow
	for _, row := range rows {
		if !transferDone(row.Status) {
			continue
		}
		raw := row.Date
		if row.TransferDate != "" {
			raw = row.TransferDate
		}
		when, ok := parseTime(raw)
		if !ok {
			continue
		}
		amount, ok := parseDecimal(row.Amount)
		if !ok || amount.IsZero() {
			continue
		}
		amount = amount.Abs()
		if !strings.Contains(strings.ToLower(row.Type), "withdraw") {
			amount = amount.Neg()
		}
		flows = append(flows, tradegains.CashFlow{Date: date.FromTime(when), Amount: amount})
	}
	return flows, nil
}

// transferDone reports whether a status marks a settled transfer. A missing
// status column keeps the row, pending and canceled transfers drop it.
func transferDone(status string) bool {
	s := strings.ToLower(strings.TrimSpace(status))
	return s == "" || strings.Contains(s, "complet") || strings.Contains(s, "success")
}
