package report

import (
	"io"

	"github.com/gocarina/gocsv"

	"github.com/KyberNetwork/list-all-transactions/pkg/reconciler"
	"github.com/KyberNetwork/list-all-transactions/pkg/types"
)

// MintRows converts mint entries to CSV rows, keeping their order.
func MintRows(entries []reconciler.MintEntry) []*types.MintRow {
	rows := make([]*types.MintRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, &types.MintRow{
			Height:  e.Height,
			Address: e.Address,
			Alias:   e.Alias,
			Amount:  e.Amount.String(),
		})
	}
	return rows
}

// WriteMintCSV writes one height,address,alias,amount line per entry.
func WriteMintCSV(w io.Writer, entries []reconciler.MintEntry, header bool) error {
	rows := MintRows(entries)
	if header {
		return gocsv.Marshal(rows, w)
	}
	return gocsv.MarshalWithoutHeaders(rows, w)
}
