package report

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/KyberNetwork/list-all-transactions/pkg/reconciler"
)

// WriteSummary writes the human readable diagnostics: per-address mint
// totals with the grand total, the duplicated sends, and the per-height sums.
func WriteSummary(w io.Writer, r *reconciler.Result) error {
	bw := bufio.NewWriter(w)
	writeTotals(bw, r)
	writeSends(bw, r.SendEntries())
	writeHeights(bw, r.HeightTotals())
	return bw.Flush()
}

func writeTotals(w io.Writer, r *reconciler.Result) {
	entries := r.TotalEntries()
	grandTotal := r.GrandTotal().String()

	addrWidth, aliasWidth, amountWidth := len("ADDRESS"), len("ALIAS"), len("AMOUNT")
	for _, e := range entries {
		addrWidth = max(addrWidth, len(e.Address))
		aliasWidth = max(aliasWidth, len(e.Alias))
		amountWidth = max(amountWidth, len(e.Amount.String()))
	}
	amountWidth = max(amountWidth, len(grandTotal))

	fmt.Fprintln(w, "Duplicated mints by address:")
	fmt.Fprintf(w, "%-*s  %-*s  %*s\n", addrWidth, "ADDRESS", aliasWidth, "ALIAS", amountWidth, "AMOUNT")
	for _, e := range entries {
		fmt.Fprintf(w, "%-*s  %-*s  %*s\n", addrWidth, e.Address, aliasWidth, e.Alias, amountWidth, e.Amount.String())
	}
	fmt.Fprintf(w, "%-*s  %-*s  %*s\n", addrWidth, "TOTAL", aliasWidth, "", amountWidth, grandTotal)
}

func writeSends(w io.Writer, entries []reconciler.SendEntry) {
	fmt.Fprintf(w, "\nDuplicated sends (%d pairs):\n", len(entries))
	for _, e := range entries {
		fmt.Fprintf(w, "%s -> %s: %s\n", annotate(e.From, e.FromAlias), annotate(e.To, e.ToAlias), e.Amount)
	}
}

func writeHeights(w io.Writer, totals []reconciler.HeightTotal) {
	fmt.Fprintf(w, "\nDuplicated mints by height (%d heights):\n", len(totals))
	heightWidth, amountWidth := 0, 0
	for _, t := range totals {
		heightWidth = max(heightWidth, len(strconv.FormatUint(t.Height, 10)))
		amountWidth = max(amountWidth, len(t.Amount.String()))
	}
	for _, t := range totals {
		fmt.Fprintf(w, "%*d  %*s\n", heightWidth, t.Height, amountWidth, t.Amount.String())
	}
}

func annotate(address, alias string) string {
	if alias == "" {
		return address
	}
	return fmt.Sprintf("%s (%s)", address, alias)
}
