package reconciler

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"sort"

	"go.uber.org/zap"

	"github.com/KyberNetwork/list-all-transactions/pkg/types"
)

var (
	ErrMissingArgument   = errors.New("missing argument")
	ErrMalformedArgument = errors.New("malformed argument")
)

// MintTable is height => address => amount minted by duplicate executions at that height.
type MintTable map[uint64]map[string]*big.Int

type SendKey struct {
	From string
	To   string
}

// SendTable is (from, to) => amount moved by duplicated sends.
type SendTable map[SendKey]*big.Int

// Totals is address => duplicated mint amount over all heights.
type Totals map[string]*big.Int

// Result holds the tables of one aggregation run. Amounts only ever come from
// duplicate heights, the canonical first height never contributes.
type Result struct {
	Mints  MintTable
	Sends  SendTable
	Totals Totals

	aliases AliasResolver
}

type MintEntry struct {
	Height  uint64
	Address string
	Alias   string
	Amount  *big.Int
}

type SendEntry struct {
	From      string
	FromAlias string
	To        string
	ToAlias   string
	Amount    *big.Int
}

type TotalEntry struct {
	Address string
	Alias   string
	Amount  *big.Int
}

type HeightTotal struct {
	Height uint64
	Amount *big.Int
}

// Aggregate sums the effect of every duplicate occurrence of tokens.mint and
// ledger.send transactions. Other methods are skipped. A mint adds its amounts
// once per duplicate height; a send adds its amount once per record.
// Aliases are only attached to the entries, they never change a sum.
func Aggregate(txs []*types.DuplicatedTransaction, aliases AliasResolver) (*Result, error) {
	r := &Result{
		Mints:   make(MintTable),
		Sends:   make(SendTable),
		Totals:  make(Totals),
		aliases: aliases,
	}
	skipped := make(map[string]int)

	for i, tx := range txs {
		var err error
		switch tx.Method {
		case types.MethodTokensMint:
			err = r.addMint(tx)
		case types.MethodLedgerSend:
			err = r.addSend(tx)
		default:
			skipped[tx.Method]++
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("record %d (%s %s): %w", i, tx.Method, tx.Hash, err)
		}
	}

	for method, n := range skipped {
		logger.Debugw("skipped transactions", "method", method, "count", n)
	}
	logger.Infow("aggregated duplicated transactions",
		"heights", len(r.Mints), "mintAddresses", len(r.Totals), "sendPairs", len(r.Sends))
	return r, nil
}

func decodeArgument(tx *types.DuplicatedTransaction, v interface{}) error {
	if tx.Argument == nil {
		return ErrMissingArgument
	}
	if err := json.Unmarshal([]byte(*tx.Argument), v); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedArgument, err)
	}
	if logger.Desugar().Core().Enabled(zap.DebugLevel) {
		logger.Debugw("decoded argument", "method", tx.Method, "hash", tx.Hash,
			"heights", tx.Heights, "argument", compactArgument(*tx.Argument))
	}
	return nil
}

func (r *Result) addMint(tx *types.DuplicatedTransaction) error {
	var arg types.MintArgument
	if err := decodeArgument(tx, &arg); err != nil {
		return err
	}

	for address, amount := range arg {
		if amount.Int == nil {
			return fmt.Errorf("%w: no amount for %s", ErrMalformedArgument, address)
		}
	}
	if len(arg) == 0 {
		return nil
	}

	// heights[0] is the only valid execution.
	for _, height := range tx.DuplicateHeights() {
		byAddress, ok := r.Mints[height]
		if !ok {
			byAddress = make(map[string]*big.Int)
			r.Mints[height] = byAddress
		}
		for address, amount := range arg {
			addTo(byAddress, address, amount.Int)
			addTo(r.Totals, address, amount.Int)
		}
	}
	return nil
}

func (r *Result) addSend(tx *types.DuplicatedTransaction) error {
	var arg types.SendArgument
	if err := decodeArgument(tx, &arg); err != nil {
		return err
	}
	if arg.From == "" || arg.To == "" || arg.Amount.Int == nil {
		return fmt.Errorf("%w: send needs from, to and amount", ErrMalformedArgument)
	}

	// Heights do not key sends: any duplication counts as one extra transfer.
	if len(tx.DuplicateHeights()) == 0 {
		return nil
	}
	key := SendKey{From: arg.From, To: arg.To}
	if _, ok := r.Sends[key]; !ok {
		r.Sends[key] = new(big.Int)
	}
	r.Sends[key].Add(r.Sends[key], arg.Amount.Int)
	return nil
}

func addTo(m map[string]*big.Int, address string, amount *big.Int) {
	acc, ok := m[address]
	if !ok {
		acc = new(big.Int)
		m[address] = acc
	}
	acc.Add(acc, amount)
}

// MintEntries lists the mint table by ascending height, then address.
func (r *Result) MintEntries() []MintEntry {
	heights := make([]uint64, 0, len(r.Mints))
	for h := range r.Mints {
		heights = append(heights, h)
	}
	sort.Slice(heights, func(i, j int) bool { return heights[i] < heights[j] })

	var entries []MintEntry
	for _, h := range heights {
		for _, address := range sortedKeys(r.Mints[h]) {
			entries = append(entries, MintEntry{
				Height:  h,
				Address: address,
				Alias:   aliasOf(r.aliases, address),
				Amount:  new(big.Int).Set(r.Mints[h][address]),
			})
		}
	}
	return entries
}

// SendEntries lists the send table by ascending (from, to).
func (r *Result) SendEntries() []SendEntry {
	keys := make([]SendKey, 0, len(r.Sends))
	for k := range r.Sends {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].From != keys[j].From {
			return keys[i].From < keys[j].From
		}
		return keys[i].To < keys[j].To
	})

	entries := make([]SendEntry, 0, len(keys))
	for _, k := range keys {
		entries = append(entries, SendEntry{
			From:      k.From,
			FromAlias: aliasOf(r.aliases, k.From),
			To:        k.To,
			ToAlias:   aliasOf(r.aliases, k.To),
			Amount:    new(big.Int).Set(r.Sends[k]),
		})
	}
	return entries
}

// TotalEntries lists per-address mint totals by ascending address.
func (r *Result) TotalEntries() []TotalEntry {
	entries := make([]TotalEntry, 0, len(r.Totals))
	for _, address := range sortedKeys(r.Totals) {
		entries = append(entries, TotalEntry{
			Address: address,
			Alias:   aliasOf(r.aliases, address),
			Amount:  new(big.Int).Set(r.Totals[address]),
		})
	}
	return entries
}

// HeightTotals sums the mint table per height, by ascending height.
func (r *Result) HeightTotals() []HeightTotal {
	var totals []HeightTotal
	for _, e := range r.MintEntries() {
		if n := len(totals); n > 0 && totals[n-1].Height == e.Height {
			totals[n-1].Amount.Add(totals[n-1].Amount, e.Amount)
			continue
		}
		totals = append(totals, HeightTotal{Height: e.Height, Amount: e.Amount})
	}
	return totals
}

// GrandTotal is the sum of all duplicated mints.
func (r *Result) GrandTotal() *big.Int {
	sum := new(big.Int)
	for _, amount := range r.Totals {
		sum.Add(sum, amount)
	}
	return sum
}

func sortedKeys(m map[string]*big.Int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
