package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/KyberNetwork/list-all-transactions/pkg/utils"
)

const (
	MethodTokensMint = "tokens.mint"
	MethodLedgerSend = "ledger.send"
)

// RawDuplicatedTransaction is one entry of the exported duplicated-transactions JSON array.
type RawDuplicatedTransaction struct {
	OrigTime     string  `json:"origTime"`
	MaxTime      string  `json:"maxTime"`
	Method       string  `json:"method"`
	Height       string  `json:"height"`
	Hash         string  `json:"hash"`
	Argument     *string `json:"argument"`
	Count        string  `json:"count"`
	Neighborhood string  `json:"neighborhood"`
}

type DuplicatedTransaction struct {
	OrigTime time.Time
	MaxTime  time.Time
	Method   string
	// Heights[0] is the canonical occurrence, every other entry is a duplicate.
	Heights []uint64
	Hash    hexutil.Bytes
	// Argument is kept undecoded until the method is known.
	Argument     *string
	Count        uint64
	Neighborhood uint64
}

// DuplicateHeights returns the heights at which the transaction was erroneously re-executed.
func (t *DuplicatedTransaction) DuplicateHeights() []uint64 {
	if len(t.Heights) < 2 {
		return nil
	}
	return t.Heights[1:]
}

// Amount is a non-negative integer token amount. It decodes from a JSON
// string ("50") or a bare JSON integer (50).
type Amount struct {
	*big.Int
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("%w %s: %v", utils.ErrMalformedAmount, data, err)
		}
		data = []byte(s)
	}
	v, ok := new(big.Int).SetString(string(data), 10)
	if !ok || v.Sign() < 0 {
		return fmt.Errorf("%w %q", utils.ErrMalformedAmount, data)
	}
	a.Int = v
	return nil
}

// MintArgument is the tokens.mint payload: address => minted amount.
type MintArgument map[string]Amount

// SendArgument is the ledger.send payload.
type SendArgument struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount Amount `json:"amount"`
	Symbol string `json:"symbol,omitempty"`
}

// MintRow is one line of the mint aggregation CSV.
type MintRow struct {
	Height  uint64 `csv:"height"`
	Address string `csv:"address"`
	Alias   string `csv:"alias"`
	Amount  string `csv:"amount"`
}
