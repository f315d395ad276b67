package reconciler

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/tdewolff/minify/v2/json"

	"github.com/KyberNetwork/list-all-transactions/pkg/types"
	"github.com/KyberNetwork/list-all-transactions/pkg/utils"
)

// Normalize converts a raw exported record into a DuplicatedTransaction.
// The argument is left undecoded; its shape depends on the method.
func Normalize(raw *types.RawDuplicatedTransaction) (*types.DuplicatedTransaction, error) {
	origTime, err := utils.ParseTime(raw.OrigTime)
	if err != nil {
		return nil, fmt.Errorf("origTime: %w", err)
	}
	maxTime, err := utils.ParseTime(raw.MaxTime)
	if err != nil {
		return nil, fmt.Errorf("maxTime: %w", err)
	}
	heights, err := utils.ParseHeights(raw.Height)
	if err != nil {
		return nil, fmt.Errorf("height: %w", err)
	}
	hash, err := utils.DecodePrefixedHash(raw.Hash)
	if err != nil {
		return nil, fmt.Errorf("hash: %w", err)
	}
	neighborhood, err := utils.ParseUint(raw.Neighborhood)
	if err != nil {
		return nil, fmt.Errorf("neighborhood: %w", err)
	}

	tx := &types.DuplicatedTransaction{
		OrigTime:     origTime,
		MaxTime:      maxTime,
		Method:       raw.Method,
		Heights:      heights,
		Hash:         hash,
		Argument:     raw.Argument,
		Neighborhood: neighborhood,
	}
	if raw.Count != "" {
		if tx.Count, err = utils.ParseUint(raw.Count); err != nil {
			return nil, fmt.Errorf("count: %w", err)
		}
		if tx.Count != uint64(len(heights)) {
			logger.Warnw("count does not match height list",
				"hash", tx.Hash, "count", tx.Count, "heights", len(heights))
		}
	}
	return tx, nil
}

// NormalizeAll normalizes every record or fails on the first malformed one.
func NormalizeAll(raws []*types.RawDuplicatedTransaction) ([]*types.DuplicatedTransaction, error) {
	txs := make([]*types.DuplicatedTransaction, 0, len(raws))
	for i, raw := range raws {
		tx, err := Normalize(raw)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		txs = append(txs, tx)
	}
	logger.Infow("normalized transactions", "count", len(txs))
	return txs, nil
}

// compactArgument minifies a JSON argument for logging, falling back to the raw text.
func compactArgument(arg string) string {
	out := new(bytes.Buffer)
	if err := json.Minify(nil, out, strings.NewReader(arg), nil); err != nil {
		return arg
	}
	return out.String()
}
