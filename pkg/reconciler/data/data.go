package data

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/KyberNetwork/list-all-transactions/pkg/types"
)

// ReadTransactions reads the exported JSON array of duplicated transactions.
func ReadTransactions(path string) ([]*types.RawDuplicatedTransaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var txs []*types.RawDuplicatedTransaction
	if err := json.NewDecoder(f).Decode(&txs); err != nil {
		return nil, fmt.Errorf("could not decode transactions %s: %w", path, err)
	}
	for i, tx := range txs {
		if tx == nil {
			return nil, fmt.Errorf("could not decode transactions %s: record %d is null", path, i)
		}
	}
	return txs, nil
}

// ReadAliases reads an address => alias object. The file is JSON; content
// that is not valid JSON is read as a YAML mapping.
func ReadAliases(path string) (map[string]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if json.Valid(b) {
		aliases, err := decodeJSONAliases(b)
		if err != nil {
			return nil, fmt.Errorf("could not decode aliases %s: %w", path, err)
		}
		return aliases, nil
	}
	aliases := make(map[string]string)
	if err := yaml.Unmarshal(b, &aliases); err != nil {
		return nil, fmt.Errorf("could not decode aliases %s: %w", path, err)
	}
	return aliases, nil
}

// decodeJSONAliases walks the object token by token so null or non-string
// aliases and repeated addresses are rejected.
func decodeJSONAliases(b []byte) (map[string]string, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	if tok, err := dec.Token(); err != nil {
		return nil, err
	} else if tok != json.Delim('{') {
		return nil, fmt.Errorf("expected an object, got %v", tok)
	}

	aliases := make(map[string]string)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		address := tok.(string)
		if tok, err = dec.Token(); err != nil {
			return nil, err
		}
		alias, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("alias of %s must be a string, got %v", address, tok)
		}
		if _, dup := aliases[address]; dup {
			return nil, fmt.Errorf("address %s is defined twice", address)
		}
		aliases[address] = alias
	}
	return aliases, nil
}
