package reconciler

import "sort"

// AliasMap is address => alias. A nil map resolves nothing.
type AliasMap map[string]string

func (m AliasMap) Lookup(address string) (string, bool) {
	alias, ok := m[address]
	return alias, ok
}

// Addresses returns the aliased addresses in lexicographic order.
func (m AliasMap) Addresses() []string {
	addresses := make([]string, 0, len(m))
	for a := range m {
		addresses = append(addresses, a)
	}
	sort.Strings(addresses)
	return addresses
}

// aliasOf returns the alias of address or "" when there is none.
func aliasOf(aliases AliasResolver, address string) string {
	if aliases == nil {
		return ""
	}
	alias, _ := aliases.Lookup(address)
	return alias
}
