package reconciler

// AliasResolver maps an address to its display name.
type AliasResolver interface {
	Lookup(address string) (alias string, ok bool)
}
