package cmdline

// ChangeKind classifies a difference between two command lines.
type ChangeKind string

const (
	ChangeAdded    ChangeKind = "added"
	ChangeRemoved  ChangeKind = "removed"
	ChangeModified ChangeKind = "modified"
)

// Change describes one parameter that differs between two command lines.
// Old is unset for additions and New is unset for removals.
type Change struct {
	Kind ChangeKind
	Name string
	Old  Param
	New  Param
}

// Diff compares two command lines by parameter name, using the last
// occurrence of each name. Changes for names in a come first, in a's order,
// followed by names only present in b, in b's order.
func Diff(a, b Params) []Change {
	var changes []Change

	for _, name := range a.Names() {
		old, _ := a.Lookup(name)
		cur, ok := b.Lookup(name)
		switch {
		case !ok:
			changes = append(changes, Change{Kind: ChangeRemoved, Name: name, Old: old})
		case !old.Equal(cur):
			changes = append(changes, Change{Kind: ChangeModified, Name: name, Old: old, New: cur})
		}
	}

	for _, name := range b.Names() {
		if a.Has(name) {
			continue
		}
		cur, _ := b.Lookup(name)
		changes = append(changes, Change{Kind: ChangeAdded, Name: name, New: cur})
	}

	return changes
}
