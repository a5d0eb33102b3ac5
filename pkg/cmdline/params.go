package cmdline

import "bytes"

// Param is a single command line parameter.
type Param struct {
	// Name is the parameter name. It is never empty.
	Name []byte

	// Value is the parameter value. Only meaningful if HasValue is set.
	Value []byte

	// HasValue is true if the parameter was written as name=value.
	// "name=" yields HasValue with an empty Value; a bare "name" does not.
	HasValue bool
}

// NewParam returns a parameter without a value.
func NewParam(name string) Param {
	return Param{Name: []byte(name)}
}

// NewValueParam returns a parameter with a value, which may be empty.
func NewValueParam(name, value string) Param {
	return Param{Name: []byte(name), Value: []byte(value), HasValue: true}
}

// Equal reports whether p and o have the same name and value.
func (p Param) Equal(o Param) bool {
	if !bytes.Equal(p.Name, o.Name) || p.HasValue != o.HasValue {
		return false
	}
	return !p.HasValue || bytes.Equal(p.Value, o.Value)
}

// Params is an ordered list of parameters in command line order.
type Params []Param

// Len returns the number of parameters.
func (ps Params) Len() int {
	return len(ps)
}

// Has reports whether a parameter with the given name is present.
func (ps Params) Has(name string) bool {
	_, ok := ps.Lookup(name)
	return ok
}

// Lookup returns the last parameter with the given name. Later occurrences
// override earlier ones, as they do for most kernel parameters.
func (ps Params) Lookup(name string) (Param, bool) {
	for i := len(ps) - 1; i >= 0; i-- {
		if string(ps[i].Name) == name {
			return ps[i], true
		}
	}
	return Param{}, false
}

// Get returns the value of the last parameter with the given name.
// ok is false if the parameter is absent or was given without a value.
func (ps Params) Get(name string) (value []byte, ok bool) {
	p, found := ps.Lookup(name)
	if !found || !p.HasValue {
		return nil, false
	}
	return p.Value, true
}

// All returns every parameter with the given name, in order.
func (ps Params) All(name string) Params {
	var out Params
	for _, p := range ps {
		if string(p.Name) == name {
			out = append(out, p)
		}
	}
	return out
}

// Names returns the distinct parameter names in order of first appearance.
func (ps Params) Names() []string {
	seen := make(map[string]bool, len(ps))
	var names []string
	for _, p := range ps {
		n := string(p.Name)
		if !seen[n] {
			seen[n] = true
			names = append(names, n)
		}
	}
	return names
}

// Equal reports whether ps and o contain equal parameters in the same order.
func (ps Params) Equal(o Params) bool {
	if len(ps) != len(o) {
		return false
	}
	for i := range ps {
		if !ps[i].Equal(o[i]) {
			return false
		}
	}
	return true
}
