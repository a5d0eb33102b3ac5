package cmdline

import (
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"golang.org/x/crypto/blake2b"
)

// snapshotVersion is the current snapshot format version.
const snapshotVersion = 1

// ErrSnapshotVersion is returned when decoding a snapshot of an unknown version.
var ErrSnapshotVersion = errors.New("unsupported snapshot version")

// snapshot is the CBOR form of a parsed command line.
// Names and values are byte strings since the input need not be UTF-8.
type snapshot struct {
	Version uint8           `cbor:"1,keyasint"`
	Params  []snapshotParam `cbor:"2,keyasint"`
}

type snapshotParam struct {
	Name     []byte `cbor:"1,keyasint"`
	Value    []byte `cbor:"2,keyasint,omitempty"`
	HasValue bool   `cbor:"3,keyasint,omitempty"`
}

var (
	snapEncMode cbor.EncMode
	snapDecMode cbor.DecMode
)

func init() {
	var err error

	snapEncMode, err = cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsEmpty,
	}.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create snapshot CBOR encoder mode: %v", err))
	}

	snapDecMode, err = cbor.DecOptions{
		DupMapKey:   cbor.DupMapKeyEnforcedAPF,
		IndefLength: cbor.IndefLengthForbidden,
	}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create snapshot CBOR decoder mode: %v", err))
	}
}

// EncodeCBOR encodes params as a compact, deterministic CBOR snapshot.
func EncodeCBOR(params Params) ([]byte, error) {
	s := snapshot{Version: snapshotVersion, Params: make([]snapshotParam, len(params))}
	for i, p := range params {
		s.Params[i] = snapshotParam{Name: p.Name, Value: p.Value, HasValue: p.HasValue}
	}
	return snapEncMode.Marshal(s)
}

// DecodeCBOR decodes a snapshot produced by EncodeCBOR.
func DecodeCBOR(data []byte) (Params, error) {
	var s snapshot
	if err := snapDecMode.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if s.Version != snapshotVersion {
		return nil, fmt.Errorf("%w: %d", ErrSnapshotVersion, s.Version)
	}

	params := make(Params, 0, len(s.Params))
	for i, sp := range s.Params {
		if len(sp.Name) == 0 {
			return nil, fmt.Errorf("failed to decode snapshot: parameter %d has an empty name", i)
		}
		p := Param{Name: sp.Name, HasValue: sp.HasValue}
		if sp.HasValue {
			p.Value = sp.Value
			if p.Value == nil {
				p.Value = []byte{}
			}
		}
		params = append(params, p)
	}
	return params, nil
}

// Fingerprint returns the BLAKE2b-256 digest of the snapshot of params.
// Command lines that differ only in spacing or quoting share a fingerprint.
func Fingerprint(params Params) ([blake2b.Size256]byte, error) {
	data, err := EncodeCBOR(params)
	if err != nil {
		return [blake2b.Size256]byte{}, err
	}
	return blake2b.Sum256(data), nil
}

// IsSnapshot reports whether data looks like a CBOR snapshot rather than
// command line text. Snapshots start with a CBOR map header, a byte that
// never begins a text command line in practice.
func IsSnapshot(data []byte) bool {
	return len(data) > 0 && data[0] >= 0xa0 && data[0] <= 0xbf
}

// Entry is a text view of a parameter for JSON and YAML output.
// Value is nil for parameters written without '='.
type Entry struct {
	Name  string  `json:"name" yaml:"name"`
	Value *string `json:"value,omitempty" yaml:"value,omitempty"`
}

// Entries returns the text view of params.
func (ps Params) Entries() []Entry {
	entries := make([]Entry, len(ps))
	for i, p := range ps {
		entries[i].Name = string(p.Name)
		if p.HasValue {
			v := string(p.Value)
			entries[i].Value = &v
		}
	}
	return entries
}
