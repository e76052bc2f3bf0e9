// Package dict loads the static API dictionaries used for identifier
// lookups: JSON files describing the public procedures and functions of
// database API packages, keyed by package alias.
package dict

import (
	"io"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

type (
	// Procedure describes one callable entry of an API package.
	Procedure struct {
		// Label is the public name, e.g. "APEX_UTIL.GET_SESSION_ID"
		Label string `json:"label"`

		// Detail is the internal name behind the public synonym
		Detail string `json:"detail"`

		// Kind is "procedure" or "function"
		Kind string `json:"kind"`

		// ReturnType is set for functions only
		ReturnType string `json:"returnType,omitempty"`

		// Signature is the full rendered call signature
		Signature string `json:"signature"`
	}

	// Package groups the procedures published under one package alias.
	Package struct {
		Name       string      `json:"name"`
		Procedures []Procedure `json:"procedures"`
	}

	// Dictionary is a loaded API dictionary file.
	Dictionary struct {
		Packages []Package `json:"packages"`
	}
)

// Load parses a dictionary from the provided io.Reader.
func Load(r io.Reader) (*Dictionary, error) {
	var d Dictionary
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal dictionary")
	}

	return &d, nil
}

// LoadFile loads a dictionary from the specified file path.
func LoadFile(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open file: %s", path)
	}
	defer func() { _ = f.Close() }()

	return Load(f)
}

// LoadFiles loads and merges every listed dictionary file, in order. Later
// files append; entries are never deduplicated, matching how the editor
// treats overlapping dictionaries.
func LoadFiles(paths ...string) (*Dictionary, error) {
	merged := new(Dictionary)
	for _, path := range paths {
		d, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		merged.Packages = append(merged.Packages, d.Packages...)
	}

	return merged, nil
}

// Package returns the package with the given alias, ignoring case, or nil.
func (d *Dictionary) Package(name string) *Package {
	for i := range d.Packages {
		if strings.EqualFold(d.Packages[i].Name, name) {
			return &d.Packages[i]
		}
	}
	return nil
}

// Lookup returns every procedure whose label starts with prefix, ignoring
// case. An empty prefix returns all entries.
func (d *Dictionary) Lookup(prefix string) []Procedure {
	prefix = strings.ToUpper(prefix)

	var out []Procedure
	for _, pkg := range d.Packages {
		for _, p := range pkg.Procedures {
			if strings.HasPrefix(strings.ToUpper(p.Label), prefix) {
				out = append(out, p)
			}
		}
	}
	return out
}

// Len returns the total number of procedures across all packages.
func (d *Dictionary) Len() int {
	n := 0
	for _, pkg := range d.Packages {
		n += len(pkg.Procedures)
	}
	return n
}
