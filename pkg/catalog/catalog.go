// Package catalog holds the read-only place name to region lookup table.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"pkg.jsn.cam/geotally/pkg/region"
)

// Catalog maps a lowercase place name to its region. Keys are either plain
// names ("sydney", "bankstown") or suburb/state composites such as
// "richmond (vic.)". A Catalog is never modified after it is built, so it
// is safe to share between scanning goroutines.
type Catalog struct {
	entries map[string]region.Code
}

// New builds a catalog from name -> code pairs. Names are lowercased and
// trimmed.
func New(entries map[string]region.Code) *Catalog {
	c := &Catalog{entries: make(map[string]region.Code, len(entries))}
	for name, code := range entries {
		c.entries[normalize(name)] = code
	}
	return c
}

// Lookup returns the region for an already normalized name.
func (c *Catalog) Lookup(name string) (region.Code, bool) {
	if c == nil {
		return 0, false
	}
	code, ok := c.entries[name]
	return code, ok
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// entry is one value of the reference table. Only gcc is used.
type entry struct {
	State string `json:"ste"`
	GCC   string `json:"gcc"`
	SAL   string `json:"sal"`
}

// Decode reads a reference table of the form
//
//	{"sydney": {"ste": "1", "gcc": "1gsyd", "sal": "13730"}, ...}
//
// Entries whose gcc is not one of the nine region codes (rural areas) are
// dropped, since they can never be counted.
func Decode(r io.Reader) (*Catalog, error) {
	var raw map[string]entry
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	c := &Catalog{entries: make(map[string]region.Code, len(raw))}
	for name, e := range raw {
		code, ok := region.Parse(e.GCC)
		if !ok {
			continue
		}
		c.entries[normalize(name)] = code
	}

	return c, nil
}

// Load opens and decodes the reference table at path.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrCatalogNotFound, path)
		}
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	c, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return c, nil
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
