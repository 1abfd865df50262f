package localstore

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// LoadFile reads a JSON object from path and returns it as a Snapshot.
// This is the format `localStorage` dumps are exported in by the dev tools.
func LoadFile(path string) (Snapshot, error) {
	obj, _, err := readObject(path)
	if err != nil {
		return nil, err
	}
	return FromJSONObject(obj), nil
}

// Document is a storage dump on disk that can be edited and written back.
// Values keep their decoded form, so keys nobody removed are saved as read.
type Document struct {
	path   string
	mode   os.FileMode
	values map[string]any
}

// OpenDocument reads the dump at path.
func OpenDocument(path string) (*Document, error) {
	obj, mode, err := readObject(path)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		obj = map[string]any{}
	}
	return &Document{path: path, mode: mode, values: obj}, nil
}

// Get implements Store.
func (d *Document) Get(key string) (string, bool, error) {
	v, ok := d.values[key]
	if !ok {
		return "", false, nil
	}
	s, ok := encodeValue(v)
	return s, ok, nil
}

// Keys implements Store. Keys are sorted.
func (d *Document) Keys() ([]string, error) {
	keys := make([]string, 0, len(d.values))
	for k := range d.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// Remove implements MutableStore. The file is untouched until Save.
func (d *Document) Remove(key string) error {
	delete(d.values, key)
	return nil
}

// Save writes the document back to its file.
func (d *Document) Save() error {
	data, err := json.MarshalIndent(d.values, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := os.WriteFile(d.path, append(data, '\n'), d.mode); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

func readObject(path string) (map[string]any, os.FileMode, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, 0, fmt.Errorf("read snapshot: %w", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("read snapshot: %w", err)
	}

	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, 0, fmt.Errorf("decode snapshot %s: %w", path, err)
	}
	return obj, info.Mode().Perm(), nil
}
