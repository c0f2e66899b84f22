package prefs

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const (
	categoryPrefsFile = "category_prefs.json"
	gridPrefsFile     = "grid_prefs.json"
)

// GridColumn is one entry of the grid layout state. The core treats the
// whole list as opaque UI state; the json keys match what the grid
// component emits.
type GridColumn struct {
	Field string `json:"colId"`
	Order int    `json:"order"`
	Width int    `json:"width,omitempty"`
}

// FileStore persists preferences as flat JSON files in the data dir
type FileStore struct {
	dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// LoadCategories reads the saved category values. A missing or corrupt
// file yields an empty mapping, not an error: preferences are optional.
func (s *FileStore) LoadCategories() map[string][]string {
	var cats map[string][]string
	if !s.readJSON(categoryPrefsFile, &cats) || cats == nil {
		return map[string][]string{}
	}
	return cats
}

func (s *FileStore) SaveCategories(cats map[string][]string) error {
	return s.writeJSON(categoryPrefsFile, cats)
}

// LoadGrid reads the saved grid layout, empty when unset
func (s *FileStore) LoadGrid() []GridColumn {
	var cols []GridColumn
	if !s.readJSON(gridPrefsFile, &cols) {
		return []GridColumn{}
	}
	if cols == nil {
		cols = []GridColumn{}
	}
	return cols
}

func (s *FileStore) SaveGrid(cols []GridColumn) error {
	return s.writeJSON(gridPrefsFile, cols)
}

func (s *FileStore) readJSON(name string, out interface{}) bool {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return false
	}
	return json.Unmarshal(data, out) == nil
}

func (s *FileStore) writeJSON(name string, v interface{}) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.dir, name), data, 0o644)
}
