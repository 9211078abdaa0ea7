package state

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"hdrbar/pkg/types"
)

type layoutFile struct {
	Layouts map[string]types.Layout `yaml:"layouts"`
}

// YAMLStore keeps every layout in a single YAML file
type YAMLStore struct {
	path  string
	mutex sync.Mutex
}

// NewYAMLStore creates a new YAML store. The file is created on first save.
func NewYAMLStore(path string) *YAMLStore {
	return &YAMLStore{path: path}
}

// readFile returns the file contents, or an empty set when it does not
// exist yet
func (s *YAMLStore) readFile() (*layoutFile, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &layoutFile{Layouts: map[string]types.Layout{}}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	var f layoutFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", s.path, err)
	}
	if f.Layouts == nil {
		f.Layouts = map[string]types.Layout{}
	}
	return &f, nil
}

func (s *YAMLStore) writeFile(f *layoutFile) error {
	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to encode layouts: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	// write next to the target and rename so readers never see half a file
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}
	return nil
}

// Load returns the layout stored under name
func (s *YAMLStore) Load(name string) (types.Layout, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	f, err := s.readFile()
	if err != nil {
		return types.Layout{}, err
	}

	layout, ok := f.Layouts[name]
	if !ok {
		return types.Layout{}, fmt.Errorf("%w: %q", ErrLayoutNotFound, name)
	}
	layout.Name = name
	return layout, nil
}

// Save stores a layout under its name, replacing any previous one
func (s *YAMLStore) Save(layout types.Layout) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	f, err := s.readFile()
	if err != nil {
		return err
	}

	if layout.UpdatedAt.IsZero() {
		layout.UpdatedAt = time.Now()
	}
	f.Layouts[layout.Name] = layout
	return s.writeFile(f)
}

// List returns the stored layout names in alphabetical order
func (s *YAMLStore) List() ([]string, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	f, err := s.readFile()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(f.Layouts))
	for name := range f.Layouts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes the layout stored under name
func (s *YAMLStore) Delete(name string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	f, err := s.readFile()
	if err != nil {
		return err
	}
	if _, ok := f.Layouts[name]; !ok {
		return fmt.Errorf("%w: %q", ErrLayoutNotFound, name)
	}

	delete(f.Layouts, name)
	return s.writeFile(f)
}

// Close implements Store
func (s *YAMLStore) Close() error {
	return nil
}
