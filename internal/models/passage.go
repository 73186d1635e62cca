package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Passage is one reading-test text.
type Passage struct {
	ID    string `yaml:"id" json:"id"`
	Title string `yaml:"title" json:"title"`
	Text  string `yaml:"text" json:"text"`
}

// PassageLibrary holds all passages available for reading tests.
type PassageLibrary struct {
	Passages []Passage `yaml:"passages"`
}

// LoadPassages reads and parses the passages.yaml file.
func LoadPassages(path string) (*PassageLibrary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read passages file: %w", err)
	}

	var library PassageLibrary
	if err := yaml.Unmarshal(data, &library); err != nil {
		return nil, fmt.Errorf("failed to unmarshal passages YAML: %w", err)
	}

	return &library, nil
}

// Find returns the passage with the given id.
func (l *PassageLibrary) Find(id string) (Passage, bool) {
	for _, p := range l.Passages {
		if p.ID == id {
			return p, true
		}
	}
	return Passage{}, false
}
