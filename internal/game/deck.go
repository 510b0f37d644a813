package game

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DeckFile represents the top-level YAML structure. Cards declares extra
// definitions on top of the built-in registry.
type DeckFile struct {
	Cards []*CardDef  `yaml:"cards"`
	Decks []DeckEntry `yaml:"decks"`
}

// DeckEntry represents a single deck in the YAML file.
type DeckEntry struct {
	Name  string      `yaml:"name"`
	Cards []CardEntry `yaml:"cards"`
}

// CardEntry represents a card and its count in a deck. Name may be a card
// id, a card name or an element.
type CardEntry struct {
	Name  string `yaml:"name"`
	Count int    `yaml:"count"`
}

// LoadDeckFile reads and decodes a deck file.
func LoadDeckFile(path string) (*DeckFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseDeckData(data)
}

// ParseDeckData decodes deck YAML.
func ParseDeckData(data []byte) (*DeckFile, error) {
	var df DeckFile
	if err := yaml.Unmarshal(data, &df); err != nil {
		return nil, fmt.Errorf("parse deck YAML: %w", err)
	}
	return &df, nil
}

// Lookup resolves a deck entry against the file's own cards first, then the
// registry.
func (df *DeckFile) Lookup(ref string) (*CardDef, error) {
	for _, def := range df.Cards {
		if def.ID == ref || def.Name == ref {
			return def, nil
		}
	}
	return LookupCard(ref)
}

// Composition expands a deck into one definition per copy.
func (df *DeckFile) Composition(deck DeckEntry) ([]*CardDef, error) {
	var defs []*CardDef
	for _, entry := range deck.Cards {
		def, err := df.Lookup(entry.Name)
		if err != nil {
			return nil, fmt.Errorf("deck %q: %w", deck.Name, err)
		}
		for i := 0; i < entry.Count; i++ {
			defs = append(defs, def)
		}
	}
	if len(defs) == 0 {
		return nil, fmt.Errorf("deck %q: %w", deck.Name, ErrEmptyPool)
	}
	return defs, nil
}

// ParseDeckFile parses a YAML deck file and returns a map of deck name → composition.
func ParseDeckFile(path string) (map[string][]*CardDef, error) {
	df, err := LoadDeckFile(path)
	if err != nil {
		return nil, err
	}

	decks := make(map[string][]*CardDef)
	for _, deck := range df.Decks {
		defs, err := df.Composition(deck)
		if err != nil {
			return nil, err
		}
		decks[deck.Name] = defs
	}

	return decks, nil
}

// DeckByName returns the composition of the named deck.
func DeckByName(path string, name string) ([]*CardDef, error) {
	df, err := LoadDeckFile(path)
	if err != nil {
		return nil, err
	}
	for _, deck := range df.Decks {
		if deck.Name == name {
			return df.Composition(deck)
		}
	}
	return nil, fmt.Errorf("deck %q not found (have %d decks)", name, len(df.Decks))
}

// DeckByNumber returns the Nth deck (1-indexed) from the deck file.
func DeckByNumber(path string, n int) (string, []*CardDef, error) {
	df, err := LoadDeckFile(path)
	if err != nil {
		return "", nil, err
	}

	if n < 1 || n > len(df.Decks) {
		return "", nil, fmt.Errorf("deck %d not found (have %d decks)", n, len(df.Decks))
	}

	deck := df.Decks[n-1]
	defs, err := df.Composition(deck)
	if err != nil {
		return "", nil, err
	}
	return deck.Name, defs, nil
}
