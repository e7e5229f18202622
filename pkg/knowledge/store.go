// Package knowledge holds the curated museum knowledge base: per-area facts
// distilled from the institution's own documentation. The store is loaded
// once at startup and read-only afterwards, so it may be shared freely
// between the foreground request path and background generation workers.
package knowledge

import (
	"encoding/json"
	"log"
	"os"
)

// Entry is the curated material for one museum area.
type Entry struct {
	Name               string   `json:"name"`
	Description        string   `json:"description"`
	History            string   `json:"history"`
	HighlightedObjects []string `json:"highlighted_objects"`
	Curiosities        []string `json:"curiosities"`
	PrincipalThemes    []string `json:"principal_themes"`
	DetailedNarrative  []string `json:"detailed_narrative"`
}

type document struct {
	Museum string           `json:"museum"`
	Areas  map[string]Entry `json:"areas"`
}

// Store maps area codes to curated entries.
type Store struct {
	museum  string
	entries map[string]Entry
}

// Load reads the knowledge document from path. A missing or malformed file
// is not an error: the store comes up empty and content generation degrades
// to generative-only mode.
func Load(path string) *Store {
	empty := &Store{entries: map[string]Entry{}}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("[WARN] knowledge base not loaded from %s: %v (generative-only mode)", path, err)
		return empty
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		log.Printf("[WARN] knowledge base %s is malformed: %v (generative-only mode)", path, err)
		return empty
	}
	if doc.Areas == nil {
		doc.Areas = map[string]Entry{}
	}

	log.Printf("[INFO] knowledge base loaded: %d areas (%s)", len(doc.Areas), doc.Museum)
	return &Store{museum: doc.Museum, entries: doc.Areas}
}

// NewStore builds a store from in-memory entries. Used by tests and seeds.
func NewStore(entries map[string]Entry) *Store {
	if entries == nil {
		entries = map[string]Entry{}
	}
	return &Store{entries: entries}
}

// Lookup returns the curated entry for an area code, false when the base
// has nothing for it.
func (s *Store) Lookup(code string) (Entry, bool) {
	e, ok := s.entries[code]
	return e, ok
}

// Museum returns the institution name from the document, if present.
func (s *Store) Museum() string { return s.museum }

// Len reports how many areas have curated material.
func (s *Store) Len() int { return len(s.entries) }
