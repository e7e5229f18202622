package knowledge

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleDocument = `{
  "museum": "Museo Pumapungo",
  "areas": {
    "sala_arqueologia": {
      "name": "Archaeology Hall",
      "description": "Pre-Columbian artifacts from the southern highlands.",
      "history": "Opened in 1981 on the Pumapungo archaeological site.",
      "highlighted_objects": ["Inca ceremonial axe", "Cañari funeral urn", "Spondylus shell necklace"],
      "curiosities": ["The site was a Tomebamba palace complex.", "Some urns still held maize when excavated.", "The shells travelled 400 km from the coast."],
      "principal_themes": ["Cañari culture", "Inca expansion"],
      "detailed_narrative": ["The hall follows the valley's occupation in chronological order."]
    }
  }
}`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "museum_knowledge.json")
	if err := os.WriteFile(path, []byte(sampleDocument), 0o644); err != nil {
		t.Fatal(err)
	}

	store := Load(path)
	if store.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", store.Len())
	}
	if store.Museum() != "Museo Pumapungo" {
		t.Errorf("Museum() = %q", store.Museum())
	}

	entry, ok := store.Lookup("sala_arqueologia")
	if !ok {
		t.Fatal("Lookup returned no entry")
	}
	if entry.Name != "Archaeology Hall" {
		t.Errorf("Name = %q", entry.Name)
	}
	if len(entry.HighlightedObjects) != 3 || len(entry.Curiosities) != 3 {
		t.Errorf("objects/curiosities = %d/%d, want 3/3",
			len(entry.HighlightedObjects), len(entry.Curiosities))
	}

	if _, ok := store.Lookup("sala_inexistente"); ok {
		t.Error("Lookup of unknown code should report false")
	}
}

func TestLoadMissingFileDegradesToEmpty(t *testing.T) {
	store := Load(filepath.Join(t.TempDir(), "nope.json"))
	if store.Len() != 0 {
		t.Errorf("Len() = %d, want 0", store.Len())
	}
	if _, ok := store.Lookup("anything"); ok {
		t.Error("empty store should never find entries")
	}
}

func TestLoadMalformedFileDegradesToEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if store := Load(path); store.Len() != 0 {
		t.Errorf("Len() = %d, want 0", store.Len())
	}
}
