package vocab

import (
	"path/filepath"
	"testing"
)

func TestStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocabulary.db")

	store, err := OpenStore(path)
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}

	terms, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(terms) != 0 {
		t.Errorf("fresh store terms = %v, want empty", terms)
	}

	saved := []string{"Clarity", "Balance", "Visual Appeal"}
	if err := store.Save(saved); err != nil {
		t.Fatalf("Save: %v", err)
	}
	store.Close()

	// Reopen: order survives the round trip.
	store, err = OpenStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer store.Close()

	terms, err = store.Load()
	if err != nil {
		t.Fatalf("Load after reopen: %v", err)
	}
	if len(terms) != 3 {
		t.Fatalf("terms = %v, want 3", terms)
	}
	for i, want := range saved {
		if terms[i] != want {
			t.Errorf("terms[%d] = %q, want %q", i, terms[i], want)
		}
	}
}

func TestStoreSaveReplaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocabulary.db")

	store, err := OpenStore(path)
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	defer store.Close()

	if err := store.Save([]string{"Old", "Stale"}); err != nil {
		t.Fatalf("first Save: %v", err)
	}
	if err := store.Save([]string{"Fresh"}); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	terms, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(terms) != 1 || terms[0] != "Fresh" {
		t.Errorf("terms = %v, want [Fresh]", terms)
	}
}
