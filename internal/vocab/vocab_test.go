package vocab

import "testing"

func TestAddRejectsCaseInsensitiveDuplicate(t *testing.T) {
	s := NewSet()

	if !s.Add("Clarity") {
		t.Fatal("first Add should succeed")
	}
	if s.Add("clarity") {
		t.Error("case-insensitive duplicate should be rejected")
	}
	if s.Add("CLARITY") {
		t.Error("case-insensitive duplicate should be rejected")
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
}

func TestAddTrimsAndRejectsEmpty(t *testing.T) {
	s := NewSet()

	if s.Add("") || s.Add("   ") || s.Add("\t\n") {
		t.Error("blank terms should be rejected")
	}
	if !s.Add("  Balance  ") {
		t.Fatal("trimmed term should be accepted")
	}
	if s.Terms()[0] != "Balance" {
		t.Errorf("stored term = %q, want %q", s.Terms()[0], "Balance")
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	s := NewSet("Clarity", "Balance")

	if s.Remove("X") {
		t.Error("removing an absent term should report not-present")
	}
	if s.Len() != 2 {
		t.Errorf("Len = %d, want 2 (no-op remove changed the set)", s.Len())
	}

	if !s.Remove("Clarity") {
		t.Error("removing a present term should report present")
	}
	if s.Remove("Clarity") {
		t.Error("second remove should be a no-op")
	}
	if s.Len() != 1 || s.Terms()[0] != "Balance" {
		t.Errorf("terms = %v, want [Balance]", s.Terms())
	}
}

func TestRemoveIsExactMatch(t *testing.T) {
	s := NewSet("Clarity")

	// Removal matches the stored spelling exactly.
	if s.Remove("clarity") {
		t.Error("remove should not match case-insensitively")
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
}

func TestNewSetDropsDuplicates(t *testing.T) {
	s := NewSet("Growth", "growth", "", "Engagement")
	terms := s.Terms()
	if len(terms) != 2 || terms[0] != "Growth" || terms[1] != "Engagement" {
		t.Errorf("terms = %v", terms)
	}
}

func TestLoadPreset(t *testing.T) {
	presets := BuiltinPresets()
	s := NewSet("Leftover")

	if !s.LoadPreset(presets, PresetDesign) {
		t.Fatal("known preset should load")
	}
	if s.Contains("Leftover") {
		t.Error("preset load should replace the whole vocabulary")
	}
	if !s.Contains("Clarity") {
		t.Error("design preset should contain Clarity")
	}

	before := s.Len()
	if s.LoadPreset(presets, "nonsense") {
		t.Error("unknown preset should report false")
	}
	if s.Len() != before {
		t.Error("unknown preset should leave the set unchanged")
	}
}

func TestPresetsFixedCollapsesDuplicates(t *testing.T) {
	fixed := BuiltinPresets().Fixed()

	seen := map[string]bool{}
	for _, term := range fixed {
		if seen[term] {
			t.Fatalf("duplicate term %q in fixed vocabulary", term)
		}
		seen[term] = true
	}

	// Innovation appears in both design and business presets; once here.
	if !seen["Innovation"] {
		t.Error("fixed vocabulary should include Innovation")
	}
	if len(fixed) < 40 {
		t.Errorf("fixed vocabulary has %d terms, want the combined presets", len(fixed))
	}
}
