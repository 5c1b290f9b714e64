package vocab

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Preset names shipped with the client.
const (
	PresetDesign    = "design"
	PresetBusiness  = "business"
	PresetTechnical = "technical"
)

// Presets maps a preset name to its ordered term list.
type Presets map[string][]string

// BuiltinPresets returns the vocabularies shipped with the client.
func BuiltinPresets() Presets {
	return Presets{
		PresetDesign: {
			"Clarity", "Simplicity", "Elegance", "Consistency", "Balance",
			"Harmony", "Visual Appeal", "Intuitiveness", "User-Centric",
			"Legibility", "Accessibility", "Functionality", "Usability",
			"Flexibility", "Creativity", "Innovation", "Aesthetic Cohesion",
		},
		PresetBusiness: {
			"Efficiency", "Scalability", "Sustainability", "Engagement",
			"Innovation", "Flexibility", "Growth", "Profitability",
			"Market Share", "Customer Satisfaction", "Competitive Advantage",
			"Strategic Planning", "Risk Management", "Value Creation",
		},
		PresetTechnical: {
			"Performance", "Reliability", "Scalability", "Security",
			"Maintainability", "Efficiency", "Robustness", "Modularity",
			"Documentation", "Testing", "Code Quality", "Architecture",
			"Optimization", "Compatibility", "Integration",
		},
	}
}

// Names returns the preset keys in sorted order.
func (p Presets) Names() []string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Fixed returns the static vocabulary used when the vocabulary source is
// "fixed": every preset's terms concatenated in sorted preset order, with
// case-insensitive duplicates collapsed. It is supplied unchanged on every
// analysis request.
func (p Presets) Fixed() []string {
	s := &Set{}
	for _, name := range p.Names() {
		for _, term := range p[name] {
			s.Add(term)
		}
	}
	return s.Terms()
}

// LoadPresetsFile reads preset definitions from a YAML file of the form:
//
//	presets:
//	  design: [Clarity, Balance]
//
// Presets in the file override built-in presets of the same name; built-ins
// not mentioned are kept.
func LoadPresetsFile(path string) (Presets, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading presets file: %w", err)
	}

	var doc struct {
		Presets map[string][]string `yaml:"presets"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing presets file: %w", err)
	}

	presets := BuiltinPresets()
	for name, terms := range doc.Presets {
		presets[name] = terms
	}
	return presets, nil
}
