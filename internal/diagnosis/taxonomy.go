package diagnosis

// Entry is one taxonomy variant with the data the detector and the
// remediation table both key on.
type Entry struct {
	Type         Misconception
	Label        string
	Description  string
	Triggers     []Indicator
	Symptoms     []string // parallel to Triggers
	BaseSeverity float64
}

// registry is the package-level taxonomy, keyed by type.
var registry map[Misconception]*Entry

func init() {
	registry = make(map[Misconception]*Entry, len(seedTaxonomy))
	for i := range seedTaxonomy {
		e := &seedTaxonomy[i]
		registry[e.Type] = e
	}
}

// Lookup returns the taxonomy entry for a type, or nil if unknown.
func Lookup(t Misconception) *Entry {
	return registry[t]
}

// All returns every entry in taxonomy order.
func All() []*Entry {
	result := make([]*Entry, len(seedTaxonomy))
	for i := range seedTaxonomy {
		result[i] = &seedTaxonomy[i]
	}
	return result
}

// Valid reports whether s names a known misconception.
func Valid(s string) bool {
	_, ok := registry[Misconception(s)]
	return ok
}

func (e *Entry) triggers(ind Indicator) bool {
	for _, t := range e.Triggers {
		if t == ind {
			return true
		}
	}
	return false
}
