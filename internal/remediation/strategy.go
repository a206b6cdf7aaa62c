package remediation

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/algebriz/internal/diagnosis"
)

//go:embed strategies.yaml
var strategiesYAML []byte

// Strategy is the remediation material for one misconception.
type Strategy struct {
	Misconception diagnosis.Misconception `yaml:"misconception"`
	Explanations  []string                `yaml:"explanations"`
	Analogies     []string                `yaml:"analogies"`
	PracticeTips  []string                `yaml:"practice_tips"`
	VisualAid     string                  `yaml:"visual_aid"`
}

type strategiesFile struct {
	Strategies []Strategy `yaml:"strategies"`
}

// strategies parses the embedded table once. A broken table is a build
// defect, so it panics.
var strategies = sync.OnceValue(func() map[diagnosis.Misconception]*Strategy {
	table, err := parseStrategies(strategiesYAML)
	if err != nil {
		panic(fmt.Sprintf("load strategies.yaml: %v", err))
	}
	return table
})

func parseStrategies(data []byte) (map[diagnosis.Misconception]*Strategy, error) {
	var f strategiesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}

	table := make(map[diagnosis.Misconception]*Strategy, len(f.Strategies))
	for i := range f.Strategies {
		s := &f.Strategies[i]
		if !diagnosis.Valid(string(s.Misconception)) {
			return nil, fmt.Errorf("unknown misconception %q", s.Misconception)
		}
		if _, dup := table[s.Misconception]; dup {
			return nil, fmt.Errorf("duplicate strategy for %q", s.Misconception)
		}
		table[s.Misconception] = s
	}
	return table, nil
}

// StrategyFor returns the strategy for m, or nil if the table has none.
func StrategyFor(m diagnosis.Misconception) *Strategy {
	return strategies()[m]
}
