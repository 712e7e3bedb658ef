package character

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed data
var dataFiles embed.FS

// Abilities are the six ability keys in canonical order.
var Abilities = []string{"str", "dex", "con", "int", "wis", "cha"}

type Skill struct {
	Name    string `yaml:"name"`
	Ability string `yaml:"ability"`
}

// Race holds the fixed ability bonuses for a playable race. Manual
// marks races whose extra floating points are allocated by hand on the
// sheet and are not enforced here.
type Race struct {
	Name    string         `yaml:"name"`
	Bonuses map[string]int `yaml:"bonuses"`
	Manual  bool           `yaml:"manual,omitempty"`
}

type Tables struct {
	Skills []Skill
	Races  map[string]*Race
}

func LoadTables() (*Tables, error) {
	t := &Tables{Races: make(map[string]*Race)}

	data, err := dataFiles.ReadFile("data/skills.yml")
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, &t.Skills); err != nil {
		return nil, fmt.Errorf("skills table: %w", err)
	}

	data, err = dataFiles.ReadFile("data/races.yml")
	if err != nil {
		return nil, err
	}

	races := make([]*Race, 0)
	if err := yaml.Unmarshal(data, &races); err != nil {
		return nil, fmt.Errorf("races table: %w", err)
	}

	for _, r := range races {
		t.Races[r.Name] = r
	}

	return t, nil
}

func (t *Tables) Race(name string) *Race {
	if t == nil {
		return nil
	}

	return t.Races[name]
}

// RaceBonus returns the fixed bonus a race grants for one ability key.
func (t *Tables) RaceBonus(race, key string) int {
	r := t.Race(race)
	if r == nil {
		return 0
	}

	return r.Bonuses[key]
}
