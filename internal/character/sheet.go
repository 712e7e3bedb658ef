// Package character holds the derived-stat rules for character sheets.
// Everything here is a pure function over the stored sheet.
package character

import (
	"github.com/mvoronin/govtt/internal/model"
)

// Modifier is the ability modifier: floor((score - 10) / 2). Integer
// division in Go truncates toward zero, so scores below 10 need the
// explicit floor.
func Modifier(score int) int {
	d := score - 10

	if d >= 0 {
		return d / 2
	}

	return (d - 1) / 2
}

// TotalScore is the base score plus the fixed race bonus for the key.
func (t *Tables) TotalScore(base int, race, key string) int {
	return base + t.RaceBonus(race, key)
}

// ProficiencyBonus for a character level, 2 at level 1, +1 every four
// levels.
func ProficiencyBonus(level int) int {
	if level < 1 {
		level = 1
	}

	return 2 + (level-1)/4
}

// SkillBonus is the modifier of the total score plus the proficiency
// bonus when proficient.
func SkillBonus(totalScore int, proficient bool, proficiencyBonus int) int {
	b := Modifier(totalScore)

	if proficient {
		b += proficiencyBonus
	}

	return b
}

type SheetAbility struct {
	Key      string `json:"key"`
	Base     int    `json:"base"`
	Bonus    int    `json:"bonus,omitempty"`
	Total    int    `json:"total"`
	Modifier int    `json:"modifier"`
}

type SheetSkill struct {
	Name       string `json:"name"`
	Ability    string `json:"ability"`
	Proficient bool   `json:"proficient,omitempty"`
	Bonus      int    `json:"bonus"`
}

type Sheet struct {
	Character        *model.CharacterDTO `json:"character"`
	ProficiencyBonus int                 `json:"proficiency_bonus"`
	Abilities        []SheetAbility      `json:"abilities"`
	Skills           []SheetSkill        `json:"skills"`
}

// SheetFor computes the full derived sheet for a stored character.
func (t *Tables) SheetFor(c *model.Character) *Sheet {
	if c == nil {
		return nil
	}

	sheet := &Sheet{
		Character:        c.DTO(),
		ProficiencyBonus: ProficiencyBonus(c.Level),
	}

	totals := make(map[string]int, len(Abilities))

	for _, key := range Abilities {
		base := c.Scores[key]
		bonus := t.RaceBonus(c.Race, key)
		total := base + bonus

		totals[key] = total

		sheet.Abilities = append(sheet.Abilities, SheetAbility{
			Key:      key,
			Base:     base,
			Bonus:    bonus,
			Total:    total,
			Modifier: Modifier(total),
		})
	}

	proficient := make(map[string]bool, len(c.Proficiencies))
	for _, p := range c.Proficiencies {
		proficient[p] = true
	}

	for _, s := range t.Skills {
		sheet.Skills = append(sheet.Skills, SheetSkill{
			Name:       s.Name,
			Ability:    s.Ability,
			Proficient: proficient[s.Name],
			Bonus:      SkillBonus(totals[s.Ability], proficient[s.Name], sheet.ProficiencyBonus),
		})
	}

	return sheet
}
