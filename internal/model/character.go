package model

import (
	"time"
)

type Character struct {
	ID      uint   `gorm:"primarykey"`
	OwnerID uint   `gorm:"index;not null"`
	Name    string `gorm:"not null"`
	Class   string
	Race    string
	Level   int `gorm:"not null;default:1"`

	Scores        map[string]int `gorm:"serializer:json"`
	Proficiencies []string       `gorm:"serializer:json"`
	Inventory     []InventoryRow `gorm:"serializer:json"`
	Abilities     []string       `gorm:"serializer:json"`

	HitPoints    int
	MaxHitPoints int

	CreatedAt time.Time
	UpdatedAt time.Time
}

type InventoryRow struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
	Notes string `json:"notes,omitempty"`
}

type CharacterDTO struct {
	ID            uint           `json:"id"`
	OwnerID       uint           `json:"owner_id"`
	Name          string         `json:"name"`
	Class         string         `json:"class,omitempty"`
	Race          string         `json:"race,omitempty"`
	Level         int            `json:"level"`
	Scores        map[string]int `json:"scores,omitempty"`
	Proficiencies []string       `json:"proficiencies,omitempty"`
	Inventory     []InventoryRow `json:"inventory,omitempty"`
	Abilities     []string       `json:"abilities,omitempty"`
	HitPoints     int            `json:"hit_points"`
	MaxHitPoints  int            `json:"max_hit_points"`
}

func (c *Character) GetOwnerID() uint {
	if c == nil {
		return 0
	}

	return c.OwnerID
}

func (c *Character) DTO() *CharacterDTO {
	if c == nil {
		return nil
	}

	return &CharacterDTO{
		ID:            c.ID,
		OwnerID:       c.OwnerID,
		Name:          c.Name,
		Class:         c.Class,
		Race:          c.Race,
		Level:         c.Level,
		Scores:        c.Scores,
		Proficiencies: c.Proficiencies,
		Inventory:     c.Inventory,
		Abilities:     c.Abilities,
		HitPoints:     c.HitPoints,
		MaxHitPoints:  c.MaxHitPoints,
	}
}
