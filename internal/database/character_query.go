package database

import (
	"gorm.io/gorm"

	"github.com/mvoronin/govtt/internal/model"
)

type CharacterQuery struct {
	Query[model.Character]
	id    uint
	owner uint
}

func NewCharacterQuery(db *gorm.DB) *CharacterQuery {
	q := &CharacterQuery{}
	q.setDefaults(db, "characters.created_at")

	return q
}

func (q *CharacterQuery) Id(id uint) *CharacterQuery {
	if q == nil {
		return nil
	}

	q.id = id

	return q
}

func (q *CharacterQuery) Owner(userID uint) *CharacterQuery {
	if q == nil {
		return nil
	}

	q.owner = userID

	return q
}

func (q *CharacterQuery) where() *gorm.DB {
	tx := q.db

	if q.id != 0 {
		tx = tx.Where("id = ?", q.id)
	}

	if q.owner != 0 {
		tx = tx.Where("owner_id = ?", q.owner)
	}

	return tx
}

func (q *CharacterQuery) Get() []*model.Character {
	return q.get(q.where().Model(&model.Character{}))
}

func (q *CharacterQuery) One() *model.Character {
	return q.one(q.where().Model(&model.Character{}))
}

func (q *CharacterQuery) Count() int64 {
	return q.count(q.where().Model(&model.Character{}))
}

func (q *CharacterQuery) Delete() error {
	return q.where().Delete(&model.Character{}).Error
}
