package database

import (
	"gorm.io/gorm"

	"github.com/mvoronin/govtt/internal/model"
)

type BookQuery struct {
	Query[model.Book]
	id         uint
	campaignID uint
}

func NewBookQuery(db *gorm.DB) *BookQuery {
	q := &BookQuery{}
	q.setDefaults(db, "books.created_at")

	return q
}

func (q *BookQuery) Id(id uint) *BookQuery {
	if q == nil {
		return nil
	}

	q.id = id

	return q
}

func (q *BookQuery) Campaign(id uint) *BookQuery {
	if q == nil {
		return nil
	}

	q.campaignID = id

	return q
}

func (q *BookQuery) where() *gorm.DB {
	tx := q.db

	if q.id != 0 {
		tx = tx.Where("id = ?", q.id)
	}

	if q.campaignID != 0 {
		tx = tx.Where("campaign_id = ?", q.campaignID)
	}

	return tx
}

func (q *BookQuery) Get() []*model.Book {
	return q.get(q.where().Model(&model.Book{}))
}

func (q *BookQuery) One() *model.Book {
	return q.one(q.where().Model(&model.Book{}))
}

func (q *BookQuery) Delete() error {
	return q.where().Delete(&model.Book{}).Error
}
