package database

import (
	"time"

	"gorm.io/gorm"

	"github.com/mvoronin/govtt/internal/model"
)

type MessageQuery struct {
	Query[model.Message]
	id         string
	campaignID uint
	channel    string
	after      time.Time
}

func NewMessageQuery(db *gorm.DB) *MessageQuery {
	q := &MessageQuery{}
	q.setDefaults(db, "messages.created_at")
	q.limit = 500

	return q
}

func (q *MessageQuery) Id(id string) *MessageQuery {
	if q == nil {
		return nil
	}

	q.id = id

	return q
}

func (q *MessageQuery) Campaign(id uint) *MessageQuery {
	if q == nil {
		return nil
	}

	q.campaignID = id

	return q
}

func (q *MessageQuery) Channel(channel string) *MessageQuery {
	if q == nil {
		return nil
	}

	q.channel = channel

	return q
}

func (q *MessageQuery) After(t time.Time) *MessageQuery {
	if q == nil {
		return nil
	}

	q.after = t

	return q
}

// Latest flips the order to newest-first, for limited history loads.
func (q *MessageQuery) Latest() *MessageQuery {
	if q == nil {
		return nil
	}

	q.order = "messages.created_at DESC"

	return q
}

func (q *MessageQuery) Limit(n int) *MessageQuery {
	if q == nil {
		return nil
	}

	q.limit = n

	return q
}

func (q *MessageQuery) where() *gorm.DB {
	tx := q.db

	if q.id != "" {
		tx = tx.Where("id = ?", q.id)
	}

	if q.campaignID != 0 {
		tx = tx.Where("campaign_id = ?", q.campaignID)
	}

	if q.channel != "" {
		tx = tx.Where("channel = ?", q.channel)
	}

	if !q.after.IsZero() {
		tx = tx.Where("created_at > ?", q.after)
	}

	return tx
}

func (q *MessageQuery) Get() []*model.Message {
	return q.get(q.where().Model(&model.Message{}))
}

func (q *MessageQuery) One() *model.Message {
	return q.one(q.where().Model(&model.Message{}))
}

func (q *MessageQuery) Count() int64 {
	return q.count(q.where().Model(&model.Message{}))
}

func (q *MessageQuery) Delete() error {
	return q.where().Delete(&model.Message{}).Error
}
