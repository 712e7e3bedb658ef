package database

import (
	"gorm.io/gorm"

	"github.com/mvoronin/govtt/internal/model"
)

type MemberQuery struct {
	Query[model.Member]
	campaignID uint
	userID     uint
}

func NewMemberQuery(db *gorm.DB) *MemberQuery {
	q := &MemberQuery{}
	q.setDefaults(db, "members.created_at")

	return q
}

func (q *MemberQuery) Campaign(id uint) *MemberQuery {
	if q == nil {
		return nil
	}

	q.campaignID = id

	return q
}

func (q *MemberQuery) User(id uint) *MemberQuery {
	if q == nil {
		return nil
	}

	q.userID = id

	return q
}

func (q *MemberQuery) where() *gorm.DB {
	tx := q.db

	if q.campaignID != 0 {
		tx = tx.Where("campaign_id = ?", q.campaignID)
	}

	if q.userID != 0 {
		tx = tx.Where("user_id = ?", q.userID)
	}

	return tx
}

func (q *MemberQuery) Get() []*model.Member {
	return q.get(q.where().Model(&model.Member{}))
}

func (q *MemberQuery) One() *model.Member {
	return q.one(q.where().Model(&model.Member{}))
}

func (q *MemberQuery) Count() int64 {
	return q.count(q.where().Model(&model.Member{}))
}

func (q *MemberQuery) Update(updates map[string]any) error {
	return q.updateOrError(q.where().Model(&model.Member{}), updates)
}

func (q *MemberQuery) Delete() error {
	return q.where().Delete(&model.Member{}).Error
}
