package database

import (
	"strings"

	"gorm.io/gorm"

	"github.com/mvoronin/govtt/internal/model"
)

type CampaignQuery struct {
	Query[model.Campaign]
	id      uint
	owner   uint
	member  uint
	code    string
	preload bool
}

func NewCampaignQuery(db *gorm.DB) *CampaignQuery {
	q := &CampaignQuery{}
	q.setDefaults(db, "campaigns.created_at DESC")

	return q
}

func (q *CampaignQuery) Id(id uint) *CampaignQuery {
	if q == nil {
		return nil
	}

	q.id = id

	return q
}

func (q *CampaignQuery) Owner(userID uint) *CampaignQuery {
	if q == nil {
		return nil
	}

	q.owner = userID

	return q
}

// Member restricts to campaigns where the user holds a membership row.
func (q *CampaignQuery) Member(userID uint) *CampaignQuery {
	if q == nil {
		return nil
	}

	q.member = userID

	return q
}

// Code matches the invite code case-insensitively.
func (q *CampaignQuery) Code(code string) *CampaignQuery {
	if q == nil {
		return nil
	}

	q.code = strings.ToUpper(strings.TrimSpace(code))

	return q
}

func (q *CampaignQuery) Full() *CampaignQuery {
	if q == nil {
		return nil
	}

	q.preload = true

	return q
}

func (q *CampaignQuery) Limit(n int) *CampaignQuery {
	if q == nil {
		return nil
	}

	q.limit = n

	return q
}

func (q *CampaignQuery) where() *gorm.DB {
	tx := q.db

	if q.preload {
		tx = tx.Preload("Members")
	}

	if q.id != 0 {
		tx = tx.Where("campaigns.id = ?", q.id)
	}

	if q.owner != 0 {
		tx = tx.Where("campaigns.owner_id = ?", q.owner)
	}

	if q.member != 0 {
		tx = tx.Joins("JOIN members ON members.campaign_id = campaigns.id").
			Where("members.user_id = ?", q.member)
	}

	if q.code != "" {
		tx = tx.Where("UPPER(campaigns.invite_code) = ?", q.code)
	}

	return tx
}

func (q *CampaignQuery) Get() []*model.Campaign {
	return q.get(q.where().Model(&model.Campaign{}))
}

func (q *CampaignQuery) One() *model.Campaign {
	return q.one(q.where().Model(&model.Campaign{}))
}

func (q *CampaignQuery) Count() int64 {
	return q.count(q.where().Model(&model.Campaign{}))
}

func (q *CampaignQuery) Update(updates map[string]any) error {
	return q.updateOrError(q.where().Model(&model.Campaign{}), updates)
}
