package database

import (
	"fmt"
	"log/slog"
	"strings"

	"gorm.io/gorm"

	"github.com/mvoronin/govtt/internal/model"
)

type DatabaseManager struct {
	db     *gorm.DB
	logger *slog.Logger
}

func New(db *gorm.DB) *DatabaseManager {
	m := &DatabaseManager{
		db:     db,
		logger: slog.With("logger", "dbm"),
	}

	return m
}

func (mm *DatabaseManager) DB() *gorm.DB {
	if mm == nil {
		return nil
	}

	return mm.db
}

func (mm *DatabaseManager) Create(s any) error {
	if mm == nil || mm.db == nil {
		return nil
	}

	err := mm.db.Create(s).Error

	if err != nil {
		mm.logger.Error("error create object", slog.Any("error", err))
	}

	return err
}

func (mm *DatabaseManager) Save(s any) error {
	if mm == nil || mm.db == nil {
		return nil
	}

	err := mm.db.Save(s).Error

	if err != nil {
		mm.logger.Error("error saving object", slog.Any("error", err))
	}

	return err
}

func (mm *DatabaseManager) UserQuery() *UserQuery {
	return NewUserQuery(mm.db)
}

func (mm *DatabaseManager) CampaignQuery() *CampaignQuery {
	return NewCampaignQuery(mm.db)
}

func (mm *DatabaseManager) MemberQuery() *MemberQuery {
	return NewMemberQuery(mm.db)
}

func (mm *DatabaseManager) CharacterQuery() *CharacterQuery {
	return NewCharacterQuery(mm.db)
}

func (mm *DatabaseManager) MessageQuery() *MessageQuery {
	return NewMessageQuery(mm.db)
}

func (mm *DatabaseManager) BookQuery() *BookQuery {
	return NewBookQuery(mm.db)
}

func (mm *DatabaseManager) Migrate() error {
	if mm == nil || mm.db == nil {
		return fmt.Errorf("no database")
	}

	if err := mm.db.AutoMigrate(
		&model.User{},
		&model.Campaign{},
		&model.Member{},
		&model.Character{},
		&model.Message{},
		&model.Book{},
	); err != nil {
		return err
	}

	return nil
}

// DeleteCampaign removes the campaign and everything scoped to it:
// memberships, messages and books.
func (mm *DatabaseManager) DeleteCampaign(id uint) error {
	if mm == nil || mm.db == nil {
		return fmt.Errorf("no database")
	}

	return mm.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("campaign_id = ?", id).Delete(&model.Member{}).Error; err != nil {
			return err
		}

		if err := tx.Where("campaign_id = ?", id).Delete(&model.Message{}).Error; err != nil {
			return err
		}

		if err := tx.Where("campaign_id = ?", id).Delete(&model.Book{}).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", id).Delete(&model.Campaign{}).Error
	})
}

// IsUniqueViolation reports whether err is a sqlite uniqueness conflict.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	return strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "constraint failed")
}
