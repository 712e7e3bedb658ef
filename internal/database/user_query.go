package database

import (
	"gorm.io/gorm"

	"github.com/mvoronin/govtt/internal/model"
)

type UserQuery struct {
	Query[model.User]
	id       uint
	login    string
	nickname string
}

func NewUserQuery(db *gorm.DB) *UserQuery {
	q := &UserQuery{}
	q.setDefaults(db, "users.id")

	return q
}

func (q *UserQuery) Id(id uint) *UserQuery {
	if q == nil {
		return nil
	}

	q.id = id

	return q
}

func (q *UserQuery) Login(login string) *UserQuery {
	if q == nil {
		return nil
	}

	q.login = login

	return q
}

func (q *UserQuery) Nickname(nickname string) *UserQuery {
	if q == nil {
		return nil
	}

	q.nickname = nickname

	return q
}

func (q *UserQuery) where() *gorm.DB {
	tx := q.db

	if q.id != 0 {
		tx = tx.Where("id = ?", q.id)
	}

	if q.login != "" {
		tx = tx.Where("login = ?", q.login)
	}

	if q.nickname != "" {
		tx = tx.Where("nickname = ?", q.nickname)
	}

	return tx
}

func (q *UserQuery) Get() []*model.User {
	return q.get(q.where().Model(&model.User{}))
}

func (q *UserQuery) One() *model.User {
	return q.one(q.where().Model(&model.User{}))
}

func (q *UserQuery) Count() int64 {
	return q.count(q.where().Model(&model.User{}))
}

func (q *UserQuery) Update(updates map[string]any) error {
	return q.updateOrError(q.where().Model(&model.User{}), updates)
}
