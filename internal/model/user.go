package model

import (
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 14

type User struct {
	ID        uint   `gorm:"primarykey"`
	Login     string `gorm:"uniqueIndex;not null"`
	Nickname  string `gorm:"uniqueIndex;not null"`
	Password  string `gorm:"not null"`
	Admin     bool   `gorm:"not null;default:false"`
	Disabled  bool   `gorm:"not null;default:false"`
	CreatedAt time.Time
	LastAuth  *time.Time
}

type UserDTO struct {
	ID       uint       `json:"id"`
	Login    string     `json:"login"`
	Nickname string     `json:"nickname"`
	Admin    bool       `json:"admin,omitempty"`
	LastAuth *time.Time `json:"last_auth,omitempty"`
}

func (u *User) GetID() uint {
	if u == nil {
		return 0
	}

	return u.ID
}

func (u *User) GetNickname() string {
	if u == nil {
		return ""
	}

	return u.Nickname
}

func (u *User) CheckPassword(password string) bool {
	if u == nil {
		return false
	}

	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	if err != nil {
		slog.Debug("password check failed", slog.Any("error", err))
		return false
	}

	return true
}

func (u *User) SetPassword(password string) error {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return err
	}

	u.Password = string(b)

	return nil
}

func (u *User) DTO() *UserDTO {
	if u == nil {
		return nil
	}

	return &UserDTO{
		ID:       u.ID,
		Login:    u.Login,
		Nickname: u.Nickname,
		Admin:    u.Admin,
		LastAuth: u.LastAuth,
	}
}
