package model

import (
	"time"
)

type Campaign struct {
	ID         uint   `gorm:"primarykey"`
	Name       string `gorm:"index;not null"`
	InviteCode string `gorm:"uniqueIndex;not null"`
	OwnerID    uint   `gorm:"index;not null"`
	OwnerName  string
	ImageURL   string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Members    []*Member
}

type Member struct {
	ID          uint `gorm:"primarykey"`
	CampaignID  uint `gorm:"index:idx_member_campaign_user,unique"`
	UserID      uint `gorm:"index:idx_member_campaign_user,unique"`
	Nickname    string
	CharacterID *uint
	CreatedAt   time.Time
}

type CampaignDTO struct {
	ID         uint         `json:"id"`
	Name       string       `json:"name"`
	InviteCode string       `json:"invite_code,omitempty"`
	OwnerID    uint         `json:"owner_id"`
	OwnerName  string       `json:"owner_name,omitempty"`
	ImageURL   string       `json:"image_url,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
	Members    []*MemberDTO `json:"members,omitempty"`
}

type MemberDTO struct {
	UserID      uint   `json:"user_id"`
	Nickname    string `json:"nickname"`
	CharacterID *uint  `json:"character_id,omitempty"`
}

func (c *Campaign) IsOwner(userID uint) bool {
	if c == nil {
		return false
	}

	return userID != 0 && c.OwnerID == userID
}

func (c *Campaign) GetMember(userID uint) *Member {
	if c == nil {
		return nil
	}

	for _, m := range c.Members {
		if m.UserID == userID {
			return m
		}
	}

	return nil
}

// DTO converts the campaign for the API. The invite code is only
// disclosed to the owner.
func (c *Campaign) DTO(withCode bool) *CampaignDTO {
	if c == nil {
		return nil
	}

	dto := &CampaignDTO{
		ID:        c.ID,
		Name:      c.Name,
		OwnerID:   c.OwnerID,
		OwnerName: c.OwnerName,
		ImageURL:  c.ImageURL,
		CreatedAt: c.CreatedAt,
	}

	if withCode {
		dto.InviteCode = c.InviteCode
	}

	for _, m := range c.Members {
		dto.Members = append(dto.Members, m.DTO())
	}

	return dto
}

func (m *Member) DTO() *MemberDTO {
	if m == nil {
		return nil
	}

	return &MemberDTO{
		UserID:      m.UserID,
		Nickname:    m.Nickname,
		CharacterID: m.CharacterID,
	}
}
