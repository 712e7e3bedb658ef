package model

import (
	"fmt"
	"time"
)

// Chat channels. A message always carries exactly one tag. The master
// channel is the private one: visibility of its messages depends on the
// viewer, see the chat package.
const (
	ChannelCampaign = "campaign"
	ChannelGeneral  = "general"
	ChannelMaster   = "master"
)

func ValidChannel(s string) bool {
	switch s {
	case ChannelCampaign, ChannelGeneral, ChannelMaster:
		return true
	default:
		return false
	}
}

type Message struct {
	ID          string `gorm:"primarykey"`
	CampaignID  *uint  `gorm:"index"`
	Channel     string `gorm:"index;not null"`
	AuthorID    uint   `gorm:"index;not null"`
	AuthorName  string
	RecipientID *uint
	Text        string
	Roll        bool `gorm:"not null;default:false"`
	Secret      bool `gorm:"not null;default:false"`
	CreatedAt   time.Time
}

type MessageDTO struct {
	ID          string    `json:"id"`
	CampaignID  *uint     `json:"campaign_id,omitempty"`
	Channel     string    `json:"channel"`
	AuthorID    uint      `json:"author_id"`
	AuthorName  string    `json:"author_name"`
	RecipientID *uint     `json:"recipient_id,omitempty"`
	Text        string    `json:"text"`
	Roll        bool      `json:"roll,omitempty"`
	Secret      bool      `json:"secret,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (m *Message) GetID() string {
	if m == nil {
		return ""
	}

	return m.ID
}

// Addressed reports whether the message names an explicit recipient. A
// master-channel message without one is addressed to the campaign owner.
func (m *Message) Addressed() bool {
	return m != nil && m.RecipientID != nil && *m.RecipientID != 0
}

func (m *Message) String() string {
	return fmt.Sprintf("msg %s [%s] %s (%d): %q", m.ID, m.Channel, m.AuthorName, m.AuthorID, m.Text)
}

// DTO converts the message for one viewer. Secret rolls keep their text
// only for the campaign owner and get a placeholder for everybody else.
func (m *Message) DTO(text string) *MessageDTO {
	if m == nil {
		return nil
	}

	return &MessageDTO{
		ID:          m.ID,
		CampaignID:  m.CampaignID,
		Channel:     m.Channel,
		AuthorID:    m.AuthorID,
		AuthorName:  m.AuthorName,
		RecipientID: m.RecipientID,
		Text:        text,
		Roll:        m.Roll,
		Secret:      m.Secret,
		CreatedAt:   m.CreatedAt,
	}
}
