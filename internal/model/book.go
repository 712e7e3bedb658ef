package model

import (
	"time"
)

type Book struct {
	ID         uint `gorm:"primarykey"`
	CampaignID uint `gorm:"index;not null"`
	UploaderID uint `gorm:"not null"`
	Title      string
	URL        string `gorm:"not null"`
	CreatedAt  time.Time
}

type BookDTO struct {
	ID         uint      `json:"id"`
	CampaignID uint      `json:"campaign_id"`
	UploaderID uint      `json:"uploader_id"`
	Title      string    `json:"title"`
	URL        string    `json:"url"`
	Thumbnail  string    `json:"thumbnail,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func (b *Book) DTO(thumbnail string) *BookDTO {
	if b == nil {
		return nil
	}

	return &BookDTO{
		ID:         b.ID,
		CampaignID: b.CampaignID,
		UploaderID: b.UploaderID,
		Title:      b.Title,
		URL:        b.URL,
		Thumbnail:  thumbnail,
		CreatedAt:  b.CreatedAt,
	}
}
