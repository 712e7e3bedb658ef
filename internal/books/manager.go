package books

import (
	"log/slog"
	"net/url"
	"strings"

	"github.com/mvoronin/govtt/internal/apperr"
	"github.com/mvoronin/govtt/internal/database"
	"github.com/mvoronin/govtt/internal/model"
)

type Manager struct {
	logger *slog.Logger
	db     *database.DatabaseManager
}

func NewManager(db *database.DatabaseManager) *Manager {
	return &Manager{
		logger: slog.Default().With("logger", "books"),
		db:     db,
	}
}

// Add attaches a document URL to the campaign. Any member may add a
// book.
func (m *Manager) Add(campaign *model.Campaign, userID uint, title, rawURL string) (*model.Book, error) {
	if campaign.GetMember(userID) == nil && !campaign.IsOwner(userID) {
		return nil, apperr.New(apperr.CodeAuthorization, "not a member of this campaign")
	}

	rawURL = strings.TrimSpace(rawURL)

	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, apperr.New(apperr.CodeValidation, "invalid document url")
	}

	title = strings.TrimSpace(title)
	if title == "" {
		title = u.Host
	}

	b := &model.Book{
		CampaignID: campaign.ID,
		UploaderID: userID,
		Title:      title,
		URL:        rawURL,
	}

	if err := m.db.Create(b); err != nil {
		return nil, apperr.Wrap(apperr.CodeTransport, "store book", err)
	}

	m.logger.Info("book added", slog.Uint64("campaign", uint64(campaign.ID)), slog.String("title", title))

	return b, nil
}

// List returns the campaign's books with derived thumbnails, oldest
// first.
func (m *Manager) List(campaignID uint) []*model.BookDTO {
	books := m.db.BookQuery().Campaign(campaignID).Get()

	res := make([]*model.BookDTO, 0, len(books))
	for _, b := range books {
		res = append(res, b.DTO(ThumbnailURL(b.URL)))
	}

	return res
}

// Delete removes a book. Only the uploader or the campaign owner may
// do that.
func (m *Manager) Delete(campaign *model.Campaign, userID, bookID uint) error {
	b := m.db.BookQuery().Id(bookID).Campaign(campaign.ID).One()
	if b == nil {
		return apperr.New(apperr.CodeNotFound, "book not found")
	}

	if b.UploaderID != userID && !campaign.IsOwner(userID) {
		return apperr.New(apperr.CodeAuthorization, "not your book")
	}

	return m.db.BookQuery().Id(bookID).Delete()
}
