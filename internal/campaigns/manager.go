// Package campaigns is the campaign registry: creation with invite
// codes, membership and the owner/player role resolution.
package campaigns

import (
	"crypto/rand"
	"log/slog"
	"sort"
	"strings"

	"github.com/samber/lo"
	"gorm.io/gorm"

	"github.com/mvoronin/govtt/internal/apperr"
	"github.com/mvoronin/govtt/internal/database"
	"github.com/mvoronin/govtt/internal/model"
)

const (
	codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	codeLen      = 6
	codeAttempts = 5
)

// Campaign roles.
const (
	RoleOwner  = "master"
	RolePlayer = "player"
	RoleNone   = ""
)

type Manager struct {
	logger *slog.Logger
	db     *database.DatabaseManager
}

func NewManager(db *database.DatabaseManager) *Manager {
	return &Manager{
		logger: slog.Default().With("logger", "campaigns"),
		db:     db,
	}
}

// Create stores a new campaign with a fresh invite code and a
// membership row for the owner. Code collisions are retried a few
// times before giving up with a conflict.
func (m *Manager) Create(ownerID uint, ownerName, name, imageURL string) (*model.Campaign, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.New(apperr.CodeValidation, "campaign name is empty")
	}

	for i := 0; i < codeAttempts; i++ {
		c := &model.Campaign{
			Name:       name,
			InviteCode: newInviteCode(),
			OwnerID:    ownerID,
			OwnerName:  ownerName,
			ImageURL:   strings.TrimSpace(imageURL),
		}

		err := m.db.DB().Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(c).Error; err != nil {
				return err
			}

			return tx.Create(&model.Member{
				CampaignID: c.ID,
				UserID:     ownerID,
				Nickname:   ownerName,
			}).Error
		})

		if err == nil {
			m.logger.Info("campaign created", slog.Uint64("id", uint64(c.ID)), slog.String("name", c.Name))

			return m.Get(c.ID)
		}

		if !database.IsUniqueViolation(err) {
			return nil, apperr.Wrap(apperr.CodeTransport, "store campaign", err)
		}

		m.logger.Debug("invite code collision, retrying", slog.String("code", c.InviteCode))
	}

	return nil, apperr.New(apperr.CodeConflict, "could not allocate an invite code")
}

func (m *Manager) Get(id uint) (*model.Campaign, error) {
	c := m.db.CampaignQuery().Id(id).Full().One()
	if c == nil {
		return nil, apperr.New(apperr.CodeNotFound, "campaign not found")
	}

	return c, nil
}

// ListForUser returns owned and member-of campaigns, deduplicated,
// newest first.
func (m *Manager) ListForUser(userID uint) []*model.Campaign {
	all := append(
		m.db.CampaignQuery().Owner(userID).Get(),
		m.db.CampaignQuery().Member(userID).Get()...,
	)

	all = lo.UniqBy(all, func(c *model.Campaign) uint { return c.ID })

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	return all
}

func (m *Manager) Update(id, userID uint, name, imageURL string) (*model.Campaign, error) {
	c, err := m.Get(id)
	if err != nil {
		return nil, err
	}

	if !c.IsOwner(userID) {
		return nil, apperr.New(apperr.CodeAuthorization, "only the owner may change the campaign")
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.New(apperr.CodeValidation, "campaign name is empty")
	}

	if err := m.db.CampaignQuery().Id(id).Update(map[string]any{
		"name":      name,
		"image_url": strings.TrimSpace(imageURL),
	}); err != nil {
		return nil, apperr.Wrap(apperr.CodeTransport, "update campaign", err)
	}

	return m.Get(id)
}

func (m *Manager) Delete(id, userID uint) error {
	c, err := m.Get(id)
	if err != nil {
		return err
	}

	if !c.IsOwner(userID) {
		return apperr.New(apperr.CodeAuthorization, "only the owner may delete the campaign")
	}

	if err := m.db.DeleteCampaign(id); err != nil {
		return apperr.Wrap(apperr.CodeTransport, "delete campaign", err)
	}

	m.logger.Info("campaign deleted", slog.Uint64("id", uint64(id)))

	return nil
}

// Redeem resolves an invite code, case-insensitively.
func (m *Manager) Redeem(code string) (*model.Campaign, error) {
	if strings.TrimSpace(code) == "" {
		return nil, apperr.New(apperr.CodeValidation, "invite code is empty")
	}

	c := m.db.CampaignQuery().Code(code).Full().One()
	if c == nil {
		return nil, apperr.New(apperr.CodeNotFound, "no campaign with this invite code")
	}

	return c, nil
}

// Join creates a membership. The user must own at least one character;
// joining again just switches the selected character.
func (m *Manager) Join(campaignID, userID uint, nickname string, characterID *uint) (*model.Member, error) {
	if _, err := m.Get(campaignID); err != nil {
		return nil, err
	}

	if m.db.CharacterQuery().Owner(userID).Count() == 0 {
		return nil, apperr.New(apperr.CodePrecondition, "create a character first")
	}

	if characterID != nil && *characterID != 0 {
		ch := m.db.CharacterQuery().Id(*characterID).Owner(userID).One()
		if ch == nil {
			return nil, apperr.New(apperr.CodeValidation, "character not found or not yours")
		}
	}

	if member := m.db.MemberQuery().Campaign(campaignID).User(userID).One(); member != nil {
		member.CharacterID = characterID

		if err := m.db.Save(member); err != nil {
			return nil, apperr.Wrap(apperr.CodeTransport, "update membership", err)
		}

		return member, nil
	}

	member := &model.Member{
		CampaignID:  campaignID,
		UserID:      userID,
		Nickname:    nickname,
		CharacterID: characterID,
	}

	if err := m.db.Create(member); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperr.New(apperr.CodeConflict, "already a member")
		}

		return nil, apperr.Wrap(apperr.CodeTransport, "store membership", err)
	}

	m.logger.Info("user joined campaign",
		slog.Uint64("campaign", uint64(campaignID)), slog.Uint64("user", uint64(userID)))

	return member, nil
}

func (m *Manager) Leave(campaignID, userID uint) error {
	c, err := m.Get(campaignID)
	if err != nil {
		return err
	}

	if c.IsOwner(userID) {
		return apperr.New(apperr.CodeValidation, "the owner cannot leave, delete the campaign instead")
	}

	if m.db.MemberQuery().Campaign(campaignID).User(userID).One() == nil {
		return apperr.New(apperr.CodeNotFound, "not a member")
	}

	return m.db.MemberQuery().Campaign(campaignID).User(userID).Delete()
}

// SelectCharacter switches the member's active character.
func (m *Manager) SelectCharacter(campaignID, userID, characterID uint) error {
	ch := m.db.CharacterQuery().Id(characterID).Owner(userID).One()
	if ch == nil {
		return apperr.New(apperr.CodeValidation, "character not found or not yours")
	}

	if m.db.MemberQuery().Campaign(campaignID).User(userID).One() == nil {
		return apperr.New(apperr.CodeNotFound, "not a member")
	}

	return m.db.MemberQuery().Campaign(campaignID).User(userID).Update(map[string]any{
		"character_id": characterID,
	})
}

// Role resolves the user's role within the campaign.
func (m *Manager) Role(c *model.Campaign, userID uint) string {
	switch {
	case c.IsOwner(userID):
		return RoleOwner
	case c.GetMember(userID) != nil:
		return RolePlayer
	default:
		return RoleNone
	}
}

func newInviteCode() string {
	buf := make([]byte, codeLen)
	_, _ = rand.Read(buf)

	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}

	return string(buf)
}
