package campaigns

import (
	"regexp"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mvoronin/govtt/internal/apperr"
	"github.com/mvoronin/govtt/internal/database"
	"github.com/mvoronin/govtt/internal/model"
)

func getTestManager(t *testing.T) (*Manager, *database.DatabaseManager) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	dbm := database.New(db)
	require.NoError(t, dbm.Migrate())

	return NewManager(dbm), dbm
}

func addCharacter(t *testing.T, dbm *database.DatabaseManager, owner uint) *model.Character {
	t.Helper()

	ch := &model.Character{OwnerID: owner, Name: "hero", Race: "human", Class: "fighter", Level: 1}
	require.NoError(t, dbm.Create(ch))

	return ch
}

func TestCreate(t *testing.T) {
	m, dbm := getTestManager(t)

	c, err := m.Create(1, "gm", "  Lost Mines  ", "")
	require.NoError(t, err)
	require.Equal(t, "Lost Mines", c.Name)
	require.Equal(t, uint(1), c.OwnerID)
	require.Regexp(t, regexp.MustCompile(`^[A-Z2-9]{6}$`), c.InviteCode)

	// the owner gets a membership row
	require.EqualValues(t, 1, dbm.MemberQuery().Campaign(c.ID).Count())
	require.NotNil(t, c.GetMember(1))
}

func TestCreateEmptyName(t *testing.T) {
	m, _ := getTestManager(t)

	_, err := m.Create(1, "gm", "   ", "")
	require.True(t, apperr.IsValidation(err))
}

func TestCreateCodesUnique(t *testing.T) {
	m, _ := getTestManager(t)

	codes := make(map[string]bool)

	for i := 0; i < 20; i++ {
		c, err := m.Create(1, "gm", "c", "")
		require.NoError(t, err)
		require.False(t, codes[c.InviteCode])
		codes[c.InviteCode] = true
	}
}

func TestListForUser(t *testing.T) {
	m, dbm := getTestManager(t)

	// user 1 owns A (newer) and is a member of B (older)
	b := &model.Campaign{Name: "B", InviteCode: "BBBBBB", OwnerID: 2, CreatedAt: time.Now().Add(-time.Hour)}
	require.NoError(t, dbm.Create(b))
	require.NoError(t, dbm.Create(&model.Member{CampaignID: b.ID, UserID: 1, Nickname: "bob"}))

	a, err := m.Create(1, "bob", "A", "")
	require.NoError(t, err)

	list := m.ListForUser(1)
	require.Len(t, list, 2)
	require.Equal(t, a.ID, list[0].ID)
	require.Equal(t, b.ID, list[1].ID)

	// owner membership row must not produce a duplicate
	require.Len(t, m.ListForUser(2), 1)
}

func TestUpdateAuthorization(t *testing.T) {
	m, _ := getTestManager(t)

	c, err := m.Create(1, "gm", "old", "")
	require.NoError(t, err)

	_, err = m.Update(c.ID, 2, "new", "")
	require.True(t, apperr.HasCode(err, apperr.CodeAuthorization))

	got, err := m.Update(c.ID, 1, "new", "http://img")
	require.NoError(t, err)
	require.Equal(t, "new", got.Name)
	require.Equal(t, "http://img", got.ImageURL)
}

func TestDelete(t *testing.T) {
	m, _ := getTestManager(t)

	c, err := m.Create(1, "gm", "c", "")
	require.NoError(t, err)

	require.True(t, apperr.HasCode(m.Delete(c.ID, 2), apperr.CodeAuthorization))
	require.NoError(t, m.Delete(c.ID, 1))

	_, err = m.Get(c.ID)
	require.True(t, apperr.IsNotFound(err))
}

func TestRedeemCaseInsensitive(t *testing.T) {
	m, dbm := getTestManager(t)

	require.NoError(t, dbm.Create(&model.Campaign{Name: "c", InviteCode: "AB12CD", OwnerID: 1}))

	c, err := m.Redeem("ab12cd")
	require.NoError(t, err)
	require.Equal(t, "AB12CD", c.InviteCode)

	_, err = m.Redeem("ZZZZZZ")
	require.True(t, apperr.IsNotFound(err))
}

func TestJoinNeedsCharacter(t *testing.T) {
	m, dbm := getTestManager(t)

	c, err := m.Create(1, "gm", "c", "")
	require.NoError(t, err)

	_, err = m.Join(c.ID, 2, "bob", nil)
	require.True(t, apperr.HasCode(err, apperr.CodePrecondition))

	ch := addCharacter(t, dbm, 2)

	member, err := m.Join(c.ID, 2, "bob", &ch.ID)
	require.NoError(t, err)
	require.Equal(t, ch.ID, *member.CharacterID)
	require.EqualValues(t, 1, dbm.MemberQuery().Campaign(c.ID).User(2).Count())
}

func TestJoinAgainSwitchesCharacter(t *testing.T) {
	m, dbm := getTestManager(t)

	c, err := m.Create(1, "gm", "c", "")
	require.NoError(t, err)

	first := addCharacter(t, dbm, 2)
	second := addCharacter(t, dbm, 2)

	_, err = m.Join(c.ID, 2, "bob", &first.ID)
	require.NoError(t, err)

	member, err := m.Join(c.ID, 2, "bob", &second.ID)
	require.NoError(t, err)
	require.Equal(t, second.ID, *member.CharacterID)

	// still exactly one membership row
	require.EqualValues(t, 1, dbm.MemberQuery().Campaign(c.ID).User(2).Count())
}

func TestJoinForeignCharacter(t *testing.T) {
	m, dbm := getTestManager(t)

	c, err := m.Create(1, "gm", "c", "")
	require.NoError(t, err)

	addCharacter(t, dbm, 2)
	foreign := addCharacter(t, dbm, 3)

	_, err = m.Join(c.ID, 2, "bob", &foreign.ID)
	require.True(t, apperr.IsValidation(err))
}

func TestLeave(t *testing.T) {
	m, dbm := getTestManager(t)

	c, err := m.Create(1, "gm", "c", "")
	require.NoError(t, err)

	addCharacter(t, dbm, 2)
	_, err = m.Join(c.ID, 2, "bob", nil)
	require.NoError(t, err)

	require.True(t, apperr.IsValidation(m.Leave(c.ID, 1)))
	require.NoError(t, m.Leave(c.ID, 2))
	require.True(t, apperr.IsNotFound(m.Leave(c.ID, 2)))
}

func TestRole(t *testing.T) {
	m, dbm := getTestManager(t)

	c, err := m.Create(1, "gm", "c", "")
	require.NoError(t, err)

	addCharacter(t, dbm, 2)
	_, err = m.Join(c.ID, 2, "bob", nil)
	require.NoError(t, err)

	c, err = m.Get(c.ID)
	require.NoError(t, err)

	require.Equal(t, RoleOwner, m.Role(c, 1))
	require.Equal(t, RolePlayer, m.Role(c, 2))
	require.Equal(t, RoleNone, m.Role(c, 3))
}
