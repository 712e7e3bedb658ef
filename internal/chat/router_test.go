package chat

import (
	"math/rand"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mvoronin/govtt/internal/apperr"
	"github.com/mvoronin/govtt/internal/callbacks"
	"github.com/mvoronin/govtt/internal/database"
	"github.com/mvoronin/govtt/internal/model"
)

func getTestRouter(t *testing.T) (*Router, *database.DatabaseManager) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	dbm := database.New(db)
	require.NoError(t, dbm.Migrate())

	return NewRouter(dbm, callbacks.New[*model.Message](), rand.New(rand.NewSource(1))), dbm
}

func testCampaign() *model.Campaign {
	return &model.Campaign{ID: 10, Name: "test", InviteCode: "AAA111", OwnerID: 1, OwnerName: "gm"}
}

func TestSendPersists(t *testing.T) {
	r, dbm := getTestRouter(t)

	msg, err := r.Send(testCampaign(), 2, "bob", SendInput{Channel: model.ChannelCampaign, Text: "hello"})
	require.NoError(t, err)
	require.NotEmpty(t, msg.ID)
	require.Equal(t, "hello", msg.Text)
	require.Nil(t, msg.RecipientID)

	stored := dbm.MessageQuery().Id(msg.ID).One()
	require.NotNil(t, stored)
	require.Equal(t, uint(10), *stored.CampaignID)
}

func TestSendEscapesHTML(t *testing.T) {
	r, _ := getTestRouter(t)

	msg, err := r.Send(testCampaign(), 2, "bob", SendInput{Channel: model.ChannelCampaign, Text: "<b>hi</b>"})
	require.NoError(t, err)
	require.Equal(t, "&lt;b&gt;hi&lt;/b&gt;", msg.Text)
}

func TestSendValidation(t *testing.T) {
	r, _ := getTestRouter(t)

	_, err := r.Send(testCampaign(), 2, "bob", SendInput{Channel: "bogus", Text: "hi"})
	require.True(t, apperr.IsValidation(err))

	_, err = r.Send(testCampaign(), 2, "bob", SendInput{Channel: model.ChannelCampaign, Text: "   "})
	require.True(t, apperr.IsValidation(err))

	_, err = r.Send(nil, 2, "bob", SendInput{Channel: model.ChannelCampaign, Text: "hi"})
	require.True(t, apperr.IsValidation(err))

	_, err = r.Send(testCampaign(), 2, "bob", SendInput{Channel: model.ChannelCampaign, Roll: "2x6"})
	require.True(t, apperr.IsValidation(err))
}

func TestSendRoll(t *testing.T) {
	r, _ := getTestRouter(t)

	msg, err := r.Send(testCampaign(), 2, "bob", SendInput{Channel: model.ChannelCampaign, Roll: "2d6+1"})
	require.NoError(t, err)
	require.True(t, msg.Roll)
	require.Contains(t, msg.Text, "2d6+1:")
}

func TestSecretRollReroutes(t *testing.T) {
	r, dbm := getTestRouter(t)

	// sent from the campaign tab, must be stored as master
	msg, err := r.Send(testCampaign(), 2, "bob", SendInput{Channel: model.ChannelCampaign, Roll: "1d20", Secret: true})
	require.NoError(t, err)
	require.Equal(t, model.ChannelMaster, msg.Channel)
	require.True(t, msg.Secret)

	stored := dbm.MessageQuery().Id(msg.ID).One()
	require.Equal(t, model.ChannelMaster, stored.Channel)
}

func TestRecipientResolution(t *testing.T) {
	r, _ := getTestRouter(t)
	c := testCampaign()
	rcpt := uint(5)

	// owner with an explicit recipient keeps it
	msg, err := r.Send(c, 1, "gm", SendInput{Channel: model.ChannelMaster, Text: "for you", RecipientID: &rcpt})
	require.NoError(t, err)
	require.NotNil(t, msg.RecipientID)
	require.Equal(t, uint(5), *msg.RecipientID)

	// a player always writes to the master
	msg, err = r.Send(c, 2, "bob", SendInput{Channel: model.ChannelMaster, Text: "psst", RecipientID: &rcpt})
	require.NoError(t, err)
	require.Nil(t, msg.RecipientID)

	// public channels never carry a recipient
	msg, err = r.Send(c, 1, "gm", SendInput{Channel: model.ChannelCampaign, Text: "hi", RecipientID: &rcpt})
	require.NoError(t, err)
	require.Nil(t, msg.RecipientID)
}

func TestSendBroadcasts(t *testing.T) {
	r, _ := getTestRouter(t)

	got := make(chan *model.Message, 1)

	r.Feed().Subscribe("test", func(m *model.Message) bool {
		got <- m

		return true
	})

	msg, err := r.Send(testCampaign(), 2, "bob", SendInput{Channel: model.ChannelCampaign, Text: "hello"})
	require.NoError(t, err)

	select {
	case m := <-got:
		require.Equal(t, msg.ID, m.ID)
	case <-time.After(time.Second):
		t.Fatal("no broadcast")
	}
}

func TestHistory(t *testing.T) {
	r, _ := getTestRouter(t)
	c := testCampaign()

	_, err := r.Send(c, 1, "gm", SendInput{Channel: model.ChannelCampaign, Text: "one"})
	require.NoError(t, err)

	_, err = r.Send(c, 2, "bob", SendInput{Channel: model.ChannelMaster, Text: "psst"})
	require.NoError(t, err)

	_, err = r.Send(c, 2, "bob", SendInput{Channel: model.ChannelCampaign, Roll: "1d6", Secret: true})
	require.NoError(t, err)

	// the owner sees both master messages with full text
	hist, err := r.History(c.ID, model.ChannelMaster, Viewer{UserID: 1, Owner: true}, time.Time{}, 0)
	require.NoError(t, err)
	require.Len(t, hist, 2)
	require.Equal(t, "psst", hist[0].Text)
	require.Contains(t, hist[1].Text, "1d6:")

	// another player sees nothing on the master tab
	hist, err = r.History(c.ID, model.ChannelMaster, Viewer{UserID: 3}, time.Time{}, 0)
	require.NoError(t, err)
	require.Empty(t, hist)

	// the author sees their own secret roll redacted
	hist, err = r.History(c.ID, model.ChannelMaster, Viewer{UserID: 2}, time.Time{}, 0)
	require.NoError(t, err)
	require.Len(t, hist, 2)
	require.Equal(t, "bob rolls the dice in secret", hist[1].Text)
}

func TestSecretTextRejected(t *testing.T) {
	r, _ := getTestRouter(t)

	_, err := r.Send(testCampaign(), 2, "bob", SendInput{Channel: model.ChannelCampaign, Text: "psst", Secret: true})
	require.True(t, apperr.IsValidation(err))
}

func storeMsg(t *testing.T, dbm *database.DatabaseManager, id, text string, at time.Time) {
	t.Helper()

	campaignID := uint(10)

	require.NoError(t, dbm.Create(&model.Message{
		ID:         id,
		CampaignID: &campaignID,
		Channel:    model.ChannelCampaign,
		AuthorID:   1,
		AuthorName: "gm",
		Text:       text,
		CreatedAt:  at,
	}))
}

// A limited load must show the end of the conversation, not its start.
func TestHistoryLimitReturnsNewest(t *testing.T) {
	r, dbm := getTestRouter(t)
	now := time.Now()

	storeMsg(t, dbm, "m1", "one", now.Add(-3*time.Minute))
	storeMsg(t, dbm, "m2", "two", now.Add(-2*time.Minute))
	storeMsg(t, dbm, "m3", "three", now.Add(-time.Minute))

	hist, err := r.History(10, model.ChannelCampaign, Viewer{UserID: 2}, time.Time{}, 2)
	require.NoError(t, err)
	require.Len(t, hist, 2)

	// newest two, still in ascending creation order
	require.Equal(t, "two", hist[0].Text)
	require.Equal(t, "three", hist[1].Text)
}

func TestHistoryAfter(t *testing.T) {
	r, dbm := getTestRouter(t)
	now := time.Now()

	storeMsg(t, dbm, "m1", "one", now.Add(-3*time.Minute))
	storeMsg(t, dbm, "m2", "two", now.Add(-2*time.Minute))
	storeMsg(t, dbm, "m3", "three", now.Add(-time.Minute))

	hist, err := r.History(10, model.ChannelCampaign, Viewer{UserID: 2}, now.Add(-150*time.Second), 0)
	require.NoError(t, err)
	require.Len(t, hist, 2)
	require.Equal(t, "two", hist[0].Text)
	require.Equal(t, "three", hist[1].Text)

	hist, err = r.History(10, model.ChannelCampaign, Viewer{UserID: 2}, now, 0)
	require.NoError(t, err)
	require.Empty(t, hist)
}
