package wshandler

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mvoronin/govtt/internal/chat"
	"github.com/mvoronin/govtt/internal/model"
)

func newTestHandler(viewer chat.Viewer, campaignID uint) *JSONWsHandler {
	return NewHandler(slog.Default(), "test", viewer, campaignID, nil)
}

func campaignMsg(campaignID uint, channel string, author uint, rcpt *uint) *model.Message {
	return &model.Message{
		ID:          "m1",
		CampaignID:  &campaignID,
		Channel:     channel,
		AuthorID:    author,
		RecipientID: rcpt,
		Text:        "hi",
	}
}

func TestHandlerScopesToCampaign(t *testing.T) {
	h := newTestHandler(chat.Viewer{UserID: 2}, 10)

	require.True(t, h.NewChatMessage(campaignMsg(10, model.ChannelCampaign, 1, nil)))
	require.Len(t, h.ch, 1)

	// other campaign is dropped, handler stays subscribed
	require.True(t, h.NewChatMessage(campaignMsg(11, model.ChannelCampaign, 1, nil)))
	require.Len(t, h.ch, 1)

	// general messages pass regardless of campaign
	require.True(t, h.NewChatMessage(&model.Message{ID: "g", Channel: model.ChannelGeneral, AuthorID: 1}))
	require.Len(t, h.ch, 2)
}

func TestHandlerAppliesVisibility(t *testing.T) {
	h := newTestHandler(chat.Viewer{UserID: 3}, 10)

	// master message for somebody else is silently dropped
	require.True(t, h.NewChatMessage(campaignMsg(10, model.ChannelMaster, 2, nil)))
	require.Empty(t, h.ch)

	rcpt := uint(3)
	require.True(t, h.NewChatMessage(campaignMsg(10, model.ChannelMaster, 1, &rcpt)))
	require.Len(t, h.ch, 1)
}

func TestHandlerRedactsSecretRolls(t *testing.T) {
	h := newTestHandler(chat.Viewer{UserID: 2}, 10)

	campaignID := uint(10)
	msg := &model.Message{
		ID:         "s1",
		CampaignID: &campaignID,
		Channel:    model.ChannelMaster,
		AuthorID:   2,
		AuthorName: "bob",
		Text:       "1d20: [20] = 20",
		Roll:       true,
		Secret:     true,
	}

	require.True(t, h.NewChatMessage(msg))

	out := <-h.ch
	require.Equal(t, "chat", out.Typ)
	require.Equal(t, "bob rolls the dice in secret", out.Message.Text)
	require.Equal(t, 1, out.Unread)
}

func TestHandlerUnreadFollowsWidget(t *testing.T) {
	h := newTestHandler(chat.Viewer{UserID: 2}, 10)

	h.tracker.Expand()

	require.True(t, h.NewChatMessage(campaignMsg(10, model.ChannelCampaign, 1, nil)))

	out := <-h.ch
	require.Equal(t, 0, out.Unread)
}

// The feed may hand the same row to a subscriber twice; the client
// must still get it once.
func TestHandlerDropsDuplicateDelivery(t *testing.T) {
	h := newTestHandler(chat.Viewer{UserID: 2}, 10)
	msg := campaignMsg(10, model.ChannelCampaign, 1, nil)

	require.True(t, h.NewChatMessage(msg))
	require.True(t, h.NewChatMessage(msg))
	require.Len(t, h.ch, 1)

	out := <-h.ch
	require.Equal(t, 1, out.Unread)
}

func TestInactiveHandlerUnsubscribes(t *testing.T) {
	h := newTestHandler(chat.Viewer{UserID: 2}, 10)
	h.active = 0

	require.False(t, h.NewChatMessage(campaignMsg(10, model.ChannelCampaign, 1, nil)))
}
