package chat

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mvoronin/govtt/internal/model"
)

func uintPtr(v uint) *uint { return &v }

func TestVisibleMasterChannel(t *testing.T) {
	// user 2 (not owner) writes to the master with no explicit
	// recipient
	msgs := []*model.Message{
		{ID: "m1", Channel: model.ChannelMaster, AuthorID: 2, Text: "psst"},
	}

	owner := Viewer{UserID: 1, Owner: true}
	author := Viewer{UserID: 2}
	other := Viewer{UserID: 3}

	require.Len(t, Visible(msgs, owner, model.ChannelMaster), 1)
	require.Len(t, Visible(msgs, author, model.ChannelMaster), 1)
	require.Empty(t, Visible(msgs, other, model.ChannelMaster))
}

func TestVisibleExplicitRecipient(t *testing.T) {
	msgs := []*model.Message{
		{ID: "m1", Channel: model.ChannelMaster, AuthorID: 1, RecipientID: uintPtr(2), Text: "for you"},
	}

	require.True(t, CanSee(msgs[0], Viewer{UserID: 2}))
	require.True(t, CanSee(msgs[0], Viewer{UserID: 1, Owner: true}))
	require.False(t, CanSee(msgs[0], Viewer{UserID: 3}))
	// the owner flag alone is not enough once a recipient is named
	require.False(t, CanSee(msgs[0], Viewer{UserID: 3, Owner: true}))
}

func TestVisiblePublicChannels(t *testing.T) {
	msgs := []*model.Message{
		{ID: "m1", Channel: model.ChannelCampaign, AuthorID: 1},
		{ID: "m2", Channel: model.ChannelGeneral, AuthorID: 2},
		{ID: "m3", Channel: model.ChannelCampaign, AuthorID: 3},
	}

	v := Viewer{UserID: 9}

	got := Visible(msgs, v, model.ChannelCampaign)
	require.Len(t, got, 2)
	require.Equal(t, "m1", got[0].ID)
	require.Equal(t, "m3", got[1].ID)

	require.Len(t, Visible(msgs, v, model.ChannelGeneral), 1)
}

func TestVisiblePreservesOrder(t *testing.T) {
	msgs := []*model.Message{
		{ID: "a", Channel: model.ChannelCampaign},
		{ID: "b", Channel: model.ChannelMaster, AuthorID: 5},
		{ID: "c", Channel: model.ChannelCampaign},
		{ID: "d", Channel: model.ChannelCampaign},
	}

	got := Visible(msgs, Viewer{UserID: 7}, model.ChannelCampaign)

	require.Equal(t, []string{"a", "c", "d"}, []string{got[0].ID, got[1].ID, got[2].ID})
}

func TestRenderForSecret(t *testing.T) {
	m := &model.Message{
		Channel:    model.ChannelMaster,
		AuthorID:   2,
		AuthorName: "bob",
		Text:       "1d20: [17] = 17",
		Roll:       true,
		Secret:     true,
	}

	require.Equal(t, "1d20: [17] = 17", RenderFor(m, Viewer{UserID: 1, Owner: true}))
	require.Equal(t, "bob rolls the dice in secret", RenderFor(m, Viewer{UserID: 2}))
	require.Equal(t, "bob rolls the dice in secret", RenderFor(m, Viewer{UserID: 3}))
}

func TestRenderForPlain(t *testing.T) {
	m := &model.Message{Channel: model.ChannelCampaign, Text: "hello"}

	require.Equal(t, "hello", RenderFor(m, Viewer{UserID: 3}))
}
