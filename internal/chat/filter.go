// Package chat routes, filters and renders campaign chat messages. The
// master channel is private: who sees a master message depends on the
// author, the explicit recipient and campaign ownership.
package chat

import (
	"fmt"

	"github.com/mvoronin/govtt/internal/model"
)

// Viewer is the identity the filter works with.
type Viewer struct {
	UserID uint
	Owner  bool
}

// CanSee reports whether the viewer may see the message at all.
// Campaign and general messages are visible to everybody, master
// messages only to the author, the explicit recipient and the owner of
// a message without one.
func CanSee(m *model.Message, v Viewer) bool {
	if m == nil {
		return false
	}

	if m.Channel != model.ChannelMaster {
		return true
	}

	if m.AuthorID == v.UserID {
		return true
	}

	if m.Addressed() {
		return *m.RecipientID == v.UserID
	}

	return v.Owner
}

// Visible filters the list down to what the viewer may see on the
// selected channel tab. Order is preserved, the input is not modified.
func Visible(msgs []*model.Message, v Viewer, tab string) []*model.Message {
	res := make([]*model.Message, 0, len(msgs))

	for _, m := range msgs {
		if m == nil || m.Channel != tab {
			continue
		}

		if CanSee(m, v) {
			res = append(res, m)
		}
	}

	return res
}

// RenderFor returns the message text for one viewer. A secret roll
// keeps its text only for the campaign owner.
func RenderFor(m *model.Message, v Viewer) string {
	if m == nil {
		return ""
	}

	if m.Secret && !v.Owner {
		return fmt.Sprintf("%s rolls the dice in secret", m.AuthorName)
	}

	return m.Text
}
