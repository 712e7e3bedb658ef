package chat

import (
	"log/slog"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"golang.org/x/net/html"

	"github.com/mvoronin/govtt/internal/apperr"
	"github.com/mvoronin/govtt/internal/callbacks"
	"github.com/mvoronin/govtt/internal/database"
	"github.com/mvoronin/govtt/internal/dice"
	"github.com/mvoronin/govtt/internal/model"
)

// SendInput is one outgoing message as the client submits it. Roll
// holds a dice expression, in which case the body text is replaced by
// the roll result.
type SendInput struct {
	Channel     string `json:"channel"`
	Text        string `json:"text"`
	Roll        string `json:"roll,omitempty"`
	Secret      bool   `json:"secret,omitempty"`
	RecipientID *uint  `json:"recipient_id,omitempty"`
}

// Router classifies, persists and fans out chat messages.
type Router struct {
	logger *slog.Logger
	db     *database.DatabaseManager
	feed   *callbacks.Callback[*model.Message]

	rndMx sync.Mutex
	rnd   *rand.Rand
}

// NewRouter creates a router broadcasting stored messages on feed. A
// nil rnd uses the shared default dice source.
func NewRouter(db *database.DatabaseManager, feed *callbacks.Callback[*model.Message], rnd *rand.Rand) *Router {
	return &Router{
		logger: slog.Default().With("logger", "chat"),
		db:     db,
		feed:   feed,
		rnd:    rnd,
	}
}

func (r *Router) Feed() *callbacks.Callback[*model.Message] {
	return r.feed
}

// Send validates, persists and broadcasts one message. The stored
// record is returned so the sender can render it without waiting for
// the feed round trip.
func (r *Router) Send(campaign *model.Campaign, senderID uint, senderName string, in SendInput) (*model.Message, error) {
	if !model.ValidChannel(in.Channel) {
		return nil, apperr.Newf(apperr.CodeValidation, "unknown channel %q", in.Channel)
	}

	msg := &model.Message{
		ID:         uuid.NewString(),
		Channel:    in.Channel,
		AuthorID:   senderID,
		AuthorName: senderName,
		Secret:     in.Secret,
		CreatedAt:  time.Now(),
	}

	if expr := strings.TrimSpace(in.Roll); expr != "" {
		res, err := r.roll(expr)
		if err != nil {
			return nil, apperr.Wrap(apperr.CodeValidation, "bad dice expression", err)
		}

		msg.Roll = true
		msg.Text = res.String()
	} else {
		if in.Secret {
			return nil, apperr.New(apperr.CodeValidation, "only rolls can be secret")
		}

		text := strings.TrimSpace(in.Text)
		if text == "" {
			return nil, apperr.New(apperr.CodeValidation, "empty message")
		}

		msg.Text = html.EscapeString(text)
	}

	// a secret roll goes to the master channel no matter which tab
	// was active
	if msg.Secret {
		msg.Channel = model.ChannelMaster
	}

	if msg.Channel != model.ChannelGeneral {
		if campaign == nil {
			return nil, apperr.Newf(apperr.CodeValidation, "channel %q needs a campaign", msg.Channel)
		}

		msg.CampaignID = &campaign.ID
	}

	if msg.Channel == model.ChannelMaster {
		// only the owner addresses a specific player; anybody
		// else implicitly writes to the master (empty recipient)
		if campaign.IsOwner(senderID) && in.RecipientID != nil && *in.RecipientID != 0 {
			msg.RecipientID = in.RecipientID
		}
	}

	if err := r.db.Create(msg); err != nil {
		return nil, apperr.Wrap(apperr.CodeTransport, "store message", err)
	}

	r.logger.Debug("message sent", slog.String("id", msg.ID), slog.String("channel", msg.Channel))

	if r.feed != nil {
		r.feed.Broadcast(msg)
	}

	return msg, nil
}

// History loads the messages of one channel tab, filtered and rendered
// for the viewer. campaignID is zero for the general channel. A limited
// load returns the newest messages of the channel; a non-zero after
// narrows it to messages created since that instant. The result is
// always in ascending creation order.
func (r *Router) History(campaignID uint, tab string, v Viewer, after time.Time, limit int) ([]*model.MessageDTO, error) {
	if !model.ValidChannel(tab) {
		return nil, apperr.Newf(apperr.CodeValidation, "unknown channel %q", tab)
	}

	q := r.db.MessageQuery().Channel(tab).Latest()

	if campaignID != 0 {
		q = q.Campaign(campaignID)
	}

	if !after.IsZero() {
		q = q.After(after)
	}

	if limit > 0 {
		q = q.Limit(limit)
	}

	msgs := Visible(lo.Reverse(q.Get()), v, tab)

	res := make([]*model.MessageDTO, 0, len(msgs))
	for _, m := range msgs {
		res = append(res, m.DTO(RenderFor(m, v)))
	}

	return res, nil
}

func (r *Router) roll(expr string) (dice.Result, error) {
	r.rndMx.Lock()
	defer r.rndMx.Unlock()

	return dice.RollExpr(expr, r.rnd)
}
