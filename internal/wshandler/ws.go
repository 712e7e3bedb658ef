package wshandler

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gofiber/contrib/websocket"

	"github.com/mvoronin/govtt/internal/chat"
	"github.com/mvoronin/govtt/internal/model"
)

// delivered messages kept for deduplication
const seenLimit = 256

type WebMessage struct {
	Typ     string            `json:"type"`
	Message *model.MessageDTO `json:"message,omitempty"`
	Text    string            `json:"text,omitempty"`
	Unread  int               `json:"unread,omitempty"`
}

// JSONWsHandler is one connected chat viewer. Messages arriving on the
// feed are filtered and redacted for this viewer before delivery, the
// unread counter follows the widget state reported by the client.
type JSONWsHandler struct {
	log        *slog.Logger
	name       string
	viewer     chat.Viewer
	campaignID uint
	tracker    *chat.Tracker
	ws         *websocket.Conn
	ch         chan *WebMessage
	active     int32

	seenMx sync.Mutex
	seen   []*model.Message
}

func NewHandler(log *slog.Logger, name string, viewer chat.Viewer, campaignID uint, ws *websocket.Conn) *JSONWsHandler {
	return &JSONWsHandler{
		log:        log.With("client", name),
		name:       name,
		viewer:     viewer,
		campaignID: campaignID,
		tracker:    chat.NewTracker(),
		ws:         ws,
		ch:         make(chan *WebMessage, 10),
		active:     1,
	}
}

func (w *JSONWsHandler) IsActive() bool {
	return w != nil && atomic.LoadInt32(&w.active) == 1
}

func (w *JSONWsHandler) stop() {
	if atomic.CompareAndSwapInt32(&w.active, 1, 0) {
		close(w.ch)
		w.ws.Close()
	}
}

func (w *JSONWsHandler) writer() {
	for item := range w.ch {
		if !w.IsActive() {
			return
		}

		if item == nil {
			continue
		}

		_ = w.ws.WriteJSON(item)
	}
}

// reader consumes widget state changes from the client. Anything else
// is ignored.
func (w *JSONWsHandler) reader() {
	defer w.stop()

	for {
		var cmd struct {
			Typ string `json:"type"`
		}

		if err := w.ws.ReadJSON(&cmd); err != nil {
			w.log.Debug("error on read", slog.Any("error", err))

			return
		}

		switch cmd.Typ {
		case "expand":
			w.tracker.Expand()
		case "collapse":
			w.tracker.Collapse()
		}
	}
}

// SendInfo pushes a server notice, e.g. the welcome message.
func (w *JSONWsHandler) SendInfo(text string) {
	if w == nil || !w.IsActive() || text == "" {
		return
	}

	select {
	case w.ch <- &WebMessage{Typ: "info", Text: text}:
	default:
	}
}

// NewChatMessage delivers one stored message if this viewer may see
// it. Returning false unsubscribes the handler from the feed.
func (w *JSONWsHandler) NewChatMessage(msg *model.Message) bool {
	if w == nil || !w.IsActive() {
		return false
	}

	if msg == nil || !w.wants(msg) {
		return true
	}

	if !w.firstArrival(msg) {
		return true
	}

	w.tracker.Observe()

	select {
	case w.ch <- &WebMessage{
		Typ:     "chat",
		Message: msg.DTO(chat.RenderFor(msg, w.viewer)),
		Unread:  w.tracker.Unread(),
	}:
	default:
	}

	return true
}

// firstArrival merges the message into the delivered list and reports
// whether it was new. The feed may hand the same row to a subscriber
// more than once; only the first arrival is delivered.
func (w *JSONWsHandler) firstArrival(msg *model.Message) bool {
	w.seenMx.Lock()
	defer w.seenMx.Unlock()

	merged := chat.Merge(w.seen, msg)
	if len(merged) == len(w.seen) {
		return false
	}

	if len(merged) > seenLimit {
		merged = merged[len(merged)-seenLimit:]
	}

	w.seen = merged

	return true
}

// wants scopes the feed to this viewer's campaign plus the general
// channel, then applies the visibility rules.
func (w *JSONWsHandler) wants(msg *model.Message) bool {
	if msg.Channel != model.ChannelGeneral {
		if msg.CampaignID == nil || *msg.CampaignID != w.campaignID {
			return false
		}
	}

	return chat.CanSee(msg, w.viewer)
}

func (w *JSONWsHandler) closehandler(code int, text string) error {
	w.log.Info(fmt.Sprintf("closed with code %d, msg %s", code, text))
	w.stop()

	return nil
}

func (w *JSONWsHandler) Listen() {
	w.log.Debug("ws start")
	w.ws.SetCloseHandler(w.closehandler)

	go w.writer()
	w.reader()
	w.log.Debug("ws stop")
}
