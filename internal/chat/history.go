package chat

import (
	"github.com/mvoronin/govtt/internal/model"
)

// Merge appends incoming messages to the list, discarding any whose ID
// is already present. The sender inserts its own message locally and
// later receives it again over the feed, so the second arrival must be
// dropped. Order of the existing list is preserved.
func Merge(list []*model.Message, incoming ...*model.Message) []*model.Message {
	seen := make(map[string]bool, len(list))

	for _, m := range list {
		seen[m.GetID()] = true
	}

	for _, m := range incoming {
		if m == nil || seen[m.ID] {
			continue
		}

		seen[m.ID] = true
		list = append(list, m)
	}

	return list
}
