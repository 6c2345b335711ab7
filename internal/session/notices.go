package session

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/hessamz/seatmap-session/internal/model"
)

// ErrNoticeNotFound is returned when dismissing an unknown notice id.
var ErrNoticeNotFound = errors.New("notice not found")

// NoticeBoard collects the notices of one session.  Notices carrying a
// Key replace the previous notice with the same key (the running
// "N seats selected" toast), everything else appends.  Listing never
// removes anything; a notice leaves the board only when it is dismissed
// or replaced through its key.
type NoticeBoard struct {
	mu      sync.Mutex
	notices []model.Notice
}

// NewNoticeBoard constructs an empty board.
func NewNoticeBoard() *NoticeBoard { return &NoticeBoard{} }

// Publish adds a notice, assigning it an id and applying key
// replacement.  Implements selection.Notifier.
func (b *NoticeBoard) Publish(n model.Notice) {
	b.mu.Lock()
	defer b.mu.Unlock()
	n.ID = uuid.NewString()
	if n.Key != "" {
		for i := range b.notices {
			if b.notices[i].Key == n.Key {
				b.notices[i] = n
				return
			}
		}
	}
	b.notices = append(b.notices, n)
}

// List returns the current notices in publish order.
func (b *NoticeBoard) List() []model.Notice {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]model.Notice, len(b.notices))
	copy(out, b.notices)
	return out
}

// Dismiss removes a notice by id.
func (b *NoticeBoard) Dismiss(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.notices {
		if b.notices[i].ID == id {
			b.notices = append(b.notices[:i], b.notices[i+1:]...)
			return nil
		}
	}
	return ErrNoticeNotFound
}
