package model

// NoticeKind classifies user-facing notices so the client can decide how
// to present them: transient toasts for selection feedback, blocking
// dialogs for conflicts.
type NoticeKind string

const (
	NoticeSelection NoticeKind = "selection" // running "N seats selected" feedback
	NoticeLimit     NoticeKind = "limit"     // selection limit reached
	NoticeInvalid   NoticeKind = "invalid"   // seat cannot be selected
	NoticeConflict  NoticeKind = "conflict"  // another buyer took selected seats
	NoticeExpired   NoticeKind = "expired"   // hold countdown reached zero
)

// Notice is a message surfaced to the viewer.  Notices sharing a Key
// replace each other instead of stacking, which is how the running
// seat-count toast updates in place.  Blocking notices stay until the
// viewer dismisses them explicitly.
//
// Fields:
//  ID       – unique id, used for dismissal.
//  Key      – replacement key; empty means never replaced.
//  Kind     – classification driving presentation.
//  Message  – human-readable text.
//  Seats    – labels of affected seats, e.g. ["A5","A6"] on conflicts.
//  Blocking – true when the client must require an explicit dismissal.
type Notice struct {
	ID       string     `json:"id"`
	Key      string     `json:"key,omitempty"`
	Kind     NoticeKind `json:"kind"`
	Message  string     `json:"message"`
	Seats    []string   `json:"seats,omitempty"`
	Blocking bool       `json:"blocking"`
}
