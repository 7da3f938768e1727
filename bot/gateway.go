package bot

import "time"

// Presence mirrors the transport's availability states.
type Presence string

const (
	PresenceActive Presence = "active"
	PresenceAway   Presence = "away"
)

// ChannelRef identifies a channel or direct-message conversation on the
// transport.
type ChannelRef struct {
	ID   string
	Name string
	DM   bool
}

// User is the resolved sender of an event. Admin is the transport's own
// notion of an administrator, used as a fallback when the configured
// allow-list does not know the user.
type User struct {
	ID    string
	Name  string
	Admin bool
}

// Display returns the identity scores are keyed by.
func (u User) Display() string {
	return "@" + u.Name
}

// Event is one inbound chat message.
type Event struct {
	Channel   ChannelRef
	User      User
	Text      string
	Timestamp time.Time
}

// Gateway is the capability set the bot consumes from a chat transport.
// The bot never owns the connection; an adapter delivers inbound events to
// the handler it was wired with and answers these narrow queries.
type Gateway interface {
	ChannelByName(name string) (ChannelRef, error)
	UserByID(id string) (User, bool)
	Send(ch ChannelRef, text string) error
	// OpenDM opens a direct channel to the user and hands it to fn once
	// available. The channel may be delivered asynchronously.
	OpenDM(userID string, fn func(ChannelRef))
	CloseDM(ch ChannelRef)
	SetPresence(p Presence) error
}
