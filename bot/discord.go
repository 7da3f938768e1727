package bot

import (
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

// DiscordGateway adapts a discordgo session to the Gateway capability set.
// It owns the socket and its reconnection behavior; the core never touches
// discordgo outside this file.
type DiscordGateway struct {
	session *discordgo.Session
	guildID string
	handler func(Event)
}

func NewDiscordGateway(token, guildID string) (*DiscordGateway, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, err
	}

	g := &DiscordGateway{session: session, guildID: guildID}
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentMessageContent
	session.AddHandler(g.onMessage)

	return g, nil
}

// Notify registers the handler inbound events are delivered to. It must be
// called before Open.
func (g *DiscordGateway) Notify(fn func(Event)) {
	g.handler = fn
}

func (g *DiscordGateway) Open() error {
	if err := g.session.Open(); err != nil {
		return err
	}
	slog.Info("connected", "user", g.session.State.User.Username)
	return nil
}

func (g *DiscordGateway) Close() error {
	return g.session.Close()
}

func (g *DiscordGateway) onMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author.ID == s.State.User.ID || g.handler == nil {
		return
	}

	ch, err := s.State.Channel(m.ChannelID)
	if err != nil {
		if ch, err = s.Channel(m.ChannelID); err != nil {
			slog.Error("resolving channel", "channel", m.ChannelID, "error", err)
			return
		}
	}

	admin := false
	if m.GuildID != "" {
		perms, err := s.State.MessagePermissions(m.Message)
		if err == nil && perms&discordgo.PermissionAdministrator != 0 {
			admin = true
		}
	}

	g.handler(Event{
		Channel: ChannelRef{
			ID:   ch.ID,
			Name: ch.Name,
			DM:   ch.Type == discordgo.ChannelTypeDM,
		},
		User: User{
			ID:    m.Author.ID,
			Name:  m.Author.Username,
			Admin: admin,
		},
		Text:      m.Content,
		Timestamp: m.Timestamp,
	})
}

func (g *DiscordGateway) ChannelByName(name string) (ChannelRef, error) {
	channels, err := g.session.GuildChannels(g.guildID)
	if err != nil {
		return ChannelRef{}, err
	}

	for _, ch := range channels {
		if ch.Name == name && ch.Type == discordgo.ChannelTypeGuildText {
			return ChannelRef{ID: ch.ID, Name: ch.Name}, nil
		}
	}

	return ChannelRef{}, fmt.Errorf("channel %q not found", name)
}

func (g *DiscordGateway) UserByID(id string) (User, bool) {
	u, err := g.session.User(id)
	if err != nil {
		return User{}, false
	}
	return User{ID: u.ID, Name: u.Username}, true
}

func (g *DiscordGateway) Send(ch ChannelRef, text string) error {
	_, err := g.session.ChannelMessageSend(ch.ID, text)
	return err
}

func (g *DiscordGateway) OpenDM(userID string, fn func(ChannelRef)) {
	ch, err := g.session.UserChannelCreate(userID)
	if err != nil {
		slog.Error("opening direct channel", "user", userID, "error", err)
		return
	}
	fn(ChannelRef{ID: ch.ID, Name: ch.Name, DM: true})
}

// CloseDM is a no-op: Discord keeps direct channels open. It is part of
// the capability set for transports that do close them.
func (g *DiscordGateway) CloseDM(ch ChannelRef) {}

func (g *DiscordGateway) SetPresence(p Presence) error {
	status := "online"
	if p == PresenceAway {
		status = "idle"
	}
	return g.session.UpdateStatusComplex(discordgo.UpdateStatusData{Status: status})
}
