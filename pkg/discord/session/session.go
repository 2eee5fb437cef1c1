package session

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/small-frappuccino/modsheet/pkg/errutil"
	"github.com/small-frappuccino/modsheet/pkg/log"
)

// Error messages
const (
	ErrSessionCreationFailed   = "failed to create Discord session: %w"
	ErrSessionConnectionFailed = "failed to connect to Discord: %w"
)

// ErrEmptyToken is returned when no bot token is configured.
var ErrEmptyToken = errors.New("discord bot token is empty")

// Intents requests only guild events; slash commands arrive as interactions
// and need no privileged intents.
const Intents = discordgo.IntentsGuilds

var (
	newSession = func(token string) (*discordgo.Session, error) {
		return discordgo.New("Bot " + token)
	}
	openSession  = func(s *discordgo.Session) error { return s.Open() }
	closeSession = func(s *discordgo.Session) error { return s.Close() }
)

// NewDiscordSession creates a bot session and opens the gateway connection.
func NewDiscordSession(token string) (*discordgo.Session, error) {
	if token == "" {
		log.ErrorLogger().Error("❌ Discord bot token is empty. Please set DISCORD_TOKEN before starting the bot.")
		return nil, ErrEmptyToken
	}

	log.DiscordLogger().Info("🔑 Creating Discord session")

	var s *discordgo.Session
	if err := errutil.HandleDiscordError("create_session", func() error {
		var sessionErr error
		s, sessionErr = newSession(token)
		return sessionErr
	}); err != nil {
		return nil, fmt.Errorf(ErrSessionCreationFailed, err)
	}

	s.Identify.Intents = Intents

	log.DiscordLogger().Info("🔗 Connecting to Discord...")
	if err := errutil.HandleDiscordError("connect", func() error {
		return openSession(s)
	}); err != nil {
		_ = closeSession(s)
		return nil, fmt.Errorf(ErrSessionConnectionFailed, err)
	}

	log.DiscordLogger().Info("✅ Connected to Discord successfully")
	return s, nil
}

// Close closes the gateway connection.
func Close(s *discordgo.Session) error {
	if s == nil {
		return nil
	}
	return errutil.HandleDiscordError("close_session", func() error {
		return closeSession(s)
	})
}
