package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// EmbedSender is the slice of the discordgo session the sink needs
type EmbedSender interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// DiscordSink posts broadcast messages to one channel as embeds.
// Messages addressed to a single actor are ignored.
type DiscordSink struct {
	session   EmbedSender
	channelID string
	title     cases.Caser
}

// NewDiscordSession opens a bot session for token
func NewDiscordSession(token string) (*discordgo.Session, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	return s, nil
}

// NewDiscordSink creates a sink posting to channelID
func NewDiscordSink(session EmbedSender, channelID string) *DiscordSink {
	return &DiscordSink{
		session:   session,
		channelID: channelID,
		title:     cases.Title(language.English),
	}
}

// Notify implements Sink
func (d *DiscordSink) Notify(ctx context.Context, msg Message) error {
	if !msg.Broadcast {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	embed := &discordgo.MessageEmbed{
		Title:       d.title.String(strings.ReplaceAll(msg.Key[strings.LastIndex(msg.Key, ".")+1:], "_", " ")),
		Description: StripColors(msg.Text),
		Color:       tierColor(msg.Tier),
	}
	if msg.Tier != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: d.title.String(msg.Tier)}
	}

	if _, err := d.session.ChannelMessageSendEmbed(d.channelID, embed); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgDiscordSend, err)
	}
	return nil
}

func tierColor(tier string) int {
	t := strings.ToLower(tier)
	switch {
	case strings.Contains(t, "mythic"):
		return ColorMythic
	case strings.Contains(t, "legendary"):
		return ColorLegendary
	case strings.Contains(t, "rare"):
		return ColorRare
	default:
		return ColorDefault
	}
}
