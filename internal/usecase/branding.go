package usecase

import (
	"fmt"
	"strings"

	"github.com/iamvkosarev/codeninja-telegram-bot/config"
)

const watermarkRule = "──────────────────────"

type Branding struct {
	config.Branding
	Channel string
}

func NewBranding(cfg config.Branding, channel string) Branding {
	return Branding{Branding: cfg, Channel: channel}
}

// Watermark is the plain footer appended to captions and HTML text.
func (b Branding) Watermark() string {
	return b.watermark(b.BotName, "Official Channel: ", "  •  ")
}

// WatermarkMarkdown is the footer appended to Markdown text.
func (b Branding) WatermarkMarkdown() string {
	return b.watermark("*"+b.BotName+"*", "", " • ")
}

func (b Branding) watermark(name, channelLabel, socialSep string) string {
	var sb strings.Builder
	sb.WriteString("\n\n" + watermarkRule + "\n🤖 " + name)
	if b.Channel != "" {
		sb.WriteString(" • " + channelLabel + b.Channel)
	}
	if b.OwnerContact != "" {
		sb.WriteString("\n👨‍💻 Dev: " + b.OwnerContact)
	}
	socials := make([]string, 0, 2)
	if b.OwnerInstagram != "" {
		socials = append(socials, "📸 Instagram: @"+b.OwnerInstagram)
	}
	if b.OwnerYouTube != "" {
		socials = append(socials, "▶️ YouTube: @"+b.OwnerYouTube)
	}
	if len(socials) > 0 {
		sb.WriteString("\n" + strings.Join(socials, socialSep))
	}
	return sb.String()
}

func (b Branding) ChannelURL() string {
	return telegramURL(b.Channel)
}

func (b Branding) OwnerURL() string {
	return telegramURL(b.OwnerContact)
}

func (b Branding) InstagramURL() string {
	if b.OwnerInstagram == "" {
		return ""
	}
	return fmt.Sprintf("https://instagram.com/%s", b.OwnerInstagram)
}

func (b Branding) YouTubeURL() string {
	if b.OwnerYouTube == "" {
		return ""
	}
	return fmt.Sprintf("https://www.youtube.com/@%s", b.OwnerYouTube)
}

func telegramURL(handle string) string {
	handle = strings.TrimPrefix(strings.TrimSpace(handle), "@")
	if handle == "" {
		return ""
	}
	return fmt.Sprintf("https://t.me/%s", handle)
}
