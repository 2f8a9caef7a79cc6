package providers

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-telegram/bot"
	"golang.org/x/time/rate"
)

// Telegram sends plain text to one fixed chat through the go-telegram/bot library.
type Telegram struct {
	bot     *bot.Bot
	chatID  any
	limiter *rate.Limiter
}

// NewTelegram wraps an initialised bot. chatID is either a numeric id or an
// @channel username.
func NewTelegram(b *bot.Bot, chatID string, ratePerSecond int) *Telegram {
	if ratePerSecond <= 0 {
		ratePerSecond = 1
	}
	return &Telegram{
		bot:     b,
		chatID:  parseChatID(chatID),
		limiter: rate.NewLimiter(rate.Limit(float64(ratePerSecond)), ratePerSecond),
	}
}

func (t *Telegram) Name() string { return "telegram" }

// Send makes a single attempt; callers decide what a failure means.
func (t *Telegram) Send(ctx context.Context, text string) error {
	if err := t.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("telegram rate limit exceeded: %w", err)
	}

	params := &bot.SendMessageParams{
		ChatID: t.chatID,
		Text:   text,
	}
	if _, err := t.bot.SendMessage(ctx, params); err != nil {
		return fmt.Errorf("failed to send Telegram message to chat_id %v: %w", t.chatID, err)
	}
	return nil
}

func parseChatID(s string) any {
	if id, err := strconv.ParseInt(s, 10, 64); err == nil {
		return id
	}
	return s
}
