package bot

import (
	"context"
	"fmt"

	"marketbot/core/telegram/format"
	"marketbot/internal/model"

	tele "gopkg.in/telebot.v4"
)

// ExpiryNotifier delivers expiry alerts directly through the bot API.
// Sends are synchronous on purpose: the sweep loop needs the delivery
// result before it may remove the record.
type ExpiryNotifier struct {
	bot *tele.Bot
}

// NewExpiryNotifier wraps a bot for sweeper alerts.
func NewExpiryNotifier(b *tele.Bot) *ExpiryNotifier {
	return &ExpiryNotifier{bot: b}
}

// NotifyExpired sends the expiry alert to the product's owner.
func (n *ExpiryNotifier) NotifyExpired(_ context.Context, p model.Product) error {
	text := fmt.Sprintf(expiredAlertFmt,
		format.EscapeHTML(p.DisplayName()), p.DisplayExpiry())
	_, err := n.bot.Send(&tele.User{ID: p.UserID}, text, tele.ModeHTML)
	return err
}
