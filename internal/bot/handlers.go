package bot

import (
	"fmt"
	"log/slog"
	"time"

	"marketbot/core/logger"
	"marketbot/core/telegram/callbacks"
	"marketbot/core/telegram/format"
	tghelpers "marketbot/core/telegram/helpers"
	"marketbot/core/telegram/keyboard"
	"marketbot/core/telegram/ui"
	"marketbot/internal/calendar"
	"marketbot/internal/flow"
	"marketbot/internal/metrics"
	"marketbot/internal/service"
	"marketbot/internal/storage"

	tele "gopkg.in/telebot.v4"
)

// Handlers holds everything the bot's command and dialog handlers depend on.
type Handlers struct {
	Flow     *flow.AddProduct
	Products *service.ProductService
	Users    storage.UserStore
}

// Start replies with the command manual.
func (h *Handlers) Start(c tele.Context) error {
	return tghelpers.SendHTML(c, startManual)
}

// Add begins the add-product dialog and asks for the product name.
func (h *Handlers) Add(c tele.Context) error {
	h.Flow.Begin(c.Sender().ID)
	return tghelpers.SendText(c, promptName, &tele.SendOptions{
		ReplyMarkup: keyboard.ForceReply(),
	})
}

// All replies with the full tracked-product list.
func (h *Handlers) All(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	text, err := h.Products.ListFormatted(ctx)
	if err != nil {
		return err
	}
	return tghelpers.SendText(c, text)
}

// Stats replies with record counts. Wired admin-only and hidden.
func (h *Handlers) Stats(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	users, err := h.Users.Count(ctx)
	if err != nil {
		return err
	}
	products, err := h.Products.CountProducts(ctx)
	if err != nil {
		return err
	}
	return tghelpers.ReplyHTML(c, fmt.Sprintf(
		"<b>Stats</b>\nusers: %d\nproducts: %d", users, products,
	))
}

// ReceiveName captures the product name typed during the dialog and shows
// the expiry date calendar. The name is stored verbatim.
func (h *Handlers) ReceiveName(c tele.Context) error {
	userID := c.Sender().ID
	h.Flow.RememberName(userID, c.Text())

	now := time.Now()
	return tghelpers.SendHTML(c, promptDate, calendar.Month(now.Year(), now.Month()))
}

// CalendarNav flips the calendar to another month in place.
func (h *Handlers) CalendarNav(c tele.Context) error {
	payload := callbacks.CallbackPayload(c)
	year, month, err := calendar.ParseMonth(payload)
	if err != nil {
		ctx := tghelpers.BuildContext(c)
		logger.Warn(ctx, "tg", "calendar.nav.bad_payload",
			slog.String("payload", logger.SanitizeLimit(payload, 64)),
		)
		return nil
	}
	return tghelpers.EditOrSendHTML(c, promptDate, calendar.Month(year, month))
}

// CalendarDay finishes the dialog: the picked day becomes the expiry date
// of the previously captured product name.
func (h *Handlers) CalendarDay(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	userID := c.Sender().ID

	payload := callbacks.CallbackPayload(c)
	day, err := calendar.ParseDay(payload)
	if err != nil {
		logger.Warn(ctx, "tg", "calendar.day.bad_payload",
			slog.String("payload", logger.SanitizeLimit(payload, 64)),
		)
		return tghelpers.SendText(c, dialogExpiredReply)
	}

	name, ok := h.Flow.PendingName(userID)
	if !ok {
		// Stale tap on an old calendar, no dialog in progress.
		return tghelpers.SendText(c, dialogExpiredReply)
	}

	if err := h.Products.Add(ctx, userID, name, day); err != nil {
		return err
	}
	h.Flow.Complete(userID)

	return tghelpers.EditOrSendHTML(c, fmt.Sprintf(savedReplyFmt,
		format.EscapeHTML(name), day.Format("2006-01-02")))
}

// CalendarIgnore swallows taps on decorative calendar cells.
func (h *Handlers) CalendarIgnore(tele.Context) error {
	return nil
}

// AccessDenied tells a user they are not on the allow list.
func (h *Handlers) AccessDenied(c tele.Context) error {
	metrics.AccessDenied.Inc()
	return tghelpers.ReplyText(c, accessDeniedReply)
}

var _ ui.FallbackProvider = (*Handlers)(nil)

// UnknownText ignores free text outside of any dialog.
func (h *Handlers) UnknownText() tele.HandlerFunc {
	return func(tele.Context) error { return nil }
}

// UnknownCallback answers unroutable callbacks without side effects.
func (h *Handlers) UnknownCallback() tele.HandlerFunc {
	return func(tele.Context) error { return nil }
}
