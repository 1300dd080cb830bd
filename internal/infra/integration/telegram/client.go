package telegram

import (
	"context"
	"fmt"
	"html"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/landing/contacto-api/internal/entity"
)

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Notifier posts new-lead alerts to a staff chat.
type Notifier struct {
	bot    sender
	chatID int64
}

// NewNotifier authenticates against the Bot API (getMe) before returning.
func NewNotifier(token string, chatID int64) (*Notifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot init: %w", err)
	}
	return &Notifier{bot: bot, chatID: chatID}, nil
}

func (n *Notifier) NotifyNewLead(ctx context.Context, lead *entity.Lead) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(n.chatID, FormatLead(lead))
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true

	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}

func FormatLead(lead *entity.Lead) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>Nuevo lead #%d</b>\n", lead.ID)
	fmt.Fprintf(&b, "Nombre: %s\n", html.EscapeString(lead.Nombre))
	fmt.Fprintf(&b, "Teléfono: %s\n", html.EscapeString(lead.Telefono))
	fmt.Fprintf(&b, "Correo: %s\n", html.EscapeString(lead.Correo))
	fmt.Fprintf(&b, "Mensaje: %s", html.EscapeString(lead.Mensaje))
	return b.String()
}
