package bot

import (
	"fmt"
	"strings"

	"github.com/VaishnevSreejeev/canteen-ordering-app/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Notifier pushes new-order messages to the canteen staff chat. It sits
// outside the placement transaction: a failed send never affects an
// already-committed order.
type Notifier struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

func NewNotifier(token string, chatID int64) (*Notifier, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("staff bot: %w", err)
	}
	return &Notifier{api: api, chatID: chatID}, nil
}

// OrderPlaced sends the order summary to the staff chat.
func (n *Notifier) OrderPlaced(o *models.Order) error {
	msg := tgbotapi.NewMessage(n.chatID, FormatOrderMessage(o))
	_, err := n.api.Send(msg)
	return err
}

// FormatOrderMessage renders one order as the staff chat text.
func FormatOrderMessage(o *models.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "New order #%d\n", o.ID)
	fmt.Fprintf(&b, "Student: %s\n", o.StudentID)
	for _, it := range o.Items {
		fmt.Fprintf(&b, "  %d x %s (%d)\n", it.Quantity, it.ItemName, it.PriceAtOrder)
	}
	fmt.Fprintf(&b, "Total: %d", o.TotalPrice)
	return b.String()
}
