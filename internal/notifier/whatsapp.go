package notifier

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/gh0stlung/Agri-Store/internal/models"
)

// WhatsApp builds pre-filled order messages for the shop's fixed contact
// number. Opening the link is the customer's side of the handoff: there is
// no response channel and no way to confirm the message was sent.
type WhatsApp struct {
	number string
}

func NewWhatsApp(number string) WhatsApp {
	return WhatsApp{number: number}
}

// OrderMessage renders the human-readable order summary sent to the shop.
func OrderMessage(ref, name, phone, address string, items []models.OrderItem, total int64) string {
	lines := make([]string, 0, len(items))
	for i, item := range items {
		unit := item.Unit
		if unit == "" {
			unit = "unit"
		}
		lines = append(lines, fmt.Sprintf("%d. %s (%d %s)", i+1, item.Name, item.Quantity, unit))
	}

	return fmt.Sprintf(
		"*New Order: %s*\n------------------\n*Customer:* %s\n*Mobile:* %s\n*Address:* %s\n\n*Items Ordered:*\n%s\n\n*Total Amount:* ₹%d\n------------------\nPlease confirm delivery.",
		ref, name, phone, address, strings.Join(lines, "\n"), total,
	)
}

// Link percent-encodes body into the wa.me deep link for the shop number.
func (w WhatsApp) Link(body string) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", w.number, url.QueryEscape(body))
}
