package services

import (
	"fmt"
	"strings"

	"storefront-service/models"
)

// buildConfirmationEmail renders the order confirmation body. Kept as plain
// formatted HTML; template fidelity is the storefront's concern, not ours.
func buildConfirmationEmail(order *models.Order, customerName string) (subject, body string) {
	subject = fmt.Sprintf("Order Confirmed: %s", order.OrderNumber)

	var b strings.Builder
	b.WriteString("<html><body>")
	fmt.Fprintf(&b, "<h1>Thank You, %s!</h1>", customerName)

	verb := "confirmed"
	if order.DepositPaid {
		verb = "received"
	}
	fmt.Fprintf(&b, "<p>Your order <strong>%s</strong> has been %s.</p>", order.OrderNumber, verb)

	b.WriteString("<ul>")
	for _, item := range order.OrderItems {
		fmt.Fprintf(&b, "<li>%s x%d - $%.2f</li>",
			item.ProductName, item.Quantity, item.PriceAtPurchase*float64(item.Quantity))
	}
	b.WriteString("</ul>")

	fmt.Fprintf(&b, "<p>Subtotal: $%.2f</p>", order.Subtotal)
	fmt.Fprintf(&b, "<p>Amount paid: $%.2f</p>", order.AmountPaid)

	if order.DepositPaid {
		balance := order.TotalAmount - order.AmountPaid
		fmt.Fprintf(&b, "<p><strong>Balance due on delivery: $%.2f</strong><br>We accept cash, card, Venmo, or Zelle.</p>", balance)
	}

	if order.DeliveryDate != nil && *order.DeliveryDate != "" {
		fmt.Fprintf(&b, "<p>Delivery: %s", *order.DeliveryDate)
		if order.DeliveryBorough != nil && *order.DeliveryBorough != "" {
			fmt.Fprintf(&b, " - %s", *order.DeliveryBorough)
		}
		b.WriteString("</p>")
	}

	b.WriteString("</body></html>")
	return subject, b.String()
}
