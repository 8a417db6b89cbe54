package notification

import (
	"context"
	"fmt"
	"html"
	"math"
	"strings"
	"time"

	"github.com/emmaeryne/amjednamoussa/cmd/config"
	"github.com/emmaeryne/amjednamoussa/constant"
	"github.com/emmaeryne/amjednamoussa/model"
	"github.com/emmaeryne/amjednamoussa/thirdparty/resend"
	cerr "github.com/emmaeryne/amjednamoussa/utils/errors"
	"github.com/emmaeryne/amjednamoussa/utils/logger"
	"github.com/emmaeryne/amjednamoussa/utils/pricing"
	validatorx "github.com/emmaeryne/amjednamoussa/utils/validator"
	"go.uber.org/zap"
)

// totalTolerance is the largest accepted drift between the claimed total and
// the total recomputed from raw item data.
const totalTolerance = 0.01

// Mailer sends one email and returns the provider's message id.
type Mailer interface {
	Send(ctx context.Context, req *resend.SendRequest) (*resend.SendResponse, error)
}

type NotificationApp interface {
	Process(ctx context.Context, req *model.OrderNotificationRequest) (*model.OrderNotificationResponse, error)
}

type notificationAppImpl struct {
	config *config.Config
	mailer Mailer
}

func NewNotificationApp(config *config.Config, mailer Mailer) NotificationApp {
	return &notificationAppImpl{config: config, mailer: mailer}
}

// Process validates the payload, verifies the claimed total against a fresh
// recomputation from the raw items, and only then sends the customer and
// admin emails. A forged request with a tampered total is rejected before any
// message leaves the system.
func (s *notificationAppImpl) Process(ctx context.Context, req *model.OrderNotificationRequest) (*model.OrderNotificationResponse, error) {
	if err := validatorx.ValidateStruct(req); err != nil {
		return nil, cerr.SetCustomError(constant.ErrInvalidRequest)
	}

	prices := make([]float64, len(req.Items))
	quantities := make([]int, len(req.Items))
	for i, item := range req.Items {
		prices[i] = item.Price
		quantities[i] = item.Quantity
	}
	recomputed := pricing.Total(pricing.Subtotal(prices, quantities), req.DeliveryFee, req.DiscountAmount)
	if math.Abs(recomputed-req.TotalAmount) > totalTolerance {
		logger.Warn("[Process] total amount mismatch",
			zap.String("order_id", req.OrderID),
			zap.Float64("recomputed", recomputed),
			zap.Float64("claimed", req.TotalAmount),
		)
		return nil, cerr.SetCustomError(constant.ErrTotalMismatch)
	}

	customerHTML := buildCustomerEmail(req)
	adminHTML := buildAdminEmail(req)
	shortID := escapeText(shortOrderID(req.OrderID))

	customerResp, err := s.mailer.Send(ctx, &resend.SendRequest{
		From:    s.config.Notifier.FromAddress,
		To:      []string{req.CustomerEmail},
		Subject: fmt.Sprintf("Confirmation de commande #%s - Namoussa", shortID),
		HTML:    customerHTML,
	})
	if err != nil {
		logger.Error("[Process] send customer email", zap.String("order_id", req.OrderID), zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}

	adminResp, err := s.mailer.Send(ctx, &resend.SendRequest{
		From:    s.config.Notifier.FromAddress,
		To:      []string{s.config.Notifier.AdminEmail},
		Subject: fmt.Sprintf("Nouvelle commande #%s - %.2f DT", shortID, req.TotalAmount),
		HTML:    adminHTML,
	})
	if err != nil {
		logger.Error("[Process] send admin email", zap.String("order_id", req.OrderID), zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}

	return &model.OrderNotificationResponse{
		CustomerEmailID: customerResp.ID,
		AdminEmailID:    adminResp.ID,
	}, nil
}

// escapeText escapes markup metacharacters and strips newlines so free-text
// fields are safe to embed in a generated message body.
func escapeText(unsafe string) string {
	escaped := html.EscapeString(unsafe)
	escaped = strings.ReplaceAll(escaped, "\n", " ")
	return strings.ReplaceAll(escaped, "\r", "")
}

func shortOrderID(orderID string) string {
	if len(orderID) > 8 {
		orderID = orderID[:8]
	}
	return strings.ToUpper(orderID)
}

func buildItemsRows(items []model.NotificationItem) string {
	var b strings.Builder
	for _, item := range items {
		name := escapeText(item.Name)
		if item.Size != "" {
			name += fmt.Sprintf(" (Taille: %s)", escapeText(item.Size))
		}
		if item.Color != "" {
			name += fmt.Sprintf(" (%s)", escapeText(item.Color))
		}
		fmt.Fprintf(&b, "<tr><td>%s</td><td>%d</td><td>%.2f DT</td></tr>\n", name, item.Quantity, item.Price*float64(item.Quantity))
	}
	return b.String()
}

func buildPricingRows(req *model.OrderNotificationRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<tr><td colspan=\"2\">Sous-total</td><td>%.2f DT</td></tr>\n", req.Subtotal)
	fmt.Fprintf(&b, "<tr><td colspan=\"2\">Livraison</td><td>%.2f DT</td></tr>\n", req.DeliveryFee)
	if req.DiscountAmount > 0 {
		label := "Réduction"
		if req.PromoCode != nil && *req.PromoCode != "" {
			label += fmt.Sprintf(" (%s)", escapeText(*req.PromoCode))
		}
		fmt.Fprintf(&b, "<tr><td colspan=\"2\">%s</td><td>-%.2f DT</td></tr>\n", label, req.DiscountAmount)
	}
	fmt.Fprintf(&b, "<tr><td colspan=\"2\"><strong>Total à payer</strong></td><td><strong>%.2f DT</strong></td></tr>\n", req.TotalAmount)
	return b.String()
}

func buildCustomerEmail(req *model.OrderNotificationRequest) string {
	var b strings.Builder
	b.WriteString("<html><body>")
	b.WriteString("<h1>Namoussa</h1>")
	fmt.Fprintf(&b, "<h2>Merci pour votre commande, %s!</h2>\n", escapeText(req.CustomerName))
	fmt.Fprintf(&b, "<p>Votre commande <strong>#%s</strong> a bien été reçue et est en cours de traitement.</p>\n", escapeText(shortOrderID(req.OrderID)))
	b.WriteString("<table><thead><tr><th>Article</th><th>Qté</th><th>Prix</th></tr></thead><tbody>\n")
	b.WriteString(buildItemsRows(req.Items))
	b.WriteString("</tbody><tfoot>\n")
	b.WriteString(buildPricingRows(req))
	b.WriteString("</tfoot></table>\n")
	fmt.Fprintf(&b, "<p>Paiement à la livraison: préparez le montant exact (%.2f DT).</p>\n", req.TotalAmount)
	b.WriteString("<p>Nous vous contacterons bientôt pour confirmer les détails de livraison.</p>")
	b.WriteString("</body></html>")
	return b.String()
}

func buildAdminEmail(req *model.OrderNotificationRequest) string {
	var b strings.Builder
	b.WriteString("<html><body>")
	fmt.Fprintf(&b, "<h1>Nouvelle commande #%s - %.2f DT</h1>\n", escapeText(shortOrderID(req.OrderID)), req.TotalAmount)
	fmt.Fprintf(&b, "<p>Reçue le %s</p>\n", time.Now().Format("02/01/2006 15:04"))
	if req.PromoCode != nil && *req.PromoCode != "" {
		fmt.Fprintf(&b, "<p>Code promo utilisé: <strong>%s</strong> (-%.2f DT)</p>\n", escapeText(*req.PromoCode), req.DiscountAmount)
	}
	b.WriteString("<h2>Informations client</h2><table>\n")
	fmt.Fprintf(&b, "<tr><td>Nom:</td><td>%s</td></tr>\n", escapeText(req.CustomerName))
	fmt.Fprintf(&b, "<tr><td>Email:</td><td>%s</td></tr>\n", escapeText(req.CustomerEmail))
	fmt.Fprintf(&b, "<tr><td>Téléphone:</td><td>%s</td></tr>\n", escapeText(req.CustomerPhone))
	fmt.Fprintf(&b, "<tr><td>Adresse:</td><td>%s</td></tr>\n", escapeText(req.CustomerAddress))
	fmt.Fprintf(&b, "<tr><td>Ville:</td><td>%s</td></tr>\n", escapeText(req.CustomerCity))
	b.WriteString("</table>\n")
	b.WriteString("<h2>Articles commandés</h2>")
	b.WriteString("<table><thead><tr><th>Article</th><th>Qté</th><th>Prix</th></tr></thead><tbody>\n")
	b.WriteString(buildItemsRows(req.Items))
	b.WriteString("</tbody><tfoot>\n")
	b.WriteString(buildPricingRows(req))
	b.WriteString("</tfoot></table>\n")
	b.WriteString("<p>Paiement à la livraison</p>")
	b.WriteString("</body></html>")
	return b.String()
}
