// Package display форматирует заказы для оператора: деньги, даты, статусы, сводки.
package display

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/vladislavdragonenkov/orderdesk/internal/domain"
	"github.com/vladislavdragonenkov/orderdesk/internal/i18n"
)

// DateLayout — формат даты заказа (день/месяц/год часы:минуты).
const DateLayout = "02/01/2006 15:04"

const currencySymbol = " ₫"

// DefaultLocation — часовой пояс магазина (UTC+7).
var DefaultLocation = time.FixedZone("ICT", 7*3600)

// Formatter привязан к таблице подписей и языку для группировки разрядов.
type Formatter struct {
	labels   *i18n.Labels
	printer  *message.Printer
	location *time.Location
}

// NewFormatter создаёт форматтер. Язык берётся из labels.Locale, по умолчанию вьетнамский.
func NewFormatter(labels *i18n.Labels, location *time.Location) *Formatter {
	if labels == nil {
		labels = i18n.MustBuiltin(i18n.LocaleVI)
	}
	if location == nil {
		location = DefaultLocation
	}
	tag, err := language.Parse(labels.Locale)
	if err != nil {
		tag = language.Vietnamese
	}
	return &Formatter{
		labels:   labels,
		printer:  message.NewPrinter(tag),
		location: location,
	}
}

// FormatCurrency округляет до целых донгов и группирует разряды по правилам языка.
func (f *Formatter) FormatCurrency(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		amount = 0
	}
	rounded := decimal.NewFromFloat(amount).Round(0).IntPart()
	return f.printer.Sprintf("%d", rounded) + currencySymbol
}

// FormatDate печатает дату в часовом поясе форматтера.
func (f *Formatter) FormatDate(t time.Time) string {
	return t.In(f.location).Format(DateLayout)
}

// StatusName — подпись статуса из таблицы.
func (f *Formatter) StatusName(status domain.OrderStatus) string {
	return f.labels.StatusName(status)
}

// StatusColor — цвет статуса из таблицы.
func (f *Formatter) StatusColor(status domain.OrderStatus) string {
	return f.labels.StatusColor(status)
}

// OrderSummary — многострочная сводка заказа.
func (f *Formatter) OrderSummary(order domain.Order) string {
	totalQuantity := 0
	for _, item := range order.Items {
		totalQuantity += item.Quantity
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s - %s\n", f.labels.Text("order"), order.ID, f.FormatCurrency(order.Total))
	fmt.Fprintf(&b, "%s: %s\n", f.labels.Text("customer"), order.CustomerName)
	fmt.Fprintf(&b, "%s: %d %s (%d %s)\n", f.labels.Text("quantity"), totalQuantity,
		f.labels.Text("products"), len(order.Items), f.labels.Text("kinds"))
	fmt.Fprintf(&b, "%s: %s", f.labels.Text("status"), f.StatusName(order.Status))
	return b.String()
}

// MainProduct возвращает позицию с наибольшей суммой; при равенстве первую.
func (f *Formatter) MainProduct(order domain.Order) string {
	if len(order.Items) == 0 {
		return f.labels.Text("no_products")
	}
	top := order.Items[0]
	for _, item := range order.Items[1:] {
		if item.Subtotal() > top.Subtotal() {
			top = item
		}
	}
	return fmt.Sprintf("%s x %d", top.ProductName, top.Quantity)
}

// StatisticsSummary печатает число заказов по статусам и выручку.
func (f *Formatter) StatisticsSummary(stats domain.OrderStatistics) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d\n", f.labels.Text("total_orders"), stats.TotalOrders)
	for _, line := range []struct {
		status domain.OrderStatus
		count  int
	}{
		{domain.OrderStatusPending, stats.PendingOrders},
		{domain.OrderStatusShipping, stats.ShippingOrders},
		{domain.OrderStatusCompleted, stats.CompletedOrders},
		{domain.OrderStatusCancelled, stats.CancelledOrders},
	} {
		fmt.Fprintf(&b, "%s: %d\n", f.StatusName(line.status), line.count)
	}
	fmt.Fprintf(&b, "%s: %s", f.labels.Text("revenue"), f.FormatCurrency(stats.TotalRevenue))
	return b.String()
}
