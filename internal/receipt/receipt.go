// Package receipt renders an order into thermal-printer output.
//
// Two renditions are produced from the same order:
//   - Text: a fixed-width 32-column layout archived to storage.
//   - HTML: an 80mm Courier print document served to the admin screen.
//
// Both are pure functions of the order. Money is rendered as "R$ 10.00".
package receipt

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/MatheusTerradasDEV/ChapaQuente/app/models"
)

const lineWidth = 32

// Money formats an amount the way the printed receipt shows it.
func Money(v float64) string {
	return fmt.Sprintf("R$ %.2f", v)
}

func deliveryLabel(t string) string {
	if t == models.DeliveryTypeDelivery {
		return "ENTREGA"
	}
	return "RETIRADA"
}

func formatDateTime(t time.Time) string {
	return t.Format("02/01/06 15:04")
}

func center(s string) string {
	n := utf8.RuneCountInString(s)
	if n >= lineWidth {
		return s
	}
	pad := (lineWidth - n) / 2
	return strings.Repeat(" ", pad) + s
}

func divider() string {
	return strings.Repeat("=", lineWidth)
}

// Text renders the fixed-width receipt archived after an order is accepted.
func Text(order *models.Order, restaurantName string) string {
	var b strings.Builder

	b.WriteString(center(restaurantName) + "\n")
	b.WriteString(divider() + "\n")
	b.WriteString(center("PEDIDO #"+order.ShortID()) + "\n")
	b.WriteString(center(formatDateTime(order.CreatedAt)) + "\n")
	b.WriteString(divider() + "\n")

	b.WriteString("CLIENTE: " + order.CustomerName + "\n")
	b.WriteString("TELEFONE: " + order.Phone + "\n")
	b.WriteString("TIPO: " + deliveryLabel(order.DeliveryType) + "\n")
	if order.DeliveryType == models.DeliveryTypeDelivery {
		b.WriteString("ENDEREÇO: " + order.Address + "\n")
	}
	if label, ok := models.StatusLabels[order.Status]; ok {
		b.WriteString("STATUS: " + label + "\n")
	} else {
		b.WriteString("STATUS: " + order.Status + "\n")
	}

	b.WriteString(divider() + "\n")
	b.WriteString(center("ITENS DO PEDIDO") + "\n")
	b.WriteString(divider() + "\n")

	for _, item := range order.Items {
		name := item.ProductID
		if item.Product != nil {
			name = item.Product.Name
		}
		b.WriteString(fmt.Sprintf("%dx %s\n", item.Quantity, name))
		unit := Money(item.UnitPrice) + " un"
		sub := Money(item.Subtotal())
		gap := lineWidth - len(unit) - len(sub)
		if gap < 1 {
			gap = 1
		}
		b.WriteString(unit + strings.Repeat(" ", gap) + sub + "\n")
	}

	b.WriteString(divider() + "\n")
	total := "TOTAL: " + Money(order.Total)
	b.WriteString(strings.Repeat(" ", max(0, lineWidth-len(total))) + total + "\n")
	b.WriteString(divider() + "\n")
	b.WriteString(center("Agradecemos a preferência!") + "\n")

	return b.String()
}

var htmlTmpl = template.Must(template.New("receipt").Funcs(template.FuncMap{
	"money": Money,
}).Parse(`<!DOCTYPE html>
<html>
<head>
<title>Pedido #{{.ShortID}}</title>
<meta charset="UTF-8">
<style>
@page { margin: 1mm; size: 80mm auto; }
body {
  font-family: 'Courier New', monospace;
  margin: 0; padding: 8px; width: 80mm;
  font-size: 12px; line-height: 1.2;
}
.header { text-align: center; border-bottom: 1px dashed #000; padding-bottom: 8px; margin-bottom: 8px; }
.header h1 { font-size: 16px; margin: 0; padding: 0; }
.header p { margin: 4px 0; }
.divider { border-bottom: 1px dashed #000; margin: 8px 0; }
.order-info { margin-bottom: 8px; }
.order-info p { margin: 2px 0; }
.item-row { margin: 4px 0; }
.item-row .line { display: flex; justify-content: space-between; }
.total { text-align: right; font-weight: bold; border-top: 1px dashed #000; padding-top: 8px; margin-top: 8px; }
.footer { text-align: center; margin-top: 16px; font-size: 11px; }
@media print { .no-print { display: none; } }
</style>
</head>
<body>
<div class="header">
  <h1>{{.RestaurantName}}</h1>
  <p>================================</p>
  <p>PEDIDO #{{.ShortID}}</p>
  <p>{{.CreatedAt}}</p>
</div>
<div class="order-info">
  <p>CLIENTE: {{.CustomerName}}</p>
  <p>TELEFONE: {{.Phone}}</p>
  <p>TIPO: {{.DeliveryLabel}}</p>
{{- if .Address}}
  <p>ENDEREÇO: {{.Address}}</p>
{{- end}}
  <p>STATUS: {{.StatusLabel}}</p>
</div>
<div class="divider"></div>
<p style="text-align: center;">ITENS DO PEDIDO</p>
<div class="divider"></div>
{{- range .Items}}
<div class="item-row">
  <div>{{.Quantity}}x {{.Name}}</div>
  <div class="line"><span>{{money .UnitPrice}} un</span><span>{{money .Subtotal}}</span></div>
</div>
{{- end}}
<div class="total">
  <p style="margin: 4px 0;">TOTAL: {{money .Total}}</p>
</div>
<div class="footer">
  <div class="divider"></div>
  <p>Agradecemos a preferência!</p>
  <p>{{.PrintedAt}}</p>
</div>
<div class="no-print" style="margin-top: 20px; text-align: center;">
  <button onclick="window.print()" style="padding: 8px 16px; background: #000; color: #fff; border: none; border-radius: 4px; cursor: pointer;">Imprimir</button>
</div>
</body>
</html>
`))

type htmlItem struct {
	Quantity  int
	Name      string
	UnitPrice float64
	Subtotal  float64
}

type htmlData struct {
	RestaurantName string
	ShortID        string
	CreatedAt      string
	CustomerName   string
	Phone          string
	DeliveryLabel  string
	Address        string
	StatusLabel    string
	Items          []htmlItem
	Total          float64
	PrintedAt      string
}

// HTML renders the 80mm print document opened by the admin screen after
// accepting an order.
func HTML(order *models.Order, restaurantName string) (string, error) {
	data := htmlData{
		RestaurantName: restaurantName,
		ShortID:        order.ShortID(),
		CreatedAt:      formatDateTime(order.CreatedAt),
		CustomerName:   order.CustomerName,
		Phone:          order.Phone,
		DeliveryLabel:  deliveryLabel(order.DeliveryType),
		StatusLabel:    order.Status,
		Total:          order.Total,
		PrintedAt:      time.Now().Format("02/01/2006"),
	}
	if label, ok := models.StatusLabels[order.Status]; ok {
		data.StatusLabel = label
	}
	if order.DeliveryType == models.DeliveryTypeDelivery {
		data.Address = order.Address
	}
	for _, item := range order.Items {
		name := item.ProductID
		if item.Product != nil {
			name = item.Product.Name
		}
		data.Items = append(data.Items, htmlItem{
			Quantity:  item.Quantity,
			Name:      name,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.Subtotal(),
		})
	}

	var buf bytes.Buffer
	if err := htmlTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("receipt: render html: %w", err)
	}
	return buf.String(), nil
}
