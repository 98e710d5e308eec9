package service

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/saiindkan/sweets-n-snacks-production/internal/domain"
)

var orderConfirmationTmpl = template.Must(template.New("order-confirmation").Funcs(template.FuncMap{
	"money": func(v float64) string {
		return template.HTMLEscapeString(formatMoney(v))
	},
}).Parse(`<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8">
    <title>Order Confirmation</title>
    <style>
      body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
      .container { max-width: 600px; margin: 0 auto; padding: 20px; }
      .header { background: #f59e0b; color: white; padding: 30px; text-align: center; }
      .content { background: #f9fafb; padding: 30px; }
      .summary { background: white; border: 1px solid #e5e7eb; border-radius: 8px; padding: 20px; margin: 20px 0; }
      .item-row { padding: 10px 0; border-bottom: 1px solid #f3f4f6; }
      .totals { background: #fef3c7; border: 1px solid #f59e0b; border-radius: 8px; padding: 15px; margin: 20px 0; }
      .total-final { font-size: 18px; font-weight: bold; border-top: 2px solid #f59e0b; padding-top: 10px; }
      .footer { text-align: center; margin-top: 30px; color: #666; font-size: 14px; }
    </style>
  </head>
  <body>
    <div class="container">
      <div class="header">
        <h1>Order Confirmed!</h1>
        <p>Thank you for your purchase</p>
      </div>
      <div class="content">
        <h2>Hello {{.Order.CustomerName}}!</h2>
        <p>Your order has been confirmed and payment has been processed successfully.</p>
        <div class="summary">
          <h3>Order #{{.Order.ID}}</h3>
          <p>Placed {{.Order.CreatedAt.Format "January 2, 2006 at 3:04 PM"}}</p>
          {{range .Order.Items}}
          <div class="item-row">
            <strong>{{.ProductName}}</strong><br>
            {{.Quantity}} &times; {{money .UnitPrice}} = {{money .LineTotal}}
          </div>
          {{end}}
        </div>
        <div class="totals">
          <div>Subtotal: {{money .Order.Subtotal}}</div>
          <div>Shipping: {{money .Order.Shipping}}</div>
          <div>Tax: {{money .Order.Tax}}</div>
          <div class="total-final">Total: {{money .Order.Total}}</div>
        </div>
        <div class="summary">
          <h3>Billing Address</h3>
          <p>
            {{.Order.BillingAddress.Street}}<br>
            {{.Order.BillingAddress.City}}, {{.Order.BillingAddress.State}} {{.Order.BillingAddress.ZipCode}}<br>
            {{.Order.BillingAddress.Country}}
          </p>
        </div>
      </div>
      <div class="footer">
        <p>This email was sent to {{.Order.CustomerEmail}}</p>
        <p>&copy; {{.SiteName}}. All rights reserved.</p>
      </div>
    </div>
  </body>
</html>`))

var welcomeTmpl = template.Must(template.New("welcome").Parse(`<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8">
    <title>Welcome</title>
  </head>
  <body>
    <div style="max-width: 600px; margin: 0 auto; padding: 20px; font-family: Arial, sans-serif;">
      <h1>Welcome to {{.SiteName}}!</h1>
      <h2>Hello {{.Name}}!</h2>
      <p>Your account has been created. You can now browse our collection,
      add your favorite treats to your cart, and enjoy free shipping on
      orders over $50.</p>
      <p><a href="{{.SiteURL}}/products">Start shopping</a></p>
      <p>Happy Shopping!<br>The {{.SiteName}} Team</p>
    </div>
  </body>
</html>`))

func renderOrderConfirmation(order *domain.Order, siteName string) (string, error) {
	var buf bytes.Buffer
	err := orderConfirmationTmpl.Execute(&buf, struct {
		Order    *domain.Order
		SiteName string
	}{order, siteName})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

func renderWelcome(name, siteName, siteURL string) (string, error) {
	var buf bytes.Buffer
	err := welcomeTmpl.Execute(&buf, struct {
		Name     string
		SiteName string
		SiteURL  string
	}{name, siteName, siteURL})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

func formatMoney(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}
