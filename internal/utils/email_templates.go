package utils

import (
	"fmt"
	"strings"

	"novashop_back_end/internal/models"
)

// GenerateOrderConfirmationHTML génère le HTML de confirmation de commande
func GenerateOrderConfirmationHTML(order models.Order, userName string) string {
	var items strings.Builder
	for _, item := range order.Items {
		items.WriteString(fmt.Sprintf(`
			<tr>
				<td>%s</td>
				<td>%d</td>
				<td>%.2f$</td>
				<td>%.2f$</td>
			</tr>`, item.Name, item.Quantity, item.Price, item.Price*float64(item.Quantity)))
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #222;">
	<h2>Merci pour votre commande, %s !</h2>
	<p>Commande <strong>%s</strong> du %s</p>
	<table width="100%%" cellpadding="6" style="border-collapse: collapse;">
		<tr style="background:#f4f4f4;">
			<th align="left">Produit</th><th align="left">Qté</th>
			<th align="left">Prix unitaire</th><th align="left">Sous-total</th>
		</tr>%s
	</table>
	<p>
		Articles : %.2f$<br>
		Livraison : %.2f$<br>
		Taxes : %.2f$<br>
		<strong>Total : %.2f$</strong>
	</p>
	<p>Adresse de livraison : %s %s, %s, %s %s, %s</p>
</body>
</html>`,
		userName,
		order.ID.String(),
		order.CreatedAt.Format("02/01/2006"),
		items.String(),
		order.Prices.ItemsPrice,
		order.Prices.ShippingPrice,
		order.Prices.TaxPrice,
		order.Prices.TotalPrice,
		order.ShippingAddress.FirstName,
		order.ShippingAddress.LastName,
		order.ShippingAddress.Address,
		order.ShippingAddress.City,
		order.ShippingAddress.ZipCode,
		order.ShippingAddress.Country,
	)
}

// GenerateInvoiceHTML génère la facture imprimable (rendue en PDF par chromedp).
// qrDataURL est le QR de suivi encodé en data-URL, vide si pas de numéro de suivi.
func GenerateInvoiceHTML(order models.Order, userName, qrDataURL string) string {
	var items strings.Builder
	for _, item := range order.Items {
		items.WriteString(fmt.Sprintf(`
			<tr>
				<td>%s</td>
				<td align="center">%d</td>
				<td align="right">%.2f$</td>
				<td align="right">%.2f$</td>
			</tr>`, item.Name, item.Quantity, item.Price, item.Price*float64(item.Quantity)))
	}

	qrBlock := ""
	if qrDataURL != "" {
		qrBlock = fmt.Sprintf(`<div style="margin-top:24px;">
			<p>Suivi colis : <strong>%s</strong></p>
			<img src="%s" width="128" height="128" alt="QR suivi">
		</div>`, order.TrackingNumber, qrDataURL)
	}

	paid := "Non payée"
	if order.IsPaid {
		paid = "Payée"
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #222; margin: 40px;">
	<h1 style="margin-bottom:0;">NovaShop</h1>
	<p style="color:#666; margin-top:4px;">Facture %s — %s</p>
	<p>Client : %s<br>Statut : %s (%s)</p>
	<table width="100%%" cellpadding="8" style="border-collapse: collapse; border: 1px solid #ddd;">
		<tr style="background:#f4f4f4;">
			<th align="left">Produit</th><th>Qté</th>
			<th align="right">Prix unitaire</th><th align="right">Sous-total</th>
		</tr>%s
	</table>
	<table align="right" cellpadding="4" style="margin-top:16px;">
		<tr><td>Articles</td><td align="right">%.2f$</td></tr>
		<tr><td>Livraison</td><td align="right">%.2f$</td></tr>
		<tr><td>Taxes (8%%)</td><td align="right">%.2f$</td></tr>
		<tr><td><strong>Total</strong></td><td align="right"><strong>%.2f$</strong></td></tr>
	</table>
	<div style="clear:both;"></div>
	%s
</body>
</html>`,
		order.ID.String(),
		order.CreatedAt.Format("02/01/2006"),
		userName,
		order.Status,
		paid,
		items.String(),
		order.Prices.ItemsPrice,
		order.Prices.ShippingPrice,
		order.Prices.TaxPrice,
		order.Prices.TotalPrice,
		qrBlock,
	)
}
