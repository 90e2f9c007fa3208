package utils

import (
	"encoding/base64"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"

	"celta_back_end/internal/models"
)

// GenerateSepaQR génère un QR SEPA (EPC) en base64 prêt à mettre dans <img src="...">
func GenerateSepaQR(iban, bic, name, ref string, amount float64) (string, error) {
	// format EPC basique
	sepa := fmt.Sprintf(`BCD
001
1
SCT
%s
%s
%s
EUR%.2f
%s`, bic, name, iban, amount, ref)

	png, err := qrcode.Encode(sepa, qrcode.Medium, 256)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

// GenerateInvoiceHTML produit le document de facture à schéma fixe: bloc
// entreprise, bloc client, tableau d'articles, sous-total / taxe / total.
func GenerateInvoiceHTML(data models.InvoiceData) string {
	itemsHTML := ""
	for _, item := range data.Items {
		itemsHTML += fmt.Sprintf(`
				<tr>
					<td>%s</td>
					<td>%d</td>
					<td>%.2f</td>
					<td>%.2f</td>
				</tr>`, item.Name, item.Quantity, item.Price, item.Total)
	}

	qrHTML := ""
	if data.QRBase64 != "" {
		qrHTML = fmt.Sprintf(`
			<div class="qr">
				<p>Paiement par virement :</p>
				<img src="%s" alt="QR de paiement" style="width: 140px; height: 140px;">
			</div>`, data.QRBase64)
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head>
	<meta charset="utf-8">
	<title>Facture %s</title>
	<style>
		body { font-family: Arial, sans-serif; margin: 0; padding: 40px; color: #333; background-color: #f5f5f5; }
		.invoice-container { max-width: 800px; margin: 0 auto; border: 1px solid #eee; padding: 40px; box-shadow: 0 0 10px rgba(0,0,0,0.1); background-color: #fff; }
		.header { display: flex; justify-content: space-between; align-items: center; margin-bottom: 40px; border-bottom: 2px solid #0098f9; padding-bottom: 10px; }
		.company-info, .customer-info { margin-bottom: 20px; }
		.company-info h2, .customer-info h2 { color: #0098f9; margin-bottom: 10px; }
		.company-info p, .customer-info p { margin: 2px 0; }
		table { width: 100%%; border-collapse: collapse; margin-bottom: 20px; }
		table, th, td { border: 1px solid #ddd; }
		th, td { padding: 12px; text-align: left; }
		th { background-color: #0098f9; color: #fff; }
		.totals { text-align: right; }
		.totals p { margin: 0; padding: 8px 0; font-size: 16px; }
		.totals p:last-child { font-size: 18px; font-weight: bold; color: #0098f9; }
		.qr { margin-top: 30px; }
	</style>
</head>
<body>
	<div class="invoice-container">
		<div class="header">
			<div>
				<h1>Facture</h1>
				<p>Numéro : %s</p>
				<p>Date : %s</p>
			</div>
			<div>
				<img src="%s" alt="Logo de l'entreprise" style="max-width: 150px;">
			</div>
		</div>
		<div class="company-info">
			<h2>%s</h2>
			<p>%s</p>
			<p>%s</p>
			<p>%s</p>
			<p>NIF : %s</p>
		</div>
		<div class="customer-info">
			<h2>Client</h2>
			<p>%s</p>
			<p>%s</p>
			<p>%s</p>
			<p>%s</p>
			<p>NIF : %s</p>
		</div>
		<table>
			<thead>
				<tr>
					<th>Article</th>
					<th>Quantité</th>
					<th>Prix unitaire</th>
					<th>Total</th>
				</tr>
			</thead>
			<tbody>%s
			</tbody>
		</table>
		<div class="totals">
			<p>Sous-total : %.2f</p>
			<p>Taxe : %.2f</p>
			<p>Total : %.2f</p>
		</div>
		%s
	</div>
</body>
</html>`,
		data.InvoiceNumber,
		data.InvoiceNumber, data.Date,
		data.CompanyInfo.Logo,
		data.CompanyInfo.Name, data.CompanyInfo.Address, data.CompanyInfo.Phone, data.CompanyInfo.Email, data.CompanyInfo.NIF,
		data.CustomerInfo.Name, data.CustomerInfo.Address, data.CustomerInfo.Phone, data.CustomerInfo.Email, data.CustomerInfo.NIF,
		itemsHTML,
		data.Subtotal, data.Tax, data.Total,
		qrHTML)
}
