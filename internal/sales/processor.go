package sales

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"celta_back_end/internal/catalog"
	"celta_back_end/internal/models"
	"celta_back_end/internal/notifications"
	"celta_back_end/internal/store"
	"celta_back_end/internal/utils"
)

// Phase trace la progression d'une tentative de vente. Il n'y a pas de
// rollback: un échec en phase de facturation laisse les mutations de stock et
// de compteurs acquises.
type Phase string

const (
	PhaseValidating Phase = "validating"
	PhaseApplying   Phase = "applying"
	PhaseNotifying  Phase = "notifying"
	PhaseInvoicing  Phase = "invoicing"
	PhaseDone       Phase = "done"
)

const (
	InvoiceSent    = "sent"
	InvoiceSkipped = "skipped"
	InvoiceFailed  = "failed"
)

var (
	ErrProductNotFound   = errors.New("produit introuvable")
	ErrInvalidQuantity   = errors.New("quantité invalide")
	ErrInsufficientStock = errors.New("quantité insuffisante en stock")
)

// SaleRequest est la demande de vente: produit, quantité, client optionnel.
type SaleRequest struct {
	ProductID string          `json:"productId" binding:"required"`
	Quantity  int             `json:"quantity" binding:"required"`
	Customer  models.Customer `json:"customer"`
}

// Result décrit l'issue d'une vente appliquée.
type Result struct {
	Sale          models.SaleRecord `json:"sale"`
	Product       models.Product    `json:"product"`
	TotalUnits    int               `json:"total_units"`
	Phase         Phase             `json:"phase"`
	InvoiceStatus string            `json:"invoice_status"`
	InvoiceError  string            `json:"invoice_error,omitempty"`
}

// Points d'injection pour les collaborateurs externes de la facturation.
var (
	renderPDF = utils.RenderInvoicePDF
	sendMail  = utils.SendInvoiceEmail
)

// Process exécute le pipeline Validating → Applying → Notifying → Invoicing.
// La validation rejette sans aucune mutation; à partir d'Applying, les
// écritures (liste de produits + quatre compteurs + historique) sont des
// écritures de clés indépendantes, sans atomicité inter-clés.
func Process(ctx context.Context, req SaleRequest) (Result, error) {
	result := Result{Phase: PhaseValidating, InvoiceStatus: InvoiceSkipped}

	if req.Quantity <= 0 {
		return result, ErrInvalidQuantity
	}

	store.StockMu.Lock()

	products := store.Products(ctx)
	index := -1
	for i, p := range products {
		if p.ID == req.ProductID {
			index = i
			break
		}
	}
	if index == -1 {
		store.StockMu.Unlock()
		return result, ErrProductNotFound
	}

	product := products[index]
	if req.Quantity > product.Quantity {
		store.StockMu.Unlock()
		return result, ErrInsufficientStock
	}

	// --- Application ---
	result.Phase = PhaseApplying

	prevQuantity := product.Quantity
	product.Quantity -= req.Quantity
	products[index] = product

	catalog.RecordZeroStockTransition(ctx, prevQuantity, product)

	totalValue := float64(req.Quantity) * product.SalePrice
	profit := totalValue - product.CostPrice*float64(req.Quantity)

	sale := models.SaleRecord{
		ID:            strconv.FormatInt(time.Now().UnixMilli(), 10),
		ProductName:   product.Name,
		Quantity:      req.Quantity,
		SalePrice:     product.SalePrice,
		TotalValue:    totalValue,
		Profit:        profit,
		Date:          time.Now().UTC().Format(time.RFC3339),
		CustomerName:  req.Customer.Name,
		CustomerPhone: req.Customer.Phone,
	}

	if err := store.SaveProducts(ctx, products); err != nil {
		store.StockMu.Unlock()
		return result, err
	}
	if err := store.AppendSale(ctx, sale); err != nil {
		log.Printf("❌ Erreur enregistrement vente: %v", err)
	}

	// Quatre cycles lecture-ajout-écriture indépendants. Une panne entre deux
	// écritures laisse le magasin partiellement mis à jour.
	if err := store.SetCounter(ctx, store.KeyTotalOutflow, store.Counter(ctx, store.KeyTotalOutflow)+req.Quantity); err != nil {
		log.Printf("❌ Erreur mise à jour totalOutflow: %v", err)
	}
	dailySales := store.Amount(ctx, store.KeyDailySales).Add(decimal.NewFromFloat(totalValue))
	if err := store.SetAmount(ctx, store.KeyDailySales, dailySales); err != nil {
		log.Printf("❌ Erreur mise à jour dailySales: %v", err)
	}
	dailyProfit := store.Amount(ctx, store.KeyDailyProfit).Add(decimal.NewFromFloat(profit))
	if err := store.SetAmount(ctx, store.KeyDailyProfit, dailyProfit); err != nil {
		log.Printf("❌ Erreur mise à jour dailyProfit: %v", err)
	}

	result.Sale = sale
	result.Product = product
	result.TotalUnits = catalog.TotalUnitsInStock(products)

	// --- Notification ---
	// Sous le verrou, comme les chemins du catalogue: le cycle
	// lecture-ajout-écriture du journal de notifications ne doit pas
	// s'entrelacer entre deux ventes.
	result.Phase = PhaseNotifying
	notifications.CheckLowStock(ctx, products)

	store.StockMu.Unlock()

	store.NotifyChanged(ctx, store.KeyProducts, store.KeySaleHistory,
		store.KeyTotalOutflow, store.KeyDailySales, store.KeyDailyProfit, store.KeyZeroStockProducts)

	// --- Facturation ---
	result.Phase = PhaseInvoicing
	if req.Customer.Email != "" {
		if err := sendInvoice(ctx, sale, product, req.Customer); err != nil {
			// La vente reste acquise: l'échec est signalé, jamais compensé.
			log.Printf("❌ Erreur envoi facture pour la vente %s: %v", sale.ID, err)
			result.InvoiceStatus = InvoiceFailed
			result.InvoiceError = err.Error()
		} else {
			result.InvoiceStatus = InvoiceSent
		}
	} else {
		log.Println("⚠️ Aucun e-mail fourni, facture non envoyée")
	}

	result.Phase = PhaseDone
	log.Printf("✅ Vente appliquée: %d × %s (stock %d -> %d)", req.Quantity, product.Name, prevQuantity, product.Quantity)
	return result, nil
}

// sendInvoice assemble la facture HTML, la convertit en PDF et l'envoie par
// e-mail au client.
func sendInvoice(ctx context.Context, sale models.SaleRecord, product models.Product, customer models.Customer) error {
	user := store.UserData(ctx)

	iban := os.Getenv("COMPANY_IBAN")
	bic := os.Getenv("COMPANY_BIC")
	qrBase64 := ""
	if iban != "" && bic != "" {
		ref := fmt.Sprintf("FACT-%s", sale.ID)
		qr, err := utils.GenerateSepaQR(iban, bic, user.CompanyName, ref, sale.TotalValue)
		if err != nil {
			log.Printf("⚠️ Erreur génération QR: %v", err)
		} else {
			qrBase64 = qr
		}
	}

	invoice := models.InvoiceData{
		InvoiceNumber: sale.ID,
		Date:          time.Now().Format("02/01/2006"),
		CompanyInfo: models.InvoiceCompany{
			Name:    user.CompanyName,
			Logo:    user.Logo,
			Address: user.Address,
			Phone:   user.Phone,
			Email:   user.Email,
			NIF:     user.NIF,
		},
		CustomerInfo: models.InvoiceCustomer{
			Name:    customer.Name,
			Email:   customer.Email,
			Phone:   customer.Phone,
			Address: customer.Address,
			NIF:     customer.NIF,
		},
		Items: []models.InvoiceItem{
			{
				Name:     product.Name,
				Quantity: sale.Quantity,
				Price:    sale.SalePrice,
				Total:    sale.TotalValue,
			},
		},
		Subtotal: sale.TotalValue,
		Tax:      0,
		Total:    sale.TotalValue,
		QRBase64: qrBase64,
	}

	html := utils.GenerateInvoiceHTML(invoice)
	pdf, err := renderPDF(html)
	if err != nil {
		return fmt.Errorf("rendu PDF: %w", err)
	}

	subject := fmt.Sprintf("Facture %s", sale.ID)
	body := fmt.Sprintf(`Bonjour %s,

Veuillez trouver en pièce jointe la facture de votre achat.

Merci de votre confiance !

Cordialement,
%s
`, customer.Name, user.CompanyName)

	if err := sendMail(customer.Email, subject, body, pdf); err != nil {
		return fmt.Errorf("envoi e-mail: %w", err)
	}
	return nil
}
