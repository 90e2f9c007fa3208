package sales

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"celta_back_end/internal/models"
	"celta_back_end/internal/store"
	"celta_back_end/internal/utils"
)

func setup(t *testing.T) context.Context {
	store.Init(store.NewMemoryKV())
	origRender, origSend := renderPDF, sendMail
	t.Cleanup(func() {
		renderPDF, sendMail = origRender, origSend
	})
	renderPDF = func(string) ([]byte, error) { return []byte("%PDF"), nil }
	sendMail = func(string, string, string, []byte) error { return nil }
	return context.Background()
}

func seedProduct(t *testing.T, ctx context.Context, p models.Product) {
	t.Helper()
	require.NoError(t, store.SaveProducts(ctx, append(store.Products(ctx), p)))
}

func TestProcessAppliesSale(t *testing.T) {
	ctx := setup(t)
	seedProduct(t, ctx, models.Product{ID: "p1", Name: "Stylo", SalePrice: 1000, CostPrice: 600, Quantity: 5})

	result, err := Process(ctx, SaleRequest{ProductID: "p1", Quantity: 2})
	require.NoError(t, err)

	assert.Equal(t, PhaseDone, result.Phase)
	assert.Equal(t, 3, result.Product.Quantity)
	assert.Equal(t, 3, result.TotalUnits)
	assert.Equal(t, 2000.0, result.Sale.TotalValue)
	assert.Equal(t, 800.0, result.Sale.Profit)
	assert.Equal(t, "Stylo", result.Sale.ProductName)

	// Compteurs et historique
	assert.Equal(t, 2, store.Counter(ctx, store.KeyTotalOutflow))
	assert.Equal(t, "2000,00", utils.FormatAmount(store.Amount(ctx, store.KeyDailySales)))
	assert.Equal(t, "800,00", utils.FormatAmount(store.Amount(ctx, store.KeyDailyProfit)))
	assert.Len(t, store.SaleHistory(ctx), 1)

	// Pas de client: facture sautée
	assert.Equal(t, InvoiceSkipped, result.InvoiceStatus)
}

func TestProcessAccumulatesDailyCounters(t *testing.T) {
	ctx := setup(t)
	seedProduct(t, ctx, models.Product{ID: "p1", Name: "Stylo", SalePrice: 10, CostPrice: 4, Quantity: 10})

	_, err := Process(ctx, SaleRequest{ProductID: "p1", Quantity: 1})
	require.NoError(t, err)
	_, err = Process(ctx, SaleRequest{ProductID: "p1", Quantity: 2})
	require.NoError(t, err)

	assert.Equal(t, 3, store.Counter(ctx, store.KeyTotalOutflow))
	assert.True(t, store.Amount(ctx, store.KeyDailySales).IntPart() == 30)
	assert.True(t, store.Amount(ctx, store.KeyDailyProfit).IntPart() == 18)
	assert.Len(t, store.SaleHistory(ctx), 2)
}

func TestProcessInvalidQuantity(t *testing.T) {
	ctx := setup(t)
	seedProduct(t, ctx, models.Product{ID: "p1", Name: "Stylo", Quantity: 5})

	_, err := Process(ctx, SaleRequest{ProductID: "p1", Quantity: 0})
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = Process(ctx, SaleRequest{ProductID: "p1", Quantity: -1})
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestProcessInsufficientStockRejectsWithoutMutation(t *testing.T) {
	ctx := setup(t)
	seedProduct(t, ctx, models.Product{ID: "p1", Name: "Stylo", SalePrice: 10, Quantity: 3})

	result, err := Process(ctx, SaleRequest{ProductID: "p1", Quantity: 4})
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, PhaseValidating, result.Phase)

	// Aucune mutation: stock, compteurs et historique intacts
	assert.Equal(t, 3, store.Products(ctx)[0].Quantity)
	assert.Equal(t, 0, store.Counter(ctx, store.KeyTotalOutflow))
	assert.Empty(t, store.SaleHistory(ctx))
}

func TestProcessProductNotFound(t *testing.T) {
	ctx := setup(t)

	_, err := Process(ctx, SaleRequest{ProductID: "inexistant", Quantity: 1})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProcessZeroStockTransition(t *testing.T) {
	ctx := setup(t)
	seedProduct(t, ctx, models.Product{ID: "p1", Name: "Stylo", SalePrice: 10, Quantity: 2})

	_, err := Process(ctx, SaleRequest{ProductID: "p1", Quantity: 2})
	require.NoError(t, err)

	// Un seul événement de stock zéro, et une alerte stock faible
	events := store.ZeroStockEvents(ctx)
	require.Len(t, events, 1)
	assert.Equal(t, "Stylo", events[0].Name)
	assert.NotEmpty(t, store.Notifications(ctx))
}

func TestProcessConcurrentSalesKeepAllNotifications(t *testing.T) {
	ctx := setup(t)
	seedProduct(t, ctx, models.Product{ID: "p1", Name: "Stylo", SalePrice: 10, Quantity: 3})
	seedProduct(t, ctx, models.Product{ID: "p2", Name: "Cahier", SalePrice: 10, Quantity: 3})

	var wg sync.WaitGroup
	for _, id := range []string{"p1", "p2"} {
		wg.Add(1)
		go func(productID string) {
			defer wg.Done()
			_, err := Process(ctx, SaleRequest{ProductID: productID, Quantity: 1})
			assert.NoError(t, err)
		}(id)
	}
	wg.Wait()

	// Application et vérification de stock faible sous le même verrou: la
	// première vente voit un produit sous le seuil, la seconde en voit deux.
	// Aucune entrée de journal perdue, quel que soit l'ordre.
	assert.Len(t, store.Notifications(ctx), 3)
	assert.Equal(t, 2, store.Counter(ctx, store.KeyTotalOutflow))
}

func TestProcessInvoiceSent(t *testing.T) {
	ctx := setup(t)
	seedProduct(t, ctx, models.Product{ID: "p1", Name: "Stylo", SalePrice: 10, Quantity: 5})

	var sentTo string
	var renderedHTML string
	renderPDF = func(html string) ([]byte, error) {
		renderedHTML = html
		return []byte("%PDF"), nil
	}
	sendMail = func(to, _, _ string, _ []byte) error {
		sentTo = to
		return nil
	}

	result, err := Process(ctx, SaleRequest{
		ProductID: "p1",
		Quantity:  1,
		Customer: models.Customer{
			Name:    "Alice",
			Email:   "alice@example.com",
			Address: "12 rue des Lilas",
			NIF:     "987654321",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, InvoiceSent, result.InvoiceStatus)
	assert.Equal(t, "alice@example.com", sentTo)

	// Le bloc client de la facture porte l'adresse et le NIF transmis
	assert.Contains(t, renderedHTML, "12 rue des Lilas")
	assert.Contains(t, renderedHTML, "NIF : 987654321")
}

func TestProcessInvoiceFailureKeepsSale(t *testing.T) {
	ctx := setup(t)
	seedProduct(t, ctx, models.Product{ID: "p1", Name: "Stylo", SalePrice: 10, Quantity: 5})

	sendMail = func(string, string, string, []byte) error {
		return errors.New("smtp indisponible")
	}

	result, err := Process(ctx, SaleRequest{
		ProductID: "p1",
		Quantity:  1,
		Customer:  models.Customer{Name: "Alice", Email: "alice@example.com"},
	})
	require.NoError(t, err)

	// L'échec est signalé mais jamais compensé
	assert.Equal(t, InvoiceFailed, result.InvoiceStatus)
	assert.Contains(t, result.InvoiceError, "smtp indisponible")
	assert.Equal(t, PhaseDone, result.Phase)
	assert.Equal(t, 4, store.Products(ctx)[0].Quantity)
	assert.Len(t, store.SaleHistory(ctx), 1)
	assert.Equal(t, 1, store.Counter(ctx, store.KeyTotalOutflow))
}
