package catalog

import (
	"context"
	"errors"
	"log"
	"strconv"
	"time"

	"celta_back_end/internal/models"
	"celta_back_end/internal/notifications"
	"celta_back_end/internal/store"
)

// ErrProductNotFound est renvoyé quand l'identifiant ne correspond à aucun
// produit du catalogue.
var ErrProductNotFound = errors.New("produit introuvable")

// historyRetention borne l'âge des listes editedProducts et
// newlyAddedProducts lors de la purge à l'écriture.
const historyRetention = 30 * 24 * time.Hour

// AddProduct construit un produit avec un identifiant dérivé du timestamp de
// création, enregistre l'événement d'ajout et persiste le catalogue.
func AddProduct(ctx context.Context, input models.ProductInput) (models.Product, error) {
	store.StockMu.Lock()
	defer store.StockMu.Unlock()

	product := models.Product{
		ID:        strconv.FormatInt(time.Now().UnixMilli(), 10),
		Name:      input.Name,
		Photo:     input.Photo,
		SalePrice: input.SalePrice,
		CostPrice: input.CostPrice,
		Quantity:  input.Quantity,
	}

	if err := store.AppendNewlyAddedEvent(ctx, models.NewlyAddedEvent{
		Name:    product.Name,
		AddDate: time.Now().UTC().Format(time.RFC3339),
	}); err != nil {
		log.Printf("⚠️ Erreur enregistrement ajout de %s: %v", product.Name, err)
	}

	products := append(store.Products(ctx), product)
	if err := store.SaveProducts(ctx, products); err != nil {
		return models.Product{}, err
	}

	notifications.CheckLowStock(ctx, products)
	store.NotifyChanged(ctx, store.KeyProducts, store.KeyNewlyAddedProducts)

	log.Printf("✅ Produit ajouté: %s (%d unités)", product.Name, product.Quantity)
	return product, nil
}

// EditProduct remplace le produit correspondant, enregistre un événement
// d'édition avec l'instantané des champs numériques, et applique la politique
// unique de stock zéro: un événement par transition vers exactement 0, que la
// mutation vienne d'une édition ou d'une vente.
func EditProduct(ctx context.Context, id string, input models.ProductInput) (models.Product, error) {
	store.StockMu.Lock()
	defer store.StockMu.Unlock()

	products := store.Products(ctx)
	index := -1
	for i, p := range products {
		if p.ID == id {
			index = i
			break
		}
	}
	if index == -1 {
		return models.Product{}, ErrProductNotFound
	}

	prevQuantity := products[index].Quantity
	updated := models.Product{
		ID:        id,
		Name:      input.Name,
		Photo:     input.Photo,
		SalePrice: input.SalePrice,
		CostPrice: input.CostPrice,
		Quantity:  input.Quantity,
	}
	products[index] = updated

	if err := store.AppendEditEvent(ctx, models.EditEvent{
		Name:     updated.Name,
		EditDate: time.Now().UTC().Format(time.RFC3339),
		Changes: models.EditChanges{
			Quantity:  updated.Quantity,
			SalePrice: updated.SalePrice,
			CostPrice: updated.CostPrice,
		},
	}); err != nil {
		log.Printf("⚠️ Erreur enregistrement édition de %s: %v", updated.Name, err)
	}

	RecordZeroStockTransition(ctx, prevQuantity, updated)

	if err := store.SaveProducts(ctx, products); err != nil {
		return models.Product{}, err
	}

	notifications.CheckLowStock(ctx, products)
	store.NotifyChanged(ctx, store.KeyProducts, store.KeyEditedProducts, store.KeyZeroStockProducts)

	log.Printf("✅ Produit édité: %s (%d -> %d unités)", updated.Name, prevQuantity, updated.Quantity)
	return updated, nil
}

// DeleteProduct retire le produit du catalogue. Aucun événement d'historique:
// les rapports ne reflètent pas les suppressions.
func DeleteProduct(ctx context.Context, id string) error {
	store.StockMu.Lock()
	defer store.StockMu.Unlock()

	products := store.Products(ctx)
	filtered := make([]models.Product, 0, len(products))
	found := false
	for _, p := range products {
		if p.ID == id {
			found = true
			continue
		}
		filtered = append(filtered, p)
	}
	if !found {
		return ErrProductNotFound
	}

	if err := store.SaveProducts(ctx, filtered); err != nil {
		return err
	}
	store.NotifyChanged(ctx, store.KeyProducts)

	log.Printf("🗑️ Produit supprimé: %s", id)
	return nil
}

// RecordZeroStockTransition ajoute un événement de stock zéro uniquement
// quand la quantité vient de passer à exactement 0. Appelé par le chemin
// d'édition ET par le chemin de vente.
func RecordZeroStockTransition(ctx context.Context, prevQuantity int, product models.Product) {
	if product.Quantity != 0 || prevQuantity <= 0 {
		return
	}
	if err := store.AppendZeroStockEvent(ctx, models.ZeroStockEvent{
		Name: product.Name,
		Date: time.Now().UTC().Format(time.RFC3339),
	}); err != nil {
		log.Printf("⚠️ Erreur enregistrement stock zéro pour %s: %v", product.Name, err)
	}
}

// TotalUnitsInStock re-dérive l'agrégat "unités totales en stock" comme la
// somme des quantités de tous les produits.
func TotalUnitsInStock(products []models.Product) int {
	total := 0
	for _, p := range products {
		total += p.Quantity
	}
	return total
}

// CleanupOldHistory purge les éditions et ajouts de plus de 30 jours.
// Exécutée au démarrage du serveur.
func CleanupOldHistory(ctx context.Context) {
	cutoff := time.Now().Add(-historyRetention)

	edits := store.EditEvents(ctx)
	keptEdits := edits[:0]
	for _, e := range edits {
		if t, err := time.Parse(time.RFC3339, e.EditDate); err == nil && t.After(cutoff) {
			keptEdits = append(keptEdits, e)
		}
	}
	if len(keptEdits) != len(edits) {
		if err := store.SaveEditEvents(ctx, keptEdits); err != nil {
			log.Printf("⚠️ Erreur purge historique d'édition: %v", err)
		}
	}

	added := store.NewlyAddedEvents(ctx)
	keptAdded := added[:0]
	for _, e := range added {
		if t, err := time.Parse(time.RFC3339, e.AddDate); err == nil && t.After(cutoff) {
			keptAdded = append(keptAdded, e)
		}
	}
	if len(keptAdded) != len(added) {
		if err := store.SaveNewlyAddedEvents(ctx, keptAdded); err != nil {
			log.Printf("⚠️ Erreur purge historique d'ajout: %v", err)
		}
	}

	log.Printf("🧹 Historique purgé: %d éditions, %d ajouts conservés", len(keptEdits), len(keptAdded))
}

// ResetAllData remet à zéro catalogue, historique de ventes et compteurs.
func ResetAllData(ctx context.Context) error {
	store.StockMu.Lock()
	defer store.StockMu.Unlock()

	if err := store.ResetAll(ctx); err != nil {
		return err
	}
	store.NotifyChanged(ctx, store.KeyProducts, store.KeySaleHistory,
		store.KeyTotalInflow, store.KeyTotalOutflow, store.KeyDailySales, store.KeyDailyProfit)
	log.Println("🧹 Données remises à zéro")
	return nil
}

// CleanTrackingData réinitialise les trois listes de suivi des rapports.
func CleanTrackingData(ctx context.Context) error {
	store.StockMu.Lock()
	defer store.StockMu.Unlock()

	if err := store.CleanTracking(ctx); err != nil {
		return err
	}
	store.NotifyChanged(ctx, store.KeyNewlyAddedProducts, store.KeyEditedProducts, store.KeyZeroStockProducts)
	log.Println("🧹 Données de suivi nettoyées")
	return nil
}
