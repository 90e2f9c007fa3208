package notifications

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"celta_back_end/internal/models"
	"celta_back_end/internal/store"
)

// LowStockThreshold est le seuil fixe de déclenchement d'une alerte.
const LowStockThreshold = 2

// Dispatcher planifie les alertes locales. Collaborateur externe: la seule
// implémentation embarquée journalise, les tests en injectent une factice.
type Dispatcher interface {
	Schedule(ctx context.Context, title, body string, data map[string]string) error
}

type logDispatcher struct{}

func (logDispatcher) Schedule(_ context.Context, title, body string, _ map[string]string) error {
	log.Printf("🔔 Notification planifiée: %s — %s", title, body)
	return nil
}

var dispatcher Dispatcher = logDispatcher{}

// SetDispatcher remplace le dispatcher (tests, intégration push)
func SetDispatcher(d Dispatcher) {
	dispatcher = d
}

// CheckLowStock parcourt tous les produits et alerte pour chaque produit à
// quantité ≤ 2: une notification planifiée et une entrée de journal par
// produit et par passage, sans dédoublonnage — un produit durablement en
// stock faible accumule une entrée à chaque vérification.
func CheckLowStock(ctx context.Context, products []models.Product) {
	var lowStock []models.Product
	for _, p := range products {
		if p.Quantity <= LowStockThreshold {
			lowStock = append(lowStock, p)
		}
	}
	if len(lowStock) == 0 {
		return
	}

	current := store.Notifications(ctx)
	newNotifications := make([]models.StockNotification, 0, len(lowStock))

	for _, p := range lowStock {
		title := "⚠️ Stock faible !"
		body := fmt.Sprintf("Le produit %s n'a plus que %d unités en stock.", p.Name, p.Quantity)

		if err := dispatcher.Schedule(ctx, title, body, map[string]string{"productId": p.ID}); err != nil {
			log.Printf("⚠️ Erreur planification notification pour %s: %v", p.Name, err)
		}

		newNotifications = append(newNotifications, models.StockNotification{
			ID:        uuid.NewString(),
			Title:     title,
			Body:      body,
			Read:      false,
			Timestamp: time.Now().UnixMilli(),
		})
	}

	// Les plus récentes en tête, comme le panneau d'origine
	updated := append(newNotifications, current...)
	if err := store.SaveNotifications(ctx, updated); err != nil {
		log.Printf("❌ Erreur sauvegarde notifications: %v", err)
		return
	}
	store.NotifyChanged(ctx, store.KeyStockNotifications)
}

// List retourne le journal de notifications
func List(ctx context.Context) []models.StockNotification {
	return store.Notifications(ctx)
}

// ClearAll vide le journal en bloc (ouverture du panneau)
func ClearAll(ctx context.Context) error {
	if err := store.SaveNotifications(ctx, []models.StockNotification{}); err != nil {
		return err
	}
	store.NotifyChanged(ctx, store.KeyStockNotifications)
	return nil
}
