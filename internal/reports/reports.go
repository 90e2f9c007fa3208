package reports

import (
	"context"
	"math"
	"sort"
	"time"

	"celta_back_end/internal/catalog"
	"celta_back_end/internal/models"
	"celta_back_end/internal/store"
	"celta_back_end/internal/utils"
)

// recentWindow est la fenêtre de lecture des listes d'événements dans les
// rapports (distincte de la rétention de 30 jours appliquée à l'écriture).
const recentWindow = 7 * 24 * time.Hour

// Build relit le magasin et dérive tous les agrégats d'affichage. Lecture
// pure, aucune mutation.
func Build(ctx context.Context) models.Report {
	now := time.Now().UTC()

	products := store.Products(ctx)
	history := store.SaleHistory(ctx)
	zeroStock := store.ZeroStockEvents(ctx)

	return models.Report{
		GeneratedAt: now.Format(time.RFC3339),
		Metrics: models.StockMetrics{
			TotalProducts: len(products),
			TotalUnits:    catalog.TotalUnitsInStock(products),
			TotalOutflow:  store.Counter(ctx, store.KeyTotalOutflow),
			DailySales:    utils.FormatAmount(store.Amount(ctx, store.KeyDailySales)),
			DailyProfit:   utils.FormatAmount(store.Amount(ctx, store.KeyDailyProfit)),
		},
		ZeroStockCount:     len(zeroStock),
		Growth:             Growth(history, now),
		TopProducts:        TopProducts(history, now),
		EditedProducts:     ConsolidateEdits(recentEdits(store.EditEvents(ctx), now)),
		ZeroStockProducts:  recentZeroStock(zeroStock, now),
		NewlyAddedProducts: recentNewlyAdded(store.NewlyAddedEvents(ctx), now),
	}
}

// ConsolidateEdits réduit les événements d'édition par nom de produit: nombre
// d'occurrences et date de la dernière édition. C'est une réduction par
// multiplicité, pas une vue d'historique complète.
func ConsolidateEdits(events []models.EditEvent) []models.ConsolidatedEdit {
	byName := make(map[string]*models.ConsolidatedEdit)
	order := []string{}

	for _, e := range events {
		entry, ok := byName[e.Name]
		if !ok {
			byName[e.Name] = &models.ConsolidatedEdit{
				Name:     e.Name,
				EditDate: e.EditDate,
				Count:    1,
				Changes:  e.Changes,
			}
			order = append(order, e.Name)
			continue
		}
		entry.Count++
		if e.EditDate > entry.EditDate {
			entry.EditDate = e.EditDate
			entry.Changes = e.Changes
		}
	}

	consolidated := make([]models.ConsolidatedEdit, 0, len(order))
	for _, name := range order {
		consolidated = append(consolidated, *byName[name])
	}
	return consolidated
}

// Growth calcule la croissance des ventes jour sur jour en pourcentage, par
// correspondance de préfixe de date calendaire. Zéro quand la veille est à
// zéro: on évite la division par zéro au prix d'un cas de croissance infinie
// masqué.
func Growth(history []models.SaleRecord, now time.Time) float64 {
	today := now.Format("2006-01-02")
	yesterday := now.AddDate(0, 0, -1).Format("2006-01-02")

	var todaySales, yesterdaySales float64
	for _, sale := range history {
		switch {
		case len(sale.Date) >= 10 && sale.Date[:10] == today:
			todaySales += sale.TotalValue
		case len(sale.Date) >= 10 && sale.Date[:10] == yesterday:
			yesterdaySales += sale.TotalValue
		}
	}

	if yesterdaySales == 0 {
		return 0
	}
	return (todaySales - yesterdaySales) / yesterdaySales * 100
}

// TopProducts dérive le top 5 du jour calendaire courant: quantités sommées
// par nom de produit, tri par quantité décroissante puis nom croissant (ordre
// des égalités déterministe), part de chaque produit dans le total d'unités
// vendues du jour arrondie à une décimale.
func TopProducts(history []models.SaleRecord, now time.Time) []models.TopProduct {
	today := now.Format("2006-01-02")

	quantities := make(map[string]int)
	total := 0
	for _, sale := range history {
		if len(sale.Date) >= 10 && sale.Date[:10] == today {
			quantities[sale.ProductName] += sale.Quantity
			total += sale.Quantity
		}
	}

	top := make([]models.TopProduct, 0, len(quantities))
	for name, qty := range quantities {
		top = append(top, models.TopProduct{Name: name, Quantity: qty})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Quantity != top[j].Quantity {
			return top[i].Quantity > top[j].Quantity
		}
		return top[i].Name < top[j].Name
	})
	if len(top) > 5 {
		top = top[:5]
	}

	for i := range top {
		if total > 0 {
			top[i].Percent = math.Round(float64(top[i].Quantity)/float64(total)*1000) / 10
		}
	}
	return top
}

func recentEdits(events []models.EditEvent, now time.Time) []models.EditEvent {
	cutoff := now.Add(-recentWindow)
	kept := []models.EditEvent{}
	for _, e := range events {
		if t, err := time.Parse(time.RFC3339, e.EditDate); err == nil && !t.Before(cutoff) {
			kept = append(kept, e)
		}
	}
	return kept
}

func recentZeroStock(events []models.ZeroStockEvent, now time.Time) []models.ZeroStockEvent {
	cutoff := now.Add(-recentWindow)
	kept := []models.ZeroStockEvent{}
	for _, e := range events {
		if t, err := time.Parse(time.RFC3339, e.Date); err == nil && !t.Before(cutoff) {
			kept = append(kept, e)
		}
	}
	return kept
}

func recentNewlyAdded(events []models.NewlyAddedEvent, now time.Time) []models.NewlyAddedEvent {
	cutoff := now.Add(-recentWindow)
	kept := []models.NewlyAddedEvent{}
	for _, e := range events {
		if t, err := time.Parse(time.RFC3339, e.AddDate); err == nil && !t.Before(cutoff) {
			kept = append(kept, e)
		}
	}
	return kept
}
