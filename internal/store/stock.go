package store

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"celta_back_end/internal/models"
	"celta_back_end/internal/utils"
)

// Clés persistées du magasin. Chaque clé est un document indépendant; une
// vente touche products + quatre compteurs + saleHistory sans atomicité
// inter-clés.
const (
	KeyProducts           = "products"
	KeySaleHistory        = "saleHistory"
	KeyDailySales         = "dailySales"
	KeyDailyProfit        = "dailyProfit"
	KeyTotalInflow        = "totalInflow"
	KeyTotalOutflow       = "totalOutflow"
	KeyEditedProducts     = "editedProducts"
	KeyZeroStockProducts  = "zeroStockProducts"
	KeyNewlyAddedProducts = "newlyAddedProducts"
	KeyStockNotifications = "stockNotifications"
	KeyUserData           = "userData"
	KeyProfileData        = "profileData"
	KeyAppSettings        = "appSettings"
	KeyReportCache        = "reports:cached"
)

// ChannelStockChanged porte les invalidations: le payload liste les clés
// touchées, séparées par des virgules.
const ChannelStockChanged = "stock:changed"

// StockMu sérialise toutes les opérations mutantes du processus (ajout,
// édition, suppression, vente). Les écritures multi-clés restent non
// atomiques côté magasin, mais deux ventes simultanées ne peuvent plus
// valider le stock sur un état périmé.
var StockMu sync.Mutex

// --- Helpers JSON ---

// getJSON charge un document; clé absente ou JSON corrompu retombent sur la
// valeur zéro (les échecs de lecture ne se propagent jamais).
func getJSON[T any](ctx context.Context, key string, out *T) {
	raw, err := client.Get(ctx, key)
	if err != nil {
		if err != ErrNotFound {
			log.Printf("⚠️ Erreur lecture %s: %v", key, err)
		}
		return
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		log.Printf("⚠️ Document %s corrompu: %v", key, err)
	}
}

func setJSON(ctx context.Context, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return client.Set(ctx, key, string(data))
}

// --- Produits ---

func Products(ctx context.Context) []models.Product {
	products := []models.Product{}
	getJSON(ctx, KeyProducts, &products)
	return products
}

func SaveProducts(ctx context.Context, products []models.Product) error {
	return setJSON(ctx, KeyProducts, products)
}

// --- Historique des ventes ---

func SaleHistory(ctx context.Context) []models.SaleRecord {
	history := []models.SaleRecord{}
	getJSON(ctx, KeySaleHistory, &history)
	return history
}

func AppendSale(ctx context.Context, sale models.SaleRecord) error {
	history := SaleHistory(ctx)
	history = append(history, sale)
	return setJSON(ctx, KeySaleHistory, history)
}

// --- Compteurs ---

// Amount lit un accumulateur décimal à virgule (dailySales, dailyProfit).
func Amount(ctx context.Context, key string) decimal.Decimal {
	raw, err := client.Get(ctx, key)
	if err != nil {
		return decimal.Zero
	}
	return utils.ParseAmount(raw)
}

func SetAmount(ctx context.Context, key string, d decimal.Decimal) error {
	return client.Set(ctx, key, utils.FormatAmount(d))
}

// Counter lit un compteur entier simple (totalInflow, totalOutflow).
func Counter(ctx context.Context, key string) int {
	raw, err := client.Get(ctx, key)
	if err != nil {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return n
}

func SetCounter(ctx context.Context, key string, n int) error {
	return client.Set(ctx, key, strconv.Itoa(n))
}

// --- Listes d'événements ---

func EditEvents(ctx context.Context) []models.EditEvent {
	events := []models.EditEvent{}
	getJSON(ctx, KeyEditedProducts, &events)
	return events
}

func SaveEditEvents(ctx context.Context, events []models.EditEvent) error {
	return setJSON(ctx, KeyEditedProducts, events)
}

func AppendEditEvent(ctx context.Context, event models.EditEvent) error {
	events := EditEvents(ctx)
	events = append(events, event)
	return SaveEditEvents(ctx, events)
}

func ZeroStockEvents(ctx context.Context) []models.ZeroStockEvent {
	events := []models.ZeroStockEvent{}
	getJSON(ctx, KeyZeroStockProducts, &events)
	return events
}

func AppendZeroStockEvent(ctx context.Context, event models.ZeroStockEvent) error {
	events := ZeroStockEvents(ctx)
	events = append(events, event)
	return setJSON(ctx, KeyZeroStockProducts, events)
}

func NewlyAddedEvents(ctx context.Context) []models.NewlyAddedEvent {
	events := []models.NewlyAddedEvent{}
	getJSON(ctx, KeyNewlyAddedProducts, &events)
	return events
}

func SaveNewlyAddedEvents(ctx context.Context, events []models.NewlyAddedEvent) error {
	return setJSON(ctx, KeyNewlyAddedProducts, events)
}

func AppendNewlyAddedEvent(ctx context.Context, event models.NewlyAddedEvent) error {
	events := NewlyAddedEvents(ctx)
	events = append(events, event)
	return SaveNewlyAddedEvents(ctx, events)
}

// --- Notifications ---

func Notifications(ctx context.Context) []models.StockNotification {
	notifications := []models.StockNotification{}
	getJSON(ctx, KeyStockNotifications, &notifications)
	return notifications
}

func SaveNotifications(ctx context.Context, notifications []models.StockNotification) error {
	return setJSON(ctx, KeyStockNotifications, notifications)
}

// --- Profil ---

func UserData(ctx context.Context) models.UserData {
	var user models.UserData
	getJSON(ctx, KeyUserData, &user)
	return user
}

func SaveUserData(ctx context.Context, user models.UserData) error {
	return setJSON(ctx, KeyUserData, user)
}

func ProfileData(ctx context.Context) models.ProfileData {
	var profile models.ProfileData
	getJSON(ctx, KeyProfileData, &profile)
	return profile
}

func SaveProfileData(ctx context.Context, profile models.ProfileData) error {
	return setJSON(ctx, KeyProfileData, profile)
}

func AppSettings(ctx context.Context) models.AppSettings {
	var settings models.AppSettings
	getJSON(ctx, KeyAppSettings, &settings)
	return settings
}

func SaveAppSettings(ctx context.Context, settings models.AppSettings) error {
	return setJSON(ctx, KeyAppSettings, settings)
}

// --- Remises à zéro ---

// ResetAll vide le catalogue et les compteurs, comme la remise à zéro de
// l'application d'origine.
func ResetAll(ctx context.Context) error {
	return client.MSet(ctx,
		KeyProducts, "[]",
		KeySaleHistory, "[]",
		KeyTotalInflow, "0",
		KeyTotalOutflow, "0",
		KeyDailySales, "0,00",
		KeyDailyProfit, "0,00",
	)
}

// CleanTracking supprime puis réinitialise les trois listes de suivi.
func CleanTracking(ctx context.Context) error {
	if err := client.Del(ctx, KeyNewlyAddedProducts, KeyEditedProducts, KeyZeroStockProducts); err != nil {
		return err
	}
	return client.MSet(ctx,
		KeyNewlyAddedProducts, "[]",
		KeyEditedProducts, "[]",
		KeyZeroStockProducts, "[]",
	)
}

// --- Invalidation ---

// NotifyChanged publie les clés touchées par une mutation. Le watcher des
// rapports recalcule le cache à la réception.
func NotifyChanged(ctx context.Context, keys ...string) {
	if err := client.Publish(ctx, ChannelStockChanged, strings.Join(keys, ",")); err != nil {
		log.Printf("⚠️ Erreur publication invalidation: %v", err)
	}
}

func SubscribeChanges(ctx context.Context) <-chan string {
	return client.Subscribe(ctx, ChannelStockChanged)
}
