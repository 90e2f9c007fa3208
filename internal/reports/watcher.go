package reports

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"celta_back_end/internal/models"
	"celta_back_end/internal/store"
)

// Le rafraîchissement des rapports est piloté par les invalidations publiées
// sur stock:changed à chaque mutation, avec un ticker de secours pour couvrir
// les éditeurs externes du magasin. Les métriques affichées ne traînent donc
// plus d'une fenêtre de polling derrière l'état réel.

const defaultRefreshInterval = 30 * time.Second

// StartWatcher lance la boucle de recalcul du cache des rapports.
func StartWatcher(ctx context.Context) {
	interval := defaultRefreshInterval
	if raw := os.Getenv("REPORT_REFRESH_INTERVAL"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			interval = d
		} else {
			log.Printf("⚠️ REPORT_REFRESH_INTERVAL invalide (%q), intervalle par défaut conservé", raw)
		}
	}

	changes := store.SubscribeChanges(ctx)

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		refreshCache(ctx)

		for {
			select {
			case <-ctx.Done():
				return
			case keys, ok := <-changes:
				if !ok {
					return
				}
				log.Printf("🔄 Invalidation reçue (%s), recalcul du rapport", keys)
				refreshCache(ctx)
			case <-ticker.C:
				refreshCache(ctx)
			}
		}
	}()

	log.Println("✅ Watcher des rapports démarré")
}

func refreshCache(ctx context.Context) {
	report := Build(ctx)
	data, err := json.Marshal(report)
	if err != nil {
		log.Printf("❌ Erreur sérialisation rapport: %v", err)
		return
	}
	if err := store.Client().Set(ctx, store.KeyReportCache, string(data)); err != nil {
		log.Printf("❌ Erreur mise en cache du rapport: %v", err)
	}
}

// Cached sert le rapport depuis le cache, en recalculant en cas d'absence ou
// de document corrompu.
func Cached(ctx context.Context) models.Report {
	raw, err := store.Client().Get(ctx, store.KeyReportCache)
	if err == nil {
		var report models.Report
		if err := json.Unmarshal([]byte(raw), &report); err == nil {
			return report
		}
		log.Printf("⚠️ Cache de rapport corrompu, recalcul: %v", err)
	}

	report := Build(ctx)
	if data, err := json.Marshal(report); err == nil {
		if err := store.Client().Set(ctx, store.KeyReportCache, string(data)); err != nil {
			log.Printf("⚠️ Erreur mise en cache du rapport: %v", err)
		}
	}
	return report
}
