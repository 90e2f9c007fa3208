package store

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/redis/go-redis/v9"

	"celta_back_end/internal/database"
)

// ErrNotFound est renvoyé quand une clé n'existe pas dans le magasin.
var ErrNotFound = errors.New("clé absente du magasin")

// KV est l'abstraction du magasin clé-valeur: opérations sur des clés chaîne
// dont les valeurs sont des documents JSON sérialisés ou des chaînes simples.
// Aucune transaction: chaque clé est mise à jour indépendamment.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Del(ctx context.Context, keys ...string) error
	MSet(ctx context.Context, pairs ...string) error

	// Publish/Subscribe portent les invalidations de rapport sur le canal
	// stock:changed. Le payload est la liste des clés touchées.
	Publish(ctx context.Context, channel, payload string) error
	Subscribe(ctx context.Context, channel string) <-chan string
}

var client KV

// Init branche une implémentation du magasin (Redis en production, mémoire
// dans les tests et en mode local).
func Init(kv KV) {
	client = kv
}

// InitFromEnv choisit l'implémentation selon la configuration: Redis si
// database.Connect a établi une connexion, mémoire sinon.
func InitFromEnv() {
	if database.Redis != nil {
		Init(NewRedisKV(database.Redis))
		return
	}
	Init(NewMemoryKV())
}

// Client expose le magasin courant
func Client() KV {
	return client
}

// --- Implémentation Redis ---

type redisKV struct {
	rdb *redis.Client
}

func NewRedisKV(rdb *redis.Client) KV {
	return &redisKV{rdb: rdb}
}

func (r *redisKV) Get(ctx context.Context, key string) (string, error) {
	val, err := r.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", ErrNotFound
	}
	return val, err
}

func (r *redisKV) Set(ctx context.Context, key, value string) error {
	return r.rdb.Set(ctx, key, value, 0).Err()
}

func (r *redisKV) Del(ctx context.Context, keys ...string) error {
	return r.rdb.Del(ctx, keys...).Err()
}

func (r *redisKV) MSet(ctx context.Context, pairs ...string) error {
	args := make([]interface{}, len(pairs))
	for i, p := range pairs {
		args[i] = p
	}
	return r.rdb.MSet(ctx, args...).Err()
}

func (r *redisKV) Publish(ctx context.Context, channel, payload string) error {
	return r.rdb.Publish(ctx, channel, payload).Err()
}

func (r *redisKV) Subscribe(ctx context.Context, channel string) <-chan string {
	sub := r.rdb.Subscribe(ctx, channel)
	out := make(chan string, 16)
	go func() {
		defer close(out)
		defer sub.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-sub.Channel():
				if !ok {
					return
				}
				out <- msg.Payload
			}
		}
	}()
	return out
}

// --- Implémentation mémoire ---

// memoryKV réplique la sémantique AsyncStorage d'origine: un dictionnaire
// local de chaînes, sans durabilité.
type memoryKV struct {
	mu   sync.RWMutex
	data map[string]string

	subMu sync.Mutex
	subs  map[string][]chan string
}

func NewMemoryKV() KV {
	return &memoryKV{
		data: make(map[string]string),
		subs: make(map[string][]chan string),
	}
}

func (m *memoryKV) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	val, ok := m.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return val, nil
}

func (m *memoryKV) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memoryKV) Del(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func (m *memoryKV) MSet(_ context.Context, pairs ...string) error {
	if len(pairs)%2 != 0 {
		return errors.New("MSet: nombre de paires impair")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := 0; i < len(pairs); i += 2 {
		m.data[pairs[i]] = pairs[i+1]
	}
	return nil
}

func (m *memoryKV) Publish(_ context.Context, channel, payload string) error {
	m.subMu.Lock()
	defer m.subMu.Unlock()
	for _, ch := range m.subs[channel] {
		select {
		case ch <- payload:
		default:
			log.Printf("⚠️ Abonné lent sur %s, invalidation ignorée", channel)
		}
	}
	return nil
}

func (m *memoryKV) Subscribe(ctx context.Context, channel string) <-chan string {
	ch := make(chan string, 16)
	m.subMu.Lock()
	m.subs[channel] = append(m.subs[channel], ch)
	m.subMu.Unlock()

	go func() {
		<-ctx.Done()
		m.subMu.Lock()
		defer m.subMu.Unlock()
		list := m.subs[channel]
		for i, c := range list {
			if c == ch {
				m.subs[channel] = append(list[:i], list[i+1:]...)
				close(ch)
				break
			}
		}
	}()
	return ch
}
