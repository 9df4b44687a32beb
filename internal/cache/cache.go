// internal/cache/cache.go
package cache

import (
	"sync"
	"time"
)

// Kind はキャッシュするデータの種類。種類ごとにTTLが異なります。
type Kind string

const (
	KindProfile  Kind = "profile"
	KindSyllabus Kind = "syllabus"
	KindProgress Kind = "progress"
	KindNotes    Kind = "notes"
)

// DefaultTTLs はデータ種別ごとのデフォルトTTL
func DefaultTTLs() map[Kind]time.Duration {
	return map[Kind]time.Duration{
		KindProfile:  5 * time.Minute,
		KindSyllabus: 10 * time.Minute,
		KindProgress: 2 * time.Minute,
		KindNotes:    5 * time.Minute,
	}
}

// Key は (種類, ユーザーID, スコープ) の組。プロフィールのようにスコープを持たないものは空文字。
type Key struct {
	Kind   Kind
	UserID string
	Scope  string
}

type entry struct {
	value    any
	storedAt time.Time
}

// generation は無効化の世代。Load は fetch の前後で世代が変わっていれば結果を保存しない。
type generation struct {
	epoch uint64
	user  uint64
	key   uint64
}

// Cache はプロセス内の読み取りキャッシュです。
// 保存した値は読み取り専用として扱ってください。
type Cache struct {
	mu      sync.RWMutex
	entries map[Key]entry
	ttls    map[Kind]time.Duration
	now     func() time.Time

	epoch    uint64
	userGens map[string]uint64
	keyGens  map[Key]uint64
}

type Option func(*Cache)

// WithClock はテスト用に現在時刻の取得関数を差し替えます。
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

// New はキャッシュを作成します。TTLが0以下の種類はキャッシュされません。
func New(ttls map[Kind]time.Duration, opts ...Option) *Cache {
	c := &Cache{
		entries:  make(map[Key]entry),
		ttls:     make(map[Kind]time.Duration, len(ttls)),
		now:      time.Now,
		userGens: make(map[string]uint64),
		keyGens:  make(map[Key]uint64),
	}
	for k, v := range ttls {
		c.ttls[k] = v
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cache) TTL(kind Kind) time.Duration {
	return c.ttls[kind]
}

// Get は有効期限内 (now - storedAt < TTL) のエントリのみ返します。
func (c *Cache) Get(key Key) (any, bool) {
	ttl := c.ttls[key.Kind]
	if ttl <= 0 {
		return nil, false
	}
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.storedAt) >= ttl {
		return nil, false
	}
	return e.value, true
}

func (c *Cache) Set(key Key, value any) {
	if c.ttls[key.Kind] <= 0 {
		return
	}
	c.mu.Lock()
	c.entries[key] = entry{value: value, storedAt: c.now()}
	c.mu.Unlock()
}

// Invalidate は指定したキーを削除します。書き込み後、呼び出し元に戻る前に呼ぶこと。
func (c *Cache) Invalidate(keys ...Key) {
	c.mu.Lock()
	for _, k := range keys {
		delete(c.entries, k)
		c.keyGens[k]++
	}
	c.mu.Unlock()
}

// InvalidateUser はユーザーの全エントリを削除し、削除件数を返します。
func (c *Cache) InvalidateUser(userID string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.userGens[userID]++
	n := 0
	for k := range c.entries {
		if k.UserID == userID {
			delete(c.entries, k)
			n++
		}
	}
	return n
}

func (c *Cache) Clear() {
	c.mu.Lock()
	c.entries = make(map[Key]entry)
	c.epoch++
	c.mu.Unlock()
}

// Sweep は期限切れのエントリを削除し、削除件数を返します。
func (c *Cache) Sweep() int {
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for k, e := range c.entries {
		if now.Sub(e.storedAt) >= c.ttls[k.Kind] {
			delete(c.entries, k)
			n++
		}
	}
	return n
}

func (c *Cache) generationOf(key Key) generation {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.generationLocked(key)
}

func (c *Cache) generationLocked(key Key) generation {
	return generation{epoch: c.epoch, user: c.userGens[key.UserID], key: c.keyGens[key]}
}

// setIfCurrent は世代が gen のままの場合のみ保存します。
func (c *Cache) setIfCurrent(key Key, value any, gen generation) bool {
	if c.ttls[key.Kind] <= 0 {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generationLocked(key) != gen {
		return false
	}
	c.entries[key] = entry{value: value, storedAt: c.now()}
	return true
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Load はキャッシュを読み、なければ fetch の結果を保存して返します (read-through)。
// fetch がエラーの場合は何も保存しません。
// fetch の実行中に同じキーが無効化された場合、取得した値は返すが保存しません。
func Load[T any](c *Cache, key Key, fetch func() (T, error)) (T, error) {
	if v, ok := c.Get(key); ok {
		if typed, ok := v.(T); ok {
			return typed, nil
		}
	}
	gen := c.generationOf(key)
	v, err := fetch()
	if err != nil {
		var zero T
		return zero, err
	}
	c.setIfCurrent(key, v, gen)
	return v, nil
}
