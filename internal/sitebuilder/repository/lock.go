package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/site-builder-backend/internal/logging"
	"github.com/GoSim-25-26J-441/site-builder-backend/internal/sitebuilder/domain"
)

// Locker serializes work on one project. The returned func releases the lock.
type Locker interface {
	Lock(ctx context.Context, projectID string) (unlock func(), err error)
}

// KeyedMutex is an in-process Locker holding one mutex per project id.
// Entries are dropped once no goroutine holds or waits for them.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedEntry
}

type keyedEntry struct {
	ch   chan struct{}
	refs int
}

// NewKeyedMutex creates an empty KeyedMutex.
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*keyedEntry)}
}

// Lock blocks until projectID is free or ctx is done.
func (k *KeyedMutex) Lock(ctx context.Context, projectID string) (func(), error) {
	k.mu.Lock()
	e, ok := k.locks[projectID]
	if !ok {
		e = &keyedEntry{ch: make(chan struct{}, 1)}
		k.locks[projectID] = e
	}
	e.refs++
	k.mu.Unlock()

	select {
	case e.ch <- struct{}{}:
	case <-ctx.Done():
		k.release(projectID, e)
		return nil, fmt.Errorf("%w: %v", domain.ErrLockTimeout, ctx.Err())
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-e.ch
			k.release(projectID, e)
		})
	}, nil
}

func (k *KeyedMutex) release(projectID string, e *keyedEntry) {
	k.mu.Lock()
	defer k.mu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(k.locks, projectID)
	}
}

const (
	lockKeyPrefix     = "site:lock:"
	defaultLockTTL    = 30 * time.Second
	lockRetryInterval = 25 * time.Millisecond
)

// releaseScript deletes the lock only if it still carries our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker is a Locker shared by every instance talking to the same Redis.
type RedisLocker struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisLocker creates a RedisLocker. ttl bounds how long a crashed holder
// can keep a project locked.
func NewRedisLocker(client *redis.Client, ttl time.Duration) *RedisLocker {
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	return &RedisLocker{client: client, ttl: ttl}
}

// Lock retries SET NX until it succeeds or ctx is done.
func (l *RedisLocker) Lock(ctx context.Context, projectID string) (func(), error) {
	key := lockKeyPrefix + projectID
	token := uuid.New().String()

	ticker := time.NewTicker(lockRetryInterval)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("failed to acquire project lock: %w", err)
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", domain.ErrLockTimeout, ctx.Err())
		case <-ticker.C:
		}
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			// the caller's ctx may already be done
			rctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := releaseScript.Run(rctx, l.client, []string{key}, token).Err(); err != nil {
				logging.L().Warn("failed to release project lock, held until ttl",
					zap.String("project_id", projectID),
					zap.Duration("ttl", l.ttl),
					zap.Error(err),
				)
			}
		})
	}, nil
}
