package cache

import (
	"context"
	"time"

	"github.com/viccon/sturdyc"

	"github.com/jhoicas/Offers-api/internal/domain/repository"
)

const (
	statusCacheCapacity   = 10000
	statusCacheShards     = 10
	statusCacheEvictPerc  = 10
	defaultStatusCacheTTL = 30 * time.Second
)

// UserStatusCache responde si un usuario sigue activo, consultando la DB como mucho una vez
// por TTL y usuario. Invalidate descarta la entrada tras un cambio de estado o un borrado.
type UserStatusCache struct {
	client *sturdyc.Client[bool]
	users  repository.UserRepository
}

// NewUserStatusCache construye la caché. ttl <= 0 usa 30s.
func NewUserStatusCache(users repository.UserRepository, ttl time.Duration) *UserStatusCache {
	if ttl <= 0 {
		ttl = defaultStatusCacheTTL
	}
	return &UserStatusCache{
		client: sturdyc.New[bool](statusCacheCapacity, statusCacheShards, ttl, statusCacheEvictPerc),
		users:  users,
	}
}

// IsActive devuelve false si el usuario no existe o está desactivado.
func (c *UserStatusCache) IsActive(ctx context.Context, userID string) (bool, error) {
	return c.client.GetOrFetch(ctx, userID, func(ctx context.Context) (bool, error) {
		u, err := c.users.GetByID(ctx, userID)
		if err != nil {
			return false, err
		}
		return u != nil && u.IsActive, nil
	})
}

// Invalidate descarta el estado cacheado del usuario.
func (c *UserStatusCache) Invalidate(userID string) {
	c.client.Delete(userID)
}
