package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/DRSN-tech/catalog-backend/internal/cfg"
	"github.com/DRSN-tech/catalog-backend/internal/repository/redis/converter"
	"github.com/DRSN-tech/catalog-backend/internal/usecase"
	"github.com/DRSN-tech/catalog-backend/pkg/clients"
	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/DRSN-tech/catalog-backend/pkg/logger"
	"github.com/jimlawless/whereami"
	r "github.com/redis/go-redis/v9"
)

// CacheRepo кэширует продукты в Redis. Промах кэша — не ошибка:
// GetProduct возвращает (nil, nil), вызывающий идёт в базу.
type CacheRepo struct {
	client *clients.RedisClient
	conv   converter.ProductInfoConverter
	cfg    *cfg.RedisCfg
	logger logger.Logger
}

func NewCacheRepo(client *clients.RedisClient, conv converter.ProductInfoConverter,
	cfg *cfg.RedisCfg, logger logger.Logger) *CacheRepo {
	return &CacheRepo{
		client: client,
		conv:   conv,
		cfg:    cfg,
		logger: logger,
	}
}

// GetProduct возвращает закэшированный продукт по ID или nil при промахе.
func (c *CacheRepo) GetProduct(ctx context.Context, id int64) (*usecase.ProductInfo, error) {
	key := c.productKey(id)

	data, err := c.client.Client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, r.Nil) {
			return nil, nil // cache miss
		}

		c.logger.Warnf("Redis GET failed: %v", e.Wrap(whereami.WhereAmI(), err))
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	var model converter.ProductInfoRedisModel
	if err := json.Unmarshal(data, &model); err != nil {
		c.logger.Warnf("Redis unmarshal failed: %v", e.Wrap(whereami.WhereAmI(), err))
		return nil, nil // повреждённая запись трактуется как промах
	}

	if model.ID != id {
		c.logger.Warnf("Cache ID mismatch: key_id: %d, model_id: %d", id, model.ID)
		if err := c.client.Client.Del(context.Background(), key).Err(); err != nil {
			c.logger.Warnf("Redis del failed: %v", e.Wrap(whereami.WhereAmI(), err))
		}
		return nil, nil // cache miss
	}

	return c.conv.ToUseCase(&model), nil
}

// SetProduct кэширует продукт с заданным TTL.
// Ошибки сериализации/записи логируются и не прерывают запрос.
func (c *CacheRepo) SetProduct(ctx context.Context, product *usecase.ProductInfo) error {
	model := c.conv.ToRedisModel(product)

	data, err := json.Marshal(model)
	if err != nil {
		c.logger.Warnf("Failed to marshal product for caching (Product ID: %d): %v", model.ID, e.Wrap(whereami.WhereAmI(), err))
		return nil
	}

	if err := c.client.Client.Set(ctx, c.productKey(model.ID), data, c.cfg.ProductTTL).Err(); err != nil {
		c.logger.Warnf("Redis SET failed: %v", e.Wrap(whereami.WhereAmI(), err))
	}

	return nil
}

// DeleteProduct удаляет продукт из кэша по ID
func (c *CacheRepo) DeleteProduct(ctx context.Context, id int64) error {
	if err := c.client.Client.Del(ctx, c.productKey(id)).Err(); err != nil {
		c.logger.Warnf("Redis DEL failed: %v", e.Wrap(whereami.WhereAmI(), err))
	}

	return nil
}

// productKey возвращает Redis-ключ для одного продукта
func (c *CacheRepo) productKey(id int64) string {
	return fmt.Sprintf("product:%d", id)
}
