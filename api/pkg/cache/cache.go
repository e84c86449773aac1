// Package cache keeps attraction reads in redis in front of a storage
// backend.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/taylorkchan/japan-trip-planner/api/pkg/log"
	"github.com/taylorkchan/japan-trip-planner/api/pkg/models"
	"github.com/taylorkchan/japan-trip-planner/api/pkg/store"
)

const keyPrefix = "attractions:"

// NewRedisClient connects to the redis server at url (redis://host:port/db).
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}

// AttractionCache is a read-through cache implementing store.AttractionStore.
// Redis failures are logged and the call falls through to the wrapped store.
type AttractionCache struct {
	next   store.AttractionStore
	rdb    *redis.Client
	ttl    time.Duration
	logger *log.Logger
}

func New(next store.AttractionStore, rdb *redis.Client, ttl time.Duration, l *log.Logger) *AttractionCache {
	if l == nil {
		l = log.NewNop()
	}
	return &AttractionCache{next: next, rdb: rdb, ttl: ttl, logger: l}
}

func listKey(filter store.AttractionFilter) string {
	categories := filter.CategoryStrings()
	sort.Strings(categories)
	return keyPrefix + "list:" + strings.Join(categories, ",") + "|" + filter.Prefecture + "|" + string(filter.BudgetRange)
}

func idKey(id string) string {
	return keyPrefix + "id:" + id
}

func searchKey(query string, limit int) string {
	return keyPrefix + "search:" + strconv.Itoa(limit) + ":" + strings.ToLower(strings.TrimSpace(query))
}

// get loads key into dest and reports a hit.
func (c *AttractionCache) get(ctx context.Context, key string, dest interface{}) bool {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		c.logger.LogCache("get", key, false, nil)
		return false
	}
	if err == nil {
		err = json.Unmarshal(raw, dest)
	}
	c.logger.LogCache("get", key, err == nil, err)
	return err == nil
}

func (c *AttractionCache) set(ctx context.Context, key string, value interface{}) {
	raw, err := json.Marshal(value)
	if err == nil {
		err = c.rdb.Set(ctx, key, raw, c.ttl).Err()
	}
	if err != nil {
		c.logger.LogCache("set", key, false, err)
	}
}

func (c *AttractionCache) GetAttractions(ctx context.Context, filter store.AttractionFilter) ([]models.Attraction, error) {
	key := listKey(filter)

	var cached []models.Attraction
	if c.get(ctx, key, &cached) {
		return cached, nil
	}

	attractions, err := c.next.GetAttractions(ctx, filter)
	if err != nil {
		return nil, err
	}
	c.set(ctx, key, attractions)
	return attractions, nil
}

func (c *AttractionCache) GetAttractionByID(ctx context.Context, id string) (*models.Attraction, error) {
	key := idKey(id)

	var cached models.Attraction
	if c.get(ctx, key, &cached) {
		return &cached, nil
	}

	attraction, err := c.next.GetAttractionByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.set(ctx, key, attraction)
	return attraction, nil
}

func (c *AttractionCache) SearchAttractions(ctx context.Context, query string, limit int) ([]models.Attraction, error) {
	if limit <= 0 {
		limit = store.DefaultSearchLimit
	}
	key := searchKey(query, limit)

	var cached []models.Attraction
	if c.get(ctx, key, &cached) {
		return cached, nil
	}

	attractions, err := c.next.SearchAttractions(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	c.set(ctx, key, attractions)
	return attractions, nil
}

// Warm reloads the unfiltered list and every single attraction into the
// cache and returns how many attractions were written.
func (c *AttractionCache) Warm(ctx context.Context) (int, error) {
	attractions, err := c.next.GetAttractions(ctx, store.AttractionFilter{})
	if err != nil {
		return 0, err
	}

	pipe := c.rdb.Pipeline()
	raw, err := json.Marshal(attractions)
	if err != nil {
		return 0, err
	}
	pipe.Set(ctx, listKey(store.AttractionFilter{}), raw, c.ttl)
	for _, a := range attractions {
		one, err := json.Marshal(a)
		if err != nil {
			return 0, err
		}
		pipe.Set(ctx, idKey(a.ID), one, c.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		c.logger.LogCache("warm", keyPrefix+"*", false, err)
		return 0, err
	}
	return len(attractions), nil
}

// Invalidate removes every cached attraction entry.
func (c *AttractionCache) Invalidate(ctx context.Context) (int, error) {
	removed := 0
	iter := c.rdb.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, iter.Err()
}
