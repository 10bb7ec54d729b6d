package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/barback/internal/domain"
)

// ErrIncompleteCatalog is returned by Load when a listed drink key is missing.
var ErrIncompleteCatalog = errors.New("stored catalog is incomplete")

// CatalogBacking persists catalog snapshots. Each drink lives under its own
// key and an ordered ID list keeps the snapshot order.
type CatalogBacking struct {
	store *Store
}

// Load returns the stored snapshot, or nil when none was saved yet. A snapshot
// with any drink key missing is rejected with ErrIncompleteCatalog rather than
// returned partially.
func (b *CatalogBacking) Load(ctx context.Context) ([]domain.Drink, error) {
	client := b.store.client

	ids, err := client.LRange(ctx, CatalogIDsKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get catalog IDs: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	pipe := client.Pipeline()
	cmds := make([]*redis.StringCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.Get(ctx, DrinkKey(id))
	}
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to get catalog drinks: %w", err)
	}

	drinks := make([]domain.Drink, 0, len(ids))
	for i, cmd := range cmds {
		data, err := cmd.Bytes()
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: drink %s", ErrIncompleteCatalog, ids[i])
		}
		if err != nil {
			return nil, fmt.Errorf("failed to get drink %s: %w", ids[i], err)
		}

		var d domain.Drink
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("failed to unmarshal drink %s: %w", ids[i], err)
		}
		drinks = append(drinks, d)
	}

	return drinks, nil
}

// Save replaces the stored snapshot in one transaction. Keys of drinks that
// are no longer in the catalog are removed.
func (b *CatalogBacking) Save(ctx context.Context, drinks []domain.Drink) error {
	client := b.store.client

	previous, err := client.LRange(ctx, CatalogIDsKey(), 0, -1).Result()
	if err != nil {
		return fmt.Errorf("failed to get catalog IDs: %w", err)
	}

	values := make(map[string][]byte, len(drinks))
	ids := make([]interface{}, 0, len(drinks))
	for _, d := range drinks {
		data, err := json.Marshal(d)
		if err != nil {
			return fmt.Errorf("failed to marshal drink %s: %w", d.ID, err)
		}
		values[d.ID] = data
		ids = append(ids, d.ID)
	}

	_, err = client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, id := range previous {
			if _, kept := values[id]; !kept {
				pipe.Del(ctx, DrinkKey(id))
			}
		}
		for id, data := range values {
			pipe.Set(ctx, DrinkKey(id), data, 0)
		}
		pipe.Del(ctx, CatalogIDsKey())
		if len(ids) > 0 {
			pipe.RPush(ctx, CatalogIDsKey(), ids...)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save catalog: %w", err)
	}

	return nil
}
