package wardroberepo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/outfit-advisor/internal/domain/wardrobe"
)

// ValkeyRepository stores each wardrobe as one JSON array under a fixed key.
type ValkeyRepository struct {
	client valkey.Client
	prefix string
}

// NewValkeyRepository constructs a repository backed by Valkey.
func NewValkeyRepository(client valkey.Client, prefix string) *ValkeyRepository {
	if prefix == "" {
		prefix = "outfit"
	}
	return &ValkeyRepository{client: client, prefix: prefix}
}

func (r *ValkeyRepository) List(ctx context.Context, owner string) ([]wardrobe.Item, error) {
	payload, err := r.client.Do(ctx, r.client.B().Get().Key(r.itemsKey(owner)).Build()).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return []wardrobe.Item{}, nil
		}
		return nil, err
	}
	var items []wardrobe.Item
	if err := json.Unmarshal([]byte(payload), &items); err != nil {
		return nil, fmt.Errorf("decode wardrobe: %w", err)
	}
	if items == nil {
		items = []wardrobe.Item{}
	}
	return items, nil
}

func (r *ValkeyRepository) Save(ctx context.Context, owner string, items []wardrobe.Item) error {
	if items == nil {
		items = []wardrobe.Item{}
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return r.client.Do(ctx, r.client.B().Set().Key(r.itemsKey(owner)).Value(string(payload)).Build()).Error()
}

func (r *ValkeyRepository) itemsKey(owner string) string {
	return fmt.Sprintf("%s:%s:wardrobe_items", r.prefix, owner)
}

var _ wardrobe.Repository = (*ValkeyRepository)(nil)
