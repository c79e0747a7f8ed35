package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"activities/internal/models"
	"activities/internal/storage"
)

// DefaultKey is the storage key holding the activity collection.
const DefaultKey = "activities"

// Collection reads and writes the whole activity list as one JSON array under a
// single key. A Collection without a backend behaves as an always-empty store whose
// writes are dropped.
type Collection struct {
	kv  storage.KeyValue
	key string
}

// NewCollection binds a collection to a backend and key. An empty key falls back to
// DefaultKey; a nil backend yields the no-op collection.
func NewCollection(kv storage.KeyValue, key string) *Collection {
	if key == "" {
		key = DefaultKey
	}
	return &Collection{kv: kv, key: key}
}

// Key returns the storage key in use.
func (c *Collection) Key() string {
	return c.key
}

// Load returns the persisted activities. It never returns a nil slice on success.
func (c *Collection) Load(ctx context.Context) ([]models.Activity, error) {
	if c.kv == nil {
		return []models.Activity{}, nil
	}

	data, ok, err := c.kv.Get(ctx, c.key)
	if err != nil {
		return nil, fmt.Errorf("load activities: %w", err)
	}
	if !ok || len(data) == 0 {
		return []models.Activity{}, nil
	}

	var activities []models.Activity
	if err := json.Unmarshal(data, &activities); err != nil {
		return nil, fmt.Errorf("decode activities under %q: %w", c.key, err)
	}
	if activities == nil {
		activities = []models.Activity{}
	}
	for i := range activities {
		if activities[i].Participantes == nil {
			activities[i].Participantes = []string{}
		}
	}
	return activities, nil
}

// Save replaces the persisted collection with activities in one write.
func (c *Collection) Save(ctx context.Context, activities []models.Activity) error {
	if c.kv == nil {
		return nil
	}
	if activities == nil {
		activities = []models.Activity{}
	}

	data, err := json.Marshal(activities)
	if err != nil {
		return fmt.Errorf("encode activities: %w", err)
	}
	if err := c.kv.Set(ctx, c.key, data); err != nil {
		return fmt.Errorf("save activities: %w", err)
	}
	return nil
}
