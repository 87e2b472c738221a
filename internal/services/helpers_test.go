package services_test

import (
	"context"
	"encoding/json"

	"tour_sales_backend/internal/repositories"
)

// inlineTx runs the transaction body against a nil executor; mocks match it with gomock.Any().
type inlineTx struct{ runs int }

func (t *inlineTx) RunInTx(ctx context.Context, fn func(exec repositories.SQLExecutor) error) error {
	t.runs++
	return fn(nil)
}

// memCache is an in-memory ReportCache that bumps its generation on invalidation like the
// Redis cache does.
type memCache struct {
	entries     map[string][]byte
	generation  int64
	invalidated int
}

func newMemCache() *memCache {
	return &memCache{entries: map[string][]byte{}}
}

func (c *memCache) Generation(ctx context.Context) (int64, error) {
	return c.generation, nil
}

func (c *memCache) GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	raw, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *memCache) SetJSON(ctx context.Context, key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.entries[key] = raw
	return nil
}

func (c *memCache) InvalidateReports(ctx context.Context) error {
	c.invalidated++
	c.generation++
	c.entries = map[string][]byte{}
	return nil
}

func int64Ptr(v int64) *int64 { return &v }
