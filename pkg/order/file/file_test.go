package file_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodorder/pkg/order"
	"foodorder/pkg/order/file"
)

func sampleOrder(id string) order.Order {
	return order.Order{
		ID:    id,
		Items: []json.RawMessage{json.RawMessage(`{"name":"Pizza","amount":2}`)},
		Customer: &order.Customer{
			Email: "a@b.com", Name: "A", Street: "S", PostalCode: "1", City: "C",
		},
	}
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	s := file.New(filepath.Join(t.TempDir(), "orders.json"))

	orders, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, orders)
	assert.NotNil(t, orders)
}

func TestSaveThenLoad(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "orders.json")
	s := file.New(path)

	want := []order.Order{sampleOrder("1"), sampleOrder("2")}
	require.NoError(t, s.Save(ctx, want))

	got, err := file.New(path).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1, "temporary files must not be left behind")
	assert.Equal(t, "orders.json", entries[0].Name())
}

func TestSaveWritesJSONArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.json")
	s := file.New(path)
	require.NoError(t, s.Save(context.Background(), []order.Order{sampleOrder("x")}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc []map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	require.Len(t, doc, 1)
	assert.Equal(t, "x", doc[0]["id"])
	customer := doc[0]["customer"].(map[string]any)
	assert.Equal(t, "1", customer["postal-code"])
}

func TestSaveEmptyWritesEmptyArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.json")
	require.NoError(t, file.New(path).Save(context.Background(), nil))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestLoadCorruptFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id":`), 0o644))

	_, err := file.New(path).Load(context.Background())
	assert.Error(t, err)
}

func TestLoadNullDocumentIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.json")
	require.NoError(t, os.WriteFile(path, []byte(`null`), 0o644))

	orders, err := file.New(path).Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, orders)
}
