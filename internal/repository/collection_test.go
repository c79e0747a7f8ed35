package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"activities/internal/models"
	"activities/internal/storage/memory"
)

func TestCollection_WithoutBackendIsNoop(t *testing.T) {
	ctx := context.Background()
	c := NewCollection(nil, "")

	require.NoError(t, c.Save(ctx, []models.Activity{{ID: "1", Nome: "Palestra"}}))

	loaded, err := c.Load(ctx)
	require.NoError(t, err)
	assert.NotNil(t, loaded)
	assert.Empty(t, loaded)
}

func TestCollection_SaveEmptyThenLoad(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	c := NewCollection(kv, "")

	require.NoError(t, c.Save(ctx, nil))

	raw, ok, err := kv.Get(ctx, DefaultKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[]`, string(raw))

	loaded, err := c.Load(ctx)
	require.NoError(t, err)
	assert.NotNil(t, loaded)
	assert.Empty(t, loaded)
}

func TestCollection_PersistedLayout(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	c := NewCollection(kv, "campus")
	assert.Equal(t, "campus", c.Key())

	require.NoError(t, c.Save(ctx, []models.Activity{{
		ID:            "1700000000000",
		Nome:          "Semana da Engenharia",
		Responsavel:   "Prof. Ana",
		Descricao:     "Palestras e oficinas",
		Participantes: []string{"Bruno", "Carla"},
	}}))

	raw, ok, err := kv.Get(ctx, "campus")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[{
		"id": "1700000000000",
		"nome": "Semana da Engenharia",
		"responsavel": "Prof. Ana",
		"data": "0001-01-01T00:00:00Z",
		"descricao": "Palestras e oficinas",
		"participantes": ["Bruno", "Carla"]
	}]`, string(raw))
}

func TestCollection_LoadsRecordsWrittenByOlderClients(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	require.NoError(t, kv.Set(ctx, DefaultKey, []byte(`[
		{"id":"1717171717171","nome":"Oficina","responsavel":"Ana","data":"2030-05-01T00:00:00.000Z","descricao":"Oficina de robótica"}
	]`)))

	loaded, err := NewCollection(kv, "").Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "1717171717171", loaded[0].ID)
	assert.Equal(t, 2030, loaded[0].Data.Year())
	assert.NotNil(t, loaded[0].Participantes)
	assert.Empty(t, loaded[0].Participantes)
}

func TestCollection_EmptyValueLoadsAsEmpty(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	require.NoError(t, kv.Set(ctx, DefaultKey, nil))

	loaded, err := NewCollection(kv, "").Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded)
}
