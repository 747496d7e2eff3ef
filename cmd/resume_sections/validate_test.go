package main

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-sections/internal/config"
	"github.com/jonathan/resume-sections/internal/logger"
)

func TestRunValidate(t *testing.T) {
	dir := t.TempDir()
	docPath, _ := writeTestDocument(t, dir)
	validateDoc, validateVerbose = docPath, true
	t.Cleanup(func() { validateDoc, validateVerbose = "", false })

	cmd, buf := testCommand()
	require.NoError(t, runValidate(cmd, nil))

	assert.Contains(t, buf.String(), docPath+": valid")
	assert.Contains(t, buf.String(), "DOCUMENT")
}

func TestRunValidate_MissingSection(t *testing.T) {
	dir := t.TempDir()
	doc := map[string]any{
		"id":       uuid.NewString(),
		"language": "en",
		"sections": []map[string]any{{"key": "name", "label": "Name", "value": "JOHN DOE"}},
	}
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	validateDoc = writeFile(t, dir, "broken.json", string(data))
	t.Cleanup(func() { validateDoc = "" })

	cmd, _ := testCommand()
	assert.Error(t, runValidate(cmd, nil))
}

func TestOpenStore_SQLite(t *testing.T) {
	cfg := config.Defaults()
	cfg.SQLitePath = filepath.Join(t.TempDir(), "docs.db")

	store, err := openStore(context.Background(), cfg, logger.OrNop(nil))
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	list, err := store.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, list)
}
