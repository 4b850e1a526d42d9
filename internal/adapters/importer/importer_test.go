package importer_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/lazy/internal/adapters/importer"
	"go.trai.ch/lazy/internal/core/domain"
	"go.trai.ch/zerr"
)

func writeModule(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestFileImporter_JSON(t *testing.T) {
	path := writeModule(t, "card.json", `{"default": {"title": "Card", "slots": 2}, "version": "1"}`)

	mod, err := importer.NewFileImporter().Import(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"title": "Card", "slots": float64(2)}, mod.Default)
	assert.Equal(t, "1", mod.Namespace["version"])
}

func TestFileImporter_JSONWithoutDefaultUsesNamespace(t *testing.T) {
	path := writeModule(t, "card.json", `{"title": "Card"}`)

	mod, err := importer.NewFileImporter().Import(context.Background(), path)
	require.NoError(t, err)

	assert.Nil(t, mod.Default)
	assert.Equal(t, map[string]any{"title": "Card"}, mod.Component())
}

func TestFileImporter_InvalidJSON(t *testing.T) {
	path := writeModule(t, "card.json", `{"default": `)

	_, err := importer.NewFileImporter().Import(context.Background(), path)
	require.ErrorContains(t, err, domain.ErrModuleParseFailed.Error())
}

func TestFileImporter_YAML(t *testing.T) {
	path := writeModule(t, "header.yml", "default:\n  title: Header\n  sticky: true\n")

	mod, err := importer.NewFileImporter().Import(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"title": "Header", "sticky": true}, mod.Default)
}

func TestFileImporter_LuaReturnValue(t *testing.T) {
	path := writeModule(t, "footer.lua", `
local links = { "about", "contact" }
return {
  default = { title = string.upper("footer"), links = links, columns = 3 },
}
`)

	mod, err := importer.NewFileImporter().Import(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"title":   "FOOTER",
		"links":   []any{"about", "contact"},
		"columns": int64(3),
	}, mod.Default)
}

func TestFileImporter_LuaGlobalDefault(t *testing.T) {
	path := writeModule(t, "sidebar.lua", `default = { width = 1.5 }`)

	mod, err := importer.NewFileImporter().Import(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"width": 1.5}, mod.Default)
}

func TestFileImporter_LuaSandboxHasNoOS(t *testing.T) {
	path := writeModule(t, "evil.lua", `return os.getenv("HOME")`)

	_, err := importer.NewFileImporter().Import(context.Background(), path)
	require.ErrorContains(t, err, domain.ErrModuleParseFailed.Error())
}

func TestFileImporter_LuaObservesDeadline(t *testing.T) {
	path := writeModule(t, "spin.lua", `while true do end`)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := importer.NewFileImporter().Import(ctx, path)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestFileImporter_UnsupportedExtension(t *testing.T) {
	path := writeModule(t, "card.txt", "hello")

	_, err := importer.NewFileImporter().Import(context.Background(), path)
	require.ErrorContains(t, err, domain.ErrUnsupportedModule.Error())
}

func TestFileImporter_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.json")

	_, err := importer.NewFileImporter().Import(context.Background(), path)
	require.ErrorContains(t, err, domain.ErrModuleReadFailed.Error())
}

func TestHTTPImporter_ContentType(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
		_, _ = w.Write([]byte("default: remote\n"))
	}))
	defer server.Close()

	mod, err := importer.NewHTTPImporter(server.Client()).Import(context.Background(), server.URL+"/card")
	require.NoError(t, err)
	assert.Equal(t, "remote", mod.Default)
}

func TestHTTPImporter_ExtensionFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`return { default = "lua" }`))
	}))
	defer server.Close()

	mod, err := importer.NewHTTPImporter(server.Client()).Import(context.Background(), server.URL+"/card.lua?v=2")
	require.NoError(t, err)
	assert.Equal(t, "lua", mod.Default)
}

func TestHTTPImporter_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := importer.NewHTTPImporter(server.Client()).Import(context.Background(), server.URL+"/card.json")
	require.ErrorContains(t, err, domain.ErrModuleFetchFailed.Error())

	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	assert.Equal(t, http.StatusServiceUnavailable, zErr.Metadata()["status_code"])
}

func TestHTTPImporter_RejectsOversizedModule(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write([]byte("default: " + strings.Repeat("x", 8<<20)))
	}))
	defer server.Close()

	_, err := importer.NewHTTPImporter(server.Client()).Import(context.Background(), server.URL+"/card.yaml")
	require.ErrorContains(t, err, domain.ErrModuleFetchFailed.Error())

	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	assert.Equal(t, "module too large", zErr.Metadata()["reason"])
}

func TestHTTPImporter_ObservesDeadline(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := importer.NewHTTPImporter(server.Client()).Import(ctx, server.URL+"/card.json")
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestMux_RoutesByScheme(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"default": "remote"}`))
	}))
	defer server.Close()

	mux := importer.NewMux(importer.NewFileImporter(), importer.NewHTTPImporter(server.Client()))

	mod, err := mux.Import(context.Background(), server.URL+"/card.json")
	require.NoError(t, err)
	assert.Equal(t, "remote", mod.Default)

	path := writeModule(t, "card.json", `{"default": "local"}`)
	mod, err = mux.Import(context.Background(), "file://"+path)
	require.NoError(t, err)
	assert.Equal(t, "local", mod.Default)
}
