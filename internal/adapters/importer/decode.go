package importer

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/tidwall/gjson"
	lua "github.com/yuin/gopher-lua"
	"go.trai.ch/lazy/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// defaultExport is the namespace key holding a module's default export.
const defaultExport = "default"

// Format is a module source encoding.
type Format string

// Supported module formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatLua  Format = "lua"
)

// formatOf infers the format from the extension of a file path or URL path.
func formatOf(p string) (Format, bool) {
	switch strings.ToLower(path.Ext(p)) {
	case ".json":
		return FormatJSON, true
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".lua":
		return FormatLua, true
	default:
		return "", false
	}
}

// decode evaluates src as a module of the given format.
func decode(ctx context.Context, format Format, name string, src []byte) (domain.Module, error) {
	switch format {
	case FormatJSON:
		return decodeJSON(src)
	case FormatYAML:
		return decodeYAML(src)
	case FormatLua:
		return evalLua(ctx, name, src)
	default:
		return domain.Module{}, zerr.With(domain.ErrUnsupportedModule, "format", string(format))
	}
}

func decodeJSON(src []byte) (domain.Module, error) {
	if !gjson.ValidBytes(src) {
		return domain.Module{}, zerr.With(domain.ErrModuleParseFailed, "format", string(FormatJSON))
	}

	doc := gjson.ParseBytes(src)
	if !doc.IsObject() {
		return domain.Module{Default: doc.Value()}, nil
	}

	ns, _ := doc.Value().(map[string]any)
	mod := domain.Module{Namespace: ns}
	if d := doc.Get(defaultExport); d.Exists() {
		mod.Default = d.Value()
	}
	return mod, nil
}

func decodeYAML(src []byte) (domain.Module, error) {
	var v any
	if err := yaml.Unmarshal(src, &v); err != nil {
		return domain.Module{}, zerr.With(zerr.Wrap(err, domain.ErrModuleParseFailed.Error()), "format", string(FormatYAML))
	}
	return moduleOf(v), nil
}

// moduleOf splits a decoded value into default export and namespace.
func moduleOf(v any) domain.Module {
	ns, ok := v.(map[string]any)
	if !ok {
		return domain.Module{Default: v}
	}
	return domain.Module{Default: ns[defaultExport], Namespace: ns}
}

// evalLua runs src in a sandboxed state and uses the chunk's return value as the module.
// The state observes ctx, so an attempt timeout aborts a running script.
func evalLua(ctx context.Context, name string, src []byte) (mod domain.Module, err error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
	L.SetContext(ctx)

	defer func() {
		if r := recover(); r != nil {
			err = zerr.With(zerr.Wrap(fmt.Errorf("lua panic: %v", r), domain.ErrModuleParseFailed.Error()), "module", name)
		}
	}()

	fn, err := L.Load(strings.NewReader(string(src)), name)
	if err != nil {
		return domain.Module{}, zerr.With(zerr.Wrap(err, domain.ErrModuleParseFailed.Error()), "module", name)
	}
	L.Push(fn)
	if err := L.PCall(0, 1, nil); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return domain.Module{}, ctxErr
		}
		return domain.Module{}, zerr.With(zerr.Wrap(err, domain.ErrModuleParseFailed.Error()), "module", name)
	}

	ret := L.Get(-1)
	L.Pop(1)
	if ret == lua.LNil {
		// Scripts without a return value may declare a global default export.
		ret = L.GetGlobal(defaultExport)
	}
	return moduleOf(luaToGo(ret, make(map[*lua.LTable]bool))), nil
}

// luaToGo converts a Lua value to plain Go data. Functions and cycles become nil.
func luaToGo(lv lua.LValue, visited map[*lua.LTable]bool) any {
	switch v := lv.(type) {
	case lua.LBool:
		return bool(v)
	case lua.LNumber:
		f := float64(v)
		if f == float64(int64(f)) {
			return int64(f)
		}
		return f
	case lua.LString:
		return string(v)
	case *lua.LTable:
		if visited[v] {
			return nil
		}
		visited[v] = true
		defer delete(visited, v)
		return tableToGo(v, visited)
	case *lua.LUserData:
		return v.Value
	default:
		return nil
	}
}

// tableToGo converts a table with contiguous integer keys from 1 to a slice,
// and anything else to a map.
func tableToGo(t *lua.LTable, visited map[*lua.LTable]bool) any {
	if n := t.Len(); n > 0 {
		count := 0
		t.ForEach(func(_, _ lua.LValue) { count++ })
		if count == n {
			arr := make([]any, n)
			for i := 1; i <= n; i++ {
				arr[i-1] = luaToGo(t.RawGetInt(i), visited)
			}
			return arr
		}
	}

	m := make(map[string]any)
	t.ForEach(func(k, v lua.LValue) {
		m[k.String()] = luaToGo(v, visited)
	})
	return m
}
