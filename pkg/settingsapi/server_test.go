package settingsapi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/modkit/pkg/backend"
	"github.com/dmitrymomot/modkit/pkg/buildinfo"
	"github.com/dmitrymomot/modkit/pkg/feature"
	"github.com/dmitrymomot/modkit/pkg/host"
	"github.com/dmitrymomot/modkit/pkg/patch"
	"github.com/dmitrymomot/modkit/pkg/settings"
	"github.com/dmitrymomot/modkit/pkg/settingsapi"
	"github.com/dmitrymomot/modkit/pkg/store"
)

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Meta  map[string]any  `json:"meta"`
	Error *struct {
		Code string `json:"code"`
	} `json:"error"`
}

func newServer(t *testing.T, opts ...settingsapi.Option) (http.Handler, *feature.Manager) {
	t.Helper()
	rt := host.NewRuntime(host.NewType("PlayerAgent",
		host.NewMethod("Heal", nil, func(inv *host.Invocation) { inv.Result = 100.0 }),
	))
	gate := buildinfo.MustNewGate(nil, 6)
	reg := patch.NewRegistry(patch.NewResolver(backend.NewReflection(rt)))
	mgr := feature.NewManager(gate, reg, store.NewMemoryStore())

	mode := "easy"
	hooks := patch.Hooks{After: func(*host.Invocation) {}}
	require.NoError(t, mgr.RegisterAll(context.Background(),
		feature.Definition{
			ID:      "god-mode",
			Name:    "God Mode",
			Group:   "Cheats",
			Patches: []feature.Patch{{Target: patch.Method("PlayerAgent", "Heal"), Hooks: hooks}},
			Settings: []settings.Setting{
				settings.NewEnum("mode", []string{"easy", "hard"}, settings.Ref(&mode)),
			},
		},
		feature.Definition{ID: "autosave", Name: "Autosave", Automated: true, EnabledByDefault: true},
		feature.Definition{ID: "hud", Name: "HUD Rework", RequiresRestart: true},
		feature.Definition{ID: "console", Name: "Console", Group: feature.GroupDev},
	))
	return settingsapi.NewServer(mgr, gate, opts...).Router(), mgr
}

func do(t *testing.T, h http.Handler, method, path, body string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec.Code, env
}

func TestServer_ListFeatures(t *testing.T) {
	t.Parallel()

	h, _ := newServer(t)
	code, env := do(t, h, http.MethodGet, "/features", "")
	require.Equal(t, http.StatusOK, code)

	var menu settingsapi.Menu
	require.NoError(t, json.Unmarshal(env.Data, &menu))
	assert.Equal(t, "R6", menu.Build)
	require.Len(t, menu.Groups, 2)
	assert.Equal(t, "Cheats", menu.Groups[0].Name)
	assert.Equal(t, feature.GroupDefault, menu.Groups[1].Name)
	assert.Equal(t, "Automated", menu.Groups[1].Entries[0].Toggle)
	assert.Equal(t, "[!] HUD Rework", menu.Groups[1].Entries[1].Label)
	assert.Equal(t, false, env.Meta["dev_mode"])

	h, _ = newServer(t, settingsapi.WithDevMode(true))
	_, env = do(t, h, http.MethodGet, "/features", "")
	require.NoError(t, json.Unmarshal(env.Data, &menu))
	require.Len(t, menu.Groups, 3)
	assert.Equal(t, "Dev", menu.Groups[2].Name)
}

func TestServer_GetFeature(t *testing.T) {
	t.Parallel()

	h, _ := newServer(t)

	code, env := do(t, h, http.MethodGet, "/features/god-mode", "")
	require.Equal(t, http.StatusOK, code)
	var e settingsapi.Entry
	require.NoError(t, json.Unmarshal(env.Data, &e))
	assert.Equal(t, "God Mode", e.Label)
	assert.Equal(t, "Disabled", e.Toggle)
	require.Len(t, e.Settings, 1)
	assert.Equal(t, "easy", e.Settings[0].Value)

	code, env = do(t, h, http.MethodGet, "/features/missing", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "not_found", env.Error.Code)

	code, _ = do(t, h, http.MethodGet, "/features/console", "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestServer_Toggle(t *testing.T) {
	t.Parallel()

	h, mgr := newServer(t)

	code, env := do(t, h, http.MethodPost, "/features/god-mode/toggle", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, env.Meta["enabled"])
	var e settingsapi.Entry
	require.NoError(t, json.Unmarshal(env.Data, &e))
	assert.Equal(t, "Enabled", e.Toggle)

	inConfig, err := mgr.IsEnabledInConfig("god-mode")
	require.NoError(t, err)
	assert.True(t, inConfig)

	code, env = do(t, h, http.MethodPost, "/features/autosave/toggle", "")
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "conflict", env.Error.Code)

	code, env = do(t, h, http.MethodPost, "/features/hud/toggle", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, false, env.Meta["enabled"])
	assert.Equal(t, true, env.Meta["restart_requested"])

	_, env = do(t, h, http.MethodGet, "/restart", "")
	assert.JSONEq(t, `{"restart_requested":true,"features":["hud"]}`, string(env.Data))

	code, _ = do(t, h, http.MethodPost, "/features/hud/toggle", "")
	require.Equal(t, http.StatusOK, code)
	_, env = do(t, h, http.MethodGet, "/restart", "")
	assert.JSONEq(t, `{"restart_requested":false,"features":[]}`, string(env.Data))

	require.NoError(t, mgr.Shutdown(context.Background()))
	code, _ = do(t, h, http.MethodPost, "/features/god-mode/toggle", "")
	assert.Equal(t, http.StatusServiceUnavailable, code)
}

func TestServer_PutSetting(t *testing.T) {
	t.Parallel()

	h, mgr := newServer(t)

	code, env := do(t, h, http.MethodPut, "/features/god-mode/settings/mode", `{"value":"hard"}`)
	require.Equal(t, http.StatusOK, code)
	var s settingsapi.SettingEntry
	require.NoError(t, json.Unmarshal(env.Data, &s))
	assert.Equal(t, "hard", s.Value)

	sv, err := mgr.Setting("god-mode", "mode")
	require.NoError(t, err)
	assert.Equal(t, "hard", sv.Value)

	tests := []struct {
		name string
		path string
		body string
		code int
		key  string
	}{
		{"unknown option", "/features/god-mode/settings/mode", `{"value":"nightmare"}`, http.StatusUnprocessableEntity, "validation_error"},
		{"wrong type", "/features/god-mode/settings/mode", `{"value":true}`, http.StatusUnprocessableEntity, "validation_error"},
		{"bad json", "/features/god-mode/settings/mode", `{`, http.StatusBadRequest, "bad_request"},
		{"unknown setting", "/features/god-mode/settings/speed", `{"value":1}`, http.StatusNotFound, "not_found"},
		{"unknown feature", "/features/nope/settings/mode", `{"value":"hard"}`, http.StatusNotFound, "not_found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			code, env := do(t, h, http.MethodPut, tt.path, tt.body)
			assert.Equal(t, tt.code, code)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.key, env.Error.Code)
		})
	}
}

func TestServer_Diagnostics(t *testing.T) {
	t.Parallel()

	h, _ := newServer(t)
	code, env := do(t, h, http.MethodGet, "/diagnostics", "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `[]`, string(env.Data))
	assert.Equal(t, float64(0), env.Meta["count"])
}
