// Package settingsapi exposes the feature menu to an external settings UI
// over HTTP.
//
// The UI owns rendering. This package decides what it shows: grouping,
// locale-aware ordering, visibility in dev mode, and the menu labels
// ("[H] " for hidden entries, "[!] " for restart-bound ones, toggle text
// Enabled, Disabled or Automated, and build labels such as R4-R6).
//
// # Routes
//
//	GET  /features                       grouped menu
//	GET  /features/{id}                  one entry
//	POST /features/{id}/toggle           toggle a feature
//	PUT  /features/{id}/settings/{name}  body {"value": ...}
//	GET  /restart                        pending restart flag
//	GET  /diagnostics                    recorded diagnostics
//
// Every response uses the envelope {"data": ..., "meta": ..., "error": ...}.
//
// # Usage
//
//	srv := settingsapi.NewServer(mgr, gate, settingsapi.WithDevMode(cfg.DevMode))
//	r := chi.NewRouter()
//	r.Mount("/", srv.Router())
package settingsapi
