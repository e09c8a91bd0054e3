// Package modkit wires the feature/patch orchestration core for one host
// process.
//
// A Runtime is created once per process from a config.Runtime and the live
// host model. It owns the build gate, the runtime backend, the patch
// registry, the persisted config store and the feature manager. Nothing is
// kept in package-level state, so tests and tools may create several
// runtimes side by side.
//
// Basic usage:
//
//	cfg := config.MustLoad()
//	rt, err := modkit.New(ctx, cfg, hostRuntime)
//	if err != nil {
//		log.Fatal(err) // unknown build, unknown backend or store failure
//	}
//	defer rt.Shutdown(context.Background())
//
//	report, err := rt.Load(ctx, cameraModule, cheatsModule)
//	if err != nil {
//		// Only the modules listed in report.Failed were rejected.
//	}
//
//	http.ListenAndServe(cfg.HTTPAddr, rt.Handler())
//
// Modules whose Builds range excludes the current build are skipped as a
// whole. A configuration error, such as a duplicate feature identity, aborts
// the affected module and leaves the others running.
package modkit
