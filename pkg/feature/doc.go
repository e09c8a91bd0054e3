// Package feature manages the lifecycle of independently toggleable features
// and keeps their live patch set consistent with their persisted state.
//
// # Architecture
//
// A Definition is the discovery input for one feature: metadata flags, the
// builds it applies to, its patch declarations and its settings. The Manager
// consumes definitions through RegisterAll and drives each feature through
// its lifecycle:
//
//	Discovered -> Applicable | Inapplicable
//	Applicable -> Enabled | Degraded | Disabled
//	Enabled, Degraded <-> Disabled
//	any -> Destroyed (Shutdown)
//
// The initial enabled value is the persisted flag, or EnabledByDefault when
// nothing has been stored yet. Enabling applies every patch unit of the
// feature. Units that fail stay unapplied and the feature ends up Degraded:
// still enabled, with a Diagnostic per failure. Disabling reverts best-effort
// and always persists false.
//
// Features marked RequiresRestart never change their live patch set after
// startup. Toggling them only updates the persisted flag and publishes a
// Notification telling subscribers whether a restart is pending. Listeners
// are called synchronously, in subscription order, before Toggle returns.
//
// # Configuration errors
//
// RegisterAll rejects the whole batch when a definition is invalid or a
// feature identity is registered twice. IsConfigurationError reports these.
//
// # Usage
//
//	mgr := feature.NewManager(gate, registry, st, feature.WithLogger(log))
//	if err := mgr.RegisterAll(ctx, godMode, hudTweaks); err != nil {
//		return err // fatal for this module
//	}
//
//	unsubscribe := mgr.Subscribe(func(n feature.Notification) {
//		ui.ShowRestartBanner(mgr.AnyRestartRequested())
//	})
//	defer unsubscribe()
//
//	enabled, err := mgr.Toggle(ctx, "god-mode")
package feature
