// Package logger builds the *slog.Logger instances used across modkit and
// keeps attribute naming consistent.
//
// New applies functional options over production-safe defaults (JSON, INFO,
// stdout). WithEnvironment switches between development (text, DEBUG) and
// production presets based on the configured environment name.
//
// Attribute helpers in attr.go (Feature, Descriptor, Backend, Build, Op,
// Error) are used for every resolution and application diagnostic so that a
// failed patch can be traced back to the feature, the declared target and the
// backend that rejected it.
//
// The returned handler is decorated: attributes stored in the context with
// ContextWithFeature are added to every record logged with that context.
//
// # Usage
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.Env, cfg.Service),
//		logger.WithAttr(logger.Build(gate.CurrentName())),
//	)
//	log.WarnContext(ctx, "patch failed",
//		logger.Feature("god-mode"),
//		logger.Descriptor(desc),
//		logger.Error(err),
//	)
package logger
