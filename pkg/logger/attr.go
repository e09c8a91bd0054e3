package logger

import (
	"fmt"
	"log/slog"
)

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Feature records the feature identity under the key "feature".
func Feature(id string) slog.Attr {
	return slog.String("feature", id)
}

// Descriptor records a patch target description under the key "target".
// If d is nil, it returns an empty Attr.
func Descriptor(d fmt.Stringer) slog.Attr {
	if d == nil {
		return slog.Attr{}
	}
	return slog.String("target", d.String())
}

// Backend records the runtime backend name under the key "backend".
func Backend(name string) slog.Attr {
	return slog.String("backend", name)
}

// Build records the host build under the key "build".
func Build(name string) slog.Attr {
	return slog.String("build", name)
}

// Op records the operation that produced the record under the key "op".
func Op(name string) slog.Attr {
	return slog.String("op", name)
}

// Setting records a setting name under the key "setting".
func Setting(name string) slog.Attr {
	return slog.String("setting", name)
}

// Diagnostic records a diagnostic identifier under the key "diagnostic_id".
// If id is nil, it returns an empty Attr.
func Diagnostic(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("diagnostic_id", id)
}
