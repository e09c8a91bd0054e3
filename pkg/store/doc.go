// Package store persists feature flags and setting values.
//
// The core needs only Read and Write on opaque byte values keyed by string.
// Keys follow a fixed layout produced by EnabledKey and SettingKey:
//
//	features/<feature>/enabled
//	features/<feature>/settings/<setting>
//
// Values are JSON documents produced by the settings codec (booleans for the
// enabled flag).
//
// # Drivers
//
//   - memory: process-local map, used in tests and for ephemeral runs
//   - file: a single YAML document rewritten atomically on every write
//   - badger: embedded key-value database in a local directory
//   - redis: one string key per entry, optionally prefixed
//   - postgres: a key/value table created by embedded goose migrations
//   - mongo: one document per key in a collection
//   - s3: one object per key in a bucket
//
// Open selects the driver from Config, which is populated from environment
// variables prefixed with MODKIT_STORE_.
//
// A missing key is reported as found=false with a nil error. Errors are
// reserved for backend failures.
package store
