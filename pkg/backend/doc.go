// Package backend implements patch.Backend for the two runtime flavors a host
// build can run under.
//
// Reflection resolves types by their exact name and installs detours directly
// on the member. Interop resolves types through an optional namespace prefix,
// never hands out handles to synthetic wrapper members, and registers a
// synthetic trampoline next to every patched member for as long as the patch
// is installed.
//
// The backend is chosen once at startup with New.
package backend
