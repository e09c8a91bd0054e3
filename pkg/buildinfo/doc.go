// Package buildinfo models the host build catalog and the version ranges that
// features and individual patch targets declare.
//
// A Range is a bitset over ordered BuildIDs plus a "latest" sentinel. The
// sentinel is resolved by a Gate at evaluation time, so a range authored as
// "R6 and later" keeps matching builds that are added to the Catalog after the
// range was constructed.
//
// # Usage
//
//	catalog := buildinfo.DefaultCatalog()
//	current, err := catalog.Parse("R6")
//	if err != nil {
//		log.Fatal(err)
//	}
//	gate, err := buildinfo.NewGate(catalog, current)
//	if err != nil {
//		log.Fatal(err) // unknown build: host and tooling disagree
//	}
//
//	r := buildinfo.FromTo(5, 6).WithLatest()
//	if gate.Applies(r) {
//		// register the feature
//	}
//
//	gate.Label(r) // "R5-R8" with the default catalog
//
// # Errors
//
// ErrUnknownBuild is a configuration error. There is no recovery path for it
// because every downstream decision depends on a valid current build.
package buildinfo
