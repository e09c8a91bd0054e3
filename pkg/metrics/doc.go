// Package metrics exports patch outcomes as Prometheus metrics.
//
// PatchObserver implements patch.Observer and is handed to the registry with
// patch.WithObserver. It maintains:
//
//	modkit_patch_resolutions_total{backend,result}
//	modkit_patch_applications_total{backend,result}
//	modkit_patch_reverts_total{backend,result}
//	modkit_patches_active{backend}
//
// result is "ok" or "error". Handler serves the registry in the Prometheus
// text format.
package metrics
