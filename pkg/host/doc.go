// Package host is the in-process model of the host application's dispatch
// table: types, their members and the detours installed over them.
//
// Host code calls members through Runtime.Call. When a detour is installed for
// a member, the call runs the detour's before hooks, then either the replace
// hook or the original body, then the after hooks. Only the patch layer is
// expected to install or restore detours.
package host
