// Package modules contains the self-contained dashboard features.
//
// Each subdirectory is a module implementing `module.Module`: profile,
// scripts and models. Modules are listed in `internal/app/modules.go` and
// mounted under "/<name>" when the server boots.
package modules
