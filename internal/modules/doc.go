// Package modules contains the page's self-contained features.
//
// Each subdirectory implements module.Module and is listed in app.NewModules.
package modules
