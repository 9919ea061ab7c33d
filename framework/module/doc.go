// Package module builds an application out of modules.
//
// A module groups providers (what it registers into the container),
// controllers (the routes it serves) and imports (the modules it depends
// on). Initialize walks the graph from the root module depth-first, so an
// imported module's providers are always registered before the factories of
// the module importing it run:
//
//	AppModule
//	├── ConfigModule (global)
//	├── UsersModule ──┐
//	└── SettingsModule┴── SharedModule   // initialized once
//
// Exports are recorded on the Graph and checked against what the module can
// provide, but resolution is not restricted by them.
package module
