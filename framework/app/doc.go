// Package app turns a root module into a running HTTP application.
//
// Create initializes the module graph, merges every controller's routes into
// one table and mounts it on a chi router. Each request then runs through
// the pipeline: global guards, route guards, global interceptors, route
// interceptors and finally the handler.
//
// Boot is all or nothing. A provider error, a failing OnModuleInit hook or
// two routes on the same method and path make Create return an error and no
// Application.
package app
