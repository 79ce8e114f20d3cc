package api

import (
	"github.com/ether/etherdelta/lib"
	"github.com/ether/etherdelta/lib/api/resource"
	"github.com/ether/etherdelta/lib/api/static"
	"github.com/ether/etherdelta/lib/api/stats"
	"github.com/ether/etherdelta/lib/api/swagger"
)

// InitAPI registers every route. The resource routes go last because their
// patterns also match the fixed paths.
func InitAPI(store *lib.InitStore) {
	stats.Init(store)
	swagger.Init(store)
	static.Init(store)
	resource.Init(store)
}
