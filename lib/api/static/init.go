package static

import (
	"github.com/ether/etherdelta/lib"
	"github.com/gofiber/fiber/v2"
)

// Init serves the configured static directory under /static, typically the
// service worker script and the page that registers it.
func Init(store *lib.InitStore) {
	dir := store.RetrievedSettings.StaticDir
	if dir == "" {
		return
	}

	store.Logger.Infof("Serving static files from %s", dir)
	store.C.Static("/static", dir, fiber.Static{
		Compress: false,
		Browse:   false,
		MaxAge:   3600,
	})
}
