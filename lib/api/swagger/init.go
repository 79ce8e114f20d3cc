package swagger

import (
	_ "github.com/ether/etherdelta/docs"
	"github.com/ether/etherdelta/lib"
	fiberSwagger "github.com/gofiber/swagger"
)

func Init(store *lib.InitStore) {
	store.C.Get("/swagger/*", fiberSwagger.HandlerDefault)
}
