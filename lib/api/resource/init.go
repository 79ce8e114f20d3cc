package resource

import (
	"errors"
	"fmt"
	"mime"
	"net/url"
	"path"

	"github.com/ether/etherdelta/lib"
	"github.com/ether/etherdelta/lib/api/constants"
	apiError "github.com/ether/etherdelta/lib/api/errors"
	"github.com/ether/etherdelta/lib/delta"
	"github.com/ether/etherdelta/lib/integrity"
	"github.com/ether/etherdelta/lib/producer"
	resource2 "github.com/ether/etherdelta/lib/resource"
	"github.com/gofiber/fiber/v2"
)

type VersionsResponse struct {
	Name     string   `json:"name" example:"react"`
	File     string   `json:"file" example:"umd/react.production.min.js"`
	Versions []string `json:"versions" example:"16.8.1,16.8.0"`
}

// Init registers the resource routes. They match almost any path, so they
// must be registered after every other route.
func Init(store *lib.InitStore) {
	store.C.Get("/:name/versions", GetVersions(store))
	store.C.Get("/:name/:version/*", GetResource(store))
}

// GetVersions godoc
// @Summary List versions of a file
// @Description Lists the versions of name that contain file, newest first
// @Tags Resources
// @Produce json
// @Param name path string true "Asset name"
// @Param file query string true "File path inside the version"
// @Success 200 {object} VersionsResponse
// @Failure 400 {object} errors.Error
// @Failure 500 {object} errors.Error
// @Router /{name}/versions [get]
func GetVersions(store *lib.InitStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		name, err := url.PathUnescape(c.Params("name"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(apiError.NewInvalidParamError("name"))
		}
		file := c.Query("file")
		if file == "" {
			return c.Status(fiber.StatusBadRequest).JSON(apiError.NewMissingParamError("file"))
		}
		lookup := resource2.Identity{Name: name, Version: "latest", File: file}
		if err := lookup.Validate(); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(apiError.NewInvalidResourceError(err.Error()))
		}

		versions, err := store.Producer.Versions(c.UserContext(), lookup.Name, lookup.File)
		if err != nil {
			store.Logger.Errorf("Error listing versions of %s %s: %v", lookup.Name, lookup.File, err)
			return c.Status(fiber.StatusInternalServerError).JSON(apiError.DataRetrievalError)
		}
		if versions == nil {
			versions = []string{}
		}
		return c.JSON(VersionsResponse{Name: lookup.Name, File: lookup.File, Versions: versions})
	}
}

// GetResource godoc
// @Summary Get a versioned resource
// @Description Returns the file in full, or as a delta against the base version named in X-Differential-Base-Version when Accept lists application/delta+json
// @Tags Resources
// @Produce application/delta+json
// @Produce octet-stream
// @Param name path string true "Asset name"
// @Param version path string true "Asset version"
// @Param file path string true "File path inside the version"
// @Param X-Differential-Base-Version header string false "Version the client already holds"
// @Success 200 {string} string "File content or delta"
// @Failure 400 {object} errors.Error
// @Failure 404 {object} errors.Error
// @Failure 417 {object} errors.Error
// @Failure 500 {object} errors.Error
// @Router /{name}/{version}/{file} [get]
func GetResource(store *lib.InitStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseRequestPath(c.Path())
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(apiError.NewInvalidResourceError(err.Error()))
		}

		if wantsDelta(c.Get(fiber.HeaderAccept)) {
			return sendDelta(c, store, id)
		}
		return sendFull(c, store, id)
	}
}

// parseRequestPath decodes the percent-encoded request path before parsing, so
// validation sees the segments the store will be asked for.
func parseRequestPath(raw string) (resource2.Identity, error) {
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return resource2.Identity{}, fmt.Errorf("%w: %v", resource2.ErrInvalidIdentity, err)
	}
	return resource2.ParsePath(decoded)
}

func sendFull(c *fiber.Ctx, store *lib.InitStore, id resource2.Identity) error {
	stored, err := store.Producer.Resource(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, producer.ErrResourceNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(apiError.ResourceNotFoundError)
		}
		store.Logger.Errorf("Error reading %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(apiError.DataRetrievalError)
	}

	contentType := stored.ContentType
	if contentType == "" {
		contentType = mime.TypeByExtension(path.Ext(id.File))
	}
	if contentType == "" {
		contentType = constants.ContentTypeOctetStream
	}

	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderCacheControl, constants.CacheControlImmutable)
	c.Vary(fiber.HeaderAccept)
	if stored.Checksum != "" {
		c.Set(fiber.HeaderETag, `"`+stored.Checksum+`"`)
	}
	return c.Send(stored.Content)
}

func sendDelta(c *fiber.Ctx, store *lib.InitStore, id resource2.Identity) error {
	baseVersion := c.Get(delta.BaseVersionHeader)
	if baseVersion == "" {
		return c.Status(fiber.StatusBadRequest).JSON(apiError.NoBaseVersionError)
	}
	if err := id.WithVersion(baseVersion).Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(apiError.NewInvalidResourceError("base version: " + err.Error()))
	}

	result, err := store.Producer.ForResource(c.UserContext(), id, baseVersion)
	switch {
	case err == nil:
	case errors.Is(err, producer.ErrResourceNotFound):
		return c.Status(fiber.StatusNotFound).JSON(apiError.ResourceNotFoundError)
	case errors.Is(err, producer.ErrBaseNotFound):
		store.Logger.Debugf("Unknown base %s for %s", baseVersion, id)
		return c.Status(fiber.StatusExpectationFailed).JSON(apiError.BaseVersionNotKnownError)
	case errors.Is(err, resource2.ErrInvalidIdentity):
		return c.Status(fiber.StatusBadRequest).JSON(apiError.NewInvalidResourceError(err.Error()))
	case errors.Is(err, producer.ErrContentTooLarge), errors.Is(err, producer.ErrNotText):
		store.Logger.Infof("Serving %s in full: %v", id, err)
		return sendFull(c, store, id)
	case errors.Is(err, producer.ErrDeltaVerificationFailed):
		return c.Status(fiber.StatusInternalServerError).JSON(apiError.DeltaVerificationError)
	default:
		store.Logger.Errorf("Error producing delta for %s from %s: %v", id, baseVersion, err)
		return c.Status(fiber.StatusInternalServerError).JSON(apiError.InternalServerError)
	}

	c.Set(fiber.HeaderContentType, delta.ContentType)
	c.Set(fiber.HeaderCacheControl, constants.CacheControlImmutable)
	c.Set(delta.BaseVersionHeader, result.BaseVersion)
	c.Set(integrity.ChecksumHeader, string(result.Checksum))
	c.Vary(fiber.HeaderAccept, delta.BaseVersionHeader)
	return c.Send(result.Body)
}
