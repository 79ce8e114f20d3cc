package resource

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ether/etherdelta/lib"
	"github.com/ether/etherdelta/lib/api/constants"
	apiError "github.com/ether/etherdelta/lib/api/errors"
	"github.com/ether/etherdelta/lib/db"
	"github.com/ether/etherdelta/lib/delta"
	"github.com/ether/etherdelta/lib/differ"
	"github.com/ether/etherdelta/lib/integrity"
	modelsDB "github.com/ether/etherdelta/lib/models/db"
	"github.com/ether/etherdelta/lib/producer"
	resource2 "github.com/ether/etherdelta/lib/resource"
	"github.com/ether/etherdelta/lib/db/fsstore"
	"github.com/ether/etherdelta/lib/settings"
	"github.com/ether/etherdelta/lib/utils"
	"github.com/spf13/afero"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	baseContent   = "var answer = 41;\nexport default answer;\n"
	targetContent = "var answer = 42;\nexport default answer;\n"
)

func newTestApp(t *testing.T) *fiber.App {
	store := db.NewMemoryDataStore()
	for version, content := range map[string]string{"1.0.0": baseContent, "1.0.1": targetContent} {
		require.NoError(t, store.SaveResource(context.Background(), modelsDB.ResourceDB{
			Name:     "answer",
			Version:  version,
			File:     "dist/answer.js",
			Content:  []byte(content),
			Checksum: string(integrity.Checksum(content)),
		}))
	}

	return newTestAppWith(t, store)
}

func newTestAppWith(t *testing.T, store utils.ResourceStore) *fiber.App {
	logger := zap.NewNop().Sugar()
	p, err := producer.NewProducer(differ.NewCharDiffer(), store, producer.DefaultOptions(), logger)
	require.NoError(t, err)

	app := fiber.New()
	Init(&lib.InitStore{
		C:                 app,
		RetrievedSettings: &settings.Settings{},
		Producer:          p,
		Logger:            logger,
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App, target string, header map[string]string) *http.Response {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func readError(t *testing.T, resp *http.Response) apiError.Error {
	var body apiError.Error
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestGetResource_Full(t *testing.T) {
	app := newTestApp(t)

	for _, accept := range []string{"", "*/*", "application/javascript", "application/delta+json;q=0"} {
		t.Run("accept="+accept, func(t *testing.T) {
			resp := doRequest(t, app, "/answer/1.0.1/dist/answer.js", map[string]string{
				fiber.HeaderAccept:      accept,
				delta.BaseVersionHeader: "1.0.0",
			})

			require.Equal(t, http.StatusOK, resp.StatusCode)
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.Equal(t, targetContent, string(body))
			assert.Equal(t, constants.CacheControlImmutable, resp.Header.Get(fiber.HeaderCacheControl))
			assert.Equal(t, fiber.HeaderAccept, resp.Header.Get(fiber.HeaderVary))
			assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "javascript")
			assert.Empty(t, resp.Header.Get(integrity.ChecksumHeader))
			assert.Equal(t, `"`+string(integrity.Checksum(targetContent))+`"`, resp.Header.Get(fiber.HeaderETag))
		})
	}
}

func TestGetResource_Delta(t *testing.T) {
	app := newTestApp(t)

	resp := doRequest(t, app, "/answer/1.0.1/dist/answer.js", map[string]string{
		fiber.HeaderAccept:      "application/delta+json, */*;q=0.1",
		delta.BaseVersionHeader: "1.0.0",
	})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, delta.ContentType, resp.Header.Get(fiber.HeaderContentType))
	assert.Equal(t, "1.0.0", resp.Header.Get(delta.BaseVersionHeader))
	assert.Equal(t, string(integrity.Checksum(targetContent)), resp.Header.Get(integrity.ChecksumHeader))
	assert.Contains(t, resp.Header.Get(fiber.HeaderVary), delta.BaseVersionHeader)
	assert.Equal(t, constants.CacheControlImmutable, resp.Header.Get(fiber.HeaderCacheControl))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	ops, err := delta.Decode(body)
	require.NoError(t, err)
	assert.True(t, ops.IsMinimized())

	rebuilt, err := delta.Apply(ops, baseContent)
	require.NoError(t, err)
	assert.Equal(t, targetContent, rebuilt)
}

func TestGetResource_Errors(t *testing.T) {
	app := newTestApp(t)
	accept := map[string]string{fiber.HeaderAccept: delta.ContentType}

	tests := []struct {
		name    string
		target  string
		header  map[string]string
		status  int
		message string
	}{
		{
			name:    "missing base version",
			target:  "/answer/1.0.1/dist/answer.js",
			header:  accept,
			status:  http.StatusBadRequest,
			message: apiError.NoBaseVersionError.Message,
		},
		{
			name:    "unknown base version",
			target:  "/answer/1.0.1/dist/answer.js",
			header:  map[string]string{fiber.HeaderAccept: delta.ContentType, delta.BaseVersionHeader: "0.0.1"},
			status:  http.StatusExpectationFailed,
			message: apiError.BaseVersionNotKnownError.Message,
		},
		{
			name:    "unknown target with delta",
			target:  "/answer/2.0.0/dist/answer.js",
			header:  map[string]string{fiber.HeaderAccept: delta.ContentType, delta.BaseVersionHeader: "1.0.0"},
			status:  http.StatusNotFound,
			message: apiError.ResourceNotFoundError.Message,
		},
		{
			name:    "unknown target in full",
			target:  "/answer/2.0.0/dist/answer.js",
			status:  http.StatusNotFound,
			message: apiError.ResourceNotFoundError.Message,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doRequest(t, app, tt.target, tt.header)

			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, tt.message, readError(t, resp).Message)
		})
	}
}

func TestGetVersions(t *testing.T) {
	app := newTestApp(t)

	resp := doRequest(t, app, "/answer/versions?file=dist/answer.js", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body VersionsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, []string{"1.0.1", "1.0.0"}, body.Versions)

	resp = doRequest(t, app, "/answer/versions?file=missing.js", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Empty(t, body.Versions)

	resp = doRequest(t, app, "/answer/versions", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestWantsDelta(t *testing.T) {
	tests := map[string]bool{
		"":                                        false,
		"*/*":                                     false,
		"application/*":                           false,
		"application/delta+json":                  true,
		"APPLICATION/DELTA+JSON":                  true,
		"text/html, application/delta+json;q=0.5": true,
		"application/delta+json;q=0":              false,
		"application/delta+json; q=0.0":           false,
		"application/delta+json;q=abc":            false,
		"application/delta+json;charset=utf-8":    true,
	}

	for accept, want := range tests {
		t.Run(accept, func(t *testing.T) {
			assert.Equal(t, want, wantsDelta(accept))
		})
	}
}

func TestGetResource_BaseVersionMustStayInsideStore(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/srv/public/app/1.0.0/secret.txt", []byte("public text"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/srv/private/secret.txt", []byte("private txt"), 0o644))
	app := newTestAppWith(t, fsstore.NewFileStore(fs, "/srv/public"))

	for _, baseVersion := range []string{"../../private", "..", "a/b", `..\private`} {
		t.Run(baseVersion, func(t *testing.T) {
			resp := doRequest(t, app, "/app/1.0.0/secret.txt", map[string]string{
				fiber.HeaderAccept:      delta.ContentType,
				delta.BaseVersionHeader: baseVersion,
			})

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Empty(t, resp.Header.Get(delta.BaseVersionHeader))
			assert.Contains(t, readError(t, resp).Message, "Invalid resource")
		})
	}
}

func TestGetResource_DecodesEscapedPath(t *testing.T) {
	store := db.NewMemoryDataStore()
	require.NoError(t, store.SaveResource(context.Background(), modelsDB.ResourceDB{
		Name:    "app",
		Version: "1.0.0",
		File:    "assets/my file.js",
		Content: []byte("spaced()"),
	}))
	app := newTestAppWith(t, store)

	resp := doRequest(t, app, "/app/1.0.0/assets/my%20file.js", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "spaced()", string(body))

	for _, target := range []string{"/app/%2e%2e/assets/my%20file.js", "/app/1.0.0/%2e%2e/%2e%2e/x.js"} {
		t.Run(target, func(t *testing.T) {
			resp := doRequest(t, app, target, nil)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestGetVersions_UndecodableName(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/answer/versions?file=dist/answer.js", nil)
	req.URL.Opaque = "/%zz/versions"
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, apiError.NewInvalidParamError("name").Message, readError(t, resp).Message)
}

func TestParseRequestPath(t *testing.T) {
	id, err := parseRequestPath("/app/1.0.0/a%2Fb%20c.js")
	require.NoError(t, err)
	assert.Equal(t, "a/b c.js", id.File)

	_, err = parseRequestPath("/app/1.0.0/bad%zz.js")
	assert.ErrorIs(t, err, resource2.ErrInvalidIdentity)
}

func TestGetResource_BinaryContentIsServedInFull(t *testing.T) {
	store := db.NewMemoryDataStore()
	for version, content := range map[string]string{"1.0.0": "ab\xffcd", "1.0.1": "ab\xffce"} {
		require.NoError(t, store.SaveResource(context.Background(), modelsDB.ResourceDB{
			Name:    "blob",
			Version: version,
			File:    "data.bin",
			Content: []byte(content),
		}))
	}
	app := newTestAppWith(t, store)

	resp := doRequest(t, app, "/blob/1.0.1/data.bin", map[string]string{
		fiber.HeaderAccept:      delta.ContentType,
		delta.BaseVersionHeader: "1.0.0",
	})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEqual(t, delta.ContentType, resp.Header.Get(fiber.HeaderContentType))
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, []byte("ab\xffce"), body)
}
