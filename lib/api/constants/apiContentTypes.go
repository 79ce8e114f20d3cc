package constants

const ContentTypeOctetStream = "application/octet-stream"

// CacheControlImmutable is sent on every resource response; a given version
// of a file never changes.
const CacheControlImmutable = "public, max-age=31536000, immutable"
