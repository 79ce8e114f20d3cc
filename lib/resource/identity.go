package resource

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var ErrInvalidIdentity = errors.New("invalid resource identity")

// Identity names one published file of one version of a logical asset.
type Identity struct {
	Name    string `json:"name" validate:"required,max=214,safesegment"`
	Version string `json:"version" validate:"required,max=128,safesegment"`
	File    string `json:"file" validate:"required,max=1024,safepath"`
}

var pathPattern = regexp.MustCompile(`^/([^/]+)/([^/]+)/(.+)$`)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func identityValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("safesegment", func(fl validator.FieldLevel) bool {
			return isSafeSegment(fl.Field().String())
		})
		_ = validate.RegisterValidation("safepath", func(fl validator.FieldLevel) bool {
			for _, segment := range strings.Split(fl.Field().String(), "/") {
				if !isSafeSegment(segment) {
					return false
				}
			}
			return true
		})
	})
	return validate
}

func isSafeSegment(segment string) bool {
	if segment == "" || segment == "." || segment == ".." {
		return false
	}
	return !strings.ContainsAny(segment, "/\\\x00")
}

func (id Identity) Validate() error {
	if err := identityValidator().Struct(id); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
			first := validationErrors[0]
			return fmt.Errorf("%w: %s failed %q", ErrInvalidIdentity, strings.ToLower(first.Field()), first.Tag())
		}
		return fmt.Errorf("%w: %v", ErrInvalidIdentity, err)
	}
	return nil
}

// ParsePath parses "/name/version/file"; file may contain further slashes.
func ParsePath(p string) (Identity, error) {
	matches := pathPattern.FindStringSubmatch(p)
	if matches == nil {
		return Identity{}, fmt.Errorf("%w: %q is not /name/version/file", ErrInvalidIdentity, p)
	}
	id := Identity{Name: matches[1], Version: matches[2], File: matches[3]}
	if err := id.Validate(); err != nil {
		return Identity{}, err
	}
	return id, nil
}

func ParseURL(raw string) (Identity, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidIdentity, err)
	}
	p := u.Path
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return ParsePath(p)
}

func (id Identity) Path() string {
	return "/" + path.Join(id.Name, id.Version, id.File)
}

// Key is the cache key of the identity.
func (id Identity) Key() string {
	return id.Path()
}

func (id Identity) String() string {
	return id.Name + "@" + id.Version + ":" + id.File
}

func (id Identity) WithVersion(version string) Identity {
	id.Version = version
	return id
}

// SameLogicalResource reports whether a and b are the same file of the same
// asset at different versions.
func SameLogicalResource(a, b Identity) bool {
	return a.Name == b.Name && a.File == b.File && a.Version != b.Version
}
