package validate

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var ErrInvalid = errors.New("invalid input")

var (
	reID = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

	v = validator.New(validator.WithRequiredStructEnabled())
)

func init() {
	_ = v.RegisterValidation("uid", func(fl validator.FieldLevel) bool {
		return validUID(fl.Field().String())
	})
}

const (
	maxUID       = 128
	maxPattern   = 100
	DefaultLimit = 6
	maxLimit     = 50
)

// Struct checks `validate` tags and reports the first failing field.
func Struct(s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Errorf("%w: %s failed %q", ErrInvalid, strings.ToLower(fe.Field()), fe.Tag())
	}
	return fmt.Errorf("%w: %v", ErrInvalid, err)
}

// ID validates a server-generated identifier (food and order ids).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, reID.MatchString(s)
}

// validUID accepts the owner ids clients send (uids, emails). It refuses
// surrounding space, control characters and '/', which cannot round-trip
// through a path segment.
func validUID(s string) bool {
	if s == "" || len(s) > maxUID || strings.TrimSpace(s) != s {
		return false
	}
	for _, r := range s {
		if r == '/' || unicode.IsControl(r) {
			return false
		}
	}
	return true
}

// UID checks an owner id taken from a path. Struct fields carrying owner
// ids use the same rule through the `uid` tag.
func UID(s string) (string, error) {
	if err := v.Var(s, "required,uid"); err != nil {
		return "", fmt.Errorf("%w: uid", ErrInvalid)
	}
	return s, nil
}

// Pattern compiles a case-insensitive, unanchored name search.
// The empty pattern matches everything.
func Pattern(s string) (*regexp.Regexp, error) {
	if len(s) > maxPattern {
		return nil, fmt.Errorf("%w: search pattern longer than %d", ErrInvalid, maxPattern)
	}
	re, err := regexp.Compile("(?i)" + s)
	if err != nil {
		return nil, fmt.Errorf("%w: search pattern: %v", ErrInvalid, err)
	}
	return re, nil
}

// Limit parses a positive result count. Empty means DefaultLimit.
func Limit(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultLimit, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: elements must be a positive integer", ErrInvalid)
	}
	if n > maxLimit {
		n = maxLimit
	}
	return n, nil
}
