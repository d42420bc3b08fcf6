package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validation is fail-fast: callers get the first violated rule's
// message only, surfaced verbatim as a 400.
func firstRuleError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Errorf("'%s' failed on the '%s' rule", fe.Field(), fe.Tag())
	}
	return err
}

// The mobile client sends either full RFC 3339 instants or zoneless
// local timestamps; both are accepted.
var instantLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ParseInstant parses a timestamp-like field, interpreting zoneless
// values in local time.
func ParseInstant(s string) (time.Time, error) {
	for _, layout := range instantLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("'%s' is not a valid timestamp", s)
}
