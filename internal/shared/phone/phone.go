package phone

import (
	"errors"
	"strings"
)

var ErrNotDigits = errors.New("phone must contain digits only")

// Normalize validates a locally-entered phone number and prepends the country
// prefix, e.g. "11999998888" with prefix "+55" becomes "+5511999998888".
func Normalize(raw, prefix string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrNotDigits
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return "", ErrNotDigits
		}
	}
	return prefix + raw, nil
}
