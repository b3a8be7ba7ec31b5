// internal/iecaddr/parser.go
package iecaddr

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/nucleron/yaplc/internal/model"
)

// segmentRegex matches a single path segment, e.g., `3` or `fast`.
var segmentRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Parse creates a new Address by parsing its canonical string representation.
func Parse(raw string) (*Address, error) {
	if !strings.HasPrefix(raw, prefix) {
		return nil, fmt.Errorf("address %q must start with %q", raw, prefix)
	}
	body := strings.TrimPrefix(raw, prefix)
	if len(body) < 3 {
		return nil, fmt.Errorf("address %q is too short", raw)
	}

	t, d, err := model.ParseCode(body[:2])
	if err != nil {
		return nil, fmt.Errorf("address %q: %w", raw, err)
	}

	addr := New(t, d)
	for _, segment := range strings.Split(body[2:], sep) {
		if segment == "" {
			return nil, fmt.Errorf("address %q contains an empty segment", raw)
		}
		if !segmentRegex.MatchString(segment) {
			return nil, fmt.Errorf("invalid address segment %q in %q", segment, raw)
		}
		addr.Path = append(addr.Path, segment)
	}
	return addr, nil
}
