package cli

import (
	"fmt"
	"strings"

	"shatilah/internal/catalog"
)

type unknownDayError struct {
	name string
}

func (e unknownDayError) Error() string {
	return fmt.Sprintf("unknown day: %q (want one of %s)", e.name, strings.Join(catalog.Names(), ", "))
}

type invalidIndexError struct {
	raw string
}

func (e invalidIndexError) Error() string {
	return fmt.Sprintf("invalid prayer index: %q (want a non-negative integer)", e.raw)
}
