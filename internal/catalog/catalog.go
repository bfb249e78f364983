// Package catalog models a user's owned fragrances and resolves free-text
// names against them.
package catalog

import (
	"fmt"
	"strings"
)

// Entry is one owned fragrance available as a match target.
type Entry struct {
	FragranceID     int64
	UserFragranceID int64
	House           string
	Name            string
	IsDecant        bool
}

// FullName returns the "house name" display form.
func (e Entry) FullName() string {
	return strings.TrimSpace(fmt.Sprintf("%s %s", e.House, e.Name))
}

// Label returns the display form with a decant marker when applicable.
func (e Entry) Label() string {
	if e.IsDecant {
		return e.FullName() + " (decant)"
	}
	return e.FullName()
}
