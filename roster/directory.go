package roster

import (
	"strings"
	"time"

	"github.com/danielhkuo/sponsor-eval/models"
)

// Directory is an immutable sponsor lookup built from one roster fetch.
type Directory struct {
	sponsors map[string]models.SponsorEntry
	loadedAt time.Time
}

// NewDirectory wraps a normalized sponsor map. The map must not be modified afterwards.
func NewDirectory(sponsors map[string]models.SponsorEntry) *Directory {
	if sponsors == nil {
		sponsors = map[string]models.SponsorEntry{}
	}
	return &Directory{sponsors: sponsors, loadedAt: time.Now()}
}

// Lookup finds the entry for an email, ignoring case and surrounding space.
func (d *Directory) Lookup(email string) (models.SponsorEntry, bool) {
	if d == nil {
		return models.SponsorEntry{}, false
	}
	entry, ok := d.sponsors[strings.ToLower(strings.TrimSpace(email))]
	return entry, ok
}

// Len returns the number of sponsors
func (d *Directory) Len() int {
	if d == nil {
		return 0
	}
	return len(d.sponsors)
}

// Empty reports whether the directory has no sponsors. A nil Directory is empty.
func (d *Directory) Empty() bool {
	return d.Len() == 0
}

// LoadedAt returns when the directory was built
func (d *Directory) LoadedAt() time.Time {
	if d == nil {
		return time.Time{}
	}
	return d.loadedAt
}
