package domain

// Pagination bounds for staging listings.
const (
	DefaultListLimit = 50
	MaxListLimit     = 500
)

// ListFilter selects a page of staging records. ReviewStatus is an exact
// match, ExternalRef a case-insensitive substring match; both optional.
type ListFilter struct {
	ReviewStatus *ReviewStatus
	ExternalRef  string
	Limit        int
	Offset       int
}

// Normalize clamps pagination into the supported window: limit in
// [1,500] defaulting to 50, offset non-negative.
func (f *ListFilter) Normalize() {
	if f.Limit <= 0 {
		f.Limit = DefaultListLimit
	}
	if f.Limit > MaxListLimit {
		f.Limit = MaxListLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
}
