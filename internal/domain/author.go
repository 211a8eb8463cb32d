package domain

import "time"

// Author is a book author referenced by items. Authors are maintained
// out-of-band; the API only reads them.
type Author struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}
