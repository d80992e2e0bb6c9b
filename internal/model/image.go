package model

import "time"

// Image mirrors a row of the `pereval_images` table.  The payload is
// an opaque encoded blob; this service never decodes or transcodes it.
// Image rows only accumulate: neither the create nor the patch flow
// mutates or deletes existing ones.
type Image struct {
	ID        int64     // pereval_images.id
	Pereval   int64     // pereval_images.pereval (FK to pereval_add.id)
	Data      string    // pereval_images.data
	Name      string    // pereval_images.name
	DataAdded time.Time // pereval_images.data_added
}
