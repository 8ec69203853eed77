package holiday

import "time"

// Holiday is a collaborator-owned calendar entry.
type Holiday struct {
	ID   string
	Date time.Time
	Name string
}
