// internal/model/group.go
package model

import "time"

// Group is a named collection of contacts. A contact may belong to
// multiple groups via the group_members join table.
type Group struct {
    ID        int       `db:"id" json:"id"`
    Name      string    `db:"name" json:"name"`
    CreatedAt time.Time `db:"created_at" json:"created_at"`
}
