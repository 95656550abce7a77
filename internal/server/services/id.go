package services

import "github.com/google/uuid"

// knownID reports whether id can possibly match a row. Ids are uuid
// columns; a malformed literal errors at the driver instead of
// returning no rows, so it is screened out before the query.
func knownID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
