package ports

import "github.com/baditaflorin/go_user_registry/internal/core/domain"

// UserStore abstracts the username to record mapping owned by the registry.
type UserStore interface {
	// Insert stores rec under username unless the key is already present.
	// It reports whether the record was stored.
	Insert(username string, rec domain.User) bool

	// Lookup returns the record stored under username, if any.
	Lookup(username string) (domain.User, bool)

	// Len reports the number of stored records.
	Len() int
}
