// Package storagekeys is the single place that maps an entity kind and a user
// id to a storage key. Photo and profile records are isolated per user; users,
// the session pointer and the to-do ledger are app-wide.
package storagekeys

const (
	usersKey       = "users"
	currentUserKey = "current_user"
	todosKey       = "todos"

	photosPrefix  = "photos_"
	profilePrefix = "profile_"

	legacyPhotosKey  = "photos"
	legacyProfileKey = "profile"
)

func Users() string {
	return usersKey
}

func CurrentUser() string {
	return currentUserKey
}

// Todos is deliberately not parameterized by user: the ledger belongs to the
// app install, not to an account.
func Todos() string {
	return todosKey
}

func Photos(userID string) string {
	return photosPrefix + userID
}

func Profile(userID string) string {
	return profilePrefix + userID
}

// LegacyPhotos and LegacyProfile are the pre-multi-user keys. They only exist
// on installs that predate accounts and are deleted once migrated.
func LegacyPhotos() string {
	return legacyPhotosKey
}

func LegacyProfile() string {
	return legacyProfileKey
}
