package models

// User is the public profile shape returned to callers. Credential material
// never appears here.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	AvatarURI string `json:"avatarUri,omitempty"`
	CreatedAt int64  `json:"createdAt"`
}

// StoredUser is the persisted record: the public profile plus the password
// digest. Only the identity store reads or writes this shape.
type StoredUser struct {
	User
	PasswordHash string `json:"passwordHash"`
}

// ProfilePatch carries a shallow field merge for a user record. Nil fields
// are left untouched.
type ProfilePatch struct {
	Name      *string `json:"name"`
	AvatarURI *string `json:"avatarUri"`
}
