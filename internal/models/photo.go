package models

// JournalPhoto is one captured photo. URI always points at a file inside the
// app-owned library; the transient capture URI is never persisted. DateISO is
// the calendar day chosen at capture time and may disagree with Timestamp near
// midnight, so it is stored rather than derived.
type JournalPhoto struct {
	ID           string  `json:"id"`
	URI          string  `json:"uri"`
	Timestamp    int64   `json:"timestamp"`
	DateISO      string  `json:"dateISO"`
	LocationName *string `json:"locationName,omitempty"`
	Title        string  `json:"title,omitempty"`
	Note         string  `json:"note,omitempty"`
}

// PhotoPatch carries a shallow field merge for a journal photo. Nil fields are
// left untouched.
type PhotoPatch struct {
	Title        *string `json:"title"`
	Note         *string `json:"note"`
	LocationName *string `json:"locationName"`
	DateISO      *string `json:"dateISO"`
}

type ProfileState struct {
	Name      string  `json:"name"`
	AvatarURI *string `json:"avatarUri"`
}

// DefaultProfile is what a user sees before editing anything, and what corrupt
// or missing profile data degrades to.
func DefaultProfile() ProfileState {
	return ProfileState{Name: "Traveler", AvatarURI: nil}
}
