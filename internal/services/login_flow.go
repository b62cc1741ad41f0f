package services

import (
	"log"

	"github.com/avelinec/wayfarer/internal/models"
)

// SessionData is everything a client needs right after a session opens.
type SessionData struct {
	User    models.User
	Photos  []models.JournalPhoto
	Profile models.ProfileState
}

// LoginFlow ties the identity store and the journal store together for the
// few moments they must act in lockstep: opening and closing a session.
type LoginFlow struct {
	identity *IdentityService
	journal  *JournalService
}

func NewLoginFlow(identity *IdentityService, journal *JournalService) *LoginFlow {
	return &LoginFlow{identity: identity, journal: journal}
}

func (flow *LoginFlow) Login(email string, password string) (SessionData, error) {
	user, err := flow.identity.Authenticate(email, password)
	if err != nil {
		return SessionData{}, err
	}
	return flow.open(user)
}

func (flow *LoginFlow) Register(email string, password string, name string) (SessionData, error) {
	user, err := flow.identity.CreateUser(email, password, name)
	if err != nil {
		return SessionData{}, err
	}
	return flow.open(user)
}

// Resume restores the session persisted across restarts, if any.
func (flow *LoginFlow) Resume() (SessionData, bool) {
	user, ok := flow.identity.CurrentUser()
	if !ok {
		return SessionData{}, false
	}

	data, err := flow.open(user)
	if err != nil {
		return SessionData{}, false
	}
	return data, true
}

func (flow *LoginFlow) Logout() error {
	return flow.identity.ClearCurrentUser()
}

// open persists the session pointer, runs the one-time legacy migration and
// loads the user's journal, with the profile synced from the user record.
func (flow *LoginFlow) open(user models.User) (SessionData, error) {
	if err := flow.identity.SetCurrentUser(user); err != nil {
		return SessionData{}, err
	}

	if err := flow.journal.MigrateLegacyData(user.ID); err != nil {
		log.Printf("login: legacy data migration failed: %v", err)
	}

	photos, profile := flow.journal.Load(user.ID)
	return SessionData{
		User:    user,
		Photos:  photos,
		Profile: syncProfileWithUser(profile, user),
	}, nil
}

// syncProfileWithUser prefers the user record's name and avatar over the
// stored profile, falling back field by field.
func syncProfileWithUser(profile models.ProfileState, user models.User) models.ProfileState {
	if user.Name != "" {
		profile.Name = user.Name
	}
	if user.AvatarURI != "" {
		avatar := user.AvatarURI
		profile.AvatarURI = &avatar
	}
	return profile
}
