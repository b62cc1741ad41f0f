package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/avelinec/wayfarer/internal/models"
	"github.com/avelinec/wayfarer/internal/storagekeys"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

// IdentityKV is the slice of the key/value store the identity service needs.
type IdentityKV interface {
	Get(key string) (string, bool, error)
	Set(key string, value string) error
	Delete(key string) error
}

// IdentityService persists user records and the single session pointer.
// Password digests are bcrypt and never leave this package.
type IdentityService struct {
	kv  IdentityKV
	now func() time.Time
}

func NewIdentityService(kv IdentityKV) *IdentityService {
	return &IdentityService{kv: kv, now: time.Now}
}

// CreateUser registers a new account. Email matching is a case-sensitive
// exact comparison against existing records.
func (service *IdentityService) CreateUser(email string, password string, name string) (models.User, error) {
	users, err := service.loadAllUsers()
	if err != nil {
		return models.User{}, err
	}

	for _, existing := range users {
		if existing.Email == email {
			return models.User{}, ErrDuplicateEmail
		}
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("derive password digest: %w", err)
	}

	createdAt := service.now()
	record := models.StoredUser{
		User: models.User{
			ID:        newUserID(createdAt),
			Email:     email,
			Name:      name,
			CreatedAt: createdAt.UnixMilli(),
		},
		PasswordHash: string(passwordHash),
	}

	users = append(users, record)
	if err := service.saveAllUsers(users); err != nil {
		return models.User{}, err
	}

	return record.User, nil
}

// Authenticate verifies credentials and returns the matching public profile.
func (service *IdentityService) Authenticate(email string, password string) (models.User, error) {
	users, err := service.loadAllUsers()
	if err != nil {
		return models.User{}, err
	}

	for _, record := range users {
		if record.Email != email {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(record.PasswordHash), []byte(password)) != nil {
			break
		}
		return record.User, nil
	}

	return models.User{}, ErrInvalidCredentials
}

// CurrentUser reads the persisted session pointer. No session, and a session
// blob that fails to parse, both come back as absent rather than an error.
func (service *IdentityService) CurrentUser() (models.User, bool) {
	raw, found, err := service.kv.Get(storagekeys.CurrentUser())
	if err != nil || !found {
		return models.User{}, false
	}

	var user models.User
	if json.Unmarshal([]byte(raw), &user) != nil {
		return models.User{}, false
	}
	return user, true
}

func (service *IdentityService) SetCurrentUser(user models.User) error {
	encoded, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode session user: %w", err)
	}
	return service.kv.Set(storagekeys.CurrentUser(), string(encoded))
}

func (service *IdentityService) ClearCurrentUser() error {
	return service.kv.Delete(storagekeys.CurrentUser())
}

// FindByID returns the public profile for a user id.
func (service *IdentityService) FindByID(userID string) (models.User, error) {
	users, err := service.loadAllUsers()
	if err != nil {
		return models.User{}, err
	}
	for _, record := range users {
		if record.ID == userID {
			return record.User, nil
		}
	}
	return models.User{}, ErrUserNotFound
}

// UpdateProfile applies a shallow patch to a user record. When the patched
// user is also the session user, the session copy is rewritten right after the
// ledger; a failure between the two writes leaves a stale session copy until
// the next login, which is the documented degraded state.
func (service *IdentityService) UpdateProfile(userID string, patch models.ProfilePatch) (models.User, error) {
	users, err := service.loadAllUsers()
	if err != nil {
		return models.User{}, err
	}

	index := -1
	for position, record := range users {
		if record.ID == userID {
			index = position
			break
		}
	}
	if index < 0 {
		return models.User{}, ErrUserNotFound
	}

	if patch.Name != nil {
		users[index].Name = *patch.Name
	}
	if patch.AvatarURI != nil {
		users[index].AvatarURI = *patch.AvatarURI
	}

	if err := service.saveAllUsers(users); err != nil {
		return models.User{}, err
	}

	updated := users[index].User
	if session, ok := service.CurrentUser(); ok && session.ID == userID {
		if err := service.SetCurrentUser(updated); err != nil {
			return models.User{}, fmt.Errorf("refresh session user: %w", err)
		}
	}

	return updated, nil
}

// ResetPassword replaces the stored digest for the account with the given
// email. Admin repair path; the session pointer is left alone.
func (service *IdentityService) ResetPassword(email string, newPassword string) error {
	users, err := service.loadAllUsers()
	if err != nil {
		return err
	}

	for index := range users {
		if users[index].Email != email {
			continue
		}

		passwordHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("derive password digest: %w", err)
		}
		users[index].PasswordHash = string(passwordHash)
		return service.saveAllUsers(users)
	}

	return ErrUserNotFound
}

func (service *IdentityService) loadAllUsers() ([]models.StoredUser, error) {
	raw, found, err := service.kv.Get(storagekeys.Users())
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	if !found {
		return []models.StoredUser{}, nil
	}

	users := make([]models.StoredUser, 0)
	if err := json.Unmarshal([]byte(raw), &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return users, nil
}

func (service *IdentityService) saveAllUsers(users []models.StoredUser) error {
	encoded, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("encode users: %w", err)
	}
	if err := service.kv.Set(storagekeys.Users(), string(encoded)); err != nil {
		return fmt.Errorf("save users: %w", err)
	}
	return nil
}

// newUserID builds a generation-ordered opaque token: ids created later sort
// after ids created earlier.
func newUserID(createdAt time.Time) string {
	return fmt.Sprintf("user_%d_%s", createdAt.UnixMilli(), uuid.NewString()[:8])
}
