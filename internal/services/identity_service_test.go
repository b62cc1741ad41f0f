package services

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/avelinec/wayfarer/internal/models"
	"github.com/avelinec/wayfarer/internal/storagekeys"
)

func TestCreateUserThenAuthenticate(t *testing.T) {
	service := NewIdentityService(openTestKV(t))

	created, err := service.CreateUser("maya@example.com", "StrongPass.123", "Maya")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if created.ID == "" || created.Email != "maya@example.com" || created.Name != "Maya" {
		t.Fatalf("unexpected created user: %+v", created)
	}
	if created.CreatedAt == 0 {
		t.Fatal("expected CreatedAt to be set")
	}

	authenticated, err := service.Authenticate("maya@example.com", "StrongPass.123")
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if authenticated.ID != created.ID {
		t.Fatalf("authenticated id %q, want %q", authenticated.ID, created.ID)
	}

	encoded, err := json.Marshal(authenticated)
	if err != nil {
		t.Fatalf("marshal user: %v", err)
	}
	if strings.Contains(strings.ToLower(string(encoded)), "password") {
		t.Fatalf("credential material leaked into public profile: %s", encoded)
	}
}

func TestCreateUserRejectsDuplicateEmail(t *testing.T) {
	kv := openTestKV(t)
	service := NewIdentityService(kv)

	if _, err := service.CreateUser("maya@example.com", "StrongPass.123", "Maya"); err != nil {
		t.Fatalf("first CreateUser failed: %v", err)
	}
	if _, err := service.CreateUser("maya@example.com", "OtherPass.456x", "Imposter"); !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}

	raw, found, err := kv.Get(storagekeys.Users())
	if err != nil || !found {
		t.Fatalf("load users key: found=%v err=%v", found, err)
	}
	var users []models.StoredUser
	if err := json.Unmarshal([]byte(raw), &users); err != nil {
		t.Fatalf("decode users: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("expected 1 stored user after duplicate attempt, got %d", len(users))
	}
}

func TestCreateUserEmailMatchIsCaseSensitive(t *testing.T) {
	service := NewIdentityService(openTestKV(t))

	if _, err := service.CreateUser("maya@example.com", "StrongPass.123", "Maya"); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if _, err := service.CreateUser("Maya@example.com", "StrongPass.123", "Maya"); err != nil {
		t.Fatalf("expected differently-cased email to register, got %v", err)
	}
}

func TestAuthenticateRejectsWrongPasswordAndUnknownEmail(t *testing.T) {
	service := NewIdentityService(openTestKV(t))

	if _, err := service.CreateUser("maya@example.com", "StrongPass.123", "Maya"); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	if _, err := service.Authenticate("maya@example.com", "WrongPass.123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, err := service.Authenticate("nobody@example.com", "StrongPass.123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestSessionPointerRoundTrip(t *testing.T) {
	service := NewIdentityService(openTestKV(t))

	if _, ok := service.CurrentUser(); ok {
		t.Fatal("expected no session on a fresh store")
	}

	created, err := service.CreateUser("maya@example.com", "StrongPass.123", "Maya")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if err := service.SetCurrentUser(created); err != nil {
		t.Fatalf("SetCurrentUser failed: %v", err)
	}

	session, ok := service.CurrentUser()
	if !ok || session.ID != created.ID {
		t.Fatalf("expected session for %q, got ok=%v user=%+v", created.ID, ok, session)
	}

	if err := service.ClearCurrentUser(); err != nil {
		t.Fatalf("ClearCurrentUser failed: %v", err)
	}
	if _, ok := service.CurrentUser(); ok {
		t.Fatal("expected session cleared after logout")
	}
}

func TestCurrentUserTreatsCorruptBlobAsAbsent(t *testing.T) {
	kv := openTestKV(t)
	service := NewIdentityService(kv)

	if err := kv.Set(storagekeys.CurrentUser(), "{not json"); err != nil {
		t.Fatalf("seed corrupt session: %v", err)
	}
	if _, ok := service.CurrentUser(); ok {
		t.Fatal("expected corrupt session blob to read as absent")
	}
}

func TestUpdateProfilePatchesLedgerAndSession(t *testing.T) {
	service := NewIdentityService(openTestKV(t))

	created, err := service.CreateUser("maya@example.com", "StrongPass.123", "Maya")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if err := service.SetCurrentUser(created); err != nil {
		t.Fatalf("SetCurrentUser failed: %v", err)
	}

	newName := "Maya Voyage"
	avatar := "file:///photos/avatar.jpg"
	updated, err := service.UpdateProfile(created.ID, models.ProfilePatch{Name: &newName, AvatarURI: &avatar})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if updated.Name != newName || updated.AvatarURI != avatar {
		t.Fatalf("patch not applied: %+v", updated)
	}
	if updated.Email != created.Email {
		t.Fatalf("unpatched field changed: %q", updated.Email)
	}

	session, ok := service.CurrentUser()
	if !ok || session.Name != newName {
		t.Fatalf("session copy not refreshed: ok=%v session=%+v", ok, session)
	}
}

func TestUpdateProfileUnknownUser(t *testing.T) {
	service := NewIdentityService(openTestKV(t))

	name := "Nobody"
	if _, err := service.UpdateProfile("user_0_missing", models.ProfilePatch{Name: &name}); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserIDsAreGenerationOrdered(t *testing.T) {
	service := NewIdentityService(openTestKV(t))

	base := time.Date(2025, 9, 3, 10, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return base }
	first, err := service.CreateUser("first@example.com", "StrongPass.123", "First")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	service.now = func() time.Time { return base.Add(time.Second) }
	second, err := service.CreateUser("second@example.com", "StrongPass.123", "Second")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	if !(first.ID < second.ID) {
		t.Fatalf("expected ids to sort by creation order: %q then %q", first.ID, second.ID)
	}
}

func TestResetPassword(t *testing.T) {
	service := NewIdentityService(openTestKV(t))

	if _, err := service.CreateUser("maya@example.com", "StrongPass.123", "Maya"); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if err := service.ResetPassword("maya@example.com", "Replacement.456"); err != nil {
		t.Fatalf("ResetPassword failed: %v", err)
	}

	if _, err := service.Authenticate("maya@example.com", "StrongPass.123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected old password rejected, got %v", err)
	}
	if _, err := service.Authenticate("maya@example.com", "Replacement.456"); err != nil {
		t.Fatalf("expected new password accepted, got %v", err)
	}

	if err := service.ResetPassword("nobody@example.com", "Replacement.456"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
