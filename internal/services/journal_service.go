package services

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/avelinec/wayfarer/internal/models"
	"github.com/avelinec/wayfarer/internal/storagekeys"
	"github.com/google/uuid"
)

type JournalKV interface {
	Get(key string) (string, bool, error)
	Set(key string, value string) error
	Delete(key string) error
}

// PhotoLibrary is the durable home for photo binaries.
type PhotoLibrary interface {
	SaveFromTransient(transientURI string) (string, error)
	Remove(path string) error
}

// JournalService keeps each user's photo collection and profile under
// user-scoped keys. Reads degrade to empty defaults on missing or corrupt
// data; writes are best-effort and logged.
type JournalService struct {
	kv      JournalKV
	library PhotoLibrary
}

func NewJournalService(kv JournalKV, library PhotoLibrary) *JournalService {
	return &JournalService{kv: kv, library: library}
}

// Load returns the user's photos and profile in one call.
func (service *JournalService) Load(userID string) ([]models.JournalPhoto, models.ProfileState) {
	return service.LoadPhotos(userID), service.LoadProfile(userID)
}

func (service *JournalService) LoadPhotos(userID string) []models.JournalPhoto {
	raw, found, err := service.kv.Get(storagekeys.Photos(userID))
	if err != nil || !found {
		return []models.JournalPhoto{}
	}

	photos := make([]models.JournalPhoto, 0)
	if json.Unmarshal([]byte(raw), &photos) != nil {
		return []models.JournalPhoto{}
	}
	return photos
}

func (service *JournalService) SavePhotos(userID string, photos []models.JournalPhoto) {
	encoded, err := json.Marshal(photos)
	if err != nil {
		log.Printf("journal: encode photos failed: %v", err)
		return
	}
	if err := service.kv.Set(storagekeys.Photos(userID), string(encoded)); err != nil {
		log.Printf("journal: save photos failed: %v", err)
	}
}

func (service *JournalService) LoadProfile(userID string) models.ProfileState {
	raw, found, err := service.kv.Get(storagekeys.Profile(userID))
	if err != nil || !found {
		return models.DefaultProfile()
	}

	var profile models.ProfileState
	if json.Unmarshal([]byte(raw), &profile) != nil {
		return models.DefaultProfile()
	}
	return profile
}

func (service *JournalService) SaveProfile(userID string, profile models.ProfileState) {
	encoded, err := json.Marshal(profile)
	if err != nil {
		log.Printf("journal: encode profile failed: %v", err)
		return
	}
	if err := service.kv.Set(storagekeys.Profile(userID), string(encoded)); err != nil {
		log.Printf("journal: save profile failed: %v", err)
	}
}

// MigrateLegacyData moves pre-multi-user records under the user's own keys.
// Safe to run on every login: once the legacy keys are gone it does nothing.
func (service *JournalService) MigrateLegacyData(userID string) error {
	if err := service.migrateLegacyKey(storagekeys.LegacyPhotos(), storagekeys.Photos(userID)); err != nil {
		return fmt.Errorf("migrate legacy photos: %w", err)
	}
	if err := service.migrateLegacyKey(storagekeys.LegacyProfile(), storagekeys.Profile(userID)); err != nil {
		return fmt.Errorf("migrate legacy profile: %w", err)
	}
	return nil
}

func (service *JournalService) migrateLegacyKey(legacyKey string, scopedKey string) error {
	raw, found, err := service.kv.Get(legacyKey)
	if err != nil {
		return err
	}
	if !found {
		return nil
	}

	if err := service.kv.Set(scopedKey, raw); err != nil {
		return err
	}
	return service.kv.Delete(legacyKey)
}

// AddPhoto copies the binary behind the transient capture URI into the
// library, then prepends the record with the durable URI substituted. When the
// copy fails no record is created, so the collection never references a file
// that does not exist.
func (service *JournalService) AddPhoto(userID string, photo models.JournalPhoto) (models.JournalPhoto, error) {
	durableURI, err := service.library.SaveFromTransient(photo.URI)
	if err != nil {
		return models.JournalPhoto{}, fmt.Errorf("persist photo binary: %w", err)
	}

	photo.URI = durableURI
	if photo.ID == "" {
		photo.ID = uuid.NewString()
	}

	photos := service.LoadPhotos(userID)
	service.SavePhotos(userID, append([]models.JournalPhoto{photo}, photos...))
	return photo, nil
}

// UpdatePhoto applies a shallow patch to one record. Unknown ids are a no-op.
func (service *JournalService) UpdatePhoto(userID string, photoID string, patch models.PhotoPatch) (models.JournalPhoto, bool) {
	photos := service.LoadPhotos(userID)
	for index := range photos {
		if photos[index].ID != photoID {
			continue
		}

		if patch.Title != nil {
			photos[index].Title = *patch.Title
		}
		if patch.Note != nil {
			photos[index].Note = *patch.Note
		}
		if patch.LocationName != nil {
			photos[index].LocationName = patch.LocationName
		}
		if patch.DateISO != nil {
			photos[index].DateISO = *patch.DateISO
		}

		service.SavePhotos(userID, photos)
		return photos[index], true
	}
	return models.JournalPhoto{}, false
}

// RemovePhoto deletes the metadata record only. Releasing the backing file is
// a separate, explicit call to DeletePhotoFile.
func (service *JournalService) RemovePhoto(userID string, photoID string) {
	photos := service.LoadPhotos(userID)
	remaining := make([]models.JournalPhoto, 0, len(photos))
	for _, photo := range photos {
		if photo.ID != photoID {
			remaining = append(remaining, photo)
		}
	}
	service.SavePhotos(userID, remaining)
}

// DeletePhotoFile releases a photo's backing file from the library.
func (service *JournalService) DeletePhotoFile(uri string) error {
	return service.library.Remove(uri)
}
