package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"publicator/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerMediaRepository implements MediaRepository using BadgerDB
type BadgerMediaRepository struct {
	db *badger.DB
}

// NewBadgerMediaRepository creates a new BadgerMediaRepository
func NewBadgerMediaRepository(db *badger.DB) *BadgerMediaRepository {
	return &BadgerMediaRepository{db: db}
}

// Create stores a new media. The identity index is checked and written in the
// same transaction, so two concurrent creates of one pair cannot both commit.
func (r *BadgerMediaRepository) Create(ctx context.Context, media *models.Media) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	media.BeforeCreate(time.Now())
	if err := media.Validate(); err != nil {
		return fmt.Errorf("invalid media: %w", err)
	}

	return update(r.db, func(txn *badger.Txn) error {
		idxKey := mediaIdentityKey(media.Title, media.Username)
		taken, err := exists(txn, idxKey)
		if err != nil {
			return err
		}
		if taken {
			return ErrDuplicate
		}

		id, err := getNextID(txn, MediaSeqKey)
		if err != nil {
			return err
		}
		media.ID = id

		if err := putEntity(txn, entityKey(MediaKeyPrefix, id), media); err != nil {
			return err
		}
		return txn.Set(idxKey, encodeUint(uint64(id)))
	})
}

// GetByID retrieves a media by ID
func (r *BadgerMediaRepository) GetByID(ctx context.Context, id int) (*models.Media, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var media models.Media
	err := r.db.View(func(txn *badger.Txn) error {
		return getEntity(txn, entityKey(MediaKeyPrefix, id), &media)
	})
	if err != nil {
		return nil, err
	}
	return &media, nil
}

// FindByIdentity looks a media up through the (title, username) index
func (r *BadgerMediaRepository) FindByIdentity(ctx context.Context, title, username string) (*models.Media, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var media models.Media
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(mediaIdentityKey(title, username))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		var id uint64
		if err := item.Value(func(val []byte) error {
			id, err = decodeUint(string(item.Key()), val)
			return err
		}); err != nil {
			return err
		}
		return getEntity(txn, entityKey(MediaKeyPrefix, int(id)), &media)
	})
	if err != nil {
		return nil, err
	}
	return &media, nil
}

// List retrieves every media ordered by id
func (r *BadgerMediaRepository) List(ctx context.Context) ([]*models.Media, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	medias := []*models.Media{}
	err := r.db.View(func(txn *badger.Txn) error {
		return scanPrefix(txn, MediaKeyPrefix, func(val []byte) error {
			var media models.Media
			if err := unmarshalEntity(val, &media); err != nil {
				return fmt.Errorf("failed to unmarshal media: %w", err)
			}
			medias = append(medias, &media)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sortByID(medias, func(m *models.Media) int { return m.ID })
	return medias, nil
}

// Update updates an existing media, moving its identity index entry when the
// title or username changed
func (r *BadgerMediaRepository) Update(ctx context.Context, media *models.Media) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := media.Validate(); err != nil {
		return fmt.Errorf("invalid media: %w", err)
	}

	return update(r.db, func(txn *badger.Txn) error {
		key := entityKey(MediaKeyPrefix, media.ID)

		// Verify media exists
		var existing models.Media
		if err := getEntity(txn, key, &existing); err != nil {
			return err
		}

		if !existing.SameIdentity(media.Title, media.Username) {
			newIdx := mediaIdentityKey(media.Title, media.Username)
			taken, err := exists(txn, newIdx)
			if err != nil {
				return err
			}
			if taken {
				return ErrDuplicate
			}
			if err := txn.Delete(mediaIdentityKey(existing.Title, existing.Username)); err != nil {
				return err
			}
			if err := txn.Set(newIdx, encodeUint(uint64(media.ID))); err != nil {
				return err
			}
		}

		return putEntity(txn, key, media)
	})
}

// Delete removes a media unless a publication still references it
func (r *BadgerMediaRepository) Delete(ctx context.Context, id int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return update(r.db, func(txn *badger.Txn) error {
		key := entityKey(MediaKeyPrefix, id)

		var existing models.Media
		if err := getEntity(txn, key, &existing); err != nil {
			return err
		}

		refs, err := refCount(txn, mediaRefPrefix, id)
		if err != nil {
			return err
		}
		if refs > 0 {
			return ErrReferenced
		}

		if err := txn.Delete(mediaIdentityKey(existing.Title, existing.Username)); err != nil {
			return err
		}
		return txn.Delete(key)
	})
}
