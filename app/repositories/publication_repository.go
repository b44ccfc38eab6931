package repositories

import (
	"context"
	"fmt"
	"time"

	"publicator/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerPublicationRepository implements PublicationRepository using BadgerDB.
// Every write keeps the ref:media and ref:post counters in step, which is what
// media and post deletes consult.
type BadgerPublicationRepository struct {
	db *badger.DB
}

// NewBadgerPublicationRepository creates a new BadgerPublicationRepository
func NewBadgerPublicationRepository(db *badger.DB) *BadgerPublicationRepository {
	return &BadgerPublicationRepository{db: db}
}

// ensureReferences fails with a MissingReferenceError when the media or post is absent
func ensureReferences(txn *badger.Txn, mediaID, postID int) error {
	ok, err := exists(txn, entityKey(MediaKeyPrefix, mediaID))
	if err != nil {
		return err
	}
	if !ok {
		return &MissingReferenceError{Entity: "media", ID: mediaID}
	}

	ok, err = exists(txn, entityKey(PostKeyPrefix, postID))
	if err != nil {
		return err
	}
	if !ok {
		return &MissingReferenceError{Entity: "post", ID: postID}
	}
	return nil
}

// Create creates a new publication
func (r *BadgerPublicationRepository) Create(ctx context.Context, pub *models.Publication) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	pub.BeforeCreate(time.Now())
	if err := pub.Validate(); err != nil {
		return fmt.Errorf("invalid publication: %w", err)
	}

	return update(r.db, func(txn *badger.Txn) error {
		if err := ensureReferences(txn, pub.MediaID, pub.PostID); err != nil {
			return err
		}

		id, err := getNextID(txn, PublicationSeqKey)
		if err != nil {
			return err
		}
		pub.ID = id

		if err := putEntity(txn, entityKey(PublicationKeyPrefix, id), pub); err != nil {
			return err
		}
		if err := addRef(txn, mediaRefPrefix, pub.MediaID, 1); err != nil {
			return err
		}
		return addRef(txn, postRefPrefix, pub.PostID, 1)
	})
}

// GetByID retrieves a publication by ID
func (r *BadgerPublicationRepository) GetByID(ctx context.Context, id int) (*models.Publication, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var pub models.Publication
	err := r.db.View(func(txn *badger.Txn) error {
		return getEntity(txn, entityKey(PublicationKeyPrefix, id), &pub)
	})
	if err != nil {
		return nil, err
	}
	return &pub, nil
}

// List retrieves every publication ordered by id
func (r *BadgerPublicationRepository) List(ctx context.Context) ([]*models.Publication, error) {
	return r.listWhere(ctx, func(*models.Publication) bool { return true })
}

// ListByMedia retrieves the publications of a media
func (r *BadgerPublicationRepository) ListByMedia(ctx context.Context, mediaID int) ([]*models.Publication, error) {
	return r.listWhere(ctx, func(p *models.Publication) bool { return p.MediaID == mediaID })
}

// ListByPost retrieves the publications of a post
func (r *BadgerPublicationRepository) ListByPost(ctx context.Context, postID int) ([]*models.Publication, error) {
	return r.listWhere(ctx, func(p *models.Publication) bool { return p.PostID == postID })
}

func (r *BadgerPublicationRepository) listWhere(ctx context.Context, keep func(*models.Publication) bool) ([]*models.Publication, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pubs := []*models.Publication{}
	err := r.db.View(func(txn *badger.Txn) error {
		return scanPrefix(txn, PublicationKeyPrefix, func(val []byte) error {
			var pub models.Publication
			if err := unmarshalEntity(val, &pub); err != nil {
				return fmt.Errorf("failed to unmarshal publication: %w", err)
			}
			if keep(&pub) {
				pubs = append(pubs, &pub)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sortByID(pubs, func(p *models.Publication) int { return p.ID })
	return pubs, nil
}

// Update updates an existing publication, moving reference counters when it
// switches media or post
func (r *BadgerPublicationRepository) Update(ctx context.Context, pub *models.Publication) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := pub.Validate(); err != nil {
		return fmt.Errorf("invalid publication: %w", err)
	}

	return update(r.db, func(txn *badger.Txn) error {
		key := entityKey(PublicationKeyPrefix, pub.ID)

		var existing models.Publication
		if err := getEntity(txn, key, &existing); err != nil {
			return err
		}
		if err := ensureReferences(txn, pub.MediaID, pub.PostID); err != nil {
			return err
		}

		if existing.MediaID != pub.MediaID {
			if err := addRef(txn, mediaRefPrefix, existing.MediaID, -1); err != nil {
				return err
			}
			if err := addRef(txn, mediaRefPrefix, pub.MediaID, 1); err != nil {
				return err
			}
		}
		if existing.PostID != pub.PostID {
			if err := addRef(txn, postRefPrefix, existing.PostID, -1); err != nil {
				return err
			}
			if err := addRef(txn, postRefPrefix, pub.PostID, 1); err != nil {
				return err
			}
		}

		return putEntity(txn, key, pub)
	})
}

// Delete removes a publication and releases its references
func (r *BadgerPublicationRepository) Delete(ctx context.Context, id int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return update(r.db, func(txn *badger.Txn) error {
		key := entityKey(PublicationKeyPrefix, id)

		var existing models.Publication
		if err := getEntity(txn, key, &existing); err != nil {
			return err
		}

		if err := addRef(txn, mediaRefPrefix, existing.MediaID, -1); err != nil {
			return err
		}
		if err := addRef(txn, postRefPrefix, existing.PostID, -1); err != nil {
			return err
		}
		return txn.Delete(key)
	})
}
