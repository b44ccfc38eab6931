package mock

import (
	"context"
	"sync"

	"publicator/app/models"
	"publicator/app/repositories"
)

// Store is an in-memory backend for the three repositories. One mutex guards
// all maps so cross-entity checks behave like a single transaction.
type Store struct {
	mutex        sync.RWMutex
	medias       map[int]models.Media
	posts        map[int]models.Post
	publications map[int]models.Publication
	nextMediaID  int
	nextPostID   int
	nextPubID    int
	failWith     error
}

func NewStore() *Store {
	s := &Store{}
	s.Clear()
	return s
}

// Clear drops all records and resets the id sequences
func (s *Store) Clear() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.medias = make(map[int]models.Media)
	s.posts = make(map[int]models.Post)
	s.publications = make(map[int]models.Publication)
	s.nextMediaID = 1
	s.nextPostID = 1
	s.nextPubID = 1
}

// FailWith makes every subsequent call return err. Pass nil to recover.
func (s *Store) FailWith(err error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.failWith = err
}

func (s *Store) Medias() *MediaRepository { return &MediaRepository{s: s} }

func (s *Store) Posts() *PostRepository { return &PostRepository{s: s} }

func (s *Store) Publications() *PublicationRepository { return &PublicationRepository{s: s} }

func (s *Store) check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.failWith
}

func (s *Store) referenced(mediaID, postID int) bool {
	for _, p := range s.publications {
		if (mediaID != 0 && p.MediaID == mediaID) || (postID != 0 && p.PostID == postID) {
			return true
		}
	}
	return false
}

func (s *Store) ensureReferences(mediaID, postID int) error {
	if _, ok := s.medias[mediaID]; !ok {
		return &repositories.MissingReferenceError{Entity: "media", ID: mediaID}
	}
	if _, ok := s.posts[postID]; !ok {
		return &repositories.MissingReferenceError{Entity: "post", ID: postID}
	}
	return nil
}

// MediaRepository implementation
type MediaRepository struct {
	s *Store
}

func (m *MediaRepository) Create(ctx context.Context, media *models.Media) error {
	m.s.mutex.Lock()
	defer m.s.mutex.Unlock()
	if err := m.s.check(ctx); err != nil {
		return err
	}

	for _, existing := range m.s.medias {
		if existing.SameIdentity(media.Title, media.Username) {
			return repositories.ErrDuplicate
		}
	}

	media.ID = m.s.nextMediaID
	m.s.nextMediaID++
	m.s.medias[media.ID] = *media
	return nil
}

func (m *MediaRepository) GetByID(ctx context.Context, id int) (*models.Media, error) {
	m.s.mutex.RLock()
	defer m.s.mutex.RUnlock()
	if err := m.s.check(ctx); err != nil {
		return nil, err
	}

	media, exists := m.s.medias[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return &media, nil
}

func (m *MediaRepository) FindByIdentity(ctx context.Context, title, username string) (*models.Media, error) {
	m.s.mutex.RLock()
	defer m.s.mutex.RUnlock()
	if err := m.s.check(ctx); err != nil {
		return nil, err
	}

	for _, media := range m.s.medias {
		if media.SameIdentity(title, username) {
			return &media, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *MediaRepository) List(ctx context.Context) ([]*models.Media, error) {
	m.s.mutex.RLock()
	defer m.s.mutex.RUnlock()
	if err := m.s.check(ctx); err != nil {
		return nil, err
	}

	medias := []*models.Media{}
	for id := 1; id < m.s.nextMediaID; id++ {
		if media, exists := m.s.medias[id]; exists {
			medias = append(medias, &media)
		}
	}
	return medias, nil
}

func (m *MediaRepository) Update(ctx context.Context, media *models.Media) error {
	m.s.mutex.Lock()
	defer m.s.mutex.Unlock()
	if err := m.s.check(ctx); err != nil {
		return err
	}

	if _, exists := m.s.medias[media.ID]; !exists {
		return repositories.ErrNotFound
	}
	for id, existing := range m.s.medias {
		if id != media.ID && existing.SameIdentity(media.Title, media.Username) {
			return repositories.ErrDuplicate
		}
	}
	m.s.medias[media.ID] = *media
	return nil
}

func (m *MediaRepository) Delete(ctx context.Context, id int) error {
	m.s.mutex.Lock()
	defer m.s.mutex.Unlock()
	if err := m.s.check(ctx); err != nil {
		return err
	}

	if _, exists := m.s.medias[id]; !exists {
		return repositories.ErrNotFound
	}
	if m.s.referenced(id, 0) {
		return repositories.ErrReferenced
	}
	delete(m.s.medias, id)
	return nil
}

// PostRepository implementation
type PostRepository struct {
	s *Store
}

func (m *PostRepository) Create(ctx context.Context, post *models.Post) error {
	m.s.mutex.Lock()
	defer m.s.mutex.Unlock()
	if err := m.s.check(ctx); err != nil {
		return err
	}

	post.ID = m.s.nextPostID
	m.s.nextPostID++
	m.s.posts[post.ID] = *post
	return nil
}

func (m *PostRepository) GetByID(ctx context.Context, id int) (*models.Post, error) {
	m.s.mutex.RLock()
	defer m.s.mutex.RUnlock()
	if err := m.s.check(ctx); err != nil {
		return nil, err
	}

	post, exists := m.s.posts[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return &post, nil
}

func (m *PostRepository) List(ctx context.Context) ([]*models.Post, error) {
	m.s.mutex.RLock()
	defer m.s.mutex.RUnlock()
	if err := m.s.check(ctx); err != nil {
		return nil, err
	}

	posts := []*models.Post{}
	for id := 1; id < m.s.nextPostID; id++ {
		if post, exists := m.s.posts[id]; exists {
			posts = append(posts, &post)
		}
	}
	return posts, nil
}

func (m *PostRepository) Update(ctx context.Context, post *models.Post) error {
	m.s.mutex.Lock()
	defer m.s.mutex.Unlock()
	if err := m.s.check(ctx); err != nil {
		return err
	}

	if _, exists := m.s.posts[post.ID]; !exists {
		return repositories.ErrNotFound
	}
	m.s.posts[post.ID] = *post
	return nil
}

func (m *PostRepository) Delete(ctx context.Context, id int) error {
	m.s.mutex.Lock()
	defer m.s.mutex.Unlock()
	if err := m.s.check(ctx); err != nil {
		return err
	}

	if _, exists := m.s.posts[id]; !exists {
		return repositories.ErrNotFound
	}
	if m.s.referenced(0, id) {
		return repositories.ErrReferenced
	}
	delete(m.s.posts, id)
	return nil
}

// PublicationRepository implementation
type PublicationRepository struct {
	s *Store
}

func (m *PublicationRepository) Create(ctx context.Context, pub *models.Publication) error {
	m.s.mutex.Lock()
	defer m.s.mutex.Unlock()
	if err := m.s.check(ctx); err != nil {
		return err
	}

	if err := m.s.ensureReferences(pub.MediaID, pub.PostID); err != nil {
		return err
	}
	pub.ID = m.s.nextPubID
	m.s.nextPubID++
	m.s.publications[pub.ID] = *pub
	return nil
}

func (m *PublicationRepository) GetByID(ctx context.Context, id int) (*models.Publication, error) {
	m.s.mutex.RLock()
	defer m.s.mutex.RUnlock()
	if err := m.s.check(ctx); err != nil {
		return nil, err
	}

	pub, exists := m.s.publications[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return &pub, nil
}

func (m *PublicationRepository) List(ctx context.Context) ([]*models.Publication, error) {
	return m.listWhere(ctx, func(models.Publication) bool { return true })
}

func (m *PublicationRepository) ListByMedia(ctx context.Context, mediaID int) ([]*models.Publication, error) {
	return m.listWhere(ctx, func(p models.Publication) bool { return p.MediaID == mediaID })
}

func (m *PublicationRepository) ListByPost(ctx context.Context, postID int) ([]*models.Publication, error) {
	return m.listWhere(ctx, func(p models.Publication) bool { return p.PostID == postID })
}

func (m *PublicationRepository) listWhere(ctx context.Context, keep func(models.Publication) bool) ([]*models.Publication, error) {
	m.s.mutex.RLock()
	defer m.s.mutex.RUnlock()
	if err := m.s.check(ctx); err != nil {
		return nil, err
	}

	pubs := []*models.Publication{}
	for id := 1; id < m.s.nextPubID; id++ {
		if pub, exists := m.s.publications[id]; exists && keep(pub) {
			pubs = append(pubs, &pub)
		}
	}
	return pubs, nil
}

func (m *PublicationRepository) Update(ctx context.Context, pub *models.Publication) error {
	m.s.mutex.Lock()
	defer m.s.mutex.Unlock()
	if err := m.s.check(ctx); err != nil {
		return err
	}

	if _, exists := m.s.publications[pub.ID]; !exists {
		return repositories.ErrNotFound
	}
	if err := m.s.ensureReferences(pub.MediaID, pub.PostID); err != nil {
		return err
	}
	m.s.publications[pub.ID] = *pub
	return nil
}

func (m *PublicationRepository) Delete(ctx context.Context, id int) error {
	m.s.mutex.Lock()
	defer m.s.mutex.Unlock()
	if err := m.s.check(ctx); err != nil {
		return err
	}

	if _, exists := m.s.publications[id]; !exists {
		return repositories.ErrNotFound
	}
	delete(m.s.publications, id)
	return nil
}

var (
	_ repositories.MediaRepository       = (*MediaRepository)(nil)
	_ repositories.PostRepository        = (*PostRepository)(nil)
	_ repositories.PublicationRepository = (*PublicationRepository)(nil)
)
