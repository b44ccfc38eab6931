package repositories

import (
	"fmt"
	"io"
	"sync"

	"github.com/dgraph-io/badger/v4"
)

// Repository owns the badger database backing the three gateways and the
// maintenance operations used by the CLI.
type Repository struct {
	db     *badger.DB
	mutex  sync.RWMutex
	dbPath string

	medias       *BadgerMediaRepository
	posts        *BadgerPostRepository
	publications *BadgerPublicationRepository
}

// NewRepository opens the badger database at path. An empty path opens an
// in-memory database, which is what the tests use.
func NewRepository(path string) (*Repository, error) {
	opts := badger.DefaultOptions(path).
		WithLogger(nil).
		WithNumVersionsToKeep(1)
	if path == "" {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %q: %w", path, err)
	}
	return newRepository(db, path), nil
}

// NewRepositoryWithDB wraps an already opened database
func NewRepositoryWithDB(db *badger.DB) *Repository {
	return newRepository(db, "")
}

func newRepository(db *badger.DB, path string) *Repository {
	return &Repository{
		db:           db,
		dbPath:       path,
		medias:       NewBadgerMediaRepository(db),
		posts:        NewBadgerPostRepository(db),
		publications: NewBadgerPublicationRepository(db),
	}
}

func (r *Repository) Medias() *BadgerMediaRepository { return r.medias }

func (r *Repository) Posts() *BadgerPostRepository { return r.posts }

func (r *Repository) Publications() *BadgerPublicationRepository { return r.publications }

// Path returns the on-disk location, empty for in-memory databases
func (r *Repository) Path() string { return r.dbPath }

func (r *Repository) Close() error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.db.Close()
}

// Backup writes a full badger backup to w and returns the version it covers
func (r *Repository) Backup(w io.Writer) (uint64, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	version, err := r.db.Backup(w, 0)
	if err != nil {
		return 0, fmt.Errorf("backup database: %w", err)
	}
	return version, nil
}

// Restore loads a backup produced by Backup into the database
func (r *Repository) Restore(src io.Reader) (err error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic occurred during restore: %v", rec)
		}
	}()
	if err := r.db.Load(src, 4); err != nil {
		return fmt.Errorf("restore database: %w", err)
	}
	return nil
}

// Clear drops every key, sequences and indexes included
func (r *Repository) Clear() error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.db.DropAll()
}

var (
	_ MediaRepository       = (*BadgerMediaRepository)(nil)
	_ PostRepository        = (*BadgerPostRepository)(nil)
	_ PublicationRepository = (*BadgerPublicationRepository)(nil)
)
