package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/acquaint/internal/domain"
)

// MemoryGallery is a GalleryStore held in process memory (STORE_TYPE=memory)
type MemoryGallery struct {
	mu      sync.RWMutex
	entries map[uuid.UUID][]domain.Acquaintance
	now     func() time.Time
}

func NewMemoryGallery() *MemoryGallery {
	return &MemoryGallery{
		entries: make(map[uuid.UUID][]domain.Acquaintance),
		now:     time.Now,
	}
}

func (m *MemoryGallery) Create(ctx context.Context, a *domain.Acquaintance) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.entries[a.UserID] {
		if existing.Name == a.Name {
			return domain.ErrDuplicateName
		}
	}

	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	a.AddedAt = m.now().UTC()

	m.entries[a.UserID] = append(m.entries[a.UserID], cloneAcquaintance(*a))
	return nil
}

func (m *MemoryGallery) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Acquaintance, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	stored := m.entries[userID]
	gallery := make([]domain.Acquaintance, len(stored))
	for i := range stored {
		gallery[i] = cloneAcquaintance(stored[i])
	}
	return gallery, nil
}

func (m *MemoryGallery) GetByName(ctx context.Context, userID uuid.UUID, name string) (*domain.Acquaintance, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, a := range m.entries[userID] {
		if a.Name == name {
			found := cloneAcquaintance(a)
			return &found, nil
		}
	}
	return nil, domain.ErrAcquaintanceNotFound
}

func (m *MemoryGallery) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	stored := m.entries[userID]
	for i, a := range stored {
		if a.ID == id {
			m.entries[userID] = append(stored[:i:i], stored[i+1:]...)
			return nil
		}
	}
	return domain.ErrAcquaintanceNotFound
}

func cloneAcquaintance(a domain.Acquaintance) domain.Acquaintance {
	a.Embedding = append([]float64(nil), a.Embedding...)
	return a
}

// MemoryUsers is a UserStore held in process memory
type MemoryUsers struct {
	mu    sync.RWMutex
	users []domain.User
}

func NewMemoryUsers() *MemoryUsers {
	return &MemoryUsers{}
}

func (m *MemoryUsers) Create(ctx context.Context, u *domain.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.users {
		if existing.Email == u.Email {
			return domain.ErrEmailTaken
		}
		if existing.Username == u.Username {
			return domain.ErrUsernameTaken
		}
	}

	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	u.CreatedAt = time.Now().UTC()
	m.users = append(m.users, *u)
	return nil
}

func (m *MemoryUsers) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.find(ctx, func(u domain.User) bool { return u.Email == email })
}

func (m *MemoryUsers) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return m.find(ctx, func(u domain.User) bool { return u.ID == id })
}

func (m *MemoryUsers) find(ctx context.Context, match func(domain.User) bool) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if match(u) {
			found := u
			return &found, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

var (
	_ GalleryStore = (*MemoryGallery)(nil)
	_ UserStore    = (*MemoryUsers)(nil)
)
