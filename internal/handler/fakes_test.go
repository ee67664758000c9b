package handler

import (
	"context"
	"sync"
	"time"

	"github.com/Calboot/RandomSeatGenerator/internal/model"
	"github.com/Calboot/RandomSeatGenerator/internal/repository"
	"github.com/Calboot/RandomSeatGenerator/internal/utils"
)

type fakeUsers struct {
	mu    sync.Mutex
	users []model.User
}

func (f *fakeUsers) Create(_ context.Context, email, password, role string, cost int) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return 0, repository.ErrEmailExists
		}
	}
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	id := uint64(len(f.users) + 1)
	f.users = append(f.users, model.User{ID: id, Email: email, PasswordHash: hash, Role: role, IsActive: true})
	return id, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

func (f *fakeUsers) GetByID(_ context.Context, id uint64) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

type fakeToken struct {
	userID  uint64
	exp     time.Time
	revoked bool
}

type fakeTokens struct {
	mu     sync.Mutex
	tokens map[string]*fakeToken
}

func newFakeTokens() *fakeTokens { return &fakeTokens{tokens: map[string]*fakeToken{}} }

func (f *fakeTokens) StoreRefresh(_ context.Context, userID uint64, hash string, exp time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens[hash] = &fakeToken{userID: userID, exp: exp}
	return nil
}

func (f *fakeTokens) ValidateRefresh(_ context.Context, hash string, now time.Time) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tokens[hash]
	if !ok || t.revoked || now.After(t.exp) {
		return 0, repository.ErrNotFound
	}
	return t.userID, nil
}

func (f *fakeTokens) RevokeByHash(_ context.Context, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t, ok := f.tokens[hash]; ok {
		t.revoked = true
	}
	return nil
}

func (f *fakeTokens) RevokeAllForUser(_ context.Context, userID uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.tokens {
		if t.userID == userID {
			t.revoked = true
		}
	}
	return nil
}

func (f *fakeTokens) active(userID uint64) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, t := range f.tokens {
		if t.userID == userID && !t.revoked {
			n++
		}
	}
	return n
}

type fakeConfigs struct {
	mu      sync.Mutex
	configs []*model.SeatingConfig
}

func (f *fakeConfigs) find(id, ownerID uint64) (int, bool) {
	for i, c := range f.configs {
		if c.ID == id && c.OwnerID == ownerID {
			return i, true
		}
	}
	return 0, false
}

func (f *fakeConfigs) nameTaken(ownerID, id uint64, name string) bool {
	for _, c := range f.configs {
		if c.OwnerID == ownerID && c.ID != id && c.Name == name {
			return true
		}
	}
	return false
}

func (f *fakeConfigs) Create(_ context.Context, cfg *model.SeatingConfig) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.nameTaken(cfg.OwnerID, 0, cfg.Name) {
		return repository.ErrConflict
	}
	cfg.ID = uint64(len(f.configs) + 1)
	cfg.CreatedAt = time.Now().UTC()
	cfg.UpdatedAt = cfg.CreatedAt
	stored := *cfg
	f.configs = append(f.configs, &stored)
	return nil
}

func (f *fakeConfigs) GetByIDAndOwner(_ context.Context, id, ownerID uint64) (*model.SeatingConfig, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i, ok := f.find(id, ownerID)
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := *f.configs[i]
	return &c, nil
}

func (f *fakeConfigs) ListByOwner(_ context.Context, ownerID uint64) ([]*model.SeatingConfig, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*model.SeatingConfig{}
	for i := len(f.configs) - 1; i >= 0; i-- {
		if f.configs[i].OwnerID == ownerID {
			c := *f.configs[i]
			out = append(out, &c)
		}
	}
	return out, nil
}

func (f *fakeConfigs) UpdateByIDAndOwner(_ context.Context, cfg *model.SeatingConfig) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	i, ok := f.find(cfg.ID, cfg.OwnerID)
	if !ok {
		return repository.ErrNotFound
	}
	if f.nameTaken(cfg.OwnerID, cfg.ID, cfg.Name) {
		return repository.ErrConflict
	}
	f.configs[i].Name = cfg.Name
	f.configs[i].Raw = cfg.Raw
	f.configs[i].UpdatedAt = time.Now().UTC()
	return nil
}

func (f *fakeConfigs) DeleteByIDAndOwner(_ context.Context, id, ownerID uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	i, ok := f.find(id, ownerID)
	if !ok {
		return repository.ErrNotFound
	}
	f.configs = append(f.configs[:i], f.configs[i+1:]...)
	return nil
}

type fakeHistory struct {
	mu   sync.Mutex
	gens []*model.Generation
}

func (f *fakeHistory) Create(_ context.Context, g *model.Generation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	g.ID = uint64(len(f.gens) + 1)
	f.gens = append(f.gens, g)
	return nil
}

func (f *fakeHistory) ListByConfig(_ context.Context, configID, ownerID uint64, limit int) ([]*model.Generation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*model.Generation{}
	for i := len(f.gens) - 1; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
		if g := f.gens[i]; g.ConfigID == configID && g.OwnerID == ownerID {
			out = append(out, g)
		}
	}
	return out, nil
}

type fakePinger struct{ err error }

func (p fakePinger) PingContext(context.Context) error { return p.err }
