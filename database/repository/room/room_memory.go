package roomRepo

import (
	"context"
	"sort"
	"strings"
	"sync"

	"roombook/models"
)

// MemoryRoomRepo is an in-memory room directory used for tests and for
// running without MongoDB. Safe for concurrent readers.
type MemoryRoomRepo struct {
	mu    sync.RWMutex
	rooms map[string]models.Room
}

func NewMemoryRoomRepo() *MemoryRoomRepo {
	return &MemoryRoomRepo{rooms: make(map[string]models.Room)}
}

func (repo *MemoryRoomRepo) List(ctx context.Context) ([]models.Room, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	out := make([]models.Room, 0, len(repo.rooms))
	for _, r := range repo.rooms {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (repo *MemoryRoomRepo) FindByID(ctx context.Context, id string) (*models.Room, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	if r, ok := repo.rooms[id]; ok {
		room := r
		return &room, nil
	}
	return nil, nil
}

func (repo *MemoryRoomRepo) FindByName(ctx context.Context, name string) (*models.Room, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	for _, r := range repo.rooms {
		if strings.EqualFold(r.Name, name) {
			room := r
			return &room, nil
		}
	}
	return nil, nil
}

func (repo *MemoryRoomRepo) Seed(ctx context.Context, rooms []models.Room) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, r := range rooms {
		repo.rooms[r.ID] = r
	}
	return nil
}
