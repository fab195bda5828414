package scheduleRepo

import (
	"context"
	"sort"
	"sync"

	"roombook/models"
)

// MemoryScheduleRepo is an in-memory schedule store used for tests and for
// running without MongoDB.
type MemoryScheduleRepo struct {
	mu       sync.RWMutex
	bookings map[string]models.Booking
}

func NewMemoryScheduleRepo() *MemoryScheduleRepo {
	return &MemoryScheduleRepo{bookings: make(map[string]models.Booking)}
}

func (repo *MemoryScheduleRepo) Insert(ctx context.Context, booking *models.Booking) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	repo.bookings[booking.ID] = *booking
	return nil
}

func (repo *MemoryScheduleRepo) Delete(ctx context.Context, bookingID string) (bool, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, ok := repo.bookings[bookingID]; !ok {
		return false, nil
	}
	delete(repo.bookings, bookingID)
	return true, nil
}

func (repo *MemoryScheduleRepo) FindByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	if b, ok := repo.bookings[bookingID]; ok {
		booking := b
		return &booking, nil
	}
	return nil, nil
}

func (repo *MemoryScheduleRepo) ListForRoomDate(ctx context.Context, roomID, date string) ([]models.Booking, error) {
	return repo.List(ctx, Filter{RoomID: roomID, Date: date})
}

func (repo *MemoryScheduleRepo) List(ctx context.Context, filter Filter) ([]models.Booking, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	var out []models.Booking
	for _, b := range repo.bookings {
		if filter.RoomID != "" && b.RoomID != filter.RoomID {
			continue
		}
		if filter.Date != "" && b.Date != filter.Date {
			continue
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].StartTime < out[j].StartTime
	})
	return out, nil
}
