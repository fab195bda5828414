package booking

import (
	"context"
	"fmt"
	"sync"
	"time"

	roomRepo "roombook/database/repository/room"
	scheduleRepo "roombook/database/repository/schedule"
	"roombook/models"
	"roombook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultCommitEngine implements CommitService. Conflict-check-and-insert is
// serialized per (room_id, date) key; commits against different rooms or
// dates never block each other.
type DefaultCommitEngine struct {
	Rooms    roomRepo.RoomRepository
	Schedule scheduleRepo.ScheduleRepository

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewCommitEngine(rooms roomRepo.RoomRepository, schedule scheduleRepo.ScheduleRepository) *DefaultCommitEngine {
	return &DefaultCommitEngine{
		Rooms:    rooms,
		Schedule: schedule,
		locks:    make(map[string]*sync.Mutex),
	}
}

// keyLock returns the mutex guarding one (room, date) schedule key.
func (e *DefaultCommitEngine) keyLock(roomID, date string) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()

	key := roomID + "|" + date
	lock, ok := e.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		e.locks[key] = lock
	}
	return lock
}

// Commit validates the input, checks the (room, date) schedule for overlaps
// and inserts the booking as one logically atomic step. On overlap it
// returns a *ConflictError carrying the colliding interval.
func (e *DefaultCommitEngine) Commit(ctx context.Context, in CommitInput) (*models.Booking, error) {
	logger := utils.GetLogger()

	if err := validateCommitInput(in); err != nil {
		return nil, err
	}

	// Canonicalize clocks to zero-padded HH:MM so interval comparisons are
	// plain string comparisons.
	startMin, _ := ClockToMinutes(in.StartTime)
	in.StartTime = MinutesToClock(startMin)
	if in.EndTime == "" {
		in.EndTime = MinutesToClock(startMin + 60)
	} else {
		endMin, _ := ClockToMinutes(in.EndTime)
		in.EndTime = MinutesToClock(endMin)
	}

	room, err := e.Rooms.FindByID(ctx, in.RoomID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up room %s: %w", in.RoomID, err)
	}
	if room == nil {
		return nil, &NotFoundError{Kind: "room", ID: in.RoomID}
	}

	lock := e.keyLock(in.RoomID, in.Date)
	lock.Lock()
	defer lock.Unlock()

	existing, err := e.Schedule.ListForRoomDate(ctx, in.RoomID, in.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to load schedule for room %s on %s: %w", in.RoomID, in.Date, err)
	}
	for _, b := range existing {
		if b.Overlaps(in.StartTime, in.EndTime) {
			logger.Info("Booking conflict detected",
				zap.String("roomID", in.RoomID),
				zap.String("date", in.Date),
				zap.String("requested", in.StartTime+"-"+in.EndTime),
				zap.String("existing", b.StartTime+"-"+b.EndTime))
			return nil, &ConflictError{
				BookingID: b.ID,
				RoomID:    b.RoomID,
				Date:      b.Date,
				StartTime: b.StartTime,
				EndTime:   b.EndTime,
			}
		}
	}

	booking := &models.Booking{
		ID:        uuid.NewString(),
		RoomID:    in.RoomID,
		Date:      in.Date,
		StartTime: in.StartTime,
		EndTime:   in.EndTime,
		Title:     in.Title,
		BookedBy:  in.BookedBy,
		CreatedAt: time.Now().UTC(),
	}
	if err := e.Schedule.Insert(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to persist booking: %w", err)
	}

	logger.Info("Booking committed",
		zap.String("bookingID", booking.ID),
		zap.String("roomID", booking.RoomID),
		zap.String("date", booking.Date),
		zap.String("interval", booking.StartTime+"-"+booking.EndTime))
	return booking, nil
}

// Cancel removes a booking. Cancelling an unknown ID returns *NotFoundError
// so double-cancels are detectable.
func (e *DefaultCommitEngine) Cancel(ctx context.Context, bookingID string) error {
	deleted, err := e.Schedule.Delete(ctx, bookingID)
	if err != nil {
		return fmt.Errorf("failed to cancel booking %s: %w", bookingID, err)
	}
	if !deleted {
		return &NotFoundError{Kind: "booking", ID: bookingID}
	}
	utils.GetLogger().Info("Booking cancelled", zap.String("bookingID", bookingID))
	return nil
}

// List returns bookings matching the optional room/date filter, sorted by
// (date, start_time) and enriched with the room name.
func (e *DefaultCommitEngine) List(ctx context.Context, roomID, date string) ([]BookingView, error) {
	bookings, err := e.Schedule.List(ctx, scheduleRepo.Filter{RoomID: roomID, Date: date})
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	names := make(map[string]string)
	views := make([]BookingView, 0, len(bookings))
	for _, b := range bookings {
		name, ok := names[b.RoomID]
		if !ok {
			room, err := e.Rooms.FindByID(ctx, b.RoomID)
			if err != nil {
				return nil, fmt.Errorf("failed to look up room %s: %w", b.RoomID, err)
			}
			if room != nil {
				name = room.Name
			}
			names[b.RoomID] = name
		}
		views = append(views, BookingView{Booking: b, RoomName: name})
	}
	return views, nil
}
