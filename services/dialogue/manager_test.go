package dialogue

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	roomRepo "roombook/database/repository/room"
	scheduleRepo "roombook/database/repository/schedule"
	"roombook/models"
	"roombook/services/booking"
	ai "roombook/services/intelligence"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Wednesday.
var fixedNow = time.Date(2025, 1, 29, 10, 0, 0, 0, time.UTC)

type stubExtractor struct {
	extractFunc func(ctx context.Context, in ai.ExtractInput) (models.BookingDraft, error)
}

func (s *stubExtractor) Extract(ctx context.Context, in ai.ExtractInput) (models.BookingDraft, error) {
	return s.extractFunc(ctx, in)
}

func newTestStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]*models.Conversation),
		ttl:      30 * time.Minute,
		now:      func() time.Time { return fixedNow },
	}
}

type testHarness struct {
	manager *Manager
	store   *MemorySessionStore
	engine  *booking.DefaultCommitEngine
}

func newTestHarness(t *testing.T, extractor, fallback ai.Extractor) testHarness {
	t.Helper()

	rooms := roomRepo.NewMemoryRoomRepo()
	err := rooms.Seed(context.Background(), []models.Room{
		{ID: "1", Name: "Conference Room A", Capacity: 10},
		{ID: "2", Name: "Conference Room B", Capacity: 8},
		{ID: "3", Name: "Board Room", Capacity: 20},
		{ID: "4", Name: "Huddle Room", Capacity: 4},
	})
	require.NoError(t, err)

	engine := booking.NewCommitEngine(rooms, scheduleRepo.NewMemoryScheduleRepo())
	store := newTestStore()
	if extractor == nil {
		extractor = ai.NewRuleExtractor()
	}

	manager := NewManager(extractor, fallback, engine, rooms, store, 5*time.Second)
	manager.Now = func() time.Time { return fixedNow }
	return testHarness{manager: manager, store: store, engine: engine}
}

func TestConverseFullBookingFlow(t *testing.T) {
	h := newTestHarness(t, nil, nil)
	ctx := context.Background()

	// Turn 1: capacity only, conversation must ask and recommend.
	reply, err := h.manager.Converse(ctx, "", "I need a room for 5 people tomorrow")
	require.NoError(t, err)
	require.NotEmpty(t, reply.SessionID)
	assert.False(t, reply.BookingReady)
	assert.Contains(t, reply.Message, "?")
	assert.Contains(t, reply.Message, "Conference Room B")
	sessionID := reply.SessionID

	// Turn 2: gaps filled, conversation proposes and waits for confirmation.
	reply, err = h.manager.Converse(ctx, sessionID, "Board Room at 10am")
	require.NoError(t, err)
	assert.Equal(t, sessionID, reply.SessionID)
	assert.True(t, reply.BookingReady)
	assert.NotContains(t, reply.Message, "?")
	require.NotNil(t, reply.Booking)
	assert.Equal(t, "3", *reply.Booking.RoomID)
	assert.Equal(t, "2025-01-30", *reply.Booking.Date)
	assert.Equal(t, "10:00", *reply.Booking.StartTime)
	// The defaulted end time is surfaced so the caller can override it.
	require.NotNil(t, reply.Booking.EndTime)
	assert.Equal(t, "11:00", *reply.Booking.EndTime)

	// The stored draft keeps end_time open until commit.
	conv, err := h.store.Get(ctx, sessionID)
	require.NoError(t, err)
	require.NotNil(t, conv)
	assert.Equal(t, models.StateReadyToConfirm, conv.State)
	assert.Nil(t, conv.Draft.EndTime)

	// Turn 3: confirmation commits and evicts the session.
	reply, err = h.manager.Converse(ctx, sessionID, "confirm")
	require.NoError(t, err)
	require.NotNil(t, reply.Committed)
	assert.Equal(t, "Booking confirmed! Board Room on 2025-01-30 from 10:00 to 11:00.", reply.Message)
	assert.Equal(t, "3", reply.Committed.RoomID)
	assert.Equal(t, "11:00", reply.Committed.EndTime)

	conv, err = h.store.Get(ctx, sessionID)
	require.NoError(t, err)
	assert.Nil(t, conv)

	views, err := h.engine.List(ctx, "3", "2025-01-30")
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "10:00", views[0].StartTime)
}

func TestConverseConflictReturnsToGathering(t *testing.T) {
	h := newTestHarness(t, nil, nil)
	ctx := context.Background()

	_, err := h.engine.Commit(ctx, booking.CommitInput{
		RoomID: "3", Date: "2025-01-30", StartTime: "10:30", EndTime: "11:30",
	})
	require.NoError(t, err)

	reply, err := h.manager.Converse(ctx, "", "Book the Board Room tomorrow at 10am")
	require.NoError(t, err)
	require.True(t, reply.BookingReady)
	sessionID := reply.SessionID

	reply, err = h.manager.Converse(ctx, sessionID, "confirm")
	require.NoError(t, err)
	assert.Nil(t, reply.Committed)
	assert.Equal(t, "Board Room is already booked from 10:30 to 11:30 on 2025-01-30. What other time works for you?", reply.Message)

	conv, err := h.store.Get(ctx, sessionID)
	require.NoError(t, err)
	require.NotNil(t, conv)
	assert.Equal(t, models.StateGathering, conv.State)

	// The caller picks another slot and the booking goes through.
	reply, err = h.manager.Converse(ctx, sessionID, "make it 1pm")
	require.NoError(t, err)
	require.True(t, reply.BookingReady)
	assert.Equal(t, "13:00", *reply.Booking.StartTime)

	reply, err = h.manager.Converse(ctx, sessionID, "book it")
	require.NoError(t, err)
	require.NotNil(t, reply.Committed)
	assert.Equal(t, "13:00", reply.Committed.StartTime)
}

func TestConverseCancelDropsSession(t *testing.T) {
	h := newTestHarness(t, nil, nil)
	ctx := context.Background()

	reply, err := h.manager.Converse(ctx, "", "Book the Board Room tomorrow at 10am")
	require.NoError(t, err)
	sessionID := reply.SessionID

	reply, err = h.manager.Converse(ctx, sessionID, "never mind")
	require.NoError(t, err)
	assert.False(t, reply.BookingReady)
	assert.Contains(t, reply.Message, "dropped")

	conv, err := h.store.Get(ctx, sessionID)
	require.NoError(t, err)
	assert.Nil(t, conv)
}

func TestConverseBlankMessagePrompts(t *testing.T) {
	h := newTestHarness(t, nil, nil)

	reply, err := h.manager.Converse(context.Background(), "", "   ")
	require.NoError(t, err)
	assert.False(t, reply.BookingReady)
	assert.Equal(t, "What would you like to book?", reply.Message)
}

func TestConverseExtractionFailurePreservesSession(t *testing.T) {
	failing := &stubExtractor{extractFunc: func(ctx context.Context, in ai.ExtractInput) (models.BookingDraft, error) {
		return models.BookingDraft{}, errors.New("upstream down")
	}}
	h := newTestHarness(t, failing, nil)
	ctx := context.Background()

	conv := &models.Conversation{
		SessionID: "s1",
		Turns:     []models.Turn{{Role: models.RoleUser, Text: "Board Room tomorrow"}},
		Draft:     models.BookingDraft{RoomID: models.StrPtr("3")},
		State:     models.StateGathering,
		UpdatedAt: fixedNow,
	}
	require.NoError(t, h.store.Put(ctx, conv))

	reply, err := h.manager.Converse(ctx, "s1", "at 10am")
	require.NoError(t, err)
	assert.False(t, reply.BookingReady)
	assert.Equal(t, "Sorry, I couldn't process that just now. Could you say it again?", reply.Message)

	// The failed turn left no trace in the transcript.
	after, err := h.store.Get(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, after)
	assert.Len(t, after.Turns, 1)
	assert.Equal(t, models.StateGathering, after.State)
}

func TestConverseFallbackExtractorKeepsFlowAlive(t *testing.T) {
	failing := &stubExtractor{extractFunc: func(ctx context.Context, in ai.ExtractInput) (models.BookingDraft, error) {
		return models.BookingDraft{}, errors.New("rate limited")
	}}
	h := newTestHarness(t, failing, ai.NewRuleExtractor())

	reply, err := h.manager.Converse(context.Background(), "", "Book the Board Room tomorrow at 10am")
	require.NoError(t, err)
	assert.True(t, reply.BookingReady)
	require.NotNil(t, reply.Booking)
	assert.Equal(t, "3", *reply.Booking.RoomID)
}

func TestConverseConfirmWithIncompleteDraftReverts(t *testing.T) {
	h := newTestHarness(t, nil, nil)
	ctx := context.Background()

	// A session that claims readiness without a resolved room must never
	// reach the commit engine.
	conv := &models.Conversation{
		SessionID: "s2",
		Draft: models.BookingDraft{
			Date:      models.StrPtr("2025-01-30"),
			StartTime: models.StrPtr("10:00"),
		},
		State:     models.StateReadyToConfirm,
		UpdatedAt: fixedNow,
	}
	require.NoError(t, h.store.Put(ctx, conv))

	reply, err := h.manager.Converse(ctx, "s2", "yes")
	require.NoError(t, err)
	assert.Nil(t, reply.Committed)
	assert.False(t, reply.BookingReady)
	assert.Contains(t, reply.Message, "room")

	after, err := h.store.Get(ctx, "s2")
	require.NoError(t, err)
	require.NotNil(t, after)
	assert.Equal(t, models.StateGathering, after.State)

	views, err := h.engine.List(ctx, "", "")
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestConverseNeverReadyWhileClarifying(t *testing.T) {
	// A complete draft with an open clarification must not advance; the
	// question itself keeps the turn in gathering.
	clarifying := &stubExtractor{extractFunc: func(ctx context.Context, in ai.ExtractInput) (models.BookingDraft, error) {
		return models.BookingDraft{
			RoomID:              models.StrPtr("3"),
			RoomName:            models.StrPtr("Board Room"),
			Date:                models.StrPtr("2025-01-30"),
			StartTime:           models.StrPtr("10:00"),
			Confidence:          models.ConfidenceMedium,
			ClarificationNeeded: models.StrPtr("Did you mean Conference Room A or Conference Room B?"),
		}, nil
	}}
	h := newTestHarness(t, clarifying, nil)

	reply, err := h.manager.Converse(context.Background(), "", "book the conference room")
	require.NoError(t, err)
	assert.False(t, reply.BookingReady)
	assert.Contains(t, reply.Message, "?")

	conv, err := h.store.Get(context.Background(), reply.SessionID)
	require.NoError(t, err)
	require.NotNil(t, conv)
	assert.Equal(t, models.StateGathering, conv.State)
}

// No random partial draft, however the extractor labels it, may reach the
// ready state while a required field is missing or a clarification is open.
func TestConverseReadyRequiresCompleteDraft(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	maybe := func(s string) *string {
		if rng.Intn(2) == 0 {
			return nil
		}
		return models.StrPtr(s)
	}

	for i := 0; i < 100; i++ {
		draft := models.BookingDraft{
			RoomID:    maybe("3"),
			RoomName:  maybe("Board Room"),
			Date:      maybe("2025-01-30"),
			StartTime: maybe("10:00"),
		}
		if rng.Intn(3) == 0 {
			draft.ClarificationNeeded = models.StrPtr("Which room would you like?")
		}
		if draft.Complete() && draft.ClarificationNeeded == nil {
			draft.Confidence = models.ConfidenceHigh
		} else {
			draft.Confidence = models.ConfidenceLow
		}

		stub := &stubExtractor{extractFunc: func(ctx context.Context, in ai.ExtractInput) (models.BookingDraft, error) {
			return draft, nil
		}}
		h := newTestHarness(t, stub, nil)

		reply, err := h.manager.Converse(context.Background(), "", "book something")
		require.NoError(t, err)
		if reply.BookingReady {
			assert.True(t, draft.Complete())
			assert.Nil(t, draft.ClarificationNeeded)
		}
		if !draft.Complete() || draft.ClarificationNeeded != nil {
			assert.False(t, reply.BookingReady)
		}
	}
}

func TestConverseCorrectionBeforeConfirm(t *testing.T) {
	h := newTestHarness(t, nil, nil)
	ctx := context.Background()

	reply, err := h.manager.Converse(ctx, "", "Book the Board Room tomorrow at 10am")
	require.NoError(t, err)
	require.True(t, reply.BookingReady)
	sessionID := reply.SessionID

	// A correction instead of a confirmation re-opens the proposal.
	reply, err = h.manager.Converse(ctx, sessionID, "Actually make it 3pm")
	require.NoError(t, err)
	require.True(t, reply.BookingReady)
	assert.Equal(t, "15:00", *reply.Booking.StartTime)
	assert.Equal(t, "3", *reply.Booking.RoomID)

	reply, err = h.manager.Converse(ctx, sessionID, "confirm")
	require.NoError(t, err)
	require.NotNil(t, reply.Committed)
	assert.Equal(t, "15:00", reply.Committed.StartTime)
	assert.Equal(t, "16:00", reply.Committed.EndTime)
}
