package dialogue

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	roomRepo "roombook/database/repository/room"
	"roombook/models"
	"roombook/services/booking"
	ai "roombook/services/intelligence"
	"roombook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Reply is one assistant turn handed back to the presentation layer.
type Reply struct {
	SessionID    string               `json:"session_id"`
	Message      string               `json:"message"`
	BookingReady bool                 `json:"booking_ready"`
	Booking      *models.BookingDraft `json:"booking_data,omitempty"`
	Committed    *models.Booking      `json:"booking,omitempty"`
}

var (
	confirmRe = regexp.MustCompile(`(?i)^\s*(?:yes|yep|yeah|sure|ok|okay|confirm|confirmed|book it|go ahead|do it|sounds good)\b[\s.!]*$`)
	cancelRe  = regexp.MustCompile(`(?i)\b(?:cancel|never\s?mind|forget it)\b`)
)

// Manager runs the per-conversation slot-filling state machine. Turns of
// one session are processed strictly in submission order (a per-session
// mutex serializes them); separate sessions proceed in parallel.
type Manager struct {
	Extractor ai.Extractor
	Fallback  ai.Extractor // used when the primary extractor fails; may be nil
	Commit    booking.CommitService
	Rooms     roomRepo.RoomRepository
	Store     SessionStore
	Timeout   time.Duration
	Now       func() time.Time // injectable reference clock for relative dates

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewManager(extractor, fallback ai.Extractor, commit booking.CommitService,
	rooms roomRepo.RoomRepository, store SessionStore, timeout time.Duration) *Manager {
	return &Manager{
		Extractor: extractor,
		Fallback:  fallback,
		Commit:    commit,
		Rooms:     rooms,
		Store:     store,
		Timeout:   timeout,
		Now:       time.Now,
		locks:     make(map[string]*sync.Mutex),
	}
}

func (m *Manager) sessionLock(sessionID string) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()

	lock, ok := m.locks[sessionID]
	if !ok {
		lock = &sync.Mutex{}
		m.locks[sessionID] = lock
	}
	return lock
}

// Converse processes one user turn. A blank sessionID starts a new
// conversation. Extraction failures never end the session; the caller is
// asked to retry with state preserved.
func (m *Manager) Converse(ctx context.Context, sessionID, message string) (Reply, error) {
	logger := utils.GetLogger()

	if strings.TrimSpace(message) == "" {
		return Reply{SessionID: sessionID, Message: "What would you like to book?", BookingReady: false}, nil
	}
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	lock := m.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	conv, err := m.Store.Get(ctx, sessionID)
	if err != nil {
		return Reply{}, fmt.Errorf("failed to load session: %w", err)
	}
	if conv == nil {
		conv = &models.Conversation{SessionID: sessionID, State: models.StateGathering}
	}

	if cancelRe.MatchString(message) {
		if err := m.Store.Delete(ctx, sessionID); err != nil {
			logger.Warn("Failed to evict cancelled session", zap.String("sessionID", sessionID), zap.Error(err))
		}
		return Reply{
			SessionID: sessionID,
			Message:   "No problem, I've dropped that booking request.",
		}, nil
	}

	if conv.State == models.StateReadyToConfirm && confirmRe.MatchString(message) {
		return m.confirm(ctx, conv, message)
	}

	draft, err := m.extract(ctx, conv, message)
	if err != nil {
		// Upstream unavailable: the turn is treated as a failed extraction
		// and the session survives untouched.
		logger.Warn("Extraction failed, asking caller to retry",
			zap.String("sessionID", sessionID), zap.Error(err))
		return Reply{
			SessionID: sessionID,
			Message:   "Sorry, I couldn't process that just now. Could you say it again?",
			Booking:   draftPtr(conv.Draft),
		}, nil
	}

	conv.Turns = append(conv.Turns, models.Turn{Role: models.RoleUser, Text: message})
	conv.Draft = draft

	slotsReady := draft.Complete() && draft.ClarificationNeeded == nil
	var msg string
	if slotsReady {
		msg = summaryMessage(draft)
	} else {
		msg = questionMessage(draft)
	}

	// The slot check and the question-mark check are independent guards
	// against an unreliable upstream; disagreements are logged, and the
	// conversation only advances when both agree.
	msgReady := !strings.Contains(msg, "?")
	if slotsReady != msgReady {
		logger.Warn("Readiness signals disagree",
			zap.String("sessionID", sessionID),
			zap.Bool("slotsReady", slotsReady),
			zap.Bool("messageReady", msgReady),
			zap.String("message", msg))
	}
	ready := slotsReady && msgReady

	if ready {
		conv.State = models.StateReadyToConfirm
	} else {
		conv.State = models.StateGathering
	}
	conv.Turns = append(conv.Turns, models.Turn{Role: models.RoleAssistant, Text: msg})
	conv.UpdatedAt = m.Now()

	if err := m.Store.Put(ctx, conv); err != nil {
		return Reply{}, fmt.Errorf("failed to save session: %w", err)
	}

	out := conv.Draft
	if ready && out.EndTime == nil && out.StartTime != nil {
		// Show the defaulted end time so the caller can override it before
		// confirming; the draft itself keeps the field open.
		if end, err := booking.AddMinutes(*out.StartTime, 60); err == nil {
			out.EndTime = models.StrPtr(end)
		}
	}
	return Reply{
		SessionID:    sessionID,
		Message:      msg,
		BookingReady: ready,
		Booking:      &out,
	}, nil
}

// extract invokes the extractor with a bounded timeout, trying the fallback
// when the primary fails.
func (m *Manager) extract(ctx context.Context, conv *models.Conversation, message string) (models.BookingDraft, error) {
	rooms, err := m.Rooms.List(ctx)
	if err != nil {
		return models.BookingDraft{}, fmt.Errorf("failed to list rooms: %w", err)
	}

	in := ai.ExtractInput{
		Text:       message,
		PriorTurns: conv.Turns,
		Rooms:      rooms,
		Now:        m.Now(),
	}

	timeout := m.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	draft, err := m.Extractor.Extract(callCtx, in)
	if err == nil {
		return draft, nil
	}
	if m.Fallback == nil {
		return models.BookingDraft{}, err
	}
	utils.GetLogger().Warn("Primary extractor failed, using fallback", zap.Error(err))
	return m.Fallback.Extract(ctx, in)
}

// confirm hands the draft to the commit engine. On conflict the session
// drops back to gathering with the colliding interval surfaced.
func (m *Manager) confirm(ctx context.Context, conv *models.Conversation, message string) (Reply, error) {
	logger := utils.GetLogger()
	draft := conv.Draft

	// A draft must never reach the commit engine without a resolved room.
	if !draft.Complete() {
		conv.State = models.StateGathering
		msg := questionMessage(draft)
		conv.Turns = append(conv.Turns,
			models.Turn{Role: models.RoleUser, Text: message},
			models.Turn{Role: models.RoleAssistant, Text: msg})
		conv.UpdatedAt = m.Now()
		if err := m.Store.Put(ctx, conv); err != nil {
			return Reply{}, fmt.Errorf("failed to save session: %w", err)
		}
		return Reply{SessionID: conv.SessionID, Message: msg, Booking: &conv.Draft}, nil
	}

	in := booking.CommitInput{
		RoomID:    *draft.RoomID,
		Date:      *draft.Date,
		StartTime: *draft.StartTime,
	}
	if draft.EndTime != nil {
		in.EndTime = *draft.EndTime
	}
	if draft.Title != nil {
		in.Title = *draft.Title
	}
	if draft.BookedBy != nil {
		in.BookedBy = *draft.BookedBy
	}

	committed, err := m.Commit.Commit(ctx, in)
	if err != nil {
		var conflict *booking.ConflictError
		if errors.As(err, &conflict) {
			conv.State = models.StateGathering
			msg := fmt.Sprintf("%s is already booked from %s to %s on %s. What other time works for you?",
				roomLabel(draft), conflict.StartTime, conflict.EndTime, conflict.Date)
			conv.Turns = append(conv.Turns,
				models.Turn{Role: models.RoleUser, Text: message},
				models.Turn{Role: models.RoleAssistant, Text: msg})
			conv.UpdatedAt = m.Now()
			if putErr := m.Store.Put(ctx, conv); putErr != nil {
				return Reply{}, fmt.Errorf("failed to save session: %w", putErr)
			}
			return Reply{SessionID: conv.SessionID, Message: msg, Booking: &conv.Draft}, nil
		}
		return Reply{}, fmt.Errorf("commit failed: %w", err)
	}

	if err := m.Store.Delete(ctx, conv.SessionID); err != nil {
		logger.Warn("Failed to evict committed session",
			zap.String("sessionID", conv.SessionID), zap.Error(err))
	}
	msg := fmt.Sprintf("Booking confirmed! %s on %s from %s to %s.",
		roomLabel(draft), committed.Date, committed.StartTime, committed.EndTime)
	return Reply{
		SessionID: conv.SessionID,
		Message:   msg,
		Committed: committed,
	}, nil
}

// summaryMessage states the proposed booking without asking a question, so
// the no-question-mark readiness guard holds by construction.
func summaryMessage(draft models.BookingDraft) string {
	end := ""
	if draft.EndTime != nil {
		end = *draft.EndTime
	} else if draft.StartTime != nil {
		if e, err := booking.AddMinutes(*draft.StartTime, 60); err == nil {
			end = e
		}
	}
	return fmt.Sprintf("Got it: %s on %s from %s to %s. Reply 'confirm' to book it, or tell me what to change.",
		roomLabel(draft), deref(draft.Date), deref(draft.StartTime), end)
}

func questionMessage(draft models.BookingDraft) string {
	if draft.ClarificationNeeded != nil {
		return *draft.ClarificationNeeded
	}
	return "Which room would you like to book?"
}

func roomLabel(draft models.BookingDraft) string {
	if draft.RoomName != nil {
		return *draft.RoomName
	}
	if draft.RoomID != nil {
		return "room " + *draft.RoomID
	}
	return "the room"
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func draftPtr(d models.BookingDraft) *models.BookingDraft {
	return &d
}
