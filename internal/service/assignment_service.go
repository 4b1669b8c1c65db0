package service

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/BIGSHOL/ijw-Calander-sub010/internal/dto"
	"github.com/BIGSHOL/ijw-Calander-sub010/internal/engine"
	"github.com/BIGSHOL/ijw-Calander-sub010/internal/models"
	appErrors "github.com/BIGSHOL/ijw-Calander-sub010/pkg/errors"
)

type roomCatalog interface {
	ListAll(ctx context.Context) ([]models.Room, error)
}

type timetableReader interface {
	ListByDay(ctx context.Context, dayOfWeek string) ([]models.TimetableSlot, error)
}

type overrideStore interface {
	ListByDate(ctx context.Context, date string) ([]models.RoomOverride, error)
	UpsertBatch(ctx context.Context, exec sqlx.ExtContext, overrides []models.RoomOverride) error
}

type txProvider interface {
	BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
}

type runObserver interface {
	ObserveEngineRun(duration time.Duration, stats models.AssignmentStats)
	ObserveDBQuery(label string, duration time.Duration)
}

// AssignmentConfig governs assignment service behaviour.
type AssignmentConfig struct {
	ProposalTTL        time.Duration
	LabClassPattern    string
	LabRoomPattern     string
	ConsecutiveGapMin  int
	DefaultWeights     models.Weights
	DefaultConstraints models.Constraints
}

// AssignmentService runs the room assignment engine over one day's sessions
// and manages the resulting preview proposals until a caller applies one.
type AssignmentService struct {
	rooms     roomCatalog
	slots     timetableReader
	overrides overrideStore
	tx        txProvider
	engine    *engine.Engine
	metrics   runObserver
	validator *validator.Validate
	logger    *zap.Logger
	store     *proposalStore
	cfg       AssignmentConfig
}

// NewAssignmentService wires assignment dependencies.
func NewAssignmentService(
	rooms roomCatalog,
	slots timetableReader,
	overrides overrideStore,
	tx txProvider,
	metrics runObserver,
	validate *validator.Validate,
	logger *zap.Logger,
	cfg AssignmentConfig,
) *AssignmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ProposalTTL <= 0 {
		cfg.ProposalTTL = 30 * time.Minute
	}
	opts := engine.Options{ConsecutiveGapMin: cfg.ConsecutiveGapMin}
	opts.LabClassPattern = compilePattern(cfg.LabClassPattern, logger)
	opts.LabRoomPattern = compilePattern(cfg.LabRoomPattern, logger)
	return &AssignmentService{
		rooms:     rooms,
		slots:     slots,
		overrides: overrides,
		tx:        tx,
		engine:    engine.New(opts),
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		store:     newProposalStore(cfg.ProposalTTL),
		cfg:       cfg,
	}
}

func compilePattern(raw string, logger *zap.Logger) *regexp.Regexp {
	if raw == "" {
		return nil
	}
	pattern, err := regexp.Compile(raw)
	if err != nil {
		logger.Warn("invalid room plan pattern, falling back to default", zap.String("pattern", raw), zap.Error(err))
		return nil
	}
	return pattern
}

// Preview builds a room plan proposal for one target date.
func (s *AssignmentService) Preview(ctx context.Context, req dto.AssignPreviewRequest) (*dto.AssignPreviewResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid preview payload")
	}

	weights := s.cfg.DefaultWeights
	if req.Weights != nil {
		weights = *req.Weights
	}
	if err := validateWeights(weights); err != nil {
		return nil, err
	}
	constraints := s.cfg.DefaultConstraints
	if req.Constraints != nil {
		constraints = *req.Constraints
	}

	day, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "date must be formatted as YYYY-MM-DD")
	}
	weekday := strings.ToUpper(day.Weekday().String())

	sessions, err := s.loadSessions(ctx, req.Date, weekday)
	if err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, fmt.Sprintf("no timetable entries for %s", weekday))
	}

	rooms, err := s.rooms.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load room catalog")
	}
	if len(rooms) == 0 {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "room catalog is empty")
	}

	started := time.Now()
	result := s.engine.Assign(sessions, rooms, weights, constraints)
	if s.metrics != nil {
		s.metrics.ObserveEngineRun(time.Since(started), result.Stats)
	}
	s.logger.Info("room plan computed",
		zap.String("date", req.Date),
		zap.Int("sessions", result.Stats.Total),
		zap.Int("assigned", result.Stats.Assigned),
		zap.Int("unassigned", result.Stats.Unassigned),
		zap.Int("conflicts", result.Stats.Conflicts),
	)

	proposal := roomPlanProposal{
		ProposalID:  uuid.NewString(),
		Date:        req.Date,
		Weights:     weights,
		Constraints: constraints,
		Rooms:       rooms,
		Result:      result,
		RequestedAt: time.Now().UTC(),
	}
	s.store.Save(proposal)

	return proposalResponse(proposal), nil
}

// Apply persists the diff of a previewed proposal as per-occurrence room
// overrides, grouped by owning class, in one transaction. Detected conflicts
// do not block the write; surfacing them is the preview's job.
func (s *AssignmentService) Apply(ctx context.Context, req dto.ApplyAssignmentRequest) (*dto.ApplyAssignmentResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid apply payload")
	}
	proposal, ok := s.store.Get(req.ProposalID)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrProposalExpired, "")
	}
	if s.tx == nil {
		return nil, appErrors.Clone(appErrors.ErrInternal, "transaction provider missing")
	}
	if len(proposal.Result.Conflicts) > 0 {
		s.logger.Warn("applying proposal with unresolved conflicts",
			zap.String("proposalId", proposal.ProposalID),
			zap.Int("conflicts", len(proposal.Result.Conflicts)),
		)
	}

	overrides := diffOverrides(proposal)

	tx, err := s.tx.BeginTxx(ctx, nil)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to begin transaction")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	start := time.Now()
	if err = s.overrides.UpsertBatch(ctx, tx, overrides); err != nil {
		err = appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist room overrides")
		return nil, err
	}
	s.observeQuery("room_overrides_upsert_batch", start)
	if err = tx.Commit(); err != nil {
		err = appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to commit room overrides")
		return nil, err
	}

	s.store.Delete(req.ProposalID)

	classes := make(map[string]struct{}, len(overrides))
	for _, o := range overrides {
		classes[o.ClassID] = struct{}{}
	}
	return &dto.ApplyAssignmentResponse{
		Date:             proposal.Date,
		OverridesWritten: len(overrides),
		ClassesTouched:   len(classes),
	}, nil
}

// Revalidate overlays manual room edits onto a proposal, then re-runs the
// conflict detector and merge suggester. Scoring is never re-applied to
// manual overlays.
func (s *AssignmentService) Revalidate(ctx context.Context, req dto.RevalidateRequest) (*dto.RevalidateResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid revalidate payload")
	}
	proposal, ok := s.store.Get(req.ProposalID)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrProposalExpired, "")
	}

	sessions := make([]models.Session, len(proposal.Result.Sessions))
	copy(sessions, proposal.Result.Sessions)
	index := make(map[string]int, len(sessions))
	for i, session := range sessions {
		index[session.ID()] = i
	}
	for _, override := range req.Overrides {
		i, found := index[override.SessionID]
		if !found {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown session %s", override.SessionID))
		}
		sessions[i].AssignedRoom = override.Room
		sessions[i].Source = models.SourceManual
	}

	proposal.Result.Sessions = sessions
	proposal.Result.Conflicts = s.engine.DetectConflicts(sessions)
	proposal.Result.Suggestions = s.engine.SuggestMerges(sessions, proposal.Rooms)
	proposal.Result.Stats = recountStats(proposal.Result)
	s.store.Save(proposal)

	return &dto.RevalidateResponse{
		ProposalID:  proposal.ProposalID,
		Sessions:    proposal.Result.Sessions,
		Conflicts:   proposal.Result.Conflicts,
		Suggestions: proposal.Result.Suggestions,
		Stats:       proposal.Result.Stats,
	}, nil
}

// GetProposal returns a stored proposal while its TTL lasts.
func (s *AssignmentService) GetProposal(ctx context.Context, proposalID string) (*dto.AssignPreviewResponse, error) {
	if proposalID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "proposal id is required")
	}
	proposal, ok := s.store.Get(proposalID)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrProposalExpired, "")
	}
	return proposalResponse(proposal), nil
}

// loadSessions flattens the weekly timetable plus date overrides into the
// strict session shape the engine consumes. Malformed rows are rejected here;
// the engine assumes well-formed input.
func (s *AssignmentService) loadSessions(ctx context.Context, date, weekday string) ([]models.Session, error) {
	start := time.Now()
	slots, err := s.slots.ListByDay(ctx, weekday)
	s.observeQuery("timetable_slots_list_by_day", start)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load timetable slots")
	}
	start = time.Now()
	overrides, err := s.overrides.ListByDate(ctx, date)
	s.observeQuery("room_overrides_list_by_date", start)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load room overrides")
	}
	overrideRooms := make(map[string]string, len(overrides))
	for _, o := range overrides {
		overrideRooms[o.ClassID+"|"+o.PeriodID] = o.Room
	}

	sessions := make([]models.Session, 0, len(slots))
	for _, slot := range slots {
		if slot.ClassID == "" || slot.PeriodID == "" || slot.StartMin >= slot.EndMin {
			s.logger.Warn("skipping malformed timetable slot",
				zap.String("slotId", slot.ID),
				zap.String("classId", slot.ClassID),
				zap.Int("startMin", slot.StartMin),
				zap.Int("endMin", slot.EndMin),
			)
			continue
		}
		session := models.Session{
			ClassID:      slot.ClassID,
			ClassName:    slot.ClassName,
			Subject:      slot.Subject,
			TeacherName:  slot.TeacherName,
			Date:         date,
			PeriodID:     slot.PeriodID,
			StudentCount: slot.StudentCount,
			StartMin:     slot.StartMin,
			EndMin:       slot.EndMin,
			CurrentRoom:  slot.DefaultRoom,
			LevelTag:     slot.LevelTag,
			LevelOrder:   slot.LevelOrder,
		}
		if room, found := overrideRooms[slot.ClassID+"|"+slot.PeriodID]; found {
			session.CurrentRoom = room
		}
		if session.CurrentRoom != "" {
			session.Source = models.SourcePreexisting
		}
		if session.LevelTag == "" {
			if tag, order, parsed := engine.ParseLevelMeta(session.ClassName); parsed {
				session.LevelTag = tag
				session.LevelOrder = order
			}
		}
		sessions = append(sessions, session)
	}
	return sessions, nil
}

func (s *AssignmentService) observeQuery(label string, start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveDBQuery(label, time.Since(start))
	}
}

func validateWeights(w models.Weights) error {
	for _, value := range []int{w.SubjectAffinity, w.CapacityFit, w.TeacherProximity, w.Distribution, w.GradeGrouping} {
		if value < 0 || value > 100 {
			return appErrors.Clone(appErrors.ErrInvalidWeights, "weights must be between 0 and 100")
		}
	}
	return nil
}

// diffOverrides keeps only sessions whose computed room differs from the
// current one and whose assignment is not pre-existing.
func diffOverrides(proposal roomPlanProposal) []models.RoomOverride {
	overrides := make([]models.RoomOverride, 0, len(proposal.Result.Sessions))
	for _, session := range proposal.Result.Sessions {
		if session.AssignedRoom == "" || session.AssignedRoom == session.CurrentRoom {
			continue
		}
		if session.Source == models.SourcePreexisting {
			continue
		}
		overrides = append(overrides, models.RoomOverride{
			ClassID:  session.ClassID,
			Date:     session.Date,
			PeriodID: session.PeriodID,
			Room:     session.AssignedRoom,
			Source:   session.Source,
		})
	}
	return overrides
}

func recountStats(result models.AssignmentResult) models.AssignmentStats {
	stats := models.AssignmentStats{
		Total:            len(result.Sessions),
		Conflicts:        len(result.Conflicts),
		MergeSuggestions: len(result.Suggestions),
	}
	for _, session := range result.Sessions {
		if session.AssignedRoom != "" {
			stats.Assigned++
		} else {
			stats.Unassigned++
		}
	}
	return stats
}

func proposalResponse(proposal roomPlanProposal) *dto.AssignPreviewResponse {
	return &dto.AssignPreviewResponse{
		ProposalID:  proposal.ProposalID,
		Date:        proposal.Date,
		Sessions:    proposal.Result.Sessions,
		Conflicts:   proposal.Result.Conflicts,
		Suggestions: proposal.Result.Suggestions,
		Stats:       proposal.Result.Stats,
	}
}

// --- Proposal cache ---

type roomPlanProposal struct {
	ProposalID  string
	Date        string
	Weights     models.Weights
	Constraints models.Constraints
	Rooms       []models.Room
	Result      models.AssignmentResult
	RequestedAt time.Time
}

type proposalStore struct {
	ttl   time.Duration
	mu    sync.RWMutex
	items map[string]roomPlanProposal
}

func newProposalStore(ttl time.Duration) *proposalStore {
	return &proposalStore{
		ttl:   ttl,
		items: make(map[string]roomPlanProposal),
	}
}

func (s *proposalStore) Save(proposal roomPlanProposal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[proposal.ProposalID] = proposal
}

func (s *proposalStore) Get(id string) (roomPlanProposal, bool) {
	s.mu.RLock()
	proposal, ok := s.items[id]
	s.mu.RUnlock()
	if !ok {
		return roomPlanProposal{}, false
	}
	if time.Since(proposal.RequestedAt) > s.ttl {
		s.Delete(id)
		return roomPlanProposal{}, false
	}
	return proposal, true
}

func (s *proposalStore) Delete(id string) {
	s.mu.Lock()
	delete(s.items, id)
	s.mu.Unlock()
}
