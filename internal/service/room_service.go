package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/BIGSHOL/ijw-Calander-sub010/internal/dto"
	"github.com/BIGSHOL/ijw-Calander-sub010/internal/models"
	appErrors "github.com/BIGSHOL/ijw-Calander-sub010/pkg/errors"
)

const roomCatalogCacheKey = "rooms:catalog"

type roomStore interface {
	List(ctx context.Context, filter models.RoomFilter) ([]models.Room, int, error)
	ListAll(ctx context.Context) ([]models.Room, error)
	FindByID(ctx context.Context, id string) (*models.Room, error)
	Create(ctx context.Context, room *models.Room) error
	Update(ctx context.Context, room *models.Room) error
	Delete(ctx context.Context, id string) error
}

type catalogCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type catalogMetrics interface {
	RecordCacheOperation(hit bool, duration time.Duration)
	ObserveDBQuery(label string, duration time.Duration)
}

// RoomService manages the room catalog. The full catalog is cached because
// every engine run reads it.
type RoomService struct {
	repo      roomStore
	cache     catalogCache
	metrics   catalogMetrics
	cacheTTL  time.Duration
	validator *validator.Validate
	logger    *zap.Logger
}

// NewRoomService wires room catalog dependencies. Cache and metrics may be nil.
func NewRoomService(repo roomStore, cache catalogCache, metrics catalogMetrics, cacheTTL time.Duration, validate *validator.Validate, logger *zap.Logger) *RoomService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &RoomService{repo: repo, cache: cache, metrics: metrics, cacheTTL: cacheTTL, validator: validate, logger: logger}
}

// List returns a filtered page of the room catalog.
func (s *RoomService) List(ctx context.Context, query dto.RoomQuery) ([]models.Room, models.Pagination, error) {
	filter := models.RoomFilter{
		Floor:     query.Floor,
		Subject:   query.Subject,
		Search:    query.Search,
		Page:      query.Page,
		PageSize:  query.PageSize,
		SortBy:    query.SortBy,
		SortOrder: query.SortOrder,
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 || filter.PageSize > 100 {
		filter.PageSize = 20
	}

	start := time.Now()
	rooms, total, err := s.repo.List(ctx, filter)
	s.observeQuery("rooms_list", start)
	if err != nil {
		return nil, models.Pagination{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list rooms")
	}
	pagination := models.Pagination{
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalItems: total,
		TotalPages: (total + filter.PageSize - 1) / filter.PageSize,
	}
	return rooms, pagination, nil
}

// ListAll returns the whole catalog ordered by room name, serving from cache
// when possible. This is the view the assignment engine consumes.
func (s *RoomService) ListAll(ctx context.Context) ([]models.Room, error) {
	if s.cache != nil {
		var cached []models.Room
		start := time.Now()
		err := s.cache.Get(ctx, roomCatalogCacheKey, &cached)
		if err == nil {
			s.recordCacheOp(true, time.Since(start))
			return cached, nil
		}
		s.recordCacheOp(false, time.Since(start))
		if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("room catalog cache read failed", zap.Error(err))
		}
	}

	start := time.Now()
	rooms, err := s.repo.ListAll(ctx)
	s.observeQuery("rooms_list_all", start)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load room catalog")
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, roomCatalogCacheKey, rooms, s.cacheTTL); err != nil {
			s.logger.Warn("room catalog cache write failed", zap.Error(err))
		}
	}
	return rooms, nil
}

// Get returns one room by id.
func (s *RoomService) Get(ctx context.Context, id string) (*models.Room, error) {
	if id == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "room id is required")
	}
	room, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return room, nil
}

// Create registers a room and invalidates the catalog cache.
func (s *RoomService) Create(ctx context.Context, req dto.CreateRoomRequest) (*models.Room, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid room payload")
	}
	room := &models.Room{
		Name:              req.Name,
		Floor:             req.Floor,
		Capacity:          req.Capacity,
		PreferredSubjects: req.PreferredSubjects,
	}
	if err := s.repo.Create(ctx, room); err != nil {
		return nil, err
	}
	s.invalidateCatalog(ctx)
	return room, nil
}

// Update patches room attributes and invalidates the catalog cache.
func (s *RoomService) Update(ctx context.Context, id string, req dto.UpdateRoomRequest) (*models.Room, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid room payload")
	}
	room, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		room.Name = *req.Name
	}
	if req.Floor != nil {
		room.Floor = *req.Floor
	}
	if req.Capacity != nil {
		room.Capacity = *req.Capacity
	}
	if req.PreferredSubjects != nil {
		room.PreferredSubjects = *req.PreferredSubjects
	}
	if err := s.repo.Update(ctx, room); err != nil {
		return nil, err
	}
	s.invalidateCatalog(ctx)
	return room, nil
}

// Delete removes a room and invalidates the catalog cache.
func (s *RoomService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return appErrors.Clone(appErrors.ErrValidation, "room id is required")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateCatalog(ctx)
	return nil
}

func (s *RoomService) observeQuery(label string, start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveDBQuery(label, time.Since(start))
	}
}

func (s *RoomService) recordCacheOp(hit bool, elapsed time.Duration) {
	if s.metrics != nil {
		s.metrics.RecordCacheOperation(hit, elapsed)
	}
}

func (s *RoomService) invalidateCatalog(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, roomCatalogCacheKey); err != nil {
		s.logger.Warn("room catalog cache invalidation failed", zap.Error(err))
	}
}
