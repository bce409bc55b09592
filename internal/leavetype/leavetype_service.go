package leavetype

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	leavetypeerrors "go-timeoff/internal/leavetype/errors"
)

const listCacheTTL = 5 * time.Minute

type Service interface {
	Create(ctx context.Context, companyID string, req CreateLeaveTypeRequest) (LeaveTypeResponse, error)
	GetAll(ctx context.Context, companyID string) ([]LeaveTypeResponse, error)
	GetByID(ctx context.Context, companyID, id string) (LeaveTypeResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateLeaveTypeRequest) (LeaveTypeResponse, error)
	Delete(ctx context.Context, companyID, id string) error
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("leavetype.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leavetype.service")
	}
	return &service{repo: repo, rdb: rdb, logger: l}
}

func (s *service) listCacheKey(companyID string) string {
	return fmt.Sprintf("leave_types:%s", companyID)
}

func (s *service) invalidateList(ctx context.Context, companyID string) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, s.listCacheKey(companyID)).Err(); err != nil {
		s.logger.Warn("failed to invalidate leave type cache",
			zap.String("company_id", companyID),
			zap.Error(err),
		)
	}
}

func (s *service) Create(ctx context.Context, companyID string, req CreateLeaveTypeRequest) (LeaveTypeResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return LeaveTypeResponse{}, err
	}

	useAllowance := true
	if req.UseAllowance != nil {
		useAllowance = *req.UseAllowance
	}
	color := req.Color
	if color == "" {
		color = "#ffffff"
	}

	lt := &LeaveType{
		ID:            uuid.New(),
		CompanyID:     companyUUID,
		Name:          req.Name,
		Color:         color,
		UseAllowance:  useAllowance,
		AllowanceDays: req.AllowanceDays,
		Limit:         req.Limit,
		AutoApprove:   req.AutoApprove,
		SortOrder:     req.SortOrder,
	}
	if err := s.repo.Create(ctx, lt); err != nil {
		return LeaveTypeResponse{}, err
	}

	s.invalidateList(ctx, companyID)
	return toLeaveTypeResponse(lt), nil
}

// GetAll reads the leave type list through a redis cache. Concurrent misses
// for the same company collapse into a single database query.
func (s *service) GetAll(ctx context.Context, companyID string) ([]LeaveTypeResponse, error) {
	key := s.listCacheKey(companyID)

	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, key).Result(); err == nil {
			var cached []LeaveTypeResponse
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return cached, nil
			}
		}
	}

	result, err, _ := s.sf.Do(key, func() (interface{}, error) {
		types, err := s.repo.FindAllByCompany(ctx, companyID)
		if err != nil {
			return nil, err
		}
		out := make([]LeaveTypeResponse, 0, len(types))
		for i := range types {
			out = append(out, toLeaveTypeResponse(&types[i]))
		}
		if s.rdb != nil {
			if raw, err := json.Marshal(out); err == nil {
				if err := s.rdb.Set(ctx, key, raw, listCacheTTL).Err(); err != nil {
					s.logger.Warn("failed to cache leave types", zap.Error(err))
				}
			}
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]LeaveTypeResponse), nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (LeaveTypeResponse, error) {
	lt, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return LeaveTypeResponse{}, err
	}
	if lt == nil {
		return LeaveTypeResponse{}, leavetypeerrors.ErrLeaveTypeNotFound
	}
	return toLeaveTypeResponse(lt), nil
}

func (s *service) Update(ctx context.Context, companyID, id string, req UpdateLeaveTypeRequest) (LeaveTypeResponse, error) {
	lt, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return LeaveTypeResponse{}, err
	}
	if lt == nil {
		return LeaveTypeResponse{}, leavetypeerrors.ErrLeaveTypeNotFound
	}

	lt.Name = req.Name
	if req.Color != "" {
		lt.Color = req.Color
	}
	if req.UseAllowance != nil {
		lt.UseAllowance = *req.UseAllowance
	}
	lt.AllowanceDays = req.AllowanceDays
	lt.Limit = req.Limit
	lt.AutoApprove = req.AutoApprove
	lt.SortOrder = req.SortOrder

	if err := s.repo.Update(ctx, lt); err != nil {
		return LeaveTypeResponse{}, err
	}

	s.invalidateList(ctx, companyID)
	return toLeaveTypeResponse(lt), nil
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	lt, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return err
	}
	if lt == nil {
		return leavetypeerrors.ErrLeaveTypeNotFound
	}

	count, err := s.repo.CountLeaves(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return leavetypeerrors.ErrLeaveTypeInUse
	}

	if err := s.repo.Delete(ctx, companyID, id); err != nil {
		return err
	}

	s.invalidateList(ctx, companyID)
	return nil
}
