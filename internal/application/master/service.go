// Package master implements the master-data application service. One service
// handles all entity types; handlers pass the entity type name resolved from
// the route.
package master

import (
	"context"

	"github.com/erp/masterdata/internal/domain/master"
	"github.com/erp/masterdata/internal/domain/shared"
	"github.com/erp/masterdata/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// Service provides master-data use cases
type Service struct {
	repo master.Repository
	log  *zap.Logger
}

// NewService creates a new master-data service
func NewService(repo master.Repository, log *zap.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// ListResult is a page of records plus the unpaginated total
type ListResult struct {
	Records []master.Record
	Total   int64
}

// List returns one page of records for the entity type
func (s *Service) List(ctx context.Context, companyID uuid.UUID, entityType string, filter shared.ListFilter) (*ListResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "master", "list",
		attribute.String("master.entity_type", entityType))
	defer span.End()

	records, total, err := s.repo.FindPage(ctx, companyID, entityType, filter)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return &ListResult{Records: records, Total: total}, nil
}

// GetByCode returns the record with the given code, or ErrNotFound
func (s *Service) GetByCode(ctx context.Context, companyID uuid.UUID, entityType, code string) (*master.Record, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "master", "get_by_code",
		attribute.String("master.entity_type", entityType))
	defer span.End()

	record, err := s.repo.FindByCode(ctx, companyID, entityType, code)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if record == nil {
		return nil, shared.ErrNotFound
	}
	return record, nil
}

// GetByID returns the record with the given id, or ErrNotFound
func (s *Service) GetByID(ctx context.Context, companyID uuid.UUID, entityType string, id int64) (*master.Record, error) {
	record, err := s.repo.FindByID(ctx, companyID, entityType, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, shared.ErrNotFound
	}
	return record, nil
}

// Upsert creates the record when req.ID is not positive and updates it
// otherwise, matching the route gate's create/edit split. Creates reject
// duplicate codes; updates reject codes taken by another record. The server
// owns the audit fields on both paths.
func (s *Service) Upsert(ctx context.Context, companyID, actorID uuid.UUID, entityType string, req SaveRequest) (*master.Record, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "master", "upsert",
		attribute.String("master.entity_type", entityType),
		attribute.Int64("master.id", req.ID))
	defer span.End()

	if req.ID <= 0 {
		record, err := s.create(ctx, companyID, actorID, entityType, req)
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
		return record, nil
	}
	record, err := s.update(ctx, companyID, actorID, entityType, req)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return record, nil
}

func (s *Service) create(ctx context.Context, companyID, actorID uuid.UUID, entityType string, req SaveRequest) (*master.Record, error) {
	exists, err := s.repo.ExistsByCode(ctx, companyID, entityType, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.ErrAlreadyExists
	}

	record, err := master.NewRecord(entityType, companyID, actorID, req.Code, req.Name)
	if err != nil {
		return nil, err
	}
	record.SeqNo = req.SeqNo
	record.IsActive = req.IsActive
	record.Remarks = req.Remarks

	if err := s.repo.Save(ctx, record); err != nil {
		return nil, err
	}
	s.log.Info("master record created",
		zap.String("entityType", entityType),
		zap.Int64("id", record.ID),
		zap.String("code", record.Code))
	return record, nil
}

func (s *Service) update(ctx context.Context, companyID, actorID uuid.UUID, entityType string, req SaveRequest) (*master.Record, error) {
	record, err := s.repo.FindByID(ctx, companyID, entityType, req.ID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, shared.ErrNotFound
	}

	// the code may stay the same, but may not collide with another record
	other, err := s.repo.FindByCode(ctx, companyID, entityType, req.Code)
	if err != nil {
		return nil, err
	}
	if other != nil && other.ID != record.ID {
		return nil, shared.ErrAlreadyExists
	}

	if err := record.ApplyEdit(actorID, req.Code, req.Name, req.SeqNo, req.IsActive, req.Remarks); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, record); err != nil {
		return nil, err
	}
	s.log.Info("master record updated",
		zap.String("entityType", entityType),
		zap.Int64("id", record.ID),
		zap.String("code", record.Code))
	return record, nil
}

// Delete removes the record with the given id, or returns ErrNotFound
func (s *Service) Delete(ctx context.Context, companyID uuid.UUID, entityType string, id int64) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "master", "delete",
		attribute.String("master.entity_type", entityType),
		attribute.Int64("master.id", id))
	defer span.End()

	record, err := s.repo.FindByID(ctx, companyID, entityType, id)
	if err != nil {
		telemetry.RecordError(span, err)
		return err
	}
	if record == nil {
		return shared.ErrNotFound
	}
	if err := s.repo.Delete(ctx, companyID, entityType, id); err != nil {
		telemetry.RecordError(span, err)
		return err
	}
	s.log.Info("master record deleted",
		zap.String("entityType", entityType),
		zap.Int64("id", id),
		zap.String("code", record.Code))
	return nil
}
