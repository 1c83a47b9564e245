package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/safatanc/gsalt-deals/internal/app/errors"
	"github.com/safatanc/gsalt-deals/internal/app/models"
	"gorm.io/gorm"
)

var auditOrderFields = map[string]string{
	"changed_at": "changed_at",
	"table_name": "table_name",
}

type AuditService struct {
	db *gorm.DB
}

func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{
		db: db,
	}
}

// LogAudit creates an audit log entry for a committed change
func (s *AuditService) LogAudit(ctx context.Context, tableName string, recordID uuid.UUID, action models.AuditAction, oldData, newData interface{}, changedBy *uuid.UUID) error {
	var oldDataJSON, newDataJSON *string

	if oldData != nil {
		jsonBytes, err := json.Marshal(oldData)
		if err != nil {
			return fmt.Errorf("failed to marshal old data: %w", err)
		}
		strJSON := string(jsonBytes)
		oldDataJSON = &strJSON
	}

	if newData != nil {
		jsonBytes, err := json.Marshal(newData)
		if err != nil {
			return fmt.Errorf("failed to marshal new data: %w", err)
		}
		strJSON := string(jsonBytes)
		newDataJSON = &strJSON
	}

	auditLog := &models.AuditLog{
		TableName: tableName,
		RecordID:  recordID,
		Action:    action,
		OldData:   oldDataJSON,
		NewData:   newDataJSON,
		ChangedBy: changedBy,
		ChangedAt: time.Now().UTC(),
	}

	if err := s.db.WithContext(ctx).Create(auditLog).Error; err != nil {
		return errors.NewInternalServerError(err, "Failed to create audit log")
	}

	return nil
}

// GetAuditLogsForRecord returns the history of one record, newest first
func (s *AuditService) GetAuditLogsForRecord(ctx context.Context, recordID uuid.UUID) ([]models.AuditLog, error) {
	var logs []models.AuditLog
	if err := s.db.WithContext(ctx).Where("record_id = ?", recordID).
		Order("changed_at DESC").
		Find(&logs).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get audit logs")
	}

	return logs, nil
}

// GetAuditLogs retrieves audit logs with pagination
func (s *AuditService) GetAuditLogs(ctx context.Context, pagination *models.PaginationRequest) (*models.Pagination[[]models.AuditLog], error) {
	pagination.Normalize()

	var totalItems int64
	if err := s.db.WithContext(ctx).Model(&models.AuditLog{}).Count(&totalItems).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to count audit logs")
	}

	var logs []models.AuditLog
	err := s.db.WithContext(ctx).Order(pagination.OrderClause(auditOrderFields, "changed_at")).
		Limit(pagination.Limit).
		Offset(pagination.Offset()).
		Find(&logs).Error
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get audit logs")
	}

	return models.NewPagination(pagination, totalItems, logs), nil
}
