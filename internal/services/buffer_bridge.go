package services

import (
	"context"
	"encoding/json"

	"github.com/Jgilbert-dev/inspectrixV4/domain"
	"github.com/Jgilbert-dev/inspectrixV4/internal/infrastructure/buffer"
	"github.com/Jgilbert-dev/inspectrixV4/usecase"
)

type BufferBridge struct {
	processor *BufferProcessor
}

func NewBufferBridge(processor *BufferProcessor) *BufferBridge {
	return &BufferBridge{processor: processor}
}

func (b *BufferBridge) BufferProfile(ctx context.Context, operation string, user *domain.User) error {
	if b.processor == nil || user == nil {
		return domain.ErrInvalidPayload
	}
	payload, err := json.Marshal(user)
	if err != nil {
		return err
	}
	item := buffer.Item{
		UserID:    user.ID,
		Entity:    buffer.EntityProfile,
		Operation: operation,
		Data:      payload,
		Priority:  3,
	}
	return b.processor.BufferOperation(ctx, item)
}

func (b *BufferBridge) BufferReport(ctx context.Context, operation string, report *domain.Report) error {
	if b.processor == nil || report == nil {
		return domain.ErrInvalidPayload
	}
	payload, err := json.Marshal(report)
	if err != nil {
		return err
	}
	item := buffer.Item{
		ID:        report.ID,
		UserID:    report.InspectorID,
		Entity:    buffer.EntityReport,
		Operation: operation,
		Data:      payload,
		Priority:  4,
	}
	return b.processor.BufferOperation(ctx, item)
}

var _ usecase.OperationBuffer = (*BufferBridge)(nil)
