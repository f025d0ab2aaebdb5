package repository

import (
	"context"
	"errors"
	"time"

	"github.com/lsestacionamento/parking-api/internal/domain/entity"
	"github.com/lsestacionamento/parking-api/internal/domain/enum"
	domainRepo "github.com/lsestacionamento/parking-api/internal/domain/repository"
	"github.com/lsestacionamento/parking-api/pkg/pagination"
	"gorm.io/gorm"
)

type ticketRepository struct {
	db *gorm.DB
}

// NewTicketRepository creates a new ticket repository
func NewTicketRepository(db *gorm.DB) domainRepo.TicketRepository {
	return &ticketRepository{db: db}
}

func (r *ticketRepository) Create(ctx context.Context, ticket *entity.Ticket) error {
	return r.db.WithContext(ctx).Create(ticket).Error
}

func (r *ticketRepository) GetByID(ctx context.Context, id uint) (*entity.Ticket, error) {
	var ticket entity.Ticket
	err := r.db.WithContext(ctx).First(&ticket, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ticket, err
}

func (r *ticketRepository) ListActive(ctx context.Context) ([]entity.Ticket, error) {
	var tickets []entity.Ticket
	err := r.db.WithContext(ctx).
		Where("status = ?", enum.TicketStatusActive).
		Order("entry_time ASC").
		Find(&tickets).Error
	return tickets, err
}

func (r *ticketRepository) ListFinalized(ctx context.Context, params *pagination.PaginationParams) ([]entity.Ticket, int64, error) {
	var tickets []entity.Ticket
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Ticket{}).
		Where("status = ?", enum.TicketStatusFinalized)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("entry_time DESC").
		Find(&tickets).Error

	return tickets, total, err
}

func (r *ticketRepository) ListByEntryRange(ctx context.Context, start, end time.Time) ([]entity.Ticket, error) {
	var tickets []entity.Ticket
	err := r.db.WithContext(ctx).
		Where("entry_time BETWEEN ? AND ?", start, end).
		Order("entry_time ASC").
		Find(&tickets).Error
	return tickets, err
}

// Finalize relies on the store's atomic row update: the status guard in the
// WHERE clause makes a concurrent second finalize lose with zero rows
// affected instead of overwriting the first.
func (r *ticketRepository) Finalize(ctx context.Context, id uint, changes map[string]interface{}) (int64, error) {
	res := r.db.WithContext(ctx).Model(&entity.Ticket{}).
		Where("id = ? AND status = ?", id, enum.TicketStatusActive).
		Updates(changes)
	return res.RowsAffected, res.Error
}

func (r *ticketRepository) PurgeFinalized(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("status = ?", enum.TicketStatusFinalized).
		Delete(&entity.Ticket{})
	return res.RowsAffected, res.Error
}
