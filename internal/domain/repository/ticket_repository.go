package repository

import (
	"context"
	"time"

	"github.com/lsestacionamento/parking-api/internal/domain/entity"
	"github.com/lsestacionamento/parking-api/pkg/pagination"
)

// TicketRepository defines the interface for ticket data operations
type TicketRepository interface {
	Create(ctx context.Context, ticket *entity.Ticket) error
	GetByID(ctx context.Context, id uint) (*entity.Ticket, error)
	// ListActive returns active tickets ordered by entry time ascending.
	ListActive(ctx context.Context) ([]entity.Ticket, error)
	// ListFinalized returns finalized tickets ordered by entry time descending.
	ListFinalized(ctx context.Context, params *pagination.PaginationParams) ([]entity.Ticket, int64, error)
	// ListByEntryRange returns tickets whose entry time falls within
	// [start, end], ordered by entry time ascending.
	ListByEntryRange(ctx context.Context, start, end time.Time) ([]entity.Ticket, error)
	// Finalize applies changes to the ticket in a single UPDATE guarded by
	// the Active status, and reports how many rows matched. Zero rows means
	// the ticket does not exist or was already finalized.
	Finalize(ctx context.Context, id uint, changes map[string]interface{}) (int64, error)
	// PurgeFinalized deletes every finalized ticket and reports the count.
	PurgeFinalized(ctx context.Context) (int64, error)
}
