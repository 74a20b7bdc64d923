package repository

import (
	"context"
	"errors"

	"airdrop-tracker-backend/internal/features/airdrop/models"
)

var ErrAirdropNotFound = errors.New("airdrop not found")

// AirdropRepository is the persistence contract behind the collection store.
// Implementations must keep ListByOwner ordered by Seq descending so that the
// collection reads newest first.
type AirdropRepository interface {
	// NextSeq reserves n ordering sequence numbers and returns the highest of
	// the reserved block. Sequences are strictly monotonic across the whole
	// store.
	NextSeq(ctx context.Context, n int64) (int64, error)

	Create(ctx context.Context, airdrop *models.Airdrop) error
	GetByID(ctx context.Context, id string) (*models.Airdrop, error)
	Update(ctx context.Context, airdrop *models.Airdrop) error
	Delete(ctx context.Context, id string) error

	ListByOwner(ctx context.Context, ownerID string) ([]*models.Airdrop, error)
}
