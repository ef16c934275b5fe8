// Package transaction implements the mutable ledger: CRUD over transaction
// records, a per-record cache, and synchronous analytics invalidation on
// every mutation.
package transaction

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"fido/internal/models"
	"fido/internal/repositories"
	"fido/internal/repositories/cache"
	"fido/internal/services/analytics"

	"github.com/google/uuid"
)

// RecordCacheTTL is the expiry for individual transaction records. It is
// longer than the analytics TTL because records are immutable between
// explicit mutations, which re-cache them anyway.
const RecordCacheTTL = 300 * time.Second

// Service is the transaction CRUD surface.
type Service interface {
	Create(ctx context.Context, in CreateInput) (*models.Transaction, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Transaction, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*models.Transaction, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo        repositories.TransactionRepository
	cache       cache.Store
	invalidator *analytics.Invalidator
}

// NewService creates a new transaction service.
func NewService(repo repositories.TransactionRepository, cacheStore cache.Store, invalidator *analytics.Invalidator) Service {
	if repo == nil {
		panic("repo is required")
	}
	if cacheStore == nil {
		panic("cache is required")
	}
	if invalidator == nil {
		panic("invalidator is required")
	}
	return &service{
		repo:        repo,
		cache:       cacheStore,
		invalidator: invalidator,
	}
}

func recordKey(id uuid.UUID) string {
	return fmt.Sprintf("transaction:%s", id)
}

func (s *service) Create(ctx context.Context, in CreateInput) (*models.Transaction, error) {
	if in.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if !in.Type.Valid() {
		return nil, ErrInvalidType
	}
	if in.Date.IsZero() {
		in.Date = time.Now().UTC()
	}

	tx := &models.Transaction{
		ID:              uuid.New(),
		UserID:          in.UserID,
		Amount:          in.Amount,
		Type:            in.Type,
		TransactionDate: in.Date,
	}
	if err := s.repo.Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("create transaction: %w", err)
	}

	s.cacheRecord(ctx, tx)

	// Mutation is committed; evict the analytics entries it staled before
	// answering, so the next read recomputes.
	if err := s.invalidator.Invalidate(ctx, tx.UserID); err != nil {
		return nil, err
	}

	log.Printf("transaction %s created for user %s", tx.ID, tx.UserID)
	return tx, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	key := recordKey(id)

	var cached models.Transaction
	hit, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		// Record reads degrade to the store on a cache fault; only the
		// analytics path fails fast.
		log.Printf("record cache fault, falling back to store: %v", err)
	}
	if hit {
		return &cached, nil
	}

	tx, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTransactionNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	s.cacheRecord(ctx, tx)
	return tx, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*models.Transaction, error) {
	tx, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTransactionNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if in.Amount != nil {
		if *in.Amount <= 0 {
			return nil, ErrInvalidAmount
		}
		tx.Amount = *in.Amount
	}
	if in.Type != nil {
		if !in.Type.Valid() {
			return nil, ErrInvalidType
		}
		tx.Type = *in.Type
	}
	if in.Date != nil {
		tx.TransactionDate = *in.Date
	}

	if err := s.repo.Update(ctx, tx); err != nil {
		return nil, fmt.Errorf("update transaction %s: %w", id, err)
	}

	s.cacheRecord(ctx, tx)

	if err := s.invalidator.Invalidate(ctx, tx.UserID); err != nil {
		return nil, err
	}

	log.Printf("transaction %s updated", tx.ID)
	return tx, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTransactionNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrTransactionNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := s.cache.Delete(ctx, recordKey(id)); err != nil {
		return err
	}
	if err := s.invalidator.Invalidate(ctx, tx.UserID); err != nil {
		return err
	}

	log.Printf("transaction %s deleted", id)
	return nil
}

// cacheRecord writes the record entry best-effort: a cache fault here must
// not fail a committed mutation.
func (s *service) cacheRecord(ctx context.Context, tx *models.Transaction) {
	if err := s.cache.Set(ctx, recordKey(tx.ID), tx, RecordCacheTTL); err != nil {
		log.Printf("failed to cache transaction %s: %v", tx.ID, err)
	}
}
