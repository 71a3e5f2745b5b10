// Package services wraps the entity store with the application's business
// rules and the export-pipeline publishing.
package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"smartbudget/internal/core"
	"smartbudget/internal/log"
	"smartbudget/internal/store"
)

// SyncPublisher publishes export messages for the sync worker. A nil
// publisher disables the export pipeline.
type SyncPublisher interface {
	PublishTransactionSync(ctx context.Context, id string) error
	PublishTransactionDelete(ctx context.Context, id string) error
}

// TransactionService owns the transaction lifecycle. Writes go to the store
// first; export messages are published best-effort afterwards, so a dead
// broker never fails a request.
type TransactionService struct {
	store      store.TransactionStore
	categories core.CategorySet
	publisher  SyncPublisher
	logger     *log.Logger
}

func NewTransactionService(s store.TransactionStore, categories core.CategorySet, publisher SyncPublisher, logger *log.Logger) *TransactionService {
	return &TransactionService{
		store:      s,
		categories: categories,
		publisher:  publisher,
		logger:     logger.WithComponent(log.ComponentTransaction),
	}
}

// List returns all transactions, newest date first.
func (s *TransactionService) List(ctx context.Context) ([]core.Transaction, error) {
	transactions, err := s.store.ListTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	sortByDateDesc(transactions)
	return transactions, nil
}

func (s *TransactionService) Get(ctx context.Context, id string) (core.Transaction, error) {
	t, err := s.store.GetTransaction(ctx, id)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction %s: %w", id, err)
	}
	return t, nil
}

// Create validates and stores a new transaction, then publishes an export
// message. Unknown categories are tolerated; the views fall back to neutral
// display metadata.
func (s *TransactionService) Create(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	t.ID = uuid.NewString()
	t.CreatedAt = time.Now().UTC()

	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	if !s.categories.Known(t.Category) {
		s.logger.WarnContext(ctx, "Transaction references unknown category",
			log.FieldCategory, t.Category,
			log.FieldOperation, log.OpCreate)
	}

	created, err := s.store.CreateTransaction(ctx, t)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}

	s.logger.InfoContext(ctx, "Transaction created",
		log.FieldTransactionID, created.ID,
		log.FieldAmountCents, created.Amount.Cents,
		log.FieldType, string(created.Type),
		log.FieldCategory, created.Category)

	s.publishSync(ctx, created.ID)
	return created, nil
}

func (s *TransactionService) Update(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	if !s.categories.Known(t.Category) {
		s.logger.WarnContext(ctx, "Transaction references unknown category",
			log.FieldCategory, t.Category,
			log.FieldOperation, log.OpUpdate)
	}

	updated, err := s.store.UpdateTransaction(ctx, t)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("update transaction %s: %w", t.ID, err)
	}

	s.logger.InfoContext(ctx, "Transaction updated", log.FieldTransactionID, updated.ID)
	s.publishSync(ctx, updated.ID)
	return updated, nil
}

func (s *TransactionService) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteTransaction(ctx, id); err != nil {
		return fmt.Errorf("delete transaction %s: %w", id, err)
	}

	s.logger.InfoContext(ctx, "Transaction deleted", log.FieldTransactionID, id)

	if s.publisher == nil {
		return nil
	}
	if err := s.publisher.PublishTransactionDelete(ctx, id); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish delete message",
			log.FieldTransactionID, id,
			log.FieldError, err)
		// Store delete already succeeded; the pending scan cannot recover
		// deletes, so this is logged and dropped.
	}
	return nil
}

// ListByRange returns transactions dated within [start, end], newest first.
func (s *TransactionService) ListByRange(ctx context.Context, start, end time.Time) ([]core.Transaction, error) {
	transactions, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return core.FilterByRange(transactions, start, end), nil
}

func (s *TransactionService) ListByCategory(ctx context.Context, category string) ([]core.Transaction, error) {
	transactions, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return core.FilterAndSort(transactions, core.Filter{Category: category}), nil
}

func (s *TransactionService) ListByType(ctx context.Context, typ core.TransactionType) ([]core.Transaction, error) {
	transactions, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return core.FilterAndSort(transactions, core.Filter{Type: string(typ)}), nil
}

func (s *TransactionService) publishSync(ctx context.Context, id string) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishTransactionSync(ctx, id); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish sync message",
			log.FieldTransactionID, id,
			log.FieldError, err)
		// Not fatal: the worker's pending scan picks the record up later.
	}
}

func sortByDateDesc(transactions []core.Transaction) {
	sort.SliceStable(transactions, func(i, j int) bool {
		if !transactions[i].Date.Equal(transactions[j].Date.Time) {
			return transactions[i].Date.After(transactions[j].Date.Time)
		}
		return transactions[i].CreatedAt.After(transactions[j].CreatedAt)
	})
}
