package sheets

import (
	"context"

	"smartbudget/internal/core"
)

// Ports for outbound exporters.
type (
	TransactionAppender interface {
		Append(ctx context.Context, t core.Transaction) (rowRef string, err error)
	}

	TransactionRemover interface {
		Remove(ctx context.Context, id string) error
	}

	// Exporter is the full export target the sync worker writes to.
	Exporter interface {
		TransactionAppender
		TransactionRemover
	}
)
