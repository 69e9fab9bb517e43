// Package payment holds the payment gateway abstraction and the stub
// processor used outside production.
package payment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ChargeRequest describes one charge attempt against an order
type ChargeRequest struct {
	TenantID  uuid.UUID
	OrderID   uuid.UUID
	Amount    decimal.Decimal
	Currency  string
	Method    string
	CardToken string
}

// ChargeResult is the gateway's answer to a charge attempt. Declined is a
// normal business outcome, not an error; errors are reserved for transport
// or gateway failures.
type ChargeResult struct {
	TransactionID string
	Approved      bool
	DeclineReason string
	ProcessedAt   time.Time
}

// RefundRequest describes a refund of a previously approved charge
type RefundRequest struct {
	TenantID      uuid.UUID
	OrderID       uuid.UUID
	TransactionID string
	Amount        decimal.Decimal
	Currency      string
}

// RefundResult is the gateway's answer to a refund request
type RefundResult struct {
	RefundID    string
	Approved    bool
	ProcessedAt time.Time
}

// Gateway is the payment processor boundary. Only the stub implementation
// ships; a real processor plugs in behind this interface.
type Gateway interface {
	// Charge attempts to collect the amount for the order
	Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error)

	// Refund returns a previously collected amount
	Refund(ctx context.Context, req RefundRequest) (*RefundResult, error)
}
