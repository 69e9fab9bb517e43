package payment

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/infrastructure/config"
)

// Ensure StubGateway implements Gateway
var _ Gateway = (*StubGateway)(nil)

// StubGateway approves every well-formed charge below the configured
// decline threshold. It remembers approved transactions so refunds can be
// validated against them.
type StubGateway struct {
	declineOver decimal.Decimal
	hasLimit    bool

	mu      sync.Mutex
	charges map[string]decimal.Decimal
	byOrder map[uuid.UUID]string
}

// NewStubGateway creates a StubGateway from configuration. An empty
// DeclineOver means every charge is approved.
func NewStubGateway(cfg config.PaymentConfig) (*StubGateway, error) {
	g := &StubGateway{
		charges: make(map[string]decimal.Decimal),
		byOrder: make(map[uuid.UUID]string),
	}

	if cfg.DeclineOver != "" {
		limit, err := decimal.NewFromString(cfg.DeclineOver)
		if err != nil {
			return nil, fmt.Errorf("invalid payment.decline_over %q: %w", cfg.DeclineOver, err)
		}
		g.declineOver = limit
		g.hasLimit = true
	}

	return g, nil
}

// Charge attempts to collect the amount for the order
func (g *StubGateway) Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req.OrderID == uuid.Nil {
		return nil, errors.New("order id is required")
	}
	if !req.Amount.IsPositive() {
		return nil, errors.New("charge amount must be positive")
	}

	now := time.Now()

	if g.hasLimit && req.Amount.GreaterThan(g.declineOver) {
		return &ChargeResult{
			Approved:      false,
			DeclineReason: "amount exceeds approval limit",
			ProcessedAt:   now,
		}, nil
	}

	txID := "stub_" + uuid.NewString()

	g.mu.Lock()
	g.charges[txID] = req.Amount
	g.byOrder[req.OrderID] = txID
	g.mu.Unlock()

	return &ChargeResult{
		TransactionID: txID,
		Approved:      true,
		ProcessedAt:   now,
	}, nil
}

// Refund returns a previously collected amount. Callers without a stored
// transaction ID may reference the charge by order ID instead.
func (g *StubGateway) Refund(ctx context.Context, req RefundRequest) (*RefundResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req.TransactionID == "" && req.OrderID == uuid.Nil {
		return nil, errors.New("transaction id or order id is required")
	}
	if !req.Amount.IsPositive() {
		return nil, errors.New("refund amount must be positive")
	}

	txID := req.TransactionID
	g.mu.Lock()
	if txID == "" {
		txID = g.byOrder[req.OrderID]
	}
	charged, ok := g.charges[txID]
	g.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("unknown transaction %q", req.TransactionID)
	}
	if req.Amount.GreaterThan(charged) {
		return nil, errors.New("refund exceeds charged amount")
	}

	return &RefundResult{
		RefundID:    "stub_rf_" + uuid.NewString(),
		Approved:    true,
		ProcessedAt: time.Now(),
	}, nil
}
