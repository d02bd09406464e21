package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/myhouz/myhouz-server/internal/model"
	"github.com/myhouz/myhouz-server/internal/queue"
	"github.com/myhouz/myhouz-server/internal/repository"
)

// RegisterService owns the cash register lifecycle.  A register is either
// open or closed; opening starts a fresh trading session (sales counters
// reset, prior closing data cleared) and closing records the reconciled
// balance.  Deletion requires the register to be closed.
type RegisterService struct {
	registers *repository.RegisterRepo
	pub       Publisher
	now       func() time.Time
}

// NewRegisterService constructs the service.  pub may be nil when no
// broker is configured.
func NewRegisterService(registers *repository.RegisterRepo, pub Publisher) *RegisterService {
	if registers == nil {
		panic("nil repository passed to NewRegisterService")
	}
	return &RegisterService{registers: registers, pub: pub, now: time.Now}
}

// Create adds a register in the closed state.
func (s *RegisterService) Create(ctx context.Context, sellerID uint64, name string, openingBalanceCents int64, notes string) (*model.Register, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if openingBalanceCents < 0 {
		openingBalanceCents = 0
	}
	reg := &model.Register{
		SellerID:            sellerID,
		Name:                name,
		Status:              model.RegisterClosed,
		OpeningBalanceCents: openingBalanceCents,
	}
	if notes = strings.TrimSpace(notes); notes != "" {
		reg.Notes = &notes
	}
	if err := s.registers.Create(ctx, reg); err != nil {
		return nil, err
	}
	return reg, nil
}

// Open starts a trading session.  Opening an already-open register is an
// invalid state transition.  The session starts clean: sales counters go
// to zero and the previous session's closing data is cleared.
func (s *RegisterService) Open(ctx context.Context, sellerID, id uint64, openingBalanceCents int64) (*model.Register, error) {
	reg, err := s.registers.GetByIDAndSeller(ctx, id, sellerID)
	if err != nil {
		return nil, err
	}
	if reg.Status == model.RegisterOpen {
		return nil, &InvalidStateError{Reason: "register is already open"}
	}
	if openingBalanceCents < 0 {
		openingBalanceCents = 0
	}

	now := s.now().UTC()
	reg.Status = model.RegisterOpen
	reg.OpenedAt = &now
	reg.ClosedAt = nil
	reg.ClosingBalanceCents = nil
	reg.OpeningBalanceCents = openingBalanceCents
	reg.SalesCount = 0
	reg.TotalSalesCents = 0
	reg.Touch(now)

	if err := s.registers.Save(ctx, reg); err != nil {
		return nil, err
	}
	return reg, nil
}

// Close ends the trading session, recording the counted closing balance
// and optional reconciliation notes.  Closing an already-closed register
// is an invalid state transition.
func (s *RegisterService) Close(ctx context.Context, sellerID, id uint64, closingBalanceCents int64, notes *string) (*model.Register, error) {
	reg, err := s.registers.GetByIDAndSeller(ctx, id, sellerID)
	if err != nil {
		return nil, err
	}
	if reg.Status == model.RegisterClosed {
		return nil, &InvalidStateError{Reason: "register is already closed"}
	}

	now := s.now().UTC()
	reg.Status = model.RegisterClosed
	reg.ClosedAt = &now
	reg.ClosingBalanceCents = &closingBalanceCents
	if notes != nil {
		reg.Notes = notes
	}
	reg.Touch(now)

	if err := s.registers.Save(ctx, reg); err != nil {
		return nil, err
	}
	if s.pub != nil {
		_ = s.pub.Publish(ctx, queue.ActivityEvent{
			EventID:     uuid.NewString(),
			Kind:        queue.KindRegisterClose,
			SellerID:    sellerID,
			RegisterID:  reg.ID,
			AmountCents: closingBalanceCents,
			OccurredAt:  now.Format(time.RFC3339),
		})
	}
	return reg, nil
}

// RecordSale adds a sale to the open session's counters.  The register
// must be open and the amount positive.
func (s *RegisterService) RecordSale(ctx context.Context, sellerID, id uint64, amountCents int64) (*model.Register, error) {
	if amountCents <= 0 {
		return nil, ErrInvalidAmount
	}
	reg, err := s.registers.GetByIDAndSeller(ctx, id, sellerID)
	if err != nil {
		return nil, err
	}
	if reg.Status != model.RegisterOpen {
		return nil, &InvalidStateError{Reason: "register is closed"}
	}

	reg.SalesCount++
	reg.TotalSalesCents += amountCents
	reg.Touch(s.now())

	if err := s.registers.Save(ctx, reg); err != nil {
		return nil, err
	}
	return reg, nil
}

// Update renames a register and/or replaces its notes.  nil fields are
// left unchanged.
func (s *RegisterService) Update(ctx context.Context, sellerID, id uint64, name, notes *string) (*model.Register, error) {
	reg, err := s.registers.GetByIDAndSeller(ctx, id, sellerID)
	if err != nil {
		return nil, err
	}
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, ErrNameRequired
		}
		reg.Name = trimmed
	}
	if notes != nil {
		reg.Notes = notes
	}
	reg.Touch(s.now())

	if err := s.registers.Save(ctx, reg); err != nil {
		return nil, err
	}
	return reg, nil
}

// Delete removes a closed register.  An open register must be closed
// first.
func (s *RegisterService) Delete(ctx context.Context, sellerID, id uint64) error {
	reg, err := s.registers.GetByIDAndSeller(ctx, id, sellerID)
	if err != nil {
		return err
	}
	if reg.Status == model.RegisterOpen {
		return &InvalidStateError{Reason: "register is open; close it first"}
	}
	return s.registers.Delete(ctx, id, sellerID)
}

// Get returns a single register scoped to the seller.
func (s *RegisterService) Get(ctx context.Context, sellerID, id uint64) (*model.Register, error) {
	return s.registers.GetByIDAndSeller(ctx, id, sellerID)
}

// List returns one page of the seller's registers plus the total count.
func (s *RegisterService) List(ctx context.Context, sellerID uint64, page, pageSize int) ([]*model.Register, int64, error) {
	return s.registers.ListBySeller(ctx, sellerID, page, pageSize)
}
