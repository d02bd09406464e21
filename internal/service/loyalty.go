package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/myhouz/myhouz-server/internal/model"
	"github.com/myhouz/myhouz-server/internal/queue"
	"github.com/myhouz/myhouz-server/internal/repository"
)

// Fallback history descriptions when the caller supplies none.
const (
	defaultEarnDescription  = "Points earned"
	defaultSpendDescription = "Points spent"
)

// LoyaltyService owns the points and tier rules.  Two invariants hold for
// every program it touches: points equals total earned minus total spent
// and never goes negative, and tier only ever moves up, driven by total
// earned alone.
type LoyaltyService struct {
	programs *repository.LoyaltyRepo
	pub      Publisher
	now      func() time.Time
}

// NewLoyaltyService constructs the service.  pub may be nil when no broker
// is configured; activity events are then skipped.
func NewLoyaltyService(programs *repository.LoyaltyRepo, pub Publisher) *LoyaltyService {
	if programs == nil {
		panic("nil repository passed to NewLoyaltyService")
	}
	return &LoyaltyService{programs: programs, pub: pub, now: time.Now}
}

// customerKey returns the dedup key for a customer identity: the phone
// when present, otherwise the email.
func customerKey(phone, email string) string {
	if phone != "" {
		return phone
	}
	return email
}

// Enroll creates a loyalty program for a new customer of the seller.  The
// name is required and at least one of phone/email must be present to act
// as the dedup key.  Enrolling the same key twice under one seller fails
// with ErrDuplicateCustomer; the same customer may enroll with any number
// of different sellers.
func (s *LoyaltyService) Enroll(ctx context.Context, sellerID uint64, name, email, phone string) (*model.LoyaltyProgram, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	phone = strings.TrimSpace(phone)

	if name == "" {
		return nil, ErrNameRequired
	}
	key := customerKey(phone, email)
	if key == "" {
		return nil, ErrContactRequired
	}

	exists, err := s.programs.ExistsByCustomerKey(ctx, sellerID, key)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateCustomer
	}

	p := &model.LoyaltyProgram{
		SellerID:     sellerID,
		CustomerName: name,
		Tier:         model.TierBronze,
	}
	if email != "" {
		p.CustomerEmail = &email
	}
	if phone != "" {
		p.CustomerPhone = &phone
	}
	if err := s.programs.Create(ctx, p, key); err != nil {
		// The unique index catches enrollments racing past the exists check.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateCustomer
		}
		return nil, err
	}
	return p, nil
}

// Earn credits points to a program and recomputes its tier from the new
// cumulative earned total.  The amount must be positive.
func (s *LoyaltyService) Earn(ctx context.Context, sellerID, programID uint64, points int64, description, saleRef string) (*model.LoyaltyProgram, error) {
	if points <= 0 {
		return nil, ErrInvalidAmount
	}
	p, err := s.programs.GetByIDAndSeller(ctx, programID, sellerID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	p.Points += points
	p.TotalPointsEarned += points
	p.Tier = model.TierFor(p.TotalPointsEarned)
	p.Touch(now)

	if strings.TrimSpace(description) == "" {
		description = defaultEarnDescription
	}
	ev := &model.LoyaltyEvent{
		ProgramID:   p.ID,
		Type:        model.LoyaltyEarn,
		Points:      points,
		Description: description,
		CreatedAt:   now,
	}
	if saleRef = strings.TrimSpace(saleRef); saleRef != "" {
		ev.SaleRef = &saleRef
	}

	if err := s.programs.SaveEarn(ctx, p, ev); err != nil {
		return nil, err
	}
	s.publishActivity(ctx, queue.KindEarn, p, points, description)
	return p, nil
}

// Spend debits points from a program.  The amount must be positive and not
// exceed the current balance; the tier is deliberately left untouched.
func (s *LoyaltyService) Spend(ctx context.Context, sellerID, programID uint64, points int64, description string) (*model.LoyaltyProgram, error) {
	if points <= 0 {
		return nil, ErrInvalidAmount
	}
	p, err := s.programs.GetByIDAndSeller(ctx, programID, sellerID)
	if err != nil {
		return nil, err
	}
	if points > p.Points {
		return nil, &InsufficientPointsError{Balance: p.Points}
	}

	now := s.now().UTC()
	p.Points -= points
	p.TotalPointsSpent += points
	p.Touch(now)

	if strings.TrimSpace(description) == "" {
		description = defaultSpendDescription
	}
	ev := &model.LoyaltyEvent{
		ProgramID:   p.ID,
		Type:        model.LoyaltySpend,
		Points:      points,
		Description: description,
		CreatedAt:   now,
	}

	if err := s.programs.SaveSpend(ctx, p, ev); err != nil {
		if errors.Is(err, repository.ErrBalanceConflict) {
			// A concurrent spend beat us to the balance; report the
			// balance as it stands now.
			if fresh, ferr := s.programs.GetByIDAndSeller(ctx, programID, sellerID); ferr == nil {
				return nil, &InsufficientPointsError{Balance: fresh.Points}
			}
			return nil, &InsufficientPointsError{Balance: 0}
		}
		return nil, err
	}
	s.publishActivity(ctx, queue.KindSpend, p, points, description)
	return p, nil
}

// List returns one page of the seller's programs matching the filters,
// ordered by points descending, along with the total match count.
func (s *LoyaltyService) List(ctx context.Context, q repository.ProgramSearchQuery) ([]*model.LoyaltyProgram, int64, error) {
	return s.programs.Search(ctx, q)
}

// Get returns a single program scoped to the seller.
func (s *LoyaltyService) Get(ctx context.Context, sellerID, programID uint64) (*model.LoyaltyProgram, error) {
	return s.programs.GetByIDAndSeller(ctx, programID, sellerID)
}

// History returns a program's most recent events, newest first.  The
// program is fetched first so ownership is enforced before history rows
// are exposed.
func (s *LoyaltyService) History(ctx context.Context, sellerID, programID uint64, limit int) ([]*model.LoyaltyEvent, error) {
	if _, err := s.programs.GetByIDAndSeller(ctx, programID, sellerID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 50
	}
	return s.programs.History(ctx, programID, limit)
}

func (s *LoyaltyService) publishActivity(ctx context.Context, kind string, p *model.LoyaltyProgram, points int64, description string) {
	if s.pub == nil {
		return
	}
	// Best effort: point bookkeeping already committed, a lost event must
	// not fail the request.
	_ = s.pub.Publish(ctx, queue.ActivityEvent{
		EventID:      uuid.NewString(),
		Kind:         kind,
		SellerID:     p.SellerID,
		ProgramID:    p.ID,
		CustomerName: p.CustomerName,
		Points:       points,
		Balance:      p.Points,
		Tier:         p.Tier,
		Description:  description,
		OccurredAt:   s.now().UTC().Format(time.RFC3339),
	})
}
