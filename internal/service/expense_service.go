package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/splitpay/splitpay/internal/cache"
	"github.com/splitpay/splitpay/internal/models"
	"github.com/splitpay/splitpay/internal/settlement"
	"github.com/splitpay/splitpay/internal/storage"
)

// ExpenseService handles recording, editing and deleting expenses, including
// settlement payments.
type ExpenseService struct {
	store storage.Store
	cache cache.Cache
}

// NewExpenseService creates an ExpenseService. Every write invalidates the
// group's cached settlement plan.
func NewExpenseService(store storage.Store, c cache.Cache) *ExpenseService {
	return &ExpenseService{store: store, cache: c}
}

// AddExpenseInput carries a new expense. PaidBy is optional and defaults to
// the caller; Shares are only consulted for the custom split method.
type AddExpenseInput struct {
	Description string          `json:"description"`
	Amount      float64         `json:"amount"`
	PaidBy      models.PayerRef `json:"paidBy"`
	SplitMethod string          `json:"splitMethod"`
	Shares      []models.Share  `json:"shares"`
}

// Add records a new expense in the group.
func (s *ExpenseService) Add(ctx context.Context, callerID, groupID string, in AddExpenseInput) (*models.Expense, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(callerID) {
		return nil, ErrNotMember
	}

	if strings.TrimSpace(in.Description) == "" {
		return nil, fmt.Errorf("%w: description is required", ErrValidation)
	}
	if in.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrValidation)
	}

	payerID := in.PaidBy.ID
	if payerID == "" {
		payerID = callerID
	}
	if !group.HasMember(payerID) {
		return nil, fmt.Errorf("%w: payer must be a group member", ErrValidation)
	}

	method := in.SplitMethod
	if method == "" {
		method = models.SplitEqual
	}

	var shares []models.Share
	switch method {
	case models.SplitEqual:
		perHead := in.Amount / float64(len(group.Members))
		for _, m := range group.Members {
			shares = append(shares, models.Share{UserID: m.ID, Amount: perHead})
		}
	case models.SplitCustom:
		if len(in.Shares) == 0 {
			return nil, fmt.Errorf("%w: custom split requires shares", ErrValidation)
		}
		var sum float64
		for _, share := range in.Shares {
			if share.Amount < 0 {
				return nil, fmt.Errorf("%w: share amounts must not be negative", ErrValidation)
			}
			if !group.HasMember(share.UserID) {
				return nil, fmt.Errorf("%w: share member %s is not in the group", ErrValidation, share.UserID)
			}
			sum += share.Amount
		}
		if math.Abs(sum-in.Amount) > settlement.Epsilon {
			return nil, fmt.Errorf("%w: shares sum to %.2f, expense amount is %.2f", ErrValidation, sum, in.Amount)
		}
		shares = in.Shares
	default:
		return nil, fmt.Errorf("%w: unknown split method %q", ErrValidation, method)
	}

	expense := &models.Expense{
		GroupID:     groupID,
		Description: strings.TrimSpace(in.Description),
		Amount:      in.Amount,
		PaidBy:      models.PayerRef{ID: payerID},
		SplitMethod: method,
		Shares:      shares,
	}
	if err := s.store.CreateExpense(ctx, expense); err != nil {
		return nil, err
	}

	s.invalidatePlan(ctx, groupID)
	slog.Info("Expense added", "expense_id", expense.ID, "group_id", groupID, "amount", expense.Amount)
	return s.store.GetExpense(ctx, expense.ID)
}

// Update edits an expense's description and/or amount. Only the payer may
// edit, and shares are immutable: the share distribution of a settled split
// is historical record.
func (s *ExpenseService) Update(ctx context.Context, callerID, expenseID, description string, amount float64) (*models.Expense, error) {
	expense, err := s.store.GetExpense(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if expense.PaidBy.ID != callerID {
		return nil, ErrNotPayer
	}

	// Blank fields keep the existing values.
	if strings.TrimSpace(description) == "" {
		description = expense.Description
	}
	if amount == 0 {
		amount = expense.Amount
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrValidation)
	}

	if err := s.store.UpdateExpense(ctx, expenseID, strings.TrimSpace(description), amount); err != nil {
		return nil, err
	}

	s.invalidatePlan(ctx, expense.GroupID)
	return s.store.GetExpense(ctx, expenseID)
}

// Delete removes an expense. Only the payer may delete.
func (s *ExpenseService) Delete(ctx context.Context, callerID, expenseID string) error {
	expense, err := s.store.GetExpense(ctx, expenseID)
	if err != nil {
		return err
	}
	if expense.PaidBy.ID != callerID {
		return ErrNotPayer
	}

	if err := s.store.DeleteExpense(ctx, expenseID); err != nil {
		return err
	}

	s.invalidatePlan(ctx, expense.GroupID)
	slog.Info("Expense deleted", "expense_id", expenseID, "group_id", expense.GroupID)
	return nil
}

// RecordSettlement turns a confirmed transfer into a settlement expense:
// the debtor pays, the full amount is a single share credited to the
// creditor, and the Settlement flag marks it for display. On the next
// computation the pair's balance returns to (near) zero.
func (s *ExpenseService) RecordSettlement(ctx context.Context, callerID, groupID string, transfer models.Transfer) (*models.Expense, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(callerID) {
		return nil, ErrNotMember
	}

	if transfer.Amount <= 0 {
		return nil, fmt.Errorf("%w: settlement amount must be positive", ErrValidation)
	}
	if transfer.From == transfer.To {
		return nil, fmt.Errorf("%w: cannot settle with yourself", ErrValidation)
	}
	if !group.HasMember(transfer.From) || !group.HasMember(transfer.To) {
		return nil, fmt.Errorf("%w: both parties must be group members", ErrValidation)
	}

	expense := &models.Expense{
		GroupID:     groupID,
		Description: models.SettlementDescription,
		Amount:      transfer.Amount,
		PaidBy:      models.PayerRef{ID: transfer.From},
		SplitMethod: models.SplitCustom,
		Settlement:  true,
		Shares:      []models.Share{{UserID: transfer.To, Amount: transfer.Amount}},
	}
	if err := s.store.CreateExpense(ctx, expense); err != nil {
		return nil, err
	}

	s.invalidatePlan(ctx, groupID)
	slog.Info("Settlement recorded", "group_id", groupID, "from", transfer.From, "to", transfer.To, "amount", transfer.Amount)
	return s.store.GetExpense(ctx, expense.ID)
}

func (s *ExpenseService) invalidatePlan(ctx context.Context, groupID string) {
	if err := s.cache.Delete(ctx, planCacheKey(groupID)); err != nil {
		slog.Warn("Failed to invalidate plan cache", "group_id", groupID, "error", err)
	}
}
