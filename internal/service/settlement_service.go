package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/splitpay/splitpay/internal/cache"
	"github.com/splitpay/splitpay/internal/models"
	"github.com/splitpay/splitpay/internal/settlement"
	"github.com/splitpay/splitpay/internal/storage"
)

// SettlementService computes settlement plans for groups and caches them
// until the next expense write invalidates them.
type SettlementService struct {
	store   storage.Store
	cache   cache.Cache
	planTTL time.Duration
}

// NewSettlementService creates a SettlementService. planTTL bounds how long a
// cached plan can outlive a missed invalidation.
func NewSettlementService(store storage.Store, c cache.Cache, planTTL time.Duration) *SettlementService {
	return &SettlementService{store: store, cache: c, planTTL: planTTL}
}

// Plan is the full settlement picture for a group: who paid and owes what,
// and the minimal set of transfers that zeroes everyone out.
type Plan struct {
	GroupID    string                     `json:"group"`
	GroupName  string                     `json:"groupName"`
	Currency   string                     `json:"currency"`
	TotalSpent float64                    `json:"totalSpent"`
	Balances   []settlement.MemberBalance `json:"balances"`
	Transfers  []models.Transfer          `json:"transfers"`
}

// Plan returns the group's settlement plan. The caller must be a member.
// Plans are cached per group and recomputed after any expense write.
func (s *SettlementService) Plan(ctx context.Context, callerID, groupID string) (*Plan, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(callerID) {
		return nil, ErrNotMember
	}

	key := planCacheKey(groupID)
	if raw, ok := s.cache.Get(ctx, key); ok {
		var plan Plan
		if err := json.Unmarshal([]byte(raw), &plan); err == nil {
			return &plan, nil
		}
		slog.Warn("Discarding malformed cached plan", "group_id", groupID)
	}

	expenses, err := s.store.ListExpensesByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	var total float64
	for _, exp := range expenses {
		if !exp.Settlement {
			total += exp.Amount
		}
	}

	plan := &Plan{
		GroupID:    groupID,
		GroupName:  group.Name,
		Currency:   group.Currency,
		TotalSpent: total,
		Balances:   settlement.MemberBalances(expenses, group.Members),
		Transfers:  settlement.Compute(expenses, group.Members),
	}

	if encoded, err := json.Marshal(plan); err == nil {
		if err := s.cache.Set(ctx, key, string(encoded), s.planTTL); err != nil {
			slog.Warn("Failed to cache plan", "group_id", groupID, "error", err)
		}
	}
	return plan, nil
}

func planCacheKey(groupID string) string {
	return "group:" + groupID + ":plan"
}
