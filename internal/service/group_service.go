package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/splitpay/splitpay/internal/models"
	"github.com/splitpay/splitpay/internal/settlement"
	"github.com/splitpay/splitpay/internal/storage"
)

// activityLimit caps the cross-group activity feed.
const activityLimit = 20

// GroupService handles group CRUD and the per-group summary views.
type GroupService struct {
	store storage.Store
}

// NewGroupService creates a GroupService.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

// GroupSummary is a group plus the caller-facing numbers the home screen
// renders: total spending and the caller's net position.
type GroupSummary struct {
	*models.Group
	TotalSpent float64 `json:"totalSpent"`
	YourNet    float64 `json:"yourNet"`
}

// GroupDetails is a group with its full expense history, newest first.
type GroupDetails struct {
	*models.Group
	Expenses []models.Expense `json:"expenses"`
}

// Create makes a group from a name and a list of member emails. Emails that
// do not resolve to a registered user are skipped and reported back so the
// client can show who still needs an account. The creator is always a member.
func (s *GroupService) Create(ctx context.Context, creatorID, name, currency string, memberEmails []string) (*models.Group, []string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil, fmt.Errorf("%w: group name is required", ErrValidation)
	}

	members := []models.Member{{ID: creatorID}}
	var unknown []string
	for _, email := range memberEmails {
		email = strings.ToLower(strings.TrimSpace(email))
		if email == "" {
			continue
		}
		user, err := s.store.GetUserByEmail(ctx, email)
		if err != nil {
			return nil, nil, err
		}
		if user == nil {
			unknown = append(unknown, email)
			continue
		}
		if user.ID != creatorID {
			members = append(members, models.Member{ID: user.ID, Name: user.Name})
		}
	}

	group := &models.Group{
		Name:      name,
		CreatorID: creatorID,
		Currency:  currency,
		Members:   members,
	}
	if err := s.store.CreateGroup(ctx, group); err != nil {
		return nil, nil, err
	}

	// Re-read so member names come back resolved.
	created, err := s.store.GetGroup(ctx, group.ID)
	if err != nil {
		return nil, nil, err
	}

	slog.Info("Group created", "group_id", created.ID, "members", len(created.Members), "unknown_emails", len(unknown))
	return created, unknown, nil
}

// Get returns a group with its expense history. The caller must be a member.
func (s *GroupService) Get(ctx context.Context, userID, groupID string) (*GroupDetails, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(userID) {
		return nil, ErrNotMember
	}

	expenses, err := s.store.ListExpensesByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return &GroupDetails{Group: group, Expenses: expenses}, nil
}

// List returns the caller's groups, most recently active first, each with
// total spending and the caller's net balance in that group.
func (s *GroupService) List(ctx context.Context, userID string) ([]GroupSummary, error) {
	groups, err := s.store.ListGroupsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]GroupSummary, 0, len(groups))
	for _, group := range groups {
		expenses, err := s.store.ListExpensesByGroup(ctx, group.ID)
		if err != nil {
			return nil, err
		}

		var total float64
		for _, exp := range expenses {
			if !exp.Settlement {
				total += exp.Amount
			}
		}

		balances := settlement.NetBalances(expenses, group.Members)
		summaries = append(summaries, GroupSummary{
			Group:      group,
			TotalSpent: total,
			YourNet:    balances[userID],
		})
	}
	return summaries, nil
}

// AddMember adds a registered user to the group by email.
func (s *GroupService) AddMember(ctx context.Context, userID, groupID, email string) (*models.Group, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(userID) {
		return nil, ErrNotMember
	}

	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %s: %w", email, storage.ErrNotFound)
	}
	if group.HasMember(user.ID) {
		return nil, fmt.Errorf("%w: user already in the group", ErrValidation)
	}

	if err := s.store.AddGroupMember(ctx, groupID, user.ID); err != nil {
		return nil, err
	}

	slog.Info("Member added to group", "group_id", groupID, "user_id", user.ID)
	return s.store.GetGroup(ctx, groupID)
}

// Activity returns the newest expenses across all of the caller's groups.
func (s *GroupService) Activity(ctx context.Context, userID string) ([]models.Expense, error) {
	return s.store.ListRecentExpenses(ctx, userID, activityLimit)
}
