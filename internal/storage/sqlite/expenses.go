package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/splitpay/splitpay/internal/models"
	"github.com/splitpay/splitpay/internal/storage"
)

// CreateExpense persists an expense with its shares and bumps the group's
// UpdatedAt so group lists sort by activity.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}
	if expense.SplitMethod == "" {
		expense.SplitMethod = models.SplitEqual
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO expenses (id, group_id, description, amount, paid_by, split_method, is_settlement, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.GroupID, expense.Description, expense.Amount,
		expense.PaidBy.ID, expense.SplitMethod, expense.Settlement, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}

	for _, share := range expense.Shares {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO expense_shares (expense_id, user_id, amount) VALUES (?, ?, ?)",
			expense.ID, share.UserID, share.Amount,
		)
		if err != nil {
			return fmt.Errorf("insert share: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE groups SET updated_at = ? WHERE id = ?",
		expense.CreatedAt, expense.GroupID,
	)
	if err != nil {
		return fmt.Errorf("touch group: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// GetExpense retrieves an expense with its shares.
func (s *SQLiteStore) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	exp := &models.Expense{}
	err := s.db.QueryRowContext(ctx, `
		SELECT e.id, e.group_id, e.description, e.amount, e.paid_by,
		       COALESCE(u.name, ''), e.split_method, e.is_settlement, e.created_at
		FROM expenses e
		LEFT JOIN users u ON u.id = e.paid_by
		WHERE e.id = ?`,
		expenseID,
	).Scan(&exp.ID, &exp.GroupID, &exp.Description, &exp.Amount,
		&exp.PaidBy.ID, &exp.PaidBy.Name, &exp.SplitMethod, &exp.Settlement, &exp.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get expense: %w", err)
	}

	shares, err := s.expenseShares(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	exp.Shares = shares
	return exp, nil
}

func (s *SQLiteStore) expenseShares(ctx context.Context, expenseID string) ([]models.Share, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT user_id, amount FROM expense_shares WHERE expense_id = ? ORDER BY user_id",
		expenseID,
	)
	if err != nil {
		return nil, fmt.Errorf("get shares: %w", err)
	}
	defer rows.Close()

	var shares []models.Share
	for rows.Next() {
		var sh models.Share
		if err := rows.Scan(&sh.UserID, &sh.Amount); err != nil {
			return nil, fmt.Errorf("scan share: %w", err)
		}
		shares = append(shares, sh)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate shares: %w", err)
	}
	return shares, nil
}

// UpdateExpense rewrites description and amount. Shares stay as created;
// editing a split means deleting and re-adding the expense.
func (s *SQLiteStore) UpdateExpense(ctx context.Context, expenseID, description string, amount float64) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE expenses SET description = ?, amount = ? WHERE id = ?",
		description, amount, expenseID,
	)
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	return nil
}

// DeleteExpense removes an expense; shares go with it via cascade.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, expenseID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", expenseID)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	return nil
}

// ListExpensesByGroup retrieves a group's expenses, newest first. The payer's
// display name is denormalized onto PaidBy so callers can render histories
// without an extra lookup; it is empty for deleted users.
func (s *SQLiteStore) ListExpensesByGroup(ctx context.Context, groupID string) ([]models.Expense, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT e.id, e.group_id, e.description, e.amount, e.paid_by,
		       COALESCE(u.name, ''), e.split_method, e.is_settlement, e.created_at
		FROM expenses e
		LEFT JOIN users u ON u.id = e.paid_by
		WHERE e.group_id = ?
		ORDER BY e.created_at DESC, e.id`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	return s.collectExpenses(ctx, rows)
}

// ListRecentExpenses retrieves the newest expenses across all groups the
// user belongs to, for the activity feed.
func (s *SQLiteStore) ListRecentExpenses(ctx context.Context, userID string, limit int) ([]models.Expense, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT e.id, e.group_id, e.description, e.amount, e.paid_by,
		       COALESCE(u.name, ''), e.split_method, e.is_settlement, e.created_at
		FROM expenses e
		LEFT JOIN users u ON u.id = e.paid_by
		WHERE e.group_id IN (SELECT group_id FROM group_members WHERE user_id = ?)
		ORDER BY e.created_at DESC, e.id
		LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list recent expenses: %w", err)
	}
	defer rows.Close()

	return s.collectExpenses(ctx, rows)
}

func (s *SQLiteStore) collectExpenses(ctx context.Context, rows *sql.Rows) ([]models.Expense, error) {
	var expenses []models.Expense
	for rows.Next() {
		var exp models.Expense
		if err := rows.Scan(&exp.ID, &exp.GroupID, &exp.Description, &exp.Amount,
			&exp.PaidBy.ID, &exp.PaidBy.Name, &exp.SplitMethod, &exp.Settlement, &exp.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		expenses = append(expenses, exp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}

	for i := range expenses {
		shares, err := s.expenseShares(ctx, expenses[i].ID)
		if err != nil {
			return nil, err
		}
		expenses[i].Shares = shares
	}
	return expenses, nil
}
