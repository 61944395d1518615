package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

const expensesTable = "expenses"

type expenseRepo struct {
	db *sql.DB
}

func (r *expenseRepo) Add(ctx context.Context, rec ExpenseRecord) error {
	query, args := builder().Insert(expensesTable).
		Columns("id", "description", "amount", "category", "feeling", "spent_at").
		Values(rec.ID, rec.Description, rec.Amount, rec.Category, rec.Feeling, rec.SpentAt.UTC().UnixMilli()).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save expense: %w", err)
	}
	return nil
}

func (r *expenseRepo) List(ctx context.Context) ([]ExpenseRecord, error) {
	query, args := builder().Select("id", "description", "amount", "category", "feeling", "spent_at").
		From(builder().Table(expensesTable)).
		OrderBy(entsql.Desc("spent_at"), entsql.Desc("rowid")).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()

	var out []ExpenseRecord
	for rows.Next() {
		var (
			rec ExpenseRecord
			ms  int64
		)
		if err := rows.Scan(&rec.ID, &rec.Description, &rec.Amount, &rec.Category, &rec.Feeling, &ms); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		rec.SpentAt = time.UnixMilli(ms).UTC()
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *expenseRepo) Delete(ctx context.Context, id string) error {
	query, args := builder().Delete(expensesTable).
		Where(entsql.EQ("id", id)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return nil
}

func (r *expenseRepo) Clear(ctx context.Context) error {
	query, args := builder().Delete(expensesTable).Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("clear expenses: %w", err)
	}
	return nil
}
