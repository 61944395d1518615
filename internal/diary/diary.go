// Package diary keeps the expense diary: validated entries, breakdowns by
// category and feeling, and Brazilian currency formatting.
package diary

import (
	"context"
	"fmt"

	"github.com/Simi-mac/educafin/internal/store"
)

// Diary reads and writes expenses through the store.
type Diary struct {
	repo store.ExpenseRepo
}

// New returns a diary backed by repo.
func New(repo store.ExpenseRepo) *Diary {
	return &Diary{repo: repo}
}

// Add validates and stores e.
func (d *Diary) Add(ctx context.Context, e Expense) error {
	if err := e.Validate(); err != nil {
		return err
	}
	return d.repo.Add(ctx, e.Record())
}

// List returns every expense, newest first.
func (d *Diary) List(ctx context.Context) ([]Expense, error) {
	recs, err := d.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list diary: %w", err)
	}
	out := make([]Expense, 0, len(recs))
	for _, r := range recs {
		out = append(out, FromRecord(r))
	}
	return History(out), nil
}

// Summary summarizes every stored expense.
func (d *Diary) Summary(ctx context.Context) (Summary, error) {
	list, err := d.List(ctx)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(list), nil
}

// Empty reports whether nothing has been logged yet.
func (d *Diary) Empty(ctx context.Context) (bool, error) {
	recs, err := d.repo.List(ctx)
	if err != nil {
		return false, fmt.Errorf("list diary: %w", err)
	}
	return len(recs) == 0, nil
}

func (d *Diary) Delete(ctx context.Context, id string) error {
	return d.repo.Delete(ctx, id)
}

func (d *Diary) Clear(ctx context.Context) error {
	return d.repo.Clear(ctx)
}
