package store

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"entgo.io/ent"

	"github.com/Simi-mac/educafin/ent/schema"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "educafin.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func countRows(t *testing.T, s *Store, table string) int {
	t.Helper()
	var n int
	if err := s.DB().QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}

func schemaColumns(s ent.Interface) []string {
	var fields []ent.Field
	for _, m := range s.Mixin() {
		fields = append(fields, m.Fields()...)
	}
	fields = append(fields, s.Fields()...)
	cols := make([]string, 0, len(fields))
	for _, f := range fields {
		cols = append(cols, f.Descriptor().Name)
	}
	return cols
}

func TestTablesMatchSchema(t *testing.T) {
	s := openTestStore(t)

	tables := map[string]ent.Interface{
		"llm_request_events": schema.LLMRequestEvent{},
		"expenses":           schema.Expense{},
		"snapshots":          schema.Snapshot{},
	}
	for table, sch := range tables {
		rows, err := s.DB().Query("SELECT name FROM pragma_table_info(?)", table)
		if err != nil {
			t.Fatalf("table_info %s: %v", table, err)
		}
		have := map[string]bool{}
		for rows.Next() {
			var name string
			if err := rows.Scan(&name); err != nil {
				t.Fatalf("scan: %v", err)
			}
			have[name] = true
		}
		rows.Close()

		for _, col := range schemaColumns(sch) {
			if !have[col] {
				t.Errorf("%s: missing column %q", table, col)
			}
		}
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestMigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "educafin.db")
	for i := 0; i < 2; i++ {
		s, err := Open(path)
		if err != nil {
			t.Fatalf("open #%d: %v", i, err)
		}
		s.Close()
	}
}

func TestMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)

	for _, table := range []string{"llm_request_events", "expenses", "snapshots", "global_sequence"} {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s: %v", table, err)
		}
	}
}

func TestSnapshotSaveAndLatest(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	snap, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest (empty): %v", err)
	}
	if snap != nil {
		t.Fatal("expected nil snapshot when none exist")
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	err = repo.Save(ctx, &Snapshot{
		Sequence:  42,
		Timestamp: now,
		Data: SnapshotData{
			Version: 1,
			Journey: json.RawMessage(`{"stage":"results"}`),
		},
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	snap, err = repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap == nil {
		t.Fatal("expected non-nil snapshot")
	}
	if snap.Sequence != 42 {
		t.Errorf("sequence = %d, want 42", snap.Sequence)
	}
	if !snap.Timestamp.Equal(now) {
		t.Errorf("timestamp = %v, want %v", snap.Timestamp, now)
	}
	if string(snap.Data.Journey) != `{"stage":"results"}` {
		t.Errorf("journey = %s", snap.Data.Journey)
	}
}

func TestSnapshotSaveAssignsSequence(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	first := &Snapshot{Data: SnapshotData{Version: 1}}
	second := &Snapshot{Data: SnapshotData{Version: 1}}
	if err := repo.Save(ctx, first); err != nil {
		t.Fatalf("save first: %v", err)
	}
	if err := repo.Save(ctx, second); err != nil {
		t.Fatalf("save second: %v", err)
	}

	if first.Sequence == 0 || second.Sequence <= first.Sequence {
		t.Errorf("sequences not increasing: %d then %d", first.Sequence, second.Sequence)
	}
	if first.Timestamp.IsZero() {
		t.Error("expected timestamp to be filled")
	}
}

func TestSnapshotPrune(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		err := repo.Save(ctx, &Snapshot{
			Sequence: int64(i + 1),
			Data:     SnapshotData{Version: 1},
		})
		if err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	if err := repo.Prune(ctx, 5); err != nil {
		t.Fatalf("prune: %v", err)
	}
	if n := countRows(t, s, "snapshots"); n != 5 {
		t.Errorf("remaining snapshots = %d, want 5", n)
	}

	snap, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap.Sequence != 7 {
		t.Errorf("latest sequence = %d, want 7", snap.Sequence)
	}

	// Fewer than keep is a no-op.
	if err := repo.Prune(ctx, 10); err != nil {
		t.Fatalf("prune: %v", err)
	}
	if n := countRows(t, s, "snapshots"); n != 5 {
		t.Errorf("remaining snapshots = %d, want 5", n)
	}
}

func TestSnapshotClear(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	if err := repo.Save(ctx, &Snapshot{Data: SnapshotData{Version: 1}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	snap, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap != nil {
		t.Fatalf("expected no snapshot after clear, got %+v", snap)
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	for i, seq := range seqs {
		if want := int64(i + 1); seq != want {
			t.Errorf("seq[%d] = %d, want %d", i, seq, want)
		}
	}
}

func TestExpenseRepo(t *testing.T) {
	s := openTestStore(t)
	repo := s.ExpenseRepo()
	ctx := context.Background()

	base := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	recs := []ExpenseRecord{
		{ID: "a", Description: "Mercado", Amount: 120.5, Category: "Alimentação", Feeling: "Essencial", SpentAt: base},
		{ID: "b", Description: "Cinema", Amount: 40, Category: "Lazer", Feeling: "Desejo", SpentAt: base.Add(48 * time.Hour)},
		{ID: "c", Description: "Ônibus", Amount: 4.4, Category: "Transporte", Feeling: "Essencial", SpentAt: base.Add(24 * time.Hour)},
	}
	for _, r := range recs {
		if err := repo.Add(ctx, r); err != nil {
			t.Fatalf("add %s: %v", r.ID, err)
		}
	}

	got, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	wantOrder := []string{"b", "c", "a"}
	for i, id := range wantOrder {
		if got[i].ID != id {
			t.Errorf("got[%d].ID = %q, want %q", i, got[i].ID, id)
		}
	}
	if got[2].Amount != 120.5 || got[2].Category != "Alimentação" || !got[2].SpentAt.Equal(base) {
		t.Errorf("round trip mismatch: %+v", got[2])
	}

	if err := repo.Delete(ctx, "c"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.Delete(ctx, "missing"); err != nil {
		t.Fatalf("delete missing: %v", err)
	}
	if n := countRows(t, s, "expenses"); n != 2 {
		t.Errorf("after delete = %d, want 2", n)
	}

	if err := repo.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if n := countRows(t, s, "expenses"); n != 0 {
		t.Errorf("after clear = %d, want 0", n)
	}
}

func TestExpenseRepoRejectsNonPositiveAmount(t *testing.T) {
	s := openTestStore(t)
	err := s.ExpenseRepo().Add(context.Background(), ExpenseRecord{
		ID: "x", Description: "x", Amount: 0, Category: "Outros", Feeling: "Desejo", SpentAt: time.Now(),
	})
	if err == nil {
		t.Fatal("expected CHECK constraint violation")
	}
}

func TestEventRepoAppendAndQuery(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "onboarding", InputTokens: 100, OutputTokens: 50, LatencyMs: 200, Success: true, RequestBody: "req", ResponseBody: "resp"},
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "advice", InputTokens: 30, OutputTokens: 90, LatencyMs: 100, Success: true},
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "advice", LatencyMs: 300, Success: false, ErrorMessage: "boom"},
	}
	for i, e := range events {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	all, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("len = %d, want 3", len(all))
	}
	if all[0].ErrorMessage != "boom" || all[0].Success {
		t.Errorf("expected newest first, got %+v", all[0])
	}

	limited, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 1})
	if err != nil {
		t.Fatalf("query limit: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("limit: len = %d, want 1", len(limited))
	}

	advice, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "advice"})
	if err != nil {
		t.Fatalf("query purpose: %v", err)
	}
	if len(advice) != 2 {
		t.Errorf("purpose filter: len = %d, want 2", len(advice))
	}

	after, err := repo.QueryLLMEvents(ctx, QueryOpts{After: all[2].Sequence})
	if err != nil {
		t.Fatalf("query after: %v", err)
	}
	if len(after) != 2 {
		t.Errorf("after filter: len = %d, want 2", len(after))
	}

	got, err := repo.GetLLMEvent(ctx, all[2].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.RequestBody != "req" || got.ResponseBody != "resp" {
		t.Errorf("get: unexpected event %+v", got)
	}

	missing, err := repo.GetLLMEvent(ctx, 9999)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for missing event, got %+v", missing)
	}
}

func TestEventRepoUsage(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, e := range []LLMRequestEventData{
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "advice", InputTokens: 10, OutputTokens: 20, LatencyMs: 100, Success: true},
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "advice", InputTokens: 30, OutputTokens: 40, LatencyMs: 300, Success: true},
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "onboarding", LatencyMs: 50, Success: false},
	} {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage by purpose: %v", err)
	}
	if len(byPurpose) != 2 {
		t.Fatalf("len = %d, want 2", len(byPurpose))
	}
	adv := byPurpose[0]
	if adv.Purpose != "advice" || adv.Calls != 2 || adv.InputTokens != 40 || adv.OutputTokens != 60 || adv.AvgLatencyMs != 200 {
		t.Errorf("advice usage = %+v", adv)
	}
	if onb := byPurpose[1]; onb.Failures != 1 {
		t.Errorf("onboarding failures = %d, want 1", onb.Failures)
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage by model: %v", err)
	}
	if len(byModel) != 1 || byModel[0].Calls != 2 {
		t.Errorf("usage by model = %+v, want one row with 2 successful calls", byModel)
	}
}

func TestDefaultDBPathHonoursEnv(t *testing.T) {
	want := filepath.Join(t.TempDir(), "nested", "custom.db")
	t.Setenv("EDUCAFIN_DB", want)

	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("DefaultDBPath: %v", err)
	}
	if got != want {
		t.Errorf("path = %q, want %q", got, want)
	}
}

func TestDefaultDBPathUsesXDG(t *testing.T) {
	dataHome := t.TempDir()
	t.Setenv("EDUCAFIN_DB", "")
	t.Setenv("XDG_DATA_HOME", dataHome)

	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("DefaultDBPath: %v", err)
	}
	if want := filepath.Join(dataHome, "educafin", "educafin.db"); got != want {
		t.Errorf("path = %q, want %q", got, want)
	}
}
