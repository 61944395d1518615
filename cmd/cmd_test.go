package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Simi-mac/educafin/internal/assessment"
	"github.com/Simi-mac/educafin/internal/diary"
	"github.com/Simi-mac/educafin/internal/journey"
	"github.com/Simi-mac/educafin/internal/store"
)

// isolate points every config lookup at a fresh temp dir and returns a
// database path inside it.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, k := range []string{
		"EDUCAFIN_DB", "EDUCAFIN_DB_PATH", "EDUCAFIN_LLM_PROVIDER",
		"EDUCAFIN_LOG_LEVEL", "EDUCAFIN_LOG_FILE", "EDUCAFIN_QUESTIONS_FILE",
		"EDUCAFIN_GEMINI_API_KEY", "GEMINI_API_KEY", "API_KEY",
		"EDUCAFIN_OPENAI_API_KEY", "OPENAI_API_KEY",
		"EDUCAFIN_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY",
		"EDUCAFIN_OPENROUTER_API_KEY", "OPENROUTER_API_KEY",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("HOME", dir)
	t.Chdir(dir)
	return filepath.Join(dir, "educafin.db")
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "educafin "+version+"\n", out)
}

func TestDiaryCommands(t *testing.T) {
	db := isolate(t)

	out, err := run(t, "diary", "add", "Almoço", "25,50", "--db", db, "--category", "Alimentação", "--feeling", "Essencial")
	require.NoError(t, err)
	assert.Contains(t, out, "R$ 25,50")

	_, err = run(t, "diary", "add", "Uber", "10", "--db", db, "--category", "Transporte", "--feeling", "Desejo", "--date", "2025-03-01")
	require.NoError(t, err)

	_, err = run(t, "diary", "add", "Nada", "0", "--db", db, "--category", "Transporte", "--feeling", "Desejo", "--date", "")
	assert.Error(t, err, "zero amount is rejected")

	out, err = run(t, "diary", "summary", "--db", db, "--json")
	require.NoError(t, err)
	var sum diary.Summary
	require.NoError(t, json.Unmarshal([]byte(out), &sum))
	assert.Equal(t, 2, sum.Count)
	assert.InDelta(t, 35.5, sum.Total, 1e-9)
	require.NotEmpty(t, sum.ByCategory)
	assert.Equal(t, "Alimentação", sum.ByCategory[0].Label)
	assert.InDelta(t, 71.8, sum.ByCategory[0].Percent, 1e-9)

	out, err = run(t, "diary", "list", "--db", db, "--json=false")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[2], "Almoço", "newest first")
	assert.Contains(t, lines[3], "01/03/2025")

	_, err = run(t, "diary", "clear", "--db", db)
	assert.Error(t, err, "clear needs confirmation")

	_, err = run(t, "diary", "clear", "--db", db, "--yes")
	require.NoError(t, err)
	out, err = run(t, "diary", "list", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Nenhuma despesa registrada ainda.")
}

func TestAssess(t *testing.T) {
	db := isolate(t)

	answers := assessment.AnswerMap{}
	for _, q := range assessment.Default().Questions() {
		answers[q.ID] = q.Options[0]
	}
	sheet, err := yaml.Marshal(assessment.Submission{Name: "Ana", Answers: answers})
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "answers.yaml")
	require.NoError(t, os.WriteFile(path, sheet, 0o644))

	out, err := run(t, "assess", "--answers", path, "--db", db, "--json", "--save", "--goal", "Investir")
	require.NoError(t, err)

	var report assessReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "Ana", report.Name)
	assert.Equal(t, "Investir", report.Goal)
	assert.Equal(t, 100, report.Rounded)
	assert.Equal(t, "Verde", report.Level)
	assert.Empty(t, report.Insights)
	assert.Empty(t, report.Missing)

	st, err := store.Open(db)
	require.NoError(t, err)
	defer st.Close()
	j, err := journey.Load(context.Background(), st.SnapshotRepo())
	require.NoError(t, err)
	assert.Equal(t, journey.StageResults, j.Stage())
	assert.Equal(t, "Investir", j.Profile().Goal)
}

func TestAssessRequiresAnswers(t *testing.T) {
	isolate(t)
	_, err := run(t, "assess", "--answers", "")
	assert.Error(t, err)
}

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	r := assessReport{
		Name:     "Ana",
		Rounded:  30,
		Track:    "Trilha Fundamentos Financeiros",
		Message:  "Você está no caminho.",
		Insights: []string{"Crie um orçamento."},
		Missing:  []string{"budget"},
	}
	printReport(&buf, r, assessment.LevelFor(30))

	out := buf.String()
	assert.Contains(t, out, "Pontuação:  30%")
	assert.Contains(t, out, "Laranja")
	assert.Contains(t, out, "• Crie um orçamento.")
	assert.Contains(t, out, "Perguntas sem resposta: budget")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Alimen", truncate("Alimentação", 6))
	assert.Equal(t, "Saúde", truncate("Saúde", 10))
}
