package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spigell/ishmatch/internal/match"
	"github.com/spigell/ishmatch/internal/ranking"
)

const testConfig = `
profile:
  region_id: 1
  category_id: sales
  experience: 3
  expected_salary_min: 3000000
weights:
  category: 30
language: ru
rank:
  min-score: 10
`

const testJobs = `[
  {"id": 1, "title": "Sotuvchi", "employer": "Korzinka", "region_id": "1", "category_id": "sales", "salary_min": 3500000, "experience": "1-3 yil", "url": "https://hh.uz/vacancy/1"},
  {"id": 2, "title": "Kassir", "region_id": 2},
  {"id": 3, "title": "Haydovchi", "region_id": "14"}
]`

func executeCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

func writeFixtures(t *testing.T) (string, string) {
	t.Helper()

	dir := t.TempDir()
	config := filepath.Join(dir, "ishmatch.yaml")
	jobs := filepath.Join(dir, "jobs.json")

	require.NoError(t, os.WriteFile(config, []byte(testConfig), 0o644))
	require.NoError(t, os.WriteFile(jobs, []byte(testJobs), 0o644))

	return config, jobs
}

func TestExperienceCommands(t *testing.T) {
	out, err := executeCommand(t, "", "experience", "normalize", "1-3 года")
	require.NoError(t, err)
	assert.Equal(t, "3\n", out)

	_, err = executeCommand(t, "", "experience", "normalize", "juda ko'p")
	assert.Error(t, err)

	out, err = executeCommand(t, "", "experience", "expand", "between1And3")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, "between1And3", lines[0])
	assert.Contains(t, lines, "3")
	assert.Contains(t, lines, "1-3 yil")

	out, err = executeCommand(t, "", "experience", "expand", "  ")
	require.NoError(t, err)
	assert.Empty(t, out)

	out, err = executeCommand(t, "", "experience", "label", "5", "--lang", "ru")
	require.NoError(t, err)
	assert.Equal(t, "Более 5 лет\n", out)

	out, err = executeCommand(t, "", "experience", "label", "--lang", "uz")
	require.NoError(t, err)
	assert.Equal(t, "Tajribasiz\n", out)

	out, err = executeCommand(t, "", "experience", "label", "1", "--years", "3.6", "--lang", "uz")
	require.NoError(t, err)
	assert.Equal(t, "4 yil\n", out)
}

func TestCleanCommands(t *testing.T) {
	out, err := executeCommand(t, "", "clean", "location", "Toshkent", "vil.,", ",", "Chilonzor")
	require.NoError(t, err)
	assert.Equal(t, "Toshkent, Chilonzor\n", out)

	out, err = executeCommand(t, "<p>Talablar: -</p><p>Vazifalar: mijozlar bilan ishlash</p>", "clean", "text")
	require.NoError(t, err)
	assert.Equal(t, "Vazifalar: mijozlar bilan ishlash\n", out)

	out, err = executeCommand(t, "", "clean", "text", "<b>Tom &amp; Jerry</b>")
	require.NoError(t, err)
	assert.Equal(t, "Tom & Jerry\n", out)
}

func TestVersionCommand(t *testing.T) {
	out, err := executeCommand(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "ishmatch version: unknown\n", out)
}

func TestScoreCommand(t *testing.T) {
	config, jobs := writeFixtures(t)

	out, err := executeCommand(t, "", "score", "--config", config, "--jobs", jobs, "--id", "1")
	require.NoError(t, err)

	var result struct {
		ID        string         `json:"id"`
		Region    string         `json:"region"`
		Score     int            `json:"matchScore"`
		Breakdown map[string]int `json:"breakdown"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))

	assert.Equal(t, "1", result.ID)
	assert.Equal(t, "Toshkent shahri", result.Region)
	assert.Equal(t, 40+30+15+10, result.Score)
	assert.Equal(t, 30, result.Breakdown["category"])

	_, err = executeCommand(t, "", "score", "--config", config, "--jobs", jobs, "--id", "404")
	assert.Error(t, err)
}

func TestRankCommand(t *testing.T) {
	config, jobs := writeFixtures(t)

	out, err := executeCommand(t, "", "rank", "--config", config, "--jobs", jobs, "--yes", "--no-ai")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, " 95  1  Sotuvchi / Korzinka", lines[0])
	assert.Equal(t, "     https://hh.uz/vacancy/1", lines[1])
	assert.Equal(t, " 15  2  Kassir", lines[2])
}

func TestGetConfigDefaults(t *testing.T) {
	config, _ := writeFixtures(t)

	_, err := executeCommand(t, "", "score", "--config", config, "--jobs", "missing.json", "--id", "1")
	require.Error(t, err)

	cfg, err := getConfig()
	require.NoError(t, err)

	assert.Equal(t, 40, cfg.Weights.Region, "unset weights keep their defaults")
	assert.Equal(t, 30, cfg.Weights.Category)
	assert.Equal(t, "ru", cfg.Language)
	assert.Equal(t, 10, cfg.Rank.MinScore)
	require.NotNil(t, cfg.Profile.ExpectedSalaryMin)
	assert.Equal(t, int64(3_000_000), *cfg.Profile.ExpectedSalaryMin)
	assert.Equal(t, "3", cfg.Profile.Experience)
}

func TestAppendToExcludeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "excluded.json")
	require.NoError(t, (&ranking.Excluded{Items: []*ranking.ExcludedJob{{ID: "7"}}}).ToFile(path))

	entries, err := ranking.ParseJobs([]byte(testJobs))
	require.NoError(t, err)

	list := &ranking.Entries{}
	for _, job := range entries {
		list.Items = append(list.Items, &ranking.Entry{Job: job})
	}

	require.NoError(t, handleAction(PromptAppendToExcludeFile, &bytes.Buffer{}, zap.NewNop(), &Config{Rank: &ranking.Config{ExcludeFile: path}}, list))
	assert.Equal(t, 0, list.Len())

	excluded, err := ranking.LoadExcluded(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"7", "1", "2", "3"}, excluded.IDs())

	assert.ErrorIs(t, handleAction(PromptQuit, &bytes.Buffer{}, zap.NewNop(), nil, list), errExit)
	assert.Error(t, handleAction("nope", &bytes.Buffer{}, zap.NewNop(), nil, list))
}

func TestPrintEntriesSkipsEmptyParts(t *testing.T) {
	entries := &ranking.Entries{Items: []*ranking.Entry{
		{Job: &match.Job{ID: "7", Title: "Oshpaz", Location: "Samarqand"}, Result: match.Result{Score: 55}},
		{Job: &match.Job{ID: "8", Title: "Farrosh", Employer: " "}, Result: match.Result{Score: 5}},
	}}

	var out bytes.Buffer
	printEntries(&out, entries)

	assert.Equal(t, " 55  7  Oshpaz / Samarqand\n  5  8  Farrosh\n", out.String())
}
