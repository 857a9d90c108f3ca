package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/bob-diagnostic/internal/content"
	"github.com/jonathan/bob-diagnostic/internal/types"
)

// contentDir writes a small but complete content set and returns its directory.
func contentDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeCollection(t, dir, content.CollectionMainChallenges, []types.DiagnosticMainChallenge{
		{CategoryID: "stuck-market", Order: 1, Filters: []string{"for-departement(31)"}},
		{CategoryID: "enhance-methods", Order: 2, Filters: []string{"constant(1)"}},
	})
	writeCollection(t, dir, content.CollectionOverall, []types.DiagnosticTemplate{
		{ID: "o1", CategoryID: "stuck-market", Score: 40, SentenceTemplate: "Le marché %ofCity est tendu."},
		{ID: "o2", CategoryID: "enhance-methods", Score: 70},
	})
	writeCollection(t, dir, content.CollectionUsersCount, []types.UsersCount{
		{DepartementCounts: map[string]int{"31": 1200}},
	})
	return dir
}

func writeCollection(t *testing.T, dir, name string, records any) {
	t.Helper()
	data, err := json.Marshal(records)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+".json"), data, 0644))
}

// run executes the CLI in process and returns its stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("DATABASE_URL", "")
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

const toulouseRequest = `{
	"user": {"profile": {"gender": "FEMININE"}},
	"project": {"project_id": "p1", "city": {"name": "Toulouse", "departement_id": "31"}}
}`

func TestDiagnoseCommand(t *testing.T) {
	out, err := run(t, toulouseRequest, "diagnose", "--content-dir", contentDir(t))
	require.NoError(t, err)

	var got diagnoseOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "p1", got.ProjectID)
	assert.True(t, got.Diagnosed)
	require.NotNil(t, got.Diagnostic)
	assert.Equal(t, "stuck-market", got.Diagnostic.CategoryID)
	assert.Equal(t, 40, got.Diagnostic.OverallScore)
	assert.Equal(t, "Le marché de Toulouse est tendu.", got.Diagnostic.OverallSentence)
	require.Len(t, got.Diagnostic.Categories, 2)
	assert.Equal(t, types.RelevanceNeedsAttention, got.Diagnostic.Categories[0].Relevance)
}

func TestDiagnoseCommand_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "request.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"user": {}, "project": {"city": {"departement_id": "69"}}}`), 0644))

	out, err := run(t, "", "diagnose", "--content-dir", contentDir(t), "--in", path)
	require.NoError(t, err)

	var got diagnoseOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.NotEmpty(t, got.ProjectID, "a project id should be generated")
	require.NotNil(t, got.Diagnostic)
	assert.Equal(t, "enhance-methods", got.Diagnostic.CategoryID)
}

func TestDiagnoseCommand_SkipsDiagnosedProjects(t *testing.T) {
	request := `{"user": {}, "project": {"project_id": "p1", "diagnostic": {"category_id": "bravo", "categories": []}}}`

	out, err := run(t, request, "diagnose", "--content-dir", contentDir(t))
	require.NoError(t, err)
	var got diagnoseOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.False(t, got.Diagnosed)
	assert.Equal(t, "bravo", got.Diagnostic.CategoryID)

	out, err = run(t, request, "diagnose", "--content-dir", contentDir(t), "--force")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.True(t, got.Diagnosed)
	assert.NotEqual(t, "bravo", got.Diagnostic.CategoryID)
}

func TestDiagnoseCommand_Relevance(t *testing.T) {
	out, err := run(t, toulouseRequest, "diagnose", "--content-dir", contentDir(t), "--relevance")
	require.NoError(t, err)

	var got relevanceOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Challenges, 2)
	assert.Equal(t, "stuck-market", got.Challenges[0].Challenge.CategoryID)
	assert.True(t, got.Challenges[0].Challenge.IsHighlighted)
	assert.False(t, got.Challenges[1].Challenge.IsHighlighted)
}

func TestDiagnoseCommand_InvalidRequest(t *testing.T) {
	tests := []struct {
		name    string
		request string
		wantErr string
	}{
		{name: "not JSON", request: `{`, wantErr: "invalid request"},
		{name: "missing project", request: `{"user": {}}`, wantErr: "invalid request"},
		{name: "bad year of birth", request: `{"user": {"profile": {"year_of_birth": 1200}}, "project": {}}`, wantErr: "invalid request"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.request, "diagnose", "--content-dir", contentDir(t))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDiagnoseCommand_RequiresContent(t *testing.T) {
	_, err := run(t, toulouseRequest, "diagnose")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestQuickDiagnoseCommand(t *testing.T) {
	request := `{
		"user": {},
		"project": {"city": {"departement_id": "31"}},
		"diff": {"projects": [{"city": {"departement_id": "31"}}]}
	}`

	out, err := run(t, request, "quick-diagnose", "--content-dir", contentDir(t))
	require.NoError(t, err)

	var got types.QuickDiagnostic
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Comments, 1)
	assert.Equal(t, types.FieldCity, got.Comments[0].Field)
}

func TestQuickDiagnoseCommand_RequiresDiff(t *testing.T) {
	_, err := run(t, toulouseRequest, "quick-diagnose", "--content-dir", contentDir(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "diff")
}

func TestCheckContentCommand(t *testing.T) {
	dir := contentDir(t)

	_, err := run(t, "", "check-content", "--content-dir", dir)
	require.NoError(t, err)

	writeCollection(t, dir, content.CollectionMainChallenges, []types.DiagnosticMainChallenge{
		{CategoryID: "stuck-market", Filters: []string{"for-nobody"}},
		{CategoryID: "enhance-methods"},
	})
	out, err := run(t, "", "check-content", "--content-dir", dir, "--verbose")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 errors")
	assert.Contains(t, out, "for-nobody")
}

func TestCheckContentCommand_ListModels(t *testing.T) {
	out, err := run(t, "", "check-content", "--list-models")
	require.NoError(t, err)
	assert.Contains(t, out, "for-departement(...)")
	assert.Contains(t, out, "for-women")
}

func TestContentDir_InvalidCollection(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, content.CollectionOverall+".json"), []byte(`{"id": "o1"}`), 0644))

	_, err := run(t, toulouseRequest, "diagnose", "--content-dir", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid collection file")
}

func TestImportContentCommand_Flags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "missing flags", args: []string{"import-content"}, wantErr: "required"},
		{name: "unknown collection", args: []string{"import-content", "-c", "nope", "-i", "x.json"}, wantErr: "unknown collection"},
		{name: "missing file", args: []string{"import-content", "-c", content.CollectionRegions, "-i", "/nonexistent.json"}, wantErr: "failed to read input file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, "", tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRootCommand_InvalidLogLevel(t *testing.T) {
	_, err := run(t, "", "check-content", "--list-models", "--log-level", "loud")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log_level")
}
