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

	"github.com/unimatch/backend/internal/domain"
)

const testCatalog = `
institutions:
  - id: tau
    name: Tel Aviv University
    area: center
    fields: [computer-science, law]
    studyFormats: [frontal]
    studyTimes: [morning]
    tuitionRange: low
    minBagrut: 100
    minPsychometric: 700
  - id: bgu
    name: Ben-Gurion University
    area: south
    fields: [computer-science]
    studyFormats: [frontal]
    studyTimes: [morning]
    tuitionRange: low
`

const testProfile = `
firstName: Noa
residenceArea: center
desiredField: [computer-science]
studyTime: morning
budget: low
studyFormat: frontal
bagrutAverage: null
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestMatchCommand(t *testing.T) {
	catalogPath := writeFile(t, "catalog.yaml", testCatalog)
	profilePath := writeFile(t, "profile.yaml", testProfile)

	out, err := execute(t, "", "match", "--profile", profilePath, "--catalog", catalogPath)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.NotEmpty(t, lines)
	assert.Equal(t, " 1. Tel Aviv University (tau)  70%", lines[0])
	assert.Contains(t, out, " 2. Ben-Gurion University (bgu)  57%")
	assert.Contains(t, out, "    - near your residence area")
	assert.NotContains(t, out, "raw ")
}

func TestMatchCommand_Explain(t *testing.T) {
	catalogPath := writeFile(t, "catalog.yaml", testCatalog)
	profilePath := writeFile(t, "profile.yaml", testProfile)

	out, err := execute(t, "", "match", "-p", profilePath, "-c", catalogPath, "--explain")
	require.NoError(t, err)
	assert.Contains(t, out, "    raw 80/115")
	assert.Contains(t, out, "    raw 65/115")
}

func TestMatchCommand_JSONFromStdin(t *testing.T) {
	catalogPath := writeFile(t, "catalog.yaml", testCatalog)

	out, err := execute(t, testProfile, "match", "--profile", "-", "--catalog", catalogPath, "--json")
	require.NoError(t, err)

	var matches []domain.ScoredInstitution
	require.NoError(t, json.Unmarshal([]byte(out), &matches))
	require.Len(t, matches, 2)
	assert.Equal(t, "tau", matches[0].ID)
	assert.Equal(t, 70, matches[0].MatchScore)
}

func TestMatchCommand_NoMatches(t *testing.T) {
	catalogPath := writeFile(t, "catalog.yaml", testCatalog)

	out, err := execute(t, "desiredField: [arts]\n", "match", "--profile", "-", "--catalog", catalogPath)
	require.NoError(t, err)
	assert.Contains(t, out, "no matching institutions")
}

func TestMatchCommand_Errors(t *testing.T) {
	catalogPath := writeFile(t, "catalog.yaml", testCatalog)

	_, err := execute(t, "", "match", "--catalog", catalogPath)
	assert.Error(t, err, "profile flag is required")

	_, err = execute(t, "", "match", "--profile", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = execute(t, "budget: free\n", "match", "--profile", "-", "--catalog", catalogPath)
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)

	_, err = execute(t, "desiredField: [unclosed\n", "match", "--profile", "-")
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)

	_, err = execute(t, testProfile, "match", "--profile", "-", "--catalog", writeFile(t, "bad.yaml", "other: 1"))
	assert.ErrorIs(t, err, domain.ErrCatalogInvalid)
}

func TestMatchCommand_EmbeddedCatalog(t *testing.T) {
	out, err := execute(t, testProfile, "match", "--profile", "-", "--json")
	require.NoError(t, err)

	var matches []domain.ScoredInstitution
	require.NoError(t, json.Unmarshal([]byte(out), &matches))
	assert.NotEmpty(t, matches)
	for i := 1; i < len(matches); i++ {
		assert.GreaterOrEqual(t, matches[i-1].MatchScore, matches[i].MatchScore)
	}
}

func TestCatalogListCommand(t *testing.T) {
	catalogPath := writeFile(t, "catalog.yaml", testCatalog)

	out, err := execute(t, "", "catalog", "list", "--catalog", catalogPath)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, lines[1], "tau")
	assert.Contains(t, lines[1], "computer-science, law")
	assert.Contains(t, lines[2], "bgu")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "unimatch version: unknown\n", out)
}
