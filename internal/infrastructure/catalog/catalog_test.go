package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unimatch/backend/internal/domain"
)

const validDoc = `
institutions:
  - id: alpha
    name: "  Alpha College "
    type: college
    area: north
    fields: [computer-science, " law "]
    studyFormats: [frontal, online]
    studyTimes: [evening]
    tuitionRange: medium
    minBagrut: 90
    acceptsMechina: true
  - id: beta
    name: Beta University
    area: south
    fields: [medicine]
    tuitionRange: high
`

func TestParse_Valid(t *testing.T) {
	institutions, err := Parse([]byte(validDoc))
	require.NoError(t, err)
	require.Len(t, institutions, 2)

	alpha := institutions[0]
	assert.Equal(t, "alpha", alpha.ID)
	assert.Equal(t, "Alpha College", alpha.Name)
	assert.Equal(t, domain.InstitutionCollege, alpha.Type)
	assert.Equal(t, domain.RegionNorth, alpha.Area)
	assert.Equal(t, []string{"computer-science", "law"}, alpha.Fields)
	assert.Equal(t, []domain.StudyFormat{domain.StudyFormatFrontal, domain.StudyFormatOnline}, alpha.StudyFormats)
	assert.Equal(t, []domain.StudyTime{domain.StudyTimeEvening}, alpha.StudyTimes)
	assert.Equal(t, domain.BudgetMedium, alpha.TuitionRange)
	assert.Equal(t, 90.0, alpha.MinBagrut)
	assert.Zero(t, alpha.MinPsychometric)
	assert.True(t, alpha.AcceptsMechina)

	beta := institutions[1]
	assert.Equal(t, "beta", beta.ID)
	assert.Empty(t, beta.StudyFormats)
	assert.Empty(t, beta.StudyTimes)
	assert.False(t, beta.AcceptsMechina)
}

func TestParse_CollapsesLabelWhitespace(t *testing.T) {
	doc := `
institutions:
  - id: gamma
    name: "Gamma   Institute"
    area: center
    fields: ["Computer  Science", " Law\tand Policy "]
    tuitionRange: low
`
	institutions, err := Parse([]byte(doc))
	require.NoError(t, err)
	require.Len(t, institutions, 1)
	assert.Equal(t, "Gamma Institute", institutions[0].Name)
	assert.Equal(t, []string{"Computer Science", "Law and Policy"}, institutions[0].Fields)
}

func TestParse_JSON(t *testing.T) {
	doc := `{"institutions":[{"id":"j1","name":"Json U","area":"center","fields":["law"],"tuitionRange":"low"}]}`

	institutions, err := Parse([]byte(doc))
	require.NoError(t, err)
	require.Len(t, institutions, 1)
	assert.Equal(t, "Json U", institutions[0].Name)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty", "   "},
		{"not yaml", "institutions: [unclosed"},
		{"missing institutions", "other: 1"},
		{"missing id", "institutions:\n  - name: X\n    area: north\n    fields: [a]\n    tuitionRange: low\n"},
		{"bad id characters", "institutions:\n  - id: a b\n    name: X\n    area: north\n    fields: [a]\n    tuitionRange: low\n"},
		{"unknown area", "institutions:\n  - id: a\n    name: X\n    area: mars\n    fields: [a]\n    tuitionRange: low\n"},
		{"empty fields", "institutions:\n  - id: a\n    name: X\n    area: north\n    fields: []\n    tuitionRange: low\n"},
		{"unknown tier", "institutions:\n  - id: a\n    name: X\n    area: north\n    fields: [a]\n    tuitionRange: free\n"},
		{"unknown format", "institutions:\n  - id: a\n    name: X\n    area: north\n    fields: [a]\n    tuitionRange: low\n    studyFormats: [remote]\n"},
		{"negative bagrut", "institutions:\n  - id: a\n    name: X\n    area: north\n    fields: [a]\n    tuitionRange: low\n    minBagrut: -1\n"},
		{"duplicate id", "institutions:\n  - id: a\n    name: X\n    area: north\n    fields: [a]\n    tuitionRange: low\n  - id: a\n    name: Y\n    area: south\n    fields: [b]\n    tuitionRange: low\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrCatalogInvalid)
		})
	}
}

func TestEmbedded(t *testing.T) {
	c, err := Embedded()
	require.NoError(t, err)
	assert.Greater(t, c.Len(), 10)

	all, err := c.All(context.Background())
	require.NoError(t, err)

	areas := map[domain.Region]bool{}
	for _, inst := range all {
		assert.NotEmpty(t, inst.Name, inst.ID)
		assert.NotEmpty(t, inst.Fields, inst.ID)
		assert.NotEqual(t, -1, inst.TuitionRange.Index(), inst.ID)
		areas[inst.Area] = true
	}
	for _, r := range []domain.Region{domain.RegionNorth, domain.RegionCenter, domain.RegionJerusalem, domain.RegionSouth} {
		assert.True(t, areas[r], "no institution in %s", r)
	}
}

func TestCatalog_ByID(t *testing.T) {
	institutions, err := Parse([]byte(validDoc))
	require.NoError(t, err)
	c := New(institutions)
	ctx := context.Background()

	got, err := c.ByID(ctx, "beta")
	require.NoError(t, err)
	assert.Equal(t, "Beta University", got.Name)

	_, err = c.ByID(ctx, "gamma")
	assert.ErrorIs(t, err, domain.ErrInstitutionNotFound)
}

func TestCatalog_AllReturnsCopy(t *testing.T) {
	institutions, err := Parse([]byte(validDoc))
	require.NoError(t, err)
	c := New(institutions)
	ctx := context.Background()

	all, err := c.All(ctx)
	require.NoError(t, err)
	all[0].Name = "changed"

	again, err := c.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Alpha College", again[0].Name)
	assert.Equal(t, "alpha", again[0].ID)
	assert.Equal(t, "beta", again[1].ID)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validDoc), 0o644))

	c, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, domain.ErrCatalogNotFound)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("other: 1"), 0o644))
	_, err = LoadFile(bad)
	assert.ErrorIs(t, err, domain.ErrCatalogInvalid)
}

func TestLoad(t *testing.T) {
	ctx := context.Background()

	c, err := Load(ctx, Options{})
	require.NoError(t, err)
	assert.Greater(t, c.Len(), 0)

	_, err = Load(ctx, Options{Source: "file"})
	assert.Error(t, err)

	_, err = Load(ctx, Options{Source: "ftp"})
	assert.Error(t, err)
}
