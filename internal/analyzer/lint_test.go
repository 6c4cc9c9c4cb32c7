package analyzer

import (
	"context"
	"errors"
	"testing"

	"github.com/repopulse/repopulse/internal/contract"
	"github.com/repopulse/repopulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVetOutput(t *testing.T) {
	tests := []struct {
		name         string
		out          string
		wantWarnings int64
		wantErrors   int64
	}{
		{"clean", "", 0, 0},
		{
			"findings only",
			"# example.com/pkg\npkg/a.go:10:2: unreachable code\npkg/b.go:3:1: result of fmt.Sprintf call not used\n",
			2, 0,
		},
		{
			"compile error",
			"# example.com/pkg\npkg/a.go:5:10: undefined: missingFunc\n",
			0, 1,
		},
		{
			"mixed",
			"pkg/a.go:10:2: unreachable code\npkg/b.go:5:1: undefined: gone\nnot a finding line\n",
			1, 1,
		},
		{"no column", "pkg/a.go:12: struct field tag bad syntax\n", 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warnings, errs := parseVetOutput(tt.out)
			assert.Equal(t, tt.wantWarnings, warnings)
			assert.Equal(t, tt.wantErrors, errs)
		})
	}
}

func TestLintAnalyzerSkipsNonGo(t *testing.T) {
	a := NewLintAnalyzer(&fakeRunner{})
	metrics, diags, err := a.Gather(context.Background(), &contract.Config{ProjectRoot: t.TempDir()})
	require.NoError(t, err)
	assert.Empty(t, metrics)
	require.Len(t, diags, 1)
	assert.Equal(t, schema.InfoLevel, diags[0].Level)
}

func TestLintAnalyzerParsesVetError(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "go.mod", "module example.com/demo\n")

	// go vet exits non-zero on findings; the runner folds stderr into the error.
	runner := &fakeRunner{errs: map[string]error{
		"go vet ./...": errors.New("go vet ./...: exit status 1: pkg/a.go:10:2: unreachable code"),
	}}

	a := NewLintAnalyzer(runner)
	metrics, diags, err := a.Gather(context.Background(), &contract.Config{ProjectRoot: root})
	require.NoError(t, err)
	assert.Empty(t, diags)

	warnings := metricByID(t, metrics, schema.MetricLintWarnings)
	count, ok := warnings.Value.AsCount()
	require.True(t, ok)
	assert.Equal(t, int64(1), count)

	errorsMetric := metricByID(t, metrics, schema.MetricLintErrors)
	count, ok = errorsMetric.Value.AsCount()
	require.True(t, ok)
	assert.Equal(t, int64(0), count)
}

func TestLintAnalyzerCleanProject(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "go.mod", "module example.com/demo\n")

	a := NewLintAnalyzer(&fakeRunner{outputs: map[string]string{"go vet ./...": ""}})
	metrics, _, err := a.Gather(context.Background(), &contract.Config{ProjectRoot: root})
	require.NoError(t, err)

	for _, id := range []string{schema.MetricLintWarnings, schema.MetricLintErrors} {
		m := metricByID(t, metrics, id)
		count, ok := m.Value.AsCount()
		require.True(t, ok)
		assert.Equal(t, int64(0), count, "id=%s", id)
	}
}
