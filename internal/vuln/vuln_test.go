package vuln

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSeverities(t *testing.T) {
	got, err := ParseSeverities("low, critical,HIGH,low")
	require.NoError(t, err)
	assert.Equal(t, []Severity{Critical, High, Low}, got)

	all, err := ParseSeverities("")
	require.NoError(t, err)
	assert.Equal(t, Severities, all)

	separators, err := ParseSeverities(" , ,")
	require.NoError(t, err)
	assert.Equal(t, Severities, separators)

	_, err = ParseSeverities("HIGH,SEVERE")
	assert.Error(t, err)
}

func TestParseSources(t *testing.T) {
	got, err := ParseSources("github")
	require.NoError(t, err)
	assert.Equal(t, []Source{SourceGitHub}, got)

	separators, err := ParseSources(",")
	require.NoError(t, err)
	assert.Equal(t, Sources, separators)

	_, err = ParseSources("osv")
	assert.Error(t, err)
}

func TestJoin(t *testing.T) {
	assert.Equal(t, "CRITICAL,LOW", Join([]Severity{Critical, Low}))
	assert.Equal(t, "", Join([]Source(nil)))
}
