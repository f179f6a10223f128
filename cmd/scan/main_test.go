package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobflag-engine/internal/domain"
	"jobflag-engine/internal/scan"
)

func TestReadURLs(t *testing.T) {
	p := filepath.Join(t.TempDir(), "urls.txt")
	require.NoError(t, os.WriteFile(p, []byte("# saved searches\nhttps://www.indeed.com/viewjob?jk=1\n\n  https://www.linkedin.com/jobs/view/2  \n"), 0o644))

	got, err := readURLs(p)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://www.indeed.com/viewjob?jk=1",
		"https://www.linkedin.com/jobs/view/2",
	}, got)

	_, err = readURLs(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestWriteResults(t *testing.T) {
	v := domain.Verdict{Score: 80}
	v.Normalize()

	var buf bytes.Buffer
	failed := writeResults(&buf, []scan.Result{
		{URL: "a", Verdict: &v},
		{URL: "b", Err: "fetch failed"},
	})
	assert.Equal(t, 1, failed)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"score":80`)
	assert.Contains(t, lines[1], `"error":"fetch failed"`)
}
