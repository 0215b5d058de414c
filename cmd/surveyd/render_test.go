package main

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		renderSave, renderPartial = false, false
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func isolateEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, k := range []string{"PAGES_DIR", "DB_DRIVER", "SAVE_PARTIAL", "MAX_SKIPS", "SURVEY_CONFIG"} {
		t.Setenv(k, "")
	}
	results := filepath.Join(dir, "results.csv")
	t.Setenv("RESULTS_PATH", results)
	return results
}

func TestRenderSampleBranch(t *testing.T) {
	results := isolateEnv(t)

	out, err := runCLI(t, "render", "p=1&m=2&a[1]=no&a[2]=Kim")
	require.NoError(t, err)
	assert.Contains(t, out, "Almost done")
	assert.Contains(t, out, `<input type="hidden" name="a[2]" value="Kim">`)
	_, err = os.Stat(results)
	assert.True(t, os.IsNotExist(err), "render is a dry run by default")
}

func TestRenderSave(t *testing.T) {
	results := isolateEnv(t)

	_, err := runCLI(t, "render", "--save", "p=3&m=2&a[1]=no&a[2]=Kim")
	require.NoError(t, err)

	f, err := os.Open(results)
	require.NoError(t, err)
	defer f.Close()
	recs, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, []string{"no", "Kim"}, recs[0][1:])
}

func TestRenderBadQuery(t *testing.T) {
	isolateEnv(t)
	_, err := runCLI(t, "render", "p=%zz")
	assert.Error(t, err)
}
