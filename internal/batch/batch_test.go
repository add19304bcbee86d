package batch_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/Mictilt/qrdx"
	"github.com/Mictilt/qrdx/internal/batch"
	"github.com/Mictilt/qrdx/internal/config"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const jobsYAML = `
- payload: https://example.com
  preset: modern
  format: svg
  size: small
  filename: site
- payload: hello
  style:
    fgColor: "#ff0000"
    bodyPattern: dots
  size: "120"
- payload: ""
  format: eps
- payload: world
  format: pdf
  size: 300x200
`

func runner(t *testing.T, concurrency int) *batch.Runner {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	return &batch.Runner{Config: cfg, OutDir: filepath.Join(t.TempDir(), "out"), Concurrency: concurrency}
}

func Test_ParseJobs(t *testing.T) {
	jobs, err := batch.ParseJobs([]byte(jobsYAML))
	require.NoError(t, err)
	require.Len(t, jobs, 4)
	assert.Equal(t, "modern", jobs[0].Preset)
	assert.Equal(t, "small", jobs[0].Size)
	assert.Equal(t, "#ff0000", jobs[1].Style.FgColor)

	_, err = batch.ParseJobs([]byte("payload: [\n"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "jobs.yaml")
	require.NoError(t, os.WriteFile(path, []byte(jobsYAML), 0o644))
	jobs, err = batch.LoadJobs(path)
	require.NoError(t, err)
	assert.Len(t, jobs, 4)
}

func Test_Run(t *testing.T) {
	jobs, err := batch.ParseJobs([]byte(jobsYAML))
	require.NoError(t, err)
	r := runner(t, 2)

	results, err := r.Run(context.Background(), jobs)
	require.NoError(t, err)
	require.Len(t, results, 4)

	assert.NoError(t, results[0].Err)
	assert.Equal(t, filepath.Join(r.OutDir, "site.svg"), results[0].Path)
	assert.Equal(t, 2, results[0].Artifact.Version)

	assert.NoError(t, results[1].Err)
	assert.Equal(t, filepath.Join(r.OutDir, "qr-002.png"), results[1].Path)

	assert.ErrorIs(t, results[2].Err, qrdx.ErrInvalidPayload)
	assert.Empty(t, results[2].Path)
	assert.ErrorIs(t, results[3].Err, qrdx.ErrSizeOutOfBounds)

	entries, err := os.ReadDir(r.OutDir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	// no temp files are left behind
	assert.ElementsMatch(t, []string{"site.svg", "qr-002.png"}, names)

	data, err := os.ReadFile(results[0].Path)
	require.NoError(t, err)
	assert.Equal(t, results[0].Artifact.Data, data)
}

func Test_Run_Cancelled(t *testing.T) {
	jobs, err := batch.ParseJobs([]byte(jobsYAML))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results, err := runner(t, 1).Run(ctx, jobs)
	assert.ErrorIs(t, err, context.Canceled)
	require.Len(t, results, 4)
	for _, res := range results {
		assert.ErrorIs(t, res.Err, context.Canceled)
		assert.Nil(t, res.Artifact)
	}
}

func Test_Run_DuplicateFilename(t *testing.T) {
	jobs := []batch.Job{
		{Payload: "a", Filename: "same"},
		{Payload: "b", Filename: "same.png"},
	}
	_, err := runner(t, 0).Run(context.Background(), jobs)
	assert.ErrorIs(t, err, batch.ErrDuplicateFilename)

	// the same base name in another format is a different file
	jobs[1].Filename, jobs[1].Format = "same", "svg"
	results, err := runner(t, 0).Run(context.Background(), jobs)
	require.NoError(t, err)
	assert.NoError(t, results[0].Err)
	assert.NoError(t, results[1].Err)
}

func Test_Run_StaysInOutDir(t *testing.T) {
	r := runner(t, 0)
	results, err := r.Run(context.Background(), []batch.Job{{Payload: "x", Filename: "../../escape.png"}})
	require.NoError(t, err)
	require.NoError(t, results[0].Err)
	assert.Equal(t, filepath.Join(r.OutDir, "escape.png"), results[0].Path)
}
