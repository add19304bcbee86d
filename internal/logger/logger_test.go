package logger_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mictilt/qrdx/internal/logger"
)

func Test_Named_BeforeInit(t *testing.T) {
	logger.Log = nil
	l := logger.Named("server")
	require.NotNil(t, l)
	assert.NotPanics(t, func() { l.Infow("dropped", "k", 1) })
}

func Test_Init_LogToFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, logger.Init(logger.Config{Debug: true, LogToFile: true, LogsDir: dir}))
	t.Cleanup(func() { logger.Log = nil })

	l := logger.Named("batch")
	assert.Equal(t, "batch", l.Name)
	l.Debugw("job written", "file", "a.png")
	_ = l.Sync()

	files, err := filepath.Glob(filepath.Join(dir, "qrdx-*.log"))
	require.NoError(t, err)
	require.Len(t, files, 1)
	data, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"job written"`)
	assert.Contains(t, string(data), `"logger":"qrdx.batch"`)
	assert.NotNil(t, l.Zap())
}
