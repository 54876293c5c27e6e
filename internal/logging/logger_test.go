package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func reset(t *testing.T) {
	t.Helper()
	t.Cleanup(func() { UseLogger(zap.NewNop(), Options{}) })
}

func TestDisabledByDefault(t *testing.T) {
	reset(t)
	require.NoError(t, Initialize(Options{}))

	assert.False(t, IsDebugMode())
	assert.False(t, IsCategoryEnabled(CategoryParse))

	// no-op loggers must be safe to call
	Get(CategoryParse).Info("ignored %d", 1)
}

func TestCategoryFiltering(t *testing.T) {
	reset(t)
	core, logs := observer.New(zapcore.DebugLevel)
	UseLogger(zap.New(core), Options{
		DebugMode:  true,
		Categories: map[string]bool{"parse": false, "analyzer": true},
	})

	Get(CategoryParse).Info("hidden")
	Get(CategoryAnalyzer).Info("visible %s", "entry")
	Get(CategoryOutput).Debug("unlisted categories default to enabled")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "visible entry", entries[0].Message)
	assert.Equal(t, "analyzer", entries[0].ContextMap()["category"])
	assert.Equal(t, "output", entries[1].ContextMap()["category"])
}

func TestWithCarriesFields(t *testing.T) {
	reset(t)
	core, logs := observer.New(zapcore.InfoLevel)
	UseLogger(zap.New(core), Options{DebugMode: true})

	Get(CategoryBatch).With("run_id", "abc").Info("started")

	entries := logs.FilterField(zap.String("run_id", "abc")).All()
	require.Len(t, entries, 1)
	assert.Equal(t, "started", entries[0].Message)
}

func TestInitializeWritesFile(t *testing.T) {
	reset(t)
	path := filepath.Join(t.TempDir(), "logs", "tsanalyzer.log")

	require.NoError(t, Initialize(Options{
		DebugMode: true,
		Level:     "debug",
		Format:    "json",
		File:      path,
	}))
	Boot("booted with %s", "defaults")
	Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `"category":"boot"`), string(data))
	assert.True(t, strings.Contains(string(data), "booted with defaults"))
}

func TestInitializeRejectsBadLevel(t *testing.T) {
	reset(t)
	err := Initialize(Options{DebugMode: true, Level: "loud"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}
