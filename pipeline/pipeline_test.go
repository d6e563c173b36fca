package pipeline

import (
	"encoding/csv"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omarzanji/parkinsons-detection/report"
)

// writeVoiceCSV writes a synthetic recording table shaped like the
// Parkinson's dataset: a string identifier column, numeric acoustic
// features with class-dependent shifts, and a binary status column.
func writeVoiceCSV(t *testing.T, rows int) string {
	t.Helper()

	rng := rand.New(rand.NewPCG(17, 17))
	var sb strings.Builder
	sb.WriteString("name,MDVP:Fo(Hz),MDVP:Fhi(Hz),MDVP:Flo(Hz),status,spread1,PPE\n")

	for i := 0; i < rows; i++ {
		// Roughly three quarters positive, matching the real data.
		status := 1
		if i%4 == 0 {
			status = 0
		}
		shift := float64(status)*40.0 - 20.0

		fmt.Fprintf(&sb, "phon_R01_S%02d_%d,%.4f,%.4f,%.4f,%d,%.4f,%.4f\n",
			i/6+1, i%6+1,
			150.0+shift+rng.NormFloat64()*5,
			200.0+shift+rng.NormFloat64()*8,
			100.0+shift+rng.NormFloat64()*5,
			status,
			-5.0+float64(status)*1.5+rng.NormFloat64()*0.3,
			0.2+float64(status)*0.1+rng.NormFloat64()*0.02)
	}

	path := filepath.Join(t.TempDir(), "parkinsons.data")
	require.NoError(t, os.WriteFile(path, []byte(sb.String()), 0o600))
	return path
}

func testConfig(t *testing.T, rows int) Config {
	cfg := DefaultConfig()
	cfg.DataPath = writeVoiceCSV(t, rows)
	cfg.ResultsPath = filepath.Join(t.TempDir(), "xgboost_results.csv")
	cfg.NumRounds = 10
	cfg.Seed = 42
	return cfg
}

func readResults(t *testing.T, path string) [][]string {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func TestPipelineSingleRun(t *testing.T) {
	cfg := testConfig(t, 80)
	p := New(cfg, WithReporter(report.NopReporter{}))

	table, err := p.Load()
	require.NoError(t, err)
	assert.Equal(t, 80, table.NumRows())

	results, err := p.RunAll(table)
	require.NoError(t, err)
	require.Len(t, results, 1)

	res := results[0]
	assert.Equal(t, 0, res.Run)
	assert.GreaterOrEqual(t, res.Accuracy, 0.0)
	assert.LessOrEqual(t, res.Accuracy, 100.0)
	assert.Greater(t, res.Elapsed, 0.0)

	// The features shift strongly with the label, so a fitted model
	// should clearly beat chance.
	assert.Greater(t, res.Accuracy, 60.0)

	records := readResults(t, cfg.ResultsPath)
	require.Len(t, records, 1)
	require.Len(t, records[0], 3)
	assert.Equal(t, "0", records[0][0])

	acc, err := strconv.ParseFloat(records[0][1], 64)
	require.NoError(t, err)
	assert.InDelta(t, res.Accuracy, acc, 1e-9)
}

func TestPipelineMultiRunOrdering(t *testing.T) {
	cfg := testConfig(t, 80)
	cfg.NumRuns = 3
	p := New(cfg, WithReporter(report.NopReporter{}))

	table, err := p.Load()
	require.NoError(t, err)

	results, err := p.RunAll(table)
	require.NoError(t, err)
	require.Len(t, results, 3)

	records := readResults(t, cfg.ResultsPath)
	require.Len(t, records, 3)
	for i, record := range records {
		require.Len(t, record, 3)
		assert.Equal(t, strconv.Itoa(i), record[0])
	}
}

func TestPipelineLoadMissingFile(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataPath = filepath.Join(t.TempDir(), "nope.data")
	cfg.ResultsPath = filepath.Join(t.TempDir(), "xgboost_results.csv")
	p := New(cfg, WithReporter(report.NopReporter{}))

	_, err := p.Load()
	require.Error(t, err)

	// Nothing ran, so no results file is written.
	_, statErr := os.Stat(cfg.ResultsPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestPipelineTimeSeededRunsIndependently(t *testing.T) {
	cfg := testConfig(t, 60)
	cfg.Seed = -1
	p := New(cfg, WithReporter(report.NopReporter{}))

	table, err := p.Load()
	require.NoError(t, err)

	res, err := p.Run(table, 0)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, res.Accuracy, 0.0)
	assert.LessOrEqual(t, res.Accuracy, 100.0)
}

func TestWriteResultsFormats(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	results := []RunResult{
		{Run: 0, Accuracy: 93.10344827586206, Elapsed: 0.25},
		{Run: 1, Accuracy: 86.206896551724135, Elapsed: 0.31},
	}
	require.NoError(t, WriteResults(path, results))

	records := readResults(t, path)
	require.Len(t, records, 2)
	for i, record := range records {
		require.Len(t, record, 3)
		assert.Equal(t, strconv.Itoa(results[i].Run), record[0])

		acc, err := strconv.ParseFloat(record[1], 64)
		require.NoError(t, err)
		assert.InDelta(t, results[i].Accuracy, acc, 1e-9)

		elapsed, err := strconv.ParseFloat(record[2], 64)
		require.NoError(t, err)
		assert.InDelta(t, results[i].Elapsed, elapsed, 1e-9)
	}
}
