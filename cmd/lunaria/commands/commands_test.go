package commands_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/lunaria/cmd/lunaria/commands"
	"go.trai.ch/lunaria/internal/app"
	"go.trai.ch/lunaria/internal/core/domain"
)

type fakeApp struct {
	opts      app.RunOptions
	results   []domain.ResolutionResult
	err       error
	cleaned   bool
	cleanPath string
}

func (f *fakeApp) Run(_ context.Context, opts app.RunOptions) ([]domain.ResolutionResult, error) {
	f.opts = opts
	return f.results, f.err
}

func (f *fakeApp) CleanCache(_ context.Context, _, configPath string) error {
	f.cleaned = true
	f.cleanPath = configPath
	return f.err
}

type fakeLogs struct {
	json, verbose bool
}

func (f *fakeLogs) SetJSON(enable bool)    { f.json = enable }
func (f *fakeLogs) SetVerbose(enable bool) { f.verbose = enable }

func sampleResults() []domain.ResolutionResult {
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	latest := domain.CommitRecord{Hash: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", AuthorDate: at, Subject: "Fix typo"}
	tracked := domain.CommitRecord{Hash: "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb", AuthorDate: at, Subject: "Rewrite"}
	return []domain.ResolutionResult{
		{Path: "docs/a.md", LatestChange: latest, LatestTrackedChange: tracked},
		{Path: "docs/guide/b.md", LatestChange: tracked, LatestTrackedChange: tracked},
	}
}

type fakeProgress struct {
	w io.Writer
}

func (f *fakeProgress) SetProgressOutput(w io.Writer) { f.w = w }

func execute(t *testing.T, a commands.Application, logs commands.LogSwitcher, args ...string) (string, error) {
	t.Helper()
	out, _, err := executeWith(t, a, logs, nil, args...)
	return out, err
}

func executeWith(
	t *testing.T,
	a commands.Application,
	logs commands.LogSwitcher,
	progress commands.ProgressSwitcher,
	args ...string,
) (string, *bytes.Buffer, error) {
	t.Helper()
	cli := commands.New(a, logs, progress)
	out, errOut := new(bytes.Buffer), new(bytes.Buffer)
	cli.SetOutput(out, errOut)
	cli.SetArgs(args)
	err := cli.Execute(context.Background())
	return out.String(), errOut, err
}

func TestTrack_PassesOptions(t *testing.T) {
	fake := &fakeApp{}
	_, err := execute(t, fake, nil, "track", "-c", "site/lunaria.yml", "--force", "-p", "8")
	require.NoError(t, err)

	assert.Equal(t, app.RunOptions{ConfigPath: "site/lunaria.yml", Force: true, Parallelism: 8}, fake.opts)
}

func TestTrack_PrintsTable(t *testing.T) {
	fake := &fakeApp{results: sampleResults()}
	out, err := execute(t, fake, nil, "track")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, []string{"docs/a.md", "aaaaaaa", "bbbbbbb"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"docs/guide/b.md", "bbbbbbb", "bbbbbbb"}, strings.Fields(lines[1]))
}

func TestTrack_TableGolden(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	out, err := execute(t, &fakeApp{results: sampleResults()}, nil, "track")
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "track_table", []byte(out))
}

func TestTrack_PrintsJSON(t *testing.T) {
	fake := &fakeApp{results: sampleResults()}
	out, err := execute(t, fake, nil, "track", "--json")
	require.NoError(t, err)

	var decoded []domain.ResolutionResult
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, sampleResults(), decoded)
}

func TestTrack_EmptyJSONIsArray(t *testing.T) {
	out, err := execute(t, &fakeApp{}, nil, "track", "--json")
	require.NoError(t, err)
	assert.Equal(t, "[]\n", out)
}

func TestTrack_Error(t *testing.T) {
	_, err := execute(t, &fakeApp{err: domain.ErrTrackingFailed}, nil, "track")
	assert.True(t, errors.Is(err, domain.ErrTrackingFailed))
}

func TestTrack_RejectsArgs(t *testing.T) {
	_, err := execute(t, &fakeApp{}, nil, "track", "docs/a.md")
	assert.Error(t, err)
}

func TestCacheClean(t *testing.T) {
	fake := &fakeApp{}
	_, err := execute(t, fake, nil, "cache", "clean", "--config", "lunaria.json")
	require.NoError(t, err)
	assert.True(t, fake.cleaned)
	assert.Equal(t, "lunaria.json", fake.cleanPath)
}

func TestLoggingFlags(t *testing.T) {
	logs := &fakeLogs{}
	_, err := execute(t, &fakeApp{}, logs, "--json-logs", "-v", "track")
	require.NoError(t, err)
	assert.True(t, logs.json)
	assert.True(t, logs.verbose)
}

func TestTrack_ProgressFlag(t *testing.T) {
	progress := &fakeProgress{}
	_, stderr, err := executeWith(t, &fakeApp{}, nil, progress, "track", "--progress")
	require.NoError(t, err)
	assert.Same(t, stderr, progress.w)
}

func TestTrack_NoProgressByDefault(t *testing.T) {
	progress := &fakeProgress{}
	_, _, err := executeWith(t, &fakeApp{}, nil, progress, "track")
	require.NoError(t, err)
	assert.Nil(t, progress.w)
}

func TestVersion(t *testing.T) {
	out, err := execute(t, &fakeApp{}, nil, "version")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", out)
}
