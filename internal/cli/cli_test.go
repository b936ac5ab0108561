package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/rotacheck/pkg/constraint"
	"github.com/matzehuels/rotacheck/pkg/formation"
)

// swappedFront has the left and middle front players on the wrong sides.
const swappedFront = `{
  "space": "rules",
  "server": 1,
  "players": [
    {"id": "ana", "slot": 1, "x": 7.5, "y": 6},
    {"id": "bea", "slot": 2, "x": 7.5, "y": 2},
    {"id": "cat", "slot": 3, "x": 1.5, "y": 2},
    {"id": "dee", "slot": 4, "x": 4.5, "y": 2},
    {"id": "eva", "slot": 5, "x": 1.5, "y": 6},
    {"id": "fay", "slot": 6, "x": 4.5, "y": 6}
  ]
}`

const legalFront = `{
  "space": "rules",
  "server": 1,
  "players": [
    {"id": "ana", "slot": 1, "x": 7.5, "y": 6},
    {"id": "bea", "slot": 2, "x": 7.5, "y": 2},
    {"id": "cat", "slot": 3, "x": 4.5, "y": 2},
    {"id": "dee", "slot": 4, "x": 1.5, "y": 2},
    {"id": "eva", "slot": 5, "x": 1.5, "y": 6},
    {"id": "fay", "slot": 6, "x": 4.5, "y": 6}
  ]
}`

// isolate runs the test in an empty working and config directory so no
// user configuration leaks in.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	return dir
}

// execute runs the root command and returns what the command printed.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	stdout = &out
	t.Cleanup(func() { stdout = os.Stdout })

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestValidateBaseRotation(t *testing.T) {
	isolate(t)

	out, err := execute(t, "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "base rotation (server right back) is legal")
	assert.Contains(t, out, "0 violations")
}

func TestValidateInvalidServerFlag(t *testing.T) {
	isolate(t)

	_, err := execute(t, "validate", "--server", "7")
	require.Error(t, err)
}

func TestValidateIllegalFile(t *testing.T) {
	dir := isolate(t)
	path := writeFile(t, dir, "swapped.json", swappedFront)

	out, err := execute(t, "validate", path)
	require.Error(t, err)
	assert.Equal(t, "1 of 1 lineups have overlap faults", err.Error())
	assert.Contains(t, out, path+" has overlap faults")
	assert.Contains(t, out, "ROW_ORDER")
	assert.Contains(t, out, "major")
}

func TestValidateExplain(t *testing.T) {
	dir := isolate(t)
	path := writeFile(t, dir, "swapped.json", swappedFront)

	out, err := execute(t, "validate", "--explain", path)
	require.Error(t, err)
	assert.Contains(t, out, "must stand left of")
	assert.Contains(t, out, "move ")
}

func TestValidateJSONBatch(t *testing.T) {
	dir := isolate(t)
	legal := writeFile(t, dir, "legal.json", legalFront)
	missing := filepath.Join(dir, "missing.json")

	out, err := execute(t, "validate", "--json", "--jobs", "2", legal, missing)
	require.Error(t, err)
	assert.Equal(t, "1 of 2 lineups could not be read", err.Error())

	var reports []validateReport
	require.NoError(t, json.Unmarshal([]byte(out), &reports))
	require.Len(t, reports, 2)

	assert.Equal(t, legal, reports[0].Source)
	assert.True(t, reports[0].Legal)
	assert.Empty(t, reports[0].Error)

	assert.Equal(t, missing, reports[1].Source)
	assert.False(t, reports[1].Legal)
	assert.NotEmpty(t, reports[1].Error)
}

func TestValidateStdin(t *testing.T) {
	isolate(t)
	stdin = bytes.NewBufferString(legalFront)
	t.Cleanup(func() { stdin = os.Stdin })

	out, err := execute(t, "validate", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "stdin is legal")
}

func TestValidateTOML(t *testing.T) {
	dir := isolate(t)
	path := writeFile(t, dir, "rotation.toml", `
space = "screen"
server = 1

[frame]
width = 600
height = 360

[[players]]
id = "ana"
slot = 1
x = 500
y = 240

[[players]]
id = "bea"
slot = 2
x = 500
y = 80

[[players]]
id = "cat"
slot = 3
x = 300
y = 80

[[players]]
id = "dee"
slot = 4
x = 100
y = 80

[[players]]
id = "eva"
slot = 5
x = 100
y = 240

[[players]]
id = "fay"
slot = 6
x = 300
y = 240
`)

	out, err := execute(t, "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "is legal")
}

func TestExplain(t *testing.T) {
	dir := isolate(t)
	path := writeFile(t, dir, "swapped.json", swappedFront)

	out, err := execute(t, "explain", path)
	require.NoError(t, err)
	assert.Contains(t, out, "dee")
	assert.Contains(t, out, "major")
	assert.Contains(t, out, "must stand left of")
	assert.Contains(t, out, "move ")
}

func TestExplainLegal(t *testing.T) {
	isolate(t)

	out, err := execute(t, "explain", "--server", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "No overlap faults")
	assert.Contains(t, out, "(server)")
}

func TestBoundsJSON(t *testing.T) {
	isolate(t)

	out, err := execute(t, "bounds", "--slot", "3", "--json")
	require.NoError(t, err)

	var b constraint.Bounds
	require.NoError(t, json.Unmarshal([]byte(out), &b))
	assert.True(t, b.Constrained)
	assert.InDelta(t, 1.53, b.MinX, 1e-9)
	assert.InDelta(t, 7.47, b.MaxX, 1e-9)
	assert.InDelta(t, 0, b.MinY, 1e-9)
	assert.InDelta(t, 5.97, b.MaxY, 1e-9)
	assert.Len(t, b.Reasons, 3)
}

func TestBoundsServer(t *testing.T) {
	isolate(t)

	out, err := execute(t, "bounds", "--slot", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Unconstrained")
}

func TestBoundsErrors(t *testing.T) {
	isolate(t)

	_, err := execute(t, "bounds", "--slot", "9")
	assert.Error(t, err)

	_, err = execute(t, "bounds")
	assert.Error(t, err, "--slot is required")
}

func TestSnap(t *testing.T) {
	isolate(t)

	out, err := execute(t, "snap", "--slot", "4", "--x", "5", "--y", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "snapped from (5.00, 2.00) to (4.47, 2.00)")

	out, err = execute(t, "snap", "--slot", "4", "--x", "1", "--y", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "may stand at (1.00, 3.00)")
}

func TestSnapScreen(t *testing.T) {
	isolate(t)

	// 300 units is 4.5 m in the default 600-wide frame.
	out, err := execute(t, "snap", "--screen", "--slot", "4", "--x", "300", "--y", "80")
	require.NoError(t, err)
	assert.Contains(t, out, "(4.47, 2.00)")
	assert.Contains(t, out, "(298.00, 80.00)")
}

func TestConvertRoundTrip(t *testing.T) {
	dir := isolate(t)
	in := writeFile(t, dir, "legal.json", legalFront)
	screen := filepath.Join(dir, "screen.toml")
	rules := filepath.Join(dir, "rules.json")

	out, err := execute(t, "convert", "--to", "screen", "-o", screen, in)
	require.NoError(t, err)
	assert.Contains(t, out, screen)

	doc, err := formation.Import(screen)
	require.NoError(t, err)
	assert.Equal(t, formation.SpaceScreen, doc.Space)
	require.NotNil(t, doc.Frame)
	assert.Equal(t, 600.0, doc.Frame.Width)
	require.Len(t, doc.Players, 6)
	assert.InDelta(t, 500, doc.Players[0].X, 1e-9)
	assert.InDelta(t, 240, doc.Players[0].Y, 1e-9)

	_, err = execute(t, "convert", "--to", "rules", "-o", rules, screen)
	require.NoError(t, err)

	back, err := formation.Import(rules)
	require.NoError(t, err)
	assert.Equal(t, formation.SpaceRules, back.Space)
	assert.InDelta(t, 7.5, back.Players[0].X, 1e-9)
	assert.InDelta(t, 6, back.Players[0].Y, 1e-9)
}

func TestConvertStdoutFrame(t *testing.T) {
	dir := isolate(t)
	in := writeFile(t, dir, "legal.json", legalFront)

	out, err := execute(t, "convert", "--to", "screen", "--width", "900", "--height", "540", in)
	require.NoError(t, err)

	doc, err := formation.Read(bytes.NewBufferString(out), formation.FormatJSON)
	require.NoError(t, err)
	require.NotNil(t, doc.Frame)
	assert.Equal(t, 900.0, doc.Frame.Width)
	assert.InDelta(t, 750, doc.Players[0].X, 1e-9)
}

func TestConvertErrors(t *testing.T) {
	dir := isolate(t)
	in := writeFile(t, dir, "legal.json", legalFront)

	_, err := execute(t, "convert", "--to", "pixels", in)
	assert.Error(t, err)

	_, err = execute(t, "convert", "--to", "screen", "--width", "-1", "--height", "360", in)
	assert.Error(t, err)
}

func TestConfigErrors(t *testing.T) {
	dir := isolate(t)
	writeFile(t, dir, "rotacheck.yaml", "cache:\n  backend: disk\n")

	_, err := execute(t, "validate")
	assert.Error(t, err)

	_, err = execute(t, "validate", "--config", filepath.Join(dir, "nope.yaml"))
	assert.Error(t, err)
}

func TestCompletionIgnoresConfig(t *testing.T) {
	dir := isolate(t)
	writeFile(t, dir, "rotacheck.yaml", "cache:\n  backend: disk\n")

	out, err := execute(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "rotacheck")
}

func TestCompletionHelp(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	cmd, _, err := root.Find([]string{"completion"})
	require.NoError(t, err)
	assert.Contains(t, cmd.Long, "source <(rotacheck completion bash)")
	assert.Contains(t, cmd.Long, "rotacheck.yaml never breaks")
}

func TestCacheBackendNone(t *testing.T) {
	isolate(t)
	t.Setenv("ROTACHECK_CACHE_BACKEND", "none")

	out, err := execute(t, "validate", "--explain")
	require.NoError(t, err)
	assert.Contains(t, out, "is legal")
	assert.Contains(t, out, "fresh")
}

func TestCacheInfo(t *testing.T) {
	isolate(t)

	out, err := execute(t, "cache", "info")
	require.NoError(t, err)
	assert.Contains(t, out, "memory")
	assert.Contains(t, out, "4096 entries")

	t.Setenv("ROTACHECK_CACHE_BACKEND", "redis")
	out, err = execute(t, "cache", "info")
	require.NoError(t, err)
	assert.Contains(t, out, `"rotacheck:"`)
}

func TestCacheClearWithoutSharedBackend(t *testing.T) {
	isolate(t)

	out, err := execute(t, "cache", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "memory cache lives inside each rotacheck process")
	assert.Contains(t, out, "curl -X DELETE http://localhost:8080/v1/cache")

	t.Setenv("ROTACHECK_CACHE_BACKEND", "none")
	out, err = execute(t, "cache", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "nothing to clear")
}

func TestCacheClearUnreachableRedis(t *testing.T) {
	isolate(t)
	t.Setenv("ROTACHECK_CACHE_BACKEND", "redis")
	t.Setenv("ROTACHECK_REDIS_ADDR", "127.0.0.1:1")

	_, err := execute(t, "cache", "clear")
	assert.Error(t, err)
}

func TestValidateRotations(t *testing.T) {
	dir := isolate(t)
	path := writeFile(t, dir, "legal.json", legalFront)

	out, err := execute(t, "validate", "--rotations", "--json", path)
	require.Error(t, err, "the drawing does not survive every rotation")

	var reports []validateReport
	require.NoError(t, json.Unmarshal([]byte(out), &reports))
	require.Len(t, reports, 6)
	for i, r := range reports {
		assert.Equal(t, fmt.Sprintf("%s (rotation %d)", path, i+1), r.Source)
	}
	assert.True(t, reports[0].Legal)
	// After one rotation the new middle front stands level with the new
	// right front.
	assert.False(t, reports[1].Legal)
}

func TestBoundsListsFaults(t *testing.T) {
	dir := isolate(t)
	swapped := writeFile(t, dir, "swapped.json", swappedFront)
	legal := writeFile(t, dir, "legal.json", legalFront)

	out, err := execute(t, "bounds", "--slot", "4", swapped)
	require.NoError(t, err)
	assert.Contains(t, out, "ROW_ORDER")

	out, err = execute(t, "bounds", "--slot", "4", legal)
	require.NoError(t, err)
	assert.NotContains(t, out, "ROW_ORDER")
}

func TestExplainListsFaultCodes(t *testing.T) {
	dir := isolate(t)
	path := writeFile(t, dir, "swapped.json", swappedFront)

	out, err := execute(t, "explain", path)
	require.NoError(t, err)
	assert.Contains(t, out, "faults")
	assert.Contains(t, out, "ROW_ORDER")
}
