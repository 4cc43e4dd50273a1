package exec

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script.sh")
	require.NoError(t, os.WriteFile(path, []byte(body), 0755))
	return path
}

func requireBash(t *testing.T) *Runner {
	t.Helper()
	r := New("bash")
	if !r.Exists("bash") {
		t.Skip("bash not available")
	}
	return r
}

func TestRedactArgs(t *testing.T) {
	args := []string{"-c", "/ws", "-p", "hunter2", "--is_base", "y", "--password", "s3cret"}
	got := RedactArgs(args)

	assert.Equal(t, []string{"-c", "/ws", "-p", "********", "--is_base", "y", "--password", "********"}, got)
	assert.Equal(t, "hunter2", args[3], "input must not be modified")
}

func TestRedactArgs_TrailingFlag(t *testing.T) {
	assert.Equal(t, []string{"--password"}, RedactArgs([]string{"--password"}))
}

func TestCommandLine(t *testing.T) {
	assert.Equal(t, "bash install.sh -p ********", CommandLine("bash", []string{"install.sh", "-p", "pw"}))
}

func TestRunner_RunScript_Success(t *testing.T) {
	r := requireBash(t)
	script := writeScript(t, "echo \"args:$*\"\n")

	res, err := r.RunScript(context.Background(), script, []string{"--is_base", "y"})
	require.NoError(t, err)
	assert.True(t, res.Success())
	assert.Equal(t, "args:--is_base y\n", res.Stdout)
}

func TestRunner_RunScript_NonZeroExit(t *testing.T) {
	r := requireBash(t)
	script := writeScript(t, "echo boom >&2\nexit 3\n")

	res, err := r.RunScript(context.Background(), script, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, res.ExitCode)
	assert.Equal(t, "boom\n", res.Stderr)
	assert.False(t, res.Success())
}

func TestRunner_RunScriptWithOutput(t *testing.T) {
	r := requireBash(t)
	script := writeScript(t, "echo one\necho two >&2\nprintf three\n")

	var lines []string
	_, err := r.RunScriptWithOutput(context.Background(), script, nil, func(line string) {
		lines = append(lines, line)
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"one", "two", "three"}, lines)
}

func TestRunner_RunWithStdin(t *testing.T) {
	r := requireBash(t)

	res, err := r.RunWithStdin(context.Background(), "hello\n", "bash", "-c", "read line; echo got:$line")
	require.NoError(t, err)
	assert.Equal(t, "got:hello\n", res.Stdout)
}

func TestRunner_Run_ExitError(t *testing.T) {
	r := requireBash(t)

	_, err := r.Run("bash", "-c", "echo nope >&2; exit 2")
	require.Error(t, err)

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Result.ExitCode)
	assert.Contains(t, err.Error(), "nope")
}

func TestRunner_RunLines(t *testing.T) {
	r := requireBash(t)

	lines, err := r.RunLines("bash", "-c", "printf 'a\\nb\\n'")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, lines)
}

func TestRunner_MissingCommand(t *testing.T) {
	r := New("bash")
	_, err := r.RunWithStdin(context.Background(), "", "crunchsetup-no-such-command")
	assert.Error(t, err)
}

func TestRunner_DryRun(t *testing.T) {
	var out bytes.Buffer
	r := &Runner{Shell: "bash", DryRun: true, Out: &out}

	res, err := r.RunScript(context.Background(), "/res/install.sh", []string{"-p", "pw", "-c", "/ws"})
	require.NoError(t, err)
	assert.True(t, res.Success())
	assert.Equal(t, "would run: bash /res/install.sh -p ******** -c /ws\n", out.String())
}

func TestLineWriter(t *testing.T) {
	var lines []string
	w := &lineWriter{onLine: func(l string) { lines = append(lines, l) }}

	w.Write([]byte("par"))
	w.Write([]byte("tial\nnext\nla"))
	w.Flush()

	assert.Equal(t, []string{"partial", "next", "la"}, lines)
}
