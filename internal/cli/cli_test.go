package cli

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/gwrite"
)

const testConfig = `[gwrite]
default_profile = "points"

[gwrite.points]
unit = "px"
segment = "{x:.1f} {y:.1f} {pen}\n"
document_end = "end {filename}\n"
info = "Plain points."

[gwrite.points.default_values]
pen = 1

[gwrite.broken]
segment = "{x"
`

const testDocument = `layers:
  - lines:
      - [[0, 0], [1, 2]]
`

// run executes the root command with a fresh flag state and an empty home
// directory. Commands share global state so these tests are not parallel.
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	return runIn(t, t.TempDir(), stdin, args...)
}

func runIn(t *testing.T, home, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)
	profileName, defaults, configPath, verbose = "", nil, "", false

	var stdout, stderr bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeConfig(t *testing.T) string {
	t.Helper()
	return writeConfigText(t, testConfig)
}

func writeConfigText(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gwrite.toml")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o600))
	return path
}

func TestWriteToStdout(t *testing.T) {
	cfg := writeConfig(t)
	stdout, stderr, err := run(t, testDocument, "write", "-c", cfg, "-", "-")
	require.NoError(t, err)
	assert.Equal(t, "0.0 0.0 1\n1.0 2.0 1\nend <stdout>\n", stdout)
	assert.Contains(t, stderr, "Plain points.")
}

func TestWriteUserDefault(t *testing.T) {
	cfg := writeConfig(t)
	stdout, _, err := run(t, testDocument, "write", "-c", cfg, "-d", "pen=7", "-", "-")
	require.NoError(t, err)
	assert.Equal(t, "0.0 0.0 7\n1.0 2.0 7\nend <stdout>\n", stdout)
}

func TestWriteToFile(t *testing.T) {
	cfg := writeConfig(t)
	dir := t.TempDir()
	in := filepath.Join(dir, "drawing.yaml")
	out := filepath.Join(dir, "drawing.txt")
	require.NoError(t, os.WriteFile(in, []byte(testDocument), 0o600))

	stdout, _, err := run(t, "", "write", "--config", cfg, "--profile", "points", in, out)
	require.NoError(t, err)
	assert.Empty(t, stdout)

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("0.0 0.0 1\n1.0 2.0 1\nend %s\n", out), string(got))
}

func TestWriteEmptyDocument(t *testing.T) {
	cfg := writeConfig(t)
	out := filepath.Join(t.TempDir(), "empty.txt")
	_, _, err := run(t, "", "write", "-c", cfg, "-p", "points", "-", out)
	require.NoError(t, err)

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "end "+out+"\n", string(got))
}

func TestWriteErrors(t *testing.T) {
	tests := map[string]struct {
		config   string
		args     []string
		stdin    string
		wantErr  error
		wantCode int
	}{
		"missing output": {
			args:     []string{"write", "-"},
			wantErr:  ErrUsage,
			wantCode: 2,
		},
		"malformed default": {
			args:     []string{"write", "-d", "pen", "-", "-"},
			stdin:    testDocument,
			wantErr:  ErrUsage,
			wantCode: 2,
		},
		"unknown flag": {
			args:     []string{"write", "--nope", "-", "-"},
			wantErr:  ErrUsage,
			wantCode: 2,
		},
		"unknown profile": {
			args:     []string{"write", "-p", "nope", "-", "-"},
			stdin:    testDocument,
			wantErr:  gwrite.ErrConfiguration,
			wantCode: 2,
		},
		"template syntax": {
			args:     []string{"write", "-p", "broken", "-", "-"},
			stdin:    testDocument,
			wantErr:  gwrite.ErrTemplateSyntax,
			wantCode: 2,
		},
		"missing key": {
			config:   "[gwrite.points]\nunit = \"px\"\nsegment = \"{pen}\\n\"\n",
			args:     []string{"write", "-p", "points", "-", "-"},
			stdin:    testDocument,
			wantErr:  gwrite.ErrTemplateKey,
			wantCode: 1,
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			config := tt.config
			if config == "" {
				config = testConfig
			}
			args := append([]string{"-c", writeConfigText(t, config)}, tt.args...)
			_, _, err := run(t, tt.stdin, args...)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.wantCode, ExitCode(err))
		})
	}
}

func TestWriteSyntaxErrorLeavesNoFile(t *testing.T) {
	cfg := writeConfig(t)
	out := filepath.Join(t.TempDir(), "out.txt")
	_, _, err := run(t, testDocument, "write", "-c", cfg, "-p", "broken", "-", out)
	require.Error(t, err)
	assert.NoFileExists(t, out)
}

func TestWriteMissingInput(t *testing.T) {
	cfg := writeConfig(t)
	_, _, err := run(t, "", "write", "-c", cfg, filepath.Join(t.TempDir(), "missing.yaml"), "-")
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Equal(t, 1, ExitCode(err))
}

func TestWriteBundledDefaultProfile(t *testing.T) {
	stdout, _, err := run(t, testDocument, "write", "-", "-")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "G21\nG17\nG90\n"), stdout)
	assert.True(t, strings.HasSuffix(stdout, "M2\n"), stdout)
}

func TestWriteUserConfigFromHome(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(home, userConfigName), []byte(testConfig), 0o600))

	stdout, _, err := runIn(t, home, testDocument, "write", "-", "-")
	require.NoError(t, err)
	assert.Equal(t, "0.0 0.0 1\n1.0 2.0 1\nend <stdout>\n", stdout)
}

func TestVerboseLogging(t *testing.T) {
	cfg := writeConfig(t)
	_, stderr, err := run(t, testDocument, "-v", "write", "-c", cfg, "-", "-")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Resolved profile")
	assert.Contains(t, stderr, "Write complete")
}

func TestProfiles(t *testing.T) {
	cfg := writeConfig(t)
	stdout, _, err := run(t, "", "profiles", "-c", cfg)
	require.NoError(t, err)

	assert.Contains(t, stdout, "NAME")
	assert.Contains(t, stdout, "points *")
	assert.Contains(t, stdout, "Plain points.")
	assert.Contains(t, stdout, "gcode_relative")
	assert.NotContains(t, stdout, "gcode *")
}

func TestProfileShow(t *testing.T) {
	cfg := writeConfig(t)
	stdout, _, err := run(t, "", "profile", "show", "-c", cfg)
	require.NoError(t, err)
	assert.Contains(t, stdout, "name: points\n")
	assert.Contains(t, stdout, "unit: px\n")
	assert.Contains(t, stdout, "pen: 1\n")

	_, _, err = run(t, "", "profile", "show", "-c", cfg, "nope")
	assert.ErrorIs(t, err, gwrite.ErrConfiguration)

	_, _, err = run(t, "", "profile", "show", "a", "b")
	assert.ErrorIs(t, err, ErrUsage)
}

func TestVersionCmd(t *testing.T) {
	originalVersion := version
	version = "test-version-1.0.0"
	defer func() { version = originalVersion }()

	stdout, _, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "gwrite version test-version-1.0.0")
}

func TestParseDefaults(t *testing.T) {
	got, err := parseDefaults([]string{"a=1", "b=x=y", "c="})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "1", "b": "x=y", "c": ""}, got)

	_, err = parseDefaults([]string{"=1"})
	assert.True(t, errors.Is(err, ErrUsage))
}

func TestExitCode(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 2, ExitCode(fmt.Errorf("%w: bad", ErrUsage)))
	assert.Equal(t, 2, ExitCode(fmt.Errorf("%w: bad", gwrite.ErrConfiguration)))
	assert.Equal(t, 1, ExitCode(errors.New("boom")))
}
