package pager

import (
	"bytes"
	"io"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommand(t *testing.T) {
	t.Setenv("PAGER", "")
	assert.Equal(t, DefaultCommand, Command())

	t.Setenv("PAGER", "more")
	assert.Equal(t, "more", Command())
}

func TestStartPipesOutput(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("pager is not supported on windows")
	}

	var out bytes.Buffer
	p, err := Start("cat", &out)
	require.NoError(t, err)

	_, err = io.WriteString(p, "  tar\n      tar cf target.tar file\n")
	require.NoError(t, err)
	require.NoError(t, p.Close())

	assert.Equal(t, "  tar\n      tar cf target.tar file\n", out.String())
}

func TestStartUsesPagerEnv(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("pager is not supported on windows")
	}
	t.Setenv("PAGER", "tr a-z A-Z")

	var out bytes.Buffer
	p, err := Start("", &out)
	require.NoError(t, err)

	_, err = io.WriteString(p, "hello\n")
	require.NoError(t, err)
	require.NoError(t, p.Close())

	assert.Equal(t, "HELLO\n", out.String())
}

func TestPagerFailureIsReported(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("pager is not supported on windows")
	}

	p, err := Start("exit 3", io.Discard)
	require.NoError(t, err)
	assert.Error(t, p.Close())
}
