package main

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	errors2 "github.com/amp-labs/searchhistory/errors"
	"github.com/amp-labs/searchhistory/envutil"
	"github.com/amp-labs/searchhistory/searches"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCatalog = `
sunset:
  - id: "1"
    owner: alice
    secret: a
    server: "10"
    farm: 1
    title: Golden hour
  - id: "2"
    owner: bob
    secret: b
    server: "10"
    farm: 1
    title: Dusk
aurora:
  - id: "3"
    owner: carol
    secret: c
    server: "20"
    farm: 2
    title: Northern lights
`

func newTestSession(t *testing.T, maxRows int) (*session, *bytes.Buffer) {
	t.Helper()

	cat, err := searches.ParseCatalog([]byte(testCatalog))
	require.NoError(t, err)

	var out bytes.Buffer

	return newSession(cat, &out, maxRows), &out
}

func run(t *testing.T, s *session, lines ...string) {
	t.Helper()

	for _, line := range lines {
		quit, err := s.exec(t.Context(), line)
		require.NoError(t, err, line)
		require.False(t, quit, line)
	}
}

func historyTerms(s *session) []string {
	var out []string

	for _, row := range s.history.Rows() {
		out = append(out, row.Term)
	}

	return out
}

func TestSession_Search(t *testing.T) {
	t.Parallel()

	s, out := newTestSession(t, 0)
	run(t, s, "search sunset", "search aurora", "s  sunset ")

	assert.Equal(t, []string{"sunset", "aurora"}, historyTerms(s))
	assert.Contains(t, out.String(), `2 photos for "sunset"`)
	assert.Contains(t, out.String(), `1 photos for "aurora"`)

	_, err := s.exec(t.Context(), "search")
	require.ErrorIs(t, err, errMissingArg)
}

func TestSession_List(t *testing.T) {
	t.Parallel()

	s, out := newTestSession(t, 2)
	run(t, s, "list")
	assert.Contains(t, out.String(), "no searches yet")

	run(t, s, "search sunset", "search aurora", "search volcano")
	out.Reset()
	run(t, s, "ls")

	listing := out.String()
	assert.Contains(t, listing, "TERM")
	assert.Contains(t, listing, "volcano")
	assert.Contains(t, listing, "aurora")
	assert.NotContains(t, listing, "sunset")
	assert.Contains(t, listing, "... 1 older searches not shown")
	assert.Less(t, strings.Index(listing, "volcano"), strings.Index(listing, "aurora"))
}

func TestSession_Show(t *testing.T) {
	t.Parallel()

	s, out := newTestSession(t, 0)
	run(t, s, "search aurora", "search volcano")
	out.Reset()

	run(t, s, "show 2")
	assert.Contains(t, out.String(), "Northern lights")
	assert.Contains(t, out.String(), "https://farm2.staticflickr.com/20/3_c_m.jpg")

	out.Reset()
	run(t, s, "show 1")
	assert.Contains(t, out.String(), "no photos")

	_, err := s.exec(t.Context(), "show 3")
	require.ErrorIs(t, err, errors2.ErrOutOfBounds)

	_, err = s.exec(t.Context(), "show two")
	require.Error(t, err)

	_, err = s.exec(t.Context(), "show")
	require.ErrorIs(t, err, errMissingArg)
}

func TestSession_Delete(t *testing.T) {
	t.Parallel()

	s, out := newTestSession(t, 0)
	run(t, s, "search sunset", "search aurora", "search volcano", "delete 2")

	assert.Equal(t, []string{"volcano", "sunset"}, historyTerms(s))
	assert.Contains(t, out.String(), `deleted "aurora"`)

	_, err := s.exec(t.Context(), "rm 0")
	require.ErrorIs(t, err, errors2.ErrOutOfBounds)
	assert.Equal(t, 2, s.history.Len())
}

func TestSession_Chooser(t *testing.T) {
	t.Parallel()

	s, out := newTestSession(t, 0)
	run(t, s, "search sunset", "search aurora")

	var offered []string

	s.choose = func(_ string, items []string) (int, error) {
		offered = items

		return 1, nil
	}

	out.Reset()
	run(t, s, "show")
	assert.Equal(t, []string{"aurora (1)", "sunset (2)"}, offered)
	assert.Contains(t, out.String(), "Golden hour")

	errCanceled := errors.New("canceled")
	s.choose = func(string, []string) (int, error) {
		return -1, errCanceled
	}

	_, err := s.exec(t.Context(), "delete")
	require.ErrorIs(t, err, errCanceled)
	assert.Equal(t, 2, s.history.Len())
}

func TestSession_ConfirmDelete(t *testing.T) {
	t.Parallel()

	s, out := newTestSession(t, 0)
	run(t, s, "search sunset", "search aurora")

	s.choose = func(string, []string) (int, error) { return 1, nil }

	var asked []string

	answer := false
	s.confirm = func(label string) (bool, error) {
		asked = append(asked, label)

		return answer, nil
	}

	out.Reset()
	run(t, s, "delete")
	assert.Equal(t, []string{`Delete "sunset"`}, asked)
	assert.Contains(t, out.String(), `kept "sunset"`)
	assert.Equal(t, 2, s.history.Len())

	answer = true
	run(t, s, "delete")
	assert.Equal(t, []string{"aurora"}, historyTerms(s))

	// An explicit ROW is not confirmed.
	run(t, s, "delete 1")
	assert.Len(t, asked, 2)
	assert.Equal(t, 0, s.history.Len())
}

// scriptedLines feeds lines from script to the session, then reports io.EOF.
func scriptedLines(script string, prompts *int) lineReader {
	scanner := bufio.NewScanner(strings.NewReader(script))

	return func(string) (string, error) {
		*prompts++

		if !scanner.Scan() {
			return "", io.EOF
		}

		return scanner.Text(), nil
	}
}

func TestSession_Loop(t *testing.T) {
	t.Parallel()

	t.Run("errors are printed and quit ends the session", func(t *testing.T) {
		t.Parallel()

		s, out := newTestSession(t, 0)

		var prompts int

		err := s.loop(t.Context(), scriptedLines("search sunset\nbogus\nshow 9\nquit\nsearch aurora\n", &prompts))
		require.NoError(t, err)

		assert.Equal(t, 4, prompts)
		assert.Equal(t, []string{"sunset"}, historyTerms(s))
		assert.True(t, strings.HasPrefix(out.String(), "commands:"))
		assert.Contains(t, out.String(), `2 photos for "sunset"`)
		assert.Contains(t, out.String(), "error: unknown command: bogus")
		assert.Contains(t, out.String(), "error: row 9: index out of bounds")
	})

	t.Run("end of input ends the session", func(t *testing.T) {
		t.Parallel()

		s, _ := newTestSession(t, 0)

		var prompts int

		require.NoError(t, s.loop(t.Context(), scriptedLines("search aurora\n\nsearch sunset", &prompts)))
		assert.Equal(t, 4, prompts)
		assert.Equal(t, []string{"sunset", "aurora"}, historyTerms(s))
	})

	t.Run("read errors are returned", func(t *testing.T) {
		t.Parallel()

		s, _ := newTestSession(t, 0)
		errTerminal := errors.New("terminal gone")

		err := s.loop(t.Context(), func(string) (string, error) {
			return "", errTerminal
		})
		require.ErrorIs(t, err, errTerminal)
	})
}

func TestSession_Export(t *testing.T) {
	t.Parallel()

	s, out := newTestSession(t, 0)
	run(t, s, "search sunset", "search aurora")
	out.Reset()

	run(t, s, "export")

	exported := out.String()
	assert.True(t, strings.HasPrefix(exported, "aurora:"), exported)
	assert.Contains(t, exported, "\nsunset:")
	assert.Contains(t, exported, "title: Golden hour")
}

func TestSession_Commands(t *testing.T) {
	t.Parallel()

	s, out := newTestSession(t, 0)

	run(t, s, "", "   ", "help")
	assert.Contains(t, out.String(), "search TERM")

	_, err := s.exec(t.Context(), "frobnicate")
	require.ErrorIs(t, err, errUnknownCommand)

	for _, line := range []string{"quit", "EXIT", "q"} {
		quit, err := s.exec(t.Context(), line)
		require.NoError(t, err)
		assert.True(t, quit, line)
	}
}

func TestRootCmd(t *testing.T) { //nolint:paralleltest
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testCatalog), 0o600))

	t.Run("search with flag", func(t *testing.T) { //nolint:paralleltest
		var out bytes.Buffer

		cmd := newRootCmd()
		cmd.SetOut(&out)
		cmd.SetArgs([]string{"search", "--catalog", path, "aurora", "sunset", "aurora"})

		require.NoError(t, cmd.ExecuteContext(context.Background()))

		listing := out.String()
		table := listing[strings.LastIndex(listing, "TERM"):]
		assert.Less(t, strings.Index(table, "aurora"), strings.Index(table, "sunset"), listing)
		assert.Equal(t, 1, strings.Count(table, "sunset"))
	})

	t.Run("terms from environment", func(t *testing.T) { //nolint:paralleltest
		var out bytes.Buffer

		ctx := envutil.WithEnvOverride(context.Background(), "SEARCHES_CATALOG", path)

		cmd := newRootCmd()
		cmd.SetOut(&out)
		cmd.SetArgs([]string{"terms"})

		require.NoError(t, cmd.ExecuteContext(ctx))
		assert.Contains(t, out.String(), "sunset")
		assert.Contains(t, out.String(), "aurora")
	})

	t.Run("terms in natural order", func(t *testing.T) { //nolint:paralleltest
		numbered := filepath.Join(t.TempDir(), "numbered.yaml")
		require.NoError(t, os.WriteFile(numbered, []byte("day 10: []\nday 9: []\nday 1: []\n"), 0o600))

		var out bytes.Buffer

		cmd := newRootCmd()
		cmd.SetOut(&out)
		cmd.SetArgs([]string{"terms", "--sorted", "-c", numbered})

		require.NoError(t, cmd.ExecuteContext(context.Background()))

		var lines []string
		for line := range strings.Lines(out.String()) {
			lines = append(lines, strings.TrimSpace(line))
		}

		assert.Equal(t, []string{"TERM", "day 1", "day 9", "day 10"}, lines)
	})

	t.Run("missing catalog", func(t *testing.T) { //nolint:paralleltest
		cmd := newRootCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"terms"})

		require.ErrorIs(t, cmd.ExecuteContext(context.Background()), errNoCatalog)
	})

	t.Run("max rows", func(t *testing.T) { //nolint:paralleltest
		var out bytes.Buffer

		ctx := envutil.WithEnvOverride(context.Background(), "SEARCHES_MAX_ROWS", "1")

		cmd := newRootCmd()
		cmd.SetOut(&out)
		cmd.SetArgs([]string{"search", "-c", path, "sunset", "aurora"})

		require.NoError(t, cmd.ExecuteContext(ctx))
		assert.Contains(t, out.String(), "... 1 older searches not shown")

		cmd = newRootCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"search", "-c", path, "--max-rows=-1", "sunset"})

		require.ErrorIs(t, cmd.ExecuteContext(context.Background()), errMaxRowsPositive)
	})
}
