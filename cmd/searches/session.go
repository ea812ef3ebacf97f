package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/amp-labs/searchhistory/cli"
	"github.com/amp-labs/searchhistory/logger"
	"github.com/amp-labs/searchhistory/searches"
	"gopkg.in/yaml.v3"
)

var (
	errUnknownCommand = errors.New("unknown command")
	errMissingArg     = errors.New("missing argument")
)

const helpText = `commands:
  search TERM    search the catalog and put TERM at the top of the history
  list           show the history, most recent first
  show [ROW]     show the photos of a row
  delete [ROW]   remove a row from the history
  export         print the history as YAML
  help           show this text
  quit           leave
`

// chooser picks one of items and returns its index. The interactive session
// uses a menu; without one, ROW arguments are required.
type chooser func(label string, items []string) (int, error)

// lineReader returns the next command line. An error for which cli.IsExit is
// true ends the session quietly.
type lineReader func(label string) (string, error)

type session struct {
	history  *searches.History
	searcher searches.Searcher
	out      io.Writer
	maxRows  int
	choose   chooser
	confirm  func(label string) (bool, error) // asked before a delete picked from the menu
}

func newSession(searcher searches.Searcher, out io.Writer, maxRows int) *session {
	return &session{
		history:  searches.NewHistory(),
		searcher: searcher,
		out:      out,
		maxRows:  maxRows,
	}
}

func (s *session) loop(ctx context.Context, readLine lineReader) error {
	_, _ = fmt.Fprint(s.out, helpText)

	for {
		line, err := readLine("searches")
		if err != nil {
			if cli.IsExit(err) {
				return nil
			}

			return err
		}

		quit, err := s.exec(ctx, line)
		if err != nil {
			logger.Get(ctx).Debug("command failed", "line", line, "error", err)
			_, _ = fmt.Fprintf(s.out, "error: %v\n", err)

			continue
		}

		if quit {
			return nil
		}
	}
}

// exec runs one command line and reports whether the session should end.
func (s *session) exec(ctx context.Context, line string) (bool, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return false, nil
	}

	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(name) {
	case "search", "s":
		_, err := s.search(ctx, arg)
		if err != nil {
			return false, err
		}

		s.list()
	case "list", "ls":
		s.list()
	case "show":
		return false, s.show(arg)
	case "delete", "rm":
		return false, s.delete(ctx, arg)
	case "export":
		return false, s.export()
	case "help", "?":
		_, _ = fmt.Fprint(s.out, helpText)
	case "quit", "exit", "q":
		return true, nil
	default:
		return false, fmt.Errorf("%w: %s (try help)", errUnknownCommand, name)
	}

	return false, nil
}

func (s *session) search(ctx context.Context, term string) ([]searches.Photo, error) {
	if term == "" {
		return nil, fmt.Errorf("%w: search TERM", errMissingArg)
	}

	photos, err := s.history.Search(ctx, s.searcher, term)
	if err != nil {
		return nil, err
	}

	_, _ = fmt.Fprintf(s.out, "%d photos for %q\n", len(photos), strings.TrimSpace(term))

	return photos, nil
}

func (s *session) list() {
	if s.history.Len() == 0 {
		_, _ = fmt.Fprintln(s.out, "no searches yet")

		return
	}

	renderRows(s.out, s.history, s.maxRows)
}

func (s *session) show(arg string) error {
	index, err := s.row(arg, "Show which search?")
	if err != nil {
		return err
	}

	photos, err := s.history.Photos(index)
	if err != nil {
		return fmt.Errorf("row %d: %w", index+1, err)
	}

	if len(photos) == 0 {
		_, _ = fmt.Fprintln(s.out, "no photos")

		return nil
	}

	renderPhotos(s.out, photos)

	return nil
}

func (s *session) delete(ctx context.Context, arg string) error {
	index, err := s.row(arg, "Delete which search?")
	if err != nil {
		return err
	}

	if arg == "" && s.confirm != nil {
		row, err := s.history.Row(index)
		if err != nil {
			return fmt.Errorf("row %d: %w", index+1, err)
		}

		ok, err := s.confirm(fmt.Sprintf("Delete %q", row.Term))
		if err != nil {
			return err
		}

		if !ok {
			_, _ = fmt.Fprintf(s.out, "kept %q\n", row.Term)

			return nil
		}
	}

	row, err := s.history.Delete(ctx, index)
	if err != nil {
		return fmt.Errorf("row %d: %w", index+1, err)
	}

	_, _ = fmt.Fprintf(s.out, "deleted %q\n", row.Term)

	return nil
}

func (s *session) export() error {
	enc := yaml.NewEncoder(s.out)
	enc.SetIndent(2) //nolint:mnd

	if err := enc.Encode(s.history); err != nil {
		return err
	}

	return enc.Close()
}

// row turns a 1-based ROW argument into a history index. With no argument it
// falls back to the chooser, if there is one.
func (s *session) row(arg, label string) (int, error) {
	if arg != "" {
		n, err := cli.ParseInt(arg)
		if err != nil {
			return 0, err
		}

		return n - 1, nil
	}

	if s.choose == nil {
		return 0, fmt.Errorf("%w: ROW", errMissingArg)
	}

	labels := make([]string, 0, s.history.Len())
	for _, row := range s.history.Rows() {
		labels = append(labels, row.Label())
	}

	return s.choose(label, labels)
}
