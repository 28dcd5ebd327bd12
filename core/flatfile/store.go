// Package flatfile persists one entity type per delimited-text file, one record per line.
//
// There is no random access by key: reads scan the whole file and every update or delete
// rewrites it through a temporary file that is atomically renamed over the original.
package flatfile

import (
	"bufio"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/renameio/v2"

	"procure.GO/core/errs"
)

// Codec maps a record to and from the fields of one line.
type Codec[T any] interface {
	Key(rec T) string
	Encode(rec T) ([]string, error)
	Decode(fields []string) (T, error)
	Fields() int
}

// Store is a keyed record store over a single file.
type Store[T any] struct {
	path   string
	entity string
	comma  rune
	codec  Codec[T]
	lock   *sync.RWMutex
	quiet  bool
}

type Option func(*options)

type options struct {
	comma rune
	quiet bool
}

// WithDelimiter sets the field separator. Defaults to ','.
func WithDelimiter(r rune) Option {
	return func(o *options) {
		if r != 0 {
			o.comma = r
		}
	}
}

// WithoutWarnings stops corrupt lines from being logged. They are still reported by LoadAll.
func WithoutWarnings() Option {
	return func(o *options) { o.quiet = true }
}

// New returns a store for entity records kept at path. Stores opened on the same path share a lock.
func New[T any](path, entity string, codec Codec[T], opts ...Option) *Store[T] {
	o := options{comma: ','}
	for _, fn := range opts {
		fn(&o)
	}
	return &Store[T]{
		path:   path,
		entity: entity,
		comma:  o.comma,
		codec:  codec,
		lock:   lockFor(path),
		quiet:  o.quiet,
	}
}

func (s *Store[T]) Path() string   { return s.path }
func (s *Store[T]) Entity() string { return s.entity }

// row is one non-blank line of the file. Lines that fail to decode keep their raw text so a
// rewrite passes them through untouched.
type row[T any] struct {
	rec T
	raw string
	ok  bool
}

// LoadAll parses every line. Corrupt lines are skipped and returned alongside the good records.
func (s *Store[T]) LoadAll() ([]T, []*errs.CorruptRecordError, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	rows, corrupt, err := s.read()
	if err != nil {
		return nil, nil, err
	}
	return records(rows), corrupt, nil
}

// List is LoadAll without the corrupt-line report.
func (s *Store[T]) List() ([]T, error) {
	recs, _, err := s.LoadAll()
	return recs, err
}

// Get returns the record stored under key.
func (s *Store[T]) Get(key string) (T, error) {
	var zero T
	recs, err := s.List()
	if err != nil {
		return zero, err
	}
	for _, r := range recs {
		if s.codec.Key(r) == key {
			return r, nil
		}
	}
	return zero, errs.NotFound(s.entity, key)
}

// Keys returns the key of every readable record in file order.
func (s *Store[T]) Keys() ([]string, error) {
	recs, err := s.List()
	if err != nil {
		return nil, err
	}
	return s.KeysOf(recs), nil
}

// Filter returns the records for which keep reports true.
func (s *Store[T]) Filter(keep func(T) bool) ([]T, error) {
	recs, err := s.List()
	if err != nil {
		return nil, err
	}
	out := recs[:0]
	for _, r := range recs {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out, nil
}

// Append adds rec as a new line. It fails with ErrDuplicateKey when the key is already stored.
func (s *Store[T]) Append(rec T) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	rows, _, err := s.read()
	if err != nil {
		return err
	}
	return s.appendLocked(rows, rec)
}

// AppendNew builds a record from the records currently stored and appends it, all under the
// write lock, so key allocation and uniqueness checks cannot interleave with another writer in
// this process.
func (s *Store[T]) AppendNew(build func(existing []T) (T, error)) (T, error) {
	var zero T
	s.lock.Lock()
	defer s.lock.Unlock()

	rows, _, err := s.read()
	if err != nil {
		return zero, err
	}
	rec, err := build(records(rows))
	if err != nil {
		return zero, err
	}
	if err := s.appendLocked(rows, rec); err != nil {
		return zero, err
	}
	return rec, nil
}

// KeysOf returns the keys of recs in order.
func (s *Store[T]) KeysOf(recs []T) []string {
	keys := make([]string, 0, len(recs))
	for _, r := range recs {
		keys = append(keys, s.codec.Key(r))
	}
	return keys
}

func (s *Store[T]) appendLocked(rows []row[T], rec T) error {
	key := s.codec.Key(rec)
	if key == "" {
		return errs.Invalid("%s: empty key", s.entity)
	}
	for _, r := range rows {
		if r.ok && s.codec.Key(r.rec) == key {
			return errs.DuplicateKey(s.entity, key)
		}
	}
	line, err := s.encode(rec)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return errs.IO("mkdir", filepath.Dir(s.path), err)
	}
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return errs.IO("open", s.path, err)
	}
	if _, err := f.WriteString(line + "\n"); err != nil {
		f.Close()
		return errs.IO("append", s.path, err)
	}
	if err := f.Close(); err != nil {
		return errs.IO("close", s.path, err)
	}
	return nil
}

// Rewrite passes every record matching match through transform and writes the full result back.
// transform returns the replacement record and whether to keep it; keep=false deletes the record.
// An error from transform aborts the rewrite and leaves the file untouched. Non-matching records
// and corrupt lines pass through unchanged. Rewrite returns how many records matched.
func (s *Store[T]) Rewrite(match func(T) bool, transform func(T) (T, bool, error)) (int, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	rows, _, err := s.read()
	if err != nil {
		return 0, err
	}

	matched := 0
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		if !r.ok || !match(r.rec) {
			lines = append(lines, r.raw)
			continue
		}
		matched++
		next, keep, err := transform(r.rec)
		if err != nil {
			return 0, err
		}
		if !keep {
			continue
		}
		if s.codec.Key(next) != s.codec.Key(r.rec) {
			return 0, errs.Invalid("%s %s: key cannot change on update", s.entity, s.codec.Key(r.rec))
		}
		line, err := s.encode(next)
		if err != nil {
			return 0, err
		}
		lines = append(lines, line)
	}
	if matched == 0 {
		return 0, nil
	}
	if err := s.replace(lines); err != nil {
		return 0, err
	}
	return matched, nil
}

// Update replaces the record stored under key with fn's result.
func (s *Store[T]) Update(key string, fn func(T) (T, error)) (T, error) {
	var updated T
	n, err := s.Rewrite(func(r T) bool { return s.codec.Key(r) == key }, func(r T) (T, bool, error) {
		next, err := fn(r)
		if err != nil {
			return r, true, err
		}
		updated = next
		return next, true, nil
	})
	if err != nil {
		return updated, err
	}
	if n == 0 {
		return updated, errs.NotFound(s.entity, key)
	}
	return updated, nil
}

// Delete removes the record stored under key.
func (s *Store[T]) Delete(key string) error {
	n, err := s.Rewrite(func(r T) bool { return s.codec.Key(r) == key }, func(r T) (T, bool, error) {
		return r, false, nil
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return errs.NotFound(s.entity, key)
	}
	return nil
}

func (s *Store[T]) replace(lines []string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return errs.IO("mkdir", filepath.Dir(s.path), err)
	}
	pf, err := renameio.NewPendingFile(s.path, renameio.WithPermissions(0o644))
	if err != nil {
		return errs.IO("create temp", s.path, err)
	}
	defer pf.Cleanup()

	w := bufio.NewWriter(pf)
	for _, line := range lines {
		w.WriteString(line)
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		return errs.IO("write temp", s.path, err)
	}
	if err := pf.CloseAtomicallyReplace(); err != nil {
		return errs.IO("replace", s.path, err)
	}
	return nil
}

func (s *Store[T]) read() ([]row[T], []*errs.CorruptRecordError, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, errs.IO("open", s.path, err)
	}
	defer f.Close()

	var (
		rows    []row[T]
		corrupt []*errs.CorruptRecordError
		lineNo  int
	)
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		lineNo++
		raw := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(raw) == "" {
			continue
		}
		rec, err := s.decode(raw)
		if err != nil {
			cerr := &errs.CorruptRecordError{Path: s.path, Line: lineNo, Err: err}
			corrupt = append(corrupt, cerr)
			if !s.quiet {
				log.Printf("flatfile: skipping %v", cerr)
			}
			rows = append(rows, row[T]{raw: raw})
			continue
		}
		rows = append(rows, row[T]{rec: rec, raw: raw, ok: true})
	}
	if err := sc.Err(); err != nil {
		return nil, nil, errs.IO("read", s.path, err)
	}
	return rows, corrupt, nil
}

func (s *Store[T]) decode(line string) (T, error) {
	var zero T
	fields, err := splitLine(line, s.comma)
	if err != nil {
		return zero, err
	}
	if want := s.codec.Fields(); len(fields) != want {
		return zero, fmt.Errorf("want %d fields, got %d", want, len(fields))
	}
	return s.codec.Decode(fields)
}

func (s *Store[T]) encode(rec T) (string, error) {
	fields, err := s.codec.Encode(rec)
	if err != nil {
		return "", fmt.Errorf("%s %s: %w", s.entity, s.codec.Key(rec), err)
	}
	if want := s.codec.Fields(); len(fields) != want {
		return "", fmt.Errorf("%s %s: codec produced %d fields, want %d", s.entity, s.codec.Key(rec), len(fields), want)
	}
	return joinLine(fields, s.comma)
}

func records[T any](rows []row[T]) []T {
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		if r.ok {
			out = append(out, r.rec)
		}
	}
	return out
}
