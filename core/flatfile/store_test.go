package flatfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"

	"procure.GO/core/errs"
)

type note struct {
	ID    string
	Text  string
	Count int
}

type noteCodec struct{}

func (noteCodec) Key(n note) string { return n.ID }

func (noteCodec) Fields() int { return 3 }

func (noteCodec) Encode(n note) ([]string, error) {
	return []string{n.ID, n.Text, strconv.Itoa(n.Count)}, nil
}

func (noteCodec) Decode(f []string) (note, error) {
	c, err := strconv.Atoi(f[2])
	if err != nil {
		return note{}, fmt.Errorf("count: %w", err)
	}
	return note{ID: f[0], Text: f[1], Count: c}, nil
}

func testStore(t *testing.T) *Store[note] {
	t.Helper()
	return New[note](filepath.Join(t.TempDir(), "notes.txt"), "note", noteCodec{}, WithoutWarnings())
}

func TestLoadAll_MissingFileIsEmpty(t *testing.T) {
	s := testStore(t)
	recs, corrupt, err := s.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(recs) != 0 || len(corrupt) != 0 {
		t.Errorf("LoadAll = %d records, %d corrupt; want 0, 0", len(recs), len(corrupt))
	}
}

func TestAppend_Get(t *testing.T) {
	s := testStore(t)
	if err := s.Append(note{ID: "N001", Text: "hello", Count: 2}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	got, err := s.Get("N001")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Text != "hello" || got.Count != 2 {
		t.Errorf("Get = %+v, want hello/2", got)
	}
}

func TestAppend_DuplicateKey(t *testing.T) {
	s := testStore(t)
	if err := s.Append(note{ID: "N001"}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	err := s.Append(note{ID: "N001", Text: "again"})
	if !errors.Is(err, errs.ErrDuplicateKey) {
		t.Fatalf("Append duplicate = %v, want ErrDuplicateKey", err)
	}
	recs, _ := s.List()
	if len(recs) != 1 {
		t.Errorf("records = %d, want 1", len(recs))
	}
}

func TestGet_NotFound(t *testing.T) {
	s := testStore(t)
	_, err := s.Get("missing")
	if !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("Get missing = %v, want ErrNotFound", err)
	}
}

func TestDelimiterInValueRoundTrips(t *testing.T) {
	s := testStore(t)
	in := note{ID: "N001", Text: `Acme, "Quoted" Ltd`, Count: 1}
	if err := s.Append(in); err != nil {
		t.Fatalf("Append: %v", err)
	}
	got, err := s.Get("N001")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != in {
		t.Errorf("Get = %+v, want %+v", got, in)
	}
}

func TestAppend_RejectsLineBreak(t *testing.T) {
	s := testStore(t)
	if err := s.Append(note{ID: "N001", Text: "a\nb"}); err == nil {
		t.Error("Append with newline: want error")
	}
}

func TestUpdate_Delete(t *testing.T) {
	s := testStore(t)
	for i := 1; i <= 3; i++ {
		if err := s.Append(note{ID: fmt.Sprintf("N%03d", i), Count: i}); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	updated, err := s.Update("N002", func(n note) (note, error) {
		n.Count = 20
		return n, nil
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Count != 20 {
		t.Errorf("Update returned Count = %d, want 20", updated.Count)
	}
	if err := s.Delete("N001"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	keys, _ := s.Keys()
	if strings.Join(keys, ",") != "N002,N003" {
		t.Errorf("Keys = %v, want [N002 N003]", keys)
	}
	got, _ := s.Get("N002")
	if got.Count != 20 {
		t.Errorf("Count = %d, want 20", got.Count)
	}
}

func TestUpdate_Delete_Missing(t *testing.T) {
	s := testStore(t)
	if _, err := s.Update("nope", func(n note) (note, error) { return n, nil }); !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("Update missing = %v, want ErrNotFound", err)
	}
	if err := s.Delete("nope"); !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("Delete missing = %v, want ErrNotFound", err)
	}
}

func TestRewrite_TransformErrorLeavesFileUntouched(t *testing.T) {
	s := testStore(t)
	s.Append(note{ID: "N001", Count: 1})
	before, _ := os.ReadFile(s.Path())

	boom := errors.New("boom")
	_, err := s.Rewrite(func(note) bool { return true }, func(n note) (note, bool, error) {
		return n, true, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Rewrite = %v, want boom", err)
	}
	after, _ := os.ReadFile(s.Path())
	if string(before) != string(after) {
		t.Errorf("file changed after failed rewrite:\n%s\nvs\n%s", before, after)
	}
}

func TestRewrite_KeyChangeRejected(t *testing.T) {
	s := testStore(t)
	s.Append(note{ID: "N001"})
	_, err := s.Update("N001", func(n note) (note, error) {
		n.ID = "N999"
		return n, nil
	})
	if !errors.Is(err, errs.ErrInvalidInput) {
		t.Errorf("key change = %v, want ErrInvalidInput", err)
	}
}

func TestLoadAll_SkipsCorruptLines(t *testing.T) {
	s := testStore(t)
	content := "N001,ok,1\nN002,missing-field\nN003,bad,x\n\nN004,ok,4\n"
	if err := os.WriteFile(s.Path(), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	recs, corrupt, err := s.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(recs) != 2 {
		t.Errorf("records = %d, want 2", len(recs))
	}
	if len(corrupt) != 2 {
		t.Fatalf("corrupt = %d, want 2", len(corrupt))
	}
	if corrupt[0].Line != 2 || corrupt[1].Line != 3 {
		t.Errorf("corrupt lines = %d, %d; want 2, 3", corrupt[0].Line, corrupt[1].Line)
	}
	if !errors.Is(corrupt[0], errs.ErrCorruptRecord) {
		t.Error("corrupt record error should match ErrCorruptRecord")
	}
}

func TestRewrite_PreservesCorruptLines(t *testing.T) {
	s := testStore(t)
	os.WriteFile(s.Path(), []byte("N001,ok,1\ngarbage\nN002,ok,2\n"), 0o644)
	if err := s.Delete("N001"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	data, _ := os.ReadFile(s.Path())
	if string(data) != "garbage\nN002,ok,2\n" {
		t.Errorf("file = %q", data)
	}
}

func TestAppendNew_AllocatesUnderLock(t *testing.T) {
	s := testStore(t)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.AppendNew(func(existing []note) (note, error) {
				return note{ID: fmt.Sprintf("N%03d", len(existing)+1)}, nil
			})
			if err != nil {
				t.Errorf("AppendNew: %v", err)
			}
		}()
	}
	wg.Wait()
	keys, _ := s.Keys()
	if len(keys) != 20 {
		t.Errorf("keys = %d, want 20", len(keys))
	}
}

func TestConcurrentUpdatesAreSerialized(t *testing.T) {
	s := testStore(t)
	s.Append(note{ID: "N001"})
	// a second store on the same path shares the lock
	other := New[note](s.Path(), "note", noteCodec{}, WithoutWarnings())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		st := s
		if i%2 == 1 {
			st = other
		}
		go func() {
			defer wg.Done()
			if _, err := st.Update("N001", func(n note) (note, error) {
				n.Count++
				return n, nil
			}); err != nil {
				t.Errorf("Update: %v", err)
			}
		}()
	}
	wg.Wait()
	got, _ := s.Get("N001")
	if got.Count != 50 {
		t.Errorf("Count = %d, want 50", got.Count)
	}
}

func TestWithDelimiter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipe.txt")
	s := New[note](path, "note", noteCodec{}, WithDelimiter('|'))
	if err := s.Append(note{ID: "N001", Text: "a,b", Count: 3}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "N001|a,b|3\n" {
		t.Errorf("file = %q, want N001|a,b|3", data)
	}
}

func TestJoinList_SplitList(t *testing.T) {
	items := [][]string{{"I001", "10", "S001"}, {"I002", "5", "S:02"}}
	v, err := JoinList(items, ';', ':')
	if err != nil {
		t.Fatalf("JoinList: %v", err)
	}
	got, err := SplitList(v, ';', ':')
	if err != nil {
		t.Fatalf("SplitList: %v", err)
	}
	if len(got) != 2 || got[1][2] != "S:02" || got[0][0] != "I001" {
		t.Errorf("SplitList = %v", got)
	}
	empty, err := SplitList("", ';', ':')
	if err != nil || empty != nil {
		t.Errorf("SplitList empty = %v, %v", empty, err)
	}
}

type failingCodec struct{ noteCodec }

func (failingCodec) Encode(n note) ([]string, error) {
	if n.Text == "bad" {
		return nil, errors.New("cannot encode")
	}
	return noteCodec{}.Encode(n)
}

func TestEncodeErrorLeavesFileUntouched(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	s := New[note](path, "note", failingCodec{}, WithoutWarnings())
	if err := s.Append(note{ID: "N001", Text: "ok"}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := s.Append(note{ID: "N002", Text: "bad"}); err == nil {
		t.Error("Append with failing encode: want error")
	}
	if _, err := s.Update("N001", func(n note) (note, error) {
		n.Text = "bad"
		return n, nil
	}); err == nil {
		t.Error("Update with failing encode: want error")
	}
	data, _ := os.ReadFile(path)
	if string(data) != "N001,ok,0\n" {
		t.Errorf("file = %q, want N001,ok,0", data)
	}
}

func TestJoinList_InvalidSeparator(t *testing.T) {
	if _, err := JoinList([][]string{{"a", "b"}}, ';', '"'); err == nil {
		t.Error("JoinList with quote as separator: want error")
	}
}
