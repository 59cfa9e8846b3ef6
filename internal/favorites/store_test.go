package favorites

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"

	"github.com/thirdlf03/world-holidays/internal/holiday"
)

func sampleFavorites() []holiday.Holiday {
	return []holiday.Holiday{
		{Date: "2025-01-01", Name: "New Year's Day", LocalName: "元日", CountryCode: "JP"},
		{Date: "2025-07-04", Name: "Independence Day", LocalName: "Independence Day", CountryCode: "US"},
		{Date: "2025-10-03", Name: "German Unity Day", LocalName: "Tag der Deutschen Einheit, \"Einheit\"", CountryCode: "DE"},
	}
}

func TestFileStoreMissingFileIsEmpty(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "favorites.csv"))

	list, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if list == nil || len(list) != 0 {
		t.Fatalf("expected an empty list, got %#v", list)
	}
}

func TestFileStoreEmptyFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "favorites.csv")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	list, err := NewFileStore(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected an empty list, got %#v", list)
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "favorites.csv")
	store := NewFileStore(path)
	ctx := context.Background()

	want := sampleFavorites()
	if err := store.Save(ctx, want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	assertNoTempFiles(t, filepath.Dir(path))

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(got))
	}

	sortEntries := func(list []holiday.Holiday) {
		sort.Slice(list, func(i, j int) bool { return list[i].Date < list[j].Date })
	}
	sortEntries(got)
	sortEntries(want)
	for idx := range want {
		if got[idx] != want[idx] {
			t.Fatalf("row %d mismatch: got %+v want %+v", idx, got[idx], want[idx])
		}
	}
}

func TestFileStoreWritesHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "favorites.csv")
	if err := NewFileStore(path).Save(context.Background(), nil); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(raw) != "date,name,local_name,country_code\n" {
		t.Fatalf("unexpected file contents: %q", raw)
	}
}

func TestFileStoreReadsReorderedColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "favorites.csv")
	contents := "country_code,date,name,local_name\nJP,2025-02-11,Foundation Day,建国記念の日\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	list, err := NewFileStore(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	want := holiday.Holiday{Date: "2025-02-11", Name: "Foundation Day", LocalName: "建国記念の日", CountryCode: "JP"}
	if len(list) != 1 || list[0] != want {
		t.Fatalf("unexpected rows: %+v", list)
	}
}

func assertNoTempFiles(t *testing.T, dir string) {
	t.Helper()
	leftovers, err := filepath.Glob(filepath.Join(dir, "*.tmp"))
	if err != nil {
		t.Fatalf("Glob failed: %v", err)
	}
	if len(leftovers) != 0 {
		t.Fatalf("temporary files left behind: %v", leftovers)
	}
}

func TestFileStoreConcurrentSavesLeaveOneCompleteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "favorites.csv")
	full := sampleFavorites()

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			// Each writer has its own store, like separate processes.
			errs <- NewFileStore(path).Save(context.Background(), full[:1+n%len(full)])
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	got, err := NewFileStore(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(got) == 0 || len(got) > len(full) {
		t.Fatalf("unexpected list after concurrent saves: %+v", got)
	}
	for idx, item := range got {
		if item != full[idx] {
			t.Fatalf("entry %d mixed between writers: %+v", idx, item)
		}
	}
	assertNoTempFiles(t, dir)
}

func TestNewFileStoreDefaultPath(t *testing.T) {
	if got := NewFileStore(" ").Path(); got != DefaultPath {
		t.Fatalf("expected %q, got %q", DefaultPath, got)
	}
}
