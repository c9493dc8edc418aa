package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/kweston/stridelog/internal/domain"
	"github.com/kweston/stridelog/internal/logger"
)

// fakeRunStore records created runs and can be told to fail after a
// number of successful creates.
type fakeRunStore struct {
	created   []domain.Run
	failAfter int // fail every Create once this many have succeeded; -1 never fails
}

func (f *fakeRunStore) Create(ctx context.Context, run *domain.Run) error {
	if f.failAfter >= 0 && len(f.created) >= f.failAfter {
		return errors.New("database unavailable")
	}
	f.created = append(f.created, *run)
	return nil
}

func newImportFixture(failAfter int) (*ImportService, *fakeRunStore) {
	store := &fakeRunStore{failAfter: failAfter}
	return NewImportService(store, logger.New(nil), nil), store
}

const importTestCSV = `Date,Distance,Time,Activity Type
1/1/2024,3.1,28:00,Running
1/2/2024,5.0,45:00,Running
`

const importTestTCX = `<?xml version="1.0"?>
<TrainingCenterDatabase>
  <Activities>
    <Activity Sport="Running">
      <Id>2024-03-10T08:00:00Z</Id>
      <Lap StartTime="2024-03-10T08:00:00Z">
        <TotalTimeSeconds>1800</TotalTimeSeconds>
        <DistanceMeters>3218.68</DistanceMeters>
      </Lap>
    </Activity>
  </Activities>
</TrainingCenterDatabase>`

func TestImportFilesResultOrderMatchesInput(t *testing.T) {
	svc, store := newImportFixture(-1)

	files := []ImportFile{
		{Name: "week1.csv", Content: []byte(importTestCSV)},
		{Name: "broken.tcx", Content: []byte("not xml at all")},
		{Name: "morning.tcx", Content: []byte(importTestTCX)},
	}

	results := svc.ImportFiles(context.Background(), "user-1", files)
	if len(results) != len(files) {
		t.Fatalf("got %d results, want %d", len(results), len(files))
	}
	for i, file := range files {
		if results[i].FileName != file.Name {
			t.Errorf("results[%d].FileName = %q, want %q", i, results[i].FileName, file.Name)
		}
	}
	if !results[0].Success || results[0].RunsImported != 2 {
		t.Errorf("csv result = %+v, want 2 imported runs", results[0])
	}
	if results[1].Success {
		t.Errorf("broken file should fail: %+v", results[1])
	}
	if !results[2].Success || results[2].RunsImported != 1 {
		t.Errorf("tcx result = %+v, want 1 imported run", results[2])
	}
	if len(store.created) != 3 {
		t.Errorf("persisted %d runs, want 3", len(store.created))
	}
}

func TestImportFileRejectsFIT(t *testing.T) {
	svc, store := newImportFixture(-1)

	results := svc.ImportFiles(context.Background(), "user-1", []ImportFile{
		{Name: "activity.fit", Content: []byte{0x0e, 0x10, 0x43, 0x08}},
	})

	if results[0].Success {
		t.Fatal("fit files must be rejected")
	}
	if !strings.Contains(results[0].Message, "TCX or GPX") {
		t.Errorf("message should point at TCX/GPX export, got %q", results[0].Message)
	}
	if len(store.created) != 0 {
		t.Error("no runs should be persisted for a rejected file")
	}
}

func TestImportFileUnknownFormat(t *testing.T) {
	svc, _ := newImportFixture(-1)

	results := svc.ImportFiles(context.Background(), "user-1", []ImportFile{
		{Name: "notes.txt", Content: []byte("ran today, felt great")},
	})

	if results[0].Success {
		t.Fatal("unknown format must be rejected")
	}
	if !strings.Contains(results[0].Message, "Unsupported file format") {
		t.Errorf("unexpected message %q", results[0].Message)
	}
}

func TestImportCSVSkipsBadRowsButSucceeds(t *testing.T) {
	svc, store := newImportFixture(-1)

	// The second row has a negative distance and is skipped by the parser.
	content := "Date,Distance,Time,Activity Type\n" +
		"1/1/2024,3.1,28:00,Running\n" +
		"1/2/2024,-1,10:00,Running\n"
	results := svc.ImportFiles(context.Background(), "user-1", []ImportFile{
		{Name: "mixed.csv", Content: []byte(content)},
	})

	got := results[0]
	if !got.Success {
		t.Error("file with one valid row should succeed")
	}
	if got.RunsImported != 1 || got.RunsFailed != 0 {
		t.Errorf("counts = %d imported / %d failed, want 1 / 0", got.RunsImported, got.RunsFailed)
	}
	if got.Message != "Imported 1 runs successfully" {
		t.Errorf("message = %q", got.Message)
	}
	if len(store.created) != 1 {
		t.Errorf("persisted %d runs, want 1", len(store.created))
	}
}

func TestImportCSVCountsPersistenceFailures(t *testing.T) {
	// First create succeeds, second hits the store error.
	svc, store := newImportFixture(1)

	results := svc.ImportFiles(context.Background(), "user-1", []ImportFile{
		{Name: "week1.csv", Content: []byte(importTestCSV)},
	})

	got := results[0]
	if !got.Success {
		t.Error("a partial import with at least one saved run is a success")
	}
	if got.RunsImported != 1 || got.RunsFailed != 1 {
		t.Errorf("counts = %d imported / %d failed, want 1 / 1", got.RunsImported, got.RunsFailed)
	}
	if got.Message != "Imported 1 runs successfully, 1 failed" {
		t.Errorf("message = %q", got.Message)
	}
	if len(store.created) != 1 {
		t.Errorf("persisted %d runs, want 1", len(store.created))
	}
}

func TestImportCSVNoValidData(t *testing.T) {
	svc, _ := newImportFixture(-1)

	content := "Date,Distance,Time,Activity Type\nnot-a-date,abc,xyz,Running\n"
	results := svc.ImportFiles(context.Background(), "user-1", []ImportFile{
		{Name: "empty.csv", Content: []byte(content)},
	})

	if results[0].Success {
		t.Fatal("a csv with no usable rows must fail")
	}
	if results[0].Message != "No valid run data found in file" {
		t.Errorf("message = %q", results[0].Message)
	}
}

func TestImportFileSizeLimit(t *testing.T) {
	svc := NewImportService(&fakeRunStore{failAfter: -1}, logger.New(nil), &ImportConfig{MaxFileSizeMB: 1})

	big := make([]byte, 2*1024*1024)
	results := svc.ImportFiles(context.Background(), "user-1", []ImportFile{
		{Name: "huge.tcx", Content: big},
	})

	if results[0].Success {
		t.Fatal("oversized file must be rejected")
	}
	if !strings.Contains(results[0].Message, "size limit") {
		t.Errorf("message = %q", results[0].Message)
	}
}

func TestImportSingleRecordsMetadata(t *testing.T) {
	svc, store := newImportFixture(-1)

	results := svc.ImportFiles(context.Background(), "user-9", []ImportFile{
		{Name: "morning.tcx", Content: []byte(importTestTCX)},
	})

	if !results[0].Success {
		t.Fatalf("import failed: %s", results[0].Message)
	}
	run := store.created[0]
	if run.UserID != "user-9" {
		t.Errorf("UserID = %q, want user-9", run.UserID)
	}
	if run.ID == "" {
		t.Error("run should be assigned an ID")
	}
	if run.DistanceMiles < 1.99 || run.DistanceMiles > 2.01 {
		t.Errorf("DistanceMiles = %v, want ~2", run.DistanceMiles)
	}
	want := fmt.Sprintf("Imported %.2f mile run from Mar 10, 2024", run.DistanceMiles)
	if results[0].Message != want {
		t.Errorf("message = %q, want %q", results[0].Message, want)
	}
}
