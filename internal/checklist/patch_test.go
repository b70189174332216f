package checklist

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/sandeepkv93/pomo/internal/model"
)

func TestPatchMarksComplete(t *testing.T) {
	lines := []string{"- [ ] Task 1", "- [ ] Task 2"}
	got := Patch(lines, []model.SyncItem{{Text: "Task 1", Resolution: model.ResolutionComplete}})
	want := []string{"- [x] Task 1", "- [ ] Task 2"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("patch = %q, want %q", got, want)
	}
	if lines[0] != "- [ ] Task 1" {
		t.Fatalf("expected input lines untouched, got %q", lines)
	}
}

func TestPatchMarksIncompleteFromUpperX(t *testing.T) {
	got := Patch([]string{"- [X] Task 1"}, []model.SyncItem{{Text: "Task 1", Resolution: model.ResolutionIncomplete}})
	if !reflect.DeepEqual(got, []string{"- [ ] Task 1"}) {
		t.Fatalf("unexpected patch: %q", got)
	}
}

func TestPatchAppendsUnmatched(t *testing.T) {
	got := Patch([]string{"- [ ] Task 1"}, []model.SyncItem{
		{Text: "New Task", Resolution: model.ResolutionIncomplete},
		{Text: "Done Elsewhere", Resolution: model.ResolutionComplete},
		{Text: "Gone", Resolution: model.ResolutionRemove},
	})
	want := []string{"- [ ] Task 1", "- [ ] New Task", "- [x] Done Elsewhere"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("patch = %q, want %q", got, want)
	}
}

func TestPatchRemovesLine(t *testing.T) {
	got := Patch([]string{"- [ ] Task 1", "- [ ] Task 2", "- [ ] Task 3"}, []model.SyncItem{
		{Text: "Task 2", Resolution: model.ResolutionRemove},
	})
	if !reflect.DeepEqual(got, []string{"- [ ] Task 1", "- [ ] Task 3"}) {
		t.Fatalf("unexpected patch: %q", got)
	}
}

func TestPatchPreservesIndentationAndPassthrough(t *testing.T) {
	lines := []string{
		"# Project",
		"",
		"  - [ ] Indented task",
		"notes: keep me",
		"\t- [x] Tabbed task",
	}
	got := Patch(lines, []model.SyncItem{
		{Text: "Indented task", Resolution: model.ResolutionComplete},
		{Text: "Tabbed task", Resolution: model.ResolutionIncomplete},
	})
	want := []string{
		"# Project",
		"",
		"  - [x] Indented task",
		"notes: keep me",
		"\t- [ ] Tabbed task",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("patch = %q, want %q", got, want)
	}
}

func TestPatchPositionalDedup(t *testing.T) {
	lines := []string{"- [ ] Same", "middle", "- [ ] Same"}
	got := Patch(lines, []model.SyncItem{{Text: "Same", Resolution: model.ResolutionComplete}})
	want := []string{"- [x] Same", "middle", "- [ ] Same"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("patch = %q, want %q", got, want)
	}

	got = Patch(lines, []model.SyncItem{
		{Text: "Same", Resolution: model.ResolutionComplete},
		{Text: "Same", Resolution: model.ResolutionRemove},
	})
	want = []string{"- [x] Same", "middle"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("patch = %q, want %q", got, want)
	}
}

func TestPatchDuplicateAppendIsRewrittenInPlace(t *testing.T) {
	got := Patch([]string{"# Tasks"}, []model.SyncItem{
		{Text: "Twice", Resolution: model.ResolutionIncomplete},
		{Text: "Twice", Resolution: model.ResolutionComplete},
	})
	want := []string{"# Tasks", "- [x] Twice"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("patch = %q, want %q", got, want)
	}

	got = Patch(nil, []model.SyncItem{
		{Text: "Gone", Resolution: model.ResolutionComplete},
		{Text: "Gone", Resolution: model.ResolutionRemove},
	})
	want = []string{}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("patch = %q, want %q", got, want)
	}
}

func TestPatchMultipleRemovalsKeepOrder(t *testing.T) {
	lines := []string{"- [ ] a", "- [ ] b", "- [ ] c", "- [ ] d", "- [ ] e"}
	got := Patch(lines, []model.SyncItem{
		{Text: "d", Resolution: model.ResolutionRemove},
		{Text: "b", Resolution: model.ResolutionRemove},
		{Text: "e", Resolution: model.ResolutionComplete},
	})
	want := []string{"- [ ] a", "- [ ] c", "- [x] e"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("patch = %q, want %q", got, want)
	}
}

func TestPatchRoundTripMatchesResolvedItems(t *testing.T) {
	lines := []string{"# header", "- [ ] Task 1", "- [x] Task 2", "- [ ] Task 3"}
	items := []model.SyncItem{
		{Text: "Task 1", Resolution: model.ResolutionComplete},
		{Text: "Task 2", Resolution: model.ResolutionIncomplete},
		{Text: "Task 3", Resolution: model.ResolutionRemove},
		{Text: "New Task 4", Resolution: model.ResolutionIncomplete},
	}
	parsed := Parse(Patch(lines, items))
	if !reflect.DeepEqual(parsed.Incomplete, []string{"Task 2", "New Task 4"}) {
		t.Fatalf("unexpected incomplete: %q", parsed.Incomplete)
	}
	if !reflect.DeepEqual(parsed.Complete, []string{"Task 1"}) {
		t.Fatalf("unexpected complete: %q", parsed.Complete)
	}
	for _, text := range parsed.All() {
		if text == "Task 3" {
			t.Fatal("removed task still present")
		}
	}
}

func TestFileReadWriteAndEnsure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tasks.md")
	f := File{Path: path}
	if _, err := f.Read(); err == nil {
		t.Fatal("expected read error for missing file")
	}
	if err := f.Ensure(); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	doc, err := f.Read()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	doc.Lines = Patch(doc.Lines, []model.SyncItem{{Text: "First", Resolution: model.ResolutionIncomplete}})
	if err := f.Write(doc); err != nil {
		t.Fatalf("write: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(raw) != "- [ ] First\n" {
		t.Fatalf("unexpected content: %q", raw)
	}

	if err := os.WriteFile(path, []byte("keep\n- [ ] First"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := f.Ensure(); err != nil {
		t.Fatalf("ensure existing: %v", err)
	}
	raw, _ = os.ReadFile(path)
	if !strings.HasPrefix(string(raw), "keep") {
		t.Fatalf("ensure must not truncate: %q", raw)
	}
}
