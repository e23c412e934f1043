package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
)

func TestRepository_WriteThenRead_RoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "repository.yaml")

	repo := New()
	repo.Fragments["deadbeef"] = &Fragment{
		Primary: SectionText,
		Sections: map[SectionType]*FSection{
			SectionText: {
				Data:    []byte{1, 2, 3},
				XFixups: []XFixup{{Offset: 0, Name: "other"}},
			},
		},
	}
	repo.Fragments["stripped"] = nil

	ticketUUID := uuid.New()
	repo.Tickets[ticketUUID] = &TicketFileEntry{
		Path: "a.o",
		Members: []TicketMember{
			{Name: "main", Digest: "deadbeef", LineBase: nil},
		},
	}
	repo.Links = []LinksRecord{{File: "a.out.yaml", UUID: uuid.New()}}

	if err := repo.Write(path); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := Read(path, false)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if diff := cmp.Diff(repo, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestRead_MissingFileWithCreateReturnsEmptyRepository(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "does-not-exist.yaml")

	repo, err := Read(path, true)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(repo.Fragments) != 0 || len(repo.Tickets) != 0 || repo.Links != nil {
		t.Errorf("expected an empty repository, got %+v", repo)
	}
}

func TestRead_MissingFileWithoutCreateIsAnError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "does-not-exist.yaml")

	if _, err := Read(path, false); err == nil {
		t.Fatal("expected an error for a missing repository")
	}
}

func TestRead_InvalidYAMLIsErrRepositoryInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("not: [valid yaml"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	_, err := Read(path, false)
	var invalid *ErrRepositoryInvalid
	if err == nil {
		t.Fatal("expected an error for malformed YAML")
	}
	if !asErrRepositoryInvalid(err, &invalid) {
		t.Errorf("error = %v (%T), want *ErrRepositoryInvalid", err, err)
	}
}

func asErrRepositoryInvalid(err error, target **ErrRepositoryInvalid) bool {
	if e, ok := err.(*ErrRepositoryInvalid); ok {
		*target = e
		return true
	}
	return false
}

func TestWriteAtomic_LeavesNoTempFileBehind(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "repository.yaml")

	repo := New()
	if err := repo.WriteAtomic(path); err != nil {
		t.Fatalf("WriteAtomic: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "repository.yaml" {
		t.Errorf("directory contents = %v, want exactly [repository.yaml]", entries)
	}

	got, err := Read(path, false)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if diff := cmp.Diff(repo, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestExecutable_WriteThenRead_RoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.out.yaml")

	exe := NewExecutable(RepositoryRecord{Path: "repository.yaml", UUID: uuid.New()}, uuid.New())
	exe.Symbols = []Symbol{{Name: "main", Address: 0, Size: 16}}
	exe.Data[SectionText] = []byte{0xc0, 0xde}
	exe.Debug = []DebugLineRecord{{Address: 0, FragmentHash: "deadbeef", LineBase: 3}}

	if err := exe.Write(path); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := ReadExecutable(path)
	if err != nil {
		t.Fatalf("ReadExecutable: %v", err)
	}
	if diff := cmp.Diff(exe, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestTicket_WriteThenRead_RoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.o")

	id := uuid.New()
	if err := WriteTicket(path, id); err != nil {
		t.Fatalf("WriteTicket: %v", err)
	}

	got, err := ReadTicket(path)
	if err != nil {
		t.Fatalf("ReadTicket: %v", err)
	}
	if got != id {
		t.Errorf("ReadTicket = %s, want %s", got, id)
	}
}

func TestReadTicket_NotAUUIDIsAnError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.o")
	if err := os.WriteFile(path, []byte("not a uuid"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := ReadTicket(path); err == nil {
		t.Fatal("expected an error for a non-UUID ticket file")
	}
}

func TestHasFragmentBody(t *testing.T) {
	repo := New()
	repo.Fragments["present"] = &Fragment{Primary: SectionText}
	repo.Fragments["stripped"] = nil

	if !repo.HasFragmentBody("present") {
		t.Error("HasFragmentBody(present) = false, want true")
	}
	if repo.HasFragmentBody("stripped") {
		t.Error("HasFragmentBody(stripped) = true, want false")
	}
	if repo.HasFragmentBody("absent") {
		t.Error("HasFragmentBody(absent) = true, want false")
	}
}

func TestFragment_SectionNamesIsSorted(t *testing.T) {
	f := &Fragment{
		Sections: map[SectionType]*FSection{
			SectionDebugLine: {},
			SectionData:      {},
			SectionText:      {},
		},
	}
	got := f.SectionNames()
	want := []SectionType{SectionData, SectionDebugLine, SectionText}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SectionNames mismatch (-want +got):\n%s", diff)
	}
}

func TestSectionType_StayAtHome(t *testing.T) {
	if !SectionDebugLine.StayAtHome() {
		t.Error("debug_line should be stay-at-home")
	}
	if SectionText.StayAtHome() || SectionData.StayAtHome() {
		t.Error("text and data should not be stay-at-home")
	}
}

func TestErrRepositoryUUIDMismatch_Error(t *testing.T) {
	want, got := uuid.New(), uuid.New()
	err := &ErrRepositoryUUIDMismatch{Want: want, Got: got}
	if err.Error() == "" {
		t.Error("Error() should not be empty")
	}
}
