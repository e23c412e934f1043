package gc

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/SNSystems/toy-tools/internal/logging"
	"github.com/SNSystems/toy-tools/internal/store"
)

func liveFragment(b byte) *store.Fragment {
	return &store.Fragment{
		Primary:  store.SectionText,
		Sections: map[store.SectionType]*store.FSection{store.SectionText: {Data: []byte{b}}},
	}
}

func TestCollect_PreservesStrippedFragments(t *testing.T) {
	src := store.New()
	src.Fragments["stripped"] = nil
	dest := store.New()

	Collect(src, dest, logging.New(0))

	got, ok := dest.Fragments["stripped"]
	if !ok {
		t.Fatal("stripped fragment entry was dropped")
	}
	if got != nil {
		t.Errorf("stripped fragment came back non-nil: %v", got)
	}
}

func TestCollect_DropsUnreachableFragment(t *testing.T) {
	src := store.New()
	src.Fragments["orphan"] = liveFragment(1)
	dest := store.New()

	Collect(src, dest, logging.New(0))

	if _, ok := dest.Fragments["orphan"]; ok {
		t.Error("unreachable fragment survived collection")
	}
}

func TestCollect_PreservesFragmentsRootedByAnExtantTicket(t *testing.T) {
	dir := t.TempDir()
	src := store.New()
	src.Fragments["d"] = liveFragment(1)

	ticketPath := filepath.Join(dir, "a.o")
	ticketID := uuid.New()
	if err := store.WriteTicket(ticketPath, ticketID); err != nil {
		t.Fatalf("WriteTicket: %v", err)
	}
	src.Tickets[ticketID] = &store.TicketFileEntry{
		Path:    ticketPath,
		Members: []store.TicketMember{{Name: "main", Digest: "d"}},
	}

	dest := store.New()
	Collect(src, dest, logging.New(0))

	if _, ok := dest.Fragments["d"]; !ok {
		t.Error("fragment rooted by an extant ticket was dropped")
	}
	if _, ok := dest.Tickets[ticketID]; !ok {
		t.Error("extant ticket was dropped")
	}
}

func TestCollect_DropsTicketWhoseFileNoLongerMatches(t *testing.T) {
	dir := t.TempDir()
	src := store.New()
	src.Fragments["d"] = liveFragment(1)

	ticketPath := filepath.Join(dir, "a.o")
	// Write a ticket file naming a different UUID than the one recorded
	// in the repository, simulating a stale/overwritten ticket file.
	if err := store.WriteTicket(ticketPath, uuid.New()); err != nil {
		t.Fatalf("WriteTicket: %v", err)
	}
	staleID := uuid.New()
	src.Tickets[staleID] = &store.TicketFileEntry{
		Path:    ticketPath,
		Members: []store.TicketMember{{Name: "main", Digest: "d"}},
	}

	dest := store.New()
	Collect(src, dest, logging.New(0))

	if _, ok := dest.Tickets[staleID]; ok {
		t.Error("ticket with a mismatched on-disk UUID was kept")
	}
	if _, ok := dest.Fragments["d"]; ok {
		t.Error("fragment rooted only by a dropped ticket was kept")
	}
}

func TestCollect_DropsTicketWhoseFileIsGone(t *testing.T) {
	dir := t.TempDir()
	src := store.New()
	src.Fragments["d"] = liveFragment(1)

	ticketID := uuid.New()
	src.Tickets[ticketID] = &store.TicketFileEntry{
		Path:    filepath.Join(dir, "missing.o"),
		Members: []store.TicketMember{{Name: "main", Digest: "d"}},
	}

	dest := store.New()
	Collect(src, dest, logging.New(0))

	if _, ok := dest.Tickets[ticketID]; ok {
		t.Error("ticket whose file no longer exists was kept")
	}
}

func TestCollect_KeepsExtantLinkButNotFragmentsWithoutADebugRecord(t *testing.T) {
	dir := t.TempDir()
	src := store.New()
	src.Fragments["d"] = liveFragment(1)

	linkUUID := uuid.New()
	exe := store.NewExecutable(store.RepositoryRecord{Path: "repository.yaml", UUID: src.UUID}, linkUUID)
	exe.Data[store.SectionText] = []byte{1}
	exePath := filepath.Join(dir, "a.out.yaml")
	if err := exe.Write(exePath); err != nil {
		t.Fatalf("Write: %v", err)
	}
	src.Links = append(src.Links, store.LinksRecord{File: exePath, UUID: linkUUID})

	dest := store.New()
	Collect(src, dest, logging.New(0))

	if len(dest.Links) != 1 {
		t.Fatalf("dest has %d links, want 1", len(dest.Links))
	}
	if _, ok := dest.Fragments["d"]; ok {
		t.Error("a fragment with no debug record pointing to it was kept")
	}
}

func TestCollect_PreservesDebugReferencedFragmentEvenWithoutATicket(t *testing.T) {
	dir := t.TempDir()
	src := store.New()
	src.Fragments["d"] = liveFragment(1)

	linkUUID := uuid.New()
	exe := store.NewExecutable(store.RepositoryRecord{Path: "repository.yaml", UUID: src.UUID}, linkUUID)
	exe.Data[store.SectionText] = []byte{1}
	exe.Debug = append(exe.Debug, store.DebugLineRecord{Address: 0, FragmentHash: "d", LineBase: 0})
	exePath := filepath.Join(dir, "a.out.yaml")
	if err := exe.Write(exePath); err != nil {
		t.Fatalf("Write: %v", err)
	}
	src.Links = append(src.Links, store.LinksRecord{File: exePath, UUID: linkUUID})

	dest := store.New()
	Collect(src, dest, logging.New(0))

	if _, ok := dest.Fragments["d"]; !ok {
		t.Error("fragment referenced by a surviving executable's debug record was dropped")
	}
}

func TestCollect_DropsLinkWhoseExecutableIsGone(t *testing.T) {
	src := store.New()
	src.Links = append(src.Links, store.LinksRecord{File: "/nonexistent.yaml", UUID: uuid.New()})

	dest := store.New()
	Collect(src, dest, logging.New(0))

	if len(dest.Links) != 0 {
		t.Errorf("dest has %d links, want 0", len(dest.Links))
	}
}

func TestCollect_DropsLinkWhoseExecutableUUIDNoLongerMatches(t *testing.T) {
	dir := t.TempDir()
	src := store.New()

	exe := store.NewExecutable(store.RepositoryRecord{Path: "repository.yaml", UUID: src.UUID}, uuid.New())
	exePath := filepath.Join(dir, "a.out.yaml")
	if err := exe.Write(exePath); err != nil {
		t.Fatalf("Write: %v", err)
	}
	// Record a link entry naming a UUID that doesn't match what's on disk.
	src.Links = append(src.Links, store.LinksRecord{File: exePath, UUID: uuid.New()})

	dest := store.New()
	Collect(src, dest, logging.New(0))

	if len(dest.Links) != 0 {
		t.Errorf("dest has %d links, want 0", len(dest.Links))
	}
}

func TestCollect_PreservesSourceUUID(t *testing.T) {
	src := store.New()
	dest := store.New()
	Collect(src, dest, logging.New(0))
	if dest.UUID != src.UUID {
		t.Errorf("dest.UUID = %s, want %s", dest.UUID, src.UUID)
	}
}

func TestRun_ReadsCollectsAndWritesBackAtomically(t *testing.T) {
	dir := t.TempDir()
	repoPath := filepath.Join(dir, "repository.yaml")

	repo := store.New()
	repo.Fragments["stripped"] = nil
	repo.Fragments["orphan"] = liveFragment(1)
	if err := repo.Write(repoPath); err != nil {
		t.Fatalf("Write: %v", err)
	}

	if err := Run(Options{Repository: repoPath}, logging.New(0)); err != nil {
		t.Fatalf("Run: %v", err)
	}

	got, err := store.Read(repoPath, false)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if _, ok := got.Fragments["orphan"]; ok {
		t.Error("Run did not drop the unreachable fragment")
	}
	if _, ok := got.Fragments["stripped"]; !ok {
		t.Error("Run dropped the stripped fragment entry")
	}

	entries, err := filepath.Glob(filepath.Join(dir, "*"))
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("directory has %d entries after Run, want 1 (no leftover temp file): %v", len(entries), entries)
	}
}
