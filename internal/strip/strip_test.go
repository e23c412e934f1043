package strip

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/SNSystems/toy-tools/internal/logging"
	"github.com/SNSystems/toy-tools/internal/store"
)

func TestRun_BlanksEveryFragmentBody(t *testing.T) {
	dir := t.TempDir()
	repo := store.New()
	repo.Fragments["d"] = &store.Fragment{
		Primary:  store.SectionText,
		Sections: map[store.SectionType]*store.FSection{store.SectionText: {Data: []byte{1, 2, 3}}},
	}
	inPath := filepath.Join(dir, "in.yaml")
	if err := repo.Write(inPath); err != nil {
		t.Fatalf("Write: %v", err)
	}

	outPath := filepath.Join(dir, "out.yaml")
	if err := Run(Options{Input: inPath, Output: outPath}, logging.New(0)); err != nil {
		t.Fatalf("Run: %v", err)
	}

	got, err := store.Read(outPath, false)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	body, ok := got.Fragments["d"]
	if !ok {
		t.Fatal("stripped repository lost the digest entry entirely")
	}
	if body != nil {
		t.Errorf("fragment body = %v, want nil (stripped)", body)
	}
}

func TestRun_DropsTicketsAndLinks(t *testing.T) {
	dir := t.TempDir()
	repo := store.New()
	repo.Tickets[uuid.New()] = &store.TicketFileEntry{Path: "a.o"}
	repo.Links = append(repo.Links, store.LinksRecord{File: "a.out.yaml", UUID: uuid.New()})
	inPath := filepath.Join(dir, "in.yaml")
	if err := repo.Write(inPath); err != nil {
		t.Fatalf("Write: %v", err)
	}

	outPath := filepath.Join(dir, "out.yaml")
	if err := Run(Options{Input: inPath, Output: outPath}, logging.New(0)); err != nil {
		t.Fatalf("Run: %v", err)
	}

	got, err := store.Read(outPath, false)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(got.Tickets) != 0 {
		t.Errorf("got %d tickets, want 0", len(got.Tickets))
	}
	if len(got.Links) != 0 {
		t.Errorf("got %d links, want 0", len(got.Links))
	}
}

func TestRun_StampsAFreshUUID(t *testing.T) {
	dir := t.TempDir()
	repo := store.New()
	originalUUID := repo.UUID
	inPath := filepath.Join(dir, "in.yaml")
	if err := repo.Write(inPath); err != nil {
		t.Fatalf("Write: %v", err)
	}

	outPath := filepath.Join(dir, "out.yaml")
	if err := Run(Options{Input: inPath, Output: outPath}, logging.New(0)); err != nil {
		t.Fatalf("Run: %v", err)
	}

	got, err := store.Read(outPath, false)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got.UUID == originalUUID {
		t.Error("stripped repository kept the original UUID")
	}
}

func TestRun_CanWriteBackOverTheInputPath(t *testing.T) {
	dir := t.TempDir()
	repo := store.New()
	repo.Fragments["d"] = &store.Fragment{
		Primary:  store.SectionText,
		Sections: map[store.SectionType]*store.FSection{store.SectionText: {Data: []byte{1}}},
	}
	path := filepath.Join(dir, "repository.yaml")
	if err := repo.Write(path); err != nil {
		t.Fatalf("Write: %v", err)
	}

	if err := Run(Options{Input: path, Output: path}, logging.New(0)); err != nil {
		t.Fatalf("Run: %v", err)
	}

	got, err := store.Read(path, false)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got.Fragments["d"] != nil {
		t.Error("in-place strip left the fragment body intact")
	}
}
