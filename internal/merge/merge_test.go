package merge

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/SNSystems/toy-tools/internal/logging"
	"github.com/SNSystems/toy-tools/internal/store"
)

func frag(b byte) *store.Fragment {
	return &store.Fragment{
		Primary:  store.SectionText,
		Sections: map[store.SectionType]*store.FSection{store.SectionText: {Data: []byte{b}}},
	}
}

func writeRepo(t *testing.T, path string, repo *store.Repository) {
	t.Helper()
	if err := repo.Write(path); err != nil {
		t.Fatalf("Write(%s): %v", path, err)
	}
}

func TestRun_CreatesOutputWhenAbsent(t *testing.T) {
	dir := t.TempDir()
	in := store.New()
	in.Fragments["d"] = frag(1)
	inPath := filepath.Join(dir, "in.yaml")
	writeRepo(t, inPath, in)

	outPath := filepath.Join(dir, "out.yaml")
	if err := Run(Options{Inputs: []string{inPath}, Output: outPath}, logging.New(0)); err != nil {
		t.Fatalf("Run: %v", err)
	}

	got, err := store.Read(outPath, false)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if _, ok := got.Fragments["d"]; !ok {
		t.Error("merged output is missing the input's fragment")
	}
}

func TestRun_KeepsExistingFragmentOnDuplicateDigest(t *testing.T) {
	dir := t.TempDir()
	out := store.New()
	out.Fragments["d"] = frag(0xaa)
	outPath := filepath.Join(dir, "out.yaml")
	writeRepo(t, outPath, out)

	in := store.New()
	in.Fragments["d"] = frag(0xbb)
	inPath := filepath.Join(dir, "in.yaml")
	writeRepo(t, inPath, in)

	if err := Run(Options{Inputs: []string{inPath}, Output: outPath}, logging.New(0)); err != nil {
		t.Fatalf("Run: %v", err)
	}

	got, err := store.Read(outPath, false)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	data := got.Fragments["d"].Sections[store.SectionText].Data
	if len(data) != 1 || data[0] != 0xaa {
		t.Errorf("merged fragment data = %v, want the destination's original [0xaa]", data)
	}
}

func TestRun_SkipsStrippedFragmentsFromInputs(t *testing.T) {
	dir := t.TempDir()
	out := store.New()
	outPath := filepath.Join(dir, "out.yaml")
	writeRepo(t, outPath, out)

	in := store.New()
	in.Fragments["d"] = nil
	inPath := filepath.Join(dir, "in.yaml")
	writeRepo(t, inPath, in)

	if err := Run(Options{Inputs: []string{inPath}, Output: outPath}, logging.New(0)); err != nil {
		t.Fatalf("Run: %v", err)
	}

	got, err := store.Read(outPath, false)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if _, ok := got.Fragments["d"]; ok {
		t.Error("a stripped fragment from an input repository was merged in")
	}
}

func TestRun_MergesTicketsButNotLinks(t *testing.T) {
	dir := t.TempDir()
	out := store.New()
	outPath := filepath.Join(dir, "out.yaml")
	writeRepo(t, outPath, out)

	in := store.New()
	ticketID := uuid.New()
	in.Tickets[ticketID] = &store.TicketFileEntry{Path: "a.o"}
	in.Links = append(in.Links, store.LinksRecord{File: "a.out.yaml", UUID: uuid.New()})
	inPath := filepath.Join(dir, "in.yaml")
	writeRepo(t, inPath, in)

	if err := Run(Options{Inputs: []string{inPath}, Output: outPath}, logging.New(0)); err != nil {
		t.Fatalf("Run: %v", err)
	}

	got, err := store.Read(outPath, false)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if _, ok := got.Tickets[ticketID]; !ok {
		t.Error("ticket from an input repository was not merged in")
	}
	if len(got.Links) != 0 {
		t.Errorf("got %d links after merge, want 0 (links never merge)", len(got.Links))
	}
}

func TestRun_MergesMultipleInputsInOrder(t *testing.T) {
	dir := t.TempDir()
	out := store.New()
	outPath := filepath.Join(dir, "out.yaml")
	writeRepo(t, outPath, out)

	in1 := store.New()
	in1.Fragments["a"] = frag(1)
	in1Path := filepath.Join(dir, "in1.yaml")
	writeRepo(t, in1Path, in1)

	in2 := store.New()
	in2.Fragments["b"] = frag(2)
	in2Path := filepath.Join(dir, "in2.yaml")
	writeRepo(t, in2Path, in2)

	if err := Run(Options{Inputs: []string{in1Path, in2Path}, Output: outPath}, logging.New(0)); err != nil {
		t.Fatalf("Run: %v", err)
	}

	got, err := store.Read(outPath, false)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(got.Fragments) != 2 {
		t.Fatalf("got %d fragments, want 2", len(got.Fragments))
	}
}
