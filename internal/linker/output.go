package linker

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/SNSystems/toy-tools/internal/store"
)

// sectionBases assigns each section a contiguous base address, ordered
// lexicographically by section name so the same eligible set always
// produces the same bases.
func sectionBases(layout map[store.SectionType]*SectionLayout) map[store.SectionType]int {
	names := make([]string, 0, len(layout))
	for name := range layout {
		names = append(names, string(name))
	}
	sort.Strings(names)

	bases := make(map[store.SectionType]int, len(layout))
	dot := 0
	for _, name := range names {
		section := store.SectionType(name)
		bases[section] = dot
		dot += layout[section].Dot
	}
	return bases
}

// applyFixup patches a 2-hex-character field at offset within data with
// value, leaving data's length unchanged. offset == -1 is XFixup's
// sentinel for "reference relationship only, no byte to patch" — Toy
// has no byte-level encoding for a fixup target yet.
func applyFixup(data []byte, offset, value int) []byte {
	if offset < 0 {
		return data
	}
	patched := append([]byte(nil), data...)
	hex := fmt.Sprintf("%02x", value&0xff)
	copy(patched[offset:offset+2], hex)
	return patched
}

// applySectionFixups applies both kinds of fixup recorded against
// fsection, returning the patched bytes. External fixups (xfixups)
// reference another fragment's primary section by name; internal
// fixups (ifixups) reference another section of the same fragment.
func applySectionFixups(
	fsection *store.FSection,
	fragmentName string,
	eligible map[string]*EligibleFragment,
	nameAddressMap map[string]int,
	bases map[store.SectionType]int,
) ([]byte, error) {
	data := fsection.Data

	for _, fixup := range fsection.XFixups {
		ef, ok := eligible[fixup.Name]
		if !ok || ef.Fragment == nil {
			return nil, &ErrUndefinedReference{To: fixup.Name, By: fragmentName}
		}
		ef.ReverseFixups = append(ef.ReverseFixups, ReverseFixup{From: fragmentName, Offset: fixup.Offset})

		address, ok := nameAddressMap[fixup.Name]
		if !ok {
			return nil, &ErrUndefinedReference{To: fixup.Name, By: fragmentName}
		}
		address += bases[ef.Fragment.Primary]
		data = applyFixup(data, fixup.Offset, address)
	}

	for _, fixup := range fsection.IFixups {
		name := fragmentName + "/" + string(fixup.Section)
		address, ok := nameAddressMap[name]
		if !ok {
			return nil, &ErrUndefinedReference{To: name, By: fragmentName}
		}
		address += bases[fixup.Section]
		data = applyFixup(data, fixup.Offset, address)
	}

	return data, nil
}

// Output assembles the laid-out, fixed-up section bytes, symbol table,
// and debug records into a new Executable.
func Output(
	eligible map[string]*EligibleFragment,
	repositoryRecord store.RepositoryRecord,
	layout map[store.SectionType]*SectionLayout,
	nameAddressMap map[string]int,
	bases map[store.SectionType]int,
	linkUUID uuid.UUID,
) (*store.Executable, error) {
	exe := store.NewExecutable(repositoryRecord, linkUUID)

	sectionNames := make([]string, 0, len(layout))
	for name := range layout {
		sectionNames = append(sectionNames, string(name))
	}
	sort.Strings(sectionNames)

	for _, sn := range sectionNames {
		section := store.SectionType(sn)
		sl := layout[section]
		for _, fa := range sl.FragmentAddresses {
			fsection := fa.Fragment.Sections[section]
			data, err := applySectionFixups(fsection, fa.Name, eligible, nameAddressMap, bases)
			if err != nil {
				return nil, err
			}

			address := fa.Address + bases[section]
			exe.Data[section] = append(exe.Data[section], data...)

			ef := eligible[fa.Name]
			if ef.LineBase != nil {
				exe.Debug = append(exe.Debug, store.DebugLineRecord{
					Address:      address,
					FragmentHash: fa.Digest,
					LineBase:     *ef.LineBase,
				})
			}

			exe.Symbols = append(exe.Symbols, store.Symbol{Name: fa.Name, Address: address, Size: len(data)})
		}
	}
	return exe, nil
}
