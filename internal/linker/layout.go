package linker

import "github.com/SNSystems/toy-tools/internal/store"

// layoutVisitor assigns each visited fragment's every non-stay-at-home
// section a contiguous address within that section's running layout.
type layoutVisitor struct {
	layout         map[store.SectionType]*SectionLayout
	nameAddressMap map[string]int
}

func newLayoutVisitor() *layoutVisitor {
	return &layoutVisitor{
		layout:         make(map[store.SectionType]*SectionLayout),
		nameAddressMap: make(map[string]int),
	}
}

func (v *layoutVisitor) Visit(name, digest string, ef *EligibleFragment) error {
	fragment := ef.Fragment
	for _, sectionName := range fragment.SectionNames() {
		if sectionName.StayAtHome() {
			continue
		}
		sl, ok := v.layout[sectionName]
		if !ok {
			sl = &SectionLayout{}
			v.layout[sectionName] = sl
		}

		address := sl.Dot
		sl.FragmentAddresses = append(sl.FragmentAddresses, FragmentAddress{
			Address:  address,
			Digest:   digest,
			Fragment: fragment,
			Name:     name,
		})

		publishedName := name
		if sectionName != fragment.Primary {
			publishedName = name + "/" + string(sectionName)
		}
		v.nameAddressMap[publishedName] = address

		sl.Dot += len(fragment.Sections[sectionName].Data)
	}
	return nil
}

// ProduceLayout walks the fragment graph from every entry point, in
// dependency-before-dependent order, and returns the per-section
// address layout plus the name -> address map the fixup pass consumes.
func ProduceLayout(eligible map[string]*EligibleFragment, entryPoints []string) (map[store.SectionType]*SectionLayout, map[string]int, error) {
	visitor := newLayoutVisitor()
	walker := newGraphWalker(eligible, visitor)
	for _, ep := range entryPoints {
		ef, ok := eligible[ep]
		if !ok {
			return nil, nil, &ErrUndefinedEntryPoint{Name: ep}
		}
		if ef.Fragment == nil {
			return nil, nil, &ErrFragmentMissing{Digest: ef.Digest, Name: ep}
		}
		if err := walker.walk(ep, ""); err != nil {
			return nil, nil, err
		}
	}
	return visitor.layout, visitor.nameAddressMap, nil
}
