package linker

// LinkVisitor is notified once for each fragment graph vertex a walk
// visits, in dependency-before-dependent order.
type LinkVisitor interface {
	Visit(name, digest string, fragment *EligibleFragment) error
}

// graphWalker performs a depth-first walk of the fragment reference
// graph: a fragment's xfixup referents are visited (and thus laid out)
// before the fragment itself.
type graphWalker struct {
	eligible map[string]*EligibleFragment
	visited  map[string]struct{}
	visitor  LinkVisitor
}

func newGraphWalker(eligible map[string]*EligibleFragment, visitor LinkVisitor) *graphWalker {
	return &graphWalker{
		eligible: eligible,
		visited:  make(map[string]struct{}),
		visitor:  visitor,
	}
}

// walk visits name, recursing into its xfixup referents first. by is
// the name of the fragment that led here, used only to give
// ErrUndefinedReference a useful origin; pass "" at the root.
func (w *graphWalker) walk(name, by string) error {
	if _, seen := w.visited[name]; seen {
		return nil
	}
	w.visited[name] = struct{}{}

	ef, ok := w.eligible[name]
	if !ok {
		return &ErrUndefinedReference{To: name, By: by}
	}
	if ef.Fragment == nil {
		return &ErrFragmentMissing{Digest: ef.Digest, Name: name}
	}

	for _, section := range ef.Fragment.SectionNames() {
		for _, fixup := range ef.Fragment.Sections[section].XFixups {
			if err := w.walk(fixup.Name, name); err != nil {
				return err
			}
		}
	}
	return w.visitor.Visit(name, ef.Digest, ef)
}
