// Package compiler implements toycc's pipeline: parse a source file,
// rebase each procedure's source-line correspondence, compute a content
// digest per procedure, prune anything already cached in the
// repository, then emit fragments and a ticket file for whatever
// remains.
package compiler

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/SNSystems/toy-tools/internal/frontend"
	"github.com/SNSystems/toy-tools/internal/instruction"
	"github.com/SNSystems/toy-tools/internal/rebase"
	"github.com/SNSystems/toy-tools/internal/store"
	"github.com/SNSystems/toy-tools/internal/vm"
)

// boundProcedure pairs a rebased procedure with the digest and
// line_base it produced, so later stages never recompute either.
type boundProcedure struct {
	proc     *instruction.Procedure
	digest   string
	lineBase *int
}

// Compile runs the full pipeline for opt, logging progress to log.
func Compile(opt Options, log *logrus.Logger) error {
	src, err := os.ReadFile(opt.SourceFile)
	if err != nil {
		return fmt.Errorf("compiler: reading %s: %w", opt.SourceFile, err)
	}
	absSrc, err := filepath.Abs(opt.SourceFile)
	if err != nil {
		return fmt.Errorf("compiler: resolving %s: %w", opt.SourceFile, err)
	}

	program, err := frontend.Parse(string(src), frontend.Options{
		SourceFile: absSrc,
		DebugInfo:  opt.DebugInfo,
	})
	if err != nil {
		return err
	}
	if opt.DebugParse {
		for _, name := range program.Names {
			log.WithFields(logrus.Fields{"name": name, "instructions": len(program.Procs[name].Body)}).Debug("parsed procedure")
		}
	}

	// Adjust source correspondence so each procedure's line numbers are
	// relative to its own first line: moving a procedure within the
	// file no longer forces a recompile, though edits within its body
	// still change its digest.
	bound := make(map[string]*boundProcedure, len(program.Names))
	for _, name := range program.Names {
		result := rebase.Rebase(program.Procs[name])
		bound[name] = &boundProcedure{
			proc:     result.Procedure,
			digest:   instruction.Digest(result.Procedure),
			lineBase: result.LineBase,
		}
	}

	repo, err := store.Read(opt.Repository, true)
	if err != nil {
		return err
	}

	// Prune procedures whose digest already names a live fragment body.
	// A present-but-nil (stripped) entry does not count: this
	// repository never trusts a stripped fragment in place of
	// recompiling, so a previously-stripped name is emitted again here.
	pruned := make(map[string]struct{})
	for _, name := range program.Names {
		if repo.HasFragmentBody(bound[name].digest) {
			pruned[name] = struct{}{}
			log.WithField("name", name).Info("pruned: already in repository")
		}
	}

	builtins := vm.Names()
	compileUUID := uuid.New()

	outFile := opt.OutFile()
	absOut, err := filepath.Abs(outFile)
	if err != nil {
		return fmt.Errorf("compiler: resolving %s: %w", outFile, err)
	}
	ticket := &store.TicketFileEntry{Path: absOut}

	for _, name := range program.Names {
		bp := bound[name]
		ticket.Members = append(ticket.Members, store.TicketMember{
			Name:     name,
			Digest:   bp.digest,
			LineBase: bp.lineBase,
		})

		if _, skip := pruned[name]; skip {
			continue
		}

		if err := emitFragment(repo, name, bp, builtins, log); err != nil {
			return err
		}
	}

	repo.Tickets[compileUUID] = ticket

	if err := repo.WriteAtomic(opt.Repository); err != nil {
		return fmt.Errorf("compiler: writing repository: %w", err)
	}

	log.WithFields(logrus.Fields{"uuid": compileUUID, "file": outFile}).Info("writing ticket")
	if err := store.WriteTicket(outFile, compileUUID); err != nil {
		return fmt.Errorf("compiler: writing ticket: %w", err)
	}
	return nil
}

// emitFragment encodes bp's procedure into a Fragment and stores it in
// repo under bp.digest. Only the text section carries xfixups: Toy has
// no byte-level encoding through which a data or debug_line section
// could reference another fragment by name.
func emitFragment(repo *store.Repository, name string, bp *boundProcedure, builtins map[string]struct{}, log *logrus.Logger) error {
	fixups := referencedNames(bp.proc, builtins)
	xfixups := make([]store.XFixup, len(fixups))
	for i, f := range fixups {
		xfixups[i] = store.XFixup{Offset: -1, Name: f}
	}

	sections := make(map[store.SectionType]*bytes.Buffer)
	if err := bp.proc.Write(sections); err != nil {
		return fmt.Errorf("compiler: encoding %q: %w", name, err)
	}

	fragSections := make(map[store.SectionType]*store.FSection, len(sections))
	for scn, buf := range sections {
		fs := &store.FSection{Data: buf.Bytes()}
		if scn == store.SectionText {
			fs.XFixups = xfixups
		}
		fragSections[scn] = fs
	}

	repo.Fragments[bp.digest] = &store.Fragment{Sections: fragSections, Primary: store.SectionText}
	log.WithFields(logrus.Fields{"name": name, "digest": bp.digest}).Info("emitted procedure")
	return nil
}
