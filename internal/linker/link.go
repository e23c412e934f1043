package linker

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/SNSystems/toy-tools/internal/store"
)

// Options controls a single link, mirroring toyld's command-line
// surface.
type Options struct {
	InFiles     []string
	Repository  string
	OutFile     string
	EntryPoints []string
	Debug       bool
	Verbose     int
}

// Link resolves opt.InFiles against the repository, lays out and fixes
// up the reachable fragment graph, writes the resulting executable,
// and records the link in the repository. It returns the resolved
// address of every entry point.
func Link(opt Options, log *logrus.Logger) ([]int, error) {
	repo, err := store.Read(opt.Repository, false)
	if err != nil {
		return nil, err
	}

	tickets := make([]uuid.UUID, 0, len(opt.InFiles))
	for _, path := range opt.InFiles {
		id, err := store.ReadTicket(path)
		if err != nil {
			return nil, fmt.Errorf("linker: reading ticket %s: %w", path, err)
		}
		tickets = append(tickets, id)
	}

	eligible, err := CollectEligible(tickets, repo)
	if err != nil {
		return nil, err
	}

	entryPoints := opt.EntryPoints
	if len(entryPoints) == 0 {
		entryPoints = []string{"main"}
	}
	log.WithField("entry_points", entryPoints).Debug("entry points")

	layout, nameAddressMap, err := ProduceLayout(eligible, entryPoints)
	if err != nil {
		return nil, err
	}
	bases := sectionBases(layout)
	log.WithField("bases", bases).Info("section bases")

	absRepo, err := filepath.Abs(opt.Repository)
	if err != nil {
		return nil, fmt.Errorf("linker: resolving %s: %w", opt.Repository, err)
	}
	repoRecord := store.RepositoryRecord{Path: absRepo, UUID: repo.UUID}

	linkUUID := uuid.New()
	exe, err := Output(eligible, repoRecord, layout, nameAddressMap, bases, linkUUID)
	if err != nil {
		return nil, err
	}

	if err := exe.Write(opt.OutFile); err != nil {
		os.Remove(opt.OutFile)
		return nil, fmt.Errorf("linker: writing executable: %w", err)
	}

	absOut, err := filepath.Abs(opt.OutFile)
	if err != nil {
		os.Remove(opt.OutFile)
		return nil, fmt.Errorf("linker: resolving %s: %w", opt.OutFile, err)
	}
	repo.Links = append(repo.Links, store.LinksRecord{File: absOut, UUID: linkUUID})
	if err := repo.WriteAtomic(opt.Repository); err != nil {
		os.Remove(opt.OutFile)
		return nil, fmt.Errorf("linker: writing repository: %w", err)
	}

	addrs := make([]int, 0, len(entryPoints))
	for _, ep := range entryPoints {
		ef := eligible[ep]
		addr, ok := nameAddressMap[ep]
		if !ok {
			return nil, &ErrUndefinedEntryPoint{Name: ep}
		}
		addr += bases[ef.Fragment.Primary]
		addrs = append(addrs, addr)
		log.WithFields(logrus.Fields{"entry_point": ep, "address": addr}).Info("entry address")
	}
	return addrs, nil
}
