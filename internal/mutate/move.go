package mutate

import (
	"github.com/MrSnakeDoc/stash/internal/domain"
	"github.com/MrSnakeDoc/stash/internal/errs"
)

// MoveRequest describes moving one item between containers. Source and
// target may be the same section, different sections, section roots or
// folders at any nesting depth.
type MoveRequest struct {
	ItemID          string
	SourceSectionID string
	TargetSectionID string
	SourceFolderID  string // empty = section root
	TargetFolderID  string // empty = section root
	TargetIndex     int    // clamped to [0, len(target)]
}

// MoveItem atomically removes the item from its source container and
// inserts it into the target container, renormalizing orders on both
// sides. Moving a folder into itself or any of its descendants is
// rejected: the tree would become cyclic and every recursive walk over it
// would stop terminating.
func MoveItem(cfg *domain.Config, req MoveRequest) (*domain.Config, error) {
	next := cfg.Clone()

	sourceSec := next.FindSection(req.SourceSectionID)
	if sourceSec == nil {
		return nil, errs.NotFoundf("source section %s", req.SourceSectionID)
	}
	targetSec := next.FindSection(req.TargetSectionID)
	if targetSec == nil {
		return nil, errs.NotFoundf("target section %s", req.TargetSectionID)
	}

	source := &sourceSec.Items
	if req.SourceFolderID != "" {
		f := domain.FindFolder(sourceSec.Items, req.SourceFolderID)
		if f == nil {
			return nil, errs.NotFoundf("source folder %s", req.SourceFolderID)
		}
		source = &f.Items
	}

	// Locate the item in the source container before touching anything.
	idx := -1
	for i, it := range *source {
		if it.ItemID() == req.ItemID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, errs.NotFoundf("item %s in its source container", req.ItemID)
	}
	moved := (*source)[idx]

	// Cycle guard: a folder must not land inside its own subtree.
	if req.TargetFolderID != "" {
		if req.TargetFolderID == req.ItemID {
			return nil, errs.ErrCyclicMove
		}
		if f, ok := moved.(*domain.Folder); ok && domain.ContainsItem(f.Items, req.TargetFolderID) {
			return nil, errs.ErrCyclicMove
		}
	}

	target := &targetSec.Items
	if req.TargetFolderID != "" {
		f := domain.FindFolder(targetSec.Items, req.TargetFolderID)
		if f == nil {
			return nil, errs.NotFoundf("target folder %s", req.TargetFolderID)
		}
		target = &f.Items
	}

	// Remove from source, renormalize.
	*source = append((*source)[:idx], (*source)[idx+1:]...)
	domain.NormalizeOrders(*source)

	// Insert at the clamped index, renormalize.
	insertAt := req.TargetIndex
	if insertAt < 0 {
		insertAt = 0
	}
	if insertAt > len(*target) {
		insertAt = len(*target)
	}
	*target = append(*target, nil)
	copy((*target)[insertAt+1:], (*target)[insertAt:])
	(*target)[insertAt] = moved
	domain.NormalizeOrders(*target)

	return next, nil
}
