package filter

import (
	"github.com/webboardlab/voc-insight/internal/domain"
)

// Tree is the two-level checkbox state behind the filter UI: a master
// "select all", one group per game, and one leaf per (game, platform).
// It is presentation state, kept out of the pure Apply: the UI mutates
// the tree, then feeds Tree.Selection into Apply.
//
// Consistency is bidirectional and maintained on every toggle: setting a
// group sets all of its leaves, setting the master sets everything, and a
// group (or the master) reads as checked exactly when all of its leaves are.
type Tree struct {
	groups []group
}

type group struct {
	game   domain.Game
	leaves []leaf
}

type leaf struct {
	platform domain.Platform // empty for game-only leaves
	selected bool
}

// NewTree builds the default tree: every known game crossed with every
// platform, all selected. GameOther is a single-platform entity and gets
// one game-only leaf.
func NewTree() *Tree {
	t := &Tree{}
	for _, game := range domain.AllGames {
		g := group{game: game}
		if game == domain.GameOther {
			g.leaves = []leaf{{selected: true}}
		} else {
			for _, p := range domain.AllPlatforms {
				g.leaves = append(g.leaves, leaf{platform: p, selected: true})
			}
		}
		t.groups = append(t.groups, g)
	}
	return t
}

// ToggleAll sets every leaf in the tree.
func (t *Tree) ToggleAll(selected bool) {
	for gi := range t.groups {
		for li := range t.groups[gi].leaves {
			t.groups[gi].leaves[li].selected = selected
		}
	}
}

// ToggleGroup sets every leaf under one game.
func (t *Tree) ToggleGroup(game domain.Game, selected bool) {
	for gi := range t.groups {
		if t.groups[gi].game != game {
			continue
		}
		for li := range t.groups[gi].leaves {
			t.groups[gi].leaves[li].selected = selected
		}
	}
}

// ToggleLeaf sets a single (game, platform) leaf.
func (t *Tree) ToggleLeaf(game domain.Game, platform domain.Platform, selected bool) {
	for gi := range t.groups {
		if t.groups[gi].game != game {
			continue
		}
		for li := range t.groups[gi].leaves {
			if t.groups[gi].leaves[li].platform == platform {
				t.groups[gi].leaves[li].selected = selected
			}
		}
	}
}

// GroupChecked reports whether every leaf under the game is selected.
func (t *Tree) GroupChecked(game domain.Game) bool {
	for _, g := range t.groups {
		if g.game != game {
			continue
		}
		for _, l := range g.leaves {
			if !l.selected {
				return false
			}
		}
		return true
	}
	return false
}

// AllChecked reports whether every leaf in the tree is selected.
func (t *Tree) AllChecked() bool {
	for _, g := range t.groups {
		for _, l := range g.leaves {
			if !l.selected {
				return false
			}
		}
	}
	return true
}

// Selection flattens the selected leaves into the value object Apply takes.
func (t *Tree) Selection(r domain.DateRange) domain.FilterSelection {
	var leaves []domain.SelectionLeaf
	for _, g := range t.groups {
		for _, l := range g.leaves {
			if l.selected {
				leaves = append(leaves, domain.SelectionLeaf{Game: g.game, Platform: l.platform})
			}
		}
	}
	return domain.FilterSelection{Leaves: leaves, Range: r}
}
