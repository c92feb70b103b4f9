package ui

import "github.com/yildizm/bookrec/internal/store"

// Block is one element of the content area
type Block int

const (
	BlockSkeleton Block = iota
	BlockCreator
	BlockPopular
	BlockTarget
	BlockModifiedHistory
	BlockRecommendations
)

func (b Block) String() string {
	switch b {
	case BlockSkeleton:
		return "skeleton"
	case BlockCreator:
		return "creator"
	case BlockPopular:
		return "popular"
	case BlockTarget:
		return "target"
	case BlockModifiedHistory:
		return "modified-history"
	case BlockRecommendations:
		return "recommendations"
	default:
		return "unknown"
	}
}

// skeletonCount is how many placeholders show while loading
const skeletonCount = 3

// Snapshot is the input of the content render policy
type Snapshot struct {
	Mode            store.ContentMode
	Loading         bool
	HistoryModified bool
}

// ContentBlocks decides what the content area shows. Loading wins over the
// mode; an unknown mode shows nothing.
func ContentBlocks(s Snapshot) []Block {
	if s.Loading {
		blocks := make([]Block, skeletonCount)
		for i := range blocks {
			blocks[i] = BlockSkeleton
		}
		return blocks
	}
	switch s.Mode {
	case store.ModePopular:
		return []Block{BlockCreator, BlockPopular}
	case store.ModeRecommendations:
		if s.HistoryModified {
			return []Block{BlockModifiedHistory, BlockRecommendations}
		}
		return []Block{BlockTarget, BlockRecommendations}
	default:
		return nil
	}
}
