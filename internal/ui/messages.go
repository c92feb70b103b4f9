package ui

import (
	"github.com/yildizm/bookrec/internal/route"
	"github.com/yildizm/bookrec/internal/ui/components"
)

// Messages the container reacts to. Children emit them; the container never
// hands a setter down.
type (
	LocationChangedMsg = route.LocationChangedMsg
	UserSelectedMsg    = components.UserSelectedMsg
	ModelChangedMsg    = components.ModelChangedMsg
	HistoryModifiedMsg = components.HistoryModifiedMsg
	CreateRequestedMsg = components.CreateRequestedMsg
)

// CatalogReloadedMsg tells the container the dataset changed on disk
type CatalogReloadedMsg struct{}
