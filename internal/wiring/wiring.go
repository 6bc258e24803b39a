// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/BauhouseConsortium/nirmanaflow/internal/adapters/graphfile"
	_ "github.com/BauhouseConsortium/nirmanaflow/internal/adapters/imagefile"
	_ "github.com/BauhouseConsortium/nirmanaflow/internal/adapters/logger"
	_ "github.com/BauhouseConsortium/nirmanaflow/internal/adapters/svgout"
	_ "github.com/BauhouseConsortium/nirmanaflow/internal/adapters/watcher"
	// Register app nodes.
	_ "github.com/BauhouseConsortium/nirmanaflow/internal/app"
)
