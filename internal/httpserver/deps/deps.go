package deps

import (
	"time"

	"github.com/MrSnakeDoc/linker/internal/linkstore"
	"github.com/MrSnakeDoc/linker/internal/logger"
	"github.com/MrSnakeDoc/linker/internal/store"
)

// RateLimit configures the per IP limiter on mutating routes.
type RateLimit struct {
	Burst      int
	RefillPerM int
}

type Deps struct {
	Logger        logger.Logger
	StartTime     time.Time
	Version       string
	Commit        string
	BuildDate     string
	GoVersion     string
	Store         *linkstore.Store // the only owner of links and categories
	Backend       store.Backend    // persistence medium, probed by readyz
	AllowedHosts  []string         // Host headers allowed to access the API
	AllowedCIDRS  []string         // IPs/CIDRs allowed to access the API
	TrustProxy    bool             // true if running behind a trusted reverse proxy
	RateLimit     RateLimit        // limiter for mutating routes
	ImportTrigger chan struct{}    // manual import trigger (nil if import is disabled)
}
