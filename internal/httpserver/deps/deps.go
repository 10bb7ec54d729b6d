package deps

import (
	"time"

	"github.com/MrSnakeDoc/barback/internal/catalog"
	"github.com/MrSnakeDoc/barback/internal/logger"
	"github.com/MrSnakeDoc/barback/internal/recipes"
	redisstore "github.com/MrSnakeDoc/barback/internal/store/redis"
)

type Deps struct {
	Logger        logger.Logger
	StartTime     time.Time
	Version       string
	Commit        string
	BuildDate     string
	GoVersion     string
	TimeNow       func() time.Time        // for testing, defaults to time.Now
	AllowedHosts  []string                // Host headers allowed to reach admin endpoints
	AllowedCIDRS  []string                // IPs allowed to reach healthz/readyz/infra/reload
	TrustProxy    bool                    // true if running behind a trusted reverse proxy (e.g., cloudflared)
	Catalog       *catalog.Store          // In-memory catalog snapshot
	Recipes       *recipes.Repository     // Saved/created sets + catalog lookups
	Categories    *recipes.CategoryIndex  // Category listing
	RedisStore    *redisstore.Store       // nil when running on the CSV backing
	ReloadTrigger chan struct{}           // Channel to trigger a manual catalog refresh
	RateBurst     int                     // Inbound requests allowed in a burst, per client IP
	RatePerMinute int                     // Inbound refill rate, per client IP
}

// Now returns the current time, honouring TimeNow when set.
func (d Deps) Now() time.Time {
	if d.TimeNow != nil {
		return d.TimeNow()
	}
	return time.Now()
}
