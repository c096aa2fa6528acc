package deps

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/napierala85-collab/kalendarz-soboty/internal/auth"
	"github.com/napierala85-collab/kalendarz-soboty/internal/board"
	"github.com/napierala85-collab/kalendarz-soboty/internal/logger"
)

type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string
	TimeNow   func() time.Time // injectable clock; every window check uses this

	Ledger   *board.Ledger  // the board's sole writer
	Sessions *auth.Sessions // session token issue/verify

	SitePassword      string // "" => /login answers 500
	AdminPassword     string // "" => nobody is admin, /admin answers 500
	JWTSecretInsecure bool   // signing secret still the shipped default
	DevMode           bool   // allows the insecure secret for local work

	RedisClient   *redis.Client // for the healthz ping only
	InternalCIDRS []string      // IPs allowed on /healthz and /metrics
	TrustProxy    bool          // resolve client IPs from proxy headers
}
