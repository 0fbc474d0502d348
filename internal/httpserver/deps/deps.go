package deps

import (
	"time"

	"github.com/MrSnakeDoc/stash/internal/auth"
	"github.com/MrSnakeDoc/stash/internal/logger"
	"github.com/MrSnakeDoc/stash/internal/syncer"
)

type Deps struct {
	Logger         logger.Logger
	StartTime      time.Time
	Version        string
	Commit         string
	BuildDate      string
	GoVersion      string
	TimeNow        func() time.Time   // for testing, defaults to time.Now
	Controller     *syncer.Controller // reconciled config access
	Session        *auth.Session      // sign-in/out glue for the session endpoints
	AllowedOrigins []string           // CORS origins for the extension UI
	RemoteEnabled  bool               // false when the daemon runs local-only
}
