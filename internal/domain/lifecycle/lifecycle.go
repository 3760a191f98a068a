// Package lifecycle holds limits shared by startup and shutdown hooks.
package lifecycle

import "time"

// DefaultTimeout bounds every OnStart/OnStop hook.
const DefaultTimeout = 15 * time.Second
