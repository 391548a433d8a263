/*
engine.go - Engine wiring

PURPOSE:
  The Engine bundles the three store dependencies and the logger behind
  one value the API layer can hold. All reconciliation operations
  (expand.go, sync.go, assign.go) are methods on it.

INVOCATION MODEL:
  The engine runs inside single-user interactive requests. There is no
  worker pool, no background scheduler, and no internal retry: every
  operation is a sequence of store calls issued on the caller's context,
  and retries are operator-initiated.
*/
package roster

import "github.com/sirupsen/logrus"

// Engine performs leave/roster reconciliation over the three stores.
type Engine struct {
	Leaves    LeaveStore
	Roster    RosterStore
	Personnel PersonnelStore

	log *logrus.Logger
}

// NewEngine wires an engine. A nil logger falls back to the logrus
// standard logger so best-effort cleanup failures are never dropped.
func NewEngine(leaves LeaveStore, rosterStore RosterStore, personnel PersonnelStore, log *logrus.Logger) *Engine {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Engine{
		Leaves:    leaves,
		Roster:    rosterStore,
		Personnel: personnel,
		log:       log,
	}
}
