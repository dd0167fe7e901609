package orchestrator

import (
	"context"

	"github.com/felixgeelhaar/statekit"

	"github.com/agentforge/agentforge/internal/ports"
)

// Narration states. statekit never owns control flow here — the loop
// in run.go decides what happens next; these transitions exist purely
// so the logger (and, through it, the CLI) can narrate which phase of
// one iteration is in flight, the same separation of concerns the
// background agent's reconciliation narration keeps between statekit
// and its actual reconcile logic.
const (
	stateIdle           = "idle"
	stateGenerating     = "generating"
	stateValidating     = "validating"
	stateDetectingPM    = "detecting_pm"
	stateCheckingRegistry = "checking_registry"
	stateAwaitingConsent = "awaiting_consent"
	stateInstalling     = "installing"
	stateDone           = "done"
	stateFailed         = "failed"
)

const (
	eventBegin   = "BEGIN"
	eventAdvance = "ADVANCE"
	eventFinish  = "FINISH"
	eventFail    = "FAIL"
)

// narrator wraps a statekit interpreter whose sole job is emitting a
// structured log line on every transition.
type narrator struct {
	interp *statekit.Interpreter[struct{}]
	logger ports.Logger
	runID  string
}

func newNarrator(logger ports.Logger, runID string) *narrator {
	machine, err := statekit.NewMachine[struct{}]("install-and-repair").
		WithInitial(stateIdle).
		WithContext(struct{}{}).
		State(stateIdle).On(eventBegin).Target(stateGenerating).Done().
		State(stateGenerating).On(eventAdvance).Target(stateValidating).On(eventFail).Target(stateFailed).Done().
		State(stateValidating).On(eventAdvance).Target(stateDetectingPM).On(eventFinish).Target(stateDone).Done().
		State(stateDetectingPM).On(eventAdvance).Target(stateCheckingRegistry).On(eventFail).Target(stateFailed).Done().
		State(stateCheckingRegistry).On(eventAdvance).Target(stateAwaitingConsent).Done().
		State(stateAwaitingConsent).On(eventAdvance).Target(stateInstalling).On(eventFinish).Target(stateGenerating).Done().
		State(stateInstalling).On(eventAdvance).Target(stateGenerating).On(eventFinish).Target(stateDone).On(eventFail).Target(stateFailed).Done().
		State(stateDone).Done().
		State(stateFailed).Done().
		Build()
	if err != nil {
		// The machine is a fixed literal; a build failure here is a
		// programming error, not a runtime condition to recover from.
		panic(err)
	}

	n := &narrator{interp: statekit.NewInterpreter(machine), logger: logger, runID: runID}
	n.interp.Start()
	return n
}

func (n *narrator) transition(event string) {
	n.interp.Send(statekit.Event{Type: statekit.EventType(event)})
	n.logger.Debug(context.Background(), "orchestrator state transition", ports.F("run_id", n.runID), ports.F("state", n.interp.State().Value))
}
