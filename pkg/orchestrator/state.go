package orchestrator

// State 编排器所处阶段
type State int

const (
	Idle State = iota
	LoopStarting
	PluginsRunning
	Completed
	Failed
	StopScheduled
	Stopped
)

var stateNames = map[State]string{
	Idle:           "idle",
	LoopStarting:   "loop-starting",
	PluginsRunning: "plugins-running",
	Completed:      "completed",
	Failed:         "failed",
	StopScheduled:  "stop-scheduled",
	Stopped:        "stopped",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}
