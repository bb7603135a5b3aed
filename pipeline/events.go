package pipeline

import "github.com/credguard/verdict/observability"

// Pipeline event types emitted during a verdict run.
const (
	EventRunStart       observability.EventType = "pipeline.run.start"
	EventRunComplete    observability.EventType = "pipeline.run.complete"
	EventRunError       observability.EventType = "pipeline.run.error"
	EventStageStart     observability.EventType = "pipeline.stage.start"
	EventStageComplete  observability.EventType = "pipeline.stage.complete"
	EventStageRecovered observability.EventType = "pipeline.stage.recovered"
)
