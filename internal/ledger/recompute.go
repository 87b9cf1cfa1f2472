package ledger

import "github.com/ndewijer/Trade-Journal-Backend/internal/model"

// Params are the user-controlled inputs of a recompute.
type Params struct {
	StartingCapital  float64
	ProjectionAmount float64
	Month            string
}

// Recompute derives every dashboard view from one event snapshot.
// It is the single entry point callers invoke whenever the events or params change.
func Recompute(events []model.LedgerEvent, params Params) model.Dashboard {
	return model.Dashboard{
		Stats:      Summarize(events, params.StartingCapital),
		History:    History(events, params.StartingCapital),
		Calendar:   Calendar(events, params.Month),
		Projection: Project(events, params.ProjectionAmount),
	}
}
