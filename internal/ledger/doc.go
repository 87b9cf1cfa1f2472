// Package ledger is the aggregation engine behind every dashboard view.
//
// All functions are pure: they take the full list of ledger events (as listed by the
// store, ascending by date and then insertion) and recompute their result from
// scratch. They never return errors. Zero denominators produce zero ratios.
//
// Every view resolves a date through ResolveDay, so the calendar, history, win rate,
// aggregate statistics and projection always agree on a date's P/L.
package ledger
