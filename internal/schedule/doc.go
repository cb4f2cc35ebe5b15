// Package schedule generates competition episodes under the appearance rules.
//
// An episode fills a fixed number of slots with distinct (cuisine, cook, recipe)
// triples and seats a panel of distinct judges who are not cooking that episode.
// No cuisine, cook, recipe or judge may be used more than Rules.Cap times in a row:
// counters live in a Tracker and drop back to zero for every entity that sat out
// the most recent episode.
//
// Generation runs in four stages (cuisines, cooks, recipes, judges). A stage with
// no eligible candidate is a dead end; the Controller then restores the tracker to
// the snapshot taken before the attempt and regenerates the whole episode.
// Retrying is unbounded unless Options.MaxAttempts is set, so a reference
// population that is too small for the rules never terminates on its own.
package schedule
