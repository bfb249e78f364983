// Package bulkimport converts a loosely formatted, mixed-language usage
// journal into validated fragrance log entries.
//
// The pipeline has three parts. The Parser folds pasted text line by line,
// treating weekday headers ("Lunes 29") as a date cursor for the entry lines
// that follow and turning every other non-blank line into a ParsedEntry with
// extracted time-of-day, weather, enjoyment, and notes, resolving the
// remaining name against the owned-fragrance catalog. The Session holds the
// three-step workflow (input, review, saving) and applies per-field edits to
// parsed entries. The Executor commits valid entries one at a time through an
// external create-log operation, tracking per-entry failures without ever
// aborting the batch.
//
// Lines the parser cannot make sense of become invalid entries surfaced for
// manual correction; parsing itself never fails.
package bulkimport
