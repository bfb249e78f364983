package bulkimport

import (
	"errors"

	"scentlog/internal/catalog"
)

// Step identifies a stage of the import workflow.
type Step string

const (
	StepInput  Step = "input"
	StepReview Step = "review"
	StepSaving Step = "saving"
)

// ErrNoCatalog indicates parsing was requested without any owned fragrances
// to match against.
var ErrNoCatalog = errors.New("no owned fragrances to match against; add some with 'scentlog catalog add' first")

// EntryError records why one entry failed to save.
type EntryError struct {
	EntryID string
	Message string
}

// SaveProgress tracks a batch save. Completed+Failed never exceeds Total and
// reaches it exactly when every entry has been attempted.
type SaveProgress struct {
	Total     int
	Completed int
	Failed    int
	Errors    []EntryError
}

// Done reports whether every submitted entry has been attempted.
func (p SaveProgress) Done() bool {
	return p.Completed+p.Failed == p.Total
}

// Session is the root state container for one import workflow: the current
// step, the raw input text, the parsed entries under review, and save
// progress. It is owned by a single workflow instance and is not safe for
// concurrent use.
type Session struct {
	parser   *Parser
	step     Step
	rawText  string
	entries  []ParsedEntry
	progress SaveProgress
}

// NewSession creates a session in the input step.
func NewSession(parser *Parser) *Session {
	return &Session{parser: parser, step: StepInput}
}

// Step returns the current workflow step.
func (s *Session) Step() Step {
	return s.step
}

// RawText returns the raw input text.
func (s *Session) RawText() string {
	return s.rawText
}

// SetRawText replaces the raw input text.
func (s *Session) SetRawText(text string) {
	s.rawText = text
}

// Parse runs the batch parser over the current raw text against the supplied
// catalog and moves to the review step. Any previously parsed entries are
// replaced wholesale. An empty catalog is a blocking condition: resolution
// would silently fail for every line.
func (s *Session) Parse(entries []catalog.Entry) error {
	if len(entries) == 0 {
		return ErrNoCatalog
	}
	s.entries = s.parser.Parse(s.rawText, entries)
	s.step = StepReview
	return nil
}

// Matcher exposes the session parser's matcher for re-resolving edited names.
func (s *Session) Matcher() *catalog.Matcher {
	return s.parser.Matcher()
}

// Entries returns a copy of the parsed entries in source order.
func (s *Session) Entries() []ParsedEntry {
	out := make([]ParsedEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Entry returns the entry with the given id.
func (s *Session) Entry(id string) (ParsedEntry, bool) {
	for _, entry := range s.entries {
		if entry.ID == id {
			return entry, true
		}
	}
	return ParsedEntry{}, false
}

// UpdateEntry applies field edits to the entry with the given id. An unknown
// id is a no-op. Edits are validated before any of them is applied, so a
// failed update leaves the entry untouched.
func (s *Session) UpdateEntry(id string, edits ...FieldEdit) error {
	for i := range s.entries {
		if s.entries[i].ID != id {
			continue
		}
		updated := s.entries[i]
		for _, edit := range edits {
			if err := edit.apply(&updated); err != nil {
				return err
			}
		}
		s.entries[i] = updated
		return nil
	}
	return nil
}

// DeleteEntry removes the entry with the given id; unknown ids are a no-op.
func (s *Session) DeleteEntry(id string) {
	for i := range s.entries {
		if s.entries[i].ID == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return
		}
	}
}

// GoToStep transitions to the given step unconditionally. Which transitions
// are meaningful is the caller's concern; the container does not forbid any.
func (s *Session) GoToStep(step Step) {
	s.step = step
}

// Reset returns the session to its initial state: input step, empty text,
// no entries, zeroed progress.
func (s *Session) Reset() {
	s.step = StepInput
	s.rawText = ""
	s.entries = nil
	s.progress = SaveProgress{}
}

// UpdateProgress replaces the save progress snapshot.
func (s *Session) UpdateProgress(progress SaveProgress) {
	s.progress = progress
}

// Progress returns the current save progress.
func (s *Session) Progress() SaveProgress {
	return s.progress
}

// ValidEntries returns the committable subset of entries, preserving order.
func (s *Session) ValidEntries() []ParsedEntry {
	var valid []ParsedEntry
	for _, entry := range s.entries {
		if entry.IsValid() {
			valid = append(valid, entry)
		}
	}
	return valid
}
