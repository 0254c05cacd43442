// Package session holds the mutable state of one composition: preedit,
// ghost hint, candidate and suggestion lists, paging and mode.
//
// A session consumes actions of the state machine and produces snapshots for
// the rendering host plus commit requests for the text-insertion host.
// Sessions are not safe for concurrent use.
package session

import (
	"github.com/npillmayer/strokes"
	"github.com/npillmayer/strokes/keys"
	"github.com/npillmayer/strokes/machine"
)

// PageSize is the number of list items addressable by the digits 1 to 9.
const PageSize = 9

// Snapshot is what the rendering host displays.
type Snapshot struct {
	Preedit    string
	Ghost      string
	Page       []string // visible slice of the active list
	Total      int      // length of the active list
	PageIndex  int
	Selection  int
	Mode       machine.Mode
	Enabled    bool
	Suggesting bool // Page shows suggestions rather than candidates
}

// CommitRequest asks the host to insert Text at the caret.
type CommitRequest struct {
	Text string
}

// KeyResult is the outcome of HandleKey. Keys not consumed should be
// forwarded by the host.
type KeyResult struct {
	Consumed bool
	Snapshot Snapshot
	Commit   *CommitRequest
}

// Session is one composition context.
type Session struct {
	dict        *strokes.Dictionary
	sugg        *strokes.Suggestions
	classifier  *keys.Classifier
	tracer      strokes.Tracer
	enabled     bool
	mode        machine.Mode
	preedit     strokes.Code
	ghost       string
	candidates  []string
	suggestions []string
	page        int
	selection   int
}

// Option configures a session.
type Option func(*Session)

// WithSuggestions sets the table consulted after a commit.
func WithSuggestions(sugg *strokes.Suggestions) Option {
	return func(s *Session) { s.sugg = sugg }
}

// WithClassifier sets the key classifier used by HandleKey.
func WithClassifier(c *keys.Classifier) Option {
	return func(s *Session) { s.classifier = c }
}

// WithTracer sets the tracer.
func WithTracer(t strokes.Tracer) Option {
	return func(s *Session) { s.tracer = strokes.TracerOrNop(t) }
}

// WithEnabled sets whether the session starts enabled. Default is true.
func WithEnabled(enabled bool) Option {
	return func(s *Session) { s.enabled = enabled }
}

// New creates a session on dict. A nil dictionary behaves like an empty one.
func New(dict *strokes.Dictionary, opts ...Option) *Session {
	s := &Session{
		dict:    dict,
		tracer:  strokes.NoTrace,
		enabled: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.dict == nil {
		s.dict = strokes.NewDictionary(nil)
	}
	if s.sugg == nil {
		s.sugg = strokes.NewSuggestions()
	}
	if s.classifier == nil {
		s.classifier = keys.NewClassifier(keys.NumpadKeymap(), strokes.DefaultPunctuation())
	}
	s.Reset()
	return s
}

// Mode returns the current mode.
func (s *Session) Mode() machine.Mode { return s.mode }

// Enabled reports whether the input method is on.
func (s *Session) Enabled() bool { return s.enabled }

// Reset drops all transient state. The mode becomes Typing if the session
// is enabled, Disabled otherwise. Hosts call it on focus loss.
func (s *Session) Reset() {
	s.clear()
	if s.enabled {
		s.mode = machine.Typing
	} else {
		s.mode = machine.Disabled
	}
}

// HandleKey runs k through classifier, state machine and action. While the
// session is disabled only the toggle key is looked at.
func (s *Session) HandleKey(k keys.Key) KeyResult {
	if !s.enabled && !s.classifier.IsToggle(k) {
		return KeyResult{Snapshot: s.Snapshot()}
	}
	cl := s.classifier.Classify(k)
	step := machine.Next(s.mode, cl)
	s.tracer.Debugf("session: key %#x (%s) in %s: %s", k.Code, cl, s.mode, step)
	if step.Transition {
		s.mode = step.Next
	}
	_, passThrough := step.Action.(machine.PassThrough)
	commit, handBack := s.perform(step.Action)
	return KeyResult{
		Consumed: !passThrough && !handBack,
		Snapshot: s.Snapshot(),
		Commit:   commit,
	}
}

// HandleAction performs a in the current mode.
func (s *Session) HandleAction(a machine.Action) (Snapshot, *CommitRequest) {
	s.tracer.Debugf("session: %s in %s", a, s.mode)
	commit, _ := s.perform(a)
	return s.Snapshot(), commit
}

// perform applies a. handBack is set if the key should reach the host even
// though the action was taken.
func (s *Session) perform(a machine.Action) (commit *CommitRequest, handBack bool) {
	switch a := a.(type) {
	case machine.AddStroke:
		if s.mode == machine.Typing {
			s.ghost = ""
			s.preedit = s.preedit.Push(a.Symbol)
			s.page, s.selection = 0, 0
			s.requery()
		}
	case machine.DeleteStroke:
		if len(s.preedit) > 0 {
			s.preedit = s.preedit.Pop()
			s.page, s.selection = 0, 0
		} else {
			s.ghost = ""
			s.suggestions = nil
			handBack = true
		}
		s.requery()
	case machine.ClearComposition:
		s.clear()
	case machine.ToggleEnabled:
		s.enabled = !s.enabled
		if !s.enabled {
			s.clear()
			s.mode = machine.Disabled
		} else if s.mode == machine.Disabled {
			s.mode = machine.Typing
		}
	case machine.SelectCandidate:
		commit = s.selectCandidate(a.Index)
	case machine.NextPage:
		if (s.page+1)*PageSize < len(s.active()) {
			s.page++
			s.clampSelection()
		}
	case machine.PreviousPage:
		if s.page > 0 {
			s.page--
			s.clampSelection()
		}
	case machine.SubstituteCharacter:
		commit = &CommitRequest{Text: a.Text}
		s.clear()
	}
	return commit, handBack
}

func (s *Session) selectCandidate(i int) *CommitRequest {
	list := s.active()
	idx := s.page*PageSize + i
	if i < 0 || i >= PageSize || idx >= len(list) {
		return nil
	}
	chosen := list[idx]
	last := strokes.LastCharacter(chosen)
	s.ghost = s.dict.PickAnyCodeFor(last)
	s.preedit = nil
	s.candidates = nil
	s.page, s.selection = 0, 0
	s.suggestions = s.sugg.Lookup(last)
	s.tracer.Debugf("session: commit %s, ghost %q, %d suggestions", chosen, s.ghost, len(s.suggestions))
	return &CommitRequest{Text: chosen}
}

// requery refreshes candidates from the preedit. An empty preedit keeps the
// suggestions of the last commit.
func (s *Session) requery() {
	if len(s.preedit) == 0 {
		s.candidates = nil
	} else {
		s.candidates = s.dict.LookupPattern(s.preedit.String())
		s.suggestions = nil
	}
	if s.page*PageSize >= len(s.active()) {
		s.page, s.selection = 0, 0
	}
	s.clampSelection()
}

func (s *Session) clear() {
	s.preedit = nil
	s.ghost = ""
	s.candidates = nil
	s.suggestions = nil
	s.page, s.selection = 0, 0
}

// active returns candidates if there are any, else suggestions.
func (s *Session) active() []string {
	if len(s.candidates) > 0 {
		return s.candidates
	}
	return s.suggestions
}

func (s *Session) pageLen() int {
	n := len(s.active()) - s.page*PageSize
	return max(0, min(PageSize, n))
}

func (s *Session) clampSelection() {
	if n := s.pageLen(); s.selection >= n {
		s.selection = max(0, n-1)
	}
}

// Snapshot returns the current display state.
func (s *Session) Snapshot() Snapshot {
	list := s.active()
	start := s.page * PageSize
	end := start + s.pageLen()
	page := make([]string, end-start)
	copy(page, list[start:end])
	return Snapshot{
		Preedit:    s.preedit.String(),
		Ghost:      s.ghost,
		Page:       page,
		Total:      len(list),
		PageIndex:  s.page,
		Selection:  s.selection,
		Mode:       s.mode,
		Enabled:    s.enabled,
		Suggesting: len(s.candidates) == 0 && len(s.suggestions) > 0,
	}
}
