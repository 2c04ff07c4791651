// Package session holds the per-browser state of the cleaning flow:
// Idle -> FileLoaded -> Cleaned -> Explained.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/agenthands/codecleaner/internal/lang"
	"github.com/agenthands/codecleaner/internal/model"
)

type State int

const (
	Idle State = iota
	FileLoaded
	Cleaned
	Explained
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case FileLoaded:
		return "file_loaded"
	case Cleaned:
		return "cleaned"
	case Explained:
		return "explained"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Cleaner is the part of the assistant the session drives.
type Cleaner interface {
	CleanCode(ctx context.Context, source string) (string, error)
	Explain(ctx context.Context, code, language string) (string, error)
}

// ErrNotReady is returned when an action is triggered in a state that does
// not allow it.
var ErrNotReady = errors.New("action not available in current state")

// Session is safe for concurrent use; actions on one session run one at a time.
type Session struct {
	ID string

	mu          sync.Mutex
	state       State
	file        *model.UploadedFile
	language    string
	cleaning    *model.CleaningResult
	explanation *model.ExplanationResult
	lastError   error

	// unix nanos of the last action, read without mu by the store
	touched atomic.Int64

	now func() time.Time
}

func New(id string) *Session {
	s := &Session{ID: id, now: time.Now}
	s.touch()
	return s
}

// Snapshot is a read-only copy of the session used for rendering.
type Snapshot struct {
	State        State
	File         *model.UploadedFile
	Language     string
	Cleaning     *model.CleaningResult
	Explanation  *model.ExplanationResult
	DownloadName string
	Err          error
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{
		State:       s.state,
		File:        s.file,
		Language:    s.language,
		Cleaning:    s.cleaning,
		Explanation: s.explanation,
		Err:         s.lastError,
	}
	if s.file != nil && s.state >= Cleaned {
		snap.DownloadName = lang.CleanedName(s.file.Name)
	}
	return snap
}

// Load replaces any previous file and discards earlier results. On failure
// the session returns to Idle.
func (s *Session) Load(name string, raw []byte, readErr error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	s.file = nil
	s.language = ""
	s.cleaning = nil
	s.explanation = nil

	file, err := Decode(name, raw, readErr)
	if err != nil {
		s.state = Idle
		s.lastError = err
		return err
	}

	s.file = file
	s.language = lang.Detect(name)
	s.state = FileLoaded
	s.lastError = nil
	return nil
}

// Decode validates an upload and converts it to text.
func Decode(name string, raw []byte, readErr error) (*model.UploadedFile, error) {
	if readErr != nil {
		return nil, model.NewError(model.KindRead, "error reading file", readErr)
	}
	if !lang.Allowed(name) {
		return nil, model.NewError(model.KindUnsupportedFile,
			fmt.Sprintf("unsupported file type %q", name), nil)
	}
	if !utf8.Valid(raw) {
		return nil, model.NewError(model.KindDecode,
			"unable to decode file. Please upload a UTF-8 encoded code file", nil)
	}
	return &model.UploadedFile{Name: name, RawBytes: raw, Text: string(raw)}, nil
}

// Clean runs the cleaner on the loaded file. On failure the session stays in
// FileLoaded with no cleaned output.
func (s *Session) Clean(ctx context.Context, c Cleaner) (*model.CleaningResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if s.file == nil {
		return nil, ErrNotReady
	}

	s.cleaning = nil
	s.explanation = nil
	s.state = FileLoaded

	start := s.now()
	cleaned, err := c.CleanCode(ctx, s.file.Text)
	elapsed := s.now().Sub(start).Seconds()

	if err != nil {
		s.lastError = err
		return &model.CleaningResult{ElapsedSeconds: elapsed, IsError: true, Error: err.Error()}, err
	}

	s.cleaning = &model.CleaningResult{CleanedText: cleaned, ElapsedSeconds: elapsed}
	s.state = Cleaned
	s.lastError = nil
	return s.cleaning, nil
}

// Explain asks for an explanation of the cleaned code. Errors are kept on
// the explanation result and never touch the cleaning result.
func (s *Session) Explain(ctx context.Context, c Cleaner) (*model.ExplanationResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if s.cleaning == nil || s.state < Cleaned {
		return nil, ErrNotReady
	}

	text, err := c.Explain(ctx, s.cleaning.CleanedText, s.language)
	if err != nil {
		s.explanation = &model.ExplanationResult{IsError: true, Error: err.Error()}
		s.state = Cleaned
		return s.explanation, err
	}

	s.explanation = &model.ExplanationResult{Text: text}
	s.state = Explained
	return s.explanation, nil
}

// HideExplanation drops the explanation and returns to Cleaned.
func (s *Session) HideExplanation() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	s.explanation = nil
	if s.state == Explained {
		s.state = Cleaned
	}
}

// Download returns the cleaned text and its file name.
func (s *Session) Download() (name string, content []byte, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cleaning == nil || s.file == nil {
		return "", nil, ErrNotReady
	}
	return lang.CleanedName(s.file.Name), []byte(s.cleaning.CleanedText), nil
}

func (s *Session) touch() {
	s.touched.Store(s.now().UnixNano())
}

func (s *Session) lastTouched() time.Time {
	return time.Unix(0, s.touched.Load())
}
