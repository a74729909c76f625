// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package evaluation

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/danielhkuo/sponsor-eval/draft"
	"github.com/danielhkuo/sponsor-eval/models"
	"github.com/danielhkuo/sponsor-eval/roster"
	"github.com/danielhkuo/sponsor-eval/rubric"
	"github.com/danielhkuo/sponsor-eval/session"
	"github.com/danielhkuo/sponsor-eval/submission"
)

var identityEmail = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Roster provides the sponsor directory
type Roster interface {
	Directory(ctx context.Context) (*roster.Directory, error)
	Current() *roster.Directory
}

// Sender delivers a payload to the collection endpoint
type Sender interface {
	Post(ctx context.Context, payload models.SubmissionPayload) error
}

// ProjectView is what the rendering layer needs to draw a project's matrix
type ProjectView struct {
	Project      string             `json:"project"`
	Students     []string           `json:"students"`
	Rubric       []models.Criterion `json:"rubric"`
	TeamRowLabel string             `json:"team_row_label"`
	Draft        draft.ProjectDraft `json:"draft"`
	Message      string             `json:"message,omitempty"`
}

// Result describes a successful submission
type Result struct {
	Project     string
	AllComplete bool
	Stage       string
	SubmittedAt time.Time
}

type Session struct {
	roster Roster
	sender Sender
	cache  *session.Adapter
	now    func() time.Time

	mu         sync.Mutex
	identity   models.Identity
	completed  models.CompletionSet
	drafts     *draft.Store
	current    string
	stage      string
	submitting bool
	// bumped by StartOver; a submission started in an older generation
	// does not apply its side effects
	generation int
}

func NewSession(r Roster, sender Sender, cache *session.Adapter) *Session {
	return &Session{
		roster:    r,
		sender:    sender,
		cache:     cache,
		now:       time.Now,
		completed: models.CompletionSet{},
		drafts:    draft.NewStore(),
		stage:     models.StageIdentity,
	}
}

// Restore loads cached progress. It reports whether a record was found.
// The session resumes in the projects stage when the roster knows the email.
func (s *Session) Restore(ctx context.Context) bool {
	rec, ok := s.cache.Load(ctx)
	if !ok {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.identity = rec.Identity()
	s.completed = rec.CompletedProjects
	s.drafts = rec.StagedRatings
	if _, found := s.roster.Current().Lookup(s.identity.Email); found {
		s.stage = models.StageProjects
	}

	slog.Info("session restored", "email", s.identity.Email, "completed", len(s.completed), "drafts", s.drafts.Len())
	return true
}

// State returns a read-only view of the session
func (s *Session) State() models.SessionStateResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	completed := make([]string, 0, len(s.completed))
	for p, done := range s.completed {
		if done {
			completed = append(completed, p)
		}
	}
	sort.Strings(completed)

	return models.SessionStateResponse{
		Stage:             s.stage,
		Name:              s.identity.Name,
		Email:             s.identity.Email,
		CurrentProject:    s.current,
		CompletedProjects: completed,
		Submitting:        s.submitting,
	}
}

// SubmitIdentity validates and stores the sponsor identity, then looks the
// sponsor up, fetching the roster first if none is loaded.
func (s *Session) SubmitIdentity(ctx context.Context, name, email string) ([]models.ProjectSummary, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if name == "" {
		return nil, ErrNameRequired
	}
	if !identityEmail.MatchString(email) {
		return nil, ErrInvalidEmail
	}

	s.mu.Lock()
	s.identity = models.Identity{Name: name, Email: email}
	s.saveLocked(ctx)
	s.mu.Unlock()

	dir, err := s.roster.Directory(ctx)
	if err != nil {
		slog.Warn("roster unavailable at identity", "email", email, "error", err)
		return nil, ErrRosterUnavailable
	}

	entry, ok := dir.Lookup(email)
	if !ok {
		return nil, ErrSponsorNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.stage = models.StageProjects
	slog.Info("sponsor identified", "email", email, "projects", len(entry.Order))

	return s.summariesLocked(entry), nil
}

// BackToIdentity returns to the identity stage without discarding anything
func (s *Session) BackToIdentity() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stage = models.StageIdentity
}

// Projects lists the sponsor's projects, incomplete first
func (s *Session) Projects() ([]models.ProjectSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, err := s.entryLocked()
	if err != nil {
		return nil, err
	}
	return s.summariesLocked(entry), nil
}

// SelectProject makes project current and returns its students and stored draft.
func (s *Session) SelectProject(project string) (ProjectView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, err := s.entryLocked()
	if err != nil {
		return ProjectView{}, err
	}
	students, ok := entry.Projects[project]
	if !ok {
		return ProjectView{}, ErrUnknownProject
	}
	if s.completed.Has(project) {
		return ProjectView{}, ErrProjectCompleted
	}

	s.current = project

	view := ProjectView{
		Project:      project,
		Students:     append([]string{}, students...),
		Rubric:       rubric.Criteria(),
		TeamRowLabel: models.TeamRowLabel,
		Draft:        s.drafts.Project(project),
	}
	if len(students) == 0 {
		view.Message = "No students found for this project."
	}
	return view, nil
}

// Commit merges the observed snapshot of the current project into its draft
// and persists the session.
func (s *Session) Commit(ctx context.Context, snap draft.Snapshot) (draft.ProjectDraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	students, err := s.currentStudentsLocked()
	if err != nil {
		return draft.ProjectDraft{}, err
	}

	merged, err := s.drafts.Commit(s.current, students, snap)
	if err != nil {
		return draft.ProjectDraft{}, err
	}

	s.saveLocked(ctx)
	return merged, nil
}

// Submit posts the current project. snap is the observed state at submit
// time; when nil the stored draft is submitted. On failure the draft is left
// untouched so the sponsor can retry.
func (s *Session) Submit(ctx context.Context, snap *draft.Snapshot) (Result, error) {
	s.mu.Lock()
	if s.submitting {
		s.mu.Unlock()
		return Result{}, ErrSubmissionInFlight
	}

	students, err := s.currentStudentsLocked()
	if err != nil {
		s.mu.Unlock()
		return Result{}, err
	}
	if len(students) == 0 {
		s.mu.Unlock()
		return Result{}, ErrNoStudents
	}

	project := s.current
	observed := s.drafts.Project(project).Snapshot(students)
	if snap != nil {
		observed = *snap
	}

	payload, err := submission.Build(s.identity, project, students, observed, s.now())
	if err != nil {
		s.mu.Unlock()
		return Result{}, err
	}

	s.submitting = true
	generation := s.generation
	s.mu.Unlock()

	postErr := s.sender.Post(ctx, payload)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitting = false

	if postErr != nil {
		slog.Error("submission failed", "project", project, "email", s.identity.Email, "error", postErr)
		return Result{}, fmt.Errorf("%w: %w", ErrSubmissionFailed, postErr)
	}

	if s.generation != generation {
		slog.Info("submission saved after start over", "project", project)
		return Result{Project: project, Stage: s.stage, SubmittedAt: s.now()}, nil
	}

	s.completed[project] = true
	s.drafts.Reset(project)
	if s.current == project {
		s.current = ""
	}
	s.saveLocked(ctx)

	result := Result{Project: project, Stage: s.stage, SubmittedAt: s.now()}
	if entry, err := s.entryLocked(); err == nil && submission.AllComplete(entry, s.completed) {
		s.stage = models.StageThankYou
		result.AllComplete = true
		result.Stage = s.stage
	}

	slog.Info("submission saved", "project", project, "email", s.identity.Email, "all_complete", result.AllComplete)
	return result, nil
}

// StartOver drops identity, drafts, and completion marks, and clears the cache.
func (s *Session) StartOver(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	s.identity = models.Identity{}
	s.completed = models.CompletionSet{}
	s.drafts.ResetAll()
	s.current = ""
	s.stage = models.StageIdentity

	if err := s.cache.Clear(ctx); err != nil {
		slog.Warn("could not clear progress", "error", err)
	}
}

func (s *Session) entryLocked() (models.SponsorEntry, error) {
	if s.identity.Email == "" {
		return models.SponsorEntry{}, ErrNoIdentity
	}
	entry, ok := s.roster.Current().Lookup(s.identity.Email)
	if !ok {
		return models.SponsorEntry{}, ErrSponsorNotFound
	}
	return entry, nil
}

func (s *Session) currentStudentsLocked() ([]string, error) {
	if s.current == "" {
		return nil, ErrNoProjectLoaded
	}
	entry, err := s.entryLocked()
	if err != nil {
		return nil, err
	}
	students, ok := entry.Projects[s.current]
	if !ok {
		return nil, ErrUnknownProject
	}
	return students, nil
}

// summariesLocked orders projects first-seen, with completed ones moved last
func (s *Session) summariesLocked(entry models.SponsorEntry) []models.ProjectSummary {
	out := make([]models.ProjectSummary, 0, len(entry.Order))
	for _, name := range entry.Order {
		out = append(out, models.ProjectSummary{
			Name:         name,
			StudentCount: len(entry.Projects[name]),
			Completed:    s.completed.Has(name),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return !out[i].Completed && out[j].Completed
	})
	return out
}

// saveLocked persists the session; failures are logged and ignored
func (s *Session) saveLocked(ctx context.Context) {
	if err := s.cache.Save(ctx, s.identity, s.completed, s.drafts); err != nil {
		slog.Warn("could not save progress", "key", s.cache.Key(), "error", err)
	}
}
