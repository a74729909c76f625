// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package evaluation

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/danielhkuo/sponsor-eval/draft"
	"github.com/danielhkuo/sponsor-eval/models"
	"github.com/danielhkuo/sponsor-eval/roster"
	"github.com/danielhkuo/sponsor-eval/session"
)

type fakeSender struct {
	mu       sync.Mutex
	payloads []models.SubmissionPayload
	err      error
	// when set, Post blocks until release is closed
	entered chan struct{}
	release chan struct{}
}

func (f *fakeSender) Post(ctx context.Context, p models.SubmissionPayload) error {
	if f.release != nil {
		f.entered <- struct{}{}
		<-f.release
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payloads = append(f.payloads, p)
	return f.err
}

func (f *fakeSender) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.payloads)
}

type failingSource struct{}

func (failingSource) Fetch(ctx context.Context) ([]roster.Row, error) {
	return nil, errors.New("connection refused")
}

func testRows() roster.StaticSource {
	return roster.StaticSource{
		roster.RowFromPairs("Project Name", "Alpha", "Student Name", "Ann", "Sponsor Email", "pat@corp.com"),
		roster.RowFromPairs("Project Name", "Alpha", "Student Name", "Ben", "Sponsor Email", "pat@corp.com"),
		roster.RowFromPairs("Project Name", "Beta", "Student Name", "Cal", "Sponsor Email", "pat@corp.com"),
	}
}

func newTestSession(t *testing.T, src roster.Source, sender Sender) (*Session, session.Cache) {
	t.Helper()
	cache := session.NewMemoryCache()
	s := NewSession(roster.NewLoader(src), sender, session.NewAdapter(cache, "test"))
	s.now = func() time.Time { return time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC) }
	return s, cache
}

func identify(t *testing.T, s *Session) {
	t.Helper()
	if _, err := s.SubmitIdentity(context.Background(), "Pat", "pat@corp.com"); err != nil {
		t.Fatalf("SubmitIdentity: %v", err)
	}
}

func TestSubmitIdentity_Validation(t *testing.T) {
	tests := []struct {
		name    string
		inName  string
		inEmail string
		wantErr error
	}{
		{"empty name", "  ", "pat@corp.com", ErrNameRequired},
		{"bad email", "Pat", "pat@corp", ErrInvalidEmail},
		{"email with space", "Pat", "pat @corp.com", ErrInvalidEmail},
		{"unknown sponsor", "Pat", "nobody@corp.com", ErrSponsorNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestSession(t, testRows(), &fakeSender{})
			_, err := s.SubmitIdentity(context.Background(), tt.inName, tt.inEmail)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
			if s.State().Stage != models.StageIdentity {
				t.Errorf("expected to stay on identity stage, got %s", s.State().Stage)
			}
		})
	}
}

func TestSubmitIdentity_NormalizesAndLists(t *testing.T) {
	s, _ := newTestSession(t, testRows(), &fakeSender{})

	projects, err := s.SubmitIdentity(context.Background(), "  Pat  ", " PAT@Corp.com ")
	if err != nil {
		t.Fatalf("SubmitIdentity: %v", err)
	}

	want := []models.ProjectSummary{
		{Name: "Alpha", StudentCount: 2},
		{Name: "Beta", StudentCount: 1},
	}
	if diff := cmp.Diff(want, projects); diff != "" {
		t.Errorf("projects mismatch (-want +got):\n%s", diff)
	}

	st := s.State()
	if st.Name != "Pat" || st.Email != "pat@corp.com" || st.Stage != models.StageProjects {
		t.Errorf("unexpected state %+v", st)
	}
}

func TestSubmitIdentity_RosterUnavailable(t *testing.T) {
	s, _ := newTestSession(t, failingSource{}, &fakeSender{})

	_, err := s.SubmitIdentity(context.Background(), "Pat", "pat@corp.com")
	if !errors.Is(err, ErrRosterUnavailable) {
		t.Fatalf("expected ErrRosterUnavailable, got %v", err)
	}
	if err.Error() != ErrRosterUnavailable.Error() {
		t.Errorf("expected the fixed message only, got %q", err.Error())
	}
	// identity is still kept
	if s.State().Email != "pat@corp.com" {
		t.Error("expected identity to be stored")
	}
}

func TestSelectProject(t *testing.T) {
	s, _ := newTestSession(t, testRows(), &fakeSender{})

	if _, err := s.SelectProject("Alpha"); !errors.Is(err, ErrNoIdentity) {
		t.Errorf("expected ErrNoIdentity before identity, got %v", err)
	}

	identify(t, s)

	view, err := s.SelectProject("Alpha")
	if err != nil {
		t.Fatalf("SelectProject: %v", err)
	}
	if diff := cmp.Diff([]string{"Ann", "Ben"}, view.Students); diff != "" {
		t.Errorf("students mismatch (-want +got):\n%s", diff)
	}
	if len(view.Rubric) != 5 || view.TeamRowLabel != models.TeamRowLabel {
		t.Errorf("unexpected view %+v", view)
	}
	if s.State().CurrentProject != "Alpha" {
		t.Errorf("expected Alpha to be current")
	}

	if _, err := s.SelectProject("Gamma"); !errors.Is(err, ErrUnknownProject) {
		t.Errorf("expected ErrUnknownProject, got %v", err)
	}
}

func TestCommit_MergesIntoDraft(t *testing.T) {
	ctx := context.Background()
	s, cache := newTestSession(t, testRows(), &fakeSender{})

	if _, err := s.Commit(ctx, draft.Snapshot{}); !errors.Is(err, ErrNoProjectLoaded) {
		t.Errorf("expected ErrNoProjectLoaded, got %v", err)
	}

	identify(t, s)
	s.SelectProject("Alpha")

	if _, err := s.Commit(ctx, draft.Snapshot{Ratings: map[int]map[int]int{0: {0: 6}}}); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	merged, err := s.Commit(ctx, draft.Snapshot{Ratings: map[int]map[int]int{0: {1: 3}}})
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}

	ann := merged.Students[0]
	if ann[0] == nil || *ann[0] != 6 || ann[1] == nil || *ann[1] != 3 {
		t.Errorf("expected both scores kept, got %v %v", ann[0], ann[1])
	}

	// persisted
	rec, ok := session.NewAdapter(cache, "test").Load(ctx)
	if !ok || !rec.StagedRatings.Has("Alpha") {
		t.Error("expected Alpha draft in the cache")
	}

	// revisiting hydrates the stored draft
	view, _ := s.SelectProject("Alpha")
	if got := view.Draft.Students[0][1]; got == nil || *got != 3 {
		t.Errorf("expected hydrated score 3, got %v", got)
	}
}

func TestCommit_InvalidSnapshot(t *testing.T) {
	s, _ := newTestSession(t, testRows(), &fakeSender{})
	identify(t, s)
	s.SelectProject("Beta")

	_, err := s.Commit(context.Background(), draft.Snapshot{Ratings: map[int]map[int]int{3: {0: 5}}})
	if !errors.Is(err, draft.ErrInvalidSnapshot) {
		t.Errorf("expected ErrInvalidSnapshot, got %v", err)
	}
}

func TestSubmit_Success(t *testing.T) {
	ctx := context.Background()
	sender := &fakeSender{}
	s, _ := newTestSession(t, testRows(), sender)
	identify(t, s)
	s.SelectProject("Alpha")
	s.Commit(ctx, draft.Snapshot{Ratings: map[int]map[int]int{0: {0: 7}}, TeamRatings: map[int]int{0: 5}})

	res, err := s.Submit(ctx, nil)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if res.Project != "Alpha" || res.AllComplete || res.Stage != models.StageProjects {
		t.Errorf("unexpected result %+v", res)
	}

	if sender.count() != 1 {
		t.Fatalf("expected one post, got %d", sender.count())
	}
	p := sender.payloads[0]
	if p.Project != "Alpha" || p.SponsorEmail != "pat@corp.com" || len(p.Responses) != 3 {
		t.Errorf("unexpected payload %+v", p)
	}
	if p.Timestamp != "2025-03-14T12:00:00.000Z" {
		t.Errorf("unexpected timestamp %s", p.Timestamp)
	}

	st := s.State()
	if st.CurrentProject != "" {
		t.Error("expected current project cleared")
	}
	if diff := cmp.Diff([]string{"Alpha"}, st.CompletedProjects); diff != "" {
		t.Errorf("completed mismatch (-want +got):\n%s", diff)
	}

	// completed projects sort last and cannot be reopened
	projects, _ := s.Projects()
	if projects[0].Name != "Beta" || !projects[1].Completed {
		t.Errorf("expected Beta first and Alpha completed, got %+v", projects)
	}
	if _, err := s.SelectProject("Alpha"); !errors.Is(err, ErrProjectCompleted) {
		t.Errorf("expected ErrProjectCompleted, got %v", err)
	}
}

func TestSubmit_AllComplete(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestSession(t, testRows(), &fakeSender{})
	identify(t, s)

	for i, project := range []string{"Alpha", "Beta"} {
		s.SelectProject(project)
		res, err := s.Submit(ctx, &draft.Snapshot{})
		if err != nil {
			t.Fatalf("Submit %s: %v", project, err)
		}
		wantAll := i == 1
		if res.AllComplete != wantAll {
			t.Errorf("%s: AllComplete = %v, want %v", project, res.AllComplete, wantAll)
		}
	}

	if s.State().Stage != models.StageThankYou {
		t.Errorf("expected thank-you stage, got %s", s.State().Stage)
	}
}

func TestSubmit_FailureKeepsDraft(t *testing.T) {
	ctx := context.Background()
	sender := &fakeSender{err: errors.New("server error 500: boom")}
	s, _ := newTestSession(t, testRows(), sender)
	identify(t, s)
	s.SelectProject("Alpha")
	s.Commit(ctx, draft.Snapshot{Ratings: map[int]map[int]int{1: {4: 2}}})

	_, err := s.Submit(ctx, &draft.Snapshot{Ratings: map[int]map[int]int{1: {4: 6}}})
	if !errors.Is(err, ErrSubmissionFailed) {
		t.Fatalf("expected ErrSubmissionFailed, got %v", err)
	}

	st := s.State()
	if st.CurrentProject != "Alpha" || len(st.CompletedProjects) != 0 || st.Submitting {
		t.Errorf("unexpected state after failure %+v", st)
	}

	view, _ := s.SelectProject("Alpha")
	if got := view.Draft.Students[1][4]; got == nil || *got != 2 {
		t.Errorf("expected stored draft untouched, got %v", got)
	}

	// retry succeeds once the collector recovers
	sender.err = nil
	if _, err := s.Submit(ctx, nil); err != nil {
		t.Errorf("retry failed: %v", err)
	}
}

func TestSubmit_InFlight(t *testing.T) {
	ctx := context.Background()
	sender := &fakeSender{entered: make(chan struct{}), release: make(chan struct{})}
	s, _ := newTestSession(t, testRows(), sender)
	identify(t, s)
	s.SelectProject("Alpha")

	done := make(chan error, 1)
	go func() {
		_, err := s.Submit(ctx, nil)
		done <- err
	}()

	<-sender.entered
	if !s.State().Submitting {
		t.Error("expected submitting flag while posting")
	}
	if _, err := s.Submit(ctx, nil); !errors.Is(err, ErrSubmissionInFlight) {
		t.Errorf("expected ErrSubmissionInFlight, got %v", err)
	}

	close(sender.release)
	if err := <-done; err != nil {
		t.Fatalf("first submit failed: %v", err)
	}
	if sender.count() != 1 {
		t.Errorf("expected exactly one post, got %d", sender.count())
	}
}

func TestSubmit_StartOverWhileInFlight(t *testing.T) {
	ctx := context.Background()
	sender := &fakeSender{entered: make(chan struct{}), release: make(chan struct{})}
	s, cache := newTestSession(t, testRows(), sender)
	identify(t, s)
	s.SelectProject("Alpha")

	done := make(chan error, 1)
	go func() {
		_, err := s.Submit(ctx, nil)
		done <- err
	}()

	<-sender.entered
	s.StartOver(ctx)
	close(sender.release)
	if err := <-done; err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	st := s.State()
	if len(st.CompletedProjects) != 0 || st.Email != "" || st.Stage != models.StageIdentity || st.Submitting {
		t.Errorf("expected a clean session after start over, got %+v", st)
	}
	if _, ok := session.NewAdapter(cache, "test").Load(ctx); ok {
		t.Error("expected no cache record after start over")
	}

	// the next sponsor can still pick the project
	identify(t, s)
	if _, err := s.SelectProject("Alpha"); err != nil {
		t.Errorf("expected Alpha selectable after start over, got %v", err)
	}
}

func TestSubmit_NoProjectLoaded(t *testing.T) {
	s, _ := newTestSession(t, testRows(), &fakeSender{})
	identify(t, s)

	if _, err := s.Submit(context.Background(), nil); !errors.Is(err, ErrNoProjectLoaded) {
		t.Errorf("expected ErrNoProjectLoaded, got %v", err)
	}
}

func TestRestore(t *testing.T) {
	ctx := context.Background()
	loader := roster.NewLoader(testRows())
	if _, err := loader.Load(ctx); err != nil {
		t.Fatal(err)
	}
	cache := session.NewMemoryCache()

	first := NewSession(loader, &fakeSender{}, session.NewAdapter(cache, "abc"))
	first.SubmitIdentity(ctx, "Pat", "pat@corp.com")
	first.SelectProject("Beta")
	first.Commit(ctx, draft.Snapshot{TeamRatings: map[int]int{2: 4}})

	second := NewSession(loader, &fakeSender{}, session.NewAdapter(cache, "abc"))
	if !second.Restore(ctx) {
		t.Fatal("expected a cached record")
	}

	st := second.State()
	if st.Stage != models.StageProjects || st.Name != "Pat" {
		t.Errorf("unexpected restored state %+v", st)
	}
	view, err := second.SelectProject("Beta")
	if err != nil {
		t.Fatal(err)
	}
	if got := view.Draft.Team[2]; got == nil || *got != 4 {
		t.Errorf("expected restored team score, got %v", got)
	}

	other := NewSession(loader, &fakeSender{}, session.NewAdapter(cache, "xyz"))
	if other.Restore(ctx) {
		t.Error("expected no record under another namespace")
	}
}

func TestStartOver(t *testing.T) {
	ctx := context.Background()
	s, cache := newTestSession(t, testRows(), &fakeSender{})
	identify(t, s)
	s.SelectProject("Alpha")
	s.Submit(ctx, nil)

	s.StartOver(ctx)

	st := s.State()
	if st.Stage != models.StageIdentity || st.Email != "" || len(st.CompletedProjects) != 0 {
		t.Errorf("unexpected state after start over %+v", st)
	}
	if _, ok := session.NewAdapter(cache, "test").Load(ctx); ok {
		t.Error("expected cache record cleared")
	}
}

func TestBackToIdentity(t *testing.T) {
	s, _ := newTestSession(t, testRows(), &fakeSender{})
	identify(t, s)

	s.BackToIdentity()

	st := s.State()
	if st.Stage != models.StageIdentity || st.Email != "pat@corp.com" {
		t.Errorf("expected identity stage with identity kept, got %+v", st)
	}
}
