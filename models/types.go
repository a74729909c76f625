package models

import "time"

// Session stage constants
const (
	StageIdentity = "identity"
	StageProjects = "projects"
	StageThankYou = "thankyou"
)

// TeamLabel is the student field of the team response record
const TeamLabel = "Evaluating group as a whole"

// TeamRowLabel is the display name of the team row in the rating matrix
const TeamRowLabel = "Team Overall"

// Domain types

type Criterion struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type Identity struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CompletionSet holds the projects whose submission succeeded
type CompletionSet map[string]bool

// Has reports whether project is marked complete
func (c CompletionSet) Has(project string) bool {
	return c[project]
}

// SponsorEntry lists a sponsor's projects and, per project, its unique students
// in first-seen order.
type SponsorEntry struct {
	Projects map[string][]string `json:"projects"`
	Order    []string            `json:"-"` // project names in first-seen order
}

type Comments struct {
	Public  string `json:"public"`
	Private string `json:"private"`
}

// Empty reports whether both comment fields are blank
func (c Comments) Empty() bool {
	return c.Public == "" && c.Private == ""
}

// Response is one row of a submission: a student or the team as a whole.
// criterion title -> score (null when not chosen)
type Response struct {
	Student           string          `json:"student"`
	Ratings           map[string]*int `json:"ratings"`
	CommentShared     string          `json:"commentShared"`
	CommentInstructor string          `json:"commentInstructor"`
	IsTeam            bool            `json:"isTeam"`
}

type SubmissionPayload struct {
	SponsorName  string     `json:"sponsorName"`
	SponsorEmail string     `json:"sponsorEmail"`
	Project      string     `json:"project"`
	Rubric       []string   `json:"rubric"`
	Responses    []Response `json:"responses"`
	Timestamp    string     `json:"timestamp"`
}

// Request types

type IdentityRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Response types

type CreateSessionResponse struct {
	SessionID string `json:"session_id"`
}

type RubricResponse struct {
	Criteria   []Criterion `json:"criteria"`
	MinScore   int         `json:"min_score"`
	MaxScore   int         `json:"max_score"`
	LowAnchor  string      `json:"low_anchor"`
	HighAnchor string      `json:"high_anchor"`
}

type ProjectSummary struct {
	Name         string `json:"name"`
	StudentCount int    `json:"student_count"`
	Completed    bool   `json:"completed"`
}

type ProjectsResponse struct {
	Projects []ProjectSummary `json:"projects"`
}

type SessionStateResponse struct {
	Stage             string   `json:"stage"`
	Name              string   `json:"name"`
	Email             string   `json:"email"`
	CurrentProject    string   `json:"current_project,omitempty"`
	CompletedProjects []string `json:"completed_projects"`
	Submitting        bool     `json:"submitting"`
}

type SubmitResponse struct {
	Project     string    `json:"project"`
	Message     string    `json:"message"`
	AllComplete bool      `json:"all_complete"`
	Stage       string    `json:"stage"`
	SubmittedAt time.Time `json:"submitted_at"`
}

type ReloadRosterResponse struct {
	Sponsors int       `json:"sponsors"`
	LoadedAt time.Time `json:"loaded_at"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
