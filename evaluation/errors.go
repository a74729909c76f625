package evaluation

import "errors"

// Input validation
var (
	ErrNameRequired = errors.New("please enter your name")
	ErrInvalidEmail = errors.New("please enter a valid email")
)

// Data availability
var (
	ErrRosterUnavailable = errors.New("project data not found, please try again later")
	ErrSponsorNotFound   = errors.New("no projects found for that email")
	ErrNoIdentity        = errors.New("identity has not been submitted")
	ErrUnknownProject    = errors.New("project not found for this sponsor")
)

// Project state
var (
	ErrProjectCompleted = errors.New("this project is already completed")
	ErrNoProjectLoaded  = errors.New("no project is loaded")
	ErrNoStudents       = errors.New("no students to submit")
)

// Submission
var (
	ErrSubmissionInFlight = errors.New("a submission is already in progress")
	ErrSubmissionFailed   = errors.New("submission failed")
)
