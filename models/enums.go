package models

// Destination-schema vocabularies. Legacy values are mapped onto these by the
// migration vocabulary translator; application code never sees a legacy label.

type ApplicationStatus string

const (
	ApplicationStatusSubmitted    ApplicationStatus = "submitted"
	ApplicationStatusInReview     ApplicationStatus = "in_review"
	ApplicationStatusShortlisted  ApplicationStatus = "shortlisted"
	ApplicationStatusInterviewing ApplicationStatus = "interviewing"
	ApplicationStatusOfferSent    ApplicationStatus = "offer_sent"
	ApplicationStatusHired        ApplicationStatus = "hired"
	ApplicationStatusRejected     ApplicationStatus = "rejected"
	ApplicationStatusWithdrawn    ApplicationStatus = "withdrawn"
)

type JobStatus string

const (
	JobStatusDraft  JobStatus = "draft"
	JobStatusOpen   JobStatus = "open"
	JobStatusPaused JobStatus = "paused"
	JobStatusClosed JobStatus = "closed"
)

type WorkType string

const (
	WorkTypeFullTime   WorkType = "full_time"
	WorkTypePartTime   WorkType = "part_time"
	WorkTypeContract   WorkType = "contract"
	WorkTypeInternship WorkType = "internship"
	WorkTypeFreelance  WorkType = "freelance"
)

type WorkSetup string

const (
	WorkSetupOnsite WorkSetup = "onsite"
	WorkSetupRemote WorkSetup = "remote"
	WorkSetupHybrid WorkSetup = "hybrid"
)

type Availability string

const (
	AvailabilityActivelyLooking Availability = "actively_looking"
	AvailabilityOpenToOffers    Availability = "open_to_offers"
	AvailabilityNotLooking      Availability = "not_looking"
)

type MatchStatus string

const (
	MatchStatusSuggested MatchStatus = "suggested"
	MatchStatusViewed    MatchStatus = "viewed"
	MatchStatusContacted MatchStatus = "contacted"
	MatchStatusDismissed MatchStatus = "dismissed"
)

type ResumeKind string

const (
	ResumeKindExtracted ResumeKind = "extracted"
	ResumeKindGenerated ResumeKind = "generated"
	ResumeKindSaved     ResumeKind = "saved"
)

type AssessmentKind string

const (
	AssessmentKindDisc   AssessmentKind = "disc"
	AssessmentKindTyping AssessmentKind = "typing"
)
