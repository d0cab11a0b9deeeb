package migration

import (
	"strings"

	"bitbucket.org/talentforge/recruit_backend/models"
)

// The vocabulary translator maps legacy enumeration labels onto the new
// schema's vocabularies. It is pure and total: every category has a
// documented default, so an unmapped legacy value can never fail a row.
// Lookup is case- and separator-insensitive because the legacy data mixes
// conventions ("FULLTIME", "Full-Time", "full time").

type VocabCategory string

const (
	VocabApplicationStatus VocabCategory = "application_status"
	VocabJobStatus         VocabCategory = "job_status"
	VocabWorkType          VocabCategory = "work_type"
	VocabWorkSetup         VocabCategory = "work_setup"
	VocabAvailability      VocabCategory = "availability"
	VocabMatchStatus       VocabCategory = "match_status"
)

type vocabTable struct {
	mapping  map[string]string
	fallback string
}

var vocabTables = map[VocabCategory]vocabTable{
	VocabApplicationStatus: {
		mapping: map[string]string{
			"pending":      string(models.ApplicationStatusSubmitted),
			"submitted":    string(models.ApplicationStatusSubmitted),
			"applied":      string(models.ApplicationStatusSubmitted),
			"inreview":     string(models.ApplicationStatusInReview),
			"screening":    string(models.ApplicationStatusInReview),
			"shortlisted":  string(models.ApplicationStatusShortlisted),
			"interview":    string(models.ApplicationStatusInterviewing),
			"interviewing": string(models.ApplicationStatusInterviewing),
			"offered":      string(models.ApplicationStatusOfferSent),
			"offer":        string(models.ApplicationStatusOfferSent),
			"hired":        string(models.ApplicationStatusHired),
			"placed":       string(models.ApplicationStatusHired),
			"rejected":     string(models.ApplicationStatusRejected),
			"declined":     string(models.ApplicationStatusRejected),
			"withdrawn":    string(models.ApplicationStatusWithdrawn),
		},
		fallback: string(models.ApplicationStatusSubmitted),
	},
	VocabJobStatus: {
		mapping: map[string]string{
			"draft":     string(models.JobStatusDraft),
			"active":    string(models.JobStatusOpen),
			"open":      string(models.JobStatusOpen),
			"published": string(models.JobStatusOpen),
			"paused":    string(models.JobStatusPaused),
			"onhold":    string(models.JobStatusPaused),
			"closed":    string(models.JobStatusClosed),
			"filled":    string(models.JobStatusClosed),
			"expired":   string(models.JobStatusClosed),
		},
		fallback: string(models.JobStatusOpen),
	},
	VocabWorkType: {
		mapping: map[string]string{
			"fulltime":     string(models.WorkTypeFullTime),
			"parttime":     string(models.WorkTypePartTime),
			"contract":     string(models.WorkTypeContract),
			"contractual":  string(models.WorkTypeContract),
			"projectbased": string(models.WorkTypeContract),
			"internship":   string(models.WorkTypeInternship),
			"intern":       string(models.WorkTypeInternship),
			"ojt":          string(models.WorkTypeInternship),
			"freelance":    string(models.WorkTypeFreelance),
			"gig":          string(models.WorkTypeFreelance),
		},
		fallback: string(models.WorkTypeFullTime),
	},
	VocabWorkSetup: {
		mapping: map[string]string{
			"onsite":       string(models.WorkSetupOnsite),
			"office":       string(models.WorkSetupOnsite),
			"remote":       string(models.WorkSetupRemote),
			"wfh":          string(models.WorkSetupRemote),
			"workfromhome": string(models.WorkSetupRemote),
			"hybrid":       string(models.WorkSetupHybrid),
		},
		fallback: string(models.WorkSetupOnsite),
	},
	VocabAvailability: {
		mapping: map[string]string{
			"activelylooking": string(models.AvailabilityActivelyLooking),
			"active":          string(models.AvailabilityActivelyLooking),
			"opentooffers":    string(models.AvailabilityOpenToOffers),
			"open":            string(models.AvailabilityOpenToOffers),
			"passive":         string(models.AvailabilityOpenToOffers),
			"notlooking":      string(models.AvailabilityNotLooking),
			"unavailable":     string(models.AvailabilityNotLooking),
			"hired":           string(models.AvailabilityNotLooking),
		},
		fallback: string(models.AvailabilityOpenToOffers),
	},
	VocabMatchStatus: {
		mapping: map[string]string{
			"suggested":  string(models.MatchStatusSuggested),
			"new":        string(models.MatchStatusSuggested),
			"viewed":     string(models.MatchStatusViewed),
			"seen":       string(models.MatchStatusViewed),
			"contacted":  string(models.MatchStatusContacted),
			"reachedout": string(models.MatchStatusContacted),
			"dismissed":  string(models.MatchStatusDismissed),
			"hidden":     string(models.MatchStatusDismissed),
		},
		fallback: string(models.MatchStatusSuggested),
	},
}

// normalizeVocabInput strips everything but letters and digits and lowers
// the rest, so "Full-Time", "FULL_TIME" and "full time" all hit one key.
func normalizeVocabInput(v string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(v)) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Translate maps a legacy value in the given category onto the destination
// vocabulary. Unknown categories return the input unchanged; unknown values
// return the category default. It never fails.
func Translate(category VocabCategory, sourceValue string) string {
	table, ok := vocabTables[category]
	if !ok {
		return sourceValue
	}
	if dest, ok := table.mapping[normalizeVocabInput(sourceValue)]; ok {
		return dest
	}
	return table.fallback
}

func TranslateApplicationStatus(v string) models.ApplicationStatus {
	return models.ApplicationStatus(Translate(VocabApplicationStatus, v))
}

func TranslateJobStatus(v string) models.JobStatus {
	return models.JobStatus(Translate(VocabJobStatus, v))
}

func TranslateWorkType(v string) models.WorkType {
	return models.WorkType(Translate(VocabWorkType, v))
}

func TranslateWorkSetup(v string) models.WorkSetup {
	return models.WorkSetup(Translate(VocabWorkSetup, v))
}

func TranslateAvailability(v string) models.Availability {
	return models.Availability(Translate(VocabAvailability, v))
}

func TranslateMatchStatus(v string) models.MatchStatus {
	return models.MatchStatus(Translate(VocabMatchStatus, v))
}
