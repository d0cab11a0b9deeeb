package models

// DestinationModels lists every destination-schema model in AutoMigrate
// order (parents before children).
func DestinationModels() []any {
	return []any{
		&Candidate{},
		&PlatformUser{},
		&CandidateProfile{},
		&Resume{},
		&Assessment{},
		&ResumeAIAnalysis{},
		&Agency{},
		&Company{},
		&AgencyCompany{},
		&Job{},
		&JobSkill{},
		&Application{},
		&JobMatch{},
	}
}
