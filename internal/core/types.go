package core

import "projectdash/pkg/domain"

type (
	Rule               = domain.Rule
	RulesEngine        = domain.RulesEngine
	Result             = domain.Result
	Violation          = domain.Violation
	Issue              = domain.Issue
	Section            = domain.Section
	Report             = domain.Report
	Tables             = domain.Tables
	Policy             = domain.Policy
	Project            = domain.Project
	ProjectStore       = domain.ProjectStore
	TableLocation      = domain.TableLocation
	TestStrategyRecord = domain.TestStrategyRecord
	TestFacilityRecord = domain.TestFacilityRecord
)

const (
	SectionTestStrategy = domain.SectionTestStrategy
	SectionRequirements = domain.SectionRequirements
	SectionTestResults  = domain.SectionTestResults
)
