package funnel

import "fairflow/internal/dataset"

// Stage names of the canonical Fair Fares funnel.
const (
	StageAwareness       = "awareness"
	StageApplication     = "application"
	StageAcceptance      = "acceptance"
	StageFinancialImpact = "financial_impact"
)

// FairFares returns the canonical definition for the CUNY MetroCard survey:
// awareness feeds application, application feeds acceptance, and accepted
// respondents are asked about financial impact. Column names match the
// survey questions, with the positional indices of the known export (header
// skip 8, questions at columns 28 through 31) kept as the fallback.
func FairFares() Definition {
	return Definition{
		Name:     "fair-fares",
		SkipRows: 8,
		Stages: []Stage{
			{
				Name:       StageAwareness,
				Column:     dataset.ColumnRef{Name: "Are you aware of the Fair Fares NYC program?", Index: 28},
				Categories: []string{"Yes", "No"},
				Continue:   "Yes",
			},
			{
				Name:       StageApplication,
				Column:     dataset.ColumnRef{Name: "Have you applied for the Fair Fares NYC program?", Index: 29},
				Categories: []string{"Yes", "No"},
				Continue:   "Yes",
			},
			{
				Name:       StageAcceptance,
				Column:     dataset.ColumnRef{Name: "Was your Fair Fares application accepted?", Index: 30},
				Categories: []string{"Accepted", "Rejected", "Pending"},
				Continue:   "Accepted",
			},
			{
				Name:       StageFinancialImpact,
				Column:     dataset.ColumnRef{Name: "Has Fair Fares reduced your financial burden?", Index: 31},
				Categories: []string{"Yes", "No"},
			},
		},
	}
}
