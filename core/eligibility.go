package core

import "slices"

// IsEligible reports whether the customer satisfies every constraint
// present in the profile. Absent constraints (zero-valued fields, nil
// slices) are always satisfied. Pure function, no side effects.
func IsEligible(customer Customer, eligibility EligibilityProfile) bool {
	// Income range check
	if eligibility.IncomeMin > 0 && customer.Income < eligibility.IncomeMin {
		return false
	}
	if eligibility.IncomeMax > 0 && customer.Income > eligibility.IncomeMax {
		return false
	}

	// Age range check
	if eligibility.AgeMin > 0 && customer.Age < eligibility.AgeMin {
		return false
	}
	if eligibility.AgeMax > 0 && customer.Age > eligibility.AgeMax {
		return false
	}

	// Credit score check
	if eligibility.CreditScoreMin > 0 && customer.CreditScore < eligibility.CreditScoreMin {
		return false
	}
	if eligibility.CreditScoreMax > 0 && customer.CreditScore > eligibility.CreditScoreMax {
		return false
	}

	// Region check
	if eligibility.Regions != nil && !slices.Contains(eligibility.Regions, customer.Location) {
		return false
	}

	// Nationality check
	if eligibility.Nationalities != nil && !slices.Contains(eligibility.Nationalities, customer.Nationality) {
		return false
	}

	// Debt burden ratio check
	if eligibility.DebtBurdenRatioMax > 0 && customer.DebtBurdenRatio > eligibility.DebtBurdenRatioMax {
		return false
	}

	// Cobrand partner check only applies when the customer carries one
	if eligibility.CobrandPartners != nil && customer.CobrandPartner != "" &&
		!slices.Contains(eligibility.CobrandPartners, customer.CobrandPartner) {
		return false
	}

	return true
}
