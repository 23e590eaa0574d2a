// Package profile re-weights the assessment categories for different
// audiences. Every profile is renormalised so its weights sum to 1.0.
package profile

import (
	"strings"

	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/model"
)

type Name string

const (
	Standard   Name = "standard"
	Security   Name = "security"
	Delivery   Name = "delivery"
	Compliance Name = "compliance"
)

// Names lists the accepted profile names.
func Names() []Name {
	return []Name{Standard, Security, Delivery, Compliance}
}

func Normalize(s string) Name {
	v := strings.ToLower(strings.TrimSpace(s))
	switch v {
	case "security":
		return Security
	case "delivery":
		return Delivery
	case "compliance":
		return Compliance
	default:
		return Standard
	}
}

// Multipliers scales the base category weights. Missing categories keep 1.0.
func Multipliers(p Name) map[model.Category]float64 {
	switch p {
	case Security:
		return map[model.Category]float64{
			model.CategoryIdentityAccess:    1.50,
			model.CategorySecretsMgmt:       1.50,
			model.CategoryDependencies:      1.30,
			model.CategorySAST:              1.30,
			model.CategoryDAST:              1.30,
			model.CategoryContainerSecurity: 1.20,
			model.CategoryCollaboration:     0.70,
			model.CategoryMigration:         0.70,
		}
	case Delivery:
		return map[model.Category]float64{
			model.CategoryCICD:             1.60,
			model.CategorySDLCProcess:      1.40,
			model.CategoryCodeQuality:      1.30,
			model.CategoryMonitoring:       1.20,
			model.CategoryDisasterRecovery: 1.10,
			model.CategoryCompliance:       0.70,
		}
	case Compliance:
		return map[model.Category]float64{
			model.CategoryCompliance:       1.80,
			model.CategoryIdentityAccess:   1.30,
			model.CategoryRepoGovernance:   1.30,
			model.CategoryDisasterRecovery: 1.20,
			model.CategoryCollaboration:    0.80,
		}
	default:
		return map[model.Category]float64{}
	}
}

// Weights returns the category weights for p, summing to 1.0 over the 16
// weighted categories. Standard is the unmodified base table.
func Weights(p Name) map[model.Category]float64 {
	base := model.DomainWeights()
	mult := Multipliers(p)
	if len(mult) == 0 {
		return base
	}

	// fixed order keeps the normalised weights bit-identical across calls
	total := 0.0
	for _, c := range model.Categories() {
		w := base[c]
		if m, ok := mult[c]; ok {
			w *= m
		}
		base[c] = w
		total += w
	}
	for c, w := range base {
		base[c] = w / total
	}
	return base
}
