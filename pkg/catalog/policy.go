package catalog

// PolicyContext maps a mechanism to its governance and funding-program
// landscape.
type PolicyContext struct {
	Ministries                []string `json:"relevant_ministries"`
	ExistingPrograms          []string `json:"existing_programs"`
	PoliticalFeasibilityScore float64  `json:"political_feasibility_score"`
	AlignmentNotes            string   `json:"alignment_notes"`
}

// PolicyFor returns the governance context for a mechanism. Values outside
// the closed enumeration fall back to a generic advisory record.
func PolicyFor(m Mechanism) PolicyContext {
	switch m {
	case CloudSeeding:
		return PolicyContext{
			Ministries: []string{
				"Ministry of Earth Sciences (MOES)",
				"Ministry of Agriculture",
				"State Governments (Maharashtra/Karnataka)",
			},
			ExistingPrograms: []string{
				"Monsoon Mission Phase II (₹650 Cr)",
				"National Water Mission",
			},
			PoliticalFeasibilityScore: 0.72,
			AlignmentNotes:            "Maharashtra and Karnataka state governments have actively funded seeding ops (Varshadhare). Strong alignment with drought relief.",
		}
	case PredictionEnhancement:
		return PolicyContext{
			Ministries: []string{
				"Ministry of Earth Sciences (MOES)",
				"IMD",
			},
			ExistingPrograms: []string{
				"National Monsoon Mission",
				"High Performance Computing (HPC) upgrade",
			},
			PoliticalFeasibilityScore: 0.95,
			AlignmentNotes:            "Core mandate of IMD. High unconditional support for forecast improvement.",
		}
	case AgriculturalAdaptation:
		return PolicyContext{
			Ministries: []string{
				"Ministry of Agriculture & Farmers Welfare",
				"ICAR",
			},
			ExistingPrograms: []string{
				"Pradhan Mantri Fasal Bima Yojana (PMFBY)",
				"Paramparagat Krishi Vikas Yojana",
			},
			PoliticalFeasibilityScore: 0.85,
			AlignmentNotes:            "Aligns with the goal of doubling farmers' income.",
		}
	case UrbanHeatMitigation:
		return PolicyContext{
			Ministries: []string{
				"Ministry of Housing and Urban Affairs (MoHUA)",
				"NDMA",
			},
			ExistingPrograms: []string{
				"Smart Cities Mission",
				"India Cooling Action Plan (ICAP)",
			},
			PoliticalFeasibilityScore: 0.65,
			AlignmentNotes:            "Growing priority due to recent heat waves, but implementation is fragmented across municipalities.",
		}
	default:
		return PolicyContext{
			Ministries:                []string{"NITI Aayog"},
			ExistingPrograms:          []string{"Unknown"},
			PoliticalFeasibilityScore: 0.5,
			AlignmentNotes:            "Requires further policy analysis.",
		}
	}
}
