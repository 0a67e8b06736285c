package catalog

// Mechanism identifies one known intervention mechanism. The set is closed;
// code that branches on a Mechanism should switch exhaustively.
type Mechanism int

const (
	// CloudSeeding is aerial cloud seeding over rain-shadow regions.
	CloudSeeding Mechanism = iota

	// PredictionEnhancement is ML-augmented monsoon forecasting.
	PredictionEnhancement

	// AgriculturalAdaptation is drought-resilient crop system rollout.
	AgriculturalAdaptation

	// UrbanHeatMitigation is high-albedo cool-roof deployment.
	UrbanHeatMitigation
)

// DefaultMechanism is the deterministic fallback when classification finds
// no trigger matches or ends in a tie.
const DefaultMechanism = CloudSeeding

// All returns every mechanism in catalogue order.
func All() []Mechanism {
	return []Mechanism{
		CloudSeeding,
		PredictionEnhancement,
		AgriculturalAdaptation,
		UrbanHeatMitigation,
	}
}

// Key returns the stable string key used in API payloads and logs.
func (m Mechanism) Key() string {
	switch m {
	case CloudSeeding:
		return "monsoon_cloud_seeding"
	case PredictionEnhancement:
		return "monsoon_prediction_enhancement"
	case AgriculturalAdaptation:
		return "agricultural_adaptation_systems"
	case UrbanHeatMitigation:
		return "urban_heat_mitigation"
	default:
		return "unknown"
	}
}

// String implements fmt.Stringer.
func (m Mechanism) String() string {
	return m.Key()
}

// ResearchVector is one research direction attached to a mechanism: a short
// focus label plus the literature search query used to back it.
type ResearchVector struct {
	Focus       string `json:"focus"`
	SearchQuery string `json:"search_query"`
}

// FundingEstimate describes the economics of deploying a mechanism.
type FundingEstimate struct {
	// CostPerUnitINR is the rupee cost of one deployment unit (one season,
	// one district, one ward - the unit differs per mechanism).
	CostPerUnitINR float64 `json:"cost_per_unit_inr"`
	ROIYears       int     `json:"roi_years"`
	Benefit        string  `json:"benefit_description"`
}

// Record is the ground-truth attribute set for one mechanism.
type Record struct {
	Key                string           `json:"key"`
	Name               string           `json:"name"`
	Description        string           `json:"description"`
	CurrentCapability  string           `json:"current_capability"`
	RequiredCapability string           `json:"required_capability"`
	GapRatio           float64          `json:"gap_ratio"`
	ResearchVectors    []ResearchVector `json:"research_vectors"`
	Institutions       []string         `json:"institutions"`
	Funding            FundingEstimate  `json:"funding_estimate"`
}

// Record returns the static record for the mechanism. Records are built
// fresh on each call so callers can never mutate catalogue state.
func (m Mechanism) Record() Record {
	switch m {
	case PredictionEnhancement:
		return Record{
			Key:                m.Key(),
			Name:               "AI-Enhanced Monsoon Prediction",
			Description:        "Integrating machine learning with dynamical models (CFS v2) to improve 2-week forecast accuracy for district-level sowing decisions.",
			CurrentCapability:  "70% accuracy at 2-week lead time (IITM)",
			RequiredCapability: "85% accuracy at 2-week lead time",
			GapRatio:           1.2,
			ResearchVectors: []ResearchVector{
				{Focus: "Ocean-atmosphere coupling ML models", SearchQuery: "machine learning monsoon prediction coupled model"},
				{Focus: "High-resolution ensemble forecasting", SearchQuery: "ensemble forecasting tropical precipitation"},
				{Focus: "Data assimilation from INSAT-3D", SearchQuery: "satellite data assimilation numerical weather prediction"},
			},
			Institutions: []string{
				"IITM Pune - Monsoon Mission",
				"NCMRWF (National Centre for Medium Range Weather Forecasting)",
				"IIT Delhi - Centre for Atmospheric Sciences",
			},
			Funding: FundingEstimate{
				CostPerUnitINR: 120_000_000,
				ROIYears:       1,
				Benefit:        "Prevented sowing loss for 10M+ farmers",
			},
		}
	case AgriculturalAdaptation:
		return Record{
			Key:                m.Key(),
			Name:               "Drought-Resilient Crop Systems",
			Description:        "Deployment of heat-stress tolerant seed varieties (millets, pulses) optimised for delayed monsoon onset.",
			CurrentCapability:  "15% adoption in rain-fed Vidarbha/Marathwada",
			RequiredCapability: "70% adoption across rain-fed districts",
			GapRatio:           4.7,
			ResearchVectors: []ResearchVector{
				{Focus: "Genetic modification for water-use efficiency", SearchQuery: "drought tolerant crop genetics water use efficiency"},
				{Focus: "Precision irrigation sensors for smallholders", SearchQuery: "low cost soil moisture sensing irrigation"},
				{Focus: "Monsoon-indexed insurance derivatives", SearchQuery: "weather index insurance agriculture"},
			},
			Institutions: []string{
				"ICAR - Indian Institute of Millets Research",
				"ICRISAT - International Crops Research Institute",
				"IIT Kharagpur - Agricultural & Food Engineering",
			},
			Funding: FundingEstimate{
				CostPerUnitINR: 50_000_000,
				ROIYears:       3,
				Benefit:        "Long-term food security stabilisation",
			},
		}
	case UrbanHeatMitigation:
		return Record{
			Key:                m.Key(),
			Name:               "Urban Cool Roof Deployment",
			Description:        "High-albedo reflective coatings for slum and low-income housing in high-density metros to reduce the heat-island effect.",
			CurrentCapability:  "Coating cost ₹500/sq m, too high for mass adoption",
			RequiredCapability: "Coating cost ₹200/sq m",
			GapRatio:           2.5,
			ResearchVectors: []ResearchVector{
				{Focus: "Low-cost lime-based reflective composites", SearchQuery: "high albedo lime coating urban heat"},
				{Focus: "Passive radiative cooling materials", SearchQuery: "passive daytime radiative cooling materials"},
				{Focus: "Urban planning integration policy", SearchQuery: "cool roof policy heat island mitigation"},
			},
			Institutions: []string{
				"IIT Delhi - Dept of Energy Science",
				"TERI - The Energy and Resources Institute",
				"IIIT Hyderabad - Building Science",
			},
			Funding: FundingEstimate{
				CostPerUnitINR: 200_000_000,
				ROIYears:       5,
				Benefit:        "Reduction in heat-stroke mortality and cooling energy load",
			},
		}
	case CloudSeeding:
		fallthrough
	default:
		return Record{
			Key:                CloudSeeding.Key(),
			Name:               "Monsoon Cloud Seeding",
			Description:        "Aerial dispersion of silver iodide and hygroscopic flares into monsoon clouds to enhance precipitation in rain-shadow regions.",
			CurrentCapability:  "500 sq km coverage per operation (Karnataka 2017)",
			RequiredCapability: "2000 sq km coverage per operation",
			GapRatio:           4.0,
			ResearchVectors: []ResearchVector{
				{Focus: "AgI seeding efficiency in tropical stratocumulus", SearchQuery: "silver iodide cloud seeding tropical convection"},
				{Focus: "Drone-based delivery for precise targeting", SearchQuery: "unmanned aerial vehicle cloud seeding delivery"},
				{Focus: "Real-time monsoon trough identification", SearchQuery: "monsoon trough detection nowcasting"},
			},
			Institutions: []string{
				"IIT Bombay - Weather Modification Unit",
				"IITM Pune - Cloud Physics Division",
				"Karnataka State Natural Disaster Monitoring Centre",
			},
			Funding: FundingEstimate{
				CostPerUnitINR: 500_000_000,
				ROIYears:       2,
				Benefit:        "Agricultural yield protection for Kharif crops",
			},
		}
	}
}

// triggers returns the trigger substrings matched by the classifier.
// Triggers are lower-case; matching is case-insensitive on the input side.
func (m Mechanism) triggers() []string {
	switch m {
	case CloudSeeding:
		return []string{
			"cloud", "seeding", "silver iodide", "hygroscopic", "flare",
			"aerosol", "rain enhancement", "aircraft", "trough",
		}
	case PredictionEnhancement:
		return []string{
			"forecast", "prediction", "machine learning", "neural",
			"ensemble", "lead time", "data assimilation", "satellite", "model",
		}
	case AgriculturalAdaptation:
		return []string{
			"crop", "drought", "millet", "irrigation", "farmer", "sowing",
			"seed variet", "insurance", "heat-tolerant",
		}
	case UrbanHeatMitigation:
		return []string{
			"roof", "albedo", "reflective", "urban heat", "heat island",
			"coating", "slum", "radiative cooling", "city",
		}
	default:
		return nil
	}
}
