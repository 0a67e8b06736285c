package catalog

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Mechanism
	}{
		{
			name:  "cloud seeding triggers",
			input: "Deploy silver iodide flares from aircraft to enhance rainfall over the rain-shadow belt",
			want:  CloudSeeding,
		},
		{
			name:  "prediction triggers",
			input: "Use machine learning and ensemble forecast models with satellite data assimilation to extend lead time",
			want:  PredictionEnhancement,
		},
		{
			name:  "agricultural triggers",
			input: "Distribute drought tolerant millet seed varieties and crop insurance to smallholder farmers before sowing",
			want:  AgriculturalAdaptation,
		},
		{
			name:  "urban heat triggers",
			input: "Coat slum roofs with high albedo reflective paint to fight the urban heat island",
			want:  UrbanHeatMitigation,
		},
		{
			name:  "no matches fall back to default",
			input: "completely unrelated text about submarine cables",
			want:  DefaultMechanism,
		},
		{
			name:  "empty input falls back to default",
			input: "",
			want:  DefaultMechanism,
		},
		{
			name:  "matching is case insensitive",
			input: "SILVER IODIDE CLOUD SEEDING FROM AIRCRAFT",
			want:  CloudSeeding,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.input)
			if got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestClassifyTieResolvesToDefault(t *testing.T) {
	// One trigger from each of two mechanisms: "drought" (agricultural)
	// and "roof" (urban heat).
	got := Classify("drought on the roof")
	if got != DefaultMechanism {
		t.Errorf("Expected tie to resolve to %v, got %v", DefaultMechanism, got)
	}
}

func TestClassifyDeterministic(t *testing.T) {
	input := "forecast models with neural networks for crop sowing decisions"
	first := Classify(input)
	for i := 0; i < 50; i++ {
		if got := Classify(input); got != first {
			t.Fatalf("Classification changed between calls: %v then %v", first, got)
		}
	}
}
