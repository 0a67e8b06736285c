package monsoon

import "testing"

func TestOnsetDelayDays(t *testing.T) {
	tests := []struct {
		name   string
		onset  string
		normal string
		want   int
	}{
		{"late onset", "2019-06-08", "2019-06-01", 7},
		{"on time", "2019-06-01", "2019-06-01", 0},
		{"early onset", "2019-05-28", "2019-06-01", -4},
		{"unparsable onset", "soon", "2019-06-01", 0},
		{"unparsable normal", "2019-06-08", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Metrics{OnsetDate: tt.onset, NormalOnsetDate: tt.normal}
			if got := m.OnsetDelayDays(); got != tt.want {
				t.Errorf("OnsetDelayDays() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRegionRainfall(t *testing.T) {
	m := &Metrics{
		AllIndiaRainfallMM: 880,
		Regional: []RegionalRainfall{
			{Region: "Northwest India", RainfallMM: 615},
			{Region: "South Peninsula", RainfallMM: 722},
		},
	}

	if got := m.RegionRainfall("All India"); got != 880 {
		t.Errorf("Expected all-India total 880, got %v", got)
	}
	if got := m.RegionRainfall("South Peninsula"); got != 722 {
		t.Errorf("Expected 722, got %v", got)
	}
	if got := m.RegionRainfall("Atlantis"); got != 0 {
		t.Errorf("Expected 0 for unknown region, got %v", got)
	}
}

func TestAlertIDsAreDeterministic(t *testing.T) {
	if deficitAlertID(2019) != "alert_monsoon_deficit_2019" {
		t.Errorf("Unexpected deficit alert ID: %s", deficitAlertID(2019))
	}
	if onsetDelayAlertID(2019) != "alert_onset_delay_2019" {
		t.Errorf("Unexpected onset delay alert ID: %s", onsetDelayAlertID(2019))
	}
}
