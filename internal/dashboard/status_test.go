package dashboard

import "testing"

func TestCategorize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status string
		want   Category
	}{
		{"Offer Extended", CategoryOffer},
		{"offer declined", CategoryOffer},
		{"Rejected", CategoryRejected},
		{"Declined after onsite", CategoryRejected},
		{"Not Selected", CategoryRejected},
		{"No longer under consideration", CategoryRejected},
		{"Phone Screen", CategoryInterview},
		{"Technical Assessment", CategoryInterview},
		{"Onsite scheduled", CategoryInterview},
		{"Interviewing", CategoryInterview},
		{"Submitted", CategoryApplied},
		{"pending review", CategoryApplied},
		{"", CategoryApplied},
		{"ghosted", CategoryApplied},
	}
	for _, tt := range tests {
		if got := Categorize(tt.status); got != tt.want {
			t.Errorf("Categorize(%q) = %s, want %s", tt.status, got, tt.want)
		}
	}
}

func TestTabs(t *testing.T) {
	t.Parallel()

	tabs := Tabs()
	if len(tabs) != 5 || tabs[0] != TabAll {
		t.Fatalf("Tabs() = %v", tabs)
	}
	if !IsTab("interview") || IsTab("archived") {
		t.Fatal("IsTab mismatch")
	}
}
