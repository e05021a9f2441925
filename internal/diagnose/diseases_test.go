package diagnose

import "testing"

func TestLookupKnownLabel(t *testing.T) {
	d := Lookup("Tomato___Early_blight")
	if d.Name != "Early Blight" {
		t.Fatalf("name: got %q", d.Name)
	}
	if d.Severity != "Moderate" {
		t.Fatalf("severity: got %q", d.Severity)
	}
	if len(d.Treatment) == 0 {
		t.Fatal("treatment steps missing")
	}
}

func TestLookupHealthyLabel(t *testing.T) {
	d := Lookup("Apple___healthy")
	if d.Severity != "Healthy" {
		t.Fatalf("severity: got %q", d.Severity)
	}
}

func TestLookupUnknownLabelFallsBack(t *testing.T) {
	d := Lookup("Mango___Mystery_spots")
	if d.Name != "Unknown Condition" || d.Severity != "Unknown" {
		t.Fatalf("fallback entry: %+v", d)
	}
	if len(d.Treatment) == 0 {
		t.Fatal("fallback must still give guidance")
	}
}

func TestSplitLabel(t *testing.T) {
	plant, condition := SplitLabel("Corn___Common_rust")
	if plant != "Corn" || condition != "Common_rust" {
		t.Fatalf("split: got %q, %q", plant, condition)
	}

	plant, condition = SplitLabel("no-separator")
	if plant != "" || condition != "no-separator" {
		t.Fatalf("split without separator: got %q, %q", plant, condition)
	}
}
