package forms

import "testing"

func TestSubmitBlocksEmptyRequired(t *testing.T) {
	t.Parallel()

	f := NewApplicationForm()
	if _, err := f.Input("job_title", "Engineer"); err != nil {
		t.Fatalf("Input: %v", err)
	}
	if f.Submit() {
		t.Fatal("Submit succeeded with empty company")
	}
	st, _ := f.State("company")
	if st.Feedback != FeedbackInvalid || st.Result.Message != RequiredMessage {
		t.Fatalf("company state = %+v", st)
	}

	st, err := f.Input("company", "Acme")
	if err != nil {
		t.Fatalf("Input: %v", err)
	}
	if st.Feedback != FeedbackValid {
		t.Fatalf("company feedback after fill = %q", st.Feedback)
	}
	if !f.Submit() {
		t.Fatalf("Submit failed: %+v", f.States())
	}
}

func TestInputURLFeedback(t *testing.T) {
	t.Parallel()

	f := NewApplicationForm()
	st, _ := f.Input("job_url", "not-a-url")
	if st.Feedback != FeedbackInvalid {
		t.Fatalf("not-a-url feedback = %q", st.Feedback)
	}
	st, _ = f.Input("job_url", "https://example.com")
	if st.Feedback != FeedbackValid {
		t.Fatalf("https://example.com feedback = %q", st.Feedback)
	}
	st, _ = f.Input("job_url", "")
	if st.Feedback != FeedbackNone {
		t.Fatalf("empty feedback = %q", st.Feedback)
	}
}

func TestInputUnknownField(t *testing.T) {
	t.Parallel()

	if _, err := NewApplicationForm().Input("salary", "lots"); err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestValuesAndRestore(t *testing.T) {
	t.Parallel()

	f := NewApplicationForm()
	f.Restore(map[string]string{"company": "Acme", "bogus": "x"})
	vals := f.Values()
	if vals["company"] != "Acme" || len(vals) != len(ApplicationFields) {
		t.Fatalf("Values = %v", vals)
	}
	if v, ok := vals["job_title"]; !ok || v != "" {
		t.Fatalf("unset job_title = %q, present %t", v, ok)
	}
	if _, ok := vals["bogus"]; ok {
		t.Fatal("unknown names should not be kept")
	}
	vals["company"] = "mutated"
	if f.Values()["company"] != "Acme" {
		t.Fatal("Values returned internal map")
	}
	f.Reset()
	for name, v := range f.Values() {
		if v != "" {
			t.Fatalf("Reset kept %s = %q", name, v)
		}
	}
}

func TestValidateValues(t *testing.T) {
	t.Parallel()

	results, ok := ValidateValues(ApplicationFields, map[string]string{
		"company":   "Acme",
		"job_title": "SRE",
		"job_url":   "not-a-url",
	})
	if ok {
		t.Fatal("ValidateValues ok with bad url")
	}
	if results["job_url"].Valid || !results["company"].Valid {
		t.Fatalf("results = %+v", results)
	}
}
