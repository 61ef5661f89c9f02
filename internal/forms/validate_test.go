package forms

import "testing"

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		field Field
		want  Result
	}{
		{"required empty", Field{FieldSpec: FieldSpec{Required: true}, Value: "  "}, Result{Message: RequiredMessage}},
		{"optional empty", Field{FieldSpec: FieldSpec{Type: TypeEmail, MinLength: 5}}, Result{Valid: true}},
		{"email ok", Field{FieldSpec: FieldSpec{Type: TypeEmail}, Value: "ann@example.com"}, Result{Valid: true}},
		{"email no tld", Field{FieldSpec: FieldSpec{Type: TypeEmail}, Value: "ann@example"}, Result{Message: "Please enter a valid email address"}},
		{"url invalid", Field{FieldSpec: FieldSpec{Type: TypeURL}, Value: "not-a-url"}, Result{Message: "Please enter a valid URL"}},
		{"url valid", Field{FieldSpec: FieldSpec{Type: TypeURL}, Value: "https://example.com"}, Result{Valid: true}},
		{"url trimmed", Field{FieldSpec: FieldSpec{Type: TypeURL}, Value: " https://example.com/jobs?id=7 "}, Result{Valid: true}},
		{"email with plus", Field{FieldSpec: FieldSpec{Type: TypeEmail}, Value: "ann+jobs@mail.example.org"}, Result{Valid: true}},
		{"email two ats", Field{FieldSpec: FieldSpec{Type: TypeEmail}, Value: "ann@@example.com"}, Result{Message: "Please enter a valid email address"}},
		{"min length runes", Field{FieldSpec: FieldSpec{MinLength: 3}, Value: "äö"}, Result{Message: "Must be at least 3 characters"}},
		{"min length", Field{FieldSpec: FieldSpec{MinLength: 3}, Value: "ab"}, Result{Message: "Must be at least 3 characters"}},
		{"max length", Field{FieldSpec: FieldSpec{MaxLength: 3}, Value: "abcd"}, Result{Message: "Must be no more than 3 characters"}},
		{"max length runes", Field{FieldSpec: FieldSpec{MaxLength: 3}, Value: "äöü"}, Result{Valid: true}},
		{"format before length", Field{FieldSpec: FieldSpec{Type: TypeURL, MinLength: 50}, Value: "nope"}, Result{Message: "Please enter a valid URL"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Validate(tt.field); got != tt.want {
				t.Errorf("Validate = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCounterLevels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		length int
		want   CounterLevel
	}{
		{0, CounterNormal},
		{50, CounterNormal},
		{51, CounterWarning},
		{90, CounterWarning},
		{91, CounterDanger},
		{120, CounterDanger},
	}
	for _, tt := range tests {
		value := make([]rune, tt.length)
		for i := range value {
			value[i] = 'x'
		}
		c := NewCounter(string(value), 100)
		if c.Level != tt.want || c.Remaining != 100-tt.length {
			t.Errorf("len %d: %+v, want level %s", tt.length, c, tt.want)
		}
	}
}

func TestFileLabel(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"":                        FilePlaceholder,
		"/home/ann/resume.pdf":    "resume.pdf",
		`C:\fakepath\cv-2025.pdf`: "cv-2025.pdf",
	}
	for in, want := range tests {
		if got := FileLabel(in); got != want {
			t.Errorf("FileLabel(%q) = %q, want %q", in, got, want)
		}
	}
}
