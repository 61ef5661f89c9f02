package forms

// ApplicationFormID identifies the new-application form.
const ApplicationFormID = "new-application"

// ApplicationFormAction is the page the new-application form posts to.
const ApplicationFormAction = "/applications/new/index.html"

// ApplicationFields is the field set of the new-application form.
var ApplicationFields = []FieldSpec{
	{Name: "company", Label: "Company", Type: TypeText, Required: true, MaxLength: 100},
	{Name: "job_title", Label: "Job Title", Type: TypeText, Required: true, MinLength: 2, MaxLength: 120},
	{Name: "location", Label: "Location", Type: TypeText, MaxLength: 100},
	{Name: "job_url", Label: "Job Posting URL", Type: TypeURL},
	{Name: "contact_email", Label: "Recruiter Email", Type: TypeEmail},
	{Name: "notes", Label: "Notes", Type: TypeTextarea, MaxLength: 500},
	{Name: "resume", Label: "Resume", Type: TypeFile},
}

var catalog = map[string][]FieldSpec{
	ApplicationFormID: ApplicationFields,
}

// Lookup returns the field specs of a known form id.
func Lookup(formID string) ([]FieldSpec, bool) {
	specs, ok := catalog[formID]
	return specs, ok
}

// NewApplicationForm returns an empty new-application form.
func NewApplicationForm() *Form {
	return NewForm(ApplicationFormID, ApplicationFields)
}
