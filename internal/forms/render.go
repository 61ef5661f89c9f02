package forms

import (
	"strconv"

	"github.com/tinytelemetry/applytrack/internal/view"
)

// Draft actions bound to the form's buttons.
const (
	ActionSaveDraft  = "saveDraft"
	ActionLoadDraft  = "loadDraft"
	ActionClearDraft = "clearDraft"
)

// Render builds the HTML form for f. The saved indicator is visible when
// savedVisible is set.
func Render(f *Form, action string, savedVisible bool) *view.Node {
	form := view.El("form", view.A(
		"id", f.ID(),
		"class", "needs-validation",
		"method", "post",
		"action", action,
		"novalidate", "",
		"data-autosave", "true",
	))
	for _, st := range f.States() {
		form.Append(renderField(st))
	}

	indicator := view.El("span", view.A("class", "autosave-indicator", "aria-live", "polite"), view.Text("Saved"))
	indicator.ToggleClass("visible", savedVisible)

	form.Append(view.El("div", view.A("class", "form-actions"),
		view.El("button", view.A("type", "submit", "class", "btn btn-primary"), view.Text("Save Application")),
		draftButton(ActionSaveDraft, "Save Draft"),
		draftButton(ActionLoadDraft, "Load Draft"),
		draftButton(ActionClearDraft, "Clear Draft"),
		indicator,
	))
	return form
}

func draftButton(action, label string) *view.Node {
	return view.El("button", view.A("type", "button", "class", "btn btn-secondary", "data-action", action), view.Text(label))
}

func renderField(st FieldState) *view.Node {
	id := "field-" + st.Name
	group := view.El("div", view.A("class", "form-group", "data-field", st.Name))

	label := view.El("label", view.A("for", id), view.Text(st.Label))
	if st.Required {
		label.Append(view.El("span", view.A("class", "required", "aria-hidden", "true"), view.Text(" *")))
	}
	group.Append(label)

	var input *view.Node
	switch st.Type {
	case TypeTextarea:
		input = view.El("textarea", view.A("id", id, "name", st.Name, "class", "form-control"), view.Text(st.Value))
	case TypeFile:
		input = view.El("input", view.A("id", id, "name", st.Name, "type", "file", "class", "form-control"))
		group.Append(input, view.El("span", view.A("class", "file-label"), view.Text(FileLabel(st.Value))))
		input = nil
	default:
		input = view.El("input", view.A("id", id, "name", st.Name, "type", string(st.Type), "class", "form-control", "value", st.Value))
	}
	if input != nil {
		if st.Required {
			input.Set("required", "")
		}
		if st.MaxLength > 0 {
			input.Set("maxlength", strconv.Itoa(st.MaxLength))
		}
		if st.Feedback != FeedbackNone {
			input.AddClass(string(st.Feedback))
		}
		group.Append(input)
	}

	if st.Feedback == FeedbackInvalid {
		group.Append(view.El("div", view.A("class", "invalid-feedback"), view.Text(st.Result.Message)))
	}
	if st.MaxLength > 0 {
		c := NewCounter(st.Value, st.MaxLength)
		group.Append(view.El("small", view.A("class", "char-counter "+string(c.Level)),
			view.Text(strconv.Itoa(c.Remaining)+" characters remaining")))
	}
	return group
}
