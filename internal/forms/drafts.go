package forms

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/tinytelemetry/applytrack/internal/model"
)

// DraftKeyPrefix prefixes every draft storage key.
const DraftKeyPrefix = "form_autosave_"

// DraftKey returns the storage key of formID's draft.
func DraftKey(formID string) string {
	return DraftKeyPrefix + formID
}

// draftPayload is the JSON value stored under a draft key.
type draftPayload struct {
	Values  map[string]string `json:"values"`
	SavedAt time.Time         `json:"saved_at"`
}

// Drafts saves and restores form values through a DraftStore.
type Drafts struct {
	store model.DraftStore
	now   func() time.Time
}

// NewDrafts wraps store.
func NewDrafts(store model.DraftStore) *Drafts {
	return &Drafts{store: store, now: time.Now}
}

// Save stores values as formID's draft.
func (d *Drafts) Save(formID string, values map[string]string) (model.Draft, error) {
	if values == nil {
		values = map[string]string{}
	}
	draft := model.Draft{Key: DraftKey(formID), Values: values, UpdatedAt: d.now().UTC()}
	data, err := json.Marshal(draftPayload{Values: values, SavedAt: draft.UpdatedAt})
	if err != nil {
		return model.Draft{}, fmt.Errorf("forms: encode draft %s: %w", formID, err)
	}
	if err := d.store.SaveDraft(draft.Key, string(data)); err != nil {
		return model.Draft{}, fmt.Errorf("forms: save draft %s: %w", formID, err)
	}
	return draft, nil
}

// Load returns formID's draft; ok is false when none was saved.
func (d *Drafts) Load(formID string) (draft model.Draft, ok bool, err error) {
	key := DraftKey(formID)
	raw, ok, err := d.store.LoadDraft(key)
	if err != nil {
		return model.Draft{}, false, fmt.Errorf("forms: load draft %s: %w", formID, err)
	}
	if !ok {
		return model.Draft{}, false, nil
	}
	draft, err = DecodeDraft(key, raw)
	if err != nil {
		return model.Draft{}, false, err
	}
	return draft, true, nil
}

// Clear removes formID's draft.
func (d *Drafts) Clear(formID string) error {
	if err := d.store.ClearDraft(DraftKey(formID)); err != nil {
		return fmt.Errorf("forms: clear draft %s: %w", formID, err)
	}
	return nil
}

// DecodeDraft parses a stored draft value. Bare value maps are accepted too.
func DecodeDraft(key, raw string) (model.Draft, error) {
	var p draftPayload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return model.Draft{}, fmt.Errorf("forms: decode draft %s: %w", key, err)
	}
	if p.Values == nil && p.SavedAt.IsZero() {
		var bare map[string]string
		if err := json.Unmarshal([]byte(raw), &bare); err == nil {
			p.Values = bare
		}
	}
	return model.Draft{Key: key, Values: p.Values, UpdatedAt: p.SavedAt}, nil
}
