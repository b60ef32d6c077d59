package model

// LeadSubmission is a contact-form submission as forwarded to the lead webhook.
type LeadSubmission struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Notes string `json:"notes"`
	Attribution
	Path      any `json:"path,omitempty"`
	UserAgent any `json:"userAgent,omitempty"`
}

// NewLeadSubmission sanitizes a decoded request body. Required fields that are
// missing or not strings become "", and every required field is truncated to
// its limit. Optional fields are passed through unchanged when truthy and
// dropped otherwise.
func NewLeadSubmission(body map[string]any) LeadSubmission {
	return LeadSubmission{
		Name:        truncate(stringField(body, "name"), MaxNameLength),
		Email:       truncate(stringField(body, "email"), MaxEmailLength),
		Phone:       truncate(stringField(body, "phone"), MaxPhoneLength),
		Notes:       truncate(stringField(body, "notes"), MaxNotesLength),
		Attribution: attributionFrom(body),
		Path:        optionalValue(body, "path"),
		UserAgent:   optionalValue(body, "userAgent"),
	}
}
