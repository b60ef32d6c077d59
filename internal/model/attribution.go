package model

// Field limits applied to lead submissions, in characters.
const (
	MaxNameLength  = 120
	MaxEmailLength = 160
	MaxPhoneLength = 60
	MaxNotesLength = 500
)

// Attribution holds the UTM campaign tags captured from the landing URL.
// Tags are usually strings but are forwarded with whatever JSON type the
// page sent; a nil tag is omitted.
type Attribution struct {
	UTMSource   any `json:"utm_source,omitempty"`
	UTMMedium   any `json:"utm_medium,omitempty"`
	UTMCampaign any `json:"utm_campaign,omitempty"`
}

func attributionFrom(body map[string]any) Attribution {
	return Attribution{
		UTMSource:   optionalValue(body, "utm_source"),
		UTMMedium:   optionalValue(body, "utm_medium"),
		UTMCampaign: optionalValue(body, "utm_campaign"),
	}
}

// stringField returns body[key] when it is a string, "" otherwise.
func stringField(body map[string]any, key string) string {
	s, _ := body[key].(string)
	return s
}

// optionalValue returns body[key] unchanged when it is truthy and nil
// otherwise, so that omitempty drops it from the encoded payload.
// Falsy values are null, false, 0 and "".
func optionalValue(body map[string]any, key string) any {
	v := body[key]
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		if t == "" {
			return nil
		}
	case bool:
		if !t {
			return nil
		}
	case float64:
		if t == 0 {
			return nil
		}
	}
	return v
}

// truncate cuts s to at most limit characters without splitting a rune.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	n := 0
	for i := range s {
		if n == limit {
			return s[:i]
		}
		n++
	}
	return s
}
