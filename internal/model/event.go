package model

// UnknownEventType is used when a telemetry event arrives without a type.
const UnknownEventType = "unknown"

// LogEvent is a pageview or click event as forwarded to the log webhook.
// Type is a free-form tag such as "pageview" or "whatsapp_click".
type LogEvent struct {
	Type string `json:"type"`
	Path any    `json:"path,omitempty"`
	Attribution
	UserAgent any `json:"userAgent,omitempty"`
}

func NewLogEvent(body map[string]any) LogEvent {
	eventType := stringField(body, "type")
	if eventType == "" {
		eventType = UnknownEventType
	}
	return LogEvent{
		Type:        eventType,
		Path:        optionalValue(body, "path"),
		Attribution: attributionFrom(body),
		UserAgent:   optionalValue(body, "userAgent"),
	}
}
