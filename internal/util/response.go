package util

type Envelope map[string]any

func Error(message string) Envelope {
	return Envelope{"error": message}
}

func Data(key string, value any) Envelope {
	return Envelope{key: value}
}

// FieldError reports a request field that failed validation.
func FieldError(field, message string) Envelope {
	return Envelope{"error": message, "field": field}
}
