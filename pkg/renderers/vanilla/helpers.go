package vanilla

import "strings"

func controlID(formName, field string) string {
	field = strings.TrimSpace(field)
	if field == "" {
		return ""
	}
	if formName = strings.TrimSpace(formName); formName == "" {
		formName = "form"
	}
	return formName + "-" + field
}

func errorID(formName, field string) string {
	id := controlID(formName, field)
	if id == "" {
		return ""
	}
	return id + "-error"
}

func firstMessage(messages []string) string {
	for _, message := range messages {
		if trimmed := strings.TrimSpace(message); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
