package utils

// NoteCalloutType maps a note type to the callout used when rendering it in
// markdown ("> [!quote]"). Unknown types render as plain notes.
func NoteCalloutType(noteType string) string {
	calloutMapping := map[string]string{
		"review":    "abstract",
		"highlight": "quote",
		"thought":   "note",
		"quote":     "quote",
	}

	if calloutType, ok := calloutMapping[noteType]; ok {
		return calloutType
	}
	return "note"
}
