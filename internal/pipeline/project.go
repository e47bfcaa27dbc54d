package pipeline

// RequiredFields is the fixed ordered set of keys recognized in the model's
// answer. Projection keeps exactly these; anything else (contains_malayalam,
// notes) is dropped.
var RequiredFields = []string{
	"title",
	"extracted_bible_verse_malayalam",
	"bible_verse_english_translation",
	"alternative_text_for_main_content",
	"confidence_level",
}

// projectFields produces a mapping containing exactly the RequiredFields
// keys, each holding the source value or nil when absent.
func projectFields(payload map[string]interface{}) map[string]interface{} {
	projected := make(map[string]interface{}, len(RequiredFields))
	for _, key := range RequiredFields {
		projected[key] = payload[key]
	}
	return projected
}
