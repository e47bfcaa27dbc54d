package vision

// BuildVersePrompt returns the fixed prompt asking the model to transcribe
// and translate a Malayalam Bible-verse image and answer in JSON.
func BuildVersePrompt() string {
	return `Analyze this image and:
1. Identify if it contains Malayalam text (bible verse)
2. If Malayalam text is present, extract it and provide English translation
3. If no Malayalam text or unreadable, state that clearly
4. Title should be the bible verse reference
5. Provide alternative text for the main content (strictly exclude logo details) if applicable

Respond in this JSON format:
{
    "contains_malayalam": boolean,
    "title": "string or null",
    "extracted_bible_verse_malayalam": "string or null",
    "bible_verse_english_translation": "string or null",
    "alternative_text_for_main_content": "string or null",
    "confidence_level": "low/medium/high",
    "notes": "any additional observations"
}`
}
