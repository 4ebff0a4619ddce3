package publisher

// Heading builds a heading_2 block. Notion derives the page's right-side
// outline from these.
func Heading(text string) map[string]interface{} {
	return map[string]interface{}{
		"object": "block",
		"type":   "heading_2",
		"heading_2": map[string]interface{}{
			"rich_text": richText(text),
		},
	}
}

// Paragraph builds a plain paragraph block.
func Paragraph(text string) map[string]interface{} {
	return map[string]interface{}{
		"object": "block",
		"type":   "paragraph",
		"paragraph": map[string]interface{}{
			"rich_text": richText(text),
		},
	}
}

// ExternalImage builds an image block served from an external URL.
func ExternalImage(url string) map[string]interface{} {
	return map[string]interface{}{
		"object": "block",
		"type":   "image",
		"image": map[string]interface{}{
			"type":     "external",
			"external": map[string]interface{}{"url": url},
		},
	}
}

func richText(text string) []map[string]interface{} {
	return []map[string]interface{}{
		{"type": "text", "text": map[string]interface{}{"content": text}},
	}
}
