package classify

// UnifiedKind implements the Concatenator's unification rule (spec
// §4.1): Text if every item classified Text, Video if all Video, Image
// if all Image, else Text (documents and mixed sets lower through the
// Markdown adapter).
func UnifiedKind(items []Classified) Kind {
	if len(items) == 0 {
		return KindText
	}

	allText, allVideo, allImage := true, true, true
	for _, c := range items {
		if c.Kind != KindText && c.Kind != KindStreamedBytes {
			allText = false
		}
		if c.Kind != KindVideo {
			allVideo = false
		}
		if c.Kind != KindImage {
			allImage = false
		}
	}

	switch {
	case allText:
		return KindText
	case allVideo:
		return KindVideo
	case allImage:
		return KindImage
	default:
		return KindText
	}
}
