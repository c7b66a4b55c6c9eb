package models

// ToTagResponse maps a stored tag to its transfer shape.
func ToTagResponse(t Tag) TagResponse {
	return TagResponse{ID: t.ID, Name: t.Name, CreatedAt: t.CreatedAt}
}

func ToTagResponses(tags []Tag) []TagResponse {
	out := make([]TagResponse, 0, len(tags))
	for _, t := range tags {
		out = append(out, ToTagResponse(t))
	}
	return out
}

// ToPostResponse maps a stored post to its transfer shape.
func ToPostResponse(p Post) PostResponse {
	return PostResponse{
		ID:     p.ID,
		Title:  p.Title,
		Text:   p.Text,
		Author: p.Author,
		Tags:   ToTagResponses(p.Tags),
	}
}

func ToPostResponses(posts []Post) []PostResponse {
	out := make([]PostResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, ToPostResponse(p))
	}
	return out
}
