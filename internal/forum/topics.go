package forum

// Topic is one of the fixed forum sections.
type Topic struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

// AllTopics selects every post in Filter.
const AllTopics = "all"

var topics = []Topic{
	{ID: "stress", Label: "Coping with Academic Stress", Icon: "😤"},
	{ID: "time", Label: "Time Management Tips", Icon: "⏰"},
	{ID: "emotional", Label: "Emotional Wellbeing & Peer Support", Icon: "💚"},
	{ID: "motivation", Label: "Motivation & Success Stories", Icon: "🌟"},
}

func Topics() []Topic {
	out := make([]Topic, len(topics))
	copy(out, topics)
	return out
}

func ValidTopic(id string) bool {
	for _, t := range topics {
		if t.ID == id {
			return true
		}
	}
	return false
}
