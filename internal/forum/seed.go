package forum

import "github.com/sujalbistaa/zevina/internal/models"

// SeedPosts is the forum content of a client that has never stored posts.
func SeedPosts() []models.Post {
	return []models.Post{
		{
			ID: "1", Author: AnonymousPostAuthor, Avatar: "🌸", Topic: "stress",
			Content:   "I have 3 IAs, my EE draft, and TOK presentation all due within 2 weeks. I'm genuinely scared. Anyone else surviving this?",
			Timestamp: "2 hours ago", Likes: 24,
			Comments: []models.Comment{
				{Author: AnonymousCommentAuthor, Text: "You're not alone! Make a priority list — what's due first?", Timestamp: "1 hour ago"},
				{Author: AnonymousCommentAuthor, Text: "I was in your exact position last month. You can do this 💜", Timestamp: "45 min ago"},
			},
		},
		{
			ID: "2", Author: AnonymousPostAuthor, Avatar: "🌿", Topic: "time",
			Content:   "Started using the Pomodoro technique and genuinely my productivity went up 60%. 25 min study, 5 min break. Game changer for me!",
			Timestamp: "5 hours ago", Likes: 41,
			Comments: []models.Comment{
				{Author: AnonymousCommentAuthor, Text: "Which app do you use for the timer?", Timestamp: "4 hours ago"},
			},
		},
		{
			ID: "3", Author: AnonymousPostAuthor, Avatar: "💜", Topic: "motivation",
			Content:   "I got a 6 in Math HL after getting a 3 on my mock exam. If I can do it, so can you. The journey matters more than where you start.",
			Timestamp: "1 day ago", Likes: 87,
			Comments: []models.Comment{
				{Author: AnonymousCommentAuthor, Text: "This is exactly what I needed to read today 🌟", Timestamp: "20 hours ago"},
			},
		},
		{
			ID: "4", Author: AnonymousPostAuthor, Avatar: "🌙", Topic: "emotional",
			Content:   "I've been crying every night for a week. I know it sounds dramatic but the workload is crushing me. Does anyone else feel like this?",
			Timestamp: "3 hours ago", Likes: 52,
			Comments: []models.Comment{
				{Author: AnonymousCommentAuthor, Text: "That doesn't sound dramatic at all. Please talk to your counselor — you deserve support 💜", Timestamp: "2 hours ago"},
			},
		},
	}
}
