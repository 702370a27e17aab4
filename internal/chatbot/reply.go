// Package chatbot implements Zevi, the scripted wellness bot: a fixed table
// of keyword rules and a conversation that answers after a short typing delay.
package chatbot

import "strings"

type rule struct {
	keywords []string
	reply    string
}

// Rules are checked in order and the first match wins, so overlapping
// keywords resolve by position.
var rules = []rule{
	{
		keywords: []string{"stress", "stressed", "overwhelmed", "burnout"},
		reply:    "I hear you 💜 Stress is really hard. Try the 4-7-8 breathing technique: inhale for 4 counts, hold for 7, exhale for 8. Would you like more coping strategies?",
	},
	{
		keywords: []string{"anxiety", "anxious", "panic", "worry"},
		reply:    "Anxiety is tough 🌿 Ground yourself with the 5-4-3-2-1 technique: name 5 things you see, 4 you touch, 3 you hear, 2 you smell, 1 you taste.",
	},
	{
		keywords: []string{"time", "deadline", "schedule", "manage", "procrastinat"},
		reply:    "Time management can feel overwhelming! Try breaking big tasks into 25-minute Pomodoro sessions. Want me to share a planning template?",
	},
	{
		keywords: []string{"sleep", "tired", "exhausted", "insomnia"},
		reply:    "Sleep deprivation worsens everything 😴 Aim for 7-9 hours. Try: no screens 1 hour before bed, keep a consistent schedule, and write tomorrow's to-do list before sleeping.",
	},
	{
		keywords: []string{"motivation", "unmotivated", "give up", "hopeless"},
		reply:    "You've come so far already 🌟 Remember: IB is designed to be challenging, and choosing to take it shows incredible courage. One day at a time. What subject feels hardest right now?",
	},
	{
		keywords: []string{"ia", "ee", "tok", "extended essay", "internal assessment"},
		reply:    "IB assessments are intense! Break them into phases: research, outline, draft, review. Set mini-deadlines for each phase. Check the Know More page for time management guides 📖",
	},
	{
		keywords: []string{"friend", "lonely", "alone", "isolated"},
		reply:    "Feeling isolated during IB is so common 💜 The community forum is a great place to connect with peers who understand exactly what you're going through. You're not alone!",
	},
	{
		keywords: []string{"grade", "fail", "score", "mark"},
		reply:    "Your grade does not define your worth 🌿 One assessment does not predict your future. Focus on what you can control right now — talk to your teacher or counselor if you're struggling.",
	},
	{
		keywords: []string{"hello", "hi", "hey", "start"},
		reply:    "Hello! I'm Zevi, your ZEVINA wellness bot 🌿💜 I'm here to help with stress, time management, emotional support, and more. What's on your mind today?",
	},
	{
		keywords: []string{"help", "what can you do", "support"},
		reply:    "I can help you with: 🧘 Stress & anxiety relief\n⏰ Time management tips\n😴 Sleep advice\n💪 Motivation boosts\n📚 IB-specific support\n\nJust type what you're feeling!",
	},
}

// Fallback is the answer when no rule matches.
const Fallback = "Thank you for sharing that with me 💜 Remember, it's okay to take things one step at a time. Would you like breathing exercises, time management tips, or just someone to talk to?"

// Reply returns the answer to input. It is pure and deterministic.
func Reply(input string) string {
	lower := strings.ToLower(input)
	for _, r := range rules {
		for _, k := range r.keywords {
			if strings.Contains(lower, k) {
				return r.reply
			}
		}
	}
	return Fallback
}

// Suggestions are the quick replies offered under the chat input.
func Suggestions() []string {
	return []string{"I'm stressed 😔", "Help with time ⏰", "Motivation 💪"}
}
