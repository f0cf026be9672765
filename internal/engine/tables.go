package engine

import "math/rand"

// Category priority is fixed: anxiety, sadness, overwhelm, anger, fatigue,
// gratitude. Both tables share the order; only tone differs. The companion
// speaks to the user in first person, the mentor replies to a community
// post in third person. Do not merge the tables.

var companionRules = []Rule{
	{
		Category: "anxiety",
		Keywords: []string{"anxious", "anxiety"},
		Response: "I hear that you're feeling anxious. That's a completely normal feeling, and I'm here with you. Try this: Take a deep breath in for 4 counts, hold for 4, then breathe out for 6. Your feelings are valid, and this moment will pass. 🌸",
	},
	{
		Category: "sadness",
		Keywords: []string{"sad", "depressed", "down"},
		Response: "I'm sorry you're feeling this way. It takes courage to share these feelings. Remember that feeling sad doesn't mean you're broken - it means you're human. Would you like to try a gentle activity together, or would you prefer to talk about what's making you feel this way? 💙",
	},
	{
		Category: "overwhelm",
		Keywords: []string{"stressed", "overwhelmed"},
		Response: "Feeling overwhelmed can be really tough. Let's break things down together. Sometimes when everything feels too much, focusing on just one small thing can help. What's one tiny step you could take right now? I believe in you. ✨",
	},
	{
		Category: "anger",
		Keywords: []string{"angry", "mad", "frustrated"},
		Response: "Your anger is valid - it's telling you something important. Take a moment to breathe. Sometimes anger is protecting other feelings like hurt or fear. I'm here to listen to whatever you're experiencing without judgment. 🔥➡️💚",
	},
	{
		Category: "fatigue",
		Keywords: []string{"tired", "exhausted"},
		Response: "It sounds like you're carrying a heavy load. Rest isn't selfish - it's necessary. Your worth isn't determined by your productivity. Be gentle with yourself today. 🌙",
	},
	{
		Category: "gratitude",
		Keywords: []string{"thank", "grateful"},
		Response: "It means so much to hear that! Remember, you have the strength within you - I'm just here to remind you of it. You're doing great by taking care of your mental health. 🌟",
	},
}

var companionFallback = []string{
	"Thank you for sharing that with me. Your feelings matter, and I'm here to listen. Can you tell me more about what's been on your mind? 💚",
	"I appreciate you opening up. That takes courage. How can I best support you right now? 🤗",
	"You're not alone in feeling this way. Many people experience similar emotions. What would feel most helpful to you in this moment? 🌸",
	"I hear you, and your experience is valid. Sometimes just being heard can make a difference. How are you taking care of yourself today? ✨",
}

var mentorRules = []Rule{
	{
		Category: "anxiety",
		Keywords: []string{"anxious", "anxiety"},
		Response: "Thank you for sharing this with the community. Anxiety can feel overwhelming, but reaching out like you did is a real step forward. A slow breath in for 4 counts, held for 4, and out for 6 can help settle the moment. You're not facing this alone here. 🌸",
	},
	{
		Category: "sadness",
		Keywords: []string{"sad", "depressed", "down"},
		Response: "It takes courage to put these feelings into words. Feeling low doesn't make anyone broken - it makes them human. This community sees you, and brighter days do come, even when they feel far away. 💙",
	},
	{
		Category: "overwhelm",
		Keywords: []string{"stressed", "overwhelmed"},
		Response: "When everything feels like too much at once, breaking it into one small step can make it bearable. Whoever is reading and feeling the same: you don't have to carry it all today. This space is here for exactly that. ✨",
	},
	{
		Category: "anger",
		Keywords: []string{"angry", "mad", "frustrated"},
		Response: "Anger is a valid signal - often it's protecting hurt underneath. Sharing it here instead of bottling it up matters. Take the time you need; this community listens without judgment. 💚",
	},
	{
		Category: "fatigue",
		Keywords: []string{"tired", "exhausted"},
		Response: "Carrying a heavy load for a long time is exhausting, and rest is not a weakness. Anyone who relates: your worth isn't measured by productivity. Be gentle with yourselves. 🌙",
	},
	{
		Category: "gratitude",
		Keywords: []string{"thank", "grateful"},
		Response: "Moments of gratitude like this lift the whole community. Thank you for bringing some light here - it reminds everyone that things can get better. 🌟",
	},
}

var mentorFallback = []string{
	"Thank you for trusting the community with your story. Every voice here matters, and yours is heard. 💚",
	"Sharing here takes courage. Whatever you're going through, you don't have to face it alone - this space exists for each other. 🤗",
	"Your experience is valid, and many here will recognize themselves in it. Be kind to yourself today. 🌸",
	"Someone reading this right now feels less alone because you posted. That's what this community is for. ✨",
}

// NewCompanion builds the first-person chat responder.
func NewCompanion(src rand.Source) *Responder {
	return newResponder("companion", companionRules, companionFallback, src)
}

// NewMentor builds the third-person community-mentor responder.
func NewMentor(src rand.Source) *Responder {
	return newResponder("mentor", mentorRules, mentorFallback, src)
}

// Greeting seeds every new conversation.
const Greeting = "Hi there! I'm MindMate, your AI companion. I'm here to listen without judgment and support you through whatever you're feeling. What's on your mind today? 💚"

// MentorName labels engine-generated community replies.
const MentorName = "AI Mentor"
