package service

import (
	"strings"

	"github.com/samber/lo"
)

const (
	ReplyGreeting = "Hello 👋\n" +
		"I’m A.M. Yusuf — Biochemist, Innovator, Bible Teacher, and Entrepreneur.\n\n" +
		"Type *menu* to continue."

	ReplyMenu = "What would you like to explore?\n" +
		"1️⃣ Research & Innovation\n" +
		"2️⃣ AI & Digital Skills\n" +
		"3️⃣ Consulting\n" +
		"4️⃣ Faith & Leadership"

	ReplyResearch   = "My research focuses on biochemistry, AI in healthcare, precision medicine, and agriculture."
	ReplyDigital    = "I train people to monetize AI and digital skills with practical execution."
	ReplyConsulting = "I consult for startups, strategy, and tech adoption."
	ReplyFaith      = "I teach biblical principles for leadership, purpose, and growth."

	ReplyFallback = "Please type *menu* to continue."

	// ReplyApology is sent when no reply could be selected at all.
	ReplyApology = "Sorry, I couldn't process that. Please type *menu* to continue."
)

var greetings = []string{"hi", "hello"}

var topics = map[string]string{
	"1": ReplyResearch,
	"2": ReplyDigital,
	"3": ReplyConsulting,
	"4": ReplyFaith,
}

// NormalizeText trims surrounding whitespace and lowercases the input.
func NormalizeText(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// SelectReply maps normalized text to its fixed reply. It keeps no state, so
// topics are reachable without asking for the menu first.
func SelectReply(text string) string {
	if lo.Contains(greetings, text) {
		return ReplyGreeting
	}

	if text == "menu" {
		return ReplyMenu
	}

	if reply, ok := topics[text]; ok {
		return reply
	}

	return ReplyFallback
}
