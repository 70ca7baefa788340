package questiongen

import "strings"

var categoryPrompts = map[Category]string{
	CategoryFunny:      "Generate a hilariously silly and funny 'Would You Rather' question for middle schoolers (ages 11-14). It should be lighthearted, wacky, and relatable to school or pop culture.",
	CategoryThoughtful: "Generate a deep, philosophical, or thought-provoking 'Would You Rather' question for middle schoolers. It should make them think about their values, future, or world perspectives in an accessible way.",
	CategoryAnimal:     "Generate a creative 'Would You Rather' question involving animals, pets, or wild creatures for middle schoolers. Think about animal abilities, cross-species scenarios, or funny animal behaviors.",
	CategoryGross:      "Generate a 'slightly gross' but school-appropriate 'Would You Rather' question for middle schoolers. It should be the kind of thing kids find hilarious and 'eww' at the same time, like eating weird combinations or minor sticky situations.",
}

const persona = `You are a creative middle school teacher who specializes in 'Would You Rather' icebreakers.
Your questions are legendary among 6th, 7th, and 8th graders.
The language should be modern but not cringey.
Always provide two distinct options.`

// categoryPrompt returns the instruction template for c. Unknown
// categories fall back to the funny template.
func categoryPrompt(c Category) string {
	if p, ok := categoryPrompts[c]; ok {
		return p
	}
	return categoryPrompts[DefaultCategory]
}

// buildSystemPrompt fixes the persona and embeds the do-not-repeat list.
func buildSystemPrompt(history []string, max int) string {
	var b strings.Builder
	b.WriteString(persona)
	b.WriteString("\nDo not repeat any of the following previously used questions: ")
	b.WriteString(strings.Join(limitHistory(history, max), ", "))
	b.WriteString(".")
	return b.String()
}

// limitHistory keeps the first max entries. History is most recent first.
func limitHistory(history []string, max int) []string {
	if max > 0 && len(history) > max {
		return history[:max]
	}
	return history
}
