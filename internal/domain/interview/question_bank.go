package interview

import "fmt"

var bankByLevel = map[Level][]string{
	LevelJunior: {
		"Walk me through a project where you used %s skills. What was your part in it?",
		"How do you approach learning a new tool or framework needed for a %s task?",
		"Describe a bug you found and fixed recently. How did you track it down?",
		"How do you make sure your work as a %s is correct before handing it over?",
		"Tell me about a time you asked for help. How did you decide it was time to ask?",
		"What does a good code review look like to you?",
		"Which part of the %s role do you find most interesting, and why?",
		"How do you organise your day when you have several small tasks due?",
		"Explain a technical concept you know well as if to a non-technical colleague.",
		"What would you like to get better at in the next six months?",
	},
	LevelMid: {
		"Describe a feature you owned end to end as a %s. What trade-offs did you make?",
		"How do you estimate work, and what do you do when an estimate turns out wrong?",
		"Tell me about a production incident you were involved in. What changed afterwards?",
		"How do you balance delivery speed against code quality in a %s role?",
		"Describe a disagreement with a teammate about a technical decision and how it ended.",
		"How do you test changes that are hard to cover with automated tests?",
		"What metrics would you watch after shipping a change you were responsible for?",
		"How do you bring a new teammate up to speed on a system you know well?",
		"Describe a time you simplified an existing design. What did you remove?",
		"Which recent change in the %s field affected how you work?",
	},
	LevelSenior: {
		"Describe the most complex system you designed as a %s. How would you change it today?",
		"How do you decide between building something in-house and adopting an existing solution?",
		"Tell me about a time you changed the technical direction of a team. How did you get buy-in?",
		"How do you plan a migration that must happen without downtime?",
		"What signals tell you a %s team is accumulating too much technical debt?",
		"Describe how you mentor engineers who are close to your own level.",
		"How do you handle requirements that conflict between two stakeholders?",
		"Tell me about a failure you were accountable for. What did you do next?",
		"How do you make architecture decisions visible and reversible?",
		"Which trade-offs matter most when scaling a %s system by ten times?",
	},
}

// FallbackQuestions returns settings.QuestionCount questions from the static
// bank for the level, used when no model-generated questions are available.
// Focus areas are folded into the leading questions.
func FallbackQuestions(s Settings) []string {
	bank := bankByLevel[s.Level]
	if len(bank) == 0 {
		bank = bankByLevel[LevelMid]
	}

	out := make([]string, 0, s.QuestionCount)
	for _, area := range s.FocusAreas {
		if len(out) == s.QuestionCount {
			return out
		}
		out = append(out, fmt.Sprintf("What experience do you have with %s, and how did you apply it as a %s?", area, s.Role))
	}
	for i := 0; len(out) < s.QuestionCount; i++ {
		q := bank[i%len(bank)]
		out = append(out, fillRole(q, s.Role))
	}
	return out
}

func fillRole(template, role string) string {
	n := 0
	for i := 0; i+1 < len(template); i++ {
		if template[i] == '%' && template[i+1] == 's' {
			n++
		}
	}
	if n == 0 {
		return template
	}
	args := make([]any, n)
	for i := range args {
		args[i] = role
	}
	return fmt.Sprintf(template, args...)
}
