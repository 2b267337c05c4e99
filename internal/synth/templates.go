package synth

import "strings"

var foodTemplates = []string{
	"Dairy products, spicy foods",
	"Gluten, processed foods",
	"No specific triggers identified",
	"Coffee, carbonated drinks",
	"Red meat, fried foods",
	"Beans, legumes",
	"None that I know of",
	"Lactose, high-fat foods",
	"Sugar, artificial sweeteners",
	"Wheat, soy products",
}

var activityTemplates = []string{
	"Running, cycling, swimming",
	"Yoga, pilates",
	"Weight training, CrossFit",
	"Walking, hiking",
	"Team sports (basketball, soccer)",
	"No regular exercise",
	"Dancing, aerobics",
	"Martial arts, boxing",
}

var generalTemplates = []string{
	"Yes, occasionally",
	"No, not at this time",
	"Sometimes, depending on the situation",
	"Regularly",
	"Not applicable",
	"Varies from week to week",
	"Only during certain seasons",
}

var foodKeywords = []string{"food", "eat", "trigger", "diet"}
var activityKeywords = []string{"exercise", "activity", "physical", "sport"}

// templatesForQuestion routes a question to the template bank matching its
// subject matter. Food keywords win over activity keywords.
func templatesForQuestion(questionText string) []string {
	lower := strings.ToLower(questionText)

	for _, word := range foodKeywords {
		if strings.Contains(lower, word) {
			return foodTemplates
		}
	}
	for _, word := range activityKeywords {
		if strings.Contains(lower, word) {
			return activityTemplates
		}
	}
	return generalTemplates
}
