package questionbank

import "mentorbot/internal/model"

// demographicQuestions are free-text warm-up questions asked before the
// instrument. Their answers feed the narrative prompt only; they carry no
// weights.
var demographicQuestions = []model.DemographicQuestion{
	{ID: "demo_name", Text: "What should I call you?"},
	{ID: "demo_age", Text: "How old are you?"},
	{ID: "demo_occupation", Text: "What do you do for work or study?"},
	{ID: "demo_interests", Text: "What do you enjoy doing in your free time?"},
	{ID: "demo_goal", Text: "What would you most like to change or achieve in the next year?"},
}
