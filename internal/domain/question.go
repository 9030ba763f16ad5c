package domain

import "context"

// PriorAnswer is one question/answer pair from earlier in a session, used
// to steer generation away from repeats.
type PriorAnswer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type QuestionRequest struct {
	InterviewID     string
	InterviewType   string
	Difficulty      string
	QuestionNumber  int
	QuestionCount   int
	CustomScenario  string
	PreviousAnswers []PriorAnswer
}

type AnswerFeedback struct {
	Feedback string `json:"feedback"`
	Score    int    `json:"score"`
}

type QuestionUsecase interface {
	GenerateQuestion(ctx context.Context, req QuestionRequest) (string, error)
	EvaluateAnswer(ctx context.Context, interviewType, question, answer string) (*AnswerFeedback, error)
}
