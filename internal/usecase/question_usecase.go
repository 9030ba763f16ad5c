package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"mockzen-backend/internal/domain"
	"mockzen-backend/pkg/apperror"
	"mockzen-backend/pkg/llm"
	"mockzen-backend/pkg/logger"
)

// TextGenerator is the slice of the LLM client the question flow needs.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// questionHash normalizes a question and hashes it for duplicate detection.
func questionHash(question string) string {
	str := strings.ToLower(strings.TrimSpace(question))
	var hash int32
	for _, ch := range str {
		hash = (hash << 5) - hash + ch
	}
	if hash < 0 {
		hash = -hash
	}
	return strconv.FormatInt(int64(hash), 16)
}

func isDuplicateQuestion(question string, previous []domain.PriorAnswer) bool {
	candidate := questionHash(question)
	for _, qa := range previous {
		if questionHash(qa.Question) == candidate {
			return true
		}
	}
	return false
}

type questionUsecase struct {
	generator TextGenerator
}

func NewQuestionUsecase(generator TextGenerator) domain.QuestionUsecase {
	return &questionUsecase{generator: generator}
}

func (u *questionUsecase) GenerateQuestion(ctx context.Context, req domain.QuestionRequest) (string, error) {
	if u.generator == nil {
		return "", apperror.New(503, "Question generation is not configured", nil)
	}

	prompt := buildQuestionPrompt(req)

	question, err := u.generator.GenerateText(ctx, prompt)
	if err != nil {
		return "", apperror.New(500, "Failed to generate question", err)
	}
	question = llm.StripMarkdownFences(question)

	// One regeneration attempt when the model repeats itself.
	if isDuplicateQuestion(question, req.PreviousAnswers) {
		logger.Log.Warn("Duplicate question generated, retrying once",
			"interview_id", req.InterviewID, "question_number", req.QuestionNumber)
		retry, err := u.generator.GenerateText(ctx, prompt+"\nDo not repeat any earlier question.")
		if err == nil {
			if candidate := llm.StripMarkdownFences(retry); !isDuplicateQuestion(candidate, req.PreviousAnswers) {
				question = candidate
			}
		}
	}

	if question == "" {
		return "", apperror.New(500, "Failed to generate question", nil)
	}
	return question, nil
}

func buildQuestionPrompt(req domain.QuestionRequest) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "You are conducting a %s mock interview at %s difficulty. ",
		req.InterviewType, req.Difficulty)
	fmt.Fprintf(&sb, "Ask question %d of %d. Reply with the question only.",
		req.QuestionNumber, req.QuestionCount)
	if req.CustomScenario != "" {
		fmt.Fprintf(&sb, " Scenario: %s.", req.CustomScenario)
	}
	for _, qa := range req.PreviousAnswers {
		fmt.Fprintf(&sb, "\nAlready asked: %s", qa.Question)
	}
	return sb.String()
}

func (u *questionUsecase) EvaluateAnswer(ctx context.Context, interviewType, question, answer string) (*domain.AnswerFeedback, error) {
	if u.generator == nil {
		return nil, apperror.New(503, "Answer evaluation is not configured", nil)
	}
	if question == "" || answer == "" {
		return nil, apperror.BadRequest("Question and answer are required")
	}

	prompt := fmt.Sprintf(
		`Evaluate this %s interview answer. Question: %q Answer: %q `+
			`Reply as JSON {"feedback": string, "score": integer 0-100}.`,
		interviewType, question, answer)

	raw, err := u.generator.GenerateText(ctx, prompt)
	if err != nil {
		return nil, apperror.New(500, "Failed to evaluate answer", err)
	}

	var feedback domain.AnswerFeedback
	if err := json.Unmarshal([]byte(llm.StripMarkdownFences(raw)), &feedback); err != nil {
		// Model ignored the JSON instruction; return the raw text unscored.
		feedback = domain.AnswerFeedback{Feedback: strings.TrimSpace(raw)}
	}
	return &feedback, nil
}
