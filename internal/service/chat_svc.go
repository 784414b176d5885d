package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Dawsonf18/policy-ai-chatbot/internal/apperr"
	"github.com/Dawsonf18/policy-ai-chatbot/internal/model"
	"github.com/Dawsonf18/policy-ai-chatbot/internal/retriever"
	"github.com/Dawsonf18/policy-ai-chatbot/internal/synthesizer"
)

// ChatService runs one question through retrieve-then-synthesize and shapes
// the response. Requests are independent; there is no per-request state.
type ChatService struct {
	retriever *retriever.Retriever
	synth     synthesizer.Synthesizer
	topK      int
}

func NewChatService(r *retriever.Retriever, s synthesizer.Synthesizer, topK int) *ChatService {
	if topK <= 0 {
		topK = 3
	}
	return &ChatService{retriever: r, synth: s, topK: topK}
}

// Handle answers one question. An empty question fails fast; empty retrieval
// short-circuits to the fixed no-relevant-content answer with no sources; any
// component failure propagates with no partial answer.
func (s *ChatService) Handle(ctx context.Context, question string) (*model.ChatResponse, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, apperr.New(apperr.KindInvalidRequest, "question must not be empty")
	}

	scored, err := s.retriever.Retrieve(ctx, question, s.topK)
	if err != nil {
		return nil, classifyUpstream(err)
	}

	if len(scored) == 0 {
		return &model.ChatResponse{
			Answer:  synthesizer.NoRelevantAnswer,
			Sources: []model.Source{},
		}, nil
	}

	answer, err := s.synth.Synthesize(ctx, question, scored)
	if err != nil {
		return nil, classifyUpstream(err)
	}

	return &model.ChatResponse{
		Answer:  answer,
		Sources: model.BuildSources(scored),
	}, nil
}

// classifyUpstream promotes deadline expiry to the timeout kind so callers
// can distinguish "upstream too slow" from a hard component failure.
func classifyUpstream(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperr.Wrap(apperr.KindUpstreamTimeout, err, "upstream call timed out")
	}
	return err
}
