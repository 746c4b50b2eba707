package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/fairyhunter13/skillbridge-assessor/internal/adapter/observability"
	"github.com/fairyhunter13/skillbridge-assessor/internal/domain"
	"github.com/fairyhunter13/skillbridge-assessor/pkg/textx"
)

// ApologyReply is sent when the gateway fails or returns nothing.
const ApologyReply = "I'm having trouble processing your response right now. Could you please share more about your experience?"

// Turn outcomes recorded in metrics.
const (
	TurnOutcomeReplied    = "replied"
	TurnOutcomeRedirected = "redirected"
	TurnOutcomeDegraded   = "degraded"
	TurnOutcomeCompleted  = "completed"
)

// TurnService handles one stateless conversational turn.
type TurnService struct {
	Guard   *TopicGuard
	Engine  *PhaseEngine
	LLM     domain.LLMGateway
	Reports *ReportPipeline
}

// NewTurnService constructs a TurnService with its dependencies.
func NewTurnService(guard *TopicGuard, engine *PhaseEngine, llm domain.LLMGateway, reports *ReportPipeline) TurnService {
	return TurnService{Guard: guard, Engine: engine, LLM: llm, Reports: reports}
}

// HandleTurn validates the request, replies, advances the phase and attaches
// the final report when the phase transition calls for one. Gateway failures
// never surface; only validation errors are returned.
func (s TurnService) HandleTurn(ctx context.Context, req domain.TurnRequest) (domain.TurnResponse, error) {
	course := textx.SanitizeLine(req.Course)
	message := textx.SanitizeText(req.UserMessage)
	if course == "" {
		return domain.TurnResponse{}, fmt.Errorf("%w: course is required", domain.ErrInvalidArgument)
	}
	if message == "" {
		return domain.TurnResponse{}, fmt.Errorf("%w: userMessage is required", domain.ErrInvalidArgument)
	}
	if req.Phase < domain.PhaseIntroduction || req.Phase > domain.PhaseComplete {
		return domain.TurnResponse{}, fmt.Errorf("%w: unknown assessment phase", domain.ErrInvalidArgument)
	}

	ctx, span := otel.Tracer("usecase.turn").Start(ctx, "TurnService.HandleTurn")
	defer span.End()
	span.SetAttributes(
		attribute.String("assessment.course", course),
		attribute.String("assessment.phase", req.Phase.String()),
		attribute.Int("assessment.history_len", len(req.History)),
	)
	lg := observability.LoggerFromContext(ctx).With(slog.String("course", course), slog.String("phase", req.Phase.String()))

	profile := req.UserProfile
	if profile == nil {
		profile = map[string]any{}
	}

	if c := s.Guard.Classify(message, course); !c.OnTopic {
		lg.Info("off-topic message redirected")
		observability.ObserveTurn(req.Phase.String(), TurnOutcomeRedirected)
		return domain.TurnResponse{Reply: c.Redirect, NextPhase: req.Phase, UserProfile: profile}, nil
	}

	outcome := TurnOutcomeReplied
	reply, err := s.LLM.Complete(ctx, s.Engine.Prompt(req.Phase, course, message, req.History))
	reply = strings.TrimSpace(reply)
	if err != nil || reply == "" {
		if err == nil {
			err = fmt.Errorf("%w: empty reply", domain.ErrMalformedOutput)
		}
		lg.Warn("gateway failed, sending apology", slog.Any("error", err))
		reply = ApologyReply
		outcome = TurnOutcomeDegraded
	}

	next := s.Engine.Advance(req.Phase, len(req.History))
	resp := domain.TurnResponse{Reply: reply, NextPhase: next, UserProfile: profile}
	if TriggersReport(req.Phase, next) {
		full := append(append(make([]domain.Message, 0, len(req.History)+1), req.History...), domain.UserMessage(message))
		rep := s.Reports.BuildReport(ctx, course, full)
		resp.Report = &rep
		resp.Complete = true
		resp.NextPhase = domain.PhaseComplete
		outcome = TurnOutcomeCompleted
	}

	span.SetAttributes(attribute.String("assessment.next_phase", resp.NextPhase.String()))
	observability.ObserveTurn(req.Phase.String(), outcome)
	lg.Debug("turn handled", slog.String("next_phase", resp.NextPhase.String()), slog.Bool("complete", resp.Complete))
	return resp, nil
}
