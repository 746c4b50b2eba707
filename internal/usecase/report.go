package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/fairyhunter13/skillbridge-assessor/internal/adapter/observability"
	"github.com/fairyhunter13/skillbridge-assessor/internal/domain"
)

// Report pipeline layer names, used in logs and metrics.
const (
	LayerFullAI       = "full_ai"
	LayerSimplifiedAI = "simplified_ai"
)

// ReportPipeline turns a finished conversation into a Report. It tries each
// layer in order and falls back to the deterministic heuristic, so it
// always returns a well-formed report.
type ReportPipeline struct {
	llm      domain.LLMGateway
	attempts int
	interval time.Duration
	cleaner  *ResponseCleaner

	// callBudget is the longest a single gateway call may take. Zero
	// disables deadline checks.
	callBudget time.Duration
}

// errNoTimeLeft stops model layers when the request deadline cannot fit
// another gateway call.
var errNoTimeLeft = fmt.Errorf("%w: request deadline leaves no room for another model call", domain.ErrUpstreamTimeout)

// NewReportPipeline builds a pipeline. attempts is the number of full-AI
// attempts; interval is the pause between them.
func NewReportPipeline(llm domain.LLMGateway, attempts int, interval time.Duration) *ReportPipeline {
	if attempts < 1 {
		attempts = 1
	}
	if interval < 0 {
		interval = 0
	}
	return &ReportPipeline{llm: llm, attempts: attempts, interval: interval, cleaner: NewResponseCleaner()}
}

// WithCallBudget makes the pipeline skip to the heuristic report when the
// context deadline is closer than d plus a tenth of d.
func (p *ReportPipeline) WithCallBudget(d time.Duration) *ReportPipeline {
	p.callBudget = d
	return p
}

// hasTime reports whether one more gateway call fits before ctx's deadline.
func (p *ReportPipeline) hasTime(ctx context.Context) bool {
	if p.callBudget <= 0 {
		return true
	}
	deadline, ok := ctx.Deadline()
	if !ok {
		return true
	}
	return time.Until(deadline) >= p.callBudget+p.callBudget/10
}

type reportLayer struct {
	name  string
	build func(ctx context.Context, course string, history []domain.Message) (domain.Report, error)
}

func (p *ReportPipeline) layers() []reportLayer {
	return []reportLayer{
		{name: LayerFullAI, build: p.fullAI},
		{name: LayerSimplifiedAI, build: p.simplifiedAI},
	}
}

// BuildReport never fails; gateway and parse errors move on to the next layer.
func (p *ReportPipeline) BuildReport(ctx context.Context, course string, history []domain.Message) domain.Report {
	ctx, span := otel.Tracer("usecase.report").Start(ctx, "ReportPipeline.BuildReport")
	defer span.End()
	lg := observability.LoggerFromContext(ctx)

	rep, ok := domain.Report{}, false
	for _, layer := range p.layers() {
		if !p.hasTime(ctx) {
			lg.Warn("request deadline too close, skipping model layers",
				slog.String("layer", layer.name),
				slog.String("course", course))
			break
		}
		r, err := layer.build(ctx, course, history)
		if err == nil {
			rep, ok = r, true
			break
		}
		observability.ObserveReportLayerFailure(layer.name)
		lg.Warn("report layer failed, falling back",
			slog.String("layer", layer.name),
			slog.String("course", course),
			slog.Any("error", err))
	}
	if !ok {
		rep = HeuristicReport(course, history)
	}

	span.SetAttributes(
		attribute.String("report.type", string(rep.AssessmentType)),
		attribute.Int("report.score", rep.EmployabilityScore),
	)
	observability.ObserveReport(string(rep.AssessmentType), rep.EmployabilityScore)
	lg.Info("report generated",
		slog.String("course", course),
		slog.String("report_id", rep.ID),
		slog.String("assessment_type", string(rep.AssessmentType)),
		slog.Int("employability_score", rep.EmployabilityScore))
	return rep
}

// fullAI asks for the complete report shape, retrying on gateway errors and
// malformed output.
func (p *ReportPipeline) fullAI(ctx context.Context, course string, history []domain.Message) (domain.Report, error) {
	prompt := render(fullReportPrompt, promptData{Course: course, History: RenderHistory(history)})

	var doc gjson.Result
	attempt := 0
	op := func() error {
		if !p.hasTime(ctx) {
			return backoff.Permanent(errNoTimeLeft)
		}
		attempt++
		raw, err := p.llm.Complete(ctx, prompt)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(err)
			}
			return err
		}
		res := p.cleaner.Clean(raw)
		if !res.OK() {
			return res.Err()
		}
		d := gjson.Parse(res.JSON)
		if !isFullReport(d) {
			return fmt.Errorf("%w: skillsAnalysis and personalizedPlan must be objects", domain.ErrMalformedOutput)
		}
		doc = d
		return nil
	}
	notify := func(err error, next time.Duration) {
		observability.LoggerFromContext(ctx).Debug("full report attempt failed",
			slog.Int("attempt", attempt),
			slog.Duration("retry_in", next),
			slog.Any("error", err))
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(p.interval), uint64(p.attempts-1)),
		ctx,
	)
	if err := backoff.RetryNotify(op, policy, notify); err != nil {
		return domain.Report{}, fmt.Errorf("op=report.full_ai attempts=%d: %w", attempt, err)
	}

	rep := decodeReport(doc, HeuristicReport(course, history), fullAIConfidence)
	rep.AIConfidence = rep.Confidence
	rep.AssessmentType = domain.AssessmentAIGenerated
	return rep, nil
}

// simplifiedAI is a single cheaper attempt over the user's own words only.
func (p *ReportPipeline) simplifiedAI(ctx context.Context, course string, history []domain.Message) (domain.Report, error) {
	prompt := render(simplifiedReportPrompt, promptData{
		Course:      course,
		UserMessage: strings.Join(userMessages(history), "\n"),
	})
	raw, err := p.llm.Complete(ctx, prompt)
	if err != nil {
		return domain.Report{}, fmt.Errorf("op=report.simplified_ai: %w", err)
	}
	res := p.cleaner.Clean(raw)
	if !res.OK() {
		return domain.Report{}, fmt.Errorf("op=report.simplified_ai: %w", res.Err())
	}
	doc := gjson.Parse(res.JSON)
	if !isSimplifiedReport(doc) {
		return domain.Report{}, fmt.Errorf("op=report.simplified_ai: %w: no skillsAnalysis or employabilityScore", domain.ErrMalformedOutput)
	}

	rep := decodeReport(doc, HeuristicReport(course, history), heuristicConfidence)
	rep.AIConfidence = simplifiedAIConfidence
	rep.AssessmentType = domain.AssessmentAISimplified
	return rep, nil
}
