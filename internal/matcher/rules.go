package matcher

import (
	"context"
	"log/slog"

	"talkmatch/internal/logging"
	"talkmatch/internal/records"
)

// Rule is an event-specific disambiguation strategy. InScope selects the
// talks the rule understands; Narrow reduces the pooled videos to the ones
// that belong to the talk. Rules encode one conference's text conventions
// and can be swapped without touching the pipeline order.
type Rule interface {
	ID() string
	Name() string
	InScope(talk records.Talk) bool
	Narrow(talk records.Talk, videos []records.Video) ([]records.Video, error)
}

// RulePass adapts a Rule into a Pass. A talk is matched only when exactly
// one video survives; a rule error defers the talk for this pass.
type RulePass struct {
	rule   Rule
	logger *slog.Logger
}

func NewRulePass(rule Rule, logger *slog.Logger) *RulePass {
	return &RulePass{rule: rule, logger: logging.NewComponentLogger(logger, "matcher")}
}

func (p *RulePass) ID() string   { return p.rule.ID() }
func (p *RulePass) Name() string { return p.rule.Name() }

func (p *RulePass) Apply(ctx context.Context, ws WorkingSet) WorkingSet {
	for _, talk := range ws.Talks() {
		if !p.rule.InScope(talk) {
			continue
		}
		logger := passLogger(ctx, p.logger, talk.ID)
		survivors, err := p.rule.Narrow(talk, ws.Videos())
		if err != nil {
			logging.WarnWithContext(logger, "rule could not evaluate talk", "rule_error",
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check the talk's schedule fields"),
				logging.String(logging.FieldImpact, "talk deferred to later passes"),
			)
			continue
		}
		if len(survivors) != 1 {
			logger.Debug("rule left no single candidate",
				logging.Args(append(logging.DecisionAttrs(p.rule.ID(), "deferred", "candidates"),
					logging.Int("candidates", len(survivors)))...)...)
			continue
		}
		uri := survivors[0].URI
		ws = ws.WithMatches(p.rule.ID(), talk.ID, uri).WithoutTalks(talk.ID).WithoutVideos(uri)
		logger.Debug("rule matched", logging.String(logging.FieldVideoURI, uri))
	}
	return ws
}
