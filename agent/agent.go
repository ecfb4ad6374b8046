package agent

import (
	"context"
	"encoding/json"
	"strings"

	"medcart-agent/catalog"
	"medcart-agent/config"
	apperrors "medcart-agent/errors"
	"medcart-agent/prompts"
	"medcart-agent/web/types"

	"go.uber.org/zap"
)

// NoMatchMessage is the sentinel returned when criteria were extracted but no
// parent record matched. It is a successful response, not an error.
const NoMatchMessage = "No matching products found."

// LLM is the completion contract the orchestrator depends on.
type LLM interface {
	Chat(ctx context.Context, model string, messages []types.Message) (string, error)
}

// Agent drives the two-stage pipeline: criteria call, snapshot filtering,
// then a recommendation call grounded in the sanitized product data.
type Agent struct {
	cfg      *config.Config
	llm      LLM
	snapshot *catalog.Snapshot
	system   *prompts.Source
	logger   *zap.Logger
}

func New(cfg *config.Config, llm LLM, snapshot *catalog.Snapshot, system *prompts.Source, logger *zap.Logger) *Agent {
	return &Agent{
		cfg:      cfg,
		llm:      llm,
		snapshot: snapshot,
		system:   system,
		logger:   logger,
	}
}

// Respond runs one user message through the pipeline and returns the final,
// link-resolved response text.
//
// Histories mutated before a failure point are not rolled back: a retry after
// a mid-pipeline failure sees the failed turn's user input already recorded.
func (a *Agent) Respond(ctx context.Context, conv *Conversation, userInput string) (string, error) {
	if !a.snapshot.Loaded() {
		return "", apperrors.ErrCatalogNotReady
	}

	conv.AppendPrimary("user", userInput)

	criteriaOut, err := a.llm.Chat(ctx, a.cfg.CriteriaModel, conv.PrimaryMessages(a.system.SystemMessage()))
	if err != nil {
		return "", apperrors.WrapError(err, "criteria call")
	}
	conv.AppendPrimary("assistant", criteriaOut)

	criteria := catalog.ExtractCriteria(criteriaOut)
	if criteria.Empty() {
		// No labels in the output: the model is having a casual conversation.
		return criteriaOut, nil
	}

	parentIDs := a.snapshot.Filter(criteria, a.cfg.MaxResults)
	a.logger.Debug("Filtered catalog",
		zap.Strings("categories", criteria.Categories),
		zap.Int("matches", len(parentIDs)))
	if len(parentIDs) == 0 {
		return NoMatchMessage, nil
	}

	children, links := a.snapshot.Sanitize(parentIDs, a.cfg.MaxChildren)

	conv.AppendGrounding("user", userInput)
	answer, err := a.llm.Chat(ctx, a.cfg.RecommendModel, conv.GroundingMessages(groundingSystem(children)))
	if err != nil {
		return "", apperrors.WrapError(err, "recommendation call")
	}

	resolved := ResolveLinks(answer, links)
	conv.AppendGrounding("assistant", resolved)
	return resolved, nil
}

// groundingSystem builds the second system message: the behavioral header
// followed by one serialized product record per line.
func groundingSystem(children []catalog.ChildRecord) string {
	var b strings.Builder
	b.WriteString(prompts.RecommendSystem())
	for _, child := range children {
		b.WriteByte('\n')
		if data, err := json.Marshal(child); err == nil {
			b.Write(data)
		}
	}
	return b.String()
}
