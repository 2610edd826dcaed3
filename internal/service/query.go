package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/cardsage/cardsage/internal/domain/card"
	"github.com/cardsage/cardsage/internal/domain/query"
	ierr "github.com/cardsage/cardsage/internal/errors"
	"github.com/cardsage/cardsage/internal/logger"
	"github.com/cardsage/cardsage/internal/parser"
	"github.com/cardsage/cardsage/internal/types"
)

type QueryService interface {
	// Process runs one turn through the pipeline: normalize, classify,
	// extract and merge entities, compute, assemble. Recoverable
	// conditions come back as clarification results, not errors.
	Process(ctx context.Context, text string, prior *query.ExtractedEntities) (*query.Result, error)
}

type queryService struct {
	repo       card.Repository
	normalizer *parser.CurrencyNormalizer
	classifier *parser.Classifier
	extractor  *parser.Extractor
	reward     RewardService
	redemption RedemptionService
	comparison ComparisonService
	log        *logger.Logger
}

func NewQueryService(
	repo card.Repository,
	normalizer *parser.CurrencyNormalizer,
	classifier *parser.Classifier,
	extractor *parser.Extractor,
	reward RewardService,
	redemption RedemptionService,
	comparison ComparisonService,
	log *logger.Logger,
) QueryService {
	return &queryService{
		repo:       repo,
		normalizer: normalizer,
		classifier: classifier,
		extractor:  extractor,
		reward:     reward,
		redemption: redemption,
		comparison: comparison,
		log:        log,
	}
}

func (s *queryService) Process(ctx context.Context, text string, prior *query.ExtractedEntities) (*query.Result, error) {
	normalized := s.normalizer.Normalize(text)

	intent := s.classifier.Classify(normalized)

	entities := s.extractor.Extract(normalized, nil)
	entities.CardIDs = s.classifier.ReferencedCards(normalized)
	entities = entities.MergePrior(prior)

	// An elliptical follow-up carries no intent keywords of its own, ex
	// "what about with the other card". Once the prior turn's entities are
	// merged in, re-resolve the intent from what the merged set supports.
	if intent == types.INTENT_GENERAL_QUERY && prior != nil && s.classifier.IsFollowUp(normalized) {
		switch {
		case entities.Points != nil:
			intent = types.INTENT_REDEMPTION_QUERY
		case entities.Amount != nil && entities.Category != "":
			intent = types.INTENT_REWARD_CALCULATION
		}
	}

	result := &query.Result{
		QueryID:  types.GenerateUUIDWithPrefix(types.UUID_PREFIX_QUERY),
		Intent:   intent,
		RawQuery: text,
		Entities: entities,
	}

	s.log.WithContext(ctx).Debugf(
		"query classified as %s: amount=%v category=%s cards=%v",
		intent, entities.Amount, entities.Category, entities.CardIDs,
	)

	// General queries skip computation: intent and entities are forwarded
	// as-is to the phrasing collaborator together with the raw card records.
	var err error
	if intent.RequiresComputation() {
		switch intent {
		case types.INTENT_REWARD_CALCULATION:
			err = s.processRewardCalculation(ctx, result)
		case types.INTENT_REDEMPTION_QUERY:
			err = s.processRedemption(ctx, result)
		case types.INTENT_FEATURE_COMPARISON:
			err = s.processComparison(ctx, result)
		default:
			err = intent.Validate()
		}
	}

	if err != nil {
		if clarification := clarificationFromErr(err); clarification != nil {
			result.Cards = nil
			result.Comparison = nil
			result.Clarification = clarification
			return result, nil
		}
		return nil, err
	}

	for _, computation := range result.Cards {
		computation.Finalize()
	}
	return result, nil
}

func (s *queryService) processRewardCalculation(ctx context.Context, result *query.Result) error {
	cards, err := s.resolveCards(ctx, result.Entities.CardIDs, false)
	if err != nil {
		return err
	}

	amount, err := requireAmount(&result.Entities)
	if err != nil {
		return err
	}

	for _, c := range cards {
		computation, err := s.reward.Compute(ctx, c, result.Entities.Category, amount)
		if err != nil {
			return err
		}
		result.Cards = append(result.Cards, computation)
	}

	// Two referenced cards on a calculation query is an implicit
	// comparison of the same spend.
	if len(result.Cards) == 2 {
		result.Comparison = s.comparison.Compare(ctx, result.Cards[0], result.Cards[1], types.COMPARISON_BASIS_UNITS)
	}
	return nil
}

func (s *queryService) processRedemption(ctx context.Context, result *query.Result) error {
	cards, err := s.resolveCards(ctx, result.Entities.CardIDs, false)
	if err != nil {
		return err
	}

	if result.Entities.Points == nil {
		return ierr.NewError("no point quantity in query").
			WithHint("Please specify how many points or miles to value").
			Mark(ierr.ErrInvalidAmount)
	}

	for _, c := range cards {
		computation, err := s.redemption.Value(ctx, c, *result.Entities.Points, result.Entities.Channel)
		if err != nil {
			return err
		}
		result.Cards = append(result.Cards, computation)
	}

	// Cross-card redemption comparison ranks on currency value: a point is
	// not a comparable unit across cards.
	if len(result.Cards) == 2 {
		result.Comparison = s.comparison.Compare(ctx, result.Cards[0], result.Cards[1], types.COMPARISON_BASIS_VALUE)
	}
	return nil
}

func (s *queryService) processComparison(ctx context.Context, result *query.Result) error {
	cards, err := s.resolveCards(ctx, result.Entities.CardIDs, true)
	if err != nil {
		return err
	}

	// A comparison over points uses the redemption path; otherwise it is
	// the same spend fed to both cards' reward calculation.
	if result.Entities.Points != nil && result.Entities.Amount == nil {
		for _, c := range cards {
			computation, err := s.redemption.Value(ctx, c, *result.Entities.Points, result.Entities.Channel)
			if err != nil {
				return err
			}
			result.Cards = append(result.Cards, computation)
		}
		result.Comparison = s.comparison.Compare(ctx, result.Cards[0], result.Cards[1], types.COMPARISON_BASIS_VALUE)
		return nil
	}

	amount, err := requireAmount(&result.Entities)
	if err != nil {
		return err
	}

	for _, c := range cards {
		computation, err := s.reward.Compute(ctx, c, result.Entities.Category, amount)
		if err != nil {
			return err
		}
		result.Cards = append(result.Cards, computation)
	}
	result.Comparison = s.comparison.Compare(ctx, result.Cards[0], result.Cards[1], types.COMPARISON_BASIS_UNITS)
	return nil
}

// resolveCards loads the referenced cards. Comparison paths require two
// distinct cards and widen an under-specified reference to the full card
// set when that set holds exactly two cards; single-card paths accept one
// or two references but reject zero.
func (s *queryService) resolveCards(ctx context.Context, cardIDs []string, wantPair bool) ([]*card.Card, error) {
	if wantPair && len(cardIDs) != 2 {
		all, err := s.repo.List(ctx)
		if err != nil {
			return nil, err
		}
		if len(all) == 2 {
			return all, nil
		}
		return nil, ambiguousCardErr(cardIDs)
	}

	if len(cardIDs) == 0 {
		return nil, ambiguousCardErr(cardIDs)
	}

	cards := make([]*card.Card, 0, len(cardIDs))
	for _, id := range cardIDs {
		c, err := s.repo.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

func ambiguousCardErr(cardIDs []string) error {
	return ierr.NewError("card reference missing or ambiguous").
		WithHint("Please name the card the question is about").
		WithReportableDetails(map[string]any{
			"referenced_cards": cardIDs,
		}).
		Mark(ierr.ErrAmbiguousCard)
}

func requireAmount(entities *query.ExtractedEntities) (amount decimal.Decimal, err error) {
	if entities.Amount == nil {
		return amount, ierr.NewError("no spend amount in query").
			WithHint("Please specify the spend amount").
			Mark(ierr.ErrInvalidAmount)
	}
	return *entities.Amount, nil
}

// clarificationFromErr converts a recoverable condition into the
// structured clarification the phrasing collaborator turns into a
// follow-up question. Non-clarifiable errors return nil.
func clarificationFromErr(err error) *query.Clarification {
	code := ierr.ClarificationCode(err)
	if code == "" {
		return nil
	}

	missing := map[string]string{
		ierr.ErrCodeInvalidAmount:      "amount",
		ierr.ErrCodeUnresolvedCategory: "category",
		ierr.ErrCodeUnknownChannel:     "channel",
		ierr.ErrCodeAmbiguousCard:      "card",
	}[code]

	message := ierr.Hint(err)
	if message == "" {
		message = err.Error()
	}

	return &query.Clarification{
		Code:    code,
		Missing: missing,
		Message: message,
	}
}
