package crate

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/osse101/LootCrates_Go/internal/domain"
	"github.com/osse101/LootCrates_Go/internal/logger"
	"github.com/osse101/LootCrates_Go/internal/validation"
)

//go:embed schema/*.json
var schemaFS embed.FS

// Parser turns crate configuration documents into domain crates.
// Malformed crates and rewards are reported and skipped, never fatal.
type Parser struct {
	schemas  *validation.Schemas
	validate *validator.Validate
}

// NewParser compiles the embedded definition schemas
func NewParser() (*Parser, error) {
	schemas, err := validation.LoadFS(schemaFS, "schema/*.json")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgSchemaRegistration, err)
	}
	for _, name := range []string{SchemaCrate, SchemaReward} {
		if !slices.Contains(schemas.Names(), name) {
			return nil, fmt.Errorf("%s: missing %s", ErrMsgSchemaRegistration, name)
		}
	}
	return &Parser{schemas: schemas, validate: validator.New()}, nil
}

// ParseResult is everything one source produced, in document order
type ParseResult struct {
	Crates []*domain.Crate
	Errors []*domain.ConfigurationError
}

// Parse reads one YAML or JSON source. Crate sections are keyed by id under the top-level "crates" mapping.
func (p *Parser) Parse(ctx context.Context, src Source) ParseResult {
	log := logger.FromContext(ctx)
	var res ParseResult

	var doc yaml.Node
	if err := yaml.Unmarshal(src.Data, &doc); err != nil {
		res.Errors = append(res.Errors, configErr(src.Name, "", -1, fmt.Errorf("%s: %w", ErrMsgParseDocument, err)))
		return res
	}
	if doc.Kind == 0 {
		return res
	}

	root, ok := mappingPairs(&doc)
	if !ok && len(doc.Content) > 0 {
		root, ok = mappingPairs(doc.Content[0])
	}
	if !ok {
		res.Errors = append(res.Errors, configErr(src.Name, "", -1, errors.New(ErrMsgSectionNotMapping)))
		return res
	}

	for _, pair := range root {
		if pair[0].Value != SectionCrates {
			continue
		}
		sections, ok := mappingPairs(pair[1])
		if !ok {
			res.Errors = append(res.Errors, configErr(src.Name, "", -1, errors.New(ErrMsgSectionNotMapping)))
			continue
		}
		for _, section := range sections {
			c, errs := p.parseCrate(ctx, src.Name, section[0].Value, section[1])
			res.Errors = append(res.Errors, errs...)
			if c != nil {
				res.Crates = append(res.Crates, c)
			}
		}
	}

	for _, e := range res.Errors {
		if e.RewardIndex >= 0 {
			log.Warn(LogMsgRewardSkipped,
				LogFieldSource, e.Source, LogFieldCrateID, e.CrateID, LogFieldReward, e.RewardIndex, LogFieldError, e.Err)
		} else {
			log.Warn(LogMsgDefinitionSkipped, LogFieldSource, e.Source, LogFieldCrateID, e.CrateID, LogFieldError, e.Err)
		}
	}
	return res
}

func (p *Parser) parseCrate(ctx context.Context, source, rawID string, node *yaml.Node) (*domain.Crate, []*domain.ConfigurationError) {
	id := domain.NormalizeCrateID(rawID)
	fail := func(err error) (*domain.Crate, []*domain.ConfigurationError) {
		return nil, []*domain.ConfigurationError{configErr(source, id, -1, err)}
	}
	if id == "" {
		return fail(errors.New(ErrMsgEmptyCrateID))
	}
	if _, ok := mappingPairs(node); !ok {
		return fail(errors.New(ErrMsgCrateNotMapping))
	}

	data, err := nodeJSON(node)
	if err != nil {
		return fail(err)
	}
	if err := p.schemas.Validate(SchemaCrate, data); err != nil {
		return fail(err)
	}
	var raw rawCrate
	if err := json.Unmarshal(data, &raw); err != nil {
		return fail(err)
	}
	if err := p.validate.Struct(&raw); err != nil {
		return fail(err)
	}
	method, err := parseOpenMethod(raw.OpenMethod)
	if err != nil {
		return fail(err)
	}

	c := &domain.Crate{
		ID:                 id,
		Display:            strings.TrimSpace(rawID),
		Tier:               DefaultTier,
		Key:                raw.Key.toKeyDefinition(),
		OpenMethod:         method,
		Enabled:            true,
		Source:             source,
		CooldownSeconds:    raw.Cooldown,
		DailyLimit:         DefaultDailyLimit,
		RequiredPermission: raw.RequiredPermission,
		Pity:               raw.Pity.toPityConfig(),
		AvailableFrom:      parseDate(ctx, source, id, "available_from", raw.AvailableFrom),
		AvailableUntil:     parseDate(ctx, source, id, "available_until", raw.AvailableUntil),
	}
	if raw.Display != nil {
		c.Display = *raw.Display
	}
	if raw.Tier != "" {
		c.Tier = raw.Tier
	}
	if raw.Enabled != nil {
		c.Enabled = *raw.Enabled
	}
	if raw.DailyLimit != nil {
		c.DailyLimit = *raw.DailyLimit
	}

	entries, err := decodeOrdered(raw.Rewards)
	if err != nil {
		return fail(err)
	}
	var errs []*domain.ConfigurationError
	for i, entry := range entries {
		reward, err := p.parseReward(entry)
		if err != nil {
			errs = append(errs, configErr(source, id, i, err))
			continue
		}
		c.Rewards = append(c.Rewards, reward)
	}
	if len(c.Rewards) == 0 {
		logger.FromContext(ctx).Warn(LogMsgCrateWithoutReward, LogFieldSource, source, LogFieldCrateID, id)
	}
	return c, errs
}

func (p *Parser) parseReward(entry orderedEntry) (domain.Reward, error) {
	if err := p.schemas.Validate(SchemaReward, entry.Raw); err != nil {
		return domain.Reward{}, err
	}
	var raw rawReward
	if err := json.Unmarshal(entry.Raw, &raw); err != nil {
		return domain.Reward{}, err
	}
	if err := p.validate.Struct(&raw); err != nil {
		return domain.Reward{}, err
	}
	return raw.toReward(entry.Key), nil
}

// parseDate reads an availability bound; blank means absent, invalid is logged and treated as absent
func parseDate(ctx context.Context, source, crateID, field, value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	t, err := time.ParseInLocation(DateLayout, value, time.UTC)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgInvalidDate,
			LogFieldSource, source, LogFieldCrateID, crateID, LogFieldField, field, LogFieldValue, value)
		return nil
	}
	return &t
}

func configErr(source, crateID string, rewardIndex int, err error) *domain.ConfigurationError {
	return &domain.ConfigurationError{Source: source, CrateID: crateID, RewardIndex: rewardIndex, Err: err}
}
