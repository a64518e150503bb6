package mysteries

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/openmysteries/backend/internal/article"
	"github.com/openmysteries/backend/internal/cache"
	"github.com/openmysteries/backend/internal/catalog"
	"github.com/openmysteries/backend/internal/llm"
	pkgerrors "github.com/openmysteries/backend/internal/pkg/errors"
	"github.com/openmysteries/backend/internal/pkg/logger"
)

const generationTemperature = 0.7

// Service returns a valid document for a known topic, generating and caching
// it on first demand.
type Service interface {
	GetOrGenerate(ctx context.Context, topicID, style string) (article.Document, bool, error)
}

// Options tune the lock and polling behavior. Zero values pick the defaults.
type Options struct {
	CacheVersion string
	LockTTL      time.Duration
	PollInterval time.Duration
	PollAttempts int
}

func (o Options) withDefaults() Options {
	if o.CacheVersion == "" {
		o.CacheVersion = cache.Version
	}
	if o.LockTTL <= 0 {
		o.LockTTL = 60 * time.Second
	}
	if o.PollInterval <= 0 {
		o.PollInterval = time.Second
	}
	if o.PollAttempts <= 0 {
		o.PollAttempts = 12
	}
	return o
}

type service struct {
	log     *logger.Logger
	catalog *catalog.Catalog
	store   cache.Store
	backend llm.Backend
	repair  *llm.RepairAgent
	opts    Options
}

func NewService(log *logger.Logger, cat *catalog.Catalog, store cache.Store, backend llm.Backend, opts Options) Service {
	return &service{
		log:     log.With("service", "MysteryService"),
		catalog: cat,
		store:   store,
		backend: backend,
		repair:  llm.NewRepairAgent(log, backend),
		opts:    opts.withDefaults(),
	}
}

// GetOrGenerate runs the cache-aside pipeline: cache check, advisory lock,
// generation, sanitize/validate/evaluate with at most one repair cycle, cache
// write, lock release.
func (s *service) GetOrGenerate(ctx context.Context, topicID, style string) (article.Document, bool, error) {
	id := catalog.NormalizeID(topicID)
	style = llm.NormalizeStyle(style)

	// Unknown topics fail before any cache or lock access; this keeps the
	// pipeline from generating arbitrary content on demand.
	topic, ok := s.catalog.Get(id)
	if !ok {
		return article.Document{}, false, fmt.Errorf("%w: %q", pkgerrors.ErrUnknownTopic, topicID)
	}

	key := cache.Key(s.opts.CacheVersion, id, style)
	lockKey := cache.LockKey(s.opts.CacheVersion, id, style)

	doc, hit, err := s.store.GetDocument(ctx, key)
	if err != nil {
		return article.Document{}, false, err
	}
	if hit {
		return doc, true, nil
	}

	acquired, err := s.store.AcquireLock(ctx, lockKey, s.opts.LockTTL)
	if err != nil {
		return article.Document{}, false, err
	}
	if !acquired {
		// Another holder is generating. Poll the cache; if it never lands,
		// treat the holder as dead and generate anyway. Duplicate work beats
		// a stuck request.
		doc, hit, err = s.pollForResult(ctx, key)
		if err != nil {
			return article.Document{}, false, err
		}
		if hit {
			return doc, true, nil
		}
		s.log.Warn("lock contended but cache never filled, generating anyway",
			"topic", id, "style", style)
	}

	// From here on a generation attempt is underway; the lock slot is cleared
	// on every exit path. Its TTL bounds the worst case if we crash first.
	defer func() {
		relCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if relErr := s.store.ReleaseLock(relCtx, lockKey); relErr != nil {
			s.log.Warn("lock release failed", "key", lockKey, "error", relErr.Error())
		}
	}()

	genID := uuid.NewString()
	log := s.log.With("topic", id, "style", style, "generation_id", genID)
	log.Info("cache miss, generating article")

	doc, report, err := s.generate(ctx, topic, style, log)
	if err != nil {
		return article.Document{}, false, err
	}

	if err := s.store.SetDocument(ctx, key, doc); err != nil {
		return article.Document{}, false, err
	}
	log.Info("article generated and cached",
		"score", report.Score, "grade", report.Grade, "passed", report.Passed)

	return doc, false, nil
}

func (s *service) pollForResult(ctx context.Context, key string) (article.Document, bool, error) {
	for i := 0; i < s.opts.PollAttempts; i++ {
		timer := time.NewTimer(s.opts.PollInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return article.Document{}, false, ctx.Err()
		case <-timer.C:
		}
		doc, hit, err := s.store.GetDocument(ctx, key)
		if err != nil {
			return article.Document{}, false, err
		}
		if hit {
			return doc, true, nil
		}
	}
	return article.Document{}, false, nil
}

// generate runs backend call → sanitize → validate → evaluate, with exactly
// one repair cycle on quality failure. A repaired document is accepted for
// caching whether or not it finally passes; the residual quality gap is
// logged, not fatal.
func (s *service) generate(ctx context.Context, topic catalog.Topic, style string, log *logger.Logger) (article.Document, article.QualityReport, error) {
	text, err := s.backend.CompleteJSON(ctx, llm.GenerationSystemPrompt(), llm.GenerationUserPrompt(topic, style), generationTemperature)
	if err != nil {
		return article.Document{}, article.QualityReport{}, &article.GenerationError{
			Code:    article.CodeBackendFailed,
			Message: "backend call failed",
			Err:     err,
		}
	}
	raw, err := llm.DecodeObject(text)
	if err != nil {
		return article.Document{}, article.QualityReport{}, &article.GenerationError{
			Code:    article.CodeModelBadJSON,
			Message: "model did not return valid JSON",
			Err:     err,
		}
	}

	doc, report, err := s.refine(raw, topic, style)
	if err != nil {
		return article.Document{}, article.QualityReport{}, err
	}
	if report.Passed {
		return doc, report, nil
	}

	log.Warn("quality check failed, attempting one repair",
		"score", report.Score, "issues", len(report.Issues))

	repaired, err := s.repair.Repair(ctx, doc, report.Issues, topic.Summary(), llm.StyleInstruction(style))
	if err != nil {
		return article.Document{}, article.QualityReport{}, err
	}
	doc, report, err = s.refine(repaired, topic, style)
	if err != nil {
		return article.Document{}, article.QualityReport{}, err
	}
	if !report.Passed {
		log.Warn("still below quality bar after repair, caching best-effort document",
			"score", report.Score, "grade", report.Grade)
	}
	return doc, report, nil
}

// refine is the sanitize → validate → evaluate leg, shared by the first
// attempt and the repair retry.
func (s *service) refine(raw map[string]any, topic catalog.Topic, style string) (article.Document, article.QualityReport, error) {
	doc, err := article.Sanitize(raw, article.SanitizeOptions{
		TopicID:      topic.ID,
		TopicTitle:   topic.Title,
		Style:        style,
		Model:        s.backend.Model(),
		CacheVersion: s.opts.CacheVersion,
	})
	if err != nil {
		return article.Document{}, article.QualityReport{}, err
	}
	if err := article.Validate(doc); err != nil {
		return article.Document{}, article.QualityReport{}, err
	}
	return doc, article.EvaluateQuality(doc), nil
}
