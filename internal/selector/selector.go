// Package selector turns per-category candidate lists into at most one
// publication per run, keeping the persisted history consistent with what
// actually went out.
package selector

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/Migueldelg/RadarOfertas/internal/catalog"
	"github.com/Migueldelg/RadarOfertas/internal/cooldown"
	"github.com/Migueldelg/RadarOfertas/internal/deal"
	"github.com/Migueldelg/RadarOfertas/internal/globaltime"
	"github.com/Migueldelg/RadarOfertas/internal/history"
	"github.com/Migueldelg/RadarOfertas/internal/rank"
	"github.com/Migueldelg/RadarOfertas/internal/textnorm"
	"github.com/Migueldelg/RadarOfertas/internal/variants"
)

// Source produces the candidate products of one category. An error or an
// empty result skips the category; other categories still run.
type Source interface {
	Candidates(ctx context.Context, cat catalog.Category) ([]deal.Product, error)
}

// Notifier delivers the chosen product. ok=false with a nil error is a soft
// failure: nothing is committed and the candidate may win again next run. A
// non-nil error means the notifier cannot deliver at all and propagates so
// operational tooling can alert.
type Notifier interface {
	Publish(ctx context.Context, p deal.Product, cat catalog.Category) (ok bool, err error)
}

// Options carries the deployment knobs the orchestrator needs. Everything
// that used to be a module-level global travels here.
type Options struct {
	// Threshold for near-duplicate-title detection, default 0.5.
	Threshold float64
	// StopWords for title normalization; empty uses the built-in list.
	StopWords []string
	// VariantVocabulary for the grouper; empty uses the built-in list.
	VariantVocabulary []string
	// Brands ranked above equals without a priority brand.
	Brands []string
	// RepeatExempt names categories free to repeat back to back.
	RepeatExempt []string
	// ClassCooldowns keys class tag to its cooldown.
	ClassCooldowns map[string]time.Duration
	// GlobalCooldown blocks every run inside the window; zero disables.
	GlobalCooldown time.Duration
	// OnPublish, when set, observes each committed publication.
	OnPublish func(p deal.Product, cat catalog.Category, at time.Time)
}

// Selector is the per-run orchestrator. One Run call consumes one history
// snapshot and produces at most one publication.
type Selector struct {
	source    Source
	notifier  Notifier
	store     history.Store
	cats      []catalog.Category
	matcher   *textnorm.Matcher
	grouper   *variants.Grouper
	gate      cooldown.Gate
	brands    []string
	exempt    map[string]struct{}
	onPublish func(deal.Product, catalog.Category, time.Time)
	logger    zerolog.Logger
}

// nominee is a category's best surviving candidate.
type nominee struct {
	product  deal.Product
	category catalog.Category
	// siblings holds the ASINs merged into this nominee by the grouper,
	// representative included.
	siblings []string
}

func New(source Source, notifier Notifier, store history.Store, cats []catalog.Category, opts Options, logger zerolog.Logger) *Selector {
	norm := textnorm.NewNormalizer(opts.StopWords)
	exempt := make(map[string]struct{}, len(opts.RepeatExempt))
	for _, name := range opts.RepeatExempt {
		exempt[name] = struct{}{}
	}
	return &Selector{
		source:    source,
		notifier:  notifier,
		store:     store,
		cats:      cats,
		matcher:   textnorm.NewMatcher(norm, opts.Threshold),
		grouper:   variants.NewGrouper(norm, opts.VariantVocabulary),
		gate:      cooldown.New(opts.ClassCooldowns, opts.GlobalCooldown),
		brands:    opts.Brands,
		exempt:    exempt,
		onPublish: opts.OnPublish,
		logger:    logger,
	}
}

// Run executes one selection cycle and returns the number of publications,
// which is always zero or one. History is only mutated and persisted after
// a successful delivery.
func (s *Selector) Run(ctx context.Context) (int, error) {
	now := globaltime.Now()
	state := s.store.Load(now)

	if left, blocked := s.gate.GlobalRemaining(state, now); blocked {
		s.logger.Info().
			Dur("remaining", left).
			Msg("global cooldown active, skipping the whole cycle")
		return 0, nil
	}

	if len(state.RecentCategories) > 0 {
		s.logger.Info().
			Strs("categories", state.RecentCategories).
			Msg("anti-repeat: recent categories will be avoided")
	}

	nominees := s.collectNominees(ctx, state, now)
	if len(nominees) == 0 {
		s.logger.Info().Msg("no new deals to publish this cycle")
		return 0, nil
	}

	nominees = s.groupVariants(nominees)
	s.sortGlobal(nominees)
	s.logShortlist(nominees, state)

	winner := s.pickWinner(nominees, state)

	ok, err := s.notifier.Publish(ctx, winner.product, winner.category)
	if err != nil {
		return 0, err
	}
	if !ok {
		s.logger.Error().
			Str("asin", winner.product.ASIN).
			Msg("delivery failed, nothing committed; candidate may retry next cycle")
		return 0, nil
	}

	s.commit(state, winner, now)
	return 1, nil
}

// collectNominees runs the per-category loop: gate, fetch, deal filter,
// rank, dedup scan.
func (s *Selector) collectNominees(ctx context.Context, state *history.State, now time.Time) []nominee {
	var nominees []nominee

	for _, cat := range s.cats {
		catLog := s.logger.With().Str("category", cat.Name).Logger()

		if left, blocked := s.gate.CategoryRemaining(state, cat, now); blocked {
			catLog.Info().
				Dur("remaining", left).
				Msg("skipped by cooldown")
			continue
		}

		products, err := s.source.Candidates(ctx, cat)
		if err != nil {
			catLog.Warn().Err(err).Msg("candidate fetch failed, skipping category")
			continue
		}

		offers := make([]deal.Product, 0, len(products))
		for _, p := range products {
			if p.HasDeal {
				offers = append(offers, p)
			}
		}
		catLog.Info().
			Int("scraped", len(products)).
			Int("with_deal", len(offers)).
			Msg("candidates fetched")
		if len(offers) == 0 {
			continue
		}

		rank.SortCandidates(offers, s.brands)

		chosen := s.firstEligible(offers, cat, state, catLog)
		if chosen == nil {
			catLog.Info().Msg("no eligible candidate: all discarded as duplicates or similar titles")
			continue
		}

		nominees = append(nominees, nominee{
			product:  *chosen,
			category: cat,
			siblings: []string{chosen.ASIN},
		})
	}

	return nominees
}

// firstEligible scans ranked offers and returns the first not blocked by
// the published-ASIN window or, for title-checked categories, by similarity
// to a recent title.
func (s *Selector) firstEligible(offers []deal.Product, cat catalog.Category, state *history.State, catLog zerolog.Logger) *deal.Product {
	for i := range offers {
		p := &offers[i]
		if state.IsPublished(p.ASIN) {
			catLog.Info().
				Str("asin", p.ASIN).
				Float64("discount", p.Discount).
				Msg("discarded: already published inside window")
			continue
		}
		if cat.CheckTitles && s.matcher.SimilarToAny(p.Title, state.RecentTitles) {
			catLog.Info().
				Str("asin", p.ASIN).
				Float64("discount", p.Discount).
				Msg("discarded: title similar to a recent publication")
			continue
		}
		catLog.Info().
			Str("asin", p.ASIN).
			Float64("discount", p.Discount).
			Int("ratings", p.Ratings).
			Int("brand_priority", rank.BrandPriority(p.Title, s.brands)).
			Msg("category nominee chosen")
		return p
	}
	return nil
}

// groupVariants merges cross-category nominees that are trims of the same
// product. The merged entry keeps the representative's category and all
// sibling ASINs, so publishing it blocks every trim.
func (s *Selector) groupVariants(nominees []nominee) []nominee {
	if len(nominees) < 2 {
		return nominees
	}

	products := make([]deal.Product, len(nominees))
	for i, n := range nominees {
		products[i] = n.product
	}

	merged := s.grouper.Merge(products)
	out := make([]nominee, 0, len(merged))
	for _, m := range merged {
		repIdx := m.Indexes[0]
		entry := nominee{
			product:  m.Product,
			category: nominees[repIdx].category,
		}
		for _, idx := range m.Indexes {
			entry.siblings = append(entry.siblings, nominees[idx].product.ASIN)
		}
		if len(m.Indexes) > 1 {
			s.logger.Info().
				Str("asin", m.Product.ASIN).
				Int("variants", len(m.Product.Variants)).
				Msg("merged variant trims into one entry")
		}
		out = append(out, entry)
	}
	return out
}

// sortGlobal re-sorts the shortlist with the global key; stability keeps
// the per-category order on ties.
func (s *Selector) sortGlobal(nominees []nominee) {
	sort.SliceStable(nominees, func(i, j int) bool {
		return rank.GlobalLess(nominees[j].product, nominees[i].product, s.brands)
	})
}

func (s *Selector) logShortlist(nominees []nominee, state *history.State) {
	for i, n := range nominees {
		s.logger.Info().
			Int("rank", i+1).
			Str("asin", n.product.ASIN).
			Str("category", n.category.Name).
			Float64("discount", n.product.Discount).
			Bool("recent_category", state.HasRecentCategory(n.category.Name)).
			Msg("global shortlist")
	}
}

// pickWinner walks the sorted shortlist and takes the first nominee whose
// category is not recent (or is exempt from the anti-repeat rule). When
// every category is recent the best-ranked nominee wins anyway.
func (s *Selector) pickWinner(nominees []nominee, state *history.State) nominee {
	for _, n := range nominees {
		if _, exempt := s.exempt[n.category.Name]; exempt || !state.HasRecentCategory(n.category.Name) {
			if n.product.ASIN != nominees[0].product.ASIN {
				s.logger.Info().
					Str("skipped_category", nominees[0].category.Name).
					Str("chosen_category", n.category.Name).
					Msg("anti-repeat: global #1 skipped, next valid category chosen")
			}
			return n
		}
	}

	s.logger.Info().
		Strs("recent", state.RecentCategories).
		Msg("every candidate category is recent, publishing the best anyway")
	return nominees[0]
}

// commit records the publication and persists the snapshot. Grouped sibling
// ASINs are all marked so no trim is re-offered under its own identity.
func (s *Selector) commit(state *history.State, winner nominee, now time.Time) {
	for _, asin := range winner.siblings {
		state.MarkPublished(asin, now)
	}
	state.PushCategory(winner.category.Name)
	if winner.category.CheckTitles {
		state.PushTitle(winner.product.Title)
	}
	if winner.category.WeeklyLimit {
		state.Touch(winner.category.Name, now)
	}
	if winner.category.Class != "" {
		state.Touch(history.ClassKey(winner.category.Class), now)
	}
	state.Touch(history.GlobalKey, now)

	if s.onPublish != nil {
		s.onPublish(winner.product, winner.category, now)
	}

	if err := s.store.Save(state); err != nil {
		s.logger.Error().Err(err).Msg("history save failed after publication")
		return
	}
	s.logger.Info().
		Str("asin", winner.product.ASIN).
		Str("category", winner.category.Name).
		Float64("discount", winner.product.Discount).
		Msg("publication committed")
}
