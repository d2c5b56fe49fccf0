package app

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/glabrego/pokedex-cli/internal/logging"
	"github.com/glabrego/pokedex-cli/internal/pokeapi"
	"github.com/glabrego/pokedex-cli/internal/pokedex"
)

const DefaultFetchConcurrency = 16

type PokeAPIClient interface {
	ListPokemon(ctx context.Context, limit int) ([]pokeapi.Resource, error)
	GetPokemon(ctx context.Context, detailURL string) (pokeapi.Pokemon, error)
}

type Repository interface {
	SaveRecords(ctx context.Context, records []pokedex.Record) error
	ListRecords(ctx context.Context) ([]pokedex.Record, error)
}

type Service struct {
	client      PokeAPIClient
	repo        Repository
	logger      *log.Logger
	concurrency int
}

type Option func(*Service)

func WithLogger(logger *log.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithFetchConcurrency caps how many detail requests are in flight at once.
func WithFetchConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

func NewService(client PokeAPIClient, repo Repository, opts ...Option) *Service {
	s := &Service{
		client:      client,
		repo:        repo,
		logger:      logging.Discard(),
		concurrency: DefaultFetchConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load returns the session's record set, fetching it on first use. Once a
// load has been stored, later calls return the stored set without touching
// the network. A failed load stores nothing.
func (s *Service) Load(ctx context.Context, limit int) ([]pokedex.Record, error) {
	cached, err := s.repo.ListRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("load records from session store: %w", err)
	}
	if len(cached) > 0 {
		s.logger.Debug("records already loaded", "count", len(cached))
		return cached, nil
	}

	start := time.Now()
	records, err := s.fetchRecords(ctx, limit)
	if err != nil {
		s.logger.Error("load failed", "err", err, "duration", time.Since(start))
		return nil, err
	}

	if err := s.repo.SaveRecords(ctx, records); err != nil {
		return nil, fmt.Errorf("save records to session store: %w", err)
	}
	s.logger.Info("records loaded", "count", len(records), "duration", time.Since(start))

	stored, err := s.repo.ListRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("load records from session store: %w", err)
	}
	return stored, nil
}

// fetchRecords lists limit handles and resolves every detail concurrently.
// The first failing detail cancels the rest and fails the whole batch.
func (s *Service) fetchRecords(ctx context.Context, limit int) ([]pokedex.Record, error) {
	resources, err := s.client.ListPokemon(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("fetch pokemon list: %w", err)
	}
	s.logger.Info("pokemon list fetched", "count", len(resources), "limit", limit)

	records := make([]pokedex.Record, len(resources))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, res := range resources {
		g.Go(func() error {
			p, err := s.client.GetPokemon(gctx, res.URL)
			if err != nil {
				s.logger.Debug("detail fetch failed", "name", res.Name, "err", err)
				return fmt.Errorf("fetch pokemon %q: %w", res.Name, err)
			}
			records[i] = toRecord(p)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}

func toRecord(p pokeapi.Pokemon) pokedex.Record {
	record := pokedex.Record{
		ID:         p.ID,
		Name:       p.Name,
		Categories: make([]string, 0, len(p.Types)),
		Stats:      make([]pokedex.Stat, 0, len(p.Stats)),
	}
	if p.Sprites.FrontDefault != nil {
		record.AvatarURL = *p.Sprites.FrontDefault
	}

	seen := make(map[string]struct{}, len(p.Types))
	for _, slot := range p.Types {
		name := slot.Type.Name
		if _, ok := seen[name]; ok || name == "" {
			continue
		}
		seen[name] = struct{}{}
		record.Categories = append(record.Categories, name)
	}

	for _, st := range p.Stats {
		record.Stats = append(record.Stats, pokedex.Stat{Name: st.Stat.Name, Value: st.BaseStat})
	}
	return record
}
