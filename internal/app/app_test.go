package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"

	"github.com/glabrego/pokedex-cli/internal/pokeapi"
	"github.com/glabrego/pokedex-cli/internal/pokedex"
	"github.com/glabrego/pokedex-cli/internal/storage"
)

type fakeClient struct {
	resources []pokeapi.Resource
	details   map[string]pokeapi.Pokemon
	listErr   error
	failURL   string
	delay     time.Duration

	mu        sync.Mutex
	listCalls int
	inFlight  int32
	maxFlight int32
}

func (f *fakeClient) ListPokemon(_ context.Context, limit int) ([]pokeapi.Resource, error) {
	f.mu.Lock()
	f.listCalls++
	f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	if limit < len(f.resources) {
		return f.resources[:limit], nil
	}
	return f.resources, nil
}

func (f *fakeClient) GetPokemon(ctx context.Context, detailURL string) (pokeapi.Pokemon, error) {
	n := atomic.AddInt32(&f.inFlight, 1)
	defer atomic.AddInt32(&f.inFlight, -1)
	for {
		peak := atomic.LoadInt32(&f.maxFlight)
		if n <= peak || atomic.CompareAndSwapInt32(&f.maxFlight, peak, n) {
			break
		}
	}

	if detailURL == f.failURL {
		return pokeapi.Pokemon{}, errors.New("boom")
	}
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return pokeapi.Pokemon{}, ctx.Err()
		}
	}
	p, ok := f.details[detailURL]
	if !ok {
		return pokeapi.Pokemon{}, fmt.Errorf("unknown url %s", detailURL)
	}
	return p, nil
}

type fakeRepo struct {
	saved   []pokedex.Record
	saves   int
	saveErr error
	listErr error
}

func (f *fakeRepo) SaveRecords(_ context.Context, records []pokedex.Record) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves++
	f.saved = append([]pokedex.Record(nil), records...)
	return nil
}

func (f *fakeRepo) ListRecords(context.Context) ([]pokedex.Record, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]pokedex.Record(nil), f.saved...), nil
}

func sprite(s string) *string { return &s }

func newFakeClient(n int) *fakeClient {
	f := &fakeClient{details: make(map[string]pokeapi.Pokemon, n)}
	for i := 1; i <= n; i++ {
		url := fmt.Sprintf("https://pokeapi.test/pokemon/%d/", i)
		name := fmt.Sprintf("mon-%d", i)
		f.resources = append(f.resources, pokeapi.Resource{Name: name, URL: url})
		f.details[url] = pokeapi.Pokemon{
			ID:      i,
			Name:    name,
			Sprites: pokeapi.Sprites{FrontDefault: sprite(fmt.Sprintf("https://img.test/%d.png", i))},
			Types:   []pokeapi.TypeSlot{{Slot: 1, Type: pokeapi.Resource{Name: "normal"}}},
			Stats:   []pokeapi.StatEntry{{BaseStat: 10 * i, Stat: pokeapi.Resource{Name: "hp"}}},
		}
	}
	return f
}

func TestService_Load_FetchesDetailsInListOrder(t *testing.T) {
	client := newFakeClient(12)
	repo := &fakeRepo{}

	svc := NewService(client, repo, WithFetchConcurrency(4))
	records, err := svc.Load(context.Background(), 12)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if len(records) != 12 {
		t.Fatalf("expected 12 records, got %d", len(records))
	}
	for i, r := range records {
		if r.ID != i+1 {
			t.Fatalf("record %d out of order: id=%d", i, r.ID)
		}
	}
	if repo.saves != 1 {
		t.Fatalf("expected one save, got %d", repo.saves)
	}
	if got := atomic.LoadInt32(&client.maxFlight); got > 4 {
		t.Fatalf("expected at most 4 detail requests in flight, saw %d", got)
	}
}

func TestService_Load_PopulatesOnlyOnce(t *testing.T) {
	client := newFakeClient(3)
	repo := &fakeRepo{}
	svc := NewService(client, repo)

	if _, err := svc.Load(context.Background(), 3); err != nil {
		t.Fatalf("first Load returned error: %v", err)
	}
	second, err := svc.Load(context.Background(), 3)
	if err != nil {
		t.Fatalf("second Load returned error: %v", err)
	}
	if len(second) != 3 {
		t.Fatalf("expected stored records, got %d", len(second))
	}
	if client.listCalls != 1 || repo.saves != 1 {
		t.Fatalf("expected a single fetch and save, got listCalls=%d saves=%d", client.listCalls, repo.saves)
	}
}

func TestService_Load_ListErrorFailsWhole(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(&fakeClient{listErr: errors.New("offline")}, repo)

	_, err := svc.Load(context.Background(), 10)
	if err == nil || !strings.Contains(err.Error(), "fetch pokemon list") {
		t.Fatalf("expected list error, got %v", err)
	}
	if repo.saves != 0 {
		t.Fatalf("expected nothing saved, got %d saves", repo.saves)
	}
}

func TestService_Load_DetailErrorFailsFast(t *testing.T) {
	defer goleak.VerifyNone(t)

	client := newFakeClient(20)
	client.failURL = client.resources[3].URL
	client.delay = 200 * time.Millisecond
	repo := &fakeRepo{}

	svc := NewService(client, repo, WithFetchConcurrency(20))
	start := time.Now()
	records, err := svc.Load(context.Background(), 20)
	if err == nil {
		t.Fatal("expected detail error")
	}
	if records != nil {
		t.Fatalf("expected no partial result, got %d records", len(records))
	}
	if !strings.Contains(err.Error(), `fetch pokemon "mon-4"`) {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 150*time.Millisecond {
		t.Fatalf("expected siblings to be cancelled, load took %s", elapsed)
	}
	if repo.saves != 0 {
		t.Fatalf("expected nothing saved, got %d saves", repo.saves)
	}
}

func TestService_Load_RetryAfterFailureFetchesAgain(t *testing.T) {
	client := newFakeClient(2)
	client.listErr = errors.New("offline")
	repo := &fakeRepo{}
	svc := NewService(client, repo)

	if _, err := svc.Load(context.Background(), 2); err == nil {
		t.Fatal("expected first load to fail")
	}
	client.listErr = nil
	records, err := svc.Load(context.Background(), 2)
	if err != nil {
		t.Fatalf("second Load returned error: %v", err)
	}
	if len(records) != 2 || client.listCalls != 2 {
		t.Fatalf("unexpected retry outcome: records=%d listCalls=%d", len(records), client.listCalls)
	}
}

func TestService_Load_PropagatesStoreErrors(t *testing.T) {
	svc := NewService(newFakeClient(1), &fakeRepo{listErr: errors.New("disk")})
	if _, err := svc.Load(context.Background(), 1); err == nil || !strings.Contains(err.Error(), "session store") {
		t.Fatalf("expected store error, got %v", err)
	}

	svc = NewService(newFakeClient(1), &fakeRepo{saveErr: errors.New("full")})
	if _, err := svc.Load(context.Background(), 1); err == nil || !strings.Contains(err.Error(), "save records") {
		t.Fatalf("expected save error, got %v", err)
	}
}

func TestToRecord_MapsDetailPayload(t *testing.T) {
	got := toRecord(pokeapi.Pokemon{
		ID:      6,
		Name:    "charizard",
		Sprites: pokeapi.Sprites{FrontDefault: sprite("https://img.test/6.png")},
		Types: []pokeapi.TypeSlot{
			{Slot: 1, Type: pokeapi.Resource{Name: "fire"}},
			{Slot: 2, Type: pokeapi.Resource{Name: "flying"}},
			{Slot: 3, Type: pokeapi.Resource{Name: "fire"}},
		},
		Stats: []pokeapi.StatEntry{
			{BaseStat: 78, Stat: pokeapi.Resource{Name: "hp"}},
			{BaseStat: 100, Stat: pokeapi.Resource{Name: "speed"}},
		},
	})

	want := pokedex.Record{
		ID:         6,
		Name:       "charizard",
		AvatarURL:  "https://img.test/6.png",
		Categories: []string{"fire", "flying"},
		Stats:      []pokedex.Stat{{Name: "hp", Value: 78}, {Name: "speed", Value: 100}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("toRecord mismatch (-want +got):\n%s", diff)
	}
}

func TestToRecord_NullSprite(t *testing.T) {
	if got := toRecord(pokeapi.Pokemon{Name: "missingno"}); got.AvatarURL != "" {
		t.Fatalf("expected empty avatar, got %q", got.AvatarURL)
	}
}

func TestService_Load_EndToEndWithHTTPAndSQLite(t *testing.T) {
	var ts *httptest.Server
	ts = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/pokemon":
			fmt.Fprintf(w, `{"results":[{"name":"pikachu","url":"%[1]s/pokemon/25/"},{"name":"squirtle","url":"%[1]s/pokemon/7/"}]}`, ts.URL)
		case "/pokemon/25/":
			_, _ = w.Write([]byte(`{"id":25,"name":"pikachu","sprites":{"front_default":"https://img.test/25.png"},"types":[{"slot":1,"type":{"name":"electric"}}],"stats":[{"base_stat":35,"stat":{"name":"hp"}}]}`))
		case "/pokemon/7/":
			_, _ = w.Write([]byte(`{"id":7,"name":"squirtle","sprites":{"front_default":null},"types":[{"slot":1,"type":{"name":"water"}}],"stats":[{"base_stat":44,"stat":{"name":"hp"}}]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer ts.Close()

	repo, err := storage.NewRepository(storage.MemoryPath)
	if err != nil {
		t.Fatalf("NewRepository returned error: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	ctx := context.Background()
	if err := repo.Init(ctx); err != nil {
		t.Fatalf("Init returned error: %v", err)
	}

	svc := NewService(pokeapi.NewClient(ts.URL, 0, ts.Client()), repo)
	records, err := svc.Load(ctx, 2)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	want := []pokedex.Record{
		{ID: 25, Name: "pikachu", AvatarURL: "https://img.test/25.png", Categories: []string{"electric"}, Stats: []pokedex.Stat{{Name: "hp", Value: 35}}},
		{ID: 7, Name: "squirtle", Categories: []string{"water"}, Stats: []pokedex.Stat{{Name: "hp", Value: 44}}},
	}
	if diff := cmp.Diff(want, records); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}
}
