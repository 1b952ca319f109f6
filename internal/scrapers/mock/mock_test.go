package mock

import (
	"context"
	"testing"

	"progmap/lib/telemetry"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestFixtureCatalogues(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/mock")
	defer cleanup()

	hku, err := NewHKU().Scrape(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	require.Len(t, hku, 5)

	cuhk, err := NewCUHK().Scrape(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	require.Len(t, cuhk, 3)

	for _, programme := range append(hku, cuhk...) {
		require.NotEmpty(t, programme.Abbr)
		require.NotEmpty(t, programme.University)
		require.NotEmpty(t, programme.Title)
		require.NotEmpty(t, programme.Link)
		require.False(t, programme.StructurallyEmpty())
	}
}

func TestDeterministicOutput(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/mock")
	defer cleanup()

	s := NewHKU()
	first, err := s.Scrape(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.Scrape(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("repeated scrapes differ (-first +second):\n%s", diff)
	}

	// callers may mutate what they get back without poisoning later runs
	first[0].Title = "changed"
	third, err := s.Scrape(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(second, third); diff != "" {
		t.Fatalf("scrape after caller mutation differs (-second +third):\n%s", diff)
	}
}
