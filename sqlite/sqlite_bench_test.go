package sqlite_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/fwojciec/ministry"
	"github.com/fwojciec/ministry/sqlite"
	"github.com/stretchr/testify/require"
)

// BenchmarkWriteDocument measures a full episode list save, the heaviest
// admin write.
func BenchmarkWriteDocument(b *testing.B) {
	for _, size := range []int{10, 100, 1000} {
		b.Run(fmt.Sprintf("episodes_%d", size), func(b *testing.B) {
			db := sqlite.NewDB(filepath.Join(b.TempDir(), "bench.db"))
			require.NoError(b, db.Open())
			defer db.Close()

			store := sqlite.NewDocumentStore(db)
			ctx := context.Background()

			episodes := make([]*ministry.Episode, size)
			for i := range episodes {
				episodes[i] = &ministry.Episode{
					Title:       fmt.Sprintf("Episode %d", i),
					Date:        "2024-01-01",
					Description: "A talk recorded for the ministry podcast.",
					AudioURL:    fmt.Sprintf("https://media.example/podcasts/%d.mp3", i),
				}
			}

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				// Vary one title so every write changes the row.
				episodes[0].Title = fmt.Sprintf("Episode 0 rev %d", i)
				if err := store.WriteDocument(ctx, ministry.EpisodesDocument, episodes); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
