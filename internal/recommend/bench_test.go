package recommend

import (
	"math/rand"
	"testing"

	"github.com/hyperjump/meshi/internal/catalog"
	"github.com/hyperjump/meshi/internal/filter"
)

func benchmarkRecommend(b *testing.B, size int) {
	r := rand.New(rand.NewSource(1))
	e := NewEngine(newStore(randomCatalog(r, size)...))
	var target filter.Target
	target.Set(catalog.Calories, 80)
	target.Set(catalog.Sugar, 60)
	q := &Query{Target: target, Ingredients: []string{"salt"}, K: 10}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := e.Recommend(q); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRecommend_1k(b *testing.B)  { benchmarkRecommend(b, 1000) }
func BenchmarkRecommend_10k(b *testing.B) { benchmarkRecommend(b, 10000) }
func BenchmarkRecommend_50k(b *testing.B) { benchmarkRecommend(b, 50000) }
