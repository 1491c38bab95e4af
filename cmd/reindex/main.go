// Command reindex rebuilds the full-text search index from the analyses
// table. Run it after restoring a database dump or when the index directory
// was lost; the server keeps the index current on its own during uploads.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"

	"github.com/amiralikarma0098/noortoos/internal/config"
	"github.com/amiralikarma0098/noortoos/internal/searchidx"
	"github.com/amiralikarma0098/noortoos/internal/store"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	indexPath := "data/search.bleve"
	if len(os.Args) > 1 {
		indexPath = os.Args[1]
	}
	if err := os.RemoveAll(indexPath); err != nil {
		log.Fatalf("پاک کردن ایندکس قبلی: %v", err)
	}

	st, err := store.Open(cfg.DSN())
	if err != nil {
		log.Fatalf("اتصال به دیتابیس برقرار نشد: %v", err)
	}
	defer st.Close()

	search, err := searchidx.Open(indexPath)
	if err != nil {
		log.Fatalf("ساخت ایندکس جستجو: %v", err)
	}
	defer search.Close()

	ctx := context.Background()
	summaries, err := st.ListAnalyses(ctx)
	if err != nil {
		log.Fatalf("خواندن تحلیل‌ها: %v", err)
	}

	start := time.Now()
	indexed := 0
	for _, summary := range summaries {
		rec, err := st.GetAnalysis(ctx, summary.ID)
		if err != nil {
			log.Printf("خواندن تحلیل %d: %v", summary.ID, err)
			continue
		}
		if rec == nil {
			continue
		}
		if err := search.Add(searchidx.Entry{
			ID:       rec.ID,
			FileName: rec.FileName,
			Seller:   rec.SellerName,
			Customer: rec.CustomerName,
			Product:  rec.Product,
			Summary:  rec.Summary,
		}); err != nil {
			log.Printf("ایندکس تحلیل %d: %v", rec.ID, err)
			continue
		}
		indexed++
	}

	fmt.Printf("%d از %d تحلیل در %v ایندکس شد\n", indexed, len(summaries), time.Since(start))
}
