// Pre-generates articles for catalog topics so first readers hit a warm
// cache. Already-cached entries are skipped; generation failures are reported
// and do not stop the run.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/openmysteries/backend/internal/cache"
	"github.com/openmysteries/backend/internal/catalog"
	"github.com/openmysteries/backend/internal/llm"
	"github.com/openmysteries/backend/internal/mysteries"
	"github.com/openmysteries/backend/internal/pkg/logger"
)

type idList []string

func (l *idList) String() string { return strings.Join(*l, ",") }
func (l *idList) Set(v string) error {
	v = strings.TrimSpace(v)
	if v != "" {
		*l = append(*l, v)
	}
	return nil
}

func main() {
	_ = godotenv.Load()

	var only idList
	var style string
	var dryRun bool
	flag.Var(&only, "topic", "topic id to pre-generate (repeatable; default all)")
	flag.StringVar(&style, "style", llm.StyleDefault, "style variant to pre-generate")
	flag.BoolVar(&dryRun, "dry-run", false, "list planned generations without calling the backend")
	flag.Parse()

	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	cat, err := catalog.Load()
	if err != nil {
		log.Fatal("load topic catalog", "error", err)
	}

	topics := cat.All()
	if len(only) > 0 {
		picked := topics[:0]
		for _, t := range topics {
			for _, id := range only {
				if t.ID == catalog.NormalizeID(id) {
					picked = append(picked, t)
					break
				}
			}
		}
		topics = picked
	}

	if dryRun {
		for _, t := range topics {
			fmt.Printf("would generate %s (style=%s)\n", t.ID, llm.NormalizeStyle(style))
		}
		return
	}

	store, err := cache.NewRedisStore(log)
	if err != nil {
		log.Fatal("init redis store", "error", err)
	}
	backend, err := llm.NewOpenAIBackend(log, llm.SettingsFromEnv())
	if err != nil {
		log.Fatal("init llm backend", "error", err)
	}
	svc := mysteries.NewService(log, cat, store, backend, mysteries.Options{})

	ctx := context.Background()
	generated, skipped, failed := 0, 0, 0
	for _, t := range topics {
		doc, fromCache, err := svc.GetOrGenerate(ctx, t.ID, style)
		if err != nil {
			log.Error("pre-generation failed", "topic", t.ID, "error", err)
			failed++
			continue
		}
		if fromCache {
			log.Info("already cached, skipping", "topic", t.ID)
			skipped++
			continue
		}
		log.Info("generated", "topic", t.ID, "sections", len(doc.Sections))
		generated++
	}

	log.Info("pre-generation run finished",
		"generated", generated, "skipped", skipped, "failed", failed)
	if failed > 0 {
		os.Exit(1)
	}
}
