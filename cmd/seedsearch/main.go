// Command seedsearch loads a CSV dataset and indexes each record's
// normalized given+surname text into Meilisearch, building the index that
// internal/search.Enricher queries for no_address blocking-bucket review.
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/meilisearch/meilisearch-go"
	"github.com/spf13/viper"

	"github.com/ClaudioLutz/dublettenbereinigung/internal/ingest"
	"github.com/ClaudioLutz/dublettenbereinigung/internal/normalize"
)

// searchDoc is the flat document shape indexed per record: just enough for
// Meilisearch to rank name-text similarity, nothing from the postal
// address (that side already has deterministic blocking).
type searchDoc struct {
	RecordID int    `json:"record_id"`
	Text     string `json:"text"`
}

func main() {
	viper.SetDefault("input", "input.csv")
	viper.SetDefault("meilisearch.host", "http://localhost:7700")
	viper.SetDefault("meilisearch.api_key", "")
	viper.SetDefault("meilisearch.index", "dedupe_names")
	viper.SetEnvPrefix("dedupe")
	viper.AutomaticEnv()

	f, err := os.Open(viper.GetString("input"))
	if err != nil {
		log.Fatalf("cannot open input: %v", err)
	}
	records, err := ingest.CSV(f)
	f.Close()
	if err != nil {
		log.Fatalf("cannot read input csv: %v", err)
	}

	normalized := normalize.Records(records)

	client := meilisearch.New(viper.GetString("meilisearch.host"), meilisearch.WithAPIKey(viper.GetString("meilisearch.api_key")))
	if _, err := client.Health(); err != nil {
		log.Fatalf("cannot connect to meilisearch: %v", err)
	}

	indexName := viper.GetString("meilisearch.index")
	index := client.Index(indexName)

	settings := &meilisearch.Settings{
		SearchableAttributes: []string{"text"},
		FilterableAttributes: []string{"record_id"},
	}
	task, err := index.UpdateSettings(settings)
	if err != nil {
		log.Fatalf("cannot update index settings: %v", err)
	}
	waitForTask(client, task.TaskUID)

	const batchSize = 1000
	docs := make([]interface{}, 0, batchSize)
	total := 0
	for _, n := range normalized {
		text := n.GivenName + " " + n.Surname
		docs = append(docs, searchDoc{RecordID: n.ID, Text: text})

		if len(docs) >= batchSize {
			addTask, err := index.AddDocuments(docs, "record_id")
			if err != nil {
				log.Fatalf("cannot add documents: %v", err)
			}
			waitForTask(client, addTask.TaskUID)
			total += len(docs)
			fmt.Printf("indexed %d records...\n", total)
			docs = docs[:0]
		}
	}
	if len(docs) > 0 {
		addTask, err := index.AddDocuments(docs, "record_id")
		if err != nil {
			log.Fatalf("cannot add documents: %v", err)
		}
		waitForTask(client, addTask.TaskUID)
		total += len(docs)
	}

	fmt.Printf("done: indexed %d records into %q\n", total, indexName)
}

func waitForTask(client meilisearch.ServiceManager, taskUID int64) {
	for {
		info, err := client.GetTask(taskUID)
		if err != nil {
			log.Fatalf("cannot check task status: %v", err)
		}
		switch info.Status {
		case "succeeded":
			return
		case "failed":
			log.Fatalf("meilisearch task failed: %v", info.Error)
		}
		time.Sleep(500 * time.Millisecond)
	}
}
