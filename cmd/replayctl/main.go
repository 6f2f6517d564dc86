// replayctl browses transcripts persisted by chatctl, without touching the
// network: it replays what the store and the search index already hold.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"connect-chat/domain"
	"connect-chat/repositories"

	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/mama165/sdk-go/logs"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
)

type Config struct {
	BadgerFilepath string `envconfig:"BADGER_FILEPATH" required:"true"`
	BlugeFilepath  string `envconfig:"BLUGE_FILEPATH" required:"true"`
	LogLevel       string `envconfig:"LOG_LEVEL" default:"INFO"`
	PageSize       int    `envconfig:"PAGE_SIZE" default:"50"`
	Colours        bool   `envconfig:"REPLAY_COLOURS" default:"true"`
}

func main() {
	contact := flag.String("contact", "", "contact ID to replay")
	query := flag.String("search", "", "full-text query instead of a linear replay")
	page := flag.Int("page", 0, "result page for -search")
	flag.Parse()

	_ = godotenv.Load()
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		log.Fatalf("Config error: %v", err)
	}
	if *contact == "" {
		log.Fatal("-contact is required")
	}

	logger := logs.GetLoggerFromString(config.LogLevel)

	// BypassLockGuard allows opening while chatctl holds the lock.
	opts := badger.DefaultOptions(config.BadgerFilepath).
		WithReadOnly(true).
		WithBypassLockGuard(true).
		WithLoggingLevel(badger.WARNING)

	db, err := badger.Open(opts)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if *query != "" {
		blugeWriter, err := bluge.OpenWriter(bluge.DefaultConfig(config.BlugeFilepath))
		if err != nil {
			log.Fatalf("Failed to open search index: %v", err)
		}
		defer blugeWriter.Close()

		index := repositories.NewSearchIndex(blugeWriter, logger, config.PageSize)
		hits, total, err := index.Search(context.Background(), *query, *contact, *page)
		if err != nil {
			log.Fatalf("Search failed: %v", err)
		}
		renderHits(config, *query, hits, total)
		return
	}

	repo := repositories.NewTranscriptRepository(db, logger, lo.ToPtr(config.PageSize))
	replay(config, repo, *contact)
}

// replay walks every stored page in order and prints the full transcript.
func replay(config Config, repo *repositories.TranscriptRepository, contact string) {
	table := newTable([]string{"Time", "Kind", "Role", "Participant", "Content"})

	var cursor []byte
	count := 0
	for {
		items, next, err := repo.GetItems(contact, cursor)
		if err != nil {
			log.Fatalf("Replay failed: %v", err)
		}
		for _, item := range items {
			table.Append([]string{
				item.AbsoluteTime.Format("2006-01-02 15:04:05"),
				string(item.Kind),
				string(item.Role),
				item.DisplayName,
				item.Content,
			})
		}
		count += len(items)
		if next == nil {
			break
		}
		cursor = next
	}

	header(config, fmt.Sprintf("Transcript %s (%d items)", contact, count))
	table.Render()
}

func renderHits(config Config, query string, hits []domain.SearchHit, total uint64) {
	header(config, fmt.Sprintf("%d hit(s) for %q", total, query))
	table := newTable([]string{"Item ID", "Contact", "Lang"})
	for _, hit := range hits {
		table.Append([]string{hit.ItemID, hit.ContactID, hit.Lang})
	}
	table.Render()
}

func header(config Config, text string) {
	if config.Colours {
		text = color.New(color.BgBlack, color.FgGreen).Render(text)
	}
	fmt.Println(text)
}

func newTable(head []string) *tablewriter.Table {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(head)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	return table
}
