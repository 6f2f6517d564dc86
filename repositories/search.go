package repositories

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"connect-chat/domain"

	"github.com/abadojack/whatlanggo"
	"github.com/blugelabs/bluge"
	"github.com/blugelabs/bluge/index"
)

// SearchIndex makes stored message text searchable per contact. Indexed
// documents carry the detected language so mixed-language transcripts can
// be filtered downstream.
type SearchIndex struct {
	writer   *bluge.Writer
	log      *slog.Logger
	pageSize int

	mu    sync.Mutex
	batch *index.Batch
}

func NewSearchIndex(writer *bluge.Writer, log *slog.Logger, pageSize int) *SearchIndex {
	return &SearchIndex{
		writer:   writer,
		log:      log,
		pageSize: pageSize,
		batch:    bluge.NewBatch(),
	}
}

// Index queues one item for indexing. Only messages carry searchable text;
// everything else is skipped. Call Flush to make queued items visible.
func (s *SearchIndex) Index(item domain.TranscriptItem) error {
	if item.Kind != domain.KindMessage || item.Content == "" {
		return nil
	}

	info := whatlanggo.Detect(item.Content)
	lang := info.Lang.Iso6391()

	doc := bluge.NewDocument(item.ID).
		AddField(bluge.NewTextField("content", item.Content).StoreValue()).
		AddField(bluge.NewKeywordField("contact", item.ContactID).StoreValue()).
		AddField(bluge.NewKeywordField("lang", lang).StoreValue()).
		AddField(bluge.NewKeywordField("role", string(item.Role))).
		AddField(bluge.NewDateTimeField("at", item.AbsoluteTime))

	s.mu.Lock()
	s.batch.Update(doc.ID(), doc)
	s.mu.Unlock()
	return nil
}

// Flush executes the pending batch.
func (s *SearchIndex) Flush() error {
	s.mu.Lock()
	batch := s.batch
	s.batch = bluge.NewBatch()
	s.mu.Unlock()

	if err := s.writer.Batch(batch); err != nil {
		return fmt.Errorf("search batch: %w", err)
	}
	return nil
}

// Search runs a paginated full-text query scoped to one contact.
func (s *SearchIndex) Search(ctx context.Context, query, contactID string, page int) ([]domain.SearchHit, uint64, error) {
	reader, err := s.writer.Reader()
	if err != nil {
		return nil, 0, fmt.Errorf("search reader: %w", err)
	}
	defer func() { _ = reader.Close() }()

	q := bluge.NewBooleanQuery().
		AddMust(bluge.NewMatchQuery(query).SetField("content")).
		AddMust(bluge.NewTermQuery(contactID).SetField("contact"))

	request := bluge.NewTopNSearch(s.pageSize, q).
		SetFrom(page * s.pageSize).
		WithStandardAggregations()

	matches, err := reader.Search(ctx, request)
	if err != nil {
		return nil, 0, fmt.Errorf("search: %w", err)
	}

	var hits []domain.SearchHit
	match, err := matches.Next()
	for err == nil && match != nil {
		hit := domain.SearchHit{}
		visitErr := match.VisitStoredFields(func(field string, value []byte) bool {
			switch field {
			case "_id":
				hit.ItemID = string(value)
			case "contact":
				hit.ContactID = string(value)
			case "lang":
				hit.Lang = string(value)
			}
			return true
		})
		if visitErr != nil {
			return nil, 0, visitErr
		}
		hits = append(hits, hit)
		match, err = matches.Next()
	}
	if err != nil {
		return nil, 0, fmt.Errorf("search iteration: %w", err)
	}

	return hits, matches.Aggregations().Count(), nil
}
