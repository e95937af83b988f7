package wahis

import (
	"bytes"
	"context"
	"encoding/gob"
	"net/url"

	"github.com/PuerkitoBio/purell"
	"github.com/dgraph-io/badger/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// ErrNotCached is returned when a summary url has no cached id list.
var ErrNotCached = badger.ErrKeyNotFound

// SummaryCache remembers which report ids each summary page linked to,
// so re-runs of the crawl never refetch a summary page they already
// resolved.
type SummaryCache struct {
	db *badger.DB
}

func OpenSummaryCache(dir string) (*SummaryCache, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &SummaryCache{db: db}, nil
}

func (c *SummaryCache) Close() error {
	return c.db.Close()
}

func (c *SummaryCache) key(rawUrl string) (string, error) {
	parsed, err := url.Parse(rawUrl)
	if err != nil {
		return "", err
	}
	normalized := purell.NormalizeURL(
		parsed,
		purell.FlagsSafe|
			purell.FlagsUsuallySafeNonGreedy|
			purell.FlagRemoveFragment|
			purell.FlagSortQuery,
	)
	return "summary:" + normalized, nil
}

func (c *SummaryCache) Get(ctx context.Context, summaryUrl string) ([]string, error) {
	ctx, span := tracer.Start(ctx, "SummaryCache.Get")
	defer span.End()

	key, err := c.key(summaryUrl)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to create cache key")
		return nil, err
	}
	span.SetAttributes(attribute.String("cache_key", key))

	tx := c.db.NewTransaction(false)
	defer tx.Discard()

	item, err := tx.Get([]byte(key))
	if err == badger.ErrKeyNotFound {
		return nil, ErrNotCached
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to read item from badger")
		return nil, err
	}
	serialized, err := item.ValueCopy(nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to copy cached item")
		return nil, err
	}

	var ids []string
	err = gob.NewDecoder(bytes.NewBuffer(serialized)).Decode(&ids)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to deserialize cached item")
		return nil, err
	}

	span.SetAttributes(attribute.Int("report_ids", len(ids)))
	return ids, nil
}

func (c *SummaryCache) Put(ctx context.Context, summaryUrl string, reportIDs []string) error {
	ctx, span := tracer.Start(ctx, "SummaryCache.Put")
	defer span.End()

	key, err := c.key(summaryUrl)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to create cache key")
		return err
	}
	span.SetAttributes(attribute.String("cache_key", key))

	serialized := bytes.NewBuffer(nil)
	err = gob.NewEncoder(serialized).Encode(reportIDs)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to serialize report id list")
		return err
	}

	tx := c.db.NewTransaction(true)
	defer tx.Discard()

	err = tx.Set([]byte(key), serialized.Bytes())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to set badger item")
		return err
	}

	err = tx.Commit()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to commit badger transaction")
		return err
	}
	return nil
}
