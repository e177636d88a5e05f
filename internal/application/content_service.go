package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/agenticlearn/educator-portal/internal/domain/entity"
	repo "github.com/agenticlearn/educator-portal/internal/domain/repository"
	"github.com/agenticlearn/educator-portal/pkg/helpers"
)

var (
	ErrUploadDisabled = errors.New("content upload is not configured")
	ErrSearchDisabled = errors.New("content search is not configured")
)

// Uploader stores an object and returns its URL and size.
type Uploader func(ctx context.Context, objectPath, contentType string, r io.Reader) (string, int64, error)

// Indexer makes a content item searchable.
type Indexer interface {
	Index(ctx context.Context, id string, item entity.ContentItem) error
	Search(ctx context.Context, educatorID, q string) ([]map[string]any, error)
}

type ContentService struct {
	Records repo.RecordRepository
	Upload  Uploader
	Search  Indexer
	Logger  *logrus.Logger
	Now     func() time.Time
}

func NewContentService(records repo.RecordRepository, upload Uploader, search Indexer, logger *logrus.Logger) *ContentService {
	return &ContentService{Records: records, Upload: upload, Search: search, Logger: logger, Now: time.Now}
}

// GCSUploader uploads into bucket under content/.
func GCSUploader(client *storage.Client, bucket string) Uploader {
	if client == nil || bucket == "" {
		return nil
	}
	return func(ctx context.Context, objectPath, contentType string, r io.Reader) (string, int64, error) {
		return helpers.UploadObject(ctx, client, bucket, objectPath, contentType, r)
	}
}

// ESIndexer indexes content items into one Elasticsearch index.
type ESIndexer struct {
	Client    *elasticsearch.Client
	IndexName string
}

func NewESIndexer(es *elasticsearch.Client, index string) *ESIndexer {
	return &ESIndexer{Client: es, IndexName: index}
}

func (x *ESIndexer) Index(ctx context.Context, id string, item entity.ContentItem) error {
	return helpers.ESIndexJSON(ctx, x.Client, x.IndexName, id, item)
}

func (x *ESIndexer) Search(ctx context.Context, educatorID, q string) ([]map[string]any, error) {
	query := map[string]any{
		"size": 20,
		"query": map[string]any{
			"bool": map[string]any{
				"must": []any{
					map[string]any{"multi_match": map[string]any{
						"query":     q,
						"fields":    []string{"title^3", "tags^2", "file_format", "type"},
						"fuzziness": "AUTO",
					}},
				},
				"filter": []any{
					map[string]any{"term": map[string]any{"educator_id": educatorID}},
				},
			},
		},
	}
	return helpers.ESSearch(ctx, x.Client, x.IndexName, query)
}

// UploadInput describes one uploaded file.
type UploadInput struct {
	Title           string
	Type            string
	Tags            []string
	DurationMinutes *int
	FileName        string
	ContentType     string
	Body            io.Reader
}

// UploadContent stores the file, records it in the library and indexes it.
// Indexing failures are logged, not returned.
func (s *ContentService) UploadContent(ctx context.Context, educatorID string, in UploadInput) (entity.ContentItem, error) {
	if s.Upload == nil {
		return entity.ContentItem{}, ErrUploadDisabled
	}
	ext := strings.ToLower(filepath.Ext(in.FileName))
	objectPath := fmt.Sprintf("content/%s/%s%s", educatorID, uuid.NewString(), ext)
	url, size, err := s.Upload(ctx, objectPath, in.ContentType, in.Body)
	if err != nil {
		return entity.ContentItem{}, fmt.Errorf("upload %s: %w", in.FileName, err)
	}

	now := s.Now().UTC()
	item := entity.ContentItem{
		EducatorID:      educatorID,
		Title:           in.Title,
		Type:            in.Type,
		DurationMinutes: in.DurationMinutes,
		FileSizeMB:      float64(size) / (1024 * 1024),
		FileFormat:      strings.ToUpper(strings.TrimPrefix(ext, ".")),
		FileURL:         url,
		Tags:            in.Tags,
		Status:          "published",
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	id, err := s.Records.Insert(ctx, repo.CollectionContentLibrary, item)
	if err != nil {
		return entity.ContentItem{}, err
	}
	item.ID = id

	if s.Search != nil {
		if err := s.Search.Index(ctx, id, item); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("content_id", id).Warn("index content failed")
		}
	}
	return item, nil
}

func (s *ContentService) SearchContent(ctx context.Context, educatorID, q string) ([]map[string]any, error) {
	if s.Search == nil {
		return nil, ErrSearchDisabled
	}
	return s.Search.Search(ctx, educatorID, q)
}
