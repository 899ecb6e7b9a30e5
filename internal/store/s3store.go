package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sirupsen/logrus"

	"github.com/discline/pdga-fantasy-mcp-server/internal/league"
)

// S3Config selects the bucket the documents live in. Credentials come from
// the environment (AWS_ACCESS_KEY_ID / AWS_SECRET_ACCESS_KEY), never from
// the config file.
type S3Config struct {
	Bucket   string
	Prefix   string
	Region   string
	Endpoint string
}

// S3Store keeps the season documents as objects in an S3-compatible bucket.
// A custom endpoint makes it work against R2.
type S3Store struct {
	client *s3.Client
	bucket string
	prefix string
	logger *logrus.Logger
}

// NewS3Store builds the AWS client and the store.
func NewS3Store(ctx context.Context, cfg S3Config, logger *logrus.Logger) (*S3Store, error) {
	accessKeyID := os.Getenv("AWS_ACCESS_KEY_ID")
	accessKeySecret := os.Getenv("AWS_SECRET_ACCESS_KEY")
	if accessKeyID == "" || accessKeySecret == "" {
		return nil, fmt.Errorf("s3 storage needs AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY in the environment")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 storage needs a bucket name")
	}

	region := cfg.Region
	if region == "" {
		region = "auto"
	}

	loadOpts := []func(*config.LoadOptions) error{
		config.WithRegion(region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			accessKeyID, accessKeySecret, "",
		)),
	}
	if cfg.Endpoint != "" {
		endpoint := cfg.Endpoint
		loadOpts = append(loadOpts, config.WithEndpointResolver(aws.EndpointResolverFunc(
			func(service, region string) (aws.Endpoint, error) {
				return aws.Endpoint{URL: endpoint}, nil
			}),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load s3 config: %w", err)
	}

	return &S3Store{
		client: s3.NewFromConfig(awsCfg),
		bucket: cfg.Bucket,
		prefix: cfg.Prefix,
		logger: logger,
	}, nil
}

func (s *S3Store) objectKey(key string) string {
	if s.prefix == "" {
		return key
	}
	return path.Join(s.prefix, key)
}

func (s *S3Store) getJSON(ctx context.Context, key string, target interface{}) error {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(key)),
	})
	if err != nil {
		return &StoreError{Op: "load", Key: key, Err: err}
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return &StoreError{Op: "load", Key: key, Err: err}
	}
	if err := json.Unmarshal(data, target); err != nil {
		return &StoreError{Op: "load", Key: key, Err: err}
	}

	s.logger.WithField("key", s.objectKey(key)).Debug("Loaded document from S3")
	return nil
}

func (s *S3Store) putJSON(ctx context.Context, key string, doc interface{}) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return &StoreError{Op: "save", Key: key, Err: err}
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.objectKey(key)),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return &StoreError{Op: "save", Key: key, Err: err}
	}

	s.logger.WithField("key", s.objectKey(key)).Debug("Saved document to S3")
	return nil
}

func (s *S3Store) LoadRosters(ctx context.Context) (*league.Rosters, error) {
	var rosters league.Rosters
	if err := s.getJSON(ctx, RostersKey, &rosters); err != nil {
		return nil, err
	}
	return &rosters, nil
}

func (s *S3Store) LoadStandings(ctx context.Context) (*league.Standings, error) {
	var standings league.Standings
	if err := s.getJSON(ctx, StandingsKey, &standings); err != nil {
		return nil, err
	}
	return &standings, nil
}

func (s *S3Store) LoadHistory(ctx context.Context) (*league.History, error) {
	var history league.History
	if err := s.getJSON(ctx, HistoryKey, &history); err != nil {
		return nil, err
	}
	return &history, nil
}

func (s *S3Store) LoadPlayerStats(ctx context.Context) (*league.PlayerStats, error) {
	var stats league.PlayerStats
	if err := s.getJSON(ctx, PlayerStatsKey, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *S3Store) SaveRosters(ctx context.Context, rosters *league.Rosters) error {
	return s.putJSON(ctx, RostersKey, rosters)
}

func (s *S3Store) SaveStandings(ctx context.Context, standings *league.Standings) error {
	return s.putJSON(ctx, StandingsKey, standings)
}

func (s *S3Store) SaveHistory(ctx context.Context, history *league.History) error {
	return s.putJSON(ctx, HistoryKey, history)
}

func (s *S3Store) SavePlayerStats(ctx context.Context, stats *league.PlayerStats) error {
	return s.putJSON(ctx, PlayerStatsKey, stats)
}
