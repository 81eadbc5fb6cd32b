package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"

	"crosswarped.com/anagram/pkg/blobstore"
	"crosswarped.com/anagram/pkg/blobstore/minio"
	"crosswarped.com/anagram/pkg/blobstore/s3"
	"crosswarped.com/anagram/pkg/results"
)

var (
	awsConfigOnce sync.Once
	awsConfig     aws.Config
	awsConfigErr  error
)

func loadAWSConfig(ctx context.Context) (aws.Config, error) {
	awsConfigOnce.Do(func() {
		awsConfig, awsConfigErr = config.LoadDefaultConfig(ctx)
	})
	return awsConfig, awsConfigErr
}

// AWS clients are built through these so tests can swap in fakes.
var (
	newS3Client = func(ctx context.Context) (s3.Client, error) {
		cfg, err := loadAWSConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("loading aws config: %w", err)
		}
		return awss3.NewFromConfig(cfg), nil
	}
	newDDBClient = func(ctx context.Context) (results.DDBClient, error) {
		cfg, err := loadAWSConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("loading aws config: %w", err)
		}
		return dynamodb.NewFromConfig(cfg), nil
	}
)

// storeFor returns the store holding loc and the name of the blob inside it.
func storeFor(ctx context.Context, loc blobstore.Location) (blobstore.Store, string, error) {
	switch loc.Scheme {
	case "s3":
		client, err := newS3Client(ctx)
		if err != nil {
			return nil, "", err
		}
		return s3.NewStore(client, loc.Bucket, ""), loc.Key, nil
	case "minio":
		secure, _ := strconv.ParseBool(os.Getenv("MINIO_SECURE"))
		client, err := minio.NewClient(
			os.Getenv("MINIO_ENDPOINT"),
			os.Getenv("MINIO_ACCESS_KEY"),
			os.Getenv("MINIO_SECRET_KEY"),
			secure,
		)
		if err != nil {
			return nil, "", fmt.Errorf("minio client: %w", err)
		}
		return minio.NewStore(client, loc.Bucket, ""), loc.Key, nil
	default:
		return blobstore.NewLocalStore("."), loc.Key, nil
	}
}

// openURI opens the blob at uri, decompressing it according to its suffix.
func openURI(ctx context.Context, uri string) (io.ReadCloser, error) {
	loc, err := blobstore.ParseURI(uri)
	if err != nil {
		return nil, err
	}
	store, name, err := storeFor(ctx, loc)
	if err != nil {
		return nil, err
	}
	r, err := store.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	return blobstore.NewReader(name, r)
}

// createURI creates the blob at uri, compressing it according to its suffix.
func createURI(ctx context.Context, uri string) (io.WriteCloser, error) {
	loc, err := blobstore.ParseURI(uri)
	if err != nil {
		return nil, err
	}
	store, name, err := storeFor(ctx, loc)
	if err != nil {
		return nil, err
	}
	w, err := store.Create(ctx, name)
	if err != nil {
		return nil, err
	}
	return blobstore.NewWriter(name, w)
}
