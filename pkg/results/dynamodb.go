package results

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"golang.org/x/time/rate"

	"crosswarped.com/anagram"
)

// DDBClient is the interface for DynamoDB operations.
type DDBClient interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// DynamoSink stores each match as an item of a DynamoDB table.
//
// Table schema:
//   - Partition key: digest (string)
//   - Sort key: anagram (string)
//
// Create table with:
//
//	aws dynamodb create-table \
//	  --table-name anagrams \
//	  --attribute-definitions AttributeName=digest,AttributeType=S AttributeName=anagram,AttributeType=S \
//	  --key-schema AttributeName=digest,KeyType=HASH AttributeName=anagram,KeyType=RANGE \
//	  --billing-mode PAY_PER_REQUEST
type DynamoSink struct {
	client  DDBClient
	table   string
	phrase  string
	limiter *rate.Limiter
}

// NewDynamoSink creates a sink writing to table. Writes are limited to writesPerSecond;
// zero or less means unlimited.
func NewDynamoSink(client DDBClient, table, phrase string, writesPerSecond float64) *DynamoSink {
	limit := rate.Inf
	if writesPerSecond > 0 {
		limit = rate.Limit(writesPerSecond)
	}
	return &DynamoSink{
		client:  client,
		table:   table,
		phrase:  phrase,
		limiter: rate.NewLimiter(limit, 1),
	}
}

func (s *DynamoSink) Put(ctx context.Context, m anagram.Match) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}

	_, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item: map[string]types.AttributeValue{
			"digest":  &types.AttributeValueMemberS{Value: m.Digest},
			"anagram": &types.AttributeValueMemberS{Value: m.Text},
			"phrase":  &types.AttributeValueMemberS{Value: s.phrase},
		},
	})
	if err != nil {
		return fmt.Errorf("dynamodb put %q: %w", m.Text, err)
	}
	return nil
}

func (s *DynamoSink) Close() error {
	return nil
}
