package postevents

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/klauspost/compress/zstd"
	"github.com/yatube/backend/post"
)

type sqsSender interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// SqsPublisher sends events as base64 encoded zstd compressed JSON.
type SqsPublisher struct {
	client   sqsSender
	queueUrl string
	encoder  *zstd.Encoder
}

func NewSqsPublisher(ctx context.Context, region string, queueUrl string) (*SqsPublisher, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}
	return newSqsPublisher(sqs.NewFromConfig(cfg), queueUrl)
}

func newSqsPublisher(client sqsSender, queueUrl string) (*SqsPublisher, error) {
	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Zstd encoder: %w", err)
	}
	return &SqsPublisher{client: client, queueUrl: queueUrl, encoder: encoder}, nil
}

func (p *SqsPublisher) PublishPostCreated(ctx context.Context, post *post.Post) error {
	return p.publish(ctx, SubjectPostCreated, post)
}

func (p *SqsPublisher) PublishPostEdited(ctx context.Context, post *post.Post) error {
	return p.publish(ctx, SubjectPostEdited, post)
}

func (p *SqsPublisher) publish(ctx context.Context, eventType string, post *post.Post) error {
	data, err := marshalEvent(eventType, post)
	if err != nil {
		return err
	}

	// EncodeAll is safe for concurrent use
	compressed := p.encoder.EncodeAll(data, make([]byte, 0, len(data)))
	body := base64.StdEncoding.EncodeToString(compressed)

	_, err = p.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(p.queueUrl),
		MessageBody: aws.String(body),
		MessageAttributes: map[string]sqstypes.MessageAttributeValue{
			"event_type": {
				DataType:    aws.String("String"),
				StringValue: aws.String(eventType),
			},
			"content_encoding": {
				DataType:    aws.String("String"),
				StringValue: aws.String("zstd+base64"),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to send %s event to queue: %w", eventType, err)
	}
	return nil
}

// DecodeSqsBody reverses the body encoding of SqsPublisher.
func DecodeSqsBody(body string) ([]byte, error) {
	compressed, err := base64.StdEncoding.DecodeString(body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64 body: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Zstd decoder: %w", err)
	}
	defer decoder.Close()
	return decoder.DecodeAll(compressed, nil)
}
