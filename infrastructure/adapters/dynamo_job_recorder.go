package adapters

import (
	"audiobook-generation-api/application/ports/outbound"
	"audiobook-generation-api/config"
	"audiobook-generation-api/domain"
	"context"
	"fmt"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/aws/aws-sdk-go/service/dynamodb/expression"
	"time"
)

type dynamoJobItem struct {
	JobID          string  `dynamodbav:"job_id"`
	Title          string  `dynamodbav:"title"`
	VoiceLabel     string  `dynamodbav:"voice_label"`
	DocumentPath   string  `dynamodbav:"document_path"`
	VoiceSampleURL string  `dynamodbav:"voice_sample_url,omitempty"`
	VideoID        string  `dynamodbav:"video_id,omitempty"`
	ClipStart      float64 `dynamodbav:"clip_start"`
	ClipEnd        float64 `dynamodbav:"clip_end"`
	Status         string  `dynamodbav:"status"`
	Progress       int     `dynamodbav:"progress"`
	ErrorMessage   string  `dynamodbav:"error_message,omitempty"`
	OutputLocation string  `dynamodbav:"output_location,omitempty"`
	CreatedAt      int64   `dynamodbav:"created_at"`
}

type dynamoJobRecorder struct {
	logger       outbound.LoggerPort
	dynamoSvc    *dynamodb.DynamoDB
	dynamoConfig *config.DynamoConfig
}

// NewDynamoJobRecorder persists job lifecycle state in a DynamoDB table keyed
// by job id. Updates write only the fields present on the JobUpdate, so
// concurrent updates to independent jobs never interfere.
func NewDynamoJobRecorder(logger outbound.LoggerPort, dynamoSvc *dynamodb.DynamoDB, dynamoConfig *config.DynamoConfig) outbound.JobRecorderPort {
	return &dynamoJobRecorder{
		logger:       logger,
		dynamoSvc:    dynamoSvc,
		dynamoConfig: dynamoConfig,
	}
}

func (r *dynamoJobRecorder) Create(ctx context.Context, job domain.Job) error {
	item := dynamoJobItem{
		JobID:          job.ID,
		Title:          job.Title,
		VoiceLabel:     job.VoiceLabel,
		DocumentPath:   job.DocumentPath,
		VoiceSampleURL: job.Voice.SampleURL,
		VideoID:        job.Voice.VideoID,
		ClipStart:      job.Voice.ClipStart,
		ClipEnd:        job.Voice.ClipEnd,
		Status:         string(domain.JobQueued),
		Progress:       0,
		CreatedAt:      time.Now().Unix(),
	}

	av, err := dynamodbattribute.MarshalMap(item)
	if err != nil {
		r.logger.ErrorWithFields(err, "Failed to marshal job item", map[string]interface{}{
			"job_id": job.ID,
		})
		return err
	}

	input := &dynamodb.PutItemInput{
		Item:      av,
		TableName: aws.String(r.dynamoConfig.TableName),
	}

	_, err = r.dynamoSvc.PutItemWithContext(ctx, input)
	if err != nil {
		r.logger.ErrorWithFields(err, "Failed to create job item", map[string]interface{}{
			"job_id": job.ID,
		})
		return err
	}

	return nil
}

func (r *dynamoJobRecorder) Update(ctx context.Context, jobID string, update domain.JobUpdate) error {
	builder, empty := buildJobUpdate(update)
	if empty {
		return nil
	}

	expr, err := expression.NewBuilder().WithUpdate(builder).Build()
	if err != nil {
		r.logger.ErrorWithFields(err, "Failed to build job update expression", map[string]interface{}{
			"job_id": jobID,
		})
		return err
	}

	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(r.dynamoConfig.TableName),
		Key: map[string]*dynamodb.AttributeValue{
			"job_id": {S: aws.String(jobID)},
		},
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		UpdateExpression:          expr.Update(),
	}

	_, err = r.dynamoSvc.UpdateItemWithContext(ctx, input)
	if err != nil {
		r.logger.ErrorWithFields(err, "Failed to update job item", map[string]interface{}{
			"job_id": jobID,
		})
		return err
	}

	return nil
}

func (r *dynamoJobRecorder) Get(ctx context.Context, jobID string) (domain.JobRecord, error) {
	input := &dynamodb.GetItemInput{
		TableName: aws.String(r.dynamoConfig.TableName),
		Key: map[string]*dynamodb.AttributeValue{
			"job_id": {S: aws.String(jobID)},
		},
	}

	output, err := r.dynamoSvc.GetItemWithContext(ctx, input)
	if err != nil {
		r.logger.ErrorWithFields(err, "Failed to fetch job item", map[string]interface{}{
			"job_id": jobID,
		})
		return domain.JobRecord{}, err
	}
	if output.Item == nil {
		return domain.JobRecord{}, fmt.Errorf("%w: %s", domain.ErrJobNotFound, jobID)
	}

	var item dynamoJobItem
	err = dynamodbattribute.UnmarshalMap(output.Item, &item)
	if err != nil {
		r.logger.ErrorWithFields(err, "Failed to unmarshal job item", map[string]interface{}{
			"job_id": jobID,
		})
		return domain.JobRecord{}, err
	}

	return domain.JobRecord{
		ID:             item.JobID,
		Title:          item.Title,
		VoiceLabel:     item.VoiceLabel,
		Status:         domain.JobStatus(item.Status),
		Progress:       item.Progress,
		ErrorMessage:   item.ErrorMessage,
		OutputLocation: item.OutputLocation,
	}, nil
}

func buildJobUpdate(update domain.JobUpdate) (expression.UpdateBuilder, bool) {
	builder := expression.UpdateBuilder{}
	empty := true

	if update.Status != nil {
		builder = builder.Set(expression.Name("status"), expression.Value(string(*update.Status)))
		empty = false
	}
	if update.Progress != nil {
		builder = builder.Set(expression.Name("progress"), expression.Value(*update.Progress))
		empty = false
	}
	if update.ErrorMessage != nil {
		builder = builder.Set(expression.Name("error_message"), expression.Value(*update.ErrorMessage))
		empty = false
	}
	if update.OutputLocation != nil {
		builder = builder.Set(expression.Name("output_location"), expression.Value(*update.OutputLocation))
		empty = false
	}

	return builder, empty
}
