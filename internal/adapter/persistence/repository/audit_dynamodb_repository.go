package repository

import (
	"context"
	"log"
	"time"

	"labclin/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/google/uuid"
)

const defaultAuditTableName = "audit_events"

type auditEventItem struct {
	ID          string `dynamodbav:"id"`
	EventKind   string `dynamodbav:"event_kind"`
	QuotationID string `dynamodbav:"quotation_id,omitempty"`
	PaymentID   string `dynamodbav:"payment_id,omitempty"`
	Details     string `dynamodbav:"details,omitempty"`
	RecordedAt  string `dynamodbav:"recorded_at"`
}

// AuditDynamoRepository records settlement lifecycle events in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//
// Record is fire-and-forget: a sink failure is logged and swallowed so it
// can never block settlement.

type AuditDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IAuditSink = (*AuditDynamoRepository)(nil)

func NewAuditDynamoRepository(ddb *dynamodb.Client) *AuditDynamoRepository {
	return &AuditDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("AUDIT_TABLE", defaultAuditTableName),
	}
}

func (r *AuditDynamoRepository) Record(ctx context.Context, eventKind, quotationID, paymentID, details string) {
	log.Printf("[audit][repository] event kind=%s quotation_id=%s payment_id=%s details=%q", eventKind, quotationID, paymentID, details)

	it := auditEventItem{
		ID:          uuid.NewString(),
		EventKind:   eventKind,
		QuotationID: quotationID,
		PaymentID:   paymentID,
		Details:     details,
		RecordedAt:  time.Now().UTC().Format(time.RFC3339Nano),
	}
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		log.Printf("[audit][repository] marshal failed kind=%s err=%v", eventKind, err)
		return
	}

	if _, err := r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	}); err != nil {
		log.Printf("[audit][repository] put failed kind=%s err=%v", eventKind, err)
	}
}
