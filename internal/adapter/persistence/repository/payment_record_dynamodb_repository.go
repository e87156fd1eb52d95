package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"labclin/internal/domain/entities"
	"labclin/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultPaymentsTableName = "payment_records"
	paymentsCorrelationIndex = "correlation-index"
	paymentsQuotationIDIndex = "quotation_id-index"

	// Guard items share the payments table under a reserved id prefix so a
	// duplicate (gateway, correlation_id) pair fails the conditional put.
	correlationGuardPrefix = "CORR#"
)

type paymentRecordItem struct {
	ID                    string `dynamodbav:"id"`
	Numero                string `dynamodbav:"numero"`
	QuotationID           string `dynamodbav:"quotation_id"`
	PatientID             string `dynamodbav:"patient_id"`
	Amount                string `dynamodbav:"amount"`
	Method                string `dynamodbav:"method"`
	Gateway               string `dynamodbav:"gateway"`
	CorrelationID         string `dynamodbav:"correlation_id"`
	Status                string `dynamodbav:"status"`
	ExternalTransactionID string `dynamodbav:"external_transaction_id,omitempty"`
	Observations          string `dynamodbav:"observations,omitempty"`
	CreatedAt             string `dynamodbav:"created_at"`
	FechaConfirmacion     string `dynamodbav:"fecha_confirmacion,omitempty"`
}

// PaymentRecordDynamoRepository persists PaymentRecord entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: correlation-index (PK: correlation_id)
//   - GSI: quotation_id-index (PK: quotation_id)
//
// Terminal transitions are conditional updates guarded on status = PENDING;
// the loser of a race observes the already-terminal record, never an error.

type PaymentRecordDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IPaymentRecordRepository = (*PaymentRecordDynamoRepository)(nil)

func NewPaymentRecordDynamoRepository(ddb *dynamodb.Client) *PaymentRecordDynamoRepository {
	return &PaymentRecordDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("PAYMENTS_TABLE", defaultPaymentsTableName),
	}
}

func correlationGuardID(gateway, correlationID string) string {
	return correlationGuardPrefix + gateway + "#" + correlationID
}

// CorrelationGuardItem builds the uniqueness marker stored alongside a new
// payment record. Exported for the settlement unit of work, which puts both
// items in one transaction.
func CorrelationGuardItem(p entities.PaymentRecord) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id":         &types.AttributeValueMemberS{Value: correlationGuardID(p.Gateway, p.CorrelationID)},
		"payment_id": &types.AttributeValueMemberS{Value: p.ID},
	}
}

func (r *PaymentRecordDynamoRepository) TableName() string {
	return r.tableName
}

func (r *PaymentRecordDynamoRepository) Create(ctx context.Context, p entities.PaymentRecord) (entities.PaymentRecord, error) {
	av, err := attributevalue.MarshalMap(toPaymentRecordItem(p))
	if err != nil {
		return entities.PaymentRecord{}, err
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Put: &types.Put{
					TableName:                aws.String(r.tableName),
					Item:                     av,
					ConditionExpression:      aws.String("attribute_not_exists(#id)"),
					ExpressionAttributeNames: map[string]string{"#id": "id"},
				},
			},
			{
				Put: &types.Put{
					TableName:                aws.String(r.tableName),
					Item:                     CorrelationGuardItem(p),
					ConditionExpression:      aws.String("attribute_not_exists(#id)"),
					ExpressionAttributeNames: map[string]string{"#id": "id"},
				},
			},
		},
	})
	if err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) {
			return entities.PaymentRecord{}, nil
		}
		return entities.PaymentRecord{}, err
	}
	return p, nil
}

func (r *PaymentRecordDynamoRepository) GetByID(ctx context.Context, id string) (entities.PaymentRecord, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.PaymentRecord{}, err
	}
	if len(out.Item) == 0 {
		return entities.PaymentRecord{}, nil
	}

	var it paymentRecordItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.PaymentRecord{}, err
	}
	return fromPaymentRecordItem(it), nil
}

func (r *PaymentRecordDynamoRepository) GetByCorrelationID(ctx context.Context, correlationID string) (entities.PaymentRecord, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(paymentsCorrelationIndex),
		KeyConditionExpression: aws.String("correlation_id = :cid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":cid": &types.AttributeValueMemberS{Value: correlationID},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return entities.PaymentRecord{}, err
	}
	if len(out.Items) == 0 {
		return entities.PaymentRecord{}, nil
	}

	var it paymentRecordItem
	if err := attributevalue.UnmarshalMap(out.Items[0], &it); err != nil {
		return entities.PaymentRecord{}, err
	}
	// GSI reads are eventually consistent; re-read the base row.
	return r.GetByID(ctx, it.ID)
}

func (r *PaymentRecordDynamoRepository) FindPendingByQuotationID(ctx context.Context, quotationID string) (entities.PaymentRecord, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(paymentsQuotationIDIndex),
		KeyConditionExpression: aws.String("quotation_id = :qid"),
		FilterExpression:       aws.String("#status = :pending"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":qid":     &types.AttributeValueMemberS{Value: quotationID},
			":pending": &types.AttributeValueMemberS{Value: string(entities.PaymentStatusPending)},
		},
	})
	if err != nil {
		return entities.PaymentRecord{}, err
	}
	if len(out.Items) == 0 {
		return entities.PaymentRecord{}, nil
	}

	var it paymentRecordItem
	if err := attributevalue.UnmarshalMap(out.Items[0], &it); err != nil {
		return entities.PaymentRecord{}, err
	}
	return fromPaymentRecordItem(it), nil
}

func (r *PaymentRecordDynamoRepository) MarkCompleted(ctx context.Context, id, externalTransactionID, observations string) (entities.PaymentRecord, error) {
	return r.terminalUpdate(ctx, id, entities.PaymentStatusCompleted, externalTransactionID, observations)
}

func (r *PaymentRecordDynamoRepository) MarkRejected(ctx context.Context, id, observations string) (entities.PaymentRecord, error) {
	return r.terminalUpdate(ctx, id, entities.PaymentStatusRejected, "", observations)
}

func (r *PaymentRecordDynamoRepository) terminalUpdate(ctx context.Context, id string, to entities.PaymentRecordStatus, externalTransactionID, observations string) (entities.PaymentRecord, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)

	expr := "SET #status = :to, #fecha_confirmacion = :now"
	vals := map[string]types.AttributeValue{
		":to":      &types.AttributeValueMemberS{Value: string(to)},
		":pending": &types.AttributeValueMemberS{Value: string(entities.PaymentStatusPending)},
		":now":     &types.AttributeValueMemberS{Value: now},
	}
	names := map[string]string{
		"#id":                 "id",
		"#status":             "status",
		"#fecha_confirmacion": "fecha_confirmacion",
	}
	if externalTransactionID != "" {
		expr += ", #external_transaction_id = :etid"
		names["#external_transaction_id"] = "external_transaction_id"
		vals[":etid"] = &types.AttributeValueMemberS{Value: externalTransactionID}
	}
	if observations != "" {
		expr += ", #observations = :obs"
		names["#observations"] = "observations"
		vals[":obs"] = &types.AttributeValueMemberS{Value: observations}
	}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression:       aws.String("attribute_exists(#id) AND #status = :pending"),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeValues: vals,
		ExpressionAttributeNames:  names,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			// Already terminal: idempotent no-op, return the existing record.
			return r.GetByID(ctx, id)
		}
		return entities.PaymentRecord{}, err
	}
	if len(out.Attributes) == 0 {
		return r.GetByID(ctx, id)
	}
	var it paymentRecordItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.PaymentRecord{}, err
	}
	return fromPaymentRecordItem(it), nil
}

func (r *PaymentRecordDynamoRepository) UpdateObservations(ctx context.Context, id, observations string) (entities.PaymentRecord, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression: aws.String("attribute_exists(#id) AND #status = :pending"),
		UpdateExpression:    aws.String("SET #observations = :obs"),
		ExpressionAttributeNames: map[string]string{
			"#id":           "id",
			"#status":       "status",
			"#observations": "observations",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pending": &types.AttributeValueMemberS{Value: string(entities.PaymentStatusPending)},
			":obs":     &types.AttributeValueMemberS{Value: observations},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.PaymentRecord{}, nil
		}
		return entities.PaymentRecord{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.PaymentRecord{}, nil
	}
	var it paymentRecordItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.PaymentRecord{}, err
	}
	return fromPaymentRecordItem(it), nil
}

func toPaymentRecordItem(p entities.PaymentRecord) paymentRecordItem {
	it := paymentRecordItem{
		ID:                    p.ID,
		Numero:                p.Numero,
		QuotationID:           p.QuotationID,
		PatientID:             p.PatientID,
		Amount:                floatToString(p.Amount),
		Method:                p.Method,
		Gateway:               p.Gateway,
		CorrelationID:         p.CorrelationID,
		Status:                string(p.Status),
		ExternalTransactionID: p.ExternalTransactionID,
		Observations:          p.Observations,
		CreatedAt:             p.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
	if !p.FechaConfirmacion.IsZero() {
		it.FechaConfirmacion = p.FechaConfirmacion.UTC().Format(time.RFC3339Nano)
	}
	return it
}

func fromPaymentRecordItem(it paymentRecordItem) entities.PaymentRecord {
	amount, _ := strconv.ParseFloat(it.Amount, 64)
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	fechaConfirmacion, _ := time.Parse(time.RFC3339Nano, it.FechaConfirmacion)
	return entities.PaymentRecord{
		ID:                    it.ID,
		Numero:                it.Numero,
		QuotationID:           it.QuotationID,
		PatientID:             it.PatientID,
		Amount:                amount,
		Method:                it.Method,
		Gateway:               it.Gateway,
		CorrelationID:         it.CorrelationID,
		Status:                entities.PaymentRecordStatus(it.Status),
		ExternalTransactionID: it.ExternalTransactionID,
		Observations:          it.Observations,
		CreatedAt:             createdAt,
		FechaConfirmacion:     fechaConfirmacion,
	}
}

// MarshalPaymentRecordItem marshals a record for use inside a transaction.
func MarshalPaymentRecordItem(p entities.PaymentRecord) (map[string]types.AttributeValue, error) {
	return attributevalue.MarshalMap(toPaymentRecordItem(p))
}
