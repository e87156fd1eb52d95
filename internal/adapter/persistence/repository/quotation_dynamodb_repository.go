package repository

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"labclin/internal/domain/entities"
	"labclin/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultQuotationsTableName = "quotations"

type quotationItem struct {
	ID                    string `dynamodbav:"id"`
	Numero                string `dynamodbav:"numero"`
	PatientID             string `dynamodbav:"patient_id"`
	Items                 string `dynamodbav:"items"`
	Subtotal              string `dynamodbav:"subtotal"`
	Discount              string `dynamodbav:"discount"`
	Total                 string `dynamodbav:"total"`
	Status                string `dynamodbav:"status"`
	PaymentMethodSelected string `dynamodbav:"payment_method_selected,omitempty"`
	CreatedAt             string `dynamodbav:"created_at"`
	UpdatedAt             string `dynamodbav:"updated_at"`
	FechaExpiracion       string `dynamodbav:"fecha_expiracion"`
	FechaSeleccionPago    string `dynamodbav:"fecha_seleccion_pago,omitempty"`
	FechaConfirmacionPago string `dynamodbav:"fecha_confirmacion_pago,omitempty"`
}

// QuotationDynamoRepository persists Quotation entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//
// Status transitions are conditional updates guarded on the previous status
// value, which gives per-row optimistic concurrency without any lock.

type QuotationDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IQuotationRepository = (*QuotationDynamoRepository)(nil)

func NewQuotationDynamoRepository(ddb *dynamodb.Client) *QuotationDynamoRepository {
	return &QuotationDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("QUOTATIONS_TABLE", defaultQuotationsTableName),
	}
}

func (r *QuotationDynamoRepository) Create(ctx context.Context, q entities.Quotation) (entities.Quotation, error) {
	it, err := toQuotationItem(q)
	if err != nil {
		return entities.Quotation{}, err
	}
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.Quotation{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.Quotation{}, err
	}
	return q, nil
}

func (r *QuotationDynamoRepository) GetByID(ctx context.Context, id string) (entities.Quotation, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Quotation{}, err
	}
	if len(out.Item) == 0 {
		return entities.Quotation{}, nil
	}

	var it quotationItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Quotation{}, err
	}
	return fromQuotationItem(it)
}

// Transition performs the status compare-and-swap. A zero-value return with
// nil error means the persisted status no longer equals from.
func (r *QuotationDynamoRepository) Transition(ctx context.Context, id string, from, to entities.QuotationStatus, fields interfaces.QuotationUpdateFields) (entities.Quotation, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)

	sets := []string{"#status = :to", "#updated_at = :updated_at"}
	var removes []string
	vals := map[string]types.AttributeValue{
		":from":       &types.AttributeValueMemberS{Value: string(from)},
		":to":         &types.AttributeValueMemberS{Value: string(to)},
		":updated_at": &types.AttributeValueMemberS{Value: now},
	}
	names := map[string]string{
		"#id":         "id",
		"#status":     "status",
		"#updated_at": "updated_at",
	}

	if fields.PaymentMethodSelected != nil {
		names["#method"] = "payment_method_selected"
		if *fields.PaymentMethodSelected == "" {
			removes = append(removes, "#method")
		} else {
			sets = append(sets, "#method = :method")
			vals[":method"] = &types.AttributeValueMemberS{Value: *fields.PaymentMethodSelected}
		}
	}
	if fields.FechaSeleccionPago != nil {
		sets = append(sets, "#fecha_seleccion = :fecha_seleccion")
		names["#fecha_seleccion"] = "fecha_seleccion_pago"
		vals[":fecha_seleccion"] = &types.AttributeValueMemberS{Value: fields.FechaSeleccionPago.UTC().Format(time.RFC3339Nano)}
	}
	if fields.FechaConfirmacionPago != nil {
		sets = append(sets, "#fecha_confirmacion = :fecha_confirmacion")
		names["#fecha_confirmacion"] = "fecha_confirmacion_pago"
		vals[":fecha_confirmacion"] = &types.AttributeValueMemberS{Value: fields.FechaConfirmacionPago.UTC().Format(time.RFC3339Nano)}
	}

	expr := "SET " + strings.Join(sets, ", ")
	if len(removes) > 0 {
		expr += " REMOVE " + strings.Join(removes, ", ")
	}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression:       aws.String("attribute_exists(#id) AND #status = :from"),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeValues: vals,
		ExpressionAttributeNames:  names,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Quotation{}, nil
		}
		return entities.Quotation{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Quotation{}, nil
	}
	var it quotationItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Quotation{}, err
	}
	return fromQuotationItem(it)
}

func (r *QuotationDynamoRepository) ListExpirable(ctx context.Context, now time.Time) ([]entities.Quotation, error) {
	cutoff := now.UTC().Format(time.RFC3339Nano)
	filter := "(#status = :pendiente OR #status = :aceptada) AND #fecha_expiracion < :cutoff"

	var quotations []entities.Quotation
	var startKey map[string]types.AttributeValue
	for {
		out, err := r.ddb.Scan(ctx, &dynamodb.ScanInput{
			TableName:        aws.String(r.tableName),
			FilterExpression: aws.String(filter),
			ExpressionAttributeNames: map[string]string{
				"#status":           "status",
				"#fecha_expiracion": "fecha_expiracion",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":pendiente": &types.AttributeValueMemberS{Value: string(entities.QuotationStatusPendiente)},
				":aceptada":  &types.AttributeValueMemberS{Value: string(entities.QuotationStatusAceptada)},
				":cutoff":    &types.AttributeValueMemberS{Value: cutoff},
			},
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, err
		}
		for _, raw := range out.Items {
			var it quotationItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			q, err := fromQuotationItem(it)
			if err != nil {
				return nil, err
			}
			quotations = append(quotations, q)
		}
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}
	return quotations, nil
}

func toQuotationItem(q entities.Quotation) (quotationItem, error) {
	itemsJSON, err := json.Marshal(q.Items)
	if err != nil {
		return quotationItem{}, err
	}
	it := quotationItem{
		ID:                    q.ID,
		Numero:                q.Numero,
		PatientID:             q.PatientID,
		Items:                 string(itemsJSON),
		Subtotal:              floatToString(q.Subtotal),
		Discount:              floatToString(q.Discount),
		Total:                 floatToString(q.Total),
		Status:                string(q.Status),
		PaymentMethodSelected: q.PaymentMethodSelected,
		CreatedAt:             q.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:             q.UpdatedAt.UTC().Format(time.RFC3339Nano),
		FechaExpiracion:       q.FechaExpiracion.UTC().Format(time.RFC3339Nano),
	}
	if !q.FechaSeleccionPago.IsZero() {
		it.FechaSeleccionPago = q.FechaSeleccionPago.UTC().Format(time.RFC3339Nano)
	}
	if !q.FechaConfirmacionPago.IsZero() {
		it.FechaConfirmacionPago = q.FechaConfirmacionPago.UTC().Format(time.RFC3339Nano)
	}
	return it, nil
}

func fromQuotationItem(it quotationItem) (entities.Quotation, error) {
	var items []entities.QuotationItem
	if it.Items != "" {
		if err := json.Unmarshal([]byte(it.Items), &items); err != nil {
			return entities.Quotation{}, err
		}
	}
	subtotal, _ := strconv.ParseFloat(it.Subtotal, 64)
	discount, _ := strconv.ParseFloat(it.Discount, 64)
	total, _ := strconv.ParseFloat(it.Total, 64)
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)
	fechaExpiracion, _ := time.Parse(time.RFC3339Nano, it.FechaExpiracion)
	fechaSeleccion, _ := time.Parse(time.RFC3339Nano, it.FechaSeleccionPago)
	fechaConfirmacion, _ := time.Parse(time.RFC3339Nano, it.FechaConfirmacionPago)
	return entities.Quotation{
		ID:                    it.ID,
		Numero:                it.Numero,
		PatientID:             it.PatientID,
		Items:                 items,
		Subtotal:              subtotal,
		Discount:              discount,
		Total:                 total,
		Status:                entities.QuotationStatus(it.Status),
		PaymentMethodSelected: it.PaymentMethodSelected,
		CreatedAt:             createdAt,
		UpdatedAt:             updatedAt,
		FechaExpiracion:       fechaExpiracion,
		FechaSeleccionPago:    fechaSeleccion,
		FechaConfirmacionPago: fechaConfirmacion,
	}, nil
}
