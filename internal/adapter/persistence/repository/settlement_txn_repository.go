package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"labclin/internal/domain/entities"
	"labclin/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const conditionalCheckFailedCode = "ConditionalCheckFailed"

// SettlementTxnDynamoRepository executes the coordinator's paired writes as
// DynamoDB transactions spanning the payments and quotations tables.
//
// Each item carries its own condition expression; a cancelled transaction is
// mapped back to the conflict error naming the row whose compare-and-swap
// failed, so the use case can pick the right fallback.

type SettlementTxnDynamoRepository struct {
	ddb             *dynamodb.Client
	paymentsTable   string
	quotationsTable string
}

var _ interfaces.ISettlementUnitOfWork = (*SettlementTxnDynamoRepository)(nil)

func NewSettlementTxnDynamoRepository(ddb *dynamodb.Client) *SettlementTxnDynamoRepository {
	return &SettlementTxnDynamoRepository{
		ddb:             ddb,
		paymentsTable:   getenvDefault("PAYMENTS_TABLE", defaultPaymentsTableName),
		quotationsTable: getenvDefault("QUOTATIONS_TABLE", defaultQuotationsTableName),
	}
}

func (r *SettlementTxnDynamoRepository) OpenPayment(ctx context.Context, p entities.PaymentRecord, from entities.QuotationStatus, fields interfaces.QuotationUpdateFields) error {
	av, err := MarshalPaymentRecordItem(p)
	if err != nil {
		return err
	}

	quotationUpdate := r.quotationTransitionItem(p.QuotationID, from, entities.QuotationStatusPagoEnProceso, fields)

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Put: &types.Put{
					TableName:                aws.String(r.paymentsTable),
					Item:                     av,
					ConditionExpression:      aws.String("attribute_not_exists(#id)"),
					ExpressionAttributeNames: map[string]string{"#id": "id"},
				},
			},
			{
				Put: &types.Put{
					TableName:                aws.String(r.paymentsTable),
					Item:                     CorrelationGuardItem(p),
					ConditionExpression:      aws.String("attribute_not_exists(#id)"),
					ExpressionAttributeNames: map[string]string{"#id": "id"},
				},
			},
			{Update: quotationUpdate},
		},
	})
	if err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) {
			switch failedItem(tce) {
			case 0, 1:
				return interfaces.ErrCorrelationConflict
			case 2:
				return interfaces.ErrQuotationConflict
			}
		}
		return err
	}
	return nil
}

func (r *SettlementTxnDynamoRepository) CompleteAndSettle(ctx context.Context, paymentID, externalTransactionID, observations, quotationID string, confirmedAt time.Time) error {
	now := confirmedAt.UTC().Format(time.RFC3339Nano)

	paymentExpr := "SET #status = :to, #fecha_confirmacion = :now"
	paymentNames := map[string]string{
		"#id":                 "id",
		"#status":             "status",
		"#fecha_confirmacion": "fecha_confirmacion",
	}
	paymentVals := map[string]types.AttributeValue{
		":to":      &types.AttributeValueMemberS{Value: string(entities.PaymentStatusCompleted)},
		":pending": &types.AttributeValueMemberS{Value: string(entities.PaymentStatusPending)},
		":now":     &types.AttributeValueMemberS{Value: now},
	}
	if externalTransactionID != "" {
		paymentExpr += ", #external_transaction_id = :etid"
		paymentNames["#external_transaction_id"] = "external_transaction_id"
		paymentVals[":etid"] = &types.AttributeValueMemberS{Value: externalTransactionID}
	}
	if observations != "" {
		paymentExpr += ", #observations = :obs"
		paymentNames["#observations"] = "observations"
		paymentVals[":obs"] = &types.AttributeValueMemberS{Value: observations}
	}

	confirmed := confirmedAt.UTC()
	quotationUpdate := r.quotationTransitionItem(quotationID, entities.QuotationStatusPagoEnProceso, entities.QuotationStatusPagada, interfaces.QuotationUpdateFields{
		FechaConfirmacionPago: &confirmed,
	})

	_, err := r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Update: &types.Update{
					TableName: aws.String(r.paymentsTable),
					Key: map[string]types.AttributeValue{
						"id": &types.AttributeValueMemberS{Value: paymentID},
					},
					ConditionExpression:       aws.String("attribute_exists(#id) AND #status = :pending"),
					UpdateExpression:          aws.String(paymentExpr),
					ExpressionAttributeNames:  paymentNames,
					ExpressionAttributeValues: paymentVals,
				},
			},
			{Update: quotationUpdate},
		},
	})
	return r.mapTwoItemCancellation(err)
}

func (r *SettlementTxnDynamoRepository) RejectAndRelease(ctx context.Context, paymentID, observations, quotationID string) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)

	cleared := ""
	quotationUpdate := r.quotationTransitionItem(quotationID, entities.QuotationStatusPagoEnProceso, entities.QuotationStatusPendiente, interfaces.QuotationUpdateFields{
		PaymentMethodSelected: &cleared,
	})

	_, err := r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Update: &types.Update{
					TableName: aws.String(r.paymentsTable),
					Key: map[string]types.AttributeValue{
						"id": &types.AttributeValueMemberS{Value: paymentID},
					},
					ConditionExpression: aws.String("attribute_exists(#id) AND #status = :pending"),
					UpdateExpression:    aws.String("SET #status = :to, #fecha_confirmacion = :now, #observations = :obs"),
					ExpressionAttributeNames: map[string]string{
						"#id":                 "id",
						"#status":             "status",
						"#fecha_confirmacion": "fecha_confirmacion",
						"#observations":       "observations",
					},
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":to":      &types.AttributeValueMemberS{Value: string(entities.PaymentStatusRejected)},
						":pending": &types.AttributeValueMemberS{Value: string(entities.PaymentStatusPending)},
						":now":     &types.AttributeValueMemberS{Value: now},
						":obs":     &types.AttributeValueMemberS{Value: observations},
					},
				},
			},
			{Update: quotationUpdate},
		},
	})
	return r.mapTwoItemCancellation(err)
}

// quotationTransitionItem builds the same status-guarded update the
// quotation repository performs standalone, as a transaction item.
func (r *SettlementTxnDynamoRepository) quotationTransitionItem(id string, from, to entities.QuotationStatus, fields interfaces.QuotationUpdateFields) *types.Update {
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

	return &types.Update{
		TableName: aws.String(r.quotationsTable),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression:       aws.String("attribute_exists(#id) AND #status = :from"),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: vals,
	}
}

// mapTwoItemCancellation translates a cancelled [payment, quotation]
// transaction into the matching conflict error. An already-terminal payment
// wins over a moved-on quotation so the idempotent path is taken first.
func (r *SettlementTxnDynamoRepository) mapTwoItemCancellation(err error) error {
	if err == nil {
		return nil
	}
	var tce *types.TransactionCanceledException
	if !errors.As(err, &tce) {
		return err
	}
	switch failedItem(tce) {
	case 0:
		return interfaces.ErrPaymentConflict
	case 1:
		return interfaces.ErrQuotationConflict
	}
	return err
}

// failedItem returns the index of the first item whose condition failed, or
// -1 when the cancellation had another cause (e.g. transaction conflict).
func failedItem(tce *types.TransactionCanceledException) int {
	for i, reason := range tce.CancellationReasons {
		if reason.Code != nil && *reason.Code == conditionalCheckFailedCode {
			return i
		}
	}
	return -1
}
