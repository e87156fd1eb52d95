package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"labclin/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultCountersTableName = "counters"

// SequenceDynamoRepository issues period-scoped sequential numbers
// (COT-YYYYMM-NNNN, PAG-YYYYMM-NNNN) from an atomic ADD counter.
//
// Table requirements:
//   - PK: id (string), e.g. "COT#202608"
//
// The counter item is created on first use; ADD on a missing attribute
// starts from zero, so no seeding step is needed.

type SequenceDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.ISequenceRepository = (*SequenceDynamoRepository)(nil)

func NewSequenceDynamoRepository(ddb *dynamodb.Client) *SequenceDynamoRepository {
	return &SequenceDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("COUNTERS_TABLE", defaultCountersTableName),
	}
}

func (r *SequenceDynamoRepository) Next(ctx context.Context, prefix string, period time.Time) (string, error) {
	yyyymm := period.UTC().Format("200601")
	counterID := prefix + "#" + yyyymm

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: counterID},
		},
		UpdateExpression: aws.String("ADD #seq :one"),
		ExpressionAttributeNames: map[string]string{
			"#seq": "seq",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one": &types.AttributeValueMemberN{Value: "1"},
		},
		ReturnValues: types.ReturnValueUpdatedNew,
	})
	if err != nil {
		return "", err
	}

	seqAttr, ok := out.Attributes["seq"].(*types.AttributeValueMemberN)
	if !ok {
		return "", fmt.Errorf("counter %s returned no sequence value", counterID)
	}
	seq, err := strconv.ParseInt(seqAttr.Value, 10, 64)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s-%s-%04d", prefix, yyyymm, seq), nil
}
