package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const tableWaitTimeout = 2 * time.Minute

// CreateTables creates the catalog tables that do not exist yet and waits
// until they are active. It returns the names of the tables it created.
func CreateTables(ctx context.Context, client *dynamodb.Client, tables ...string) ([]string, error) {
	var created []string
	for _, table := range tables {
		if err := validateTable(table); err != nil {
			return created, err
		}

		_, err := client.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(table)})
		if err == nil {
			continue
		}
		var notFound *types.ResourceNotFoundException
		if !errors.As(err, &notFound) {
			return created, fmt.Errorf("dynamodb: describe table %s: %w", table, err)
		}

		_, err = client.CreateTable(ctx, &dynamodb.CreateTableInput{
			TableName:   aws.String(table),
			BillingMode: types.BillingModePayPerRequest,
			AttributeDefinitions: []types.AttributeDefinition{
				{AttributeName: aws.String("id"), AttributeType: types.ScalarAttributeTypeN},
			},
			KeySchema: []types.KeySchemaElement{
				{AttributeName: aws.String("id"), KeyType: types.KeyTypeHash},
			},
		})
		if err != nil {
			return created, fmt.Errorf("dynamodb: create table %s: %w", table, err)
		}

		waiter := dynamodb.NewTableExistsWaiter(client)
		if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(table)}, tableWaitTimeout); err != nil {
			return created, fmt.Errorf("dynamodb: wait for table %s: %w", table, err)
		}
		created = append(created, table)
	}
	return created, nil
}
