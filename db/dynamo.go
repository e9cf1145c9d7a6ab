package db

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/Dosada05/sports-management/models"
)

const tableActiveTimeout = 2 * time.Minute

// DynamoAPI is the subset of the DynamoDB client the store uses.
type DynamoAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	TransactWriteItems(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

// NewDynamoClient loads the AWS configuration for opts. Static credentials
// are used when given, otherwise the default provider chain applies.
func NewDynamoClient(ctx context.Context, opts Options) (*dynamodb.Client, error) {
	loadOpts := []func(*config.LoadOptions) error{
		config.WithRegion(opts.AWSRegion),
	}
	if opts.AWSAccessKeyID != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AWSAccessKeyID, opts.AWSSecretAccessKey, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if opts.DynamoEndpoint != "" {
			o.BaseEndpoint = aws.String(opts.DynamoEndpoint)
		}
	}), nil
}

// OpenDynamo ensures one table per collection and returns the store.
func OpenDynamo(ctx context.Context, client DynamoAPI, prefix string) (*Store, error) {
	for _, s := range []Schema{PersonsSchema, MatchesSchema, ReviewsSchema} {
		if err := ensureTable(ctx, client, prefix+s.Name, s); err != nil {
			return nil, err
		}
	}

	return &Store{
		People:  newDynamoCollection[models.Person](client, prefix, PersonsSchema),
		Matches: newDynamoCollection[models.Match](client, prefix, MatchesSchema),
		Reviews: newDynamoCollection[models.VideoReview](client, prefix, ReviewsSchema),
	}, nil
}

func indexName(field string) string {
	return field + "-index"
}

func keyType(s Schema) types.ScalarAttributeType {
	if s.NumericKey {
		return types.ScalarAttributeTypeN
	}
	return types.ScalarAttributeTypeS
}

func ensureTable(ctx context.Context, client DynamoAPI, table string, s Schema) error {
	attrs := []types.AttributeDefinition{{
		AttributeName: aws.String(s.Key),
		AttributeType: keyType(s),
	}}
	var gsis []types.GlobalSecondaryIndex
	for _, field := range s.Indexes {
		attrs = append(attrs, types.AttributeDefinition{
			AttributeName: aws.String(field),
			AttributeType: types.ScalarAttributeTypeS,
		})
		gsis = append(gsis, types.GlobalSecondaryIndex{
			IndexName: aws.String(indexName(field)),
			KeySchema: []types.KeySchemaElement{{
				AttributeName: aws.String(field),
				KeyType:       types.KeyTypeHash,
			}},
			Projection: &types.Projection{ProjectionType: types.ProjectionTypeAll},
		})
	}

	_, err := client.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName:            aws.String(table),
		AttributeDefinitions: attrs,
		KeySchema: []types.KeySchemaElement{{
			AttributeName: aws.String(s.Key),
			KeyType:       types.KeyTypeHash,
		}},
		GlobalSecondaryIndexes: gsis,
		BillingMode:            types.BillingModePayPerRequest,
	})
	if err != nil {
		var inUse *types.ResourceInUseException
		if !errors.As(err, &inUse) {
			return fmt.Errorf("failed to create table '%s': %w", table, err)
		}
	}

	waiter := dynamodb.NewTableExistsWaiter(client)
	if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(table)}, tableActiveTimeout); err != nil {
		return fmt.Errorf("waiting for table '%s': %w", table, err)
	}
	return nil
}

type dynamoCollection[T any] struct {
	client DynamoAPI
	table  string
	schema Schema
}

func newDynamoCollection[T any](client DynamoAPI, prefix string, s Schema) *dynamoCollection[T] {
	return &dynamoCollection[T]{client: client, table: prefix + s.Name, schema: s}
}

type item = map[string]types.AttributeValue

// expression is a hand-built condition with its placeholder maps.
type expression struct {
	text   string
	names  map[string]string
	values map[string]types.AttributeValue
}

// buildCondition joins "#p0 = :p0 AND ..." for every filter field except
// skip. Fields are visited in sorted order so the text is stable.
func buildCondition(filter Filter, prefix string, skip ...string) (expression, error) {
	fields := make([]string, 0, len(filter))
	for f := range filter {
		if slices.Contains(skip, f) {
			continue
		}
		fields = append(fields, f)
	}
	sort.Strings(fields)

	expr := expression{names: map[string]string{}, values: map[string]types.AttributeValue{}}
	parts := make([]string, 0, len(fields))
	for i, f := range fields {
		av, err := attributevalue.Marshal(filter[f])
		if err != nil {
			return expression{}, fmt.Errorf("marshaling filter value for %q: %w", f, err)
		}
		name := fmt.Sprintf("#%s%d", prefix, i)
		value := fmt.Sprintf(":%s%d", prefix, i)
		expr.names[name] = f
		expr.values[value] = av
		parts = append(parts, name+" = "+value)
	}
	expr.text = strings.Join(parts, " AND ")
	return expr, nil
}

// buildUpdate produces "SET #u0 = :u0, ..." for fields.
func buildUpdate(fields Fields) (expression, error) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	expr := expression{names: map[string]string{}, values: map[string]types.AttributeValue{}}
	parts := make([]string, 0, len(keys))
	for i, k := range keys {
		av, err := attributevalue.Marshal(fields[k])
		if err != nil {
			return expression{}, fmt.Errorf("marshaling update value for %q: %w", k, err)
		}
		name := fmt.Sprintf("#u%d", i)
		value := fmt.Sprintf(":u%d", i)
		expr.names[name] = k
		expr.values[value] = av
		parts = append(parts, name+" = "+value)
	}
	expr.text = "SET " + strings.Join(parts, ", ")
	return expr, nil
}

func isConditionFailed(err error) bool {
	var ccf *types.ConditionalCheckFailedException
	return errors.As(err, &ccf)
}

func (c *dynamoCollection[T]) keyOf(it item) item {
	return item{c.schema.Key: it[c.schema.Key]}
}

// indexFor picks a secondary index usable for filter, if any.
func (c *dynamoCollection[T]) indexFor(filter Filter) (string, bool) {
	for _, field := range c.schema.Indexes {
		if s, ok := filter[field].(string); ok && s != "" {
			return field, true
		}
	}
	return "", false
}

// items fetches every item matching filter: a GetItem for a key-only filter,
// a Query on a secondary index when one applies, otherwise a Scan.
func (c *dynamoCollection[T]) items(ctx context.Context, filter Filter) ([]item, error) {
	if v, ok := filter[c.schema.Key]; ok && len(filter) == 1 {
		key, err := attributevalue.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("marshaling key: %w", err)
		}
		out, err := c.client.GetItem(ctx, &dynamodb.GetItemInput{
			TableName: aws.String(c.table),
			Key:       item{c.schema.Key: key},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to get item from table '%s': %w", c.table, err)
		}
		if out.Item == nil {
			return nil, nil
		}
		return []item{out.Item}, nil
	}

	if field, ok := c.indexFor(filter); ok {
		return c.query(ctx, field, filter)
	}
	return c.scan(ctx, filter)
}

func (c *dynamoCollection[T]) query(ctx context.Context, field string, filter Filter) ([]item, error) {
	keyCond, err := buildCondition(Filter{field: filter[field]}, "k")
	if err != nil {
		return nil, err
	}
	rest, err := buildCondition(filter, "f", field)
	if err != nil {
		return nil, err
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(c.table),
		IndexName:                 aws.String(indexName(field)),
		KeyConditionExpression:    aws.String(keyCond.text),
		ExpressionAttributeNames:  keyCond.names,
		ExpressionAttributeValues: keyCond.values,
	}
	if rest.text != "" {
		input.FilterExpression = aws.String(rest.text)
		for k, v := range rest.names {
			input.ExpressionAttributeNames[k] = v
		}
		for k, v := range rest.values {
			input.ExpressionAttributeValues[k] = v
		}
	}

	var out []item
	p := dynamodb.NewQueryPaginator(c.client, input)
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to query table '%s': %w", c.table, err)
		}
		out = append(out, page.Items...)
	}
	return out, nil
}

func (c *dynamoCollection[T]) scan(ctx context.Context, filter Filter) ([]item, error) {
	cond, err := buildCondition(filter, "f")
	if err != nil {
		return nil, err
	}

	input := &dynamodb.ScanInput{TableName: aws.String(c.table)}
	if cond.text != "" {
		input.FilterExpression = aws.String(cond.text)
		input.ExpressionAttributeNames = cond.names
		input.ExpressionAttributeValues = cond.values
	}

	var out []item
	p := dynamodb.NewScanPaginator(c.client, input)
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to scan table '%s': %w", c.table, err)
		}
		out = append(out, page.Items...)
	}
	return out, nil
}

func (c *dynamoCollection[T]) first(ctx context.Context, filter Filter) (item, error) {
	items, err := c.items(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrNoDocuments
	}
	return items[0], nil
}

func (c *dynamoCollection[T]) decode(it item) (*T, error) {
	var out T
	if err := attributevalue.UnmarshalMap(it, &out); err != nil {
		return nil, fmt.Errorf("decoding %s item: %w", c.schema.Name, err)
	}
	return &out, nil
}

func (c *dynamoCollection[T]) FindOne(ctx context.Context, filter Filter) (*T, error) {
	it, err := c.first(ctx, filter)
	if err != nil {
		return nil, err
	}
	return c.decode(it)
}

func (c *dynamoCollection[T]) Find(ctx context.Context, filter Filter, s *Sort) ([]T, error) {
	items, err := c.items(ctx, filter)
	if err != nil {
		return nil, err
	}

	if s != nil && s.Field != "" {
		docs := make([]document, len(items))
		for i, it := range items {
			if err := attributevalue.UnmarshalMap(it, &docs[i]); err != nil {
				return nil, fmt.Errorf("decoding %s item: %w", c.schema.Name, err)
			}
		}
		order := make([]int, len(items))
		for i := range order {
			order[i] = i
		}
		sort.SliceStable(order, func(a, b int) bool {
			r := compareValues(docs[order[a]][s.Field], docs[order[b]][s.Field])
			if s.Desc {
				return r > 0
			}
			return r < 0
		})
		sorted := make([]item, len(items))
		for i, idx := range order {
			sorted[i] = items[idx]
		}
		items = sorted
	}

	out := make([]T, 0, len(items))
	for _, it := range items {
		v, err := c.decode(it)
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, nil
}

func (c *dynamoCollection[T]) Insert(ctx context.Context, doc *T) error {
	it, err := attributevalue.MarshalMap(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal item: %w", err)
	}
	return c.put(ctx, it)
}

// put writes it unless an item with the same key exists.
func (c *dynamoCollection[T]) put(ctx context.Context, it item) error {
	_, err := c.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(c.table),
		Item:                     it,
		ConditionExpression:      aws.String("attribute_not_exists(#pk)"),
		ExpressionAttributeNames: map[string]string{"#pk": c.schema.Key},
	})
	if err != nil {
		if isConditionFailed(err) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("failed to put item in table '%s': %w", c.table, err)
	}
	return nil
}

func (c *dynamoCollection[T]) Update(ctx context.Context, filter Filter, fields Fields) (*T, error) {
	current, err := c.first(ctx, filter)
	if err != nil {
		return nil, err
	}

	if v, ok := fields[c.schema.Key]; ok {
		newKey, err := attributevalue.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("marshaling key: %w", err)
		}
		if !reflect.DeepEqual(newKey, current[c.schema.Key]) {
			return c.moveItem(ctx, current, fields)
		}
		// Key attributes cannot appear in an update expression.
		rest := make(Fields, len(fields))
		for k, v := range fields {
			if k != c.schema.Key {
				rest[k] = v
			}
		}
		fields = rest
	}
	if len(fields) == 0 {
		return c.decode(current)
	}

	upd, err := buildUpdate(fields)
	if err != nil {
		return nil, err
	}
	upd.names["#pk"] = c.schema.Key

	out, err := c.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(c.table),
		Key:                       c.keyOf(current),
		UpdateExpression:          aws.String(upd.text),
		ConditionExpression:       aws.String("attribute_exists(#pk)"),
		ExpressionAttributeNames:  upd.names,
		ExpressionAttributeValues: upd.values,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionFailed(err) {
			return nil, ErrNoDocuments
		}
		return nil, fmt.Errorf("failed to update item in table '%s': %w", c.table, err)
	}
	return c.decode(out.Attributes)
}

// moveItem applies an update that changes the unique key: in one
// transaction the merged item is written under the new key and the old one
// removed.
func (c *dynamoCollection[T]) moveItem(ctx context.Context, current item, fields Fields) (*T, error) {
	merged := make(item, len(current)+len(fields))
	for k, v := range current {
		merged[k] = v
	}
	for k, v := range fields {
		av, err := attributevalue.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("marshaling update value for %q: %w", k, err)
		}
		merged[k] = av
	}

	names := map[string]string{"#pk": c.schema.Key}
	_, err := c.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Put: &types.Put{
				TableName:                aws.String(c.table),
				Item:                     merged,
				ConditionExpression:      aws.String("attribute_not_exists(#pk)"),
				ExpressionAttributeNames: names,
			}},
			{Delete: &types.Delete{
				TableName:                aws.String(c.table),
				Key:                      c.keyOf(current),
				ConditionExpression:      aws.String("attribute_exists(#pk)"),
				ExpressionAttributeNames: names,
			}},
		},
	})
	if err != nil {
		return nil, c.moveError(err)
	}
	return c.decode(merged)
}

// moveError reports a failed put as a duplicate key and a failed delete as
// a vanished source item.
func (c *dynamoCollection[T]) moveError(err error) error {
	var canceled *types.TransactionCanceledException
	if errors.As(err, &canceled) {
		for i, reason := range canceled.CancellationReasons {
			if aws.ToString(reason.Code) != "ConditionalCheckFailed" {
				continue
			}
			if i == 0 {
				return ErrDuplicateKey
			}
			return ErrNoDocuments
		}
	}
	return fmt.Errorf("failed to move item in table '%s': %w", c.table, err)
}

func (c *dynamoCollection[T]) Delete(ctx context.Context, filter Filter) (*T, error) {
	current, err := c.first(ctx, filter)
	if err != nil {
		return nil, err
	}

	out, err := c.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:                aws.String(c.table),
		Key:                      c.keyOf(current),
		ConditionExpression:      aws.String("attribute_exists(#pk)"),
		ExpressionAttributeNames: map[string]string{"#pk": c.schema.Key},
		ReturnValues:             types.ReturnValueAllOld,
	})
	if err != nil {
		if isConditionFailed(err) {
			return nil, ErrNoDocuments
		}
		return nil, fmt.Errorf("failed to delete item from table '%s': %w", c.table, err)
	}
	return c.decode(out.Attributes)
}
