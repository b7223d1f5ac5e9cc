package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cvillegar/Odontologia/internal/models"
)

const seqField = "_seq"

// MongoBackend keeps each table in a collection of the same name. Documents
// carry the table columns as strings plus a _seq field holding row order.
type MongoBackend struct {
	db  *mongo.Database
	now func() time.Time
}

func NewMongoBackend(db *mongo.Database) *MongoBackend {
	return &MongoBackend{db: db, now: time.Now}
}

func (b *MongoBackend) Read(ctx context.Context, table string) ([]models.Record, error) {
	names, err := b.db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: table}})
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, ErrTableAbsent
	}

	findOptions := options.Find().SetSort(bson.D{{Key: seqField, Value: 1}})
	cursor, err := b.db.Collection(table).Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	rows := make([]models.Record, 0, len(docs))
	for _, doc := range docs {
		rows = append(rows, documentRecord(doc))
	}
	return rows, nil
}

func (b *MongoBackend) Write(ctx context.Context, table string, columns []string, rows []models.Record) error {
	coll := b.db.Collection(table)
	if _, err := coll.DeleteMany(ctx, bson.M{}); err != nil {
		return err
	}
	if len(rows) == 0 {
		// keep the collection so the next Read sees an empty table, not an absent one
		return b.ensureCollection(ctx, table)
	}
	docs := make([]interface{}, len(rows))
	for i, rec := range rows {
		docs[i] = recordDocument(columns, rec, i)
	}
	_, err := coll.InsertMany(ctx, docs)
	return err
}

func (b *MongoBackend) Quarantine(ctx context.Context, table string) error {
	dbName := b.db.Name()
	target := fmt.Sprintf("%s_corrupt_%s", table, b.now().Format("20060102T150405"))
	cmd := bson.D{
		{Key: "renameCollection", Value: dbName + "." + table},
		{Key: "to", Value: dbName + "." + target},
	}
	return b.db.Client().Database("admin").RunCommand(ctx, cmd).Err()
}

func (b *MongoBackend) ensureCollection(ctx context.Context, table string) error {
	names, err := b.db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: table}})
	if err != nil {
		return err
	}
	if len(names) > 0 {
		return nil
	}
	return b.db.CreateCollection(ctx, table)
}

func recordDocument(columns []string, rec models.Record, seq int) bson.D {
	doc := make(bson.D, 0, len(columns)+1)
	doc = append(doc, bson.E{Key: seqField, Value: seq})
	for _, col := range columns {
		doc = append(doc, bson.E{Key: col, Value: rec[col]})
	}
	return doc
}

func documentRecord(doc bson.M) models.Record {
	rec := make(models.Record, len(doc))
	for k, v := range doc {
		if k == "_id" || k == seqField {
			continue
		}
		switch val := v.(type) {
		case nil:
			rec[k] = ""
		case string:
			rec[k] = val
		case primitive.DateTime:
			rec[k] = val.Time().UTC().Format(models.DateLayout)
		default:
			rec[k] = fmt.Sprint(val)
		}
	}
	return rec
}
