package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/guttosm/kitchen-receipt-service/internal/domain/model"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrInvalidMenuDocument is returned when a menu item cannot be converted for storage.
var ErrInvalidMenuDocument = errors.New("invalid menu document")

// MenuItemDocument is a menu item as stored in MongoDB. Field names match the
// documents the point-of-sale app writes.
type MenuItemDocument struct {
	ID            primitive.ObjectID     `bson:"_id,omitempty"`
	Name          string                 `bson:"Name"`
	Price         primitive.Decimal128   `bson:"Price"`
	Type          string                 `bson:"type"`
	Description   string                 `bson:"Description,omitempty"`
	Image         string                 `bson:"Image,omitempty"`
	Location      string                 `bson:"location,omitempty"`
	VAT           primitive.Decimal128   `bson:"SelectedVAT"`
	Sizes         []string               `bson:"size,omitempty"`
	SizePrices    []primitive.Decimal128 `bson:"sizePrice,omitempty"`
	MealDeal      string                 `bson:"mealDeal,omitempty"`
	MealDealPrice primitive.Decimal128   `bson:"mdPrice"`
	UpdatedAt     time.Time              `bson:"time"`
}

// NewMenuItemDocument converts a catalog item into its stored form.
func NewMenuItemDocument(item model.CatalogItem) (MenuItemDocument, error) {
	doc := MenuItemDocument{
		Name:        item.Name,
		Type:        item.Category,
		Description: item.Description,
		Image:       item.Image,
		Location:    item.Location,
		Sizes:       item.Sizes,
		MealDeal:    item.MealDeal,
		UpdatedAt:   item.UpdatedAt,
	}

	var err error
	if doc.Price, err = toDecimal128(item.Price); err != nil {
		return MenuItemDocument{}, fmt.Errorf("%w: Price: %v", ErrInvalidMenuDocument, err)
	}
	if doc.VAT, err = toDecimal128(item.VAT); err != nil {
		return MenuItemDocument{}, fmt.Errorf("%w: SelectedVAT: %v", ErrInvalidMenuDocument, err)
	}
	if doc.MealDealPrice, err = toDecimal128(item.MealDealPrice); err != nil {
		return MenuItemDocument{}, fmt.Errorf("%w: mdPrice: %v", ErrInvalidMenuDocument, err)
	}
	for _, p := range item.SizePrices {
		d, err := toDecimal128(p)
		if err != nil {
			return MenuItemDocument{}, fmt.Errorf("%w: sizePrice: %v", ErrInvalidMenuDocument, err)
		}
		doc.SizePrices = append(doc.SizePrices, d)
	}

	return doc, nil
}

// ToModel converts the stored document into a catalog item.
func (d MenuItemDocument) ToModel() model.CatalogItem {
	item := model.CatalogItem{
		Name:          d.Name,
		Price:         fromDecimal128(d.Price),
		Category:      d.Type,
		Description:   d.Description,
		Image:         d.Image,
		Location:      d.Location,
		VAT:           fromDecimal128(d.VAT),
		Sizes:         d.Sizes,
		MealDeal:      d.MealDeal,
		MealDealPrice: fromDecimal128(d.MealDealPrice),
		UpdatedAt:     d.UpdatedAt,
	}
	for _, p := range d.SizePrices {
		item.SizePrices = append(item.SizePrices, fromDecimal128(p))
	}
	return item
}

// MenuRepository provides access to the menu collection.
type MenuRepository struct {
	collection *mongo.Collection
}

// NewMenuRepository creates a new menu repository.
func NewMenuRepository(db *MongoDB) *MenuRepository {
	return &MenuRepository{
		collection: db.Menu,
	}
}

// List returns every menu document that decodes cleanly, ordered by name.
// Documents with missing or mistyped fields are reported as diagnostics and
// left out; they never fail the whole listing.
func (r *MenuRepository) List(ctx context.Context) ([]MenuItemDocument, []model.RecordDiagnostic, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "Name", Value: 1}}))
	if err != nil {
		return nil, nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var (
		docs        []MenuItemDocument
		diagnostics []model.RecordDiagnostic
	)
	for cursor.Next(ctx) {
		doc, diag := DecodeMenuItem(cursor.Current)
		if diag != nil {
			diagnostics = append(diagnostics, *diag)
			continue
		}
		docs = append(docs, doc)
	}
	if err := cursor.Err(); err != nil {
		return nil, nil, err
	}

	return docs, diagnostics, nil
}

// Upsert replaces menu items by name, inserting the ones that do not exist yet.
// It returns the number of documents inserted or modified.
func (r *MenuRepository) Upsert(ctx context.Context, docs []MenuItemDocument) (int64, error) {
	if len(docs) == 0 {
		return 0, nil
	}

	now := time.Now().UTC()
	writes := make([]mongo.WriteModel, 0, len(docs))
	for _, doc := range docs {
		doc.ID = primitive.NilObjectID
		if doc.UpdatedAt.IsZero() {
			doc.UpdatedAt = now
		}
		writes = append(writes, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"Name": doc.Name}).
			SetReplacement(doc).
			SetUpsert(true))
	}

	result, err := r.collection.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(true))
	if err != nil {
		return 0, err
	}
	return result.UpsertedCount + result.ModifiedCount, nil
}

// Delete removes the menu item with the given name. It reports whether a
// document was removed.
func (r *MenuRepository) Delete(ctx context.Context, name string) (bool, error) {
	result, err := r.collection.DeleteOne(ctx, bson.M{"Name": name})
	if err != nil {
		return false, err
	}
	return result.DeletedCount > 0, nil
}

// Count returns the number of stored menu documents, valid or not.
func (r *MenuRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

// DecodeMenuItem decodes one raw menu document. It returns a diagnostic naming
// the first offending field instead of an error.
func DecodeMenuItem(raw bson.Raw) (MenuItemDocument, *model.RecordDiagnostic) {
	var doc MenuItemDocument
	id := rawID(raw)
	reject := func(field, reason string) (MenuItemDocument, *model.RecordDiagnostic) {
		return MenuItemDocument{}, &model.RecordDiagnostic{ID: id, Field: field, Reason: reason}
	}

	if oid, ok := raw.Lookup("_id").ObjectIDOK(); ok {
		doc.ID = oid
	}

	name, reason := requiredString(raw, "Name")
	if reason != "" {
		return reject("Name", reason)
	}
	if name == "" {
		return reject("Name", "empty")
	}
	doc.Name = name

	priceValue, err := raw.LookupErr("Price")
	if err != nil {
		return reject("Price", "missing")
	}
	price, reason := numberValue(priceValue)
	if reason != "" {
		return reject("Price", reason)
	}
	if price.IsNegative() {
		return reject("Price", "negative")
	}
	if doc.Price, err = toDecimal128(price); err != nil {
		return reject("Price", "out of range")
	}

	if doc.Type, reason = requiredString(raw, "type"); reason != "" {
		return reject("type", reason)
	}

	for _, f := range []struct {
		name string
		dst  *string
	}{
		{"Description", &doc.Description},
		{"Image", &doc.Image},
		{"location", &doc.Location},
		{"mealDeal", &doc.MealDeal},
	} {
		if *f.dst, reason = optionalString(raw, f.name); reason != "" {
			return reject(f.name, reason)
		}
	}

	for _, f := range []struct {
		name string
		dst  *primitive.Decimal128
	}{
		{"SelectedVAT", &doc.VAT},
		{"mdPrice", &doc.MealDealPrice},
	} {
		v, err := raw.LookupErr(f.name)
		if err != nil || v.Type == bsontype.Null {
			continue
		}
		d, reason := numberValue(v)
		if reason != "" {
			return reject(f.name, reason)
		}
		if *f.dst, err = toDecimal128(d); err != nil {
			return reject(f.name, "out of range")
		}
	}

	if v, err := raw.LookupErr("size"); err == nil && v.Type != bsontype.Null {
		values, ok := v.ArrayOK()
		if !ok {
			return reject("size", "expected array, got "+v.Type.String())
		}
		elems, _ := values.Values()
		for _, e := range elems {
			s, ok := e.StringValueOK()
			if !ok {
				return reject("size", "expected string element, got "+e.Type.String())
			}
			doc.Sizes = append(doc.Sizes, s)
		}
	}

	if v, err := raw.LookupErr("sizePrice"); err == nil && v.Type != bsontype.Null {
		values, ok := v.ArrayOK()
		if !ok {
			return reject("sizePrice", "expected array, got "+v.Type.String())
		}
		elems, _ := values.Values()
		for _, e := range elems {
			d, reason := numberValue(e)
			if reason != "" {
				return reject("sizePrice", reason)
			}
			d128, err := toDecimal128(d)
			if err != nil {
				return reject("sizePrice", "out of range")
			}
			doc.SizePrices = append(doc.SizePrices, d128)
		}
	}

	// "time" is bookkeeping only; unknown encodings are ignored.
	if v, err := raw.LookupErr("time"); err == nil {
		switch v.Type {
		case bsontype.DateTime:
			doc.UpdatedAt = v.Time().UTC()
		case bsontype.Timestamp:
			t, _ := v.Timestamp()
			doc.UpdatedAt = time.Unix(int64(t), 0).UTC()
		}
	}

	return doc, nil
}

func rawID(raw bson.Raw) string {
	v, err := raw.LookupErr("_id")
	if err != nil {
		return ""
	}
	if oid, ok := v.ObjectIDOK(); ok {
		return oid.Hex()
	}
	if s, ok := v.StringValueOK(); ok {
		return s
	}
	return v.String()
}

func requiredString(raw bson.Raw, field string) (string, string) {
	v, err := raw.LookupErr(field)
	if err != nil {
		return "", "missing"
	}
	s, ok := v.StringValueOK()
	if !ok {
		return "", "expected string, got " + v.Type.String()
	}
	return s, ""
}

func optionalString(raw bson.Raw, field string) (string, string) {
	v, err := raw.LookupErr(field)
	if err != nil || v.Type == bsontype.Null {
		return "", ""
	}
	s, ok := v.StringValueOK()
	if !ok {
		return "", "expected string, got " + v.Type.String()
	}
	return s, ""
}

// numberValue accepts every numeric BSON type the menu has been written with.
func numberValue(v bson.RawValue) (decimal.Decimal, string) {
	switch v.Type {
	case bsontype.Double:
		return decimal.NewFromFloat(v.Double()), ""
	case bsontype.Int32:
		return decimal.NewFromInt32(v.Int32()), ""
	case bsontype.Int64:
		return decimal.NewFromInt(v.Int64()), ""
	case bsontype.Decimal128:
		d, err := decimal.NewFromString(v.Decimal128().String())
		if err != nil {
			return decimal.Zero, "not a finite number"
		}
		return d, ""
	default:
		return decimal.Zero, "expected number, got " + v.Type.String()
	}
}

func toDecimal128(d decimal.Decimal) (primitive.Decimal128, error) {
	return primitive.ParseDecimal128(d.String())
}

func fromDecimal128(d primitive.Decimal128) decimal.Decimal {
	if d == (primitive.Decimal128{}) {
		return decimal.Zero
	}
	parsed, err := decimal.NewFromString(d.String())
	if err != nil {
		return decimal.Zero
	}
	return parsed
}
