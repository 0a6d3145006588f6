package repository

import (
	"context"
	"errors"
	"regexp"
	"time"

	"fleet-registry/lib/apperrors"
	"fleet-registry/services/fleet/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionName = "vehicles"

// sortableFields is the whitelist of fields a client may sort by. Anything
// else falls back to createdAt.
var sortableFields = map[string]bool{
	"createdAt":         true,
	"updatedAt":         true,
	"vehicleName":       true,
	"driverName":        true,
	"vehicleType":       true,
	"status":            true,
	"source":            true,
	"destination":       true,
	"fuelEfficiency":    true,
	"estimatedFuelCost": true,
}

type MongoVehicleRepository struct {
	collection *mongo.Collection
}

func NewMongoVehicleRepository(client *mongo.Client, database string) *MongoVehicleRepository {
	return &MongoVehicleRepository{
		collection: client.Database(database).Collection(CollectionName),
	}
}

func (r *MongoVehicleRepository) Insert(ctx context.Context, v *models.Vehicle) (*models.Vehicle, error) {
	now := time.Now()
	v.ID = primitive.NewObjectID()
	v.CreatedAt = now
	v.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (r *MongoVehicleRepository) GetByID(ctx context.Context, id string) (*models.Vehicle, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.ErrNotFound
	}

	var v models.Vehicle
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&v)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *MongoVehicleRepository) Update(ctx context.Context, id string, v *models.Vehicle) (*models.Vehicle, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.ErrNotFound
	}

	// Full-record replace of the mutable fields; _id and createdAt stay put.
	update := bson.M{"$set": bson.M{
		"vehicleName":       v.VehicleName,
		"driverName":        v.DriverName,
		"conductorName":     v.ConductorName,
		"vehicleType":       v.VehicleType,
		"source":            v.Source,
		"destination":       v.Destination,
		"status":            v.Status,
		"isActive":          v.IsActive,
		"fuelEfficiency":    v.FuelEfficiency,
		"estimatedFuelCost": v.EstimatedFuelCost,
		"updatedAt":         time.Now(),
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Vehicle
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": objectID}, update, opts).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *MongoVehicleRepository) DeleteByID(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperrors.ErrNotFound
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *MongoVehicleRepository) Query(ctx context.Context, q ListQuery) ([]models.Vehicle, int64, error) {
	filter := BuildListFilter(q)

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(SortSpec(q.SortBy, q.SortOrder)).
		SetSkip(q.Skip).
		SetLimit(q.Limit)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	vehicles := []models.Vehicle{}
	if err := cursor.All(ctx, &vehicles); err != nil {
		return nil, 0, err
	}
	return vehicles, total, nil
}

func (r *MongoVehicleRepository) CountAll(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

func (r *MongoVehicleRepository) CountActive(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"isActive": true})
}

func (r *MongoVehicleRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"status": status})
}

func (r *MongoVehicleRepository) CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"createdAt": bson.M{"$gte": from, "$lt": to}})
}

func (r *MongoVehicleRepository) StatusBreakdown(ctx context.Context) (map[string]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	breakdown := make(map[string]int64)
	for cursor.Next(ctx) {
		var row struct {
			Status string `bson:"_id"`
			Count  int64  `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, err
		}
		breakdown[row.Status] = row.Count
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return breakdown, nil
}

// BuildListFilter translates a ListQuery into a Mongo filter: substring
// search is a case-insensitive regex ORed across the four text fields, and
// the status constraint is ANDed on top.
func BuildListFilter(q ListQuery) bson.M {
	filter := bson.M{}

	if q.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(q.Search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"vehicleName": pattern},
			bson.M{"driverName": pattern},
			bson.M{"source": pattern},
			bson.M{"destination": pattern},
		}
	}

	if q.Status != "" {
		filter["status"] = q.Status
	}

	return filter
}

// SortSpec returns the sort document for a whitelisted field, descending
// unless "asc" is asked for.
func SortSpec(sortBy, sortOrder string) bson.D {
	if !sortableFields[sortBy] {
		sortBy = "createdAt"
	}
	direction := -1
	if sortOrder == "asc" {
		direction = 1
	}
	return bson.D{{Key: sortBy, Value: direction}}
}
