package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"restaurant-service/internal/entity"
)

const restaurantCollection = "restaurants"

// RestaurantRepository reads the restaurant document from MongoDB.
type RestaurantRepository struct {
	client *mongo.Client
	coll   *mongo.Collection
	uid    string
}

// NewRestaurantRepository reads from database.restaurants. When uid is set
// only the document whose hotelParam.UID matches is served.
func NewRestaurantRepository(client *mongo.Client, database, uid string) *RestaurantRepository {
	return &RestaurantRepository{
		client: client,
		coll:   client.Database(database).Collection(restaurantCollection),
		uid:    uid,
	}
}

func (r *RestaurantRepository) FetchRestaurantData(ctx context.Context) (*entity.RestaurantData, error) {
	filter := bson.M{}
	if r.uid != "" {
		filter = bson.M{"hotelParam.UID": r.uid}
	}

	var data entity.RestaurantData
	err := r.coll.FindOne(ctx, filter).Decode(&data)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrRestaurantNotFound
		}
		return nil, err
	}
	return &data, nil
}

// SaveRestaurantData replaces the stored document, inserting it when absent.
func (r *RestaurantRepository) SaveRestaurantData(ctx context.Context, data *entity.RestaurantData) error {
	filter := bson.M{"hotelParam.UID": data.HotelParam.UID}
	_, err := r.coll.ReplaceOne(ctx, filter, data, options.Replace().SetUpsert(true))
	return err
}

func (r *RestaurantRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, readpref.Primary())
}

// SeedFromFile loads a restaurant document from a JSON file and stores it.
func (r *RestaurantRepository) SeedFromFile(ctx context.Context, path string) error {
	data, err := readRestaurantFile(path)
	if err != nil {
		return err
	}
	if err := r.SaveRestaurantData(ctx, data); err != nil {
		return fmt.Errorf("save seed data: %w", err)
	}
	logger.Info().Str("restaurant", data.HotelParam.Name).Msgf("Seeded restaurant data from %s", path)
	return nil
}

func readRestaurantFile(path string) (*entity.RestaurantData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var data entity.RestaurantData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	if data.HotelParam.UID == "" {
		return nil, fmt.Errorf("seed file %s: hotelParam.UID is required", path)
	}
	return &data, nil
}
