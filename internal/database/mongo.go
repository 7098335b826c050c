package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectMongoDB opens a client and verifies the connection with a ping.
func ConnectMongoDB(uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return client, nil
}

// EnsureIndexes creates the unique indexes the uniqueness rules depend on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("users").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("users_email_unique"),
		},
		{
			Keys:    bson.D{{Key: "registrationNumber", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("users_regno_unique"),
		},
		{
			Keys:    bson.D{{Key: "phoneNumber", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("users_phone_unique"),
		},
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("coordinators").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("coordinators_email_unique"),
		},
		{
			Keys:    bson.D{{Key: "phone", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("coordinators_phone_unique"),
		},
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("admins").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("admins_email_unique"),
		},
		{
			Keys:    bson.D{{Key: "phoneNumber", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("admins_phone_unique"),
		},
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("events").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "date", Value: 1}},
			Options: options.Index().SetName("events_date"),
		},
		{
			Keys:    bson.D{{Key: "coordinators", Value: 1}},
			Options: options.Index().SetName("events_coordinators"),
		},
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("payments").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "orderId", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("payments_order_unique"),
	})
	return err
}
