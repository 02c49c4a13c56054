package database

import (
	"context"
	"log"
	"time"

	"Backend-ScholarDB/src/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// DB ถือ client และ collection ทั้งหมดของระบบ ส่งต่อให้ service ผ่าน constructor
type DB struct {
	Client *mongo.Client

	UserCollection         *mongo.Collection
	ScholarCollection      *mongo.Collection
	ScholarFieldCollection *mongo.Collection
	StudentCollection      *mongo.Collection
}

// ConnectMongoDB เชื่อมต่อกับ MongoDB แล้วเตรียม collection handle
func ConnectMongoDB(cfg *config.Config) (*DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, err
	}

	// ตรวจสอบการเชื่อมต่อ
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, err
	}

	log.Println("✅ MongoDB connected successfully")

	db := client.Database(cfg.MongoDBName)
	return &DB{
		Client:                 client,
		UserCollection:         db.Collection("users"),
		ScholarCollection:      db.Collection("scholars"),
		ScholarFieldCollection: db.Collection("scholar_fields"),
		StudentCollection:      db.Collection("students"),
	}, nil
}

// Disconnect ปิดการเชื่อมต่อ MongoDB
func (d *DB) Disconnect(ctx context.Context) error {
	return d.Client.Disconnect(ctx)
}
