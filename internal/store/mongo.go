package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"cookieTriviaAPI/internal/leaderboard"
	"cookieTriviaAPI/internal/trivia"
)

// Collection names match the original Mongoose deployment, so the store can
// run against an existing database.
const (
	triviaCollection     = "trivias"
	topEarnerCollection  = "topearners"
	mongoDisconnectGrace = 5 * time.Second
)

type questionDoc struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Question string             `bson:"question"`
	Answer   string             `bson:"answer"`
}

type topEarnerDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	UserName    string             `bson:"userName"`
	UserDate    int64              `bson:"userDate"`
	CookieCount int                `bson:"cookieCount"`
}

// MongoStore is the document-database Store backend.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewMongoStore(ctx context.Context, uri, dbName string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	return &MongoStore{client: client, db: client.Database(dbName)}, nil
}

func (s *MongoStore) SampleQuestion(ctx context.Context) (trivia.Question, error) {
	pipeline := []bson.M{{"$sample": bson.M{"size": 1}}}

	cursor, err := s.db.Collection(triviaCollection).Aggregate(ctx, pipeline)
	if err != nil {
		return trivia.Question{}, fmt.Errorf("failed to sample question: %w", err)
	}
	defer cursor.Close(ctx)

	if !cursor.Next(ctx) {
		if err := cursor.Err(); err != nil {
			return trivia.Question{}, fmt.Errorf("failed to sample question: %w", err)
		}
		return trivia.Question{}, ErrNoQuestions
	}

	doc := questionDoc{}
	if err := cursor.Decode(&doc); err != nil {
		return trivia.Question{}, fmt.Errorf("failed to decode question: %w", err)
	}

	return questionFromDoc(doc), nil
}

func (s *MongoStore) GetQuestion(ctx context.Context, id string) (trivia.Question, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return trivia.Question{}, ErrQuestionNotFound
	}

	doc := questionDoc{}
	err = s.db.Collection(triviaCollection).FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return trivia.Question{}, ErrQuestionNotFound
		}
		return trivia.Question{}, fmt.Errorf("failed to get question: %w", err)
	}

	return questionFromDoc(doc), nil
}

func (s *MongoStore) InsertQuestion(ctx context.Context, q trivia.Question) (string, error) {
	doc := questionDoc{Question: q.Question, Answer: q.Answer}
	if q.ID != "" {
		oid, err := primitive.ObjectIDFromHex(q.ID)
		if err != nil {
			return "", fmt.Errorf("invalid question id %q: %w", q.ID, err)
		}
		doc.ID = oid
	}

	res, err := s.db.Collection(triviaCollection).InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("failed to insert question: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

func (s *MongoStore) ListTopEarners(ctx context.Context) ([]leaderboard.TopEarner, error) {
	cursor, err := s.db.Collection(topEarnerCollection).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list top earners: %w", err)
	}
	defer cursor.Close(ctx)

	docs := []topEarnerDoc{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to read top earners: %w", err)
	}

	earners := make([]leaderboard.TopEarner, 0, len(docs))
	for _, doc := range docs {
		earners = append(earners, leaderboard.TopEarner{
			UserName:    doc.UserName,
			UserDate:    doc.UserDate,
			CookieCount: doc.CookieCount,
		})
	}
	return earners, nil
}

func (s *MongoStore) InsertTopEarner(ctx context.Context, entry leaderboard.TopEarner) error {
	doc := topEarnerDoc{
		UserName:    entry.UserName,
		UserDate:    entry.UserDate,
		CookieCount: entry.CookieCount,
	}

	if _, err := s.db.Collection(topEarnerCollection).InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to insert top earner: %w", err)
	}
	return nil
}

func (s *MongoStore) UpdateTopEarner(ctx context.Context, match, updated leaderboard.TopEarner) error {
	update := bson.M{"$set": bson.M{
		"userName":    updated.UserName,
		"userDate":    updated.UserDate,
		"cookieCount": updated.CookieCount,
	}}

	res, err := s.db.Collection(topEarnerCollection).UpdateOne(ctx, matchFilter(match), update)
	if err != nil {
		return fmt.Errorf("failed to update top earner: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrEntryNotFound
	}
	return nil
}

func (s *MongoStore) DeleteTopEarner(ctx context.Context, match leaderboard.TopEarner) error {
	res, err := s.db.Collection(topEarnerCollection).DeleteOne(ctx, matchFilter(match))
	if err != nil {
		return fmt.Errorf("failed to delete top earner: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrEntryNotFound
	}
	return nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *MongoStore) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), mongoDisconnectGrace)
	defer cancel()
	_ = s.client.Disconnect(ctx)
}

func questionFromDoc(doc questionDoc) trivia.Question {
	return trivia.Question{ID: doc.ID.Hex(), Question: doc.Question, Answer: doc.Answer}
}

func matchFilter(match leaderboard.TopEarner) bson.M {
	return bson.M{
		"userName":    match.UserName,
		"userDate":    match.UserDate,
		"cookieCount": match.CookieCount,
	}
}
