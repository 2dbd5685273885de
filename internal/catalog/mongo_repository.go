package catalog

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var newestFirst = options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

type mongoBookRepository struct {
	collection *mongo.Collection
}

func NewMongoBookRepository(db *mongo.Database) BookRepository {
	return &mongoBookRepository{collection: db.Collection("books")}
}

func (m *mongoBookRepository) List(ctx context.Context) ([]Book, error) {
	return m.find(ctx, bson.M{})
}

func (m *mongoBookRepository) GetByID(ctx context.Context, id string) (*Book, error) {
	var book Book
	err := m.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&book)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get book: %w", err)
	}
	return &book, nil
}

// SearchByTitle matches titles beginning with the prefix, case-insensitive,
// same as the storefront search box.
func (m *mongoBookRepository) SearchByTitle(ctx context.Context, prefix string) ([]Book, error) {
	filter := bson.M{"title": primitive.Regex{
		Pattern: "^" + regexp.QuoteMeta(prefix),
		Options: "i",
	}}
	return m.find(ctx, filter)
}

func (m *mongoBookRepository) ByCategory(ctx context.Context, category string) ([]Book, error) {
	return m.find(ctx, bson.M{"category": category})
}

func (m *mongoBookRepository) Bestsellers(ctx context.Context) ([]Book, error) {
	return m.find(ctx, bson.M{"bestseller": true})
}

func (m *mongoBookRepository) Create(ctx context.Context, book *Book) (string, error) {
	if book.ID == "" {
		book.ID = uuid.NewString()
	}
	book.CreatedAt = time.Now()

	_, err := m.collection.InsertOne(ctx, book)
	if err != nil {
		return "", fmt.Errorf("failed to create book: %w", err)
	}
	return book.ID, nil
}

func (m *mongoBookRepository) Update(ctx context.Context, book *Book) error {
	filter := bson.M{"_id": book.ID}
	update := bson.M{"$set": bson.M{
		"title":       book.Title,
		"author":      book.Author,
		"image":       book.Image,
		"price":       book.Price,
		"language":    book.Language,
		"pages":       book.Pages,
		"publication": book.Publication,
		"category":    book.Category,
		"description": book.Description,
		"bestseller":  book.Bestseller,
	}}

	result, err := m.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update book: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *mongoBookRepository) Delete(ctx context.Context, id string) error {
	result, err := m.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *mongoBookRepository) find(ctx context.Context, filter bson.M) ([]Book, error) {
	cursor, err := m.collection.Find(ctx, filter, newestFirst)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	defer cursor.Close(ctx)

	var books []Book
	if err := cursor.All(ctx, &books); err != nil {
		return nil, fmt.Errorf("failed to decode books: %w", err)
	}
	return books, nil
}

type mongoEbookRepository struct {
	collection *mongo.Collection
}

func NewMongoEbookRepository(db *mongo.Database) EbookRepository {
	return &mongoEbookRepository{collection: db.Collection("ebooks")}
}

func (m *mongoEbookRepository) List(ctx context.Context) ([]Ebook, error) {
	return m.find(ctx, bson.M{})
}

func (m *mongoEbookRepository) GetByID(ctx context.Context, id string) (*Ebook, error) {
	var ebook Ebook
	err := m.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&ebook)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get ebook: %w", err)
	}
	return &ebook, nil
}

func (m *mongoEbookRepository) SearchByTitle(ctx context.Context, prefix string) ([]Ebook, error) {
	filter := bson.M{"title": primitive.Regex{
		Pattern: "^" + regexp.QuoteMeta(prefix),
		Options: "i",
	}}
	return m.find(ctx, filter)
}

func (m *mongoEbookRepository) ByCategory(ctx context.Context, category string) ([]Ebook, error) {
	return m.find(ctx, bson.M{"category": category})
}

func (m *mongoEbookRepository) Create(ctx context.Context, ebook *Ebook) (string, error) {
	if ebook.ID == "" {
		ebook.ID = uuid.NewString()
	}
	ebook.CreatedAt = time.Now()

	_, err := m.collection.InsertOne(ctx, ebook)
	if err != nil {
		return "", fmt.Errorf("failed to create ebook: %w", err)
	}
	return ebook.ID, nil
}

func (m *mongoEbookRepository) Delete(ctx context.Context, id string) error {
	result, err := m.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete ebook: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *mongoEbookRepository) find(ctx context.Context, filter bson.M) ([]Ebook, error) {
	cursor, err := m.collection.Find(ctx, filter, newestFirst)
	if err != nil {
		return nil, fmt.Errorf("failed to list ebooks: %w", err)
	}
	defer cursor.Close(ctx)

	var ebooks []Ebook
	if err := cursor.All(ctx, &ebooks); err != nil {
		return nil, fmt.Errorf("failed to decode ebooks: %w", err)
	}
	return ebooks, nil
}
