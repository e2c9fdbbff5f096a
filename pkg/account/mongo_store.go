package account

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	mongodb "github.com/dmitrymomot/authgate/pkg/mongo"
)

// DefaultMongoCollection is the collection used by NewMongoStore.
const DefaultMongoCollection = "accounts"

type accountDocument struct {
	ID                string            `bson:"_id"`
	Username          string            `bson:"username"`
	Email             string            `bson:"email"`
	CreatedAt         time.Time         `bson:"created_at"`
	Roles             int64             `bson:"roles"`
	Methods           map[string]string `bson:"methods"`
	VerificationToken *string           `bson:"verification_token,omitempty"`
}

// MongoStore implements Store on a MongoDB collection. Methods are embedded
// in the account document keyed by the decimal tag.
type MongoStore struct {
	coll *mongo.Collection
}

// NewMongoStore returns a store on db.accounts. Call EnsureIndexes once
// before serving traffic.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{coll: db.Collection(DefaultMongoCollection)}
}

// EnsureIndexes creates the unique username and email indexes.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		return errors.Join(ErrStorage, err)
	}
	return nil
}

func (s *MongoStore) Register(ctx context.Context, acc *Account) error {
	if err := acc.Methods.validate(); err != nil {
		return err
	}

	doc := accountDocument{
		ID:                acc.ID.String(),
		Username:          acc.Username,
		Email:             acc.Email,
		CreatedAt:         acc.CreatedAt,
		Roles:             int64(acc.Roles),
		Methods:           make(map[string]string, len(acc.Methods)),
		VerificationToken: acc.VerificationToken,
	}
	for tag, value := range acc.Methods {
		doc.Methods[methodKey(tag)] = value
	}

	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		if mongodb.IsDuplicateKeyError(err) {
			return ErrDuplicateAccount
		}
		return errors.Join(ErrStorage, err)
	}
	return nil
}

func (s *MongoStore) GetByID(ctx context.Context, id uuid.UUID) (*Account, error) {
	return s.findOne(ctx, byID(id))
}

func (s *MongoStore) GetByUsername(ctx context.Context, username string) (*Account, error) {
	return s.findOne(ctx, bson.D{{Key: "username", Value: username}})
}

func (s *MongoStore) GetByEmail(ctx context.Context, email string) (*Account, error) {
	return s.findOne(ctx, bson.D{{Key: "email", Value: email}})
}

func (s *MongoStore) findOne(ctx context.Context, filter bson.D) (*Account, error) {
	var doc accountDocument
	if err := s.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrAccountNotFound
		}
		return nil, errors.Join(ErrStorage, err)
	}
	return doc.account()
}

func (s *MongoStore) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.coll.DeleteOne(ctx, byID(id))
	if err != nil {
		return errors.Join(ErrStorage, err)
	}
	if res.DeletedCount == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func (s *MongoStore) Verify(ctx context.Context, id uuid.UUID) error {
	return s.updateOne(ctx, byID(id), bson.D{{Key: "$unset", Value: bson.D{{Key: "verification_token", Value: ""}}}})
}

func (s *MongoStore) AuthenticationMethods(ctx context.Context, id uuid.UUID) ([]Tag, error) {
	acc, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return acc.Methods.Tags(), nil
}

func (s *MongoStore) UpdateAuthenticationMethod(ctx context.Context, id uuid.UUID, tag Tag, value string) error {
	if !tag.Valid() {
		return ErrInvalidTag
	}
	return s.updateOne(ctx, byID(id), bson.D{{Key: "$set", Value: bson.D{{Key: "methods." + methodKey(tag), Value: value}}}})
}

// RemoveAuthenticationMethod matches only documents that hold tag and at
// least one other method, so the guard and the removal are one atomic write.
func (s *MongoStore) RemoveAuthenticationMethod(ctx context.Context, id uuid.UUID, tag Tag) error {
	field := "methods." + methodKey(tag)
	filter := bson.D{
		{Key: "_id", Value: id.String()},
		{Key: field, Value: bson.D{{Key: "$exists", Value: true}}},
		{Key: "$expr", Value: bson.D{{Key: "$gt", Value: bson.A{
			bson.D{{Key: "$size", Value: bson.D{{Key: "$objectToArray", Value: "$methods"}}}},
			1,
		}}}},
	}

	res, err := s.coll.UpdateOne(ctx, filter, bson.D{{Key: "$unset", Value: bson.D{{Key: field, Value: ""}}}})
	if err != nil {
		return errors.Join(ErrStorage, err)
	}
	if res.MatchedCount > 0 {
		return nil
	}

	// Nothing matched; work out which precondition failed.
	acc, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if len(acc.Methods) <= 1 {
		return ErrLastMethod
	}
	return ErrMethodNotFound
}

func (s *MongoStore) updateOne(ctx context.Context, filter, update bson.D) error {
	res, err := s.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return errors.Join(ErrStorage, err)
	}
	if res.MatchedCount == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func byID(id uuid.UUID) bson.D {
	return bson.D{{Key: "_id", Value: id.String()}}
}

func methodKey(tag Tag) string {
	return strconv.Itoa(int(tag))
}

func (d accountDocument) account() (*Account, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, errors.Join(ErrStorage, err)
	}

	methods := make(Methods, len(d.Methods))
	for k, v := range d.Methods {
		n, err := strconv.ParseInt(k, 10, 16)
		if err != nil {
			return nil, errors.Join(ErrStorage, err)
		}
		methods[Tag(n)] = v
	}

	return &Account{
		ID:                id,
		Username:          d.Username,
		Email:             d.Email,
		CreatedAt:         d.CreatedAt.UTC(),
		Roles:             uint64(d.Roles),
		Methods:           methods,
		VerificationToken: d.VerificationToken,
	}, nil
}
