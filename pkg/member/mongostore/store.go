// Package mongostore implements member.ConditionalStore on MongoDB.
//
// Members are stored one document per member in the "members" collection,
// keyed by _id. Conditional session clearing is a single UpdateOne filtered
// on both _id and session_token.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/memberauth/pkg/member"
)

const CollectionName = "members"

type document struct {
	ID            string     `bson:"_id"`
	PasswordHash  *string    `bson:"password_hash"`
	Name          string     `bson:"name"`
	Phone         string     `bson:"phone_number"`
	IsWorker      bool       `bson:"is_worker"`
	IsAdmin       bool       `bson:"is_admin"`
	SessionToken  *string    `bson:"session_token"`
	SessionExpiry *time.Time `bson:"session_expiry"`
}

func fromMember(m *member.Member) document {
	return document{
		ID:            m.ID,
		PasswordHash:  m.PasswordHash,
		Name:          m.Name,
		Phone:         m.Phone,
		IsWorker:      m.IsWorker,
		IsAdmin:       m.IsAdmin,
		SessionToken:  m.SessionToken,
		SessionExpiry: m.SessionExpiry,
	}
}

func (d document) toMember() *member.Member {
	m := &member.Member{
		ID:           d.ID,
		PasswordHash: d.PasswordHash,
		Name:         d.Name,
		Phone:        d.Phone,
		IsWorker:     d.IsWorker,
		IsAdmin:      d.IsAdmin,
		SessionToken: d.SessionToken,
	}
	if d.SessionExpiry != nil {
		e := d.SessionExpiry.UTC()
		m.SessionExpiry = &e
	}
	return m
}

// Store is a MongoDB backed member store.
type Store struct {
	coll *mongo.Collection
}

var _ member.ConditionalStore = (*Store)(nil)

func New(db *mongo.Database) *Store {
	return &Store{coll: db.Collection(CollectionName)}
}

func (s *Store) FindByID(ctx context.Context, id string) (*member.Member, error) {
	return s.findOne(ctx, bson.D{{Key: "_id", Value: id}})
}

func (s *Store) FindByIDAndSessionToken(ctx context.Context, id, token string) (*member.Member, error) {
	return s.findOne(ctx, bson.D{{Key: "_id", Value: id}, {Key: "session_token", Value: token}})
}

func (s *Store) findOne(ctx context.Context, filter bson.D) (*member.Member, error) {
	var doc document
	err := s.coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, member.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find member: %w", err)
	}
	return doc.toMember(), nil
}

func (s *Store) UpdateSession(ctx context.Context, id string, token *string, expiry *time.Time) error {
	var exp *time.Time
	if expiry != nil {
		e := expiry.UTC()
		exp = &e
	}
	res, err := s.coll.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "session_token", Value: token},
			{Key: "session_expiry", Value: exp},
		}}},
	)
	if err != nil {
		return fmt.Errorf("update member session: %w", err)
	}
	if res.MatchedCount == 0 {
		return member.ErrNotFound
	}
	return nil
}

func (s *Store) ClearSessionIfToken(ctx context.Context, id, token string) error {
	res, err := s.coll.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id}, {Key: "session_token", Value: token}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "session_token", Value: nil},
			{Key: "session_expiry", Value: nil},
		}}},
	)
	if err != nil {
		return fmt.Errorf("clear member session: %w", err)
	}
	if res.MatchedCount == 0 {
		return member.ErrNotFound
	}
	return nil
}

// Upsert inserts m or replaces the stored document with the same id.
func (s *Store) Upsert(ctx context.Context, m *member.Member) error {
	if m == nil || m.ID == "" {
		return member.ErrInvalidMember
	}
	_, err := s.coll.ReplaceOne(ctx,
		bson.D{{Key: "_id", Value: m.ID}},
		fromMember(m),
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("upsert member: %w", err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}}); err != nil {
		return fmt.Errorf("delete member: %w", err)
	}
	return nil
}
