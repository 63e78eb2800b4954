package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"relaychat/data/database/mgo/mongoutil"
	chatmodel "relaychat/module/chat/model"
	usermodel "relaychat/module/user/model"
	"relaychat/tools/errs"
	"relaychat/tools/ids"
)

type MongoStore struct {
	userColl *mongo.Collection
	msgColl  *mongo.Collection
}

func NewMongoStore(cli *mongoutil.Client) *MongoStore {
	u := usermodel.User{}
	m := chatmodel.Message{}
	return &MongoStore{
		userColl: cli.GetDB().Collection(u.GetTableName()),
		msgColl:  cli.GetDB().Collection(m.GetTableName()),
	}
}

func (s *MongoStore) FindOrCreateUser(ctx context.Context, name, phone string) (*usermodel.User, error) {
	now := time.Now().UTC()
	// atomic upsert keyed on phone; concurrent registrations converge on
	// one record
	filter := bson.M{"phone": phone}
	update := bson.M{"$setOnInsert": bson.M{
		"user_id":    ids.GenerateString(),
		"name":       name,
		"phone":      phone,
		"created_at": now,
	}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var u usermodel.User
	if err := s.userColl.FindOneAndUpdate(ctx, filter, update, opts).Decode(&u); err != nil {
		return nil, errs.ErrStorage.WrapMsg("find or create user failed", "phone", phone, "err", err)
	}
	return &u, nil
}

func (s *MongoStore) GetUser(ctx context.Context, id string) (*usermodel.User, error) {
	var u usermodel.User
	err := s.userColl.FindOne(ctx, bson.M{"user_id": id}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errs.ErrNotFound.WrapMsg("user not found", "user_id", id)
	}
	if err != nil {
		return nil, errs.ErrStorage.WrapMsg("get user failed", "user_id", id, "err", err)
	}
	return &u, nil
}

func (s *MongoStore) ListUsers(ctx context.Context) ([]*usermodel.User, error) {
	cur, err := s.userColl.Find(ctx, bson.M{})
	if err != nil {
		return nil, errs.ErrStorage.WrapMsg("list users failed", "err", err)
	}
	defer func() { _ = cur.Close(ctx) }()

	var out []*usermodel.User
	if err := cur.All(ctx, &out); err != nil {
		return nil, errs.ErrStorage.WrapMsg("decode users failed", "err", err)
	}
	return out, nil
}

func (s *MongoStore) AppendMessage(ctx context.Context, from, to, text string) (*chatmodel.Message, error) {
	m := &chatmodel.Message{
		MsgID:     ids.GenerateString(),
		From:      from,
		To:        to,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.msgColl.InsertOne(ctx, m); err != nil {
		return nil, errs.ErrStorage.WrapMsg("append message failed", "from", from, "to", to, "err", err)
	}
	return m, nil
}

func (s *MongoStore) ListMessages(ctx context.Context, a, b string) ([]*chatmodel.Message, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"from": a, "to": b},
		bson.M{"from": b, "to": a},
	}}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	cur, err := s.msgColl.Find(ctx, filter, opts)
	if err != nil {
		return nil, errs.ErrStorage.WrapMsg("list messages failed", "a", a, "b", b, "err", err)
	}
	defer func() { _ = cur.Close(ctx) }()

	var out []*chatmodel.Message
	if err := cur.All(ctx, &out); err != nil {
		return nil, errs.ErrStorage.WrapMsg("decode messages failed", "err", err)
	}
	return out, nil
}
