package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"foodapp/internal/domain/entity"
	"foodapp/internal/domain/repository"
	"foodapp/pkg/errors"
)

type firestoreAccountRepository struct {
	client *firestore.Client
}

func NewFirestoreAccountRepository(client *firestore.Client) repository.AccountRepository {
	return &firestoreAccountRepository{
		client: client,
	}
}

func (r *firestoreAccountRepository) Create(ctx context.Context, account *entity.Account) error {
	now := time.Now()
	account.CreatedAt = now
	account.UpdatedAt = now

	_, err := r.client.Collection("accounts").Doc(account.ID).Set(ctx, account)
	if err != nil {
		return errors.Internal("Failed to create account", err)
	}

	return nil
}

func (r *firestoreAccountRepository) GetByID(ctx context.Context, id string) (*entity.Account, error) {
	doc, err := r.client.Collection("accounts").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Account", nil)
		}
		return nil, errors.Internal("Failed to get account", err)
	}

	var account entity.Account
	if err := doc.DataTo(&account); err != nil {
		return nil, errors.Internal("Failed to parse account data", err)
	}
	account.ID = doc.Ref.ID

	return &account, nil
}

func (r *firestoreAccountRepository) GetByEmail(ctx context.Context, email string) (*entity.Account, error) {
	query := r.client.Collection("accounts").Where("email", "==", email).Limit(1)
	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to query account by email", err)
	}
	if len(docs) == 0 {
		return nil, errors.NotFound("Account", nil)
	}

	var account entity.Account
	if err := docs[0].DataTo(&account); err != nil {
		return nil, errors.Internal("Failed to parse account data", err)
	}
	account.ID = docs[0].Ref.ID

	return &account, nil
}

func (r *firestoreAccountRepository) Update(ctx context.Context, account *entity.Account) error {
	updateData := map[string]interface{}{
		"firstName":   account.FirstName,
		"lastName":    account.LastName,
		"phoneNumber": account.PhoneNumber,
		"avatar":      account.Avatar,
		"storeId":     account.StoreID,
		"isVerified":  account.IsVerified,
		"updatedAt":   time.Now(),
	}

	_, err := r.client.Collection("accounts").Doc(account.ID).Set(ctx, updateData, firestore.MergeAll)
	if err != nil {
		return errors.Internal("Failed to update account", err)
	}

	return nil
}
