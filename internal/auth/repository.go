package auth

import (
	"context"
	"errors"

	"etik/internal/operators"

	"gorm.io/gorm"
)

type Repository interface {
	CreateOperator(ctx context.Context, op *operators.Operator) error
	GetOperatorByEmail(ctx context.Context, email string) (*operators.Operator, error)
	GetOperatorByID(ctx context.Context, id string) (*operators.Operator, error)
	UpdateOperatorPassword(ctx context.Context, operatorID string, hashedPassword string) error
	EmailExists(ctx context.Context, email string) (bool, error)
	// CreateFirstOperator inserts op only while the table is empty
	CreateFirstOperator(ctx context.Context, op *operators.Operator) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{
		db: db,
	}
}

func (r *repository) CreateOperator(ctx context.Context, op *operators.Operator) error {
	return r.db.WithContext(ctx).Create(op).Error
}

func (r *repository) GetOperatorByEmail(ctx context.Context, email string) (*operators.Operator, error) {
	var op operators.Operator
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&op).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOperatorNotFound
		}
		return nil, err
	}
	return &op, nil
}

func (r *repository) GetOperatorByID(ctx context.Context, id string) (*operators.Operator, error) {
	var op operators.Operator
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&op).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOperatorNotFound
		}
		return nil, err
	}
	return &op, nil
}

func (r *repository) UpdateOperatorPassword(ctx context.Context, operatorID string, hashedPassword string) error {
	result := r.db.WithContext(ctx).Model(&operators.Operator{}).
		Where("id = ?", operatorID).
		Update("password", hashedPassword)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrOperatorNotFound
	}

	return nil
}

func (r *repository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&operators.Operator{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) CreateFirstOperator(ctx context.Context, op *operators.Operator) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Self-conflicting lock: a second bootstrap waits here until the first commits
		if err := tx.Exec("LOCK TABLE operators IN SHARE ROW EXCLUSIVE MODE").Error; err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&operators.Operator{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrAlreadyBootstrapped
		}
		return tx.Create(op).Error
	})
}
