package domain

import "time"

type UserFavorite struct {
	ID        int64     `json:"id" db:"id"`
	UserEmail string    `json:"userEmail" db:"user_email"`
	ProductID int64     `json:"productId" db:"product_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type AddFavoriteInput struct {
	UserEmail string `json:"userEmail" validate:"required,max=320"`
	ProductID int64  `json:"productId" validate:"required,gt=0"`
}
