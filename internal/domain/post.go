package domain

import "time"

type DonationPost struct {
	PostID        string    `json:"id" dynamodbav:"post_id"`
	DonationType  string    `json:"donation_type" dynamodbav:"donation_type"`
	DonationImage *string   `json:"donation_image" dynamodbav:"donation_image"`
	AuthorID      string    `json:"author_id" dynamodbav:"author_id"`
	Location      string    `json:"location" dynamodbav:"location"`
	Status        string    `json:"status" dynamodbav:"status"`
	FixerID       *string   `json:"fixer_id" dynamodbav:"fixer_id"`
	CreatedAt     time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt     time.Time `json:"updated" dynamodbav:"updated_at"`
}

type CreateDonationPostRequest struct {
	DonationType  string  `json:"donation_type" validate:"required"`
	DonationImage *string `json:"donation_image"`
	Location      string  `json:"location" validate:"required"`
	Status        string  `json:"status" validate:"omitempty,max=32"`
	FixerID       *string `json:"fixer_id"`
}

type UpdateDonationPostRequest struct {
	DonationType  *string `json:"donation_type" validate:"omitempty,min=1"`
	DonationImage *string `json:"donation_image"`
	Location      *string `json:"location" validate:"omitempty,min=1"`
	Status        *string `json:"status" validate:"omitempty,max=32"`
	FixerID       *string `json:"fixer_id"`
}

type PetPost struct {
	PostID      string    `json:"id" dynamodbav:"post_id"`
	PetName     string    `json:"pet_name" dynamodbav:"pet_name"`
	Species     string    `json:"species" dynamodbav:"species"`
	Breed       *string   `json:"breed" dynamodbav:"breed"`
	Age         *int      `json:"age" dynamodbav:"age"`
	Description string    `json:"description" dynamodbav:"description"`
	PetImage    *string   `json:"pet_image" dynamodbav:"pet_image"`
	AuthorID    string    `json:"author_id" dynamodbav:"author_id"`
	Location    string    `json:"location" dynamodbav:"location"`
	Status      string    `json:"status" dynamodbav:"status"`
	AdopterID   *string   `json:"adopter_id" dynamodbav:"adopter_id"`
	CreatedAt   time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt   time.Time `json:"updated" dynamodbav:"updated_at"`
}

type CreatePetPostRequest struct {
	PetName     string  `json:"pet_name" validate:"required"`
	Species     string  `json:"species" validate:"required"`
	Breed       *string `json:"breed"`
	Age         *int    `json:"age" validate:"omitempty,min=0,max=100"`
	Description string  `json:"description"`
	PetImage    *string `json:"pet_image"`
	Location    string  `json:"location" validate:"required"`
	Status      string  `json:"status" validate:"omitempty,max=32"`
}

type UpdatePetPostRequest struct {
	PetName     *string `json:"pet_name" validate:"omitempty,min=1"`
	Species     *string `json:"species" validate:"omitempty,min=1"`
	Breed       *string `json:"breed"`
	Age         *int    `json:"age" validate:"omitempty,min=0,max=100"`
	Description *string `json:"description"`
	PetImage    *string `json:"pet_image"`
	Location    *string `json:"location" validate:"omitempty,min=1"`
	Status      *string `json:"status" validate:"omitempty,max=32"`
	AdopterID   *string `json:"adopter_id"`
}

// Default status for new posts when the client sends none.
const PostStatusOpen = "open"
