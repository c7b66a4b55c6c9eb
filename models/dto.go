package models

import "time"

// Credentials holds the fields shared by every username/password payload.
type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginRequest struct {
	Credentials
}

type LoginResponse struct {
	Token     string `json:"token,omitempty"`
	ExpiresIn int64  `json:"expiresIn,omitempty"`
	Message   string `json:"message,omitempty"`
}

type CreatePostRequest struct {
	Title string   `json:"title" validate:"required,min=5,max=100"`
	Text  string   `json:"text" validate:"required,min=5"`
	Tags  []string `json:"tags" validate:"dive,required,max=50"`
}

// UpdatePostRequest carries a partial update. Empty fields are left untouched.
type UpdatePostRequest struct {
	Title string   `json:"title" validate:"omitempty,min=5,max=100"`
	Text  string   `json:"text" validate:"omitempty,min=5"`
	Tags  []string `json:"tags" validate:"dive,required,max=50"`
}

type TagNameRequest struct {
	TagName string `form:"tagName" binding:"required" validate:"required,max=50"`
}

type PostTagRequest struct {
	Tag string `form:"tag" binding:"required" validate:"required,max=50"`
}

type DeleteUserRequest struct {
	Username string `form:"username" binding:"required" validate:"required"`
}

type PostListParams struct {
	Tag          string `form:"tag"`
	Parity       string `form:"parity"`
	SummaryLimit *int   `form:"summaryLimit"`
	Page         int    `form:"page,default=0"`
	Size         int    `form:"size,default=20"`
	Sort         string `form:"sort"`
}

type TagResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type PostResponse struct {
	ID     uint          `json:"id"`
	Title  string        `json:"title"`
	Text   string        `json:"text"`
	Author string        `json:"author"`
	Tags   []TagResponse `json:"tags"`
}

type PostPage struct {
	Content       []PostResponse `json:"content"`
	Page          int            `json:"page"`
	Size          int            `json:"size"`
	TotalElements int64          `json:"totalElements"`
	TotalPages    int            `json:"totalPages"`
}

type ErrorResponse struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
