package domain

import (
	"fmt"
	"time"
)

type GalleryImage struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	SortOrder int       `json:"order"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateImageRequest struct {
	URL      string `json:"url"`
	Title    string `json:"title"`
	Category string `json:"category"`
}

type UpdateImageRequest struct {
	URL      *string `json:"url,omitempty"`
	Title    *string `json:"title,omitempty"`
	Category *string `json:"category,omitempty"`
}

// ReorderRequest rewrites sort positions; list order becomes the new order.
type ReorderRequest struct {
	IDs []string `json:"ids"`
}

type Video struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	EmbedURL  string    `json:"embed_url"`
	VimeoID   string    `json:"vimeo_id"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateVideoRequest struct {
	Title    string `json:"title"`
	EmbedURL string `json:"embed_url"`
	VimeoID  string `json:"vimeo_id"`
	Category string `json:"category"`
}

type UpdateVideoRequest struct {
	Title    *string `json:"title,omitempty"`
	EmbedURL *string `json:"embed_url,omitempty"`
	VimeoID  *string `json:"vimeo_id,omitempty"`
	Category *string `json:"category,omitempty"`
}

func (r *CreateImageRequest) Validate() error {
	if r.URL == "" {
		return fmt.Errorf("url is required")
	}
	if r.Category == "" {
		return fmt.Errorf("category is required")
	}
	return nil
}

func (r *CreateVideoRequest) Validate() error {
	if r.EmbedURL == "" && r.VimeoID == "" {
		return fmt.Errorf("embed_url or vimeo_id is required")
	}
	return nil
}

func (r *ReorderRequest) Validate() error {
	if len(r.IDs) == 0 {
		return fmt.Errorf("ids are required")
	}
	return nil
}
