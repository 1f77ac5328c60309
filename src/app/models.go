package app

import "time"

// Principal is the authenticated identity attached to a request. It is
// rebuilt from the credential on every request and never persisted.
type Principal struct {
	UserID  string `json:"userId"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// Album is a named, owned collection of images, optionally shared with
// other users by email. OwnerEmail never appears in SharedWith.
type Album struct {
	ID          string    `json:"albumId" bson:"_id"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description" bson:"description"`
	OwnerID     string    `json:"ownerId" bson:"ownerId"`
	OwnerEmail  string    `json:"ownerEmail" bson:"ownerEmail"`
	SharedWith  []string  `json:"sharedWith" bson:"sharedWith"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
}

// Image is the metadata record for one uploaded binary. The bytes live in
// the media host under ObjectID; URL is the durable public address.
type Image struct {
	ID      string `json:"imageId" bson:"_id"`
	AlbumID string `json:"albumId" bson:"albumId"`
	Name    string `json:"name" bson:"name"`

	URL      string `json:"url" bson:"url"`
	ObjectID string `json:"objectId" bson:"objectId"`

	// Thumbnail fields are empty when the original could not be decoded.
	ThumbnailURL      string `json:"thumbnailUrl,omitempty" bson:"thumbnailUrl,omitempty"`
	ThumbnailObjectID string `json:"thumbnailObjectId,omitempty" bson:"thumbnailObjectId,omitempty"`

	Tags       []string  `json:"tags" bson:"tags"`
	Person     string    `json:"person" bson:"person"`
	IsFavorite bool      `json:"isFavorite" bson:"isFavorite"`
	Comments   []Comment `json:"comments" bson:"comments"`

	Size       int64     `json:"sizeBytes" bson:"sizeBytes"`
	UploadedAt time.Time `json:"uploadedAt" bson:"uploadedAt"`
	UploadedBy string    `json:"uploadedBy" bson:"uploadedBy"`
}

// Comment is an append-only entry on an image.
type Comment struct {
	UserID    string    `json:"userId" bson:"userId"`
	UserEmail string    `json:"userEmail" bson:"userEmail"`
	Text      string    `json:"text" bson:"text"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}
