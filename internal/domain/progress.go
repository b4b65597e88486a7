package domain

import "time"

// DateLayout is the wire format of every date field.
const DateLayout = "2006-01-02"

type WeightEntry struct {
	UserID string   `bson:"userId" json:"user_id" binding:"required"`
	Date   string   `bson:"date" json:"date" binding:"required,datetime=2006-01-02"`
	Weight *float64 `bson:"weight" json:"weight" binding:"required"`
}

// MeasurementEntry carries body measurements in inches; at least one must be present.
type MeasurementEntry struct {
	UserID string   `bson:"userId" json:"user_id" binding:"required"`
	Date   string   `bson:"date" json:"date" binding:"required,datetime=2006-01-02"`
	Waist  *float64 `bson:"waist,omitempty" json:"waist,omitempty" binding:"required_without_all=Chest Hips Arms Thighs"`
	Chest  *float64 `bson:"chest,omitempty" json:"chest,omitempty" binding:"required_without_all=Waist Hips Arms Thighs"`
	Hips   *float64 `bson:"hips,omitempty" json:"hips,omitempty" binding:"required_without_all=Waist Chest Arms Thighs"`
	Arms   *float64 `bson:"arms,omitempty" json:"arms,omitempty" binding:"required_without_all=Waist Chest Hips Thighs"`
	Thighs *float64 `bson:"thighs,omitempty" json:"thighs,omitempty" binding:"required_without_all=Waist Chest Hips Arms"`
}

// ProgressPhoto is the metadata of an uploaded progress photo. The bytes live in object storage
// when it is configured; otherwise they are discarded after the upload receipt is built.
type ProgressPhoto struct {
	UserID      string    `bson:"userId" json:"user_id"`
	Date        string    `bson:"date" json:"date"`
	FileName    string    `bson:"fileName" json:"filename"`
	ContentType string    `bson:"contentType" json:"content_type"`
	Size        int64     `bson:"size" json:"size"`
	ObjectKey   string    `bson:"objectKey,omitempty" json:"-"`
	URL         string    `bson:"-" json:"url,omitempty"`
	UploadedAt  time.Time `bson:"uploadedAt" json:"-"`
}
