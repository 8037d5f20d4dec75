// Package gorm provides the GORM models and repository
// implementations backing the outbound persistence ports.
package gorm

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel is the GORM model for users.
type UserModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"type:varchar(255);not null"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	AvatarURL    *string   `gorm:"type:text"`
	Role         string    `gorm:"type:varchar(50);not null;default:'user'"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (UserModel) TableName() string { return "users" }

// CategoryModel is the GORM model for recipe categories.
type CategoryModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(255);not null"`
	ImageURL  *string   `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Recipes []RecipeModel `gorm:"foreignKey:CategoryID"`
}

func (CategoryModel) TableName() string { return "categories" }

// RecipeModel is the GORM model for recipes. CategoryID is nullable
// and set to NULL when the category is deleted.
type RecipeModel struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Title        string     `gorm:"type:varchar(255);not null"`
	Description  string     `gorm:"type:text"`
	ImageURL     *string    `gorm:"type:text"`
	CategoryID   *uuid.UUID `gorm:"type:uuid;index"`
	Servings     int        `gorm:"not null;default:1"`
	Difficulty   string     `gorm:"type:varchar(20);not null"`
	GlutenFree   bool       `gorm:"not null;default:false"`
	LactoseFree  bool       `gorm:"not null;default:false"`
	Ingredients  string     `gorm:"type:text"`
	Instructions string     `gorm:"type:text"`
	CreatedBy    *uuid.UUID `gorm:"type:uuid"`
	CreatedAt    time.Time  `gorm:"index"`
	UpdatedAt    time.Time

	Category *CategoryModel `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`
}

func (RecipeModel) TableName() string { return "recipes" }

// FavoriteModel is the GORM model for the (user, recipe) favorite
// join. The pair carries a uniqueness constraint.
type FavoriteModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_recipe"`
	RecipeID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_recipe"`
	CreatedAt time.Time

	Recipe *RecipeModel `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	User   *UserModel   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (FavoriteModel) TableName() string { return "favorites" }

// ConversationModel is the GORM model for assistant conversations.
type ConversationModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Title     string    `gorm:"type:varchar(255);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time `gorm:"index"`

	User *UserModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (ConversationModel) TableName() string { return "ai_conversations" }

// MessageModel is the GORM model for chat messages. Exactly one of
// ConversationID and RecipeID is set, matching the two addressing
// schemes.
type MessageModel struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID  `gorm:"type:uuid;not null;index"`
	Kind           string     `gorm:"type:varchar(20);not null"`
	Direction      string     `gorm:"type:varchar(10);not null"`
	Text           string     `gorm:"type:text;not null"`
	ThreadID       *string    `gorm:"type:varchar(255)"`
	RecipeID       *uuid.UUID `gorm:"type:uuid;index"`
	Context        JSONField  `gorm:"type:json"`
	ConversationID *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt      time.Time  `gorm:"index"`

	Conversation *ConversationModel `gorm:"foreignKey:ConversationID;constraint:OnDelete:CASCADE"`
	Recipe       *RecipeModel       `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}

func (MessageModel) TableName() string { return "ai_chat_messages" }

// AssistantConfigModel is the GORM model for the chatbot
// presentation configuration.
type AssistantConfigModel struct {
	ID             uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Title          string      `gorm:"type:varchar(255);not null"`
	Description    string      `gorm:"type:text"`
	AssistantID    *string     `gorm:"type:varchar(255)"`
	AvatarType     string      `gorm:"type:varchar(20);not null;default:'emoji'"`
	AvatarEmoji    string      `gorm:"type:varchar(20)"`
	AvatarColor    string      `gorm:"type:varchar(20)"`
	AvatarImageURL *string     `gorm:"type:text"`
	Suggestions    StringSlice `gorm:"type:json"`
	IsActive       bool        `gorm:"not null;default:false;index"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (AssistantConfigModel) TableName() string { return "assistant_configs" }

// StringSlice stores a string slice as a JSON column.
type StringSlice []string

func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("cannot scan %T into StringSlice", value)
	}
}

func (s StringSlice) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	return json.Marshal(s)
}

// JSONField stores a free-form map as a JSON column.
type JSONField map[string]interface{}

func (j *JSONField) Scan(value interface{}) error {
	if value == nil {
		*j = JSONField{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, j)
	case string:
		return json.Unmarshal([]byte(v), j)
	default:
		return fmt.Errorf("cannot scan %T into JSONField", value)
	}
}

func (j JSONField) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return json.Marshal(j)
}

// BeforeCreate hooks assign identifiers for rows created without one.

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (c *CategoryModel) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (r *RecipeModel) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func (f *FavoriteModel) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

func (c *ConversationModel) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (m *MessageModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

func (a *AssistantConfigModel) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
