package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"

	UserEntity = "user"
)

type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username     string             `bson:"username" json:"username"`
	Email        string             `bson:"email" json:"email"`
	Password     string             `bson:"password" json:"-"`
	Role         Role               `bson:"role" json:"role"`
	RegisteredAt time.Time          `bson:"registeredAt" json:"registeredAt"`
}

var ValidRoles = map[string]bool{
	string(RoleAdmin):  true,
	string(RoleMember): true,
}

func IsValidRole(role string) bool {
	return ValidRoles[role]
}
