package domain

import "time"

type User struct {
	Id          int64     `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	PassHash    string    `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
}

type Credentials struct {
	Email       Email
	Password    Password
	DisplayName string
}
