package models

type Student struct {
	ID         int64      `json:"id"`
	Name       string     `json:"name" validate:"required"`
	Code       string     `json:"code" validate:"required"`
	ClassGroup ClassGroup `json:"class_group" validate:"required,classgroup"`
}
