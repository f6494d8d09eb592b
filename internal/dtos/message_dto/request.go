package message_dto

import (
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type SendMessageRequest struct {
	Content     string `json:"content"`
	ReplyTo     string `json:"replyTo,omitempty" validate:"omitempty,objectID"`
	MessageType string `json:"messageType,omitempty" validate:"omitempty,oneof=text image"`
	ImageData   string `json:"imageData,omitempty"`
	ContentType string `json:"contentType,omitempty"`
}

func ObjectIDValidator(fl validator.FieldLevel) bool {
	id := fl.Field().String()
	_, err := bson.ObjectIDFromHex(id)
	return err == nil
}
