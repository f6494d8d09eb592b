package room_dto

type CreateRoomRequest struct {
	Name string `json:"name" validate:"required,min=3"`
	Pin  string `json:"pin" validate:"required,min=4"`
}

type JoinRoomRequest struct {
	Name string `json:"name" validate:"required"`
	Pin  string `json:"pin" validate:"required"`
}
