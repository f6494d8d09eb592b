package user_dto

type AuthResponse struct {
	Message  string `json:"message"`
	Redirect string `json:"redirect"`
}

type MeResponse struct {
	UserID              string  `json:"userId"`
	Username            string  `json:"username"`
	CurrentChatRoomID   *string `json:"currentChatRoomId"`
	CurrentChatRoomName *string `json:"currentChatRoomName"`
}
