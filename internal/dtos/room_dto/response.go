package room_dto

type OnlineUser struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

type OnlineUsersResponse struct {
	OnlineUsers []OnlineUser `json:"onlineUsers"`
}
