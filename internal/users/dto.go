package users

type CreateUserRequest struct {
	Name  string `json:"name" binding:"required,notblank,max=255"`
	Email string `json:"email" binding:"required,email,max=512"`
}

// UpdateUserRequest: 指定されて空白でない項目だけ上書きする
type UpdateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

type UserResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func toResponse(u User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Email: u.Email}
}
