package dto

type User struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	Balance     int64  `json:"balance"`
	AccessState string `json:"access_state"`
}

type SelectUserRequest struct {
	UserID string `json:"user_id"`
}

type SelectUserResponse struct {
	User User `json:"user"`
}

type ToggleAccessResponse struct {
	User     User   `json:"user"`
	NewState string `json:"new_state"`
}
