package model

import (
	"github.com/Zerokoinhub/admin-console/internal/domain/enums"
)

type User struct {
	ID          string            `json:"id"`
	DisplayName string            `json:"display_name"`
	Email       string            `json:"email"`
	Balance     int64             `json:"balance"`
	AccessState enums.AccessState `json:"access_state"`
}

func (u User) Banned() bool {
	return u.AccessState == enums.AccessStateBanned
}
