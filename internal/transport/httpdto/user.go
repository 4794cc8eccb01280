package httpdto

import "telechat/internal/services"

type UserDTO struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatarUrl"`
}

type ListUsersResponse struct {
	Users []UserDTO `json:"users"`
}

type SetAvatarRequest struct {
	AvatarURL string `json:"avatar_url"`
}

type PresignAvatarRequest struct {
	ContentType string `json:"content_type"`
	FileSize    int64  `json:"file_size"`
}

type PresignAvatarResponse struct {
	Success   bool              `json:"success"`
	UploadURL string            `json:"upload_url"`
	FileURL   string            `json:"file_url"`
	Headers   map[string]string `json:"headers,omitempty"`
}

func FromUserInfo(u services.UserInfo) UserDTO {
	return UserDTO{ID: u.ID.String(), Username: u.Username, AvatarURL: u.AvatarURL}
}

func FromUserInfoSlice(items []services.UserInfo) []UserDTO {
	dtos := make([]UserDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, FromUserInfo(item))
	}
	return dtos
}
