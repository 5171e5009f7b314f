package handler

// Request payloads for the authenticated API surface. Validation tags are
// enforced through echo's Validator (see validator.go).

type loginRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
}

type startUsageRequest struct {
	ItemID int64 `json:"item_id" validate:"required,gt=0"`
}

type endUsageRequest struct {
	SessionID int64 `json:"session_id" validate:"required,gt=0"`
}

type createUserRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=6"`
	IsAdmin  bool   `json:"is_admin"`
}

type updateUserRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	IsAdmin  bool   `json:"is_admin"`
	// Password is optional; when set the user must change it at next login.
	Password string `json:"password" validate:"omitempty,min=6"`
}

type replaceAssignmentsRequest struct {
	ItemIDs []int64 `json:"item_ids" validate:"required,dive,gt=0"`
}

type itemRequest struct {
	Name            string `json:"name" validate:"required"`
	Description     string `json:"description"`
	URL             string `json:"url" validate:"required,url"`
	Icon            string `json:"icon"`
	Category        string `json:"category"`
	OpenInNewWindow bool   `json:"open_in_new_window"`
}
